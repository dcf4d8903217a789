package engine

import "testing"

func TestEstimateTrafficDensity(t *testing.T) {
	testCases := []struct {
		name     string
		hour     int
		rainy    bool
		event    bool
		expected string
	}{
		{"quiet afternoon", 14, false, false, "Low"},
		{"morning peak", 9, false, false, "Medium"},
		{"evening peak", 18, false, false, "Medium"},
		{"rain off peak", 14, true, false, "Medium"},
		{"peak with rain", 18, true, false, "High"},
		{"peak with event", 9, false, true, "Very High"},
		{"everything at once", 18, true, true, "Very High"},
		{"event only", 14, false, true, "Medium"},
		{"event with rain", 14, true, true, "High"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := estimateTrafficDensity(testCase.hour, testCase.rainy, testCase.event)
			if got != testCase.expected {
				t.Errorf("density is %q, expected %q", got, testCase.expected)
			}
		})
	}
}

func TestEstimatePassengerLoad(t *testing.T) {
	for _, serviceID := range []string{"service-a", "service-b", "service-c"} {
		offPeak := estimatePassengerLoad(serviceID, 14, false)
		peak := estimatePassengerLoad(serviceID, 9, false)
		eventPeak := estimatePassengerLoad(serviceID, 9, true)

		if offPeak < 0 || offPeak > 100 || peak < 0 || peak > 100 || eventPeak < 0 || eventPeak > 100 {
			t.Errorf("%s: load outside [0, 100]", serviceID)
		}
		if peak <= offPeak {
			t.Errorf("%s: peak load %d not above off peak %d", serviceID, peak, offPeak)
		}
		if eventPeak <= peak {
			t.Errorf("%s: event load %d not above plain peak %d", serviceID, eventPeak, peak)
		}
	}
}

func TestEstimatePassengerLoadDeterministic(t *testing.T) {
	first := estimatePassengerLoad("hydertrax-service-x", 9, false)
	second := estimatePassengerLoad("hydertrax-service-x", 9, false)

	if first != second {
		t.Errorf("load differs between identical calls: %d vs %d", first, second)
	}
}
