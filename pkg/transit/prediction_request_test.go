package transit

import (
	"errors"
	"testing"
	"time"
)

func validRequest() *PredictionRequest {
	return &PredictionRequest{
		FromLocation:  "Koti",
		ToLocation:    "Uppal",
		TransportType: TransportTypeMetro,

		TravelDate:    time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		DepartureTime: time.Date(0, time.January, 1, 17, 30, 0, 0, time.UTC),
	}
}

func TestValidate(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(request *PredictionRequest)
	}{
		{"missing origin", func(r *PredictionRequest) { r.FromLocation = "" }},
		{"missing destination", func(r *PredictionRequest) { r.ToLocation = "" }},
		{"same origin and destination", func(r *PredictionRequest) { r.ToLocation = r.FromLocation }},
		{"unknown transport type", func(r *PredictionRequest) { r.TransportType = "Rickshaw" }},
		{"missing travel date", func(r *PredictionRequest) { r.TravelDate = time.Time{} }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := validRequest()
			testCase.mutate(request)

			if err := request.Validate(); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestDepartureDateTime(t *testing.T) {
	request := validRequest()

	departure := request.DepartureDateTime()
	if departure.Year() != 2026 || departure.Month() != time.March || departure.Day() != 2 {
		t.Errorf("departure date is %s", departure.Format("2006-01-02"))
	}
	if departure.Hour() != 17 || departure.Minute() != 30 {
		t.Errorf("departure clock is %s, expected 17:30", departure.Format("15:04"))
	}

	// No departure time means midnight on the travel date
	request.DepartureTime = time.Time{}
	if got := request.DepartureDateTime(); got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("default departure clock is %s, expected 00:00", got.Format("15:04"))
	}
}

func TestParseTransportType(t *testing.T) {
	testCases := []struct {
		raw      string
		expected TransportType
		valid    bool
	}{
		{"Bus", TransportTypeBus, true},
		{"metro", TransportTypeMetro, true},
		{"Train", TransportTypeTrain, true},
		{"Tram", TransportTypeUnknown, false},
		{"", TransportTypeUnknown, false},
	}

	for _, testCase := range testCases {
		got, err := ParseTransportType(testCase.raw)
		if got != testCase.expected {
			t.Errorf("ParseTransportType(%q) = %q, expected %q", testCase.raw, got, testCase.expected)
		}
		if testCase.valid && err != nil {
			t.Errorf("ParseTransportType(%q) returned error %v", testCase.raw, err)
		}
		if !testCase.valid && !errors.Is(err, ErrValidation) {
			t.Errorf("ParseTransportType(%q) expected ErrValidation, got %v", testCase.raw, err)
		}
	}
}
