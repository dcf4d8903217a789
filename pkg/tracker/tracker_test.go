package tracker

import (
	"testing"
	"time"

	"github.com/hydertrax/hydertrax/pkg/transit"
)

func threeStopRoute(departure time.Time) []Stop {
	return []Stop{
		{Name: "Secunderabad", Scheduled: departure},
		{Name: "Begumpet", Scheduled: departure.Add(10 * time.Minute)},
		{Name: "Hitech City", Scheduled: departure.Add(30 * time.Minute)},
	}
}

func TestSimulateProportionalAllocation(t *testing.T) {
	departure := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	stops := threeStopRoute(departure)

	estimates := Simulate(stops, 15*time.Minute, departure)

	// Legs are 10 and 20 minutes, so a 15 minute delay splits 5 then 15
	// cumulatively along the route.
	expected := []time.Duration{0, 5 * time.Minute, 15 * time.Minute}
	for i, estimate := range estimates {
		got := estimate.EstimatedTime.Sub(estimate.ScheduledTime)
		if got != expected[i] {
			t.Errorf("stop %d (%s): delay is %s, expected %s", i, estimate.Name, got, expected[i])
		}
	}
}

func TestSimulateEstimatesNonDecreasing(t *testing.T) {
	departure := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	for _, delay := range []time.Duration{0, time.Minute, 7 * time.Minute, 45 * time.Minute} {
		estimates := Simulate(threeStopRoute(departure), delay, departure)

		for i := 1; i < len(estimates); i++ {
			if estimates[i].EstimatedTime.Before(estimates[i-1].EstimatedTime) {
				t.Errorf("delay %s: estimate at stop %d precedes stop %d", delay, i, i-1)
			}
		}
	}
}

func TestSimulateZeroDelayMatchesSchedule(t *testing.T) {
	departure := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	for _, delay := range []time.Duration{0, -10 * time.Minute} {
		estimates := Simulate(threeStopRoute(departure), delay, departure)

		for i, estimate := range estimates {
			if !estimate.EstimatedTime.Equal(estimate.ScheduledTime) {
				t.Errorf("delay %s: stop %d estimate differs from schedule", delay, i)
			}
		}
	}
}

func TestSimulateCurrentStop(t *testing.T) {
	departure := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name            string
		now             time.Time
		expectedCurrent string
	}{
		{"before departure", departure.Add(-5 * time.Minute), ""},
		{"at departure", departure, ""},
		{"on first leg", departure.Add(7 * time.Minute), "Begumpet"},
		{"on second leg", departure.Add(20 * time.Minute), "Hitech City"},
		{"at final arrival", departure.Add(45 * time.Minute), ""},
		{"after final arrival", departure.Add(60 * time.Minute), ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			estimates := Simulate(threeStopRoute(departure), 15*time.Minute, testCase.now)

			currentCount := 0
			currentName := ""
			for _, estimate := range estimates {
				if estimate.IsCurrent {
					currentCount++
					currentName = estimate.Name

					if estimate.Status != transit.StopStatusCurrent {
						t.Errorf("current stop %s has status %s", estimate.Name, estimate.Status)
					}
				}
			}

			if testCase.expectedCurrent == "" {
				if currentCount != 0 {
					t.Errorf("expected no current stop, got %s", currentName)
				}
				return
			}

			if currentCount != 1 {
				t.Fatalf("expected exactly one current stop, got %d", currentCount)
			}
			if currentName != testCase.expectedCurrent {
				t.Errorf("current stop is %s, expected %s", currentName, testCase.expectedCurrent)
			}
		})
	}
}

func TestSimulateStatuses(t *testing.T) {
	departure := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	// Estimated times are 09:00, 09:05+10 and 09:15+30.
	estimates := Simulate(threeStopRoute(departure), 15*time.Minute, departure.Add(20*time.Minute))

	if estimates[0].Status != transit.StopStatusDeparted {
		t.Errorf("first stop status is %s, expected departed", estimates[0].Status)
	}
	if estimates[1].Status != transit.StopStatusDeparted {
		t.Errorf("second stop status is %s, expected departed", estimates[1].Status)
	}
	if estimates[2].Status != transit.StopStatusCurrent {
		t.Errorf("final stop status is %s, expected current", estimates[2].Status)
	}

	completed := Simulate(threeStopRoute(departure), 15*time.Minute, departure.Add(2*time.Hour))
	if completed[2].Status != transit.StopStatusArrived {
		t.Errorf("final stop status is %s after completion, expected arrived", completed[2].Status)
	}
}

func TestSimulateIdempotent(t *testing.T) {
	departure := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	now := departure.Add(12 * time.Minute)

	first := Simulate(threeStopRoute(departure), 15*time.Minute, now)
	second := Simulate(threeStopRoute(departure), 15*time.Minute, now)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("stop %d differs between identical simulations", i)
		}
	}
}

func TestSimulateEdgeCases(t *testing.T) {
	departure := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	if estimates := Simulate(nil, 15*time.Minute, departure); estimates != nil {
		t.Error("expected nil estimates for empty route")
	}

	single := Simulate([]Stop{{Name: "Koti", Scheduled: departure}}, 15*time.Minute, departure)
	if got := single[0].EstimatedTime.Sub(single[0].ScheduledTime); got != 15*time.Minute {
		t.Errorf("single stop absorbs %s of delay, expected 15m", got)
	}

	// All stops scheduled at the same instant: the delay lands on the final
	// arrival only.
	degenerate := Simulate([]Stop{
		{Name: "A", Scheduled: departure},
		{Name: "B", Scheduled: departure},
		{Name: "C", Scheduled: departure},
	}, 15*time.Minute, departure)

	if got := degenerate[1].EstimatedTime.Sub(departure); got != 0 {
		t.Errorf("intermediate stop shifted by %s on degenerate schedule", got)
	}
	if got := degenerate[2].EstimatedTime.Sub(departure); got != 15*time.Minute {
		t.Errorf("final stop shifted by %s on degenerate schedule, expected 15m", got)
	}
}
