package tracker

import (
	"time"

	"github.com/hydertrax/hydertrax/pkg/transit"
)

// Stop is one scheduled stop of a service, in route order.
type Stop struct {
	Name      string
	Scheduled time.Time
}

// Simulate allocates a predicted delay across a route and derives, as of
// `now`, the estimated time and status of every stop. It is a pure function
// of its inputs and safe to call concurrently with different instants.
//
// The delay is distributed proportionally to each inter-stop leg's scheduled
// duration, so longer legs absorb proportionally more of it; the cumulative
// estimated times are non-decreasing along the stop order. A delay of zero or
// less means on-time running and leaves every estimate equal to its schedule.
func Simulate(stops []Stop, predictedDelay time.Duration, now time.Time) []transit.StopEstimate {
	if len(stops) == 0 {
		return nil
	}

	if predictedDelay < 0 {
		predictedDelay = 0
	}

	estimates := make([]transit.StopEstimate, len(stops))
	for i, stop := range stops {
		estimates[i] = transit.StopEstimate{
			Name:          stop.Name,
			ScheduledTime: stop.Scheduled,
			EstimatedTime: stop.Scheduled,
		}
	}

	allocateDelay(estimates, predictedDelay)

	// Monotonic guard against unsorted schedule input
	for i := 1; i < len(estimates); i++ {
		if estimates[i].EstimatedTime.Before(estimates[i-1].EstimatedTime) {
			estimates[i].EstimatedTime = estimates[i-1].EstimatedTime
		}
	}

	deriveStatuses(estimates, now)

	return estimates
}

func allocateDelay(estimates []transit.StopEstimate, predictedDelay time.Duration) {
	if predictedDelay == 0 {
		return
	}

	last := len(estimates) - 1

	// Single-stop route: the whole delay lands on the arrival estimate
	if last == 0 {
		estimates[0].EstimatedTime = estimates[0].ScheduledTime.Add(predictedDelay)
		return
	}

	var totalScheduled time.Duration
	for i := 1; i <= last; i++ {
		leg := estimates[i].ScheduledTime.Sub(estimates[i-1].ScheduledTime)
		if leg > 0 {
			totalScheduled += leg
		}
	}

	// Degenerate schedule with no run time: delay applies to the final arrival
	if totalScheduled <= 0 {
		estimates[last].EstimatedTime = estimates[last].ScheduledTime.Add(predictedDelay)
		return
	}

	var elapsed time.Duration
	for i := 1; i <= last; i++ {
		leg := estimates[i].ScheduledTime.Sub(estimates[i-1].ScheduledTime)
		if leg > 0 {
			elapsed += leg
		}

		share := time.Duration(float64(predictedDelay) * (float64(elapsed) / float64(totalScheduled)))
		estimates[i].EstimatedTime = estimates[i].ScheduledTime.Add(share)
	}
}

func deriveStatuses(estimates []transit.StopEstimate, now time.Time) {
	last := len(estimates) - 1

	for i := range estimates {
		if now.Before(estimates[i].EstimatedTime) {
			estimates[i].Status = transit.StopStatusUpcoming
		} else if i == last {
			estimates[i].Status = transit.StopStatusArrived
		} else {
			estimates[i].Status = transit.StopStatusDeparted
		}
	}

	// Exactly one current stop while the vehicle is strictly inside its
	// estimated run; none before departure or after completion.
	if !now.After(estimates[0].EstimatedTime) || !now.Before(estimates[last].EstimatedTime) {
		return
	}

	for i := range estimates {
		if estimates[i].EstimatedTime.After(now) {
			estimates[i].Status = transit.StopStatusCurrent
			estimates[i].IsCurrent = true
			return
		}
	}
}
