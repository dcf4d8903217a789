package transit

import "time"

type StopStatus string

const (
	StopStatusUpcoming StopStatus = "Upcoming"
	StopStatusCurrent  StopStatus = "Current"
	StopStatusDeparted StopStatus = "Departed"
	StopStatusArrived  StopStatus = "Arrived"
)

// StopEstimate is the scheduled & estimated times for one stop of a tracked
// service, as of a given instant.
type StopEstimate struct {
	Name          string     `groups:"basic"`
	ScheduledTime time.Time  `groups:"basic"`
	EstimatedTime time.Time  `groups:"basic"`
	Status        StopStatus `groups:"basic"`
	IsCurrent     bool       `groups:"basic"`
}

// Timeline is recomputed per request. Its validity depends on AsOf so it is
// never cached across calls.
type Timeline struct {
	ServiceID string    `groups:"basic"`
	AsOf      time.Time `groups:"basic"`

	Stops   []StopEstimate `groups:"basic"`
	Insight *Insight       `groups:"basic"`
}

// CurrentStop returns the stop the vehicle currently occupies, or nil if the
// service has not departed yet or has completed its run.
func (t *Timeline) CurrentStop() *StopEstimate {
	for i := range t.Stops {
		if t.Stops[i].IsCurrent {
			return &t.Stops[i]
		}
	}

	return nil
}
