package transit

import "time"

// ScheduleRecord is a single scheduled service run between two locations.
// Created by the data importer, read-only at serve time.
type ScheduleRecord struct {
	PrimaryIdentifier string `groups:"basic" bson:",omitempty"`

	CreationDateTime     time.Time `groups:"detailed" bson:",omitempty"`
	ModificationDateTime time.Time `groups:"detailed" bson:",omitempty"`

	Date          time.Time     `groups:"basic"`
	TransportType TransportType `groups:"basic"`

	FromLocation string   `groups:"basic"`
	ToLocation   string   `groups:"basic"`
	Stops        []string `groups:"basic" bson:",omitempty"` // ordered, includes origin & destination

	ScheduledDeparture time.Time `groups:"basic"`
	ScheduledArrival   time.Time `groups:"basic"`

	// Context captured when the schedule snapshot was taken
	Weather        string  `groups:"detailed" bson:",omitempty"`
	TemperatureC   float64 `groups:"detailed"`
	HumidityPct    float64 `groups:"detailed"`
	IsHoliday      bool    `groups:"detailed"`
	IsPeakHour     bool    `groups:"detailed"`
	EventScheduled bool    `groups:"detailed"`
	TrafficDensity string  `groups:"detailed" bson:",omitempty"`
	PassengerLoad  int     `groups:"detailed"`
	DistanceKM     float64 `groups:"basic"`

	// Observed delay in minutes, present on historical records only
	DelayMinutes int `groups:"internal"`
}

// Duration is the scheduled run time between origin departure and
// destination arrival.
func (r *ScheduleRecord) Duration() time.Duration {
	return r.ScheduledArrival.Sub(r.ScheduledDeparture)
}
