package transit

import "time"

// DelayBand maps a band name to the exclusive upper bound of predicted delay
// minutes it covers. Bands are configuration, not model output.
type DelayBand struct {
	Name       string
	MaxMinutes int // exclusive upper bound; <= 0 means unbounded
}

// DefaultDelayBands are the serving defaults. The final band has no upper
// bound and catches everything above the previous one.
func DefaultDelayBands() []DelayBand {
	return []DelayBand{
		{Name: "On Time", MaxMinutes: 5},
		{Name: "Minor Delay", MaxMinutes: 15},
		{Name: "Moderate Delay", MaxMinutes: 30},
		{Name: "Severe Delay"},
	}
}

// CategoriseDelay resolves predicted minutes to a band name. Bands must be
// ordered by ascending MaxMinutes with an unbounded final band.
func CategoriseDelay(minutes int, bands []DelayBand) string {
	for _, band := range bands {
		if band.MaxMinutes <= 0 || minutes < band.MaxMinutes {
			return band.Name
		}
	}

	if len(bands) == 0 {
		return "Unknown"
	}

	return bands[len(bands)-1].Name
}

// Insight is the complete result of one prediction call.
type Insight struct {
	PredictedDelayMinutes int     `groups:"basic"`
	DelayCategory         string  `groups:"basic"`
	Confidence            float64 `groups:"basic"`
	PrimaryReason         string  `groups:"basic"`

	FromLocation  string        `groups:"basic"`
	ToLocation    string        `groups:"basic"`
	TransportType TransportType `groups:"basic"`

	ScheduledDeparture time.Time `groups:"basic"`
	ScheduledArrival   time.Time `groups:"basic"`
	EstimatedArrival   time.Time `groups:"basic"`

	// Context the prediction was made under
	Weather        string  `groups:"detailed"`
	TemperatureC   float64 `groups:"detailed"`
	HumidityPct    float64 `groups:"detailed"`
	TrafficDensity string  `groups:"detailed"`
	PassengerLoad  int     `groups:"detailed"`
	IsHoliday      bool    `groups:"detailed"`
	IsPeakHour     bool    `groups:"detailed"`
	EventScheduled bool    `groups:"detailed"`

	ModelVersion     string    `groups:"detailed"`
	CreationDateTime time.Time `groups:"detailed"`
}
