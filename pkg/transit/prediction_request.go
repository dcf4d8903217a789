package transit

import (
	"fmt"
	"time"
)

// PredictionRequest is a transient request for a delay prediction,
// constructed once per API call.
type PredictionRequest struct {
	FromLocation  string        `groups:"basic"`
	ToLocation    string        `groups:"basic"`
	TransportType TransportType `groups:"basic"`

	TravelDate    time.Time `groups:"basic"`
	DepartureTime time.Time `groups:"basic"` // clock time on TravelDate

	// Optional explicit context overrides. Nil means derive/lookup.
	Weather        *string  `groups:"detailed" json:",omitempty"`
	TrafficDensity *string  `groups:"detailed" json:",omitempty"`
	EventScheduled *bool    `groups:"detailed" json:",omitempty"`
	PassengerLoad  *int     `groups:"detailed" json:",omitempty"`
	DistanceKM     *float64 `groups:"detailed" json:",omitempty"`
}

func (r *PredictionRequest) Validate() error {
	if r.FromLocation == "" || r.ToLocation == "" {
		return fmt.Errorf("%w: origin and destination are required", ErrValidation)
	}

	if r.FromLocation == r.ToLocation {
		return fmt.Errorf("%w: origin and destination must differ", ErrValidation)
	}

	switch r.TransportType {
	case TransportTypeBus, TransportTypeMetro, TransportTypeTrain:
	default:
		return fmt.Errorf("%w: unknown transport type %q", ErrValidation, r.TransportType)
	}

	if r.TravelDate.IsZero() {
		return fmt.Errorf("%w: travel date is required", ErrValidation)
	}

	return nil
}

// DepartureDateTime places the departure clock time onto the travel date.
func (r *PredictionRequest) DepartureDateTime() time.Time {
	departure := r.DepartureTime
	if departure.IsZero() {
		departure = r.TravelDate
	}

	return time.Date(
		r.TravelDate.Year(), r.TravelDate.Month(), r.TravelDate.Day(),
		departure.Hour(), departure.Minute(), 0, 0, r.TravelDate.Location(),
	)
}
