package engine

import (
	"errors"
	"fmt"

	"github.com/hydertrax/hydertrax/pkg/mlmodel"
	"github.com/hydertrax/hydertrax/pkg/transit"
	"github.com/hydertrax/hydertrax/pkg/weather"
)

// ErrConfiguration means the feature field order contract itself cannot be
// resolved. This is the one fatal condition; everything else degrades to
// defaults.
var ErrConfiguration = errors.New("configuration error")

// Context holds the fully resolved raw inputs one prediction is made from.
// The feature builder turns it into the ordered numeric vector the model
// expects; the reason selector ranks its fields directly.
type Context struct {
	TransportType transit.TransportType
	FromLocation  string
	ToLocation    string

	Weather        weather.Conditions
	TrafficDensity string

	IsHoliday      bool
	IsPeakHour     bool
	IsWeekend      bool
	EventScheduled bool

	PassengerLoad int
	DistanceKM    float64

	DepartureHour int
	DayOfWeek     int
	Month         int
}

// weatherScores and trafficScores are the ordinal severity scales the
// training pipeline used for the Weather_Traffic_Index interaction feature.
// They must stay byte-for-byte identical to training or the persisted model
// coefficients become invalid.
var weatherScores = map[string]float64{
	"Clear": 1, "Sunny": 1, "Mainly Clear": 1,
	"Partly Cloudy": 2, "Cloudy": 2,
	"Overcast": 3,
	"Foggy":    4, "Mist": 4,
	"Rainy": 5, "Light Rain": 5, "Drizzle": 5,
	"Heavy Rain": 6,
}

var trafficScores = map[string]float64{
	"Low":       1,
	"Medium":    2,
	"High":      3,
	"Very High": 4,
}

const unknownSeverityScore = 2

func weatherScore(condition string) float64 {
	if score, known := weatherScores[condition]; known {
		return score
	}

	return unknownSeverityScore
}

func trafficScore(density string) float64 {
	if score, known := trafficScores[density]; known {
		return score
	}

	return unknownSeverityScore
}

// FeatureBuilder maps a resolved prediction context into the exact ordered
// numeric feature vector the persisted model was trained with.
type FeatureBuilder struct {
	model    *mlmodel.Model
	encoders *mlmodel.Registry
}

func NewFeatureBuilder(model *mlmodel.Model, encoders *mlmodel.Registry) *FeatureBuilder {
	return &FeatureBuilder{
		model:    model,
		encoders: encoders,
	}
}

// Build produces a complete feature vector with no missing fields. Every
// categorical value passes through the encoder registry; a field the builder
// cannot compute falls back to the neutral default baked into the model
// artifact at training time.
func (builder *FeatureBuilder) Build(context Context) ([]float64, error) {
	values := builder.featureValues(context)

	order := builder.model.FeatureOrder()
	vector := make([]float64, 0, len(order))

	for _, feature := range order {
		if value, computed := values[feature]; computed {
			vector = append(vector, value)
			continue
		}

		if median, present := builder.model.FeatureMedian(feature); present {
			vector = append(vector, median)
			continue
		}

		return nil, fmt.Errorf("%w: model expects feature %q which cannot be resolved", ErrConfiguration, feature)
	}

	return vector, nil
}

func (builder *FeatureBuilder) featureValues(context Context) map[string]float64 {
	encode := func(field string, raw string) float64 {
		return float64(builder.encoders.Encode(field, raw))
	}

	return map[string]float64{
		"Transport_Type":  encode("Transport_Type", string(context.TransportType)),
		"From_Location":   encode("From_Location", context.FromLocation),
		"To_Location":     encode("To_Location", context.ToLocation),
		"Weather":         encode("Weather", context.Weather.Condition),
		"Traffic_Density": encode("Traffic_Density", context.TrafficDensity),

		"Is_Holiday":      boolFeature(context.IsHoliday),
		"Is_Peak_Hour":    boolFeature(context.IsPeakHour),
		"Event_Scheduled": boolFeature(context.EventScheduled),
		"Is_Weekend":      boolFeature(context.IsWeekend),

		"Temperature_C":  context.Weather.TemperatureC,
		"Humidity_Pct":   context.Weather.HumidityPct,
		"Passenger_Load": float64(context.PassengerLoad),
		"Distance_KM":    context.DistanceKM,

		"Dep_Hour":    float64(context.DepartureHour),
		"Day_of_Week": float64(context.DayOfWeek),
		"Month":       float64(context.Month),

		"Weather_Traffic_Index": weatherScore(context.Weather.Condition) * trafficScore(context.TrafficDensity),
	}
}

func boolFeature(value bool) float64 {
	if value {
		return 1
	}

	return 0
}
