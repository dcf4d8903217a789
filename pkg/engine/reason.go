package engine

// The primary reason vocabulary is a fixed enumerated set. Selection ranks a
// small list of condition checks against the input features in priority
// order; the first match wins, so the explanation is deterministic and
// independent of model internals.
const (
	ReasonEvent   = "Scheduled event in the area"
	ReasonTraffic = "Heavy traffic conditions"
	ReasonWeather = "Adverse weather conditions"
	ReasonPeak    = "Peak hour crowding"
	ReasonNormal  = "Normal operating conditions"
)

func selectReason(context Context) string {
	if context.EventScheduled {
		return ReasonEvent
	}

	if context.TrafficDensity == "High" || context.TrafficDensity == "Very High" {
		return ReasonTraffic
	}

	if context.Weather.IsRainy() || context.Weather.Condition == "Foggy" || context.Weather.Condition == "Mist" {
		return ReasonWeather
	}

	if context.IsPeakHour {
		return ReasonPeak
	}

	return ReasonNormal
}
