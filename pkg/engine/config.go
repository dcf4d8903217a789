package engine

import (
	"os"
	"strconv"

	"github.com/hydertrax/hydertrax/pkg/transit"
	"github.com/hydertrax/hydertrax/pkg/weather"
)

// PeakWindow is an inclusive range of departure hours treated as peak.
type PeakWindow struct {
	StartHour int
	EndHour   int
}

type Config struct {
	ModelsDir string

	MaxDelayCapMinutes int
	DelayBands         []transit.DelayBand
	PeakWindows        []PeakWindow

	DefaultDistanceKM    float64
	DefaultPassengerLoad int
	FallbackWeather      weather.Conditions

	CalendarPath string

	Latitude  float64
	Longitude float64

	// Average speeds used to estimate run time when a schedule has no arrival
	SpeedKMH map[transit.TransportType]float64

	BatchConcurrency int
}

// GetConfig returns the engine configuration from environment variables or
// defaults.
func GetConfig() Config {
	config := Config{
		ModelsDir: "models",

		MaxDelayCapMinutes: 120,
		DelayBands:         transit.DefaultDelayBands(),
		PeakWindows: []PeakWindow{
			{StartHour: 8, EndHour: 11},
			{StartHour: 17, EndHour: 20},
		},

		DefaultDistanceKM:    25.0,
		DefaultPassengerLoad: 50,
		FallbackWeather: weather.Conditions{
			Condition:    "Clear",
			TemperatureC: 24.0,
			HumidityPct:  50,
			Source:       "fallback",
		},

		Latitude:  17.3850,
		Longitude: 78.4867,

		SpeedKMH: map[transit.TransportType]float64{
			transit.TransportTypeBus:   25,
			transit.TransportTypeMetro: 45,
			transit.TransportTypeTrain: 60,
		},

		BatchConcurrency: 8,
	}

	if val := os.Getenv("HYDERTRAX_MODELS_DIR"); val != "" {
		config.ModelsDir = val
	}

	if val := os.Getenv("HYDERTRAX_MAX_DELAY_CAP"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			config.MaxDelayCapMinutes = parsed
		}
	}

	if val := os.Getenv("HYDERTRAX_CALENDAR_FILE"); val != "" {
		config.CalendarPath = val
	}

	if val := os.Getenv("HYDERTRAX_LATITUDE"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			config.Latitude = parsed
		}
	}

	if val := os.Getenv("HYDERTRAX_LONGITUDE"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			config.Longitude = parsed
		}
	}

	return config
}

func (c Config) isPeakHour(hour int) bool {
	for _, window := range c.PeakWindows {
		if hour >= window.StartHour && hour <= window.EndHour {
			return true
		}
	}

	return false
}
