package weather

import "encoding/json"

// Conditions is the current weather at the served city.
type Conditions struct {
	Condition    string  `json:"condition"`
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	Source       string  `json:"source"`
}

func (c Conditions) MarshalBinary() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Conditions) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, c)
}

// IsRainy reports whether the condition belongs to the precipitation family.
func (c Conditions) IsRainy() bool {
	switch c.Condition {
	case "Rainy", "Light Rain", "Heavy Rain", "Drizzle",
		"Slight Rain", "Moderate Rain", "Light Drizzle", "Moderate Drizzle", "Dense Drizzle",
		"Slight Rain Showers", "Moderate Rain Showers", "Violent Rain Showers",
		"Thunderstorm", "Thunderstorm with Hail", "Heavy Hail":
		return true
	}

	return false
}

// wmoConditions maps WMO weather interpretation codes to condition names.
// The names match the vocabulary the model was trained on.
var wmoConditions = map[int]string{
	0:  "Clear",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Foggy",
	51: "Light Drizzle",
	53: "Moderate Drizzle",
	55: "Dense Drizzle",
	61: "Slight Rain",
	63: "Moderate Rain",
	65: "Heavy Rain",
	80: "Slight Rain Showers",
	81: "Moderate Rain Showers",
	82: "Violent Rain Showers",
	95: "Thunderstorm",
	96: "Thunderstorm with Hail",
	99: "Heavy Hail",
}

func conditionForWMOCode(code int) string {
	if condition, known := wmoConditions[code]; known {
		return condition
	}

	return "Clear"
}
