package mlmodel

import (
	"errors"
	"math"
	"testing"
)

const encoderFixture = `{
	"schema_version": "1",
	"oov_code": 0,
	"fields": {
		"Transport_Type": {
			"classes": ["Bus", "Metro", "Train"],
			"frequencies": [600, 250, 150]
		},
		"Weather": {
			"classes": ["Clear", "Rainy"]
		}
	}
}`

func TestEncode(t *testing.T) {
	registry, err := LoadEncoders(writeArtifact(t, "label_encoders.json", encoderFixture))
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		field    string
		raw      string
		expected int
	}{
		{"Transport_Type", "Bus", 0},
		{"Transport_Type", "Metro", 1},
		{"Transport_Type", "Train", 2},
		{"Transport_Type", "Tram", 0},  // out of vocabulary
		{"Transport_Type", "bus", 0},   // case sensitive
		{"Unknown_Field", "anything", 0},
	}

	for _, testCase := range testCases {
		if got := registry.Encode(testCase.field, testCase.raw); got != testCase.expected {
			t.Errorf("Encode(%s, %s) = %d, expected %d", testCase.field, testCase.raw, got, testCase.expected)
		}
	}
}

func TestHasField(t *testing.T) {
	registry, err := LoadEncoders(writeArtifact(t, "label_encoders.json", encoderFixture))
	if err != nil {
		t.Fatal(err)
	}

	if !registry.HasField("Transport_Type") {
		t.Error("expected Transport_Type to be known")
	}
	if registry.HasField("Traffic_Density") {
		t.Error("expected Traffic_Density to be unknown")
	}
}

func TestRarity(t *testing.T) {
	registry, err := LoadEncoders(writeArtifact(t, "label_encoders.json", encoderFixture))
	if err != nil {
		t.Fatal(err)
	}

	if got := registry.Rarity("Transport_Type", "Hovercraft"); got != 1 {
		t.Errorf("unseen value has rarity %f, expected 1", got)
	}

	// Bus covers 600 of 1000 training rows
	if got := registry.Rarity("Transport_Type", "Bus"); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Bus rarity is %f, expected 0.4", got)
	}

	busRarity := registry.Rarity("Transport_Type", "Bus")
	trainRarity := registry.Rarity("Transport_Type", "Train")
	if trainRarity <= busRarity {
		t.Errorf("rarer class scores %f, common class %f", trainRarity, busRarity)
	}

	// Fields without frequency data report 0 for known values
	if got := registry.Rarity("Weather", "Clear"); got != 0 {
		t.Errorf("known value without frequencies has rarity %f, expected 0", got)
	}
}

func TestLoadEncodersRejectsInvalidArtifacts(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
	}{
		{"not json", `[`},
		{"missing schema version", `{"fields": {"Weather": {"classes": ["Clear"]}}}`},
		{"no fields", `{"schema_version": "1", "fields": {}}`},
		{"empty vocabulary", `{"schema_version": "1", "fields": {"Weather": {"classes": []}}}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := LoadEncoders(writeArtifact(t, "label_encoders.json", testCase.contents))
			if !errors.Is(err, ErrArtifactInvalid) {
				t.Errorf("expected ErrArtifactInvalid, got %v", err)
			}
		})
	}
}
