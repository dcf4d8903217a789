package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// FieldEncoder is the closed vocabulary of one categorical field, captured at
// training time. Codes are positions in the Classes slice.
type FieldEncoder struct {
	Classes     []string `json:"classes"`
	Frequencies []int    `json:"frequencies,omitempty"` // training row counts per class
}

type encoderArtifact struct {
	SchemaVersion string                  `json:"schema_version"`
	OOVCode       int                     `json:"oov_code"`
	Fields        map[string]FieldEncoder `json:"fields"`
}

// Registry exposes the categorical-to-numeric mappings produced at training
// time. Pure lookup, no mutation after load, safe for concurrent reads.
type Registry struct {
	schemaVersion string
	oovCode       int

	codes       map[string]map[string]int
	frequencies map[string]map[string]int
	totalRows   map[string]int
}

// LoadEncoders reads the encoder artifact. Fails only if the file is missing
// or the field set is structurally invalid.
func LoadEncoders(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading encoder artifact: %w", err)
	}

	var artifact encoderArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArtifactInvalid, err)
	}

	if artifact.SchemaVersion == "" {
		return nil, fmt.Errorf("%w: encoder artifact missing schema_version", ErrArtifactInvalid)
	}
	if len(artifact.Fields) == 0 {
		return nil, fmt.Errorf("%w: encoder artifact has no fields", ErrArtifactInvalid)
	}

	registry := &Registry{
		schemaVersion: artifact.SchemaVersion,
		oovCode:       artifact.OOVCode,
		codes:         map[string]map[string]int{},
		frequencies:   map[string]map[string]int{},
		totalRows:     map[string]int{},
	}

	for field, encoder := range artifact.Fields {
		if len(encoder.Classes) == 0 {
			return nil, fmt.Errorf("%w: field %s has an empty vocabulary", ErrArtifactInvalid, field)
		}

		registry.codes[field] = map[string]int{}
		registry.frequencies[field] = map[string]int{}

		for i, class := range encoder.Classes {
			registry.codes[field][class] = i

			if i < len(encoder.Frequencies) {
				registry.frequencies[field][class] = encoder.Frequencies[i]
				registry.totalRows[field] += encoder.Frequencies[i]
			}
		}
	}

	return registry, nil
}

func (r *Registry) SchemaVersion() string {
	return r.schemaVersion
}

// Encode maps a raw categorical value to its training-time code. Values
// outside the known vocabulary resolve to the artifact's out-of-vocabulary
// code. Unseen categories are expected in production and never an error.
func (r *Registry) Encode(field string, raw string) int {
	codes, known := r.codes[field]
	if !known {
		return r.oovCode
	}

	code, seen := codes[raw]
	if !seen {
		return r.oovCode
	}

	return code
}

// HasField reports whether a categorical field was encoded at training time.
func (r *Registry) HasField(field string) bool {
	_, known := r.codes[field]
	return known
}

// Rarity returns how uncommon a value was in the training data, in [0, 1].
// 0 means the most frequent class, 1 means never seen. Fields without
// frequency data report 0 for known values.
func (r *Registry) Rarity(field string, raw string) float64 {
	codes, known := r.codes[field]
	if !known {
		return 0
	}

	if _, seen := codes[raw]; !seen {
		return 1
	}

	total := r.totalRows[field]
	if total == 0 {
		return 0
	}

	return 1 - float64(r.frequencies[field][raw])/float64(total)
}
