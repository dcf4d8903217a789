package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
)

const (
	ModelTypeBoostedTrees = "boosted_trees"
	ModelTypeLinear       = "linear"
)

// TreeNode is one node of a regression tree. Leaf nodes have Left == -1.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      float64 `json:"leaf"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

type modelArtifact struct {
	SchemaVersion string `json:"schema_version"`
	ModelVersion  string `json:"model_version"`
	ModelType     string `json:"model_type"`

	FeatureOrder []string `json:"feature_order"`

	// boosted_trees
	BaseScore float64 `json:"base_score"`
	Trees     []Tree  `json:"trees,omitempty"`

	// linear
	Coefficients []float64 `json:"coefficients,omitempty"`
	Intercept    float64   `json:"intercept"`

	TrainingMedianDelay float64            `json:"training_median_delay"`
	FeatureMedians      map[string]float64 `json:"feature_medians,omitempty"`
}

// Model is the trained delay regression model, scored natively from its
// persisted artifact. Read-only after load.
type Model struct {
	artifact modelArtifact
}

// LoadModel reads and structurally validates the model artifact.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArtifactInvalid, err)
	}

	if err := validateModel(&artifact); err != nil {
		return nil, err
	}

	return &Model{artifact: artifact}, nil
}

func validateModel(artifact *modelArtifact) error {
	if artifact.SchemaVersion == "" {
		return fmt.Errorf("%w: model artifact missing schema_version", ErrArtifactInvalid)
	}
	if len(artifact.FeatureOrder) == 0 {
		return fmt.Errorf("%w: model artifact missing feature_order", ErrArtifactInvalid)
	}

	switch artifact.ModelType {
	case ModelTypeBoostedTrees:
		if len(artifact.Trees) == 0 {
			return fmt.Errorf("%w: boosted_trees model has no trees", ErrArtifactInvalid)
		}

		for t, tree := range artifact.Trees {
			for n, node := range tree.Nodes {
				if node.Left == -1 {
					continue
				}

				if node.Feature < 0 || node.Feature >= len(artifact.FeatureOrder) {
					return fmt.Errorf("%w: tree %d node %d references feature %d outside feature_order", ErrArtifactInvalid, t, n, node.Feature)
				}
				if node.Left < 0 || node.Left >= len(tree.Nodes) || node.Right < 0 || node.Right >= len(tree.Nodes) {
					return fmt.Errorf("%w: tree %d node %d has children outside the node array", ErrArtifactInvalid, t, n)
				}
			}
		}
	case ModelTypeLinear:
		if len(artifact.Coefficients) != len(artifact.FeatureOrder) {
			return fmt.Errorf("%w: linear model has %d coefficients for %d features", ErrArtifactInvalid, len(artifact.Coefficients), len(artifact.FeatureOrder))
		}
	default:
		return fmt.Errorf("%w: unknown model_type %q", ErrArtifactInvalid, artifact.ModelType)
	}

	return nil
}

func (m *Model) SchemaVersion() string { return m.artifact.SchemaVersion }
func (m *Model) Version() string       { return m.artifact.ModelVersion }

// FeatureOrder is the fixed input field order the model was trained with.
func (m *Model) FeatureOrder() []string { return m.artifact.FeatureOrder }

// TrainingMedianDelay is the median target value of the training set, used as
// the anchor of the confidence heuristic.
func (m *Model) TrainingMedianDelay() float64 { return m.artifact.TrainingMedianDelay }

// FeatureMedian is the neutral default for a feature with no available value.
func (m *Model) FeatureMedian(feature string) (float64, bool) {
	value, present := m.artifact.FeatureMedians[feature]
	return value, present
}

// Predict scores a complete feature vector and returns the raw (unclamped)
// delay estimate in minutes.
func (m *Model) Predict(vector []float64) (float64, error) {
	if len(vector) != len(m.artifact.FeatureOrder) {
		return 0, fmt.Errorf("%w: feature vector has %d values, model expects %d", ErrArtifactInvalid, len(vector), len(m.artifact.FeatureOrder))
	}

	if m.artifact.ModelType == ModelTypeLinear {
		return floats.Dot(m.artifact.Coefficients, vector) + m.artifact.Intercept, nil
	}

	score := m.artifact.BaseScore
	for _, tree := range m.artifact.Trees {
		score += scoreTree(tree, vector)
	}

	return score, nil
}

func scoreTree(tree Tree, vector []float64) float64 {
	index := 0
	for {
		node := tree.Nodes[index]
		if node.Left == -1 {
			return node.Leaf
		}

		if vector[node.Feature] < node.Threshold {
			index = node.Left
		} else {
			index = node.Right
		}
	}
}
