package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/hydertrax/hydertrax/pkg/mlmodel"
)

// Predictor wraps the trained regression model: point estimate, confidence
// and a human-readable primary reason.
type Predictor struct {
	model    *mlmodel.Model
	encoders *mlmodel.Registry

	maxDelayCapMinutes int
}

func NewPredictor(model *mlmodel.Model, encoders *mlmodel.Registry, maxDelayCapMinutes int) *Predictor {
	return &Predictor{
		model:    model,
		encoders: encoders,

		maxDelayCapMinutes: maxDelayCapMinutes,
	}
}

// Predict scores the vector and returns the clamped delay estimate in
// minutes, a confidence score in [0, 1] and the primary reason sentence.
func (p *Predictor) Predict(vector []float64, context Context) (int, float64, string, error) {
	raw, err := p.model.Predict(vector)
	if err != nil {
		return 0, 0, "", err
	}

	delay := int(math.Round(raw))
	if delay < 0 {
		delay = 0
	}
	if delay > p.maxDelayCapMinutes {
		delay = p.maxDelayCapMinutes
	}

	return delay, p.confidence(raw, context), selectReason(context), nil
}

// confidence is a heuristic over the model's inputs rather than its
// internals: feature combinations far from common training patterns score
// strictly lower than familiar ones, and values outside the training
// vocabulary lower it further.
func (p *Predictor) confidence(rawDelay float64, context Context) float64 {
	rarities := []float64{
		p.encoders.Rarity("Transport_Type", string(context.TransportType)),
		p.encoders.Rarity("From_Location", context.FromLocation),
		p.encoders.Rarity("To_Location", context.ToLocation),
		p.encoders.Rarity("Weather", context.Weather.Condition),
		p.encoders.Rarity("Traffic_Density", context.TrafficDensity),
	}

	familiarity := 1 - 0.6*stat.Mean(rarities, nil)

	median := p.model.TrainingMedianDelay()
	scale := math.Max(median, 10)
	proximity := 1 / (1 + math.Abs(rawDelay-median)/scale)

	confidence := 0.2 + 0.8*familiarity*proximity

	return math.Max(0, math.Min(1, confidence))
}
