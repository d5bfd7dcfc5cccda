package sim

import (
	"context"
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bracket-cli/internal/feature"
	"github.com/sells-group/bracket-cli/internal/frame"
)

// FavoriteWinsClassifier predicts zero upsets: chalk all the way through.
// Useful as a deterministic baseline and in tests.
type FavoriteWinsClassifier struct{}

func (FavoriteWinsClassifier) Predict(_ context.Context, features *frame.Frame) ([]int, error) {
	return make([]int, features.Len()), nil
}

// ConstantProbability scores every matchup with the same upset probability.
type ConstantProbability struct {
	P float64
}

func (c ConstantProbability) PredictProba(_ context.Context, features *frame.Frame) ([]float64, error) {
	probs := make([]float64, features.Len())
	for i := range probs {
		probs[i] = c.P
	}
	return probs, nil
}

// SeedGapLogistic scores the upset probability from the seed differential
// alone: even-seed games are a coin flip, and every seed of gap costs Slope
// in log-odds. A deterministic stand-in for the trained model that still
// reacts to the matchup.
type SeedGapLogistic struct {
	// Intercept is the upset log-odds of an even-seed matchup.
	Intercept float64
	// Slope is the log-odds penalty per seed of gap between the sides.
	Slope float64
}

// NewSeedGapLogistic returns a model with coefficients in line with
// historical upset rates by seed gap.
func NewSeedGapLogistic() SeedGapLogistic {
	return SeedGapLogistic{Intercept: 0, Slope: 0.18}
}

func (m SeedGapLogistic) PredictProba(_ context.Context, features *frame.Frame) ([]float64, error) {
	fav, okF := features.Num(feature.ColSeedFavorite)
	und, okU := features.Num(feature.ColSeedUnderdog)
	if !okF || !okU {
		return nil, eris.New("sim: seed gap model needs both seed columns")
	}

	probs := make([]float64, features.Len())
	for i := range probs {
		gap := und[i] - fav[i]
		probs[i] = 1 / (1 + math.Exp(-(m.Intercept - m.Slope*gap)))
	}
	return probs, nil
}

// ThresholdClassifier converts a probability model into hard upset
// predictions with a caller-supplied cutoff: probability >= cutoff reads as
// an upset.
type ThresholdClassifier struct {
	Model  ProbabilityModel
	Cutoff float64
}

func (t ThresholdClassifier) Predict(ctx context.Context, features *frame.Frame) ([]int, error) {
	if t.Model == nil {
		return nil, eris.New("sim: threshold classifier has no probability model")
	}
	probs, err := t.Model.PredictProba(ctx, features)
	if err != nil {
		return nil, err
	}
	if len(probs) != features.Len() {
		return nil, eris.Errorf("sim: model returned %d probabilities for %d rows", len(probs), features.Len())
	}
	preds := make([]int, len(probs))
	for i, p := range probs {
		if p >= t.Cutoff {
			preds[i] = 1
		}
	}
	return preds, nil
}
