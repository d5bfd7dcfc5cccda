// Package sim drives a full single-elimination tournament simulation: merging
// season records onto matchups, running the feature transform, invoking the
// classifier round by round, and assembling the final bracket.
package sim

import (
	"context"

	"github.com/sells-group/bracket-cli/internal/frame"
	"github.com/sells-group/bracket-cli/internal/model"
)

// SeasonProvider supplies a year's regular-season statistics table.
type SeasonProvider interface {
	Season(ctx context.Context, year int) (*model.SeasonTable, error)
}

// BracketProvider supplies the known rounds of a year's bracket, play-in
// first, in play order. A historical year carries every round with final
// scores; a prediction year carries only the play-in and first-round
// matchups, the latter possibly with placeholder slots awaiting play-in
// winners. The simulator seeds itself from the first two rounds only and
// regenerates everything later from predicted winners; full historical
// listings feed the training corpus. Matchup order within a round is
// bracket order — the generator pairs adjacent winners, so the provider
// owns adjacency.
type BracketProvider interface {
	Rounds(ctx context.Context, year int) ([][]model.Matchup, error)
}

// Classifier predicts the upset indicator (1 = underdog wins) for each row of
// a transformed matchup frame. The returned slice must be row-aligned with
// the input; row counts vary by round.
type Classifier interface {
	Predict(ctx context.Context, features *frame.Frame) ([]int, error)
}

// ProbabilityModel scores the per-row probability that the underdog wins.
// Wrap one in a ThresholdClassifier to obtain hard predictions.
type ProbabilityModel interface {
	PredictProba(ctx context.Context, features *frame.Frame) ([]float64, error)
}
