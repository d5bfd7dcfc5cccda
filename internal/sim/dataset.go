package sim

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bracket-cli/internal/feature"
	"github.com/sells-group/bracket-cli/internal/frame"
	"github.com/sells-group/bracket-cli/internal/model"
	"github.com/sells-group/bracket-cli/internal/names"
)

// DatasetBuilder assembles the historical training corpus: per year it merges
// every known round with that year's season records, derives the upset target
// from final scores, dedupes repeated team pairings, and concatenates the
// years row-wise.
type DatasetBuilder struct {
	Seasons  SeasonProvider
	Brackets BracketProvider
	Norm     *names.Normalizer
}

// BuildYear produces one year's merged, target-labeled matchup frame.
func (b *DatasetBuilder) BuildYear(ctx context.Context, year int) (*frame.Frame, error) {
	season, err := b.Seasons.Season(ctx, year)
	if err != nil {
		return nil, eris.Wrapf(err, "sim: season %d", year)
	}
	rounds, err := b.Brackets.Rounds(ctx, year)
	if err != nil {
		return nil, eris.Wrapf(err, "sim: bracket %d", year)
	}

	var flat []model.Matchup
	for _, round := range rounds {
		flat = append(flat, round...)
	}
	if len(flat) == 0 {
		return nil, eris.Errorf("sim: no bracket rounds for %d", year)
	}

	f, _, err := BuildMatchupFrame(flat, season, b.Norm)
	if err != nil {
		return nil, eris.Wrapf(err, "sim: merge %d", year)
	}
	if err := DeriveTarget(f); err != nil {
		return nil, eris.Wrapf(err, "sim: target %d", year)
	}

	// Two teams meet at most once per tournament; a repeated pairing is a
	// source artifact, and the first listing wins.
	deduped, err := f.DedupeBy(feature.ColTeamFavorite, feature.ColTeamUnderdog)
	if err != nil {
		return nil, err
	}
	if deduped.Len() != f.Len() {
		zap.L().Warn("sim: dropped duplicate matchups",
			zap.Int("year", year),
			zap.Int("dropped", f.Len()-deduped.Len()),
		)
	}
	return deduped, nil
}

// Build concatenates the merged frames of the given years into one corpus.
func (b *DatasetBuilder) Build(ctx context.Context, years []int) (*frame.Frame, error) {
	if len(years) == 0 {
		return nil, eris.New("sim: no corpus years")
	}
	frames := make([]*frame.Frame, 0, len(years))
	for _, year := range years {
		f, err := b.BuildYear(ctx, year)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frame.Concat(frames...)
}
