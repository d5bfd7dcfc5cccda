package sim

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bracket-cli/internal/bracket"
	"github.com/sells-group/bracket-cli/internal/feature"
	"github.com/sells-group/bracket-cli/internal/frame"
	"github.com/sells-group/bracket-cli/internal/model"
	"github.com/sells-group/bracket-cli/internal/names"
	"github.com/sells-group/bracket-cli/internal/store"
)

// Simulator runs one tournament year through the fixed round sequence:
// play-in and first round come from the bracket provider, every later round
// is generated from the previous round's winners. Each round is merged,
// transformed, and classified before the next one exists, so the round
// boundary is a hard synchronization point. Any data error aborts the year —
// there are no partial brackets.
type Simulator struct {
	seasons     SeasonProvider
	brackets    BracketProvider
	classifier  Classifier
	transformer *feature.Transformer
	norm        *names.Normalizer
	store       store.Store
}

// New creates a Simulator with all collaborators.
func New(
	seasons SeasonProvider,
	brackets BracketProvider,
	classifier Classifier,
	transformer *feature.Transformer,
	norm *names.Normalizer,
	st store.Store,
) *Simulator {
	return &Simulator{
		seasons:     seasons,
		brackets:    brackets,
		classifier:  classifier,
		transformer: transformer,
		norm:        norm,
		store:       st,
	}
}

// Run simulates the full bracket for one year and persists the run.
func (s *Simulator) Run(ctx context.Context, year int) (*model.RunResult, error) {
	log := zap.L().With(zap.Int("year", year))
	log.Info("sim: starting bracket simulation")

	run, err := s.store.CreateRun(ctx, year)
	if err != nil {
		return nil, eris.Wrap(err, "sim: create run")
	}

	setStatus := func(status model.RunStatus) {
		if statusErr := s.store.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("sim: failed to update status", zap.Error(statusErr))
		}
	}

	result := &model.RunResult{}
	trackPhase := func(name string, fn func() (*model.PhaseResult, error)) error {
		phase, phaseErr := s.store.CreatePhase(ctx, run.ID, name)
		if phaseErr != nil {
			log.Warn("sim: failed to create phase", zap.String("phase", name), zap.Error(phaseErr))
		}

		start := time.Now()
		phaseResult, fnErr := fn()
		duration := time.Since(start).Milliseconds()

		if phaseResult == nil {
			phaseResult = &model.PhaseResult{}
		}
		phaseResult.Name = name
		phaseResult.Duration = duration

		if fnErr != nil {
			phaseResult.Status = model.PhaseStatusFailed
			phaseResult.Error = fnErr.Error()
			log.Error("sim: round failed",
				zap.String("round", name),
				zap.Int64("duration_ms", duration),
				zap.Error(fnErr),
			)
		} else if phaseResult.Status == "" {
			phaseResult.Status = model.PhaseStatusComplete
			log.Info("sim: round complete",
				zap.String("round", name),
				zap.Int64("duration_ms", duration),
			)
		}

		if phase != nil {
			_ = s.store.CompletePhase(ctx, phase.ID, phaseResult)
		}
		result.Phases = append(result.Phases, *phaseResult)
		return fnErr
	}

	fail := func(err error) (*model.RunResult, error) {
		setStatus(model.RunStatusFailed)
		result.Error = err.Error()
		return nil, err
	}

	// Load collaborator data.
	setStatus(model.RunStatusLoading)
	season, err := s.seasons.Season(ctx, year)
	if err != nil {
		return fail(eris.Wrapf(err, "sim: season %d", year))
	}
	known, err := s.brackets.Rounds(ctx, year)
	if err != nil {
		return fail(eris.Wrapf(err, "sim: bracket %d", year))
	}
	if len(known) < 2 {
		return fail(eris.Errorf("sim: bracket for %d supplies %d rounds, need play-in and first round", year, len(known)))
	}
	if len(known) > 2 {
		// Historical sources carry every played round; only the play-in and
		// first round seed the simulation, the rest is regenerated from
		// predicted winners.
		log.Info("sim: ignoring supplied rounds past the first",
			zap.Int("supplied_rounds", len(known)),
		)
	}

	setStatus(model.RunStatusSimulating)

	var (
		allOutcomes  [][]model.OutcomeRow
		lastOutcomes []model.OutcomeRow
	)
	for _, round := range model.AllRounds() {
		var matchups []model.Matchup
		if round <= model.RoundFirst {
			matchups = append(matchups, known[round]...)
		} else {
			matchups, err = bracket.NextRound(lastOutcomes)
			if err != nil {
				_ = trackPhase(round.Label(), func() (*model.PhaseResult, error) { return nil, err })
				return fail(err)
			}
		}

		// Play-in winners take the first round's placeholder slots.
		if round == model.RoundFirst {
			if err := bracket.FillPlayIn(matchups, lastOutcomes); err != nil {
				_ = trackPhase(round.Label(), func() (*model.PhaseResult, error) { return nil, err })
				return fail(err)
			}
		}

		if round == model.RoundPlayIn && len(matchups) == 0 {
			// A year without play-in games skips straight to the first round.
			_ = trackPhase(round.Label(), func() (*model.PhaseResult, error) {
				return &model.PhaseResult{Status: model.PhaseStatusSkipped}, nil
			})
			lastOutcomes = nil
			continue
		}

		var outcomes []model.OutcomeRow
		phaseErr := trackPhase(round.Label(), func() (*model.PhaseResult, error) {
			var simErr error
			var report feature.Report
			outcomes, report, simErr = s.simulateRound(ctx, matchups, season)
			if simErr != nil {
				return nil, simErr
			}
			upsets := 0
			for _, o := range outcomes {
				if o.Upset == 1 {
					upsets++
				}
			}
			return &model.PhaseResult{
				Metadata: map[string]any{
					"matchups":        len(outcomes),
					"upsets":          upsets,
					"skipped_columns": len(report.Skipped()),
				},
			}, nil
		})
		if phaseErr != nil {
			return fail(phaseErr)
		}

		allOutcomes = append(allOutcomes, outcomes)
		lastOutcomes = outcomes
	}

	setStatus(model.RunStatusAssembling)
	art, err := bracket.Assemble(year, allOutcomes)
	if err != nil {
		return fail(err)
	}

	for _, outcomes := range allOutcomes {
		result.Matchups += len(outcomes)
		for _, o := range outcomes {
			result.Upsets += o.Upset
		}
	}
	result.Champion = art.Champion()
	result.Bracket = art

	if saveErr := s.store.UpdateRunResult(ctx, run.ID, result); saveErr != nil {
		log.Warn("sim: failed to save run result", zap.Error(saveErr))
	}

	log.Info("sim: bracket complete",
		zap.String("run_id", run.ID),
		zap.String("champion", result.Champion),
		zap.Int("matchups", result.Matchups),
		zap.Int("upsets", result.Upsets),
	)
	return result, nil
}

// simulateRound merges, transforms, and classifies one round's matchups,
// returning its outcome rows in bracket order.
func (s *Simulator) simulateRound(ctx context.Context, matchups []model.Matchup, season *model.SeasonTable) ([]model.OutcomeRow, feature.Report, error) {
	merged, _, err := BuildMatchupFrame(matchups, season, s.norm)
	if err != nil {
		return nil, nil, err
	}

	// Duplicate pairings are a provider artifact; keep the first listing and
	// reindex densely before anything downstream counts rows.
	merged, err = merged.DedupeBy(feature.ColTeamFavorite, feature.ColTeamUnderdog)
	if err != nil {
		return nil, nil, err
	}

	features := merged.Copy()
	features.Drop(
		feature.ColTeamFavorite, feature.ColTeamUnderdog,
		feature.ColScoreFavorite, feature.ColScoreUnderdog,
	)
	transformed, report, err := s.transformer.Transform(features)
	if err != nil {
		return nil, report, err
	}

	preds, err := s.classifier.Predict(ctx, transformed)
	if err != nil {
		return nil, report, eris.Wrap(err, "sim: classify")
	}
	if len(preds) != merged.Len() {
		return nil, report, eris.Errorf("sim: classifier returned %d predictions for %d matchups", len(preds), merged.Len())
	}

	outcomes, err := outcomeRows(merged, preds)
	return outcomes, report, err
}

// outcomeRows reads the resolved matchup columns back out of the merged frame
// and attaches the predicted upset indicators.
func outcomeRows(merged *frame.Frame, preds []int) ([]model.OutcomeRow, error) {
	rounds, ok := merged.Num(feature.ColRound)
	if !ok {
		return nil, eris.New("sim: merged frame missing round column")
	}
	favSeeds, _ := merged.Num(feature.ColSeedFavorite)
	undSeeds, _ := merged.Num(feature.ColSeedUnderdog)
	favTeams, _ := merged.Str(feature.ColTeamFavorite)
	undTeams, _ := merged.Str(feature.ColTeamUnderdog)
	if favSeeds == nil || undSeeds == nil || favTeams == nil || undTeams == nil {
		return nil, eris.New("sim: merged frame missing seed or team columns")
	}

	outcomes := make([]model.OutcomeRow, merged.Len())
	for i := range outcomes {
		outcomes[i] = model.OutcomeRow{
			Round:        model.Round(int(rounds[i])),
			FavoriteSeed: int(favSeeds[i]),
			Favorite:     favTeams[i],
			UnderdogSeed: int(undSeeds[i]),
			Underdog:     undTeams[i],
			Upset:        preds[i],
		}
	}
	return outcomes, nil
}
