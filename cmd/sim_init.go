package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bracket-cli/internal/feature"
	"github.com/sells-group/bracket-cli/internal/names"
	"github.com/sells-group/bracket-cli/internal/provider"
	"github.com/sells-group/bracket-cli/internal/sim"
	"github.com/sells-group/bracket-cli/internal/store"
)

// simEnv holds the initialized store and fully-fitted simulator needed by the
// simulate/serve commands.
type simEnv struct {
	Store store.Store
	Sim   *sim.Simulator
}

// Close releases resources held by the simulation environment.
func (se *simEnv) Close() {
	if se.Store != nil {
		_ = se.Store.Close()
	}
}

// initSimulator sets up the store, loads the fixture providers, fits the
// feature transformer on the configured training years, and builds the
// Simulator. Callers should defer env.Close().
func initSimulator(ctx context.Context, mode string) (*simEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	fixtures := provider.NewFixture(cfg.Data.FixtureDir)

	norm := names.Default()
	if cfg.Data.NamesFile != "" {
		norm, err = names.Load(cfg.Data.NamesFile)
		if err != nil {
			_ = st.Close()
			return nil, eris.Wrap(err, "load name dictionaries")
		}
		zap.L().Info("name dictionaries loaded", zap.String("path", cfg.Data.NamesFile))
	}

	builder := &sim.DatasetBuilder{Seasons: fixtures, Brackets: fixtures, Norm: norm}
	corpus, err := builder.Build(ctx, cfg.Sim.TrainYears)
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "build training corpus")
	}

	// The basic-stat column list is a property of the season source, not of
	// any single year; the first training year is as good as any.
	season, err := fixtures.Season(ctx, cfg.Sim.TrainYears[0])
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "load season table")
	}

	transformer := &feature.Transformer{BasicCols: season.BasicCols}
	if err := transformer.Fit(corpus, corpus); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "fit transformer")
	}
	zap.L().Info("transformer fitted",
		zap.Ints("train_years", cfg.Sim.TrainYears),
		zap.Int("corpus_rows", corpus.Len()),
	)

	var classifier sim.Classifier
	switch cfg.Sim.Classifier {
	case "threshold":
		classifier = sim.ThresholdClassifier{
			Model:  sim.ConstantProbability{P: cfg.Sim.UpsetProbability},
			Cutoff: cfg.Sim.UpsetCutoff,
		}
	case "seedgap":
		classifier = sim.ThresholdClassifier{
			Model:  sim.NewSeedGapLogistic(),
			Cutoff: cfg.Sim.UpsetCutoff,
		}
	default:
		classifier = sim.FavoriteWinsClassifier{}
	}

	return &simEnv{
		Store: st,
		Sim:   sim.New(fixtures, fixtures, classifier, transformer, norm, st),
	}, nil
}
