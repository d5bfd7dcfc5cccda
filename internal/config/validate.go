package config

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the configuration for a given run mode and reports every
// problem at once, so a misconfigured deployment is fixed in one pass.
func (c *Config) Validate(mode string) error {
	var problems []string

	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	// Shared checks.
	switch c.Store.Driver {
	case "sqlite":
		check(c.Store.SQLitePath != "", "store.sqlite_path is required for the sqlite driver")
	case "postgres":
		check(c.Store.DatabaseURL != "", "store.database_url is required for the postgres driver")
	default:
		check(false, "store.driver must be sqlite or postgres")
	}
	check(c.Sim.UpsetCutoff >= 0 && c.Sim.UpsetCutoff <= 1, "sim.upset_cutoff must be between 0 and 1")
	check(c.Sim.UpsetProbability >= 0 && c.Sim.UpsetProbability <= 1, "sim.upset_probability must be between 0 and 1")
	switch c.Sim.Classifier {
	case "favorite", "threshold", "seedgap":
	default:
		check(false, "sim.classifier must be favorite, threshold, or seedgap")
	}
	check(c.Sim.MaxConcurrentYears >= 1 && c.Sim.MaxConcurrentYears <= 16, "sim.max_concurrent_years must be between 1 and 16")

	switch mode {
	case "simulate":
		check(c.Data.FixtureDir != "", "data.fixture_dir is required")
		check(len(c.Sim.TrainYears) > 0, "sim.train_years is required")
	case "serve":
		check(c.Data.FixtureDir != "", "data.fixture_dir is required")
		check(len(c.Sim.TrainYears) > 0, "sim.train_years is required")
		check(c.Server.Port > 0, "server.port must be > 0")
	case "runs", "export":
		// Store checks above are sufficient.
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}
