// Package store persists simulation runs, their per-round phases, and the
// resulting bracket artifacts. Two backends share one interface: sqlite for
// local single-user work and postgres for shared deployments.
package store

import (
	"context"

	"github.com/sells-group/bracket-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Year   int             `json:"year,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for bracket simulations.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, year int) (*model.SimRun, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunResult(ctx context.Context, runID string, result *model.RunResult) error
	GetRun(ctx context.Context, runID string) (*model.SimRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.SimRun, error)

	// Round phases
	CreatePhase(ctx context.Context, runID string, name string) (*model.RoundPhase, error)
	CompletePhase(ctx context.Context, phaseID string, result *model.PhaseResult) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
