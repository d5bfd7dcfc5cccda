package model

import "time"

// RunStatus represents the current state of a simulation run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusLoading    RunStatus = "loading"
	RunStatusSimulating RunStatus = "simulating"
	RunStatusAssembling RunStatus = "assembling"
	RunStatusComplete   RunStatus = "complete"
	RunStatusFailed     RunStatus = "failed"
)

// SimRun represents a single bracket simulation for a tournament year.
type SimRun struct {
	ID        string     `json:"id"`
	Year      int        `json:"year"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the final outcome of a simulation run.
type RunResult struct {
	Champion string        `json:"champion"`
	Matchups int           `json:"matchups"`
	Upsets   int           `json:"upsets"`
	Phases   []PhaseResult `json:"phases"`
	Bracket  *Bracket      `json:"bracket,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// RoundPhase represents one simulated round within a run.
type RoundPhase struct {
	ID        string       `json:"id"`
	RunID     string       `json:"run_id"`
	Name      string       `json:"name"`
	Status    PhaseStatus  `json:"status"`
	Result    *PhaseResult `json:"result,omitempty"`
	StartedAt time.Time    `json:"started_at"`
}

// PhaseStatus represents the current state of a round phase.
type PhaseStatus string

const (
	PhaseStatusRunning  PhaseStatus = "running"
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// PhaseResult holds the outcome of a single simulated round.
type PhaseResult struct {
	Name     string         `json:"name"`
	Status   PhaseStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
