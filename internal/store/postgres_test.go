package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bracket-cli/internal/model"
)

func testTime() time.Time {
	return time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)
}

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgres_CreateRun(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(pgxmock.AnyArg(), 2026, string(model.RunStatusQueued), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(context.TODO(), 2026)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2026, run.Year)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateRunStatus(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE runs SET status`).
		WithArgs(string(model.RunStatusSimulating), pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateRunStatus(context.TODO(), "run-1", model.RunStatusSimulating)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateRunStatus_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE runs SET status`).
		WithArgs(string(model.RunStatusFailed), pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateRunStatus(context.TODO(), "missing", model.RunStatusFailed)
	assert.Error(t, err)
}

func TestPostgres_UpdateRunResult_CopiesBracketRows(t *testing.T) {
	s, mock := newMockStore(t)

	result := &model.RunResult{
		Champion: "Houston",
		Matchups: 1,
		Bracket: &model.Bracket{
			Year: 2026,
			Rows: []model.BracketRow{
				{Round: "National Championship", FavoriteSeed: 1, Favorite: "Houston", UnderdogSeed: 2, Underdog: "Tennessee", Upset: 0, Winner: "Houston"},
			},
		},
	}

	mock.ExpectExec(`UPDATE runs SET result`).
		WithArgs(pgxmock.AnyArg(), string(model.RunStatusComplete), pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM bracket_rows`).
		WithArgs("run-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCopyFrom([]string{"bracket_rows"}, bracketRowColumns).WillReturnResult(1)

	err := s.UpdateRunResult(context.TODO(), "run-1", result)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"id", "year", "status", "result", "created_at", "updated_at"}).
		AddRow("run-1", 2026, string(model.RunStatusComplete), []byte(`{"champion":"Houston"}`), testTime(), testTime())
	mock.ExpectQuery(`SELECT id, year, status, result, created_at, updated_at FROM runs WHERE id`).
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := s.GetRun(context.TODO(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 2026, run.Year)
	require.NotNil(t, run.Result)
	assert.Equal(t, "Houston", run.Result.Champion)
}

func TestPostgres_ListRuns_Filtered(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"id", "year", "status", "result", "created_at", "updated_at"}).
		AddRow("run-1", 2026, string(model.RunStatusComplete), []byte(nil), testTime(), testTime())
	mock.ExpectQuery(`SELECT id, year, status, result, created_at, updated_at FROM runs`).
		WithArgs(string(model.RunStatusComplete), 2026, 100).
		WillReturnRows(rows)

	runs, err := s.ListRuns(context.TODO(), RunFilter{Status: model.RunStatusComplete, Year: 2026})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}

func TestPostgres_Phases(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO round_phases`).
		WithArgs(pgxmock.AnyArg(), "run-1", "First Round", string(model.PhaseStatusRunning), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	phase, err := s.CreatePhase(context.TODO(), "run-1", "First Round")
	require.NoError(t, err)
	assert.Equal(t, "First Round", phase.Name)

	mock.ExpectExec(`UPDATE round_phases`).
		WithArgs(string(model.PhaseStatusComplete), pgxmock.AnyArg(), phase.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = s.CompletePhase(context.TODO(), phase.ID, &model.PhaseResult{
		Name:   "First Round",
		Status: model.PhaseStatusComplete,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
