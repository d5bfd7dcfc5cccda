package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "bracket_rows", []string{"run_id", "round"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := [][]any{
		{"run-1", 0, "Gonzaga"},
		{"run-1", 1, "Houston"},
	}
	mock.ExpectCopyFrom(pgx.Identifier{"bracket_rows"}, []string{"run_id", "ord", "winner"}).
		WillReturnResult(2)

	n, err := CopyFrom(context.TODO(), mock, "bracket_rows", []string{"run_id", "ord", "winner"}, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"bracket_rows"}, []string{"run_id"}).
		WillReturnError(assert.AnError)

	_, err = CopyFrom(context.TODO(), mock, "bracket_rows", []string{"run_id"}, [][]any{{"run-1"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO bracket_rows")
}
