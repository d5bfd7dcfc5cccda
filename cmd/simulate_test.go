package main

import (
	"bytes"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"

	"github.com/sells-group/bracket-cli/internal/model"
)

func TestFormatSimResults(t *testing.T) {
	years := []int{2025, 2026}
	results := map[int]*model.RunResult{
		2025: {Champion: "Houston", Matchups: 67, Upsets: 12},
	}
	failures := map[int]error{
		2026: eris.New("no season record for \"Mystery State\""),
	}

	var buf bytes.Buffer
	formatSimResults(&buf, years, results, failures)

	output := buf.String()
	assert.Contains(t, output, "YEAR")
	assert.Contains(t, output, "CHAMPION")
	assert.Contains(t, output, "Houston")
	assert.Contains(t, output, "67")
	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "Mystery State")
}
