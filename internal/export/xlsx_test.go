package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/bracket-cli/internal/model"
)

func sampleBracket() *model.Bracket {
	return &model.Bracket{
		Year: 2026,
		Rows: []model.BracketRow{
			{Round: "Play-In", FavoriteSeed: 16, Favorite: "Wagner", UnderdogSeed: 16, Underdog: "Howard", Upset: 0, Winner: "Wagner"},
			{Round: "National Championship", FavoriteSeed: 1, Favorite: "Houston", UnderdogSeed: 2, Underdog: "Duke", Upset: 1, Winner: "Duke"},
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bracket.xlsx")
	require.NoError(t, WriteXLSX(sampleBracket(), path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	sheet, ok := f.Sheet["2026 Bracket"]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "Round", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Winner", sheet.Rows[0].Cells[6].String())

	assert.Equal(t, "Play-In", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "Wagner", sheet.Rows[1].Cells[2].String())

	last := sheet.Rows[2]
	assert.Equal(t, "National Championship", last.Cells[0].String())
	assert.Equal(t, "1", last.Cells[5].String())
	assert.Equal(t, "Duke", last.Cells[6].String())
}

func TestWriteXLSX_EmptyBracket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bracket.xlsx")

	err := WriteXLSX(nil, path)
	assert.Error(t, err)

	err = WriteXLSX(&model.Bracket{Year: 2026}, path)
	assert.Error(t, err)
}
