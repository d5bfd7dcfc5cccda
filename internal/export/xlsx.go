// Package export renders stored bracket artifacts into shareable files.
package export

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/bracket-cli/internal/model"
)

var headerCells = []string{
	"Round", "Favorite Seed", "Favorite", "Underdog Seed", "Underdog", "Upset", "Winner",
}

// WriteXLSX writes a bracket as a single-sheet workbook, one row per game in
// play order, champion on the last row.
func WriteXLSX(b *model.Bracket, path string) error {
	if b == nil || len(b.Rows) == 0 {
		return eris.New("export: empty bracket")
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(fmt.Sprintf("%d Bracket", b.Year))
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range headerCells {
		header.AddCell().SetString(h)
	}

	for _, row := range b.Rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.Round)
		r.AddCell().SetInt(row.FavoriteSeed)
		r.AddCell().SetString(row.Favorite)
		r.AddCell().SetInt(row.UnderdogSeed)
		r.AddCell().SetString(row.Underdog)
		r.AddCell().SetInt(row.Upset)
		r.AddCell().SetString(row.Winner)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
