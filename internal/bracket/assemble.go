package bracket

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/bracket-cli/internal/model"
)

// Assemble concatenates every round's outcome rows, in round order, into the
// final bracket artifact: one consistent schema across directly-known and
// generated rounds, round labels converted back to display strings, and the
// per-matchup winner spelled out. The result is read-only once produced.
func Assemble(year int, rounds [][]model.OutcomeRow) (*model.Bracket, error) {
	total := 0
	for _, outcomes := range rounds {
		total += len(outcomes)
	}
	if total == 0 {
		return nil, eris.Errorf("bracket: no outcomes to assemble for %d", year)
	}

	b := &model.Bracket{Year: year, Rows: make([]model.BracketRow, 0, total)}
	prev := model.Round(-1)
	for _, outcomes := range rounds {
		for _, o := range outcomes {
			if !o.Round.Valid() {
				return nil, eris.Errorf("bracket: outcome with invalid round %d", o.Round)
			}
			if o.Round < prev {
				return nil, eris.Errorf("bracket: rounds out of order (%s after %s)", o.Round.Label(), prev.Label())
			}
			prev = o.Round
			b.Rows = append(b.Rows, model.BracketRow{
				Round:        o.Round.Label(),
				FavoriteSeed: o.FavoriteSeed,
				Favorite:     o.Favorite,
				UnderdogSeed: o.UnderdogSeed,
				Underdog:     o.Underdog,
				Upset:        o.Upset,
				Winner:       o.Winner(),
			})
		}
	}
	return b, nil
}
