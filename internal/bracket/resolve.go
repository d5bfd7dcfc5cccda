// Package bracket implements the matchup mechanics of a single-elimination
// tournament: favorite/underdog resolution, next-round generation, play-in
// slot filling, and final bracket assembly.
package bracket

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/bracket-cli/internal/model"
)

// WinPctLookup returns a team's regular-season win percentage, the tiebreak
// signal for equal-seed matchups. ok is false when no record exists.
type WinPctLookup func(team string) (float64, bool)

// ResolveFavorite assigns favorite/underdog roles for a matchup. The lower
// seed is the favorite; equal seeds fall back to regular-season win
// percentage. A matchup that cannot be disambiguated is a data error — the
// feature transform depends on every row having exactly one favorite.
func ResolveFavorite(m model.Matchup, winPct WinPctLookup) (model.ResolvedMatchup, error) {
	out := model.ResolvedMatchup{Round: m.Round}

	switch {
	case m.A.Seed < m.B.Seed:
		out.Favorite, out.Underdog = m.A, m.B
	case m.A.Seed > m.B.Seed:
		out.Favorite, out.Underdog = m.B, m.A
	default:
		if winPct == nil {
			return out, eris.Errorf("bracket: equal seeds %d for %s vs %s and no tiebreak source", m.A.Seed, m.A.Name, m.B.Name)
		}
		aPct, aOK := winPct(m.A.Name)
		bPct, bOK := winPct(m.B.Name)
		if !aOK || !bOK || aPct == bPct {
			return out, eris.Errorf("bracket: cannot resolve favorite for %s vs %s (equal seed %d, no win-pct tiebreak)", m.A.Name, m.B.Name, m.A.Seed)
		}
		if aPct > bPct {
			out.Favorite, out.Underdog = m.A, m.B
		} else {
			out.Favorite, out.Underdog = m.B, m.A
		}
	}
	return out, nil
}
