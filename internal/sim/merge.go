package sim

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bracket-cli/internal/bracket"
	"github.com/sells-group/bracket-cli/internal/feature"
	"github.com/sells-group/bracket-cli/internal/frame"
	"github.com/sells-group/bracket-cli/internal/model"
	"github.com/sells-group/bracket-cli/internal/names"
)

// TeamIndex resolves bracket-source team names to season records. Season
// school names are mapped through the normalization dictionaries at build
// time; lookups fall back to a folded comparison key so punctuation or
// casing drift between sources does not read as a missing team.
type TeamIndex struct {
	byName map[string]model.SeasonTeam
	byKey  map[string]model.SeasonTeam
}

// NewTeamIndex builds the lookup index for one season table.
func NewTeamIndex(season *model.SeasonTable, norm *names.Normalizer) *TeamIndex {
	idx := &TeamIndex{
		byName: make(map[string]model.SeasonTeam, len(season.Teams)),
		byKey:  make(map[string]model.SeasonTeam, len(season.Teams)),
	}
	for school, team := range season.Teams {
		bracketName := norm.BracketName(school)
		idx.byName[bracketName] = team
		idx.byKey[names.Key(bracketName)] = team
	}
	return idx
}

// Lookup returns the season record for a bracket-source team name.
func (idx *TeamIndex) Lookup(team string) (model.SeasonTeam, bool) {
	if t, ok := idx.byName[team]; ok {
		return t, true
	}
	t, ok := idx.byKey[names.Key(team)]
	return t, ok
}

// WinPct adapts the index to the favorite resolver's tiebreak lookup.
func (idx *TeamIndex) WinPct(team string) (float64, bool) {
	t, ok := idx.Lookup(team)
	if !ok {
		return 0, false
	}
	return t.WinPct()
}

// BuildMatchupFrame resolves favorites for each matchup and merges both
// sides' season statistics into one row per game, columns suffixed by side.
// Scores are carried through when every matchup has them (historical rounds)
// and omitted when none do; a team without a season record aborts the merge —
// a silently dropped team would propagate a wrong bracket through every
// later round.
func BuildMatchupFrame(matchups []model.Matchup, season *model.SeasonTable, norm *names.Normalizer) (*frame.Frame, []model.ResolvedMatchup, error) {
	if len(matchups) == 0 {
		return nil, nil, eris.New("sim: no matchups to merge")
	}

	idx := NewTeamIndex(season, norm)
	resolved := make([]model.ResolvedMatchup, 0, len(matchups))
	for _, m := range matchups {
		if m.HasPlaceholder() {
			return nil, nil, eris.Errorf("sim: unfilled placeholder in %s matchup", m.Round.Label())
		}
		r, err := bracket.ResolveFavorite(m, idx.WinPct)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, r)
	}

	scored := 0
	for _, r := range resolved {
		if r.Favorite.Score != nil && r.Underdog.Score != nil {
			scored++
		}
	}
	if scored != 0 && scored != len(resolved) {
		return nil, nil, eris.Errorf("sim: %d of %d matchups carry scores; rounds are scored all-or-nothing", scored, len(resolved))
	}

	n := len(resolved)
	f := frame.New(n)

	rounds := make([]float64, n)
	for i, r := range resolved {
		rounds[i] = float64(r.Round)
	}
	if err := f.SetNum(feature.ColRound, rounds); err != nil {
		return nil, nil, err
	}

	for _, side := range []struct {
		name string
		slot func(model.ResolvedMatchup) model.TeamSlot
	}{
		{feature.SideFavorite, func(r model.ResolvedMatchup) model.TeamSlot { return r.Favorite }},
		{feature.SideUnderdog, func(r model.ResolvedMatchup) model.TeamSlot { return r.Underdog }},
	} {
		seeds := make([]float64, n)
		teams := make([]string, n)
		confs := make([]string, n)
		stats := make(map[string][]float64, len(season.StatCols))
		for _, col := range season.StatCols {
			stats[col] = make([]float64, n)
		}

		for i, r := range resolved {
			slot := side.slot(r)
			record, ok := idx.Lookup(slot.Name)
			if !ok {
				return nil, nil, eris.Errorf("sim: no season record for %q in %d", slot.Name, season.Year)
			}
			seeds[i] = float64(slot.Seed)
			teams[i] = slot.Name
			confs[i] = record.Conf
			for _, col := range season.StatCols {
				v, ok := record.Stats[col]
				if !ok {
					v = math.NaN()
				}
				stats[col][i] = v
			}
		}

		if err := f.SetNum("Seed_"+side.name, seeds); err != nil {
			return nil, nil, err
		}
		if err := f.SetStr("Team_"+side.name, teams); err != nil {
			return nil, nil, err
		}
		if err := f.SetStr("Conf_"+side.name, confs); err != nil {
			return nil, nil, err
		}
		for _, col := range season.StatCols {
			if err := f.SetNum(col+"_"+side.name, stats[col]); err != nil {
				return nil, nil, err
			}
		}
	}

	if scored == len(resolved) {
		favScores := make([]float64, n)
		undScores := make([]float64, n)
		for i, r := range resolved {
			favScores[i] = *r.Favorite.Score
			undScores[i] = *r.Underdog.Score
		}
		if err := f.SetNum(feature.ColScoreFavorite, favScores); err != nil {
			return nil, nil, err
		}
		if err := f.SetNum(feature.ColScoreUnderdog, undScores); err != nil {
			return nil, nil, err
		}
	}

	return f, resolved, nil
}

// DeriveTarget converts historical final scores into the binary upset target
// (underdog outscored favorite) and drops the score columns, which would
// otherwise leak the outcome into the feature set.
func DeriveTarget(f *frame.Frame) error {
	favScores, okF := f.Num(feature.ColScoreFavorite)
	undScores, okU := f.Num(feature.ColScoreUnderdog)
	if !okF || !okU {
		return eris.New("sim: cannot derive target without both score columns")
	}

	target := make([]float64, f.Len())
	for i := range target {
		if undScores[i] > favScores[i] {
			target[i] = 1
		}
	}
	f.Drop(feature.ColScoreFavorite, feature.ColScoreUnderdog)
	return f.SetNum(feature.ColTarget, target)
}
