package sim

import (
	"context"
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bracket-cli/internal/feature"
	"github.com/sells-group/bracket-cli/internal/model"
	"github.com/sells-group/bracket-cli/internal/store"
)

// seedOrder is the standard within-region first-round pairing order. Adjacent
// matchups feed the same second-round game.
var seedOrder = [8][2]int{
	{1, 16}, {8, 9}, {5, 12}, {4, 13}, {6, 11}, {3, 14}, {7, 10}, {2, 15},
}

var testConfs = [...]string{"ACC", "Big 12", "Big East", "SEC"}

func teamName(region, seed int) string {
	return fmt.Sprintf("Team %d-%02d", region, seed)
}

// teamPct gives every team a distinct win percentage, descending by region
// then seed, so equal-seed matchups always resolve and region 0's one seed
// outranks the other one seeds.
func teamPct(region, seed int) float64 {
	return 0.95 - float64(region)*0.01 - float64(seed)*0.002
}

func teamStats(region, seed int, pct float64) map[string]float64 {
	return map[string]float64{
		"G":      34,
		"W":      34 * pct,
		"L":      34 * (1 - pct),
		"SRS":    25 - float64(seed),
		"TRB":    1200 - float64(seed)*12 - float64(region),
		"Conf_W": 18 - float64(seed)/2,
		"Conf_L": 2 + float64(seed)/2,
		"W-L%":   pct,
	}
}

var testStatCols = []string{"G", "W", "L", "SRS", "TRB", "Conf_W", "Conf_L", "W-L%"}

// playInSlots lists which first-round slots come from play-in games:
// (region, matchup index within seedOrder). Regions 0 and 1 play in at the 16
// line, regions 2 and 3 at the 11 line.
var playInSlots = [4][2]int{{0, 0}, {1, 0}, {2, 4}, {3, 4}}

func playInName(game int, side string) string {
	return fmt.Sprintf("PlayIn %d-%s", game, side)
}

// testSeason builds a season table covering all 64 bracket teams plus the 8
// play-in teams.
func testSeason(year int) *model.SeasonTable {
	teams := make(map[string]model.SeasonTeam)
	for region := 0; region < 4; region++ {
		for seed := 1; seed <= 16; seed++ {
			pct := teamPct(region, seed)
			teams[teamName(region, seed)] = model.SeasonTeam{
				School: teamName(region, seed),
				Conf:   testConfs[region],
				Stats:  teamStats(region, seed, pct),
			}
		}
	}
	for game := 0; game < 4; game++ {
		seed := 16
		if game >= 2 {
			seed = 11
		}
		// Side A gets the better record so it both is the favorite and wins.
		for i, side := range []string{"A", "B"} {
			pct := 0.70 - float64(game)*0.01 - float64(i)*0.005
			teams[playInName(game, side)] = model.SeasonTeam{
				School: playInName(game, side),
				Conf:   testConfs[game],
				Stats:  teamStats(game, seed, pct),
			}
		}
	}
	return &model.SeasonTable{
		Year:      year,
		StatCols:  testStatCols,
		BasicCols: testStatCols,
		Teams:     teams,
	}
}

func slot(name string, seed int) model.TeamSlot {
	return model.TeamSlot{Seed: seed, Name: name}
}

func scoredSlot(name string, seed int, score float64) model.TeamSlot {
	return model.TeamSlot{Seed: seed, Name: name, Score: &score}
}

// playInMatchups returns the four play-in games, scored when asked.
func playInMatchups(scored bool) []model.Matchup {
	games := make([]model.Matchup, 0, 4)
	for game := 0; game < 4; game++ {
		seed := 16
		if game >= 2 {
			seed = 11
		}
		m := model.Matchup{
			Round: model.RoundPlayIn,
			A:     slot(playInName(game, "A"), seed),
			B:     slot(playInName(game, "B"), seed),
		}
		if scored {
			m.A = scoredSlot(playInName(game, "A"), seed, 78)
			m.B = scoredSlot(playInName(game, "B"), seed, 64)
		}
		games = append(games, m)
	}
	return games
}

// firstRoundMatchups returns all 32 first-round games in bracket order. With
// filled=false the play-in slots are placeholders; with filled=true they hold
// the side-A play-in winners.
func firstRoundMatchups(filled bool) []model.Matchup {
	var games []model.Matchup
	for region := 0; region < 4; region++ {
		for mi, pair := range seedOrder {
			m := model.Matchup{
				Round: model.RoundFirst,
				A:     slot(teamName(region, pair[0]), pair[0]),
				B:     slot(teamName(region, pair[1]), pair[1]),
			}
			for game, ps := range playInSlots {
				if ps[0] == region && ps[1] == mi {
					if filled {
						m.B = slot(playInName(game, "A"), pair[1])
					} else {
						m.B = model.TeamSlot{Seed: pair[1]}
					}
				}
			}
			games = append(games, m)
		}
	}
	return games
}

// expectedWinner mirrors the favorite resolution: lower seed, then better
// record. With a favorite-wins classifier the favorite is also the winner.
func expectedWinner(a, b model.TeamSlot, season *model.SeasonTable) model.TeamSlot {
	if a.Seed != b.Seed {
		if a.Seed < b.Seed {
			return a
		}
		return b
	}
	pa, _ := season.Teams[a.Name].WinPct()
	pb, _ := season.Teams[b.Name].WinPct()
	if pa >= pb {
		return a
	}
	return b
}

// historicalRounds plays out a full chalk tournament with scores, producing
// the seven scored rounds a historical bracket source would supply.
func historicalRounds(season *model.SeasonTable) [][]model.Matchup {
	rounds := [][]model.Matchup{playInMatchups(true)}

	cur := firstRoundMatchups(true)
	round := model.RoundFirst
	for {
		scored := make([]model.Matchup, len(cur))
		for i, m := range cur {
			win := expectedWinner(m.A, m.B, season)
			s := m
			if win.Name == m.A.Name {
				s.A = scoredSlot(m.A.Name, m.A.Seed, 80)
				s.B = scoredSlot(m.B.Name, m.B.Seed, 61)
			} else {
				s.A = scoredSlot(m.A.Name, m.A.Seed, 61)
				s.B = scoredSlot(m.B.Name, m.B.Seed, 80)
			}
			scored[i] = s
		}
		rounds = append(rounds, scored)

		next, ok := round.Next()
		if !ok {
			break
		}
		var gen []model.Matchup
		for i := 0; i < len(scored); i += 2 {
			w1 := expectedWinner(scored[i].A, scored[i].B, season)
			w2 := expectedWinner(scored[i+1].A, scored[i+1].B, season)
			gen = append(gen, model.Matchup{
				Round: next,
				A:     slot(w1.Name, w1.Seed),
				B:     slot(w2.Name, w2.Seed),
			})
		}
		cur = gen
		round = next
	}
	return rounds
}

// fixtureSource backs both provider interfaces from in-memory tables.
type fixtureSource struct {
	seasons map[int]*model.SeasonTable
	rounds  map[int][][]model.Matchup
}

func (s *fixtureSource) Season(_ context.Context, year int) (*model.SeasonTable, error) {
	t, ok := s.seasons[year]
	if !ok {
		return nil, eris.Errorf("no season fixture for %d", year)
	}
	return t, nil
}

func (s *fixtureSource) Rounds(_ context.Context, year int) ([][]model.Matchup, error) {
	r, ok := s.rounds[year]
	if !ok {
		return nil, eris.Errorf("no bracket fixture for %d", year)
	}
	return r, nil
}

// newTournamentSource sets up a historical 2025 and a to-be-predicted 2026.
func newTournamentSource() *fixtureSource {
	s2025 := testSeason(2025)
	s2026 := testSeason(2026)
	return &fixtureSource{
		seasons: map[int]*model.SeasonTable{2025: s2025, 2026: s2026},
		rounds: map[int][][]model.Matchup{
			2025: historicalRounds(s2025),
			2026: {playInMatchups(false), firstRoundMatchups(false)},
		},
	}
}

// fitTransformer fits the feature transformer on the historical corpus.
func fitTransformer(t *testing.T, src *fixtureSource) *feature.Transformer {
	t.Helper()
	builder := &DatasetBuilder{Seasons: src, Brackets: src}
	corpus, err := builder.Build(context.TODO(), []int{2025})
	require.NoError(t, err)

	tr := &feature.Transformer{BasicCols: testStatCols}
	require.NoError(t, tr.Fit(corpus, corpus))
	return tr
}

func newSimStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.TODO()))
	t.Cleanup(func() { s.Close() })
	return s
}
