package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bracket-cli/internal/model"
)

func pctTable(pcts map[string]float64) WinPctLookup {
	return func(team string) (float64, bool) {
		p, ok := pcts[team]
		return p, ok
	}
}

func TestResolveFavorite_LowerSeedWins(t *testing.T) {
	m := model.Matchup{
		Round: model.RoundFirst,
		A:     model.TeamSlot{Seed: 3, Name: "Duke"},
		B:     model.TeamSlot{Seed: 11, Name: "Drake"},
	}
	r, err := ResolveFavorite(m, nil)
	require.NoError(t, err)
	assert.Equal(t, "Duke", r.Favorite.Name)
	assert.Equal(t, "Drake", r.Underdog.Name)

	// Sides swapped, same resolution.
	m.A, m.B = m.B, m.A
	r, err = ResolveFavorite(m, nil)
	require.NoError(t, err)
	assert.Equal(t, "Duke", r.Favorite.Name)
}

func TestResolveFavorite_EqualSeedsTiebreak(t *testing.T) {
	m := model.Matchup{
		Round: model.RoundFinalFour,
		A:     model.TeamSlot{Seed: 5, Name: "Gonzaga"},
		B:     model.TeamSlot{Seed: 5, Name: "Auburn"},
	}
	r, err := ResolveFavorite(m, pctTable(map[string]float64{"Gonzaga": 0.88, "Auburn": 0.79}))
	require.NoError(t, err)
	assert.Equal(t, "Gonzaga", r.Favorite.Name)
	assert.Equal(t, "Auburn", r.Underdog.Name)
}

func TestResolveFavorite_TieTieIsDataError(t *testing.T) {
	m := model.Matchup{
		A: model.TeamSlot{Seed: 5, Name: "Gonzaga"},
		B: model.TeamSlot{Seed: 5, Name: "Auburn"},
	}

	// Equal win percentages: no signal to guess from.
	_, err := ResolveFavorite(m, pctTable(map[string]float64{"Gonzaga": 0.8, "Auburn": 0.8}))
	assert.Error(t, err)

	// Missing record on one side.
	_, err = ResolveFavorite(m, pctTable(map[string]float64{"Gonzaga": 0.8}))
	assert.Error(t, err)

	// No tiebreak source at all.
	_, err = ResolveFavorite(m, nil)
	assert.Error(t, err)
}

func TestNextRound_PairsConsecutiveWinners(t *testing.T) {
	outcomes := []model.OutcomeRow{
		{Round: model.RoundSecond, FavoriteSeed: 1, Favorite: "Houston", UnderdogSeed: 8, Underdog: "Memphis", Upset: 0},
		{Round: model.RoundSecond, FavoriteSeed: 4, Favorite: "Kansas", UnderdogSeed: 5, Underdog: "Marquette", Upset: 1},
		{Round: model.RoundSecond, FavoriteSeed: 2, Favorite: "Tennessee", UnderdogSeed: 7, Underdog: "Dayton", Upset: 0},
		{Round: model.RoundSecond, FavoriteSeed: 3, Favorite: "Baylor", UnderdogSeed: 6, Underdog: "TCU", Upset: 0},
	}

	next, err := NextRound(outcomes)
	require.NoError(t, err)
	require.Len(t, next, 2)

	assert.Equal(t, model.RoundSweetSixteen, next[0].Round)
	assert.Equal(t, model.TeamSlot{Seed: 1, Name: "Houston"}, next[0].A)
	assert.Equal(t, model.TeamSlot{Seed: 5, Name: "Marquette"}, next[0].B)
	assert.Equal(t, model.TeamSlot{Seed: 2, Name: "Tennessee"}, next[1].A)
	assert.Equal(t, model.TeamSlot{Seed: 3, Name: "Baylor"}, next[1].B)

	// Generated matchups carry no scores.
	assert.Nil(t, next[0].A.Score)
	assert.Nil(t, next[0].B.Score)
}

func TestNextRound_OddCountErrors(t *testing.T) {
	outcomes := []model.OutcomeRow{
		{Round: model.RoundSecond, Favorite: "A", Underdog: "B"},
		{Round: model.RoundSecond, Favorite: "C", Underdog: "D"},
		{Round: model.RoundSecond, Favorite: "E", Underdog: "F"},
	}
	_, err := NextRound(outcomes)
	assert.Error(t, err)
}

func TestNextRound_EmptyErrors(t *testing.T) {
	_, err := NextRound(nil)
	assert.Error(t, err)
}

func TestNextRound_NoRoundAfterChampionship(t *testing.T) {
	outcomes := []model.OutcomeRow{
		{Round: model.RoundChampionship, Favorite: "A", Underdog: "B"},
		{Round: model.RoundChampionship, Favorite: "C", Underdog: "D"},
	}
	_, err := NextRound(outcomes)
	assert.Error(t, err)
}

func TestNextRound_HalvingInvariant(t *testing.T) {
	outcomes := make([]model.OutcomeRow, 16)
	for i := range outcomes {
		outcomes[i] = model.OutcomeRow{
			Round:        model.RoundFirst,
			FavoriteSeed: i + 1, Favorite: "F", UnderdogSeed: 16 - i, Underdog: "U",
		}
	}
	next, err := NextRound(outcomes)
	require.NoError(t, err)
	assert.Len(t, next, 8)
}

func playInFirstRound() []model.Matchup {
	return []model.Matchup{
		{Round: model.RoundFirst, A: model.TeamSlot{Seed: 1, Name: "Houston"}, B: model.TeamSlot{Seed: 16}},
		{Round: model.RoundFirst, A: model.TeamSlot{Seed: 8, Name: "Memphis"}, B: model.TeamSlot{Seed: 9, Name: "Creighton"}},
		{Round: model.RoundFirst, A: model.TeamSlot{Seed: 6, Name: "BYU"}, B: model.TeamSlot{Seed: 11}},
	}
}

func TestFillPlayIn(t *testing.T) {
	first := playInFirstRound()
	playIn := []model.OutcomeRow{
		{Round: model.RoundPlayIn, FavoriteSeed: 16, Favorite: "Wagner", UnderdogSeed: 16, Underdog: "Howard", Upset: 0},
		{Round: model.RoundPlayIn, FavoriteSeed: 11, Favorite: "Colorado", UnderdogSeed: 11, Underdog: "Boise State", Upset: 1},
	}

	require.NoError(t, FillPlayIn(first, playIn))

	// Zero placeholder slots remain and winners landed in order.
	for _, m := range first {
		assert.False(t, m.HasPlaceholder())
	}
	assert.Equal(t, "Wagner", first[0].B.Name)
	assert.Equal(t, 16, first[0].B.Seed)
	assert.Equal(t, "Boise State", first[2].B.Name)
}

func TestFillPlayIn_CountMismatch(t *testing.T) {
	first := playInFirstRound()
	playIn := []model.OutcomeRow{
		{Round: model.RoundPlayIn, Favorite: "Wagner", Underdog: "Howard"},
	}
	err := FillPlayIn(first, playIn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placeholder")
}

func TestFillPlayIn_FourForFour(t *testing.T) {
	first := []model.Matchup{
		{A: model.TeamSlot{Seed: 1, Name: "A"}, B: model.TeamSlot{Seed: 16}},
		{A: model.TeamSlot{Seed: 8, Name: "B"}, B: model.TeamSlot{Seed: 9, Name: "C"}},
		{A: model.TeamSlot{Seed: 6, Name: "D"}, B: model.TeamSlot{Seed: 11}},
		{A: model.TeamSlot{Seed: 12, Name: "E"}, B: model.TeamSlot{Seed: 5, Name: "F"}},
		{A: model.TeamSlot{Seed: 10}, B: model.TeamSlot{Seed: 7, Name: "G"}},
		{A: model.TeamSlot{Seed: 16}, B: model.TeamSlot{Seed: 1, Name: "H"}},
	}
	playIn := []model.OutcomeRow{
		{FavoriteSeed: 16, Favorite: "P1", UnderdogSeed: 16, Underdog: "Q1"},
		{FavoriteSeed: 11, Favorite: "P2", UnderdogSeed: 11, Underdog: "Q2"},
		{FavoriteSeed: 10, Favorite: "P3", UnderdogSeed: 10, Underdog: "Q3"},
		{FavoriteSeed: 16, Favorite: "P4", UnderdogSeed: 16, Underdog: "Q4", Upset: 1},
	}

	require.NoError(t, FillPlayIn(first, playIn))
	for _, m := range first {
		assert.False(t, m.HasPlaceholder())
	}
	assert.Equal(t, "P3", first[4].A.Name)
	assert.Equal(t, "Q4", first[5].A.Name)
}

func TestAssemble(t *testing.T) {
	rounds := [][]model.OutcomeRow{
		{
			{Round: model.RoundFinalFour, FavoriteSeed: 1, Favorite: "Houston", UnderdogSeed: 4, Underdog: "Kansas", Upset: 0},
			{Round: model.RoundFinalFour, FavoriteSeed: 2, Favorite: "Tennessee", UnderdogSeed: 3, Underdog: "Baylor", Upset: 1},
		},
		{
			{Round: model.RoundChampionship, FavoriteSeed: 1, Favorite: "Houston", UnderdogSeed: 3, Underdog: "Baylor", Upset: 0},
		},
	}

	b, err := Assemble(2026, rounds)
	require.NoError(t, err)
	require.Len(t, b.Rows, 3)

	assert.Equal(t, "Final Four", b.Rows[0].Round)
	assert.Equal(t, "Houston", b.Rows[0].Winner)
	assert.Equal(t, "Baylor", b.Rows[1].Winner)
	assert.Equal(t, "National Championship", b.Rows[2].Round)
	assert.Equal(t, "Houston", b.Champion())
}

func TestAssemble_Empty(t *testing.T) {
	_, err := Assemble(2026, nil)
	assert.Error(t, err)
}

func TestAssemble_OutOfOrderRounds(t *testing.T) {
	rounds := [][]model.OutcomeRow{
		{{Round: model.RoundChampionship, Favorite: "A", Underdog: "B"}},
		{{Round: model.RoundFinalFour, Favorite: "C", Underdog: "D"}},
	}
	_, err := Assemble(2026, rounds)
	assert.Error(t, err)
}

func TestAssemble_InvalidRound(t *testing.T) {
	rounds := [][]model.OutcomeRow{
		{{Round: model.Round(9), Favorite: "A", Underdog: "B"}},
	}
	_, err := Assemble(2026, rounds)
	assert.Error(t, err)
}
