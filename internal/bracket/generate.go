package bracket

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/bracket-cli/internal/model"
)

// NextRound derives the following round's matchups by pairing consecutive
// winners of a completed round. Input order is significant: outcomes must be
// in bracket order so that paired indices 0&1, 2&3, … reflect true bracket
// adjacency. The result has exactly half as many rows and carries no scores.
func NextRound(outcomes []model.OutcomeRow) ([]model.Matchup, error) {
	if len(outcomes) == 0 {
		return nil, eris.New("bracket: cannot generate a round from zero outcomes")
	}
	if len(outcomes)%2 != 0 {
		return nil, eris.Errorf("bracket: odd winner count %d cannot be paired", len(outcomes))
	}

	next, ok := outcomes[0].Round.Next()
	if !ok {
		return nil, eris.Errorf("bracket: no round follows %s", outcomes[0].Round.Label())
	}

	matchups := make([]model.Matchup, 0, len(outcomes)/2)
	for i := 0; i < len(outcomes); i += 2 {
		matchups = append(matchups, model.Matchup{
			Round: next,
			A: model.TeamSlot{
				Seed: outcomes[i].WinnerSeed(),
				Name: outcomes[i].Winner(),
			},
			B: model.TeamSlot{
				Seed: outcomes[i+1].WinnerSeed(),
				Name: outcomes[i+1].Winner(),
			},
		})
	}
	return matchups, nil
}
