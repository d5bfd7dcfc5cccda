package bracket

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/bracket-cli/internal/model"
)

// FillPlayIn patches first-round placeholder slots with play-in winners,
// matched by position: the i-th play-in winner takes the i-th empty slot.
// The bracket provider guarantees that both sequences are in the same
// region order; a count mismatch means that guarantee is broken, and
// mis-assigning winners to the wrong region would corrupt every later
// round, so it fails fast instead.
func FillPlayIn(firstRound []model.Matchup, playInOutcomes []model.OutcomeRow) error {
	var slots []*model.TeamSlot
	for i := range firstRound {
		if firstRound[i].A.Empty() {
			slots = append(slots, &firstRound[i].A)
		}
		if firstRound[i].B.Empty() {
			slots = append(slots, &firstRound[i].B)
		}
	}

	if len(slots) != len(playInOutcomes) {
		return eris.Errorf("bracket: %d play-in winners for %d first-round placeholder slots", len(playInOutcomes), len(slots))
	}

	for i, outcome := range playInOutcomes {
		slots[i].Seed = outcome.WinnerSeed()
		slots[i].Name = outcome.Winner()
	}
	return nil
}
