package model

// TeamSlot is one side of a matchup: a seeded team plus its final score when
// the game is historical. Score is nil for games that have not been played.
type TeamSlot struct {
	Seed  int      `json:"seed"`
	Name  string   `json:"name"`
	Score *float64 `json:"score,omitempty"`
}

// Empty reports whether the slot is an unfilled placeholder (a first-round
// slot waiting on a play-in winner).
func (s TeamSlot) Empty() bool {
	return s.Name == ""
}

// Matchup pairs two team slots within a round. Side order carries no
// favorite/underdog meaning; that is resolved separately by seed.
type Matchup struct {
	Round Round    `json:"round"`
	A     TeamSlot `json:"a"`
	B     TeamSlot `json:"b"`
}

// HasPlaceholder reports whether either side is an unfilled play-in slot.
func (m Matchup) HasPlaceholder() bool {
	return m.A.Empty() || m.B.Empty()
}

// ResolvedMatchup is a matchup after favorite/underdog assignment.
type ResolvedMatchup struct {
	Round    Round    `json:"round"`
	Favorite TeamSlot `json:"favorite"`
	Underdog TeamSlot `json:"underdog"`
}

// OutcomeRow is one resolved matchup with its predicted (or historical)
// result. Upset is 1 when the underdog won.
type OutcomeRow struct {
	Round        Round  `json:"round"`
	FavoriteSeed int    `json:"favorite_seed"`
	Favorite     string `json:"favorite"`
	UnderdogSeed int    `json:"underdog_seed"`
	Underdog     string `json:"underdog"`
	Upset        int    `json:"upset"`
}

// Winner returns the winning team's name implied by the upset indicator.
func (o OutcomeRow) Winner() string {
	if o.Upset == 1 {
		return o.Underdog
	}
	return o.Favorite
}

// WinnerSeed returns the winning team's seed.
func (o OutcomeRow) WinnerSeed() int {
	if o.Upset == 1 {
		return o.UnderdogSeed
	}
	return o.FavoriteSeed
}

// BracketRow is one line of the final bracket artifact, with the round label
// converted back to its display string and the winner spelled out.
type BracketRow struct {
	Round        string `json:"round"`
	FavoriteSeed int    `json:"favorite_seed"`
	Favorite     string `json:"favorite"`
	UnderdogSeed int    `json:"underdog_seed"`
	Underdog     string `json:"underdog"`
	Upset        int    `json:"upset"`
	Winner       string `json:"winner"`
}

// Bracket is the full prediction artifact for one tournament year. It is
// read-only once produced.
type Bracket struct {
	Year int          `json:"year"`
	Rows []BracketRow `json:"rows"`
}

// Champion returns the winner of the final row, or "" for an empty bracket.
func (b *Bracket) Champion() string {
	if b == nil || len(b.Rows) == 0 {
		return ""
	}
	return b.Rows[len(b.Rows)-1].Winner
}
