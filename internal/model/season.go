package model

// SeasonTeam holds one team's regular-season record: its conference plus a
// flat set of numeric season statistics keyed by stat name.
type SeasonTeam struct {
	School string             `json:"school"`
	Conf   string             `json:"conf"`
	Stats  map[string]float64 `json:"stats"`
}

// WinPct returns the team's overall regular-season win percentage, the
// tiebreak signal for equal-seed matchups. ok is false when the stat is
// missing from the record.
func (t SeasonTeam) WinPct() (float64, bool) {
	v, ok := t.Stats["W-L%"]
	return v, ok
}

// SeasonTable is a year's season statistics keyed by team name, already
// deduplicated by team by the provider.
type SeasonTable struct {
	Year int `json:"year"`
	// StatCols is the ordered list of stat names present on every team.
	StatCols []string `json:"stat_cols"`
	// BasicCols is the subset of stat names sourced from the basic season
	// table; only these are eligible for total-to-per-game conversion.
	BasicCols []string `json:"basic_cols"`
	Teams     map[string]SeasonTeam `json:"teams"`
}

// Team looks up a team's season record by name.
func (s *SeasonTable) Team(name string) (SeasonTeam, bool) {
	t, ok := s.Teams[name]
	return t, ok
}

// Conferences returns every conference value in the table, with duplicates.
func (s *SeasonTable) Conferences() []string {
	confs := make([]string, 0, len(s.Teams))
	for _, t := range s.Teams {
		confs = append(confs, t.Conf)
	}
	return confs
}
