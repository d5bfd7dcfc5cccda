package feature

// Column names shared between the merge step and the feature transform. The
// favorite/underdog suffix convention is what the classifier was trained on,
// so these are part of the model contract, not cosmetics.
const (
	ColRound  = "Round"
	ColTarget = "Underdog_Upset"

	SideFavorite = "Favorite"
	SideUnderdog = "Underdog"

	ColSeedFavorite  = "Seed_" + SideFavorite
	ColSeedUnderdog  = "Seed_" + SideUnderdog
	ColTeamFavorite  = "Team_" + SideFavorite
	ColTeamUnderdog  = "Team_" + SideUnderdog
	ColConfFavorite  = "Conf_" + SideFavorite
	ColConfUnderdog  = "Conf_" + SideUnderdog
	ColScoreFavorite = "Score_" + SideFavorite
	ColScoreUnderdog = "Score_" + SideUnderdog
)

var sides = [...]string{SideFavorite, SideUnderdog}
