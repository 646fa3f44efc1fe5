package treasury

// Rank is one step of the titled progression ladder.
type Rank struct {
	Title string `json:"title"`
	MinXP int    `json:"minXP"`
}

// Ranks is the ladder, ordered by ascending XP threshold. The current
// rank is the highest index whose MinXP the player's total XP meets.
var Ranks = []Rank{
	{Title: "Initiate of Numbers", MinXP: 0},
	{Title: "Petal Adept", MinXP: 100},
	{Title: "Blossom Scholar", MinXP: 250},
	{Title: "Rune Weaver", MinXP: 500},
	{Title: "Flame Tactician", MinXP: 900},
	{Title: "Dragon's Pupil", MinXP: 1400},
	{Title: "Sakura Warden", MinXP: 2000},
	{Title: "Citadel Guardian", MinXP: 2700},
	{Title: "Celestial Forgeborn", MinXP: 3500},
	{Title: "Eternal Dualist", MinXP: 5000},
}

// rankFor returns the highest rank index whose threshold totalXP meets,
// never below current. Rank only climbs.
func rankFor(current, totalXP int) int {
	r := current
	for r < len(Ranks)-1 && totalXP >= Ranks[r+1].MinXP {
		r++
	}
	return r
}
