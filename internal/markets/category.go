// Package markets turns a game's raw odds rows into named, categorized
// betting markets and keeps per-game pin state for the popular tab.
package markets

import "strings"

// Category is a display tab for a market.
type Category string

const (
	CategoryPopular   Category = "popular"
	CategoryMain      Category = "main"
	CategoryGoals     Category = "goals"
	CategoryHandicaps Category = "handicaps"
	CategoryPlayers   Category = "players"
	CategoryOther     Category = "other"
)

// Categories lists the display tabs in presentation order. Popular is
// synthesized from pins and main markets, never assigned directly.
var Categories = []Category{
	CategoryPopular,
	CategoryMain,
	CategoryGoals,
	CategoryHandicaps,
	CategoryPlayers,
	CategoryOther,
}

// Categorize buckets a market name into a display category. Keyword groups
// are tested in priority order against the lower-cased name.
func Categorize(marketName string) Category {
	name := strings.ToLower(marketName)
	switch {
	case containsAny(name, "handicap", "spread", "line"):
		return CategoryHandicaps
	case containsAny(name, "goal", "over", "under", "total"):
		return CategoryGoals
	case containsAny(name, "player", "scorer", "assist"):
		return CategoryPlayers
	case containsAny(name, "full time", "match", "winner", "1x2"):
		return CategoryMain
	default:
		return CategoryOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
