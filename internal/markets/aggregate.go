package markets

import (
	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
)

// Outcome is one priced selection within a market.
type Outcome struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Odds  float64   `json:"odds"`
}

// Market is a derived, non-persisted grouping of a game's odds sharing a
// market name. IDs are synthesized as "<game id>-<market name>" so pin state
// survives recomputation.
type Market struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Category Category  `json:"category"`
	Outcomes []Outcome `json:"outcomes"`
	Pinned   bool      `json:"pinned,omitempty"`
}

// MarketID builds the stable derived identifier for a game's market.
func MarketID(gameID uuid.UUID, marketName string) string {
	return gameID.String() + "-" + marketName
}

// DefaultMainForPopular is how many leading main markets back-fill the
// popular tab alongside pinned markets.
const DefaultMainForPopular = 3

// Build projects a game's raw odds into its market list. The sport's primary
// 1x2 market comes first when present; remaining markets keep first-seen
// order, and outcomes keep first-seen order within each market. The
// projection is pure: same inputs, same output.
func Build(game domain.Game, odds []domain.Odd, pinned map[string]bool) []Market {
	primaryName := game.Sport.PrimaryMarket()

	grouped := map[string][]domain.Odd{}
	order := []string{}
	for _, o := range odds {
		if _, ok := grouped[o.Market]; !ok {
			if o.Market != primaryName {
				order = append(order, o.Market)
			}
		}
		grouped[o.Market] = append(grouped[o.Market], o)
	}
	if _, ok := grouped[primaryName]; ok {
		order = append([]string{primaryName}, order...)
	}

	result := make([]Market, 0, len(order))
	for _, name := range order {
		id := MarketID(game.ID, name)
		m := Market{
			ID:       id,
			Name:     name,
			Category: Categorize(name),
			Pinned:   pinned[id],
		}
		for _, o := range grouped[name] {
			m.Outcomes = append(m.Outcomes, Outcome{ID: o.ID, Label: o.Option, Odds: o.Odd})
		}
		result = append(result, m)
	}
	return result
}

// Tabs groups markets by display category and synthesizes the popular tab:
// every pinned market followed by the first DefaultMainForPopular main
// markets, de-duplicated by market id with pinned entries keeping their slot.
func Tabs(marketList []Market) map[Category][]Market {
	grouped := map[Category][]Market{}
	for _, c := range Categories {
		grouped[c] = []Market{}
	}
	for _, m := range marketList {
		grouped[m.Category] = append(grouped[m.Category], m)
	}

	var candidates []Market
	for _, m := range marketList {
		if m.Pinned {
			candidates = append(candidates, m)
		}
	}
	main := grouped[CategoryMain]
	if len(main) > DefaultMainForPopular {
		main = main[:DefaultMainForPopular]
	}
	candidates = append(candidates, main...)

	seen := map[string]bool{}
	for _, m := range candidates {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		grouped[CategoryPopular] = append(grouped[CategoryPopular], m)
	}
	return grouped
}
