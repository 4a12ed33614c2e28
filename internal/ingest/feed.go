// Package ingest loads the morning odds feed into the database: the
// scraper's betting options are filtered to today, grouped into games, and
// written in batches alongside their odds.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// FeedRow is one betting option from the scraper's feed.
type FeedRow struct {
	Date   string  `json:"date"`
	Time   string  `json:"time"`
	Sport  string  `json:"sport"`
	League string  `json:"league"`
	Match  string  `json:"match"`
	Market string  `json:"market"`
	Option string  `json:"option"`
	Odd    FeedOdd `json:"odd"`
}

// FeedOdd is a decimal odd that the scraper sometimes emits as a string.
type FeedOdd float64

func (o *FeedOdd) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*o = FeedOdd(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("odd is neither number nor string: %s", data)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse odd %q: %w", s, err)
	}
	*o = FeedOdd(n)
	return nil
}

// MatchedGame pairs a match name with its scraped results page.
type MatchedGame struct {
	Match      string `json:"match"`
	ResultsURL string `json:"flashscoreUrl"`
}

// LoadFeed reads the scraper's odds feed JSON.
func LoadFeed(path string) ([]FeedRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read odds feed: %w", err)
	}
	var rows []FeedRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode odds feed: %w", err)
	}
	return rows, nil
}

// LoadMatchedGames reads the URL-matcher output. A missing file is not an
// error; games simply load without results URLs and get skipped.
func LoadMatchedGames(path string) ([]MatchedGame, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read matched games: %w", err)
	}
	var games []MatchedGame
	if err := json.Unmarshal(raw, &games); err != nil {
		return nil, fmt.Errorf("decode matched games: %w", err)
	}
	return games, nil
}

// ResultsURLFor finds the results page for a match name, or "".
func ResultsURLFor(match string, matched []MatchedGame) string {
	for _, g := range matched {
		if g.Match == match {
			return g.ResultsURL
		}
	}
	return ""
}
