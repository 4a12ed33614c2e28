package ingest

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// Event is one game's worth of feed rows.
type Event struct {
	EventID string
	Date    string
	Time    string
	Sport   string
	League  string
	Match   string
	Odds    []FeedRow
}

// GroupToday filters the feed to today's rows and groups them into events,
// keyed by date, start time and match name. Event order follows first
// appearance in the feed.
func GroupToday(rows []FeedRow, now time.Time) []Event {
	today := now.Format("2006-01-02")

	var (
		events []Event
		index  = map[string]int{}
	)
	for _, row := range rows {
		if row.Date != today {
			continue
		}

		key := row.Date + "|" + row.Time + "|" + row.Match
		i, ok := index[key]
		if !ok {
			i = len(events)
			index[key] = i
			events = append(events, Event{
				EventID: deriveEventID(row),
				Date:    row.Date,
				Time:    row.Time,
				Sport:   row.Sport,
				League:  row.League,
				Match:   row.Match,
			})
		}
		events[i].Odds = append(events[i].Odds, row)
	}
	return events
}

// deriveEventID builds a stable id from the row's sport, date, start time
// and a short hash of the match name.
func deriveEventID(row FeedRow) string {
	sport := row.Sport
	if len(sport) > 3 {
		sport = sport[:3]
	}

	h := fnv.New32a()
	h.Write([]byte(row.Match))

	return fmt.Sprintf("%s_%s_%s_%d",
		sport, row.Date, strings.ReplaceAll(row.Time, ":", ""), h.Sum32()%1000000)
}

// availabilityWindow is how close to kickoff a game stops taking picks.
const availabilityWindow = 2 * time.Minute

// Available reports whether a game starting today at startTime (HH:MM) is
// still open for picks. Unparseable times count as closed.
func Available(startTime string, now time.Time) bool {
	t, err := time.ParseInLocation("15:04", startTime, now.Location())
	if err != nil {
		return false
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return start.Sub(now) > availabilityWindow
}
