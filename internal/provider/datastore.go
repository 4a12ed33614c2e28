// Package provider holds clients for the hosted backend: the row-oriented
// data API and the token auth API. The backend owns all persistence; these
// clients hold no state beyond connection configuration.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
)

// PageSize is the backend's per-request row cap. Reads wanting more rows must
// page with offset ranges of this width.
const PageSize = 1000

// Datastore is a client for the backend's REST row API.
type Datastore struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// NewDatastore creates a data API client. apiKey is the public (anon) key;
// per-user calls additionally carry the user's access token.
func NewDatastore(baseURL, apiKey string, logger *slog.Logger) *Datastore {
	return &Datastore{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// get issues a GET against a table path with query parameters. token may be
// empty for anonymous reads. A Range header is sent when to > 0.
func (d *Datastore) get(ctx context.Context, table string, query url.Values, token string, from, to int, out interface{}) error {
	u := fmt.Sprintf("%s/rest/v1/%s?%s", d.baseURL, table, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	d.setAuth(req, token)
	if to > 0 {
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", from, to))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("data api get %s: %w", table, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("data api get %s returned %d: %s", table, resp.StatusCode, excerpt(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// insert POSTs rows to a table. When out is non-nil the created rows are
// requested back and decoded into it.
func (d *Datastore) insert(ctx context.Context, table string, token string, rows interface{}, out interface{}) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode %s rows: %w", table, err)
	}

	u := fmt.Sprintf("%s/rest/v1/%s", d.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	d.setAuth(req, token)
	req.Header.Set("Content-Type", "application/json")
	if out != nil {
		req.Header.Set("Prefer", "return=representation")
	} else {
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("data api insert %s: %w", table, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("data api insert %s returned %d: %s", table, resp.StatusCode, excerpt(body))
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode created %s rows: %w", table, err)
		}
	}
	return nil
}

func (d *Datastore) setAuth(req *http.Request, token string) {
	req.Header.Set("apikey", d.apiKey)
	if token == "" {
		token = d.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// ListGames returns games for the given date ("2006-01-02"), ordered by
// start time ascending.
func (d *Datastore) ListGames(ctx context.Context, date string) ([]domain.Game, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("date", "eq."+date)
	q.Set("order", "time.asc")

	var games []domain.Game
	if err := d.get(ctx, "games", q, "", 0, 0, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ListOddsRange returns one page of the odds table, unfiltered, using an
// offset range [from, from+limit).
func (d *Datastore) ListOddsRange(ctx context.Context, from, limit int) ([]domain.Odd, error) {
	q := url.Values{}
	q.Set("select", "*")

	var odds []domain.Odd
	if err := d.get(ctx, "odds", q, "", from, from+limit-1, &odds); err != nil {
		return nil, err
	}
	return odds, nil
}

// GetProfile returns the user's profile row, or nil if none exists yet.
func (d *Datastore) GetProfile(ctx context.Context, token string, userID uuid.UUID) (*domain.UserProfile, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+userID.String())

	var rows []domain.UserProfile
	if err := d.get(ctx, "user_profiles", q, token, 0, 0, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListParlays returns the user's parlays newest first, with legs and their
// games embedded.
func (d *Datastore) ListParlays(ctx context.Context, token string, userID uuid.UUID) ([]domain.ParlayWithPicks, error) {
	q := url.Values{}
	q.Set("select", "*,parlay_picks(*,games(*))")
	q.Set("user_id", "eq."+userID.String())
	q.Set("order", "created_at.desc")

	var rows []domain.ParlayWithPicks
	if err := d.get(ctx, "parlays", q, token, 0, 0, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Leaderboard returns up to limit entries ordered by the given key
// descending.
func (d *Datastore) Leaderboard(ctx context.Context, sort domain.LeaderboardSort, limit int) ([]domain.LeaderboardEntry, error) {
	if !sort.Valid() {
		return nil, fmt.Errorf("invalid leaderboard sort %q", sort)
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", string(sort)+".desc")
	q.Set("limit", fmt.Sprintf("%d", limit))

	var rows []domain.LeaderboardEntry
	if err := d.get(ctx, "leaderboard", q, "", 0, 0, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// NewParlayRow is the insert shape for a parlays row.
type NewParlayRow struct {
	UserID    uuid.UUID           `json:"user_id"`
	Status    domain.ParlayStatus `json:"status"`
	TotalOdds float64             `json:"total_odds"`
}

// NewPickRow is the insert shape for a parlay_picks row.
type NewPickRow struct {
	ParlayID uuid.UUID           `json:"parlay_id"`
	GameID   uuid.UUID           `json:"game_id"`
	EventID  string              `json:"event_id"`
	OddsID   uuid.UUID           `json:"odds_id"`
	Market   string              `json:"market"`
	Option   string              `json:"option"`
	Odd      float64             `json:"odd"`
	Result   domain.ParlayStatus `json:"result"`
}

// InsertParlay creates one parlays row and returns it.
func (d *Datastore) InsertParlay(ctx context.Context, token string, row NewParlayRow) (*domain.Parlay, error) {
	var created []domain.Parlay
	if err := d.insert(ctx, "parlays", token, []NewParlayRow{row}, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("data api insert parlays returned no rows")
	}
	return &created[0], nil
}

// InsertParlayPicks bulk-creates the ticket legs.
func (d *Datastore) InsertParlayPicks(ctx context.Context, token string, rows []NewPickRow) error {
	return d.insert(ctx, "parlay_picks", token, rows, nil)
}

// Ping checks that the data API answers at all. Used by the health endpoint.
func (d *Datastore) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, d.baseURL+"/rest/v1/", nil)
	if err != nil {
		return err
	}
	d.setAuth(req, "")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("data api ping: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("data api ping: status %d", resp.StatusCode)
	}
	return nil
}

func excerpt(body []byte) string {
	const limit = 200
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
