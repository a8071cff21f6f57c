// Package mlb is a client for the public MLB Stats API.
package mlb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/pkg/circuitbreaker"
)

// DefaultBaseURL is the public Stats API root, without version segment
const DefaultBaseURL = "https://statsapi.mlb.com/api"

// ErrNotFound is returned when the API has no such game, player or play
var ErrNotFound = errors.New("mlb: not found")

// APIError is a non-2xx response from the Stats API
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mlb api %s returned status %d", e.Endpoint, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ClientError reports whether the request itself was at fault, so the
// circuit breaker ignores it.
func (e *APIError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

func (e *APIError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ClientConfig configures the Stats API client
type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RateLimit    float64 // requests per second
	MaxRetries   int
	RetryBackoff time.Duration
}

// Client fetches live game state, players, stats and schedules. Every
// request passes the rate limiter and the mlb-stats circuit breaker, and
// transport errors and 5xx responses are retried with exponential backoff.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	rateLimiter  *rate.Limiter
	breakers     *circuitbreaker.CircuitBreakerService
	maxRetries   int
	retryBackoff time.Duration
	logger       *logrus.Logger
}

// NewClient creates a Stats API client
func NewClient(cfg ClientConfig, breakers *circuitbreaker.CircuitBreakerService, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      cfg.BaseURL,
		rateLimiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), int(cfg.RateLimit)+1),
		breakers:     breakers,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       logger,
	}
}

// LiveFeed fetches the v1.1 live feed for a game
func (c *Client) LiveFeed(ctx context.Context, gameID string) (*LiveFeed, error) {
	var feed LiveFeed
	if err := c.get(ctx, "/v1.1/game/"+url.PathEscape(gameID)+"/feed/live", nil, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// Player fetches one person record
func (c *Client) Player(ctx context.Context, playerID int) (*Person, error) {
	var resp peopleResponse
	if err := c.get(ctx, "/v1/people/"+strconv.Itoa(playerID), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.People) == 0 {
		return nil, fmt.Errorf("player %d: %w", playerID, ErrNotFound)
	}
	return &resp.People[0], nil
}

// PlayerStats fetches a player's stats for one group with the given window
func (c *Client) PlayerStats(ctx context.Context, playerID int, params models.StatsRequestParams, group models.StatGroup) (*models.PlayerStatsResponse, error) {
	query := url.Values{}
	query.Set("stats", string(params.Stats))
	query.Set("group", string(group))
	if params.Season > 0 {
		query.Set("season", strconv.Itoa(params.Season))
	}
	if params.StartDate != "" {
		query.Set("startDate", params.StartDate)
	}
	if params.EndDate != "" {
		query.Set("endDate", params.EndDate)
	}
	if params.GameType != "" {
		query.Set("gameType", params.GameType)
	}

	var resp statsResponse
	if err := c.get(ctx, "/v1/people/"+strconv.Itoa(playerID)+"/stats", query, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(playerID, params, group), nil
}

// MatchupSplits fetches the batter's regular-season hitting line against one pitcher
func (c *Client) MatchupSplits(ctx context.Context, batterID, pitcherID int) (*models.PlayerStatsResponse, error) {
	query := url.Values{}
	query.Set("stats", string(models.StatsModeVsPlayer))
	query.Set("opposingPlayerId", strconv.Itoa(pitcherID))
	query.Set("group", string(models.StatGroupHitting))
	query.Set("gameType", "R")

	var resp statsResponse
	if err := c.get(ctx, "/v1/people/"+strconv.Itoa(batterID)+"/stats", query, &resp); err != nil {
		return nil, err
	}
	params := models.StatsRequestParams{Stats: models.StatsModeVsPlayer, GameType: "R"}
	return resp.toModel(batterID, params, models.StatGroupHitting), nil
}

// Schedule lists the games on a date (YYYY-MM-DD)
func (c *Client) Schedule(ctx context.Context, date string) ([]models.ScheduledGame, error) {
	query := url.Values{}
	query.Set("sportId", "1")
	query.Set("date", date)
	query.Set("hydrate", "team,venue,linescore")

	var resp scheduleResponse
	if err := c.get(ctx, "/v1/schedule", query, &resp); err != nil {
		return nil, err
	}

	games := make([]models.ScheduledGame, 0, resp.TotalGames)
	for _, d := range resp.Dates {
		for _, g := range d.Games {
			games = append(games, models.ScheduledGame{
				GamePk:        g.GamePk,
				GameDate:      g.GameDate,
				OfficialDate:  g.OfficialDate,
				Status:        g.Status.AbstractGameState,
				DetailedState: g.Status.DetailedState,
				AwayTeam:      models.TeamScore{ID: g.Teams.Away.Team.ID, Name: g.Teams.Away.Team.Name, Score: g.Teams.Away.Score},
				HomeTeam:      models.TeamScore{ID: g.Teams.Home.Team.ID, Name: g.Teams.Home.Team.Name, Score: g.Teams.Home.Score},
				Venue:         g.Venue.Name,
			})
		}
	}
	return games, nil
}

// AtBat returns one play of a game by its at-bat index
func (c *Client) AtBat(ctx context.Context, gameID string, atBatIndex int) (*Play, *LiveFeed, error) {
	feed, err := c.LiveFeed(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	for i := range feed.LiveData.Plays.AllPlays {
		play := &feed.LiveData.Plays.AllPlays[i]
		if play.About.AtBatIndex == atBatIndex {
			return play, feed, nil
		}
	}
	return nil, nil, fmt.Errorf("at-bat %d of game %s: %w", atBatIndex, gameID, ErrNotFound)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	_, err := c.breakers.Execute(circuitbreaker.MLBStats, func() (interface{}, error) {
		return nil, c.doWithRetry(ctx, path, endpoint, target)
	})
	return err
}

func (c *Client) doWithRetry(ctx context.Context, path, endpoint string, target interface{}) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.retryBackoff * time.Duration(1<<uint(attempt-1))
			c.logger.WithFields(logrus.Fields{
				"endpoint": path,
				"attempt":  attempt + 1,
				"backoff":  backoff.String(),
				"error":    lastErr.Error(),
			}).Warn("Retrying MLB API request")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := c.do(ctx, path, endpoint, target)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, path, endpoint string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dugout/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"endpoint":    path,
		"status_code": resp.StatusCode,
		"duration":    time.Since(start).String(),
	}).Debug("MLB API response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Endpoint: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (r *statsResponse) toModel(playerID int, params models.StatsRequestParams, group models.StatGroup) *models.PlayerStatsResponse {
	out := &models.PlayerStatsResponse{
		PlayerID: playerID,
		Params:   params,
		Group:    group,
		Stats:    make([]models.StatBlock, 0, len(r.Stats)),
	}
	for _, block := range r.Stats {
		b := models.StatBlock{
			Type:   block.Type.DisplayName,
			Group:  block.Group.DisplayName,
			Splits: make([]models.StatSplit, 0, len(block.Splits)),
		}
		for _, split := range block.Splits {
			b.Splits = append(b.Splits, models.StatSplit{
				Season: split.Season,
				Stat:   split.Stat,
				Player: models.NamedRef{ID: split.Player.ID, FullName: split.Player.FullName},
				Team:   models.NamedRef{ID: split.Team.ID, Name: split.Team.Name},
			})
		}
		out.Stats = append(out.Stats, b)
	}
	return out
}
