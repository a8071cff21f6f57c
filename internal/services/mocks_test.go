package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/internal/providers/mlb"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func decodeJSON(t *testing.T, raw string, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(raw), target))
}

type mockFeed struct {
	mock.Mock
}

func (m *mockFeed) LiveFeed(ctx context.Context, gameID string) (*mlb.LiveFeed, error) {
	args := m.Called(ctx, gameID)
	feed, _ := args.Get(0).(*mlb.LiveFeed)
	return feed, args.Error(1)
}

func (m *mockFeed) Player(ctx context.Context, playerID int) (*mlb.Person, error) {
	args := m.Called(ctx, playerID)
	person, _ := args.Get(0).(*mlb.Person)
	return person, args.Error(1)
}

type mockStats struct {
	mock.Mock
}

func (m *mockStats) PlayerStats(ctx context.Context, playerID int, params models.StatsRequestParams, group models.StatGroup) (*models.PlayerStatsResponse, error) {
	args := m.Called(ctx, playerID, params, group)
	stats, _ := args.Get(0).(*models.PlayerStatsResponse)
	return stats, args.Error(1)
}

type mockMatchups struct {
	mock.Mock
}

func (m *mockMatchups) BatterVsPitcher(ctx context.Context, batterID, pitcherID int) (*models.MatchupStats, error) {
	args := m.Called(ctx, batterID, pitcherID)
	stats, _ := args.Get(0).(*models.MatchupStats)
	return stats, args.Error(1)
}

type mockSplits struct {
	mock.Mock
}

func (m *mockSplits) MatchupSplits(ctx context.Context, batterID, pitcherID int) (*models.PlayerStatsResponse, error) {
	args := m.Called(ctx, batterID, pitcherID)
	resp, _ := args.Get(0).(*models.PlayerStatsResponse)
	return resp, args.Error(1)
}

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) BuildSnapshot(ctx context.Context, gameID string) (*models.GameSnapshot, error) {
	args := m.Called(ctx, gameID)
	snapshot, _ := args.Get(0).(*models.GameSnapshot)
	return snapshot, args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, analysis models.QuestionAnalysis, gameID string, snapshot *models.GameSnapshot, metadata *models.GameMetadata) (*models.ResolvedData, error) {
	args := m.Called(ctx, analysis, gameID, snapshot, metadata)
	data, _ := args.Get(0).(*models.ResolvedData)
	return data, args.Error(1)
}

type mockPlays struct {
	mock.Mock
}

func (m *mockPlays) AtBat(ctx context.Context, gameID string, atBatIndex int) (*mlb.Play, *mlb.LiveFeed, error) {
	args := m.Called(ctx, gameID, atBatIndex)
	play, _ := args.Get(0).(*mlb.Play)
	feed, _ := args.Get(1).(*mlb.LiveFeed)
	return play, feed, args.Error(2)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockScheduleProvider struct {
	mock.Mock
}

func (m *mockScheduleProvider) Schedule(ctx context.Context, date string) ([]models.ScheduledGame, error) {
	args := m.Called(ctx, date)
	games, _ := args.Get(0).([]models.ScheduledGame)
	return games, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Key(elements ...string) string {
	return "test:" + strings.Join(elements, ":")
}
