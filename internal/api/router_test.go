package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stitts-dev/dugout/internal/api"
	"github.com/stitts-dev/dugout/internal/api/handlers"
	"github.com/stitts-dev/dugout/internal/api/middleware"
	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/internal/providers/mlb"
	"github.com/stitts-dev/dugout/internal/services"
)

type MockChat struct{ mock.Mock }

func (m *MockChat) Ask(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ChatResponse)
	return resp, args.Error(1)
}

type MockCommentator struct{ mock.Mock }

func (m *MockCommentator) CommentOnAtBat(ctx context.Context, gameID string, atBatIndex int) (*models.AtBatResponse, error) {
	args := m.Called(ctx, gameID, atBatIndex)
	resp, _ := args.Get(0).(*models.AtBatResponse)
	return resp, args.Error(1)
}

func (m *MockCommentator) PreviewAtBat(ctx context.Context, gameID string) (*models.AtBatPreview, error) {
	args := m.Called(ctx, gameID)
	preview, _ := args.Get(0).(*models.AtBatPreview)
	return preview, args.Error(1)
}

type MockSchedule struct{ mock.Mock }

func (m *MockSchedule) Today(ctx context.Context) (*models.DaySchedule, error) {
	args := m.Called(ctx)
	schedule, _ := args.Get(0).(*models.DaySchedule)
	return schedule, args.Error(1)
}

func (m *MockSchedule) ByDate(ctx context.Context, date string) (*models.DaySchedule, error) {
	args := m.Called(ctx, date)
	schedule, _ := args.Get(0).(*models.DaySchedule)
	return schedule, args.Error(1)
}

type MockSnapshots struct{ mock.Mock }

func (m *MockSnapshots) BuildSnapshot(ctx context.Context, gameID string) (*models.GameSnapshot, error) {
	args := m.Called(ctx, gameID)
	snapshot, _ := args.Get(0).(*models.GameSnapshot)
	return snapshot, args.Error(1)
}

type MockMatchups struct{ mock.Mock }

func (m *MockMatchups) BatterVsPitcher(ctx context.Context, batterID, pitcherID int) (*models.MatchupStats, error) {
	args := m.Called(ctx, batterID, pitcherID)
	stats, _ := args.Get(0).(*models.MatchupStats)
	return stats, args.Error(1)
}

type staticBreakers map[string]string

func (s staticBreakers) States() map[string]string { return s }

type RouterTestSuite struct {
	suite.Suite
	chat       *MockChat
	commentary *MockCommentator
	schedule   *MockSchedule
	snapshots  *MockSnapshots
	matchups   *MockMatchups
	breakers   staticBreakers
	redisErr   error
	router     *gin.Engine
}

func (s *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *RouterTestSuite) SetupTest() {
	s.chat = new(MockChat)
	s.commentary = new(MockCommentator)
	s.schedule = new(MockSchedule)
	s.snapshots = new(MockSnapshots)
	s.matchups = new(MockMatchups)
	s.breakers = staticBreakers{"mlb-stats": "closed", "anthropic": "closed"}
	s.redisErr = nil

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error { return nil }),
		"redis":    handlers.PingFunc(func(ctx context.Context) error { return s.redisErr }),
	}

	s.router = api.NewRouter(api.Handlers{
		Chat:   handlers.NewChatHandler(s.chat, logger),
		Games:  handlers.NewGameHandler(s.schedule, s.snapshots, s.commentary, logger),
		Stats:  handlers.NewStatsHandler(s.matchups, logger),
		Health: handlers.NewHealthHandler("dugout", "test", checks, s.breakers, logger),
	}, logger)
}

func (s *RouterTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *RouterTestSuite) TestChat_Success() {
	s.chat.On("Ask", mock.Anything, models.ChatRequest{Message: "Who's pitching?", GameID: "745804", Language: "es"}).
		Return(&models.ChatResponse{
			Response:    "Corbin Burnes está lanzando.",
			GameContext: &models.GameSnapshot{Inning: 7, IsTopInning: true},
		}, nil)

	w := s.do(http.MethodPost, "/api/v1/chat", `{"message":"Who's pitching?","gameId":"745804","language":"es"}`)

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("Corbin Burnes está lanzando.", body["response"])
	s.NotNil(body["gameContext"])
	s.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
}

func (s *RouterTestSuite) TestChat_MissingMessage() {
	w := s.do(http.MethodPost, "/api/v1/chat", `{"gameId":"745804"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.chat.AssertNotCalled(s.T(), "Ask", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestChat_FailureIsOpaque() {
	s.chat.On("Ask", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", services.ErrGenerationFailed, errors.New("anthropic: 529 overloaded")))

	w := s.do(http.MethodPost, "/api/v1/chat", `{"message":"hi"}`)

	s.Equal(http.StatusInternalServerError, w.Code)
	body := s.decode(w)
	s.Equal("Failed to generate response", body["error"])
	s.NotContains(w.Body.String(), "overloaded")
}

func (s *RouterTestSuite) TestGames_Today() {
	s.schedule.On("Today", mock.Anything).Return(&models.DaySchedule{
		Date:     "2024-10-30",
		Games:    []models.ScheduledGame{{GamePk: 775296}},
		Fallback: true,
	}, nil)

	w := s.do(http.MethodGet, "/api/v1/games/today", "")

	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].(map[string]interface{})
	s.Equal("2024-10-30", data["date"])
	s.Equal(true, data["fallback"])
}

func (s *RouterTestSuite) TestGames_ByDateInvalid() {
	s.schedule.On("ByDate", mock.Anything, "yesterday").
		Return(nil, fmt.Errorf("%w: %q", services.ErrInvalidDate, "yesterday"))

	w := s.do(http.MethodGet, "/api/v1/games/date/yesterday", "")

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestGames_Context() {
	s.snapshots.On("BuildSnapshot", mock.Anything, "745804").
		Return(&models.GameSnapshot{Inning: 3, Count: models.Count{Outs: 2}}, nil)

	w := s.do(http.MethodGet, "/api/v1/games/745804/context", "")

	s.Equal(http.StatusOK, w.Code)
	s.snapshots.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestGames_ContextErrors() {
	tests := []struct {
		name   string
		gameID string
		err    error
		status int
	}{
		{"not found", "1", fmt.Errorf("%w: game 1: %w", services.ErrGameContextUnavailable, mlb.ErrNotFound), http.StatusNotFound},
		{"upstream down", "2", fmt.Errorf("%w: game 2: %w", services.ErrGameContextUnavailable, errors.New("503")), http.StatusBadGateway},
		{"breaker open", "3", fmt.Errorf("%w: game 3: %w", services.ErrGameContextUnavailable, gobreaker.ErrOpenState), http.StatusServiceUnavailable},
		{"deadline", "4", fmt.Errorf("%w: game 4: %w", services.ErrGameContextUnavailable, context.DeadlineExceeded), http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.snapshots.On("BuildSnapshot", mock.Anything, tt.gameID).Return(nil, tt.err)
			w := s.do(http.MethodGet, "/api/v1/games/"+tt.gameID+"/context", "")
			s.Equal(tt.status, w.Code)
		})
	}
}

func (s *RouterTestSuite) TestGames_NonNumericGameID() {
	w := s.do(http.MethodGet, "/api/v1/games/abc/context", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.snapshots.AssertNotCalled(s.T(), "BuildSnapshot", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestGames_AtBatCommentary() {
	s.commentary.On("CommentOnAtBat", mock.Anything, "745804", 61).Return(&models.AtBatResponse{
		AtBat:      &models.AtBat{AtBatIndex: 61, Inning: 8},
		Commentary: &models.AtBatCommentary{Summary: "Soto doubles.", Text: "Soto doubles."},
	}, nil)

	w := s.do(http.MethodGet, "/api/v1/games/745804/atbat/61", "")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Soto doubles.")
}

func (s *RouterTestSuite) TestGames_AtBatBadIndex() {
	w := s.do(http.MethodGet, "/api/v1/games/745804/atbat/-1", "")

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestGames_AtBatNotFound() {
	s.commentary.On("CommentOnAtBat", mock.Anything, "745804", 999).
		Return(nil, fmt.Errorf("failed to load at-bat 999: %w", mlb.ErrNotFound))

	w := s.do(http.MethodGet, "/api/v1/games/745804/atbat/999", "")

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestGames_Preview() {
	s.commentary.On("PreviewAtBat", mock.Anything, "745804").
		Return(&models.AtBatPreview{Preview: "Judge steps in."}, nil)

	w := s.do(http.MethodGet, "/api/v1/games/745804/preview", "")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Judge steps in.")
}

func (s *RouterTestSuite) TestStats_Matchup() {
	s.matchups.On("BatterVsPitcher", mock.Anything, 592450, 669203).Return(&models.MatchupStats{
		PlateAppearances: 10, AtBats: 9, Hits: 3, BattingAverage: 1.0 / 3,
	}, nil)

	w := s.do(http.MethodGet, "/api/v1/stats/matchup?batterId=592450&pitcherId=669203", "")

	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].(map[string]interface{})
	s.Contains(data["summary"], "3-for-9 (.333)")
}

func (s *RouterTestSuite) TestStats_MatchupMissingParams() {
	w := s.do(http.MethodGet, "/api/v1/stats/matchup?batterId=592450", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.matchups.AssertNotCalled(s.T(), "BatterVsPitcher", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "")

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("healthy", body["status"])
	s.Equal("dugout", body["service"])
}

func (s *RouterTestSuite) TestHealth_Degraded() {
	s.redisErr = errors.New("connection refused")

	w := s.do(http.MethodGet, "/health", "")

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("degraded", body["status"])
	redis := body["checks"].(map[string]interface{})["redis"].(map[string]interface{})
	s.Equal("unhealthy", redis["status"])
}

func (s *RouterTestSuite) TestHealth_AllBreakersOpen() {
	s.breakers["mlb-stats"] = "open"
	s.breakers["anthropic"] = "open"

	w := s.do(http.MethodGet, "/health", "")

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
