package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/internal/api/handlers"
	"github.com/stitts-dev/dugout/internal/api/middleware"
)

// Handlers groups every route handler the server mounts
type Handlers struct {
	Chat   *handlers.ChatHandler
	Games  *handlers.GameHandler
	Stats  *handlers.StatsHandler
	Health *handlers.HealthHandler
}

// NewRouter builds the gin engine with middleware and every route mounted
func NewRouter(h Handlers, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", h.Health.GetHealth)
	SetupRoutes(router.Group("/api/v1"), h)

	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, h Handlers) {
	group.POST("/chat", h.Chat.Ask)

	games := group.Group("/games")
	{
		games.GET("/today", h.Games.GetTodaysGames)
		games.GET("/date/:date", h.Games.GetGamesByDate)
		games.GET("/:gameId/context", h.Games.GetGameContext)
		games.GET("/:gameId/atbat/:atBatIndex", h.Games.GetAtBatCommentary)
		games.GET("/:gameId/preview", h.Games.GetAtBatPreview)
	}

	group.GET("/stats/matchup", h.Stats.GetMatchup)
}
