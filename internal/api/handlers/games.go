package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/pkg/utils"
)

// GameHandler serves schedules, live game context and at-bat commentary
type GameHandler struct {
	schedule   ScheduleReader
	snapshots  SnapshotBuilder
	commentary AtBatCommentator
	logger     *logrus.Logger
}

func NewGameHandler(schedule ScheduleReader, snapshots SnapshotBuilder, commentary AtBatCommentator, logger *logrus.Logger) *GameHandler {
	return &GameHandler{
		schedule:   schedule,
		snapshots:  snapshots,
		commentary: commentary,
		logger:     logger,
	}
}

// GetTodaysGames handles GET /games/today
func (h *GameHandler) GetTodaysGames(c *gin.Context) {
	schedule, err := h.schedule.Today(c.Request.Context())
	if err != nil {
		sendUpstreamError(c, h.logger, err, "Failed to fetch games")
		return
	}
	utils.SendSuccess(c, schedule)
}

// GetGamesByDate handles GET /games/date/:date
func (h *GameHandler) GetGamesByDate(c *gin.Context) {
	schedule, err := h.schedule.ByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		sendUpstreamError(c, h.logger, err, "Failed to fetch games")
		return
	}
	utils.SendSuccess(c, schedule)
}

// GetGameContext handles GET /games/:gameId/context
func (h *GameHandler) GetGameContext(c *gin.Context) {
	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	snapshot, err := h.snapshots.BuildSnapshot(c.Request.Context(), gameID)
	if err != nil {
		sendUpstreamError(c, h.logger, err, "Failed to fetch game context")
		return
	}
	utils.SendSuccess(c, snapshot)
}

// GetAtBatCommentary handles GET /games/:gameId/atbat/:atBatIndex
func (h *GameHandler) GetAtBatCommentary(c *gin.Context) {
	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}
	atBatIndex, err := strconv.Atoi(c.Param("atBatIndex"))
	if err != nil || atBatIndex < 0 {
		utils.SendBadRequest(c, "atBatIndex must be a non-negative integer")
		return
	}

	resp, err := h.commentary.CommentOnAtBat(c.Request.Context(), gameID, atBatIndex)
	if err != nil {
		sendUpstreamError(c, h.logger, err, "Failed to generate commentary")
		return
	}
	utils.SendSuccess(c, resp)
}

// GetAtBatPreview handles GET /games/:gameId/preview
func (h *GameHandler) GetAtBatPreview(c *gin.Context) {
	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	preview, err := h.commentary.PreviewAtBat(c.Request.Context(), gameID)
	if err != nil {
		sendUpstreamError(c, h.logger, err, "Failed to generate preview")
		return
	}
	utils.SendSuccess(c, preview)
}

// gameIDParam accepts only numeric game ids; anything else would be spliced into an upstream URL
func gameIDParam(c *gin.Context) (string, bool) {
	gameID := strings.TrimSpace(c.Param("gameId"))
	if _, err := strconv.Atoi(gameID); err != nil {
		utils.SendBadRequest(c, "gameId must be numeric")
		return "", false
	}
	return gameID, true
}
