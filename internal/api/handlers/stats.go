package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/internal/statcast"
	"github.com/stitts-dev/dugout/pkg/utils"
)

type StatsHandler struct {
	matchups MatchupReader
	logger   *logrus.Logger
}

func NewStatsHandler(matchups MatchupReader, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{matchups: matchups, logger: logger}
}

// GetMatchup handles GET /stats/matchup?batterId=&pitcherId=
func (h *StatsHandler) GetMatchup(c *gin.Context) {
	batterID, err := strconv.Atoi(c.Query("batterId"))
	if err != nil || batterID <= 0 {
		utils.SendBadRequest(c, "batterId is required")
		return
	}
	pitcherID, err := strconv.Atoi(c.Query("pitcherId"))
	if err != nil || pitcherID <= 0 {
		utils.SendBadRequest(c, "pitcherId is required")
		return
	}

	stats, err := h.matchups.BatterVsPitcher(c.Request.Context(), batterID, pitcherID)
	if err != nil {
		sendUpstreamError(c, h.logger, err, "Failed to fetch matchup")
		return
	}

	utils.SendSuccess(c, gin.H{
		"stats":   stats,
		"summary": statcast.FormatMatchup(*stats),
	})
}
