package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/stitts-dev/dugout/internal/providers/mlb"
	"github.com/stitts-dev/dugout/internal/services"
	"github.com/stitts-dev/dugout/pkg/utils"
)

// sendUpstreamError maps a failed game or stats lookup onto a status code.
// summary is only used for failures the caller cannot act on.
func sendUpstreamError(c *gin.Context, logger *logrus.Logger, err error, summary string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, mlb.ErrNotFound):
		utils.SendNotFound(c, "Game or play not found")
	case errors.Is(err, services.ErrInvalidDate):
		utils.SendBadRequest(c, err.Error())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		utils.SendError(c, http.StatusServiceUnavailable, "Upstream temporarily unavailable", "")
	case errors.Is(err, context.DeadlineExceeded):
		utils.SendError(c, http.StatusGatewayTimeout, "Upstream timed out", "")
	case errors.Is(err, services.ErrGameContextUnavailable):
		utils.SendBadGateway(c, "Game data unavailable")
	default:
		logger.WithError(err).Error(summary)
		utils.SendInternalError(c, summary)
	}
}
