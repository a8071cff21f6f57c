package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/pkg/utils"
)

const generationFailedSummary = "Failed to generate response"

// ChatHandler serves the question-answering endpoint
type ChatHandler struct {
	chat   ChatService
	logger *logrus.Logger
}

func NewChatHandler(chat ChatService, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// Ask handles POST /chat. Every pipeline failure collapses to one opaque 500.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.chat.Ask(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		h.logger.WithError(err).WithField("game_id", req.GameID).Error("Chat generation failed")
		utils.SendInternalError(c, generationFailedSummary)
		return
	}

	c.JSON(http.StatusOK, resp)
}
