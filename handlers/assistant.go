package handlers

import (
	"crypto/subtle"
	"net/http"

	"tripmate/models"
	"tripmate/services/chat"
	"tripmate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantSecretHeader carries the shared secret of the assistant webhook.
const AssistantSecretHeader = "X-Assistant-Secret"

// AssistantHandler receives replies pushed by the trip assistant.
type AssistantHandler struct {
	Chat   chat.ChatService
	Secret string
}

func NewAssistantHandler(svc chat.ChatService, secret string) *AssistantHandler {
	return &AssistantHandler{Chat: svc, Secret: secret}
}

func (h *AssistantHandler) ReplyHandler(c *gin.Context) {
	if h.Secret != "" && subtle.ConstantTimeCompare([]byte(c.GetHeader(AssistantSecretHeader)), []byte(h.Secret)) != 1 {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "invalid assistant secret")
		return
	}

	var reply models.AssistantReply
	if err := c.ShouldBindJSON(&reply); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reply", err.Error())
		return
	}
	if reply.UserID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reply", "user_id is required")
		return
	}

	msg, err := h.Chat.IngestReply(c.Request.Context(), reply)
	if err != nil {
		getLogger(c).Error("Failed to ingest assistant reply",
			zap.String("user_id", reply.UserID),
			zap.String("itinerary_id", reply.ItineraryID),
			zap.Error(err))
		utils.RespondError(c, "Failed to ingest reply", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
