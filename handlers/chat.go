package handlers

import (
	"net/http"
	"strconv"
	"time"

	"tripmate/services/chat"
	"tripmate/services/events"
	"tripmate/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced by the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ChatHandler struct {
	Service chat.ChatService
	Broker  events.Broker
}

func NewChatHandler(svc chat.ChatService, broker events.Broker) *ChatHandler {
	return &ChatHandler{Service: svc, Broker: broker}
}

func (h *ChatHandler) SendHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	res, err := h.Service.Send(c.Request.Context(), userID, c.Param("id"), req.Message)
	if err != nil {
		getLogger(c).Warn("Failed to send message", zap.Error(err))
		utils.RespondError(c, "Failed to send message", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// MessagesHandler serves ?before=<key>&limit=N pages, or else the ?visible=N window.
func (h *ChatHandler) MessagesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if before, hasBefore := c.GetQuery("before"); hasBefore {
		limit, _ := strconv.Atoi(c.Query("limit"))
		page, err := h.Service.Page(ctx, userID, c.Param("id"), before, limit)
		if err != nil {
			utils.RespondError(c, "Failed to retrieve messages", err)
			return
		}
		c.JSON(http.StatusOK, page)
		return
	}

	visible, _ := strconv.Atoi(c.Query("visible"))
	view, err := h.Service.Window(ctx, userID, c.Param("id"), visible)
	if err != nil {
		utils.RespondError(c, "Failed to retrieve messages", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ChatHandler) ReplyStatusHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	status, err := h.Service.ReplyStatus(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to retrieve reply status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": status, "typing": status.Typing()})
}

// SubscribeHandler streams the itinerary's events over a websocket until either side closes.
func (h *ChatHandler) SubscribeHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itineraryID := c.Param("id")
	logger := getLogger(c).With(zap.String("itinerary_id", itineraryID))

	// Reject unknown itineraries before upgrading.
	status, err := h.Service.ReplyStatus(c.Request.Context(), userID, itineraryID)
	if err != nil {
		utils.RespondError(c, "Failed to subscribe", err)
		return
	}

	conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	eventsCh, unsubscribe, err := h.Broker.Subscribe(ctx, userID, itineraryID)
	if err != nil {
		logger.Error("subscribe failed", zap.Error(err))
		return
	}
	defer unsubscribe()

	// Current typing state first, so a fresh subscriber does not wait for the next change.
	_ = conn.WriteJSON(events.Event{
		Type:        events.EventTypeTyping,
		UserID:      userID,
		ItineraryID: itineraryID,
		Typing:      status.Typing(),
		Reply:       &status,
		Timestamp:   time.Now().UTC(),
	})

	// Reader loop: only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(4 * 1024)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case evt, ok := <-eventsCh:
			if !ok {
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		}
	}
}
