package handlers

import (
	"net/http"

	"tripmate/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

func NewHealthHandler(m *utils.HealthMonitor) *HealthHandler {
	return &HealthHandler{Monitor: m}
}

func (h *HealthHandler) HealthHandler(c *gin.Context) {
	if h.Monitor == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm TripMate"})
		return
	}
	status := h.Monitor.Status()
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "services": status.Services, "checkedAt": status.CheckedAt})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "services": status.Services, "checkedAt": status.CheckedAt})
}
