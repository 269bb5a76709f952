package handlers

import (
	"net/http"

	"tripmate/services/activity"
	"tripmate/utils"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	Service activity.ActivityService
}

func NewActivityHandler(svc activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: svc}
}

// PanelHandler reports the panel an activity type opens, without loading any document.
func (h *ActivityHandler) PanelHandler(c *gin.Context) {
	panel, ok := h.Service.Panel(c.Param("type"))
	c.JSON(http.StatusOK, gin.H{"panel": panel, "has_panel": ok})
}

func (h *ActivityHandler) OpenHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	opened, err := h.Service.Open(c.Request.Context(), userID, c.Param("type"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to open activity", err)
		return
	}
	c.JSON(http.StatusOK, opened)
}
