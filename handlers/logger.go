package handlers

import (
	"net/http"

	"tripmate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger set by middleware.RequestLogger, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// currentUserID returns the userID set by the auth middleware; it writes a 401 when missing.
func currentUserID(c *gin.Context) (string, bool) {
	raw, exists := c.Get("userID")
	userID, ok := raw.(string)
	if !exists || !ok || userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "user ID not found in context")
		return "", false
	}
	return userID, true
}
