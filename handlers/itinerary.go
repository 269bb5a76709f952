package handlers

import (
	"net/http"
	"strconv"

	"tripmate/services/itinerary"
	"tripmate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ItineraryHandler struct {
	Service itinerary.ItineraryService
}

func NewItineraryHandler(svc itinerary.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{Service: svc}
}

func (h *ItineraryHandler) ListHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to list itineraries", zap.Error(err))
		utils.RespondError(c, "Failed to list itineraries", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"itineraries": list})
}

// SelectedHandler returns the itinerary to open: ?id= when it exists, otherwise the default.
func (h *ItineraryHandler) SelectedHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rec, err := h.Service.SelectDefault(c.Request.Context(), userID, c.Query("id"))
	if err != nil {
		utils.RespondError(c, "No itinerary to select", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ItineraryHandler) CreateHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, err := h.Service.Create(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to create itinerary", zap.Error(err))
		utils.RespondError(c, "Failed to create itinerary", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ItineraryHandler) GetHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rec, err := h.Service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to retrieve itinerary", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ItineraryHandler) RenameHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		TripName string `json:"trip_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	state, err := h.Service.RenameTrip(c.Request.Context(), userID, c.Param("id"), req.TripName)
	if err != nil {
		utils.RespondError(c, "Failed to rename trip", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *ItineraryHandler) DayHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	n, err := strconv.Atoi(c.Param("day"))
	if err != nil || n < 1 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid day number", c.Param("day"))
		return
	}
	day, err := h.Service.Day(c.Request.Context(), userID, c.Param("id"), n)
	if err != nil {
		utils.RespondError(c, "Failed to retrieve day", err)
		return
	}
	c.JSON(http.StatusOK, day)
}
