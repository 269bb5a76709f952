package handlers

import (
	"net/http"

	"tripmate/config"
	"tripmate/middleware"
	"tripmate/models"
	"tripmate/services/user"
	"tripmate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(userService user.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

// setSessionCookie stores the Firebase session cookie as an HTTP-only cookie.
func setSessionCookie(c *gin.Context, resp *user.AuthResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, resp.SessionCookie, int(resp.ExpiresIn.Seconds()), "/", "", config.IsProduction(), true)
}

// RegisterHandler creates an email/password account and signs it in.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.UserService.SignUp(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Registration failed", zap.Error(err))
		utils.RespondError(c, "Registration failed", err)
		return
	}
	setSessionCookie(c, resp)
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler signs in with email and password.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.UserService.SignIn(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Authentication failed", err)
		return
	}
	setSessionCookie(c, resp)
	c.JSON(http.StatusOK, resp)
}

// SessionHandler exchanges an ID token from a client-side sign-in for a session cookie.
func (h *UserHandler) SessionHandler(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.UserService.ExchangeIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		utils.RespondError(c, "Authentication failed", err)
		return
	}
	setSessionCookie(c, resp)
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler revokes the caller's sessions and clears the cookie.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.UserService.SignOut(c.Request.Context(), userID); err != nil {
		getLogger(c).Error("Failed to revoke tokens", zap.Error(err))
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *UserHandler) OnboardingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	profile, err := h.UserService.Onboard(c.Request.Context(), userID, req)
	if err != nil {
		getLogger(c).Error("Onboarding failed", zap.Error(err))
		utils.RespondError(c, "Failed to save onboarding data", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfileHandler returns the authenticated user's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, "Failed to retrieve profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler updates the authenticated user's profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	profile, err := h.UserService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		getLogger(c).Error("Failed to update profile", zap.Error(err))
		utils.RespondError(c, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetPreferencesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	prefs, err := h.UserService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, "Failed to retrieve preferences", err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *UserHandler) SavePreferencesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.Preferences
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	prefs, err := h.UserService.SavePreferences(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, "Failed to save preferences", err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := h.UserService.UpdateFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		utils.RespondError(c, "Failed to update FCM token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated"})
}
