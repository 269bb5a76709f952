package routes

import (
	"time"

	"tripmate/handlers"
	"tripmate/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-up, sign-in and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/session", hb.SessionHandler)
		api.POST("/logout", middleware.RequireIdentity(hb.Verifier), hb.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile and preference endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users/me")
	{
		// Protected routes (Require Authentication)
		api.Use(middleware.RequireIdentity(hb.Verifier))
		api.POST("/onboarding", hb.OnboardingHandler)
		api.GET("/profile", hb.GetProfileHandler)
		api.PATCH("/profile", hb.UpdateProfileHandler)
		api.GET("/preferences", hb.GetPreferencesHandler)
		api.PUT("/preferences", hb.SavePreferencesHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterItineraryRoutes registers itinerary and chat endpoints.
func RegisterItineraryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/itineraries")
	{
		api.Use(middleware.RequireIdentity(hb.Verifier))
		api.GET("", hb.ListItinerariesHandler)
		api.POST("", hb.CreateItineraryHandler)
		api.GET("/selected", hb.SelectedItineraryHandler)
		api.GET("/:id", hb.GetItineraryHandler)
		api.PATCH("/:id/trip-name", hb.RenameTripHandler)
		api.GET("/:id/days/:day", hb.GetDayHandler)

		api.GET("/:id/messages", hb.GetMessagesHandler)
		api.POST("/:id/messages", hb.SendMessageHandler)
		api.GET("/:id/reply-status", hb.ReplyStatusHandler)
		api.GET("/:id/ws", hb.SubscribeHandler)
	}
}

// RegisterActivityRoutes registers activity deep-link endpoints.
func RegisterActivityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/activities")
	{
		api.GET("/:type/panel", hb.ActivityPanelHandler)
		api.GET("/:type/:id", middleware.RequireIdentity(hb.Verifier), hb.OpenActivityHandler)
	}
}

// RegisterAssistantRoutes registers the webhook the trip assistant posts replies to.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/assistant/replies", hb.AssistantReplyHandler)
}

// RegisterPageRoutes serves the front-end pages behind the session gate.
func RegisterPageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	pages := r.Group("")
	{
		pages.Use(middleware.PageGate(hb.Verifier))
		for _, p := range []string{"/", "/login", "/register", "/onboarding"} {
			pages.GET(p, hb.PageHandler)
		}
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	allowAll := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", handlers.AssistantSecretHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowAll,
		MaxAge:           12 * time.Hour,
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsCfg))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterItineraryRoutes(r, hb)
	RegisterActivityRoutes(r, hb)
	RegisterAssistantRoutes(r, hb)
	RegisterPageRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
