// File: tripmate/handlers/bundle.go
package handlers

import (
	"tripmate/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Verifier middleware.IdentityVerifier

	// Account endpoints
	RegisterHandler        gin.HandlerFunc
	LoginHandler           gin.HandlerFunc
	SessionHandler         gin.HandlerFunc
	LogoutHandler          gin.HandlerFunc
	OnboardingHandler      gin.HandlerFunc
	GetProfileHandler      gin.HandlerFunc
	UpdateProfileHandler   gin.HandlerFunc
	GetPreferencesHandler  gin.HandlerFunc
	SavePreferencesHandler gin.HandlerFunc
	UpdateFCMTokenHandler  gin.HandlerFunc

	// Itinerary endpoints
	ListItinerariesHandler   gin.HandlerFunc
	SelectedItineraryHandler gin.HandlerFunc
	CreateItineraryHandler   gin.HandlerFunc
	GetItineraryHandler      gin.HandlerFunc
	RenameTripHandler        gin.HandlerFunc
	GetDayHandler            gin.HandlerFunc

	// Chat endpoints
	SendMessageHandler    gin.HandlerFunc
	GetMessagesHandler    gin.HandlerFunc
	ReplyStatusHandler    gin.HandlerFunc
	SubscribeHandler      gin.HandlerFunc
	AssistantReplyHandler gin.HandlerFunc

	// Activity endpoints
	ActivityPanelHandler gin.HandlerFunc
	OpenActivityHandler  gin.HandlerFunc

	PageHandler   gin.HandlerFunc
	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the per-area handlers.
func NewHandlerBundle(verifier middleware.IdentityVerifier, u *UserHandler, it *ItineraryHandler, ch *ChatHandler, as *AssistantHandler, ac *ActivityHandler, pg *PageHandler, hh *HealthHandler) *HandlerBundle {
	return &HandlerBundle{
		Verifier: verifier,

		RegisterHandler:        u.RegisterHandler,
		LoginHandler:           u.LoginHandler,
		SessionHandler:         u.SessionHandler,
		LogoutHandler:          u.LogoutHandler,
		OnboardingHandler:      u.OnboardingHandler,
		GetProfileHandler:      u.GetProfileHandler,
		UpdateProfileHandler:   u.UpdateProfileHandler,
		GetPreferencesHandler:  u.GetPreferencesHandler,
		SavePreferencesHandler: u.SavePreferencesHandler,
		UpdateFCMTokenHandler:  u.UpdateFCMTokenHandler,

		ListItinerariesHandler:   it.ListHandler,
		SelectedItineraryHandler: it.SelectedHandler,
		CreateItineraryHandler:   it.CreateHandler,
		GetItineraryHandler:      it.GetHandler,
		RenameTripHandler:        it.RenameHandler,
		GetDayHandler:            it.DayHandler,

		SendMessageHandler:    ch.SendHandler,
		GetMessagesHandler:    ch.MessagesHandler,
		ReplyStatusHandler:    ch.ReplyStatusHandler,
		SubscribeHandler:      ch.SubscribeHandler,
		AssistantReplyHandler: as.ReplyHandler,

		ActivityPanelHandler: ac.PanelHandler,
		OpenActivityHandler:  ac.OpenHandler,

		PageHandler:   pg.ServePage,
		HealthHandler: hh.HealthHandler,
	}
}
