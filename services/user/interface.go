package user

import (
	"context"
	"time"

	"tripmate/database/repository"
	"tripmate/models"
)

type UserService interface {
	// Registration and sessions
	SignUp(ctx context.Context, req models.SignUpRequest) (*AuthResponse, error)
	SignIn(ctx context.Context, req models.SignInRequest) (*AuthResponse, error)
	ExchangeIDToken(ctx context.Context, idToken string) (*AuthResponse, error)
	SignOut(ctx context.Context, uid string) error
	Onboard(ctx context.Context, uid string, req models.OnboardingRequest) (*models.Profile, error)

	// Profile and personalization
	GetProfile(ctx context.Context, uid string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, uid string, update models.ProfileUpdate) (*models.Profile, error)
	GetPreferences(ctx context.Context, uid string) (models.Preferences, error)
	SavePreferences(ctx context.Context, uid string, prefs models.Preferences) (models.Preferences, error)
	UpdateFCMToken(ctx context.Context, uid, token string) error
}

// IdentityProvider is the managed identity service behind accounts and session cookies.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (*models.Identity, error)
	SetDisplayName(ctx context.Context, uid, displayName string) error
	SignInWithPassword(ctx context.Context, email, password string) (idToken string, err error)
	VerifyIDToken(ctx context.Context, idToken string) (*models.Identity, error)
	SessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Identity    IdentityProvider
	Profiles    repository.ProfileRepository
	Preferences repository.PreferencesRepository
	Itineraries repository.ItineraryRepository
	SessionTTL  time.Duration
}

// AuthResponse carries the signed-in account and the session cookie to set.
type AuthResponse struct {
	ID              string        `json:"id"`
	Email           string        `json:"email,omitempty"`
	DisplayName     string        `json:"displayName,omitempty"`
	NeedsOnboarding bool          `json:"needsOnboarding"`
	SessionCookie   string        `json:"-"`
	ExpiresIn       time.Duration `json:"-"`
}
