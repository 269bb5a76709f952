package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripmate/database/repository"
	"tripmate/models"
	"tripmate/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdentity accepts one password per email and issues tokens of the form "tok:<uid>".
type fakeIdentity struct {
	users        map[string]string // email -> password
	displayNames map[string]string
	revoked      []string
	createErr    error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]string{}, displayNames: map[string]string{}}
}

func (f *fakeIdentity) CreateUser(ctx context.Context, email, password, displayName string) (*models.Identity, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[email]; ok {
		return nil, utils.ErrConflict
	}
	f.users[email] = password
	f.displayNames[email] = displayName
	return &models.Identity{UID: "uid-" + email, Email: email}, nil
}

func (f *fakeIdentity) SetDisplayName(ctx context.Context, uid, displayName string) error {
	f.displayNames[uid] = displayName
	return nil
}

func (f *fakeIdentity) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	if pw, ok := f.users[email]; !ok || pw != password {
		return "", utils.ErrUnauthorized
	}
	return "tok:" + email, nil
}

func (f *fakeIdentity) VerifyIDToken(ctx context.Context, idToken string) (*models.Identity, error) {
	if len(idToken) < 4 || idToken[:4] != "tok:" {
		return nil, utils.ErrUnauthorized
	}
	email := idToken[4:]
	return &models.Identity{UID: "uid-" + email, Email: email}, nil
}

func (f *fakeIdentity) SessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error) {
	return "cookie:" + idToken, nil
}

func (f *fakeIdentity) RevokeRefreshTokens(ctx context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

type services struct {
	svc      *DefaultUserService
	identity *fakeIdentity
	its      repository.ItineraryRepository
}

func newUserService() services {
	id := newFakeIdentity()
	its := repository.NewMemoryItineraryRepo()
	return services{
		svc: &DefaultUserService{
			Identity:    id,
			Profiles:    repository.NewMemoryProfileRepo(),
			Preferences: repository.NewMemoryPreferencesRepo(),
			Itineraries: its,
			SessionTTL:  time.Hour,
		},
		identity: id,
		its:      its,
	}
}

func TestSignUpProvisionsAccount(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	resp, err := s.svc.SignUp(ctx, models.SignUpRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "uid-ada@example.com", resp.ID)
	assert.Equal(t, "ada", resp.DisplayName)
	assert.True(t, resp.NeedsOnboarding)
	assert.Equal(t, "cookie:tok:ada@example.com", resp.SessionCookie)
	assert.Equal(t, time.Hour, resp.ExpiresIn)

	rec, err := s.its.Get(ctx, resp.ID, models.InitialItineraryID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, rec.Status)

	prefs, err := s.svc.GetPreferences(ctx, resp.ID)
	require.NoError(t, err)
	assert.Empty(t, prefs.Food)
}

func TestSignUpValidation(t *testing.T) {
	s := newUserService()
	for _, req := range []models.SignUpRequest{
		{Email: "not-an-email", Password: "secret1"},
		{Email: "ada@example.com", Password: "short"},
	} {
		_, err := s.svc.SignUp(context.Background(), req)
		assert.True(t, errors.Is(err, utils.ErrValidation), req.Email)
	}
	assert.Empty(t, s.identity.users)
}

func TestSignInAndOnboard(t *testing.T) {
	s := newUserService()
	ctx := context.Background()
	_, err := s.svc.SignUp(ctx, models.SignUpRequest{Email: "ada@example.com", Password: "secret1", Username: "Ada"})
	require.NoError(t, err)

	_, err = s.svc.SignIn(ctx, models.SignInRequest{Email: "ada@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))

	resp, err := s.svc.SignIn(ctx, models.SignInRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, resp.NeedsOnboarding)

	p, err := s.svc.Onboard(ctx, resp.ID, models.OnboardingRequest{Firstname: " Ada", Lastname: "Lovelace ", Gender: "female"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.DisplayName)
	assert.Equal(t, "Lovelace", p.Lastname)
	assert.Equal(t, "Ada Lovelace", s.identity.displayNames[resp.ID])

	resp, err = s.svc.SignIn(ctx, models.SignInRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, resp.NeedsOnboarding)

	require.NoError(t, s.svc.SignOut(ctx, resp.ID))
	assert.Equal(t, []string{resp.ID}, s.identity.revoked)
}

func TestExchangeIDTokenProvisionsFederatedUser(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	resp, err := s.svc.ExchangeIDToken(ctx, "tok:grace@example.com")
	require.NoError(t, err)
	assert.True(t, resp.NeedsOnboarding)

	_, err = s.its.Get(ctx, resp.ID, models.InitialItineraryID)
	assert.NoError(t, err)

	_, err = s.svc.ExchangeIDToken(ctx, "garbage")
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))
}

func TestPreferencesAndFCMToken(t *testing.T) {
	s := newUserService()
	ctx := context.Background()
	resp, err := s.svc.SignUp(ctx, models.SignUpRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	saved, err := s.svc.SavePreferences(ctx, resp.ID, models.Preferences{Food: []string{"Thai", " thai ", "", "Ethiopian"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Thai", "Ethiopian"}, saved.Food)

	got, err := s.svc.GetPreferences(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	assert.True(t, errors.Is(s.svc.UpdateFCMToken(ctx, resp.ID, " "), utils.ErrValidation))
	require.NoError(t, s.svc.UpdateFCMToken(ctx, resp.ID, "fcm-123"))
	p, err := s.svc.GetProfile(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "fcm-123", p.FCMToken)

	_, err = s.svc.UpdateProfile(ctx, resp.ID, models.ProfileUpdate{})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}
