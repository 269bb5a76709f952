package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tripmate/models"
	"tripmate/utils"

	"go.uber.org/zap"
)

// SignUp creates the account, its profile and the blank itinerary template, then signs the
// user in. Template writes are best-effort: a failure is logged and the account remains.
func (s *DefaultUserService) SignUp(ctx context.Context, req models.SignUpRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := VerifyCredentials(email, req.Password); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = usernameFromEmail(email)
	}

	id, err := s.Identity.CreateUser(ctx, email, req.Password, username)
	if err != nil {
		utils.GetLogger().Warn("SignUp: account creation failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	s.provisionAccount(ctx, models.Profile{UID: id.UID, Email: email, DisplayName: username})

	idToken, err := s.Identity.SignInWithPassword(ctx, email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("account created, sign-in failed: %w", err)
	}
	resp, err := s.newSession(ctx, idToken, id.UID, email, username)
	if err != nil {
		return nil, err
	}
	resp.NeedsOnboarding = true
	return resp, nil
}

// provisionAccount writes the profile, the first itinerary and empty preferences.
func (s *DefaultUserService) provisionAccount(ctx context.Context, p models.Profile) {
	logger := utils.GetLogger().With(zap.String("uid", p.UID))

	if err := s.Profiles.Create(ctx, p); err != nil {
		logger.Error("provisionAccount: failed to create profile", zap.Error(err))
	}
	if err := s.Itineraries.Put(ctx, p.UID, models.BlankItinerary()); err != nil {
		logger.Error("provisionAccount: failed to write itinerary template", zap.Error(err))
	}
	if err := s.Preferences.Save(ctx, p.UID, models.Preferences{Food: []string{}}); err != nil {
		logger.Error("provisionAccount: failed to write preferences", zap.Error(err))
	}
}

// Onboard stores the onboarding form and sets the display name to "first last".
func (s *DefaultUserService) Onboard(ctx context.Context, uid string, req models.OnboardingRequest) (*models.Profile, error) {
	displayName := models.DisplayName(req.Firstname, req.Lastname)
	if displayName == "" {
		return nil, fmt.Errorf("first or last name is required: %w", utils.ErrValidation)
	}
	if err := s.Identity.SetDisplayName(ctx, uid, displayName); err != nil {
		return nil, err
	}

	fields := models.ProfileUpdate{
		Firstname: &req.Firstname,
		Lastname:  &req.Lastname,
		Gender:    &req.Gender,
		Phone:     &req.Phone,
	}.Fields()
	fields["displayName"] = displayName
	if err := s.Profiles.Update(ctx, uid, fields); err != nil {
		return nil, err
	}
	return s.Profiles.Get(ctx, uid)
}

// ensureProvisioned provisions accounts that were created by federated sign-in.
func (s *DefaultUserService) ensureProvisioned(ctx context.Context, id *models.Identity) (bool, error) {
	_, err := s.Profiles.Get(ctx, id.UID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return false, err
	}
	s.provisionAccount(ctx, models.Profile{UID: id.UID, Email: id.Email, DisplayName: usernameFromEmail(id.Email)})
	return true, nil
}
