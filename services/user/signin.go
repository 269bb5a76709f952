package user

import (
	"context"
	"strings"

	"tripmate/models"
	"tripmate/utils"

	"go.uber.org/zap"
)

// SignIn checks email and password and opens a session.
func (s *DefaultUserService) SignIn(ctx context.Context, req models.SignInRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	idToken, err := s.Identity.SignInWithPassword(ctx, email, req.Password)
	if err != nil {
		utils.GetLogger().Info("SignIn: rejected", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	id, err := s.Identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.sessionFor(ctx, idToken, id)
}

// ExchangeIDToken turns an ID token from a client-side (federated) sign-in into a session.
// First-time federated users are provisioned like email registrations.
func (s *DefaultUserService) ExchangeIDToken(ctx context.Context, idToken string) (*AuthResponse, error) {
	id, err := s.Identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	created, err := s.ensureProvisioned(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := s.sessionFor(ctx, idToken, id)
	if err != nil {
		return nil, err
	}
	resp.NeedsOnboarding = resp.NeedsOnboarding || created
	return resp, nil
}

// SignOut revokes the user's refresh tokens so existing session cookies stop verifying.
func (s *DefaultUserService) SignOut(ctx context.Context, uid string) error {
	return s.Identity.RevokeRefreshTokens(ctx, uid)
}

func (s *DefaultUserService) sessionFor(ctx context.Context, idToken string, id *models.Identity) (*AuthResponse, error) {
	displayName := ""
	needsOnboarding := false
	if p, err := s.Profiles.Get(ctx, id.UID); err == nil {
		displayName = p.DisplayName
		needsOnboarding = p.Firstname == "" && p.Lastname == ""
	}
	resp, err := s.newSession(ctx, idToken, id.UID, id.Email, displayName)
	if err != nil {
		return nil, err
	}
	resp.NeedsOnboarding = needsOnboarding
	return resp, nil
}

func (s *DefaultUserService) newSession(ctx context.Context, idToken, uid, email, displayName string) (*AuthResponse, error) {
	cookie, err := s.Identity.SessionCookie(ctx, idToken, s.SessionTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		ID:            uid,
		Email:         email,
		DisplayName:   displayName,
		SessionCookie: cookie,
		ExpiresIn:     s.SessionTTL,
	}, nil
}
