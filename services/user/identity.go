package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tripmate/models"
	"tripmate/utils"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// FirebaseIdentity implements IdentityProvider with Firebase Authentication. Password
// sign-in goes through the Identity Toolkit REST API, which the Admin SDK does not cover.
type FirebaseIdentity struct {
	auth    *auth.Client
	toolkit *identitytoolkit.Service
}

func NewFirebaseIdentity(ctx context.Context, client *auth.Client, webAPIKey string) (*FirebaseIdentity, error) {
	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(webAPIKey))
	if err != nil {
		return nil, fmt.Errorf("identity toolkit: %w", err)
	}
	return &FirebaseIdentity{auth: client, toolkit: toolkit}, nil
}

func (f *FirebaseIdentity) CreateUser(ctx context.Context, email, password, displayName string) (*models.Identity, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	u, err := f.auth.CreateUser(ctx, params)
	if auth.IsEmailAlreadyExists(err) {
		return nil, fmt.Errorf("a user with this email already exists: %w", utils.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &models.Identity{UID: u.UID, Email: u.Email}, nil
}

func (f *FirebaseIdentity) SetDisplayName(ctx context.Context, uid, displayName string) error {
	if _, err := f.auth.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).DisplayName(displayName)); err != nil {
		return fmt.Errorf("failed to update display name of %s: %w", uid, err)
	}
	return nil
}

func (f *FirebaseIdentity) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	resp, err := f.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest {
			return "", fmt.Errorf("invalid email or password: %w", utils.ErrUnauthorized)
		}
		return "", fmt.Errorf("password sign-in failed: %w", err)
	}
	return resp.IdToken, nil
}

func (f *FirebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (*models.Identity, error) {
	tok, err := f.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid ID token: %v: %w", err, utils.ErrUnauthorized)
	}
	return identityFromToken(tok), nil
}

// VerifySessionCookie rejects cookies whose refresh tokens were revoked by SignOut.
func (f *FirebaseIdentity) VerifySessionCookie(ctx context.Context, cookie string) (*models.Identity, error) {
	tok, err := f.auth.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		return nil, fmt.Errorf("invalid session cookie: %v: %w", err, utils.ErrUnauthorized)
	}
	return identityFromToken(tok), nil
}

func (f *FirebaseIdentity) SessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error) {
	cookie, err := f.auth.SessionCookie(ctx, idToken, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to create session cookie: %v: %w", err, utils.ErrUnauthorized)
	}
	return cookie, nil
}

func (f *FirebaseIdentity) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := f.auth.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("failed to revoke tokens of %s: %w", uid, err)
	}
	return nil
}

func identityFromToken(tok *auth.Token) *models.Identity {
	id := &models.Identity{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		id.Email = email
	}
	return id
}
