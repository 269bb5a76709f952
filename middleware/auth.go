package middleware

import (
	"context"
	"net/http"
	"strings"

	"tripmate/models"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie holding the Firebase session cookie.
const SessionCookieName = "session"

// IdentityVerifier checks Firebase ID tokens and session cookies.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*models.Identity, error)
	VerifySessionCookie(ctx context.Context, cookie string) (*models.Identity, error)
}

// resolveIdentity accepts a bearer ID token, a ?token= query parameter (browser websockets)
// or the session cookie, in that order.
func resolveIdentity(c *gin.Context, verifier IdentityVerifier) (*models.Identity, bool) {
	ctx := c.Request.Context()

	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			return nil, false
		}
		id, err := verifier.VerifyIDToken(ctx, tokenString)
		return id, err == nil
	}
	if tokenString := c.Query("token"); tokenString != "" {
		id, err := verifier.VerifyIDToken(ctx, tokenString)
		return id, err == nil
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		id, err := verifier.VerifySessionCookie(ctx, cookie)
		return id, err == nil
	}
	return nil, false
}

// RequireIdentity rejects API requests that carry no valid identity and stores the caller's
// userID and email on the context.
func RequireIdentity(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolveIdentity(c, verifier)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		c.Set("userID", id.UID)
		c.Set("email", id.Email)
		c.Next()
	}
}

// PageGate redirects page requests by session state: guests go to /login, signed-in users
// are sent away from /login. /register stays reachable either way.
func PageGate(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolveIdentity(c, verifier)
		path := c.Request.URL.Path

		switch {
		case path == "/login" && ok:
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		case path == "/login" || path == "/register":
		case !ok:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		default:
			c.Set("userID", id.UID)
			c.Set("email", id.Email)
		}
		c.Next()
	}
}
