package user

import (
	"fmt"
	"regexp"
	"strings"

	"tripmate/utils"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// minPasswordLength is the shortest password the identity provider accepts.
const minPasswordLength = 6

// VerifyCredentials checks the sign-up form before it reaches the identity provider.
func VerifyCredentials(email, password string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email address: %w", utils.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long: %w", minPasswordLength, utils.ErrValidation)
	}
	return nil
}

// usernameFromEmail derives a display name for accounts registered without one.
func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
