// models/user.go
package models

import (
	"strings"
	"time"
)

// Profile is the Firestore document of a registered user.
type Profile struct {
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Firstname   string    `json:"firstname,omitempty" firestore:"firstname,omitempty"`
	Lastname    string    `json:"lastname,omitempty" firestore:"lastname,omitempty"`
	Phone       string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Gender      string    `json:"gender,omitempty" firestore:"gender,omitempty"`
	Address     string    `json:"address,omitempty" firestore:"address,omitempty"`
	FCMToken    string    `json:"fcmToken,omitempty" firestore:"fcmToken,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// Fields returns the update as a field map keyed by Firestore name.
func (u ProfileUpdate) Fields() map[string]any {
	out := map[string]any{}
	set := func(key string, v *string) {
		if v != nil {
			out[key] = strings.TrimSpace(*v)
		}
	}
	set("firstname", u.Firstname)
	set("lastname", u.Lastname)
	set("phone", u.Phone)
	set("gender", u.Gender)
	set("address", u.Address)
	return out
}

// Preferences is the personalization document of a user.
type Preferences struct {
	Food []string `json:"food"`
}

// Normalize trims tags, drops empty ones and removes duplicates keeping the first occurrence.
func (p Preferences) Normalize() Preferences {
	seen := make(map[string]struct{}, len(p.Food))
	food := make([]string, 0, len(p.Food))
	for _, tag := range p.Food {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		food = append(food, tag)
	}
	return Preferences{Food: food}
}

// DisplayName joins first and last name the way the onboarding form does.
func DisplayName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// Identity is the verified caller of a request.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// SignUpRequest is the email/password registration form.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
}

// SignInRequest is the email/password login form.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OnboardingRequest is the form filled right after registration.
type OnboardingRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
}
