package user

import (
	"context"
	"fmt"
	"strings"

	"tripmate/models"
	"tripmate/utils"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, uid string) (*models.Profile, error) {
	return s.Profiles.Get(ctx, uid)
}

// UpdateProfile merges the non-nil fields of update into the profile.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, uid string, update models.ProfileUpdate) (*models.Profile, error) {
	fields := update.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("no profile fields to update: %w", utils.ErrValidation)
	}
	if err := s.Profiles.Update(ctx, uid, fields); err != nil {
		return nil, err
	}
	return s.Profiles.Get(ctx, uid)
}

func (s *DefaultUserService) GetPreferences(ctx context.Context, uid string) (models.Preferences, error) {
	prefs, err := s.Preferences.Get(ctx, uid)
	if err != nil {
		return models.Preferences{}, err
	}
	return prefs.Normalize(), nil
}

// SavePreferences stores the normalized food tags and returns what was stored.
func (s *DefaultUserService) SavePreferences(ctx context.Context, uid string, prefs models.Preferences) (models.Preferences, error) {
	prefs = prefs.Normalize()
	if err := s.Preferences.Save(ctx, uid, prefs); err != nil {
		return models.Preferences{}, err
	}
	return prefs, nil
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, uid, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("fcm token is required: %w", utils.ErrValidation)
	}
	return s.Profiles.Update(ctx, uid, map[string]any{"fcmToken": token})
}
