package preferencesRepo

import (
	"context"
	"fmt"
	"sync"

	"tripmate/models"

	"firebase.google.com/go/v4/db"
)

// PreferencesRepository stores personalization preferences keyed by uid. A user that never
// saved any gets empty preferences, not an error.
type PreferencesRepository interface {
	Get(ctx context.Context, uid string) (models.Preferences, error)
	Save(ctx context.Context, uid string, prefs models.Preferences) error
}

// RTDBPreferencesRepo keeps preferences under users/<uid>/preferences.
type RTDBPreferencesRepo struct {
	client *db.Client
}

func NewRTDBPreferencesRepo(client *db.Client) PreferencesRepository {
	return &RTDBPreferencesRepo{client: client}
}

func (r *RTDBPreferencesRepo) ref(uid string) *db.Ref {
	return r.client.NewRef(fmt.Sprintf("users/%s/preferences", uid))
}

func (r *RTDBPreferencesRepo) Get(ctx context.Context, uid string) (models.Preferences, error) {
	var prefs models.Preferences
	if err := r.ref(uid).Get(ctx, &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("failed to fetch preferences of %s: %w", uid, err)
	}
	if prefs.Food == nil {
		prefs.Food = []string{}
	}
	return prefs, nil
}

func (r *RTDBPreferencesRepo) Save(ctx context.Context, uid string, prefs models.Preferences) error {
	if err := r.ref(uid).Set(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences of %s: %w", uid, err)
	}
	return nil
}

// MemoryPreferencesRepo is an in-process PreferencesRepository.
type MemoryPreferencesRepo struct {
	mu    sync.RWMutex
	prefs map[string]models.Preferences
}

func NewMemoryPreferencesRepo() *MemoryPreferencesRepo {
	return &MemoryPreferencesRepo{prefs: make(map[string]models.Preferences)}
}

func (r *MemoryPreferencesRepo) Get(ctx context.Context, uid string) (models.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.prefs[uid]
	food := make([]string, len(p.Food))
	copy(food, p.Food)
	return models.Preferences{Food: food}, nil
}

func (r *MemoryPreferencesRepo) Save(ctx context.Context, uid string, prefs models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	food := make([]string, len(prefs.Food))
	copy(food, prefs.Food)
	r.prefs[uid] = models.Preferences{Food: food}
	return nil
}
