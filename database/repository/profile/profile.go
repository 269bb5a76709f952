package profileRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tripmate/models"
	"tripmate/utils"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProfileRepository stores user profiles keyed by uid.
type ProfileRepository interface {
	Get(ctx context.Context, uid string) (*models.Profile, error)
	Create(ctx context.Context, p models.Profile) error
	// Update merges fields into the profile, creating it when missing.
	Update(ctx context.Context, uid string, fields map[string]any) error
}

// FirestoreProfileRepo keeps profiles in the users collection.
type FirestoreProfileRepo struct {
	client *firestore.Client
}

func NewFirestoreProfileRepo(client *firestore.Client) ProfileRepository {
	return &FirestoreProfileRepo{client: client}
}

func (r *FirestoreProfileRepo) Get(ctx context.Context, uid string) (*models.Profile, error) {
	snap, err := r.client.Collection("users").Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("profile %s: %w", uid, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", uid, err)
	}
	var p models.Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", uid, err)
	}
	p.UID = uid
	return &p, nil
}

func (r *FirestoreProfileRepo) Create(ctx context.Context, p models.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.client.Collection("users").Doc(p.UID).Set(ctx, p); err != nil {
		return fmt.Errorf("failed to create profile %s: %w", p.UID, err)
	}
	return nil
}

func (r *FirestoreProfileRepo) Update(ctx context.Context, uid string, fields map[string]any) error {
	data := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data["updatedAt"] = time.Now().UTC()
	if _, err := r.client.Collection("users").Doc(uid).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update profile %s: %w", uid, err)
	}
	return nil
}

// MemoryProfileRepo is an in-process ProfileRepository.
type MemoryProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
}

func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{profiles: make(map[string]models.Profile)}
}

func (r *MemoryProfileRepo) Get(ctx context.Context, uid string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", uid, utils.ErrNotFound)
	}
	return &p, nil
}

func (r *MemoryProfileRepo) Create(ctx context.Context, p models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.profiles[p.UID] = p
	return nil
}

func (r *MemoryProfileRepo) Update(ctx context.Context, uid string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[uid]
	p.UID = uid
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "email":
			p.Email = s
		case "displayName":
			p.DisplayName = s
		case "firstname":
			p.Firstname = s
		case "lastname":
			p.Lastname = s
		case "phone":
			p.Phone = s
		case "gender":
			p.Gender = s
		case "address":
			p.Address = s
		case "fcmToken":
			p.FCMToken = s
		}
	}
	p.UpdatedAt = time.Now().UTC()
	r.profiles[uid] = p
	return nil
}
