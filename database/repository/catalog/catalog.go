package catalogRepo

import (
	"context"
	"fmt"
	"sync"

	"tripmate/models"
	"tripmate/utils"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CatalogRepository reads activity detail documents. The catalog is read-only.
type CatalogRepository interface {
	Get(ctx context.Context, t models.ActivityType, id string) (*models.Detail, error)
}

// FirestoreCatalogRepo reads dummyData/<type>s/list/<id>.
type FirestoreCatalogRepo struct {
	client *firestore.Client
}

func NewFirestoreCatalogRepo(client *firestore.Client) CatalogRepository {
	return &FirestoreCatalogRepo{client: client}
}

func (r *FirestoreCatalogRepo) Get(ctx context.Context, t models.ActivityType, id string) (*models.Detail, error) {
	d, err := models.NewDetail(t, id)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, utils.ErrValidation)
	}
	snap, err := r.client.Collection("dummyData").Doc(t.Collection()).Collection("list").Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%s %s: %w", t, id, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", t, id, err)
	}
	if err := snap.DataTo(d.Variant()); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", t, id, err)
	}
	return d, nil
}

// MemoryCatalogRepo serves detail documents seeded as raw JSON.
type MemoryCatalogRepo struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryCatalogRepo() *MemoryCatalogRepo {
	return &MemoryCatalogRepo{docs: make(map[string][]byte)}
}

// Seed stores raw as the document of type t with the given id.
func (r *MemoryCatalogRepo) Seed(t models.ActivityType, id string, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[string(t)+"/"+id] = raw
}

func (r *MemoryCatalogRepo) Get(ctx context.Context, t models.ActivityType, id string) (*models.Detail, error) {
	r.mu.RLock()
	raw, ok := r.docs[string(t)+"/"+id]
	r.mu.RUnlock()
	if !ok {
		if _, err := models.NewDetail(t, id); err != nil {
			return nil, fmt.Errorf("%v: %w", err, utils.ErrValidation)
		}
		return nil, fmt.Errorf("%s %s: %w", t, id, utils.ErrNotFound)
	}
	return models.DecodeDetail(t, id, raw)
}
