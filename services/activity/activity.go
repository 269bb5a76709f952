package activity

import (
	"context"
	"fmt"

	"tripmate/database/repository"
	"tripmate/models"
	"tripmate/utils"
)

type ActivityService interface {
	Panel(activityType string) (models.Panel, bool)
	Open(ctx context.Context, uid, activityType, ref string) (*Opened, error)
}

// Opened is a resolved deep-link: the panel to show and the document to fill it with.
type Opened struct {
	Type     models.ActivityType `json:"type"`
	Ref      string              `json:"ref"`
	Panel    models.Panel        `json:"panel"`
	HasPanel bool                `json:"has_panel"`
	Detail   *models.Detail      `json:"detail"`
}

// DefaultActivityService is the production implementation.
type DefaultActivityService struct {
	Catalog     repository.CatalogRepository
	Itineraries repository.ItineraryRepository
}

func NewDefaultActivityService(catalog repository.CatalogRepository, itineraries repository.ItineraryRepository) *DefaultActivityService {
	return &DefaultActivityService{Catalog: catalog, Itineraries: itineraries}
}

func (s *DefaultActivityService) Panel(activityType string) (models.Panel, bool) {
	return models.PanelFor(models.ActivityType(activityType))
}

// Open resolves the reference ref of the given type. The ref is passed through unchanged;
// itinerary references resolve against the caller's own itineraries.
func (s *DefaultActivityService) Open(ctx context.Context, uid, activityType, ref string) (*Opened, error) {
	t, ok := models.ParseActivityType(activityType)
	if !ok {
		return nil, fmt.Errorf("unknown activity type %q: %w", activityType, utils.ErrValidation)
	}
	if ref == "" {
		return nil, fmt.Errorf("activity reference is required: %w", utils.ErrValidation)
	}

	out := &Opened{Type: t, Ref: ref}
	out.Panel, out.HasPanel = models.PanelFor(t)

	if t == models.ActivityItinerary {
		rec, err := s.Itineraries.Get(ctx, uid, ref)
		if err != nil {
			return nil, err
		}
		out.Detail = &models.Detail{Type: t, ID: ref, Itinerary: &rec.State}
		return out, nil
	}

	detail, err := s.Catalog.Get(ctx, t, ref)
	if err != nil {
		return nil, err
	}
	out.Detail = detail
	return out, nil
}
