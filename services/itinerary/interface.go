package itinerary

import (
	"context"

	"tripmate/database/repository"
	"tripmate/models"
)

type ItineraryService interface {
	List(ctx context.Context, uid string) ([]Summary, error)
	SelectDefault(ctx context.Context, uid, explicitID string) (*models.ItineraryRecord, error)
	Create(ctx context.Context, uid string) (string, error)
	Get(ctx context.Context, uid, itineraryID string) (*models.ItineraryRecord, error)
	RenameTrip(ctx context.Context, uid, itineraryID, name string) (*models.ItineraryState, error)
	Day(ctx context.Context, uid, itineraryID string, dayNumber int) (*DayView, error)
	MergeState(ctx context.Context, uid, itineraryID string, patch map[string]any) (*models.ItineraryState, error)
}

// Publisher is told about state changes so open subscriptions can refresh.
type Publisher interface {
	PublishState(ctx context.Context, uid, itineraryID string)
}

// DefaultItineraryService is the production implementation.
type DefaultItineraryService struct {
	Repo      repository.ItineraryRepository
	Publisher Publisher
}

func NewDefaultItineraryService(repo repository.ItineraryRepository, pub Publisher) *DefaultItineraryService {
	return &DefaultItineraryService{Repo: repo, Publisher: pub}
}

// Summary is one row of the itinerary list.
type Summary struct {
	ID            string `json:"id"`
	TripName      string `json:"trip_name"`
	Status        string `json:"status,omitempty"`
	LastMessage   string `json:"last_message"`
	LastMessageAt string `json:"last_message_at,omitempty"`
	MessageCount  int    `json:"message_count"`
	Typing        bool   `json:"typing"`
}

// ScheduleView is a schedule entry together with the panel its reference opens.
type ScheduleView struct {
	models.ScheduleItem
	Panel    models.Panel `json:"panel"`
	HasPanel bool         `json:"has_panel"`
}

// DayView is one day of an itinerary, ready for rendering.
type DayView struct {
	DayNumber int            `json:"day_number"`
	Date      string         `json:"date"`
	Schedule  []ScheduleView `json:"schedule"`
}
