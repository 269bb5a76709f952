package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tripmate/models"
	"tripmate/utils"
)

const noMessages = "No messages yet"

func (s *DefaultItineraryService) List(ctx context.Context, uid string) ([]Summary, error) {
	recs, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(recs))
	for i, rec := range recs {
		out = append(out, summarize(i, rec))
	}
	return out, nil
}

func summarize(index int, rec models.ItineraryRecord) Summary {
	sum := Summary{
		ID:           rec.ID,
		TripName:     rec.State.Itinerary.TripName,
		Status:       rec.Status,
		LastMessage:  noMessages,
		MessageCount: len(rec.Messages),
		Typing:       rec.Reply.Effective(time.Now()).Typing(),
	}
	if sum.TripName == "" {
		sum.TripName = fmt.Sprintf("Itinerary %d", index+1)
	}
	if last, ok := LastMessage(rec.Messages); ok {
		sum.LastMessage = last.Message
		sum.LastMessageAt = last.Timestamp
	}
	return sum
}

// LastMessage returns the newest message by timestamp. Ties and unparsable timestamps fall
// back to key order.
func LastMessage(msgs []models.ChatMessage) (models.ChatMessage, bool) {
	if len(msgs) == 0 {
		return models.ChatMessage{}, false
	}
	best := msgs[0]
	for _, m := range msgs[1:] {
		if !m.Time().Before(best.Time()) {
			best = m
		}
	}
	return best, true
}

// SelectDefault resolves which itinerary to open. An existing explicit id wins; otherwise the
// first itinerary in key order holding at least one message, otherwise the first one.
func (s *DefaultItineraryService) SelectDefault(ctx context.Context, uid, explicitID string) (*models.ItineraryRecord, error) {
	if explicitID != "" {
		rec, err := s.Repo.Get(ctx, uid, explicitID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, utils.ErrNotFound) {
			return nil, err
		}
	}

	recs, err := s.Repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	rec, ok := PickDefault(recs)
	if !ok {
		return nil, fmt.Errorf("no itineraries for %s: %w", uid, utils.ErrNotFound)
	}
	return &rec, nil
}

// PickDefault applies the selection rule to recs, which must be in key order.
func PickDefault(recs []models.ItineraryRecord) (models.ItineraryRecord, bool) {
	if len(recs) == 0 {
		return models.ItineraryRecord{}, false
	}
	for _, rec := range recs {
		if rec.HasMessages() {
			return rec, true
		}
	}
	return recs[0], true
}

func (s *DefaultItineraryService) Create(ctx context.Context, uid string) (string, error) {
	return s.Repo.Create(ctx, uid, models.UntitledRecord())
}

func (s *DefaultItineraryService) Get(ctx context.Context, uid, itineraryID string) (*models.ItineraryRecord, error) {
	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return nil, err
	}
	rec.Reply = rec.Reply.Effective(time.Now())
	rec.Typing = rec.Reply.Typing()
	return rec, nil
}

func (s *DefaultItineraryService) RenameTrip(ctx context.Context, uid, itineraryID, name string) (*models.ItineraryState, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("trip name is required: %w", utils.ErrValidation)
	}
	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return nil, err
	}
	rec.State.Itinerary.TripName = name
	if err := s.Repo.PutState(ctx, uid, itineraryID, rec.State); err != nil {
		return nil, err
	}
	s.publish(ctx, uid, itineraryID)
	return &rec.State, nil
}

func (s *DefaultItineraryService) Day(ctx context.Context, uid, itineraryID string, dayNumber int) (*DayView, error) {
	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return nil, err
	}
	day, ok := rec.State.Itinerary.DayByNumber(dayNumber)
	if !ok {
		return nil, fmt.Errorf("day %d of %s: %w", dayNumber, itineraryID, utils.ErrNotFound)
	}
	return NewDayView(day), nil
}

// NewDayView resolves the detail panel of every schedule entry with a reference.
func NewDayView(day models.Day) *DayView {
	view := &DayView{DayNumber: day.DayNumber, Date: day.Date, Schedule: make([]ScheduleView, 0, len(day.Schedule))}
	for _, item := range day.Schedule {
		sv := ScheduleView{ScheduleItem: item}
		if item.ActivityObject != "" {
			sv.Panel, sv.HasPanel = models.PanelFor(item.ActivityType)
		}
		view.Schedule = append(view.Schedule, sv)
	}
	return view
}

func (s *DefaultItineraryService) MergeState(ctx context.Context, uid, itineraryID string, patch map[string]any) (*models.ItineraryState, error) {
	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return nil, err
	}
	merged, err := MergeState(rec.State, patch)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.PutState(ctx, uid, itineraryID, merged); err != nil {
		return nil, err
	}
	s.publish(ctx, uid, itineraryID)
	return &merged, nil
}

func (s *DefaultItineraryService) publish(ctx context.Context, uid, itineraryID string) {
	if s.Publisher != nil {
		s.Publisher.PublishState(ctx, uid, itineraryID)
	}
}
