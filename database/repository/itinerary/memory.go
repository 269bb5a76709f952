package itineraryRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"tripmate/models"
	"tripmate/utils"
)

// MemoryItineraryRepo keeps itineraries in process memory. Used by the memory backend
// and in tests.
type MemoryItineraryRepo struct {
	mu    sync.RWMutex
	users map[string]map[string]*models.ItineraryRecord
}

// NewMemoryItineraryRepo returns an empty in-memory repository.
func NewMemoryItineraryRepo() *MemoryItineraryRepo {
	return &MemoryItineraryRepo{users: make(map[string]map[string]*models.ItineraryRecord)}
}

func (r *MemoryItineraryRepo) List(ctx context.Context, userID string) ([]models.ItineraryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.users[userID]
	keys := make([]string, 0, len(recs))
	for k := range recs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.ItineraryRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, cloneRecord(*recs[k]))
	}
	return out, nil
}

func (r *MemoryItineraryRepo) Get(ctx context.Context, userID, itineraryID string) (*models.ItineraryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, err := r.lookup(userID, itineraryID)
	if err != nil {
		return nil, err
	}
	c := cloneRecord(*rec)
	return &c, nil
}

func (r *MemoryItineraryRepo) Put(ctx context.Context, userID string, rec models.ItineraryRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("put itinerary: empty id: %w", utils.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.users[userID] == nil {
		r.users[userID] = make(map[string]*models.ItineraryRecord)
	}
	c := cloneRecord(rec)
	c.Typing = c.Reply.Typing()
	r.users[userID][rec.ID] = &c
	return nil
}

func (r *MemoryItineraryRepo) Create(ctx context.Context, userID string, rec models.ItineraryRecord) (string, error) {
	rec.ID = utils.NewPushKey()
	if err := r.Put(ctx, userID, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (r *MemoryItineraryRepo) PutState(ctx context.Context, userID, itineraryID string, state models.ItineraryState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.lookup(userID, itineraryID)
	if err != nil {
		return err
	}
	rec.State = cloneState(state)
	return nil
}

func (r *MemoryItineraryRepo) PushMessage(ctx context.Context, userID, itineraryID string, msg models.ChatMessage) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.lookup(userID, itineraryID)
	if err != nil {
		return "", err
	}
	msg.ID = utils.NewPushKey()
	rec.Messages = append(rec.Messages, msg)
	return msg.ID, nil
}

func (r *MemoryItineraryRepo) Messages(ctx context.Context, userID, itineraryID string) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, err := r.lookup(userID, itineraryID)
	if err != nil {
		return nil, err
	}
	return sortedMessages(rec.Messages), nil
}

func (r *MemoryItineraryRepo) SetReply(ctx context.Context, userID, itineraryID string, reply models.ReplyStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.lookup(userID, itineraryID)
	if err != nil {
		return err
	}
	rec.Reply = reply
	rec.Typing = reply.Typing()
	return nil
}

func (r *MemoryItineraryRepo) lookup(userID, itineraryID string) (*models.ItineraryRecord, error) {
	rec, ok := r.users[userID][itineraryID]
	if !ok {
		return nil, fmt.Errorf("itinerary %s: %w", itineraryID, utils.ErrNotFound)
	}
	return rec, nil
}

func cloneRecord(rec models.ItineraryRecord) models.ItineraryRecord {
	rec.State = cloneState(rec.State)
	rec.Messages = sortedMessages(rec.Messages)
	return rec
}

// cloneState deep-copies through JSON so callers never share slices with the store.
func cloneState(st models.ItineraryState) models.ItineraryState {
	b, err := json.Marshal(st)
	if err != nil {
		return st
	}
	var out models.ItineraryState
	if err := json.Unmarshal(b, &out); err != nil {
		return st
	}
	return out
}

func sortedMessages(msgs []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
