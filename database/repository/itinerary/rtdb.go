package itineraryRepo

import (
	"context"
	"fmt"
	"sort"

	"tripmate/models"
	"tripmate/utils"

	"firebase.google.com/go/v4/db"
)

// rtdbItinerary is the Realtime Database layout of one itinerary node.
type rtdbItinerary struct {
	Status   string                `json:"status"`
	State    models.ItineraryState `json:"state"`
	Messages rtdbMessages          `json:"messages"`
}

type rtdbMessages struct {
	Typing    bool                          `json:"typing"`
	Reply     *models.ReplyStatus           `json:"reply,omitempty"`
	MessageID map[string]models.ChatMessage `json:"message_id,omitempty"`
}

// RTDBItineraryRepo stores itineraries under users/user_id/<uid>/itineraries.
type RTDBItineraryRepo struct {
	client *db.Client
}

// NewRTDBItineraryRepo returns a repository over the Firebase Realtime Database.
func NewRTDBItineraryRepo(client *db.Client) ItineraryRepository {
	return &RTDBItineraryRepo{client: client}
}

func (r *RTDBItineraryRepo) itineraries(userID string) *db.Ref {
	return r.client.NewRef(fmt.Sprintf("users/user_id/%s/itineraries", userID))
}

func (r *RTDBItineraryRepo) List(ctx context.Context, userID string) ([]models.ItineraryRecord, error) {
	nodes, err := r.itineraries(userID).OrderByKey().GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries of %s: %w", userID, err)
	}

	out := make([]models.ItineraryRecord, 0, len(nodes))
	for _, n := range nodes {
		var doc rtdbItinerary
		if err := n.Unmarshal(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode itinerary %s: %w", n.Key(), err)
		}
		out = append(out, doc.record(n.Key()))
	}
	return out, nil
}

func (r *RTDBItineraryRepo) Get(ctx context.Context, userID, itineraryID string) (*models.ItineraryRecord, error) {
	var doc *rtdbItinerary
	if err := r.itineraries(userID).Child(itineraryID).Get(ctx, &doc); err != nil {
		return nil, fmt.Errorf("failed to fetch itinerary %s: %w", itineraryID, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("itinerary %s: %w", itineraryID, utils.ErrNotFound)
	}
	rec := doc.record(itineraryID)
	return &rec, nil
}

func (r *RTDBItineraryRepo) Put(ctx context.Context, userID string, rec models.ItineraryRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("put itinerary: empty id: %w", utils.ErrValidation)
	}
	if err := r.itineraries(userID).Child(rec.ID).Set(ctx, newRTDBItinerary(rec)); err != nil {
		return fmt.Errorf("failed to write itinerary %s: %w", rec.ID, err)
	}
	for _, m := range rec.Messages {
		if m.ID != "" {
			continue
		}
		if _, err := r.messages(userID, rec.ID).Push(ctx, m); err != nil {
			return fmt.Errorf("failed to push message to %s: %w", rec.ID, err)
		}
	}
	return nil
}

func (r *RTDBItineraryRepo) Create(ctx context.Context, userID string, rec models.ItineraryRecord) (string, error) {
	ref, err := r.itineraries(userID).Push(ctx, newRTDBItinerary(rec))
	if err != nil {
		return "", fmt.Errorf("failed to create itinerary: %w", err)
	}
	for _, m := range rec.Messages {
		if m.ID != "" {
			continue
		}
		if _, err := ref.Child("messages/message_id").Push(ctx, m); err != nil {
			return "", fmt.Errorf("failed to push message to %s: %w", ref.Key, err)
		}
	}
	return ref.Key, nil
}

func (r *RTDBItineraryRepo) PutState(ctx context.Context, userID, itineraryID string, state models.ItineraryState) error {
	if err := r.exists(ctx, userID, itineraryID); err != nil {
		return err
	}
	if err := r.itineraries(userID).Child(itineraryID).Child("state").Set(ctx, state); err != nil {
		return fmt.Errorf("failed to write state of %s: %w", itineraryID, err)
	}
	return nil
}

func (r *RTDBItineraryRepo) PushMessage(ctx context.Context, userID, itineraryID string, msg models.ChatMessage) (string, error) {
	if err := r.exists(ctx, userID, itineraryID); err != nil {
		return "", err
	}
	// The assistant pushes into the same list, so keys must come from the database.
	msg.ID = ""
	ref, err := r.messages(userID, itineraryID).Push(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("failed to push message to %s: %w", itineraryID, err)
	}
	return ref.Key, nil
}

func (r *RTDBItineraryRepo) messages(userID, itineraryID string) *db.Ref {
	return r.itineraries(userID).Child(itineraryID).Child("messages/message_id")
}

func (r *RTDBItineraryRepo) Messages(ctx context.Context, userID, itineraryID string) ([]models.ChatMessage, error) {
	if err := r.exists(ctx, userID, itineraryID); err != nil {
		return nil, err
	}
	nodes, err := r.messages(userID, itineraryID).OrderByKey().GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages of %s: %w", itineraryID, err)
	}
	out := make([]models.ChatMessage, 0, len(nodes))
	for _, n := range nodes {
		var m models.ChatMessage
		if err := n.Unmarshal(&m); err != nil {
			return nil, fmt.Errorf("failed to decode message %s: %w", n.Key(), err)
		}
		m.ID = n.Key()
		out = append(out, m)
	}
	return out, nil
}

func (r *RTDBItineraryRepo) SetReply(ctx context.Context, userID, itineraryID string, reply models.ReplyStatus) error {
	if err := r.exists(ctx, userID, itineraryID); err != nil {
		return err
	}
	err := r.itineraries(userID).Child(itineraryID).Child("messages").Update(ctx, map[string]interface{}{
		"typing": reply.Typing(),
		"reply":  reply,
	})
	if err != nil {
		return fmt.Errorf("failed to update reply status of %s: %w", itineraryID, err)
	}
	return nil
}

// exists keeps writes from materializing itineraries that were never created.
func (r *RTDBItineraryRepo) exists(ctx context.Context, userID, itineraryID string) error {
	var status *string
	if err := r.itineraries(userID).Child(itineraryID).Child("status").Get(ctx, &status); err != nil {
		return fmt.Errorf("failed to fetch itinerary %s: %w", itineraryID, err)
	}
	if status == nil {
		return fmt.Errorf("itinerary %s: %w", itineraryID, utils.ErrNotFound)
	}
	return nil
}

func newRTDBItinerary(rec models.ItineraryRecord) rtdbItinerary {
	reply := rec.Reply
	doc := rtdbItinerary{
		Status: rec.Status,
		State:  rec.State,
		Messages: rtdbMessages{
			Typing: reply.Typing(),
			Reply:  &reply,
		},
	}
	// Messages without a key are pushed after the node is written.
	for _, m := range rec.Messages {
		if m.ID == "" {
			continue
		}
		if doc.Messages.MessageID == nil {
			doc.Messages.MessageID = make(map[string]models.ChatMessage, len(rec.Messages))
		}
		doc.Messages.MessageID[m.ID] = m
	}
	return doc
}

func (d rtdbItinerary) record(id string) models.ItineraryRecord {
	rec := models.ItineraryRecord{
		ID:     id,
		Status: d.Status,
		State:  d.State,
		Typing: d.Messages.Typing,
		Reply:  models.ReplyStatus{State: models.ReplyIdle},
	}
	keys := make([]string, 0, len(d.Messages.MessageID))
	for k := range d.Messages.MessageID {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rec.Messages = make([]models.ChatMessage, 0, len(keys))
	for _, k := range keys {
		m := d.Messages.MessageID[k]
		m.ID = k
		rec.Messages = append(rec.Messages, m)
	}

	if d.Messages.Reply != nil {
		rec.Reply = *d.Messages.Reply
	} else if d.Messages.Typing {
		rec.Reply = legacyTyping(rec.Messages)
	}
	return rec
}

// legacyTyping maps a bare typing flag, written by a client that knows nothing of reply
// requests, onto a wait that started with the newest message. Without a usable timestamp
// the wait has no deadline and reads as timed out.
func legacyTyping(msgs []models.ChatMessage) models.ReplyStatus {
	reply := models.ReplyStatus{State: models.ReplyAwaiting}
	if len(msgs) == 0 {
		return reply
	}
	if started := msgs[len(msgs)-1].Time(); !started.IsZero() {
		reply.StartedAt = started
		reply.Deadline = started.Add(utils.DefaultReplyTimeout)
	}
	return reply
}
