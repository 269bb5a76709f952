package itineraryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripmate/models"
	"tripmate/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoItinerary struct {
	models.ItineraryRecord `bson:",inline"`

	UserID    string    `bson:"user_id"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoMessage struct {
	models.ChatMessage `bson:",inline"`

	UserID      string `bson:"user_id"`
	ItineraryID string `bson:"itinerary_id"`
}

// MongoItineraryRepo keeps itineraries and their messages in two collections.
type MongoItineraryRepo struct {
	itineraries *mongo.Collection
	messages    *mongo.Collection
}

// NewMongoItineraryRepo returns a repository over database, creating its indexes.
func NewMongoItineraryRepo(database *mongo.Database) ItineraryRepository {
	repo := &MongoItineraryRepo{
		itineraries: database.Collection("itineraries"),
		messages:    database.Collection("messages"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create itinerary indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoItineraryRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.itineraries.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "itinerary_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("itineraries: %w", err)
	}
	_, err = r.messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "itinerary_id", Value: 1}, {Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("messages: %w", err)
	}
	return nil
}

func (r *MongoItineraryRepo) List(ctx context.Context, userID string) ([]models.ItineraryRecord, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "itinerary_id", Value: 1}})
	cursor, err := r.itineraries.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries of %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var out []models.ItineraryRecord
	for cursor.Next(ctx) {
		var doc mongoItinerary
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode itinerary: %w", err)
		}
		msgs, err := r.Messages(ctx, userID, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Messages = msgs
		out = append(out, doc.ItineraryRecord)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to list itineraries of %s: %w", userID, err)
	}
	return out, nil
}

func (r *MongoItineraryRepo) Get(ctx context.Context, userID, itineraryID string) (*models.ItineraryRecord, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc mongoItinerary
	err := r.itineraries.FindOne(ctx, bson.M{"user_id": userID, "itinerary_id": itineraryID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("itinerary %s: %w", itineraryID, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch itinerary %s: %w", itineraryID, err)
	}
	msgs, err := r.Messages(ctx, userID, itineraryID)
	if err != nil {
		return nil, err
	}
	doc.Messages = msgs
	return &doc.ItineraryRecord, nil
}

func (r *MongoItineraryRepo) Put(ctx context.Context, userID string, rec models.ItineraryRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("put itinerary: empty id: %w", utils.ErrValidation)
	}
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	rec.Typing = rec.Reply.Typing()
	doc := mongoItinerary{ItineraryRecord: rec, UserID: userID, UpdatedAt: time.Now()}
	filter := bson.M{"user_id": userID, "itinerary_id": rec.ID}
	if _, err := r.itineraries.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to write itinerary %s: %w", rec.ID, err)
	}

	if _, err := r.messages.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to reset messages of %s: %w", rec.ID, err)
	}
	if len(rec.Messages) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(rec.Messages))
	for _, m := range rec.Messages {
		if m.ID == "" {
			m.ID = utils.NewPushKey()
		}
		docs = append(docs, mongoMessage{ChatMessage: m, UserID: userID, ItineraryID: rec.ID})
	}
	if _, err := r.messages.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to write messages of %s: %w", rec.ID, err)
	}
	return nil
}

func (r *MongoItineraryRepo) Create(ctx context.Context, userID string, rec models.ItineraryRecord) (string, error) {
	rec.ID = utils.NewPushKey()
	if err := r.Put(ctx, userID, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (r *MongoItineraryRepo) PutState(ctx context.Context, userID, itineraryID string, state models.ItineraryState) error {
	return r.updateOne(ctx, userID, itineraryID, bson.M{"state": state, "updated_at": time.Now()})
}

func (r *MongoItineraryRepo) PushMessage(ctx context.Context, userID, itineraryID string, msg models.ChatMessage) (string, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.itineraries.CountDocuments(ctx, bson.M{"user_id": userID, "itinerary_id": itineraryID})
	if err != nil {
		return "", fmt.Errorf("failed to fetch itinerary %s: %w", itineraryID, err)
	}
	if n == 0 {
		return "", fmt.Errorf("itinerary %s: %w", itineraryID, utils.ErrNotFound)
	}

	msg.ID = utils.NewPushKey()
	if _, err := r.messages.InsertOne(ctx, mongoMessage{ChatMessage: msg, UserID: userID, ItineraryID: itineraryID}); err != nil {
		return "", fmt.Errorf("failed to push message to %s: %w", itineraryID, err)
	}
	return msg.ID, nil
}

func (r *MongoItineraryRepo) Messages(ctx context.Context, userID, itineraryID string) ([]models.ChatMessage, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "key", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"user_id": userID, "itinerary_id": itineraryID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages of %s: %w", itineraryID, err)
	}
	defer cursor.Close(ctx)

	out := []models.ChatMessage{}
	for cursor.Next(ctx) {
		var m mongoMessage
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		out = append(out, m.ChatMessage)
	}
	return out, cursor.Err()
}

func (r *MongoItineraryRepo) SetReply(ctx context.Context, userID, itineraryID string, reply models.ReplyStatus) error {
	return r.updateOne(ctx, userID, itineraryID, bson.M{"reply": reply, "typing": reply.Typing()})
}

func (r *MongoItineraryRepo) updateOne(ctx context.Context, userID, itineraryID string, set bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.itineraries.UpdateOne(ctx, bson.M{"user_id": userID, "itinerary_id": itineraryID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update itinerary %s: %w", itineraryID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("itinerary %s: %w", itineraryID, utils.ErrNotFound)
	}
	return nil
}
