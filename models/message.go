package models

import "time"

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

const MessageTypeText = "text"

// ChatMessage is one entry of an itinerary chat. ActivityType and ActivityObject, when
// set, deep-link the message into a detail panel.
type ChatMessage struct {
	ID             string       `json:"id" bson:"key"`
	Sender         Sender       `json:"sender" bson:"sender"`
	MessageType    string       `json:"message_type" bson:"message_type"`
	Message        string       `json:"message" bson:"message"`
	Timestamp      string       `json:"timestamp" bson:"timestamp"`
	ActivityType   ActivityType `json:"activityType,omitempty" bson:"activity_type,omitempty"`
	ActivityObject string       `json:"activity_object,omitempty" bson:"activity_object,omitempty"`
}

// Time parses the message timestamp; unparsable timestamps yield the zero time.
func (m ChatMessage) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, m.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Timestamp formats t the way chat messages store it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
