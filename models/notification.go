package models

// ChatNotification is the body POSTed to the assistant endpoint for every sent message,
// and the payload of the queued notify task. RequestID names the reply request it opened;
// it travels with the task and is left out of the POSTed body.
type ChatNotification struct {
	UserID      string `json:"user_id"`
	ItineraryID string `json:"itinerary_id"`
	Sender      Sender `json:"sender"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	RequestID   string `json:"request_id,omitempty"`
}

// AssistantReply is one answer of the assistant for an itinerary chat.
type AssistantReply struct {
	UserID        string         `json:"user_id" binding:"required"`
	ItineraryID   string         `json:"itinerary_id" binding:"required"`
	Response      string         `json:"response"`
	State         map[string]any `json:"state,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
}

// ItineraryCreated reports whether the reply announces a freshly generated itinerary.
func (r AssistantReply) ItineraryCreated() bool {
	v, _ := r.State["itinerary_created"].(bool)
	return v
}

// AgentResult is the envelope the assistant pushes on the results queue.
type AgentResult struct {
	Header struct {
		CorrelationID string `json:"correlation_id"`
	} `json:"header"`
	Payload struct {
		Data struct {
			Response    string         `json:"response"`
			UserID      string         `json:"user_id"`
			ItineraryID string         `json:"itinerary_id"`
			State       map[string]any `json:"state"`
		} `json:"data"`
	} `json:"payload"`
}

// Reply flattens the envelope. The second result is false when it names no chat.
func (r AgentResult) Reply() (AssistantReply, bool) {
	d := r.Payload.Data
	if d.UserID == "" || d.ItineraryID == "" {
		return AssistantReply{}, false
	}
	return AssistantReply{
		UserID:        d.UserID,
		ItineraryID:   d.ItineraryID,
		Response:      d.Response,
		State:         d.State,
		CorrelationID: r.Header.CorrelationID,
	}, true
}

// PushNotification is a device notification sent through FCM.
type PushNotification struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// ReplyTimeout identifies the reply request whose deadline check is due.
type ReplyTimeout struct {
	UserID      string `json:"user_id"`
	ItineraryID string `json:"itinerary_id"`
	RequestID   string `json:"request_id"`
}
