package models

import "time"

// ReplyState is where an itinerary chat is in waiting for the assistant.
type ReplyState string

const (
	ReplyIdle     ReplyState = "idle"
	ReplyAwaiting ReplyState = "awaiting_reply"
	ReplyReplied  ReplyState = "replied"
	ReplyTimedOut ReplyState = "timed_out"
)

// ReplyStatus tracks the pending assistant reply of one itinerary. Typing is shown
// exactly while State is ReplyAwaiting.
type ReplyStatus struct {
	State       ReplyState `json:"state" bson:"state"`
	RequestID   string     `json:"request_id,omitempty" bson:"request_id,omitempty"`
	StartedAt   time.Time  `json:"started_at,omitempty" bson:"started_at,omitempty"`
	Deadline    time.Time  `json:"deadline,omitempty" bson:"deadline,omitempty"`
	CompletedAt time.Time  `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// Typing reports whether the assistant is considered to be composing a reply.
func (r ReplyStatus) Typing() bool {
	return r.State == ReplyAwaiting
}

// Effective reports the status as seen at now: an awaiting reply past its deadline is
// timed out even if no worker has recorded it yet. An awaiting reply without a deadline
// can never be expired by request id, so it counts as timed out.
func (r ReplyStatus) Effective(now time.Time) ReplyStatus {
	if r.State == "" {
		r.State = ReplyIdle
	}
	if r.State != ReplyAwaiting {
		return r
	}
	switch {
	case r.Deadline.IsZero():
		r.State = ReplyTimedOut
		r.CompletedAt = now
	case !now.Before(r.Deadline):
		r.State = ReplyTimedOut
		r.CompletedAt = r.Deadline
	}
	return r
}

// Begin starts a new request. Allowed from every state; an awaiting request is replaced.
func (r ReplyStatus) Begin(requestID string, now time.Time, timeout time.Duration) ReplyStatus {
	return ReplyStatus{
		State:     ReplyAwaiting,
		RequestID: requestID,
		StartedAt: now,
		Deadline:  now.Add(timeout),
	}
}

// Complete records the assistant reply. Late replies after a timeout are accepted.
func (r ReplyStatus) Complete(now time.Time) ReplyStatus {
	r.State = ReplyReplied
	r.CompletedAt = now
	return r
}

// Expire times out the request identified by requestID. The second result is false when
// the status no longer refers to that pending request.
func (r ReplyStatus) Expire(requestID string, now time.Time) (ReplyStatus, bool) {
	if r.State != ReplyAwaiting || r.RequestID != requestID {
		return r, false
	}
	r.State = ReplyTimedOut
	r.CompletedAt = now
	return r, true
}
