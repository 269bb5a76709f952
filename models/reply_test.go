package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReplyStatusTransitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	idle := ReplyStatus{}.Effective(now)
	assert.Equal(t, ReplyIdle, idle.State)
	assert.False(t, idle.Typing())

	waiting := idle.Begin("req-1", now, time.Minute)
	assert.True(t, waiting.Typing())
	assert.Equal(t, now.Add(time.Minute), waiting.Deadline)

	replied := waiting.Complete(now.Add(10 * time.Second))
	assert.Equal(t, ReplyReplied, replied.State)
	assert.False(t, replied.Typing())

	again := replied.Begin("req-2", now, time.Minute)
	assert.Equal(t, ReplyAwaiting, again.State)
	assert.Equal(t, "req-2", again.RequestID)
	assert.True(t, again.CompletedAt.IsZero())
}

func TestReplyStatusExpire(t *testing.T) {
	now := time.Now()
	waiting := ReplyStatus{}.Begin("req-1", now, time.Minute)

	_, ok := waiting.Expire("stale", now)
	assert.False(t, ok, "a stale request id must not expire the pending request")

	expired, ok := waiting.Expire("req-1", now)
	assert.True(t, ok)
	assert.Equal(t, ReplyTimedOut, expired.State)

	_, ok = expired.Expire("req-1", now)
	assert.False(t, ok, "expire is a one-shot transition")
}

func TestReplyStatusEffectiveDeadline(t *testing.T) {
	start := time.Now()
	waiting := ReplyStatus{}.Begin("req-1", start, time.Minute)

	assert.Equal(t, ReplyAwaiting, waiting.Effective(start.Add(59*time.Second)).State)

	lapsed := waiting.Effective(start.Add(time.Minute))
	assert.Equal(t, ReplyTimedOut, lapsed.State)
	assert.Equal(t, waiting.Deadline, lapsed.CompletedAt)
	assert.Equal(t, ReplyAwaiting, waiting.State, "Effective must not mutate the receiver")
}

func TestLateReplyAccepted(t *testing.T) {
	now := time.Now()
	timedOut, _ := ReplyStatus{}.Begin("req-1", now, time.Second).Expire("req-1", now)
	assert.Equal(t, ReplyReplied, timedOut.Complete(now).State)
}

func TestReplyStatusWithoutDeadlineIsTimedOut(t *testing.T) {
	now := time.Now()
	stuck := ReplyStatus{State: ReplyAwaiting}

	eff := stuck.Effective(now)
	assert.Equal(t, ReplyTimedOut, eff.State)
	assert.False(t, eff.Typing())
	assert.Equal(t, now, eff.CompletedAt)

	// A new send still opens a proper request from here.
	assert.True(t, eff.Begin("req-1", now, time.Minute).Typing())
}
