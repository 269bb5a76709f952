package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripmate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPChatNotifierPostsJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ignored":true}`))
	}))
	defer srv.Close()

	n := NewHTTPChatNotifier(srv.URL, time.Second)
	err := n.NotifyChat(context.Background(), models.ChatNotification{
		UserID:      "u1",
		ItineraryID: "it1",
		Sender:      models.SenderUser,
		Message:     "hello",
		Timestamp:   "2026-01-01T00:00:00Z",
		RequestID:   "req-1",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"user_id":      "u1",
		"itinerary_id": "it1",
		"sender":       "user",
		"message":      "hello",
		"timestamp":    "2026-01-01T00:00:00Z",
	}, got)
}

func TestHTTPChatNotifierErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPChatNotifier(srv.URL, time.Second).NotifyChat(context.Background(), models.ChatNotification{})
	assert.ErrorContains(t, err, "502")

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()
	err = NewHTTPChatNotifier(slow.URL, 20*time.Millisecond).NotifyChat(context.Background(), models.ChatNotification{})
	assert.Error(t, err)
}

func TestNewFCMPushNotifierRequiresClients(t *testing.T) {
	_, err := NewFCMPushNotifier(nil, nil)
	assert.Error(t, err)
}
