package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tripmate/database/repository"
	"tripmate/handlers"
	"tripmate/models"
	"tripmate/services/activity"
	"tripmate/services/chat"
	"tripmate/services/events"
	"tripmate/services/itinerary"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

type tokenVerifier struct{}

func (tokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*models.Identity, error) {
	if idToken == "u1-token" {
		return &models.Identity{UID: "u1"}, nil
	}
	return nil, errors.New("invalid token")
}

func (tokenVerifier) VerifySessionCookie(ctx context.Context, cookie string) (*models.Identity, error) {
	return nil, errors.New("no sessions in tests")
}

type discardNotifier struct{}

func (discardNotifier) NotifyChat(ctx context.Context, n models.ChatNotification) error { return nil }

type noopTimeouts struct{}

func (noopTimeouts) ScheduleReplyTimeout(ctx context.Context, p models.ReplyTimeout, at time.Time) error {
	return nil
}

type testServer struct {
	router *gin.Engine
	chat   *chat.DefaultChatService
	repo   repository.ItineraryRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryItineraryRepo()
	require.NoError(t, repo.Put(context.Background(), "u1", models.BlankItinerary()))
	catalog := repository.NewMemoryCatalogRepo()
	catalog.Seed(models.ActivityHotel, "hotel_1", []byte(`{"name":"Riad"}`))

	hub := events.NewHub()
	chatSvc := &chat.DefaultChatService{Repo: repo, Broker: hub, Notifier: discardNotifier{}, Timeouts: noopTimeouts{}}
	hb := handlers.NewHandlerBundle(
		tokenVerifier{},
		handlers.NewUserHandler(nil),
		handlers.NewItineraryHandler(itinerary.NewDefaultItineraryService(repo, events.StatePublisher{Broker: hub})),
		handlers.NewChatHandler(chatSvc, hub),
		handlers.NewAssistantHandler(chatSvc, testSecret),
		handlers.NewActivityHandler(activity.NewDefaultActivityService(catalog, repo)),
		handlers.NewPageHandler(""),
		handlers.NewHealthHandler(nil),
	)

	r := gin.New()
	RegisterRoutes(r, hb, []string{"*"})
	return &testServer{router: r, chat: chatSvc, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

var auth = map[string]string{"Authorization": "Bearer u1-token"}

func TestHomeRedirectsGuestToLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = s.do(t, http.MethodGet, "/", "", auth)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRequiresIdentity(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/itineraries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatFlow(t *testing.T) {
	s := newTestServer(t)
	base := "/api/itineraries/" + models.InitialItineraryID

	w := s.do(t, http.MethodPost, base+"/messages", `{"message":"   "}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, base+"/messages", `{"message":"Two days in Marrakesh"}`, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	s.chat.Wait()

	var status struct {
		Typing bool `json:"typing"`
	}
	w = s.do(t, http.MethodGet, base+"/reply-status", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Typing)

	// Webhook without the shared secret is rejected.
	reply := `{"user_id":"u1","itinerary_id":"` + models.InitialItineraryID + `","response":"Here you go","state":{"itinerary_created":true}}`
	w = s.do(t, http.MethodPost, "/api/assistant/replies", reply, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/assistant/replies", reply, map[string]string{handlers.AssistantSecretHeader: testSecret})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var view chat.WindowView
	w = s.do(t, http.MethodGet, base+"/messages?visible=20", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Messages, 2)
	assert.False(t, view.Typing)
	assert.Equal(t, models.SenderAgent, view.Messages[1].Sender)
	assert.Equal(t, models.ActivityItinerary, view.Messages[1].ActivityType)

	var page chat.Page
	w = s.do(t, http.MethodGet, base+"/messages?before="+view.Messages[1].ID+"&limit=5", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Messages, 1)
	assert.Equal(t, models.SenderUser, page.Messages[0].Sender)
}

func TestItineraryEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/itineraries", "", auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	var list struct {
		Itineraries []itinerary.Summary `json:"itineraries"`
	}
	w = s.do(t, http.MethodGet, "/api/itineraries", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Itineraries, 2)

	var selected models.ItineraryRecord
	w = s.do(t, http.MethodGet, "/api/itineraries/selected?id="+created.ID, "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &selected))
	assert.Equal(t, created.ID, selected.ID)

	w = s.do(t, http.MethodPatch, "/api/itineraries/"+created.ID+"/trip-name", `{"trip_name":"Fez"}`, auth)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/itineraries/"+created.ID+"/days/x", "", auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/itineraries/unknown", "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActivityEndpoints(t *testing.T) {
	s := newTestServer(t)

	var opened activity.Opened
	w := s.do(t, http.MethodGet, "/api/activities/hotel/hotel_1", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opened))
	assert.Equal(t, "hotel_1", opened.Ref)
	assert.Equal(t, "hotelOffcanvas", opened.Panel.ID)

	w = s.do(t, http.MethodGet, "/api/activities/unknown/x", "", auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/activities/bus/panel", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "busOffcanvas")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscribeStreamsEvents(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/itineraries/" + models.InitialItineraryID + "/ws?token=u1-token"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

	var first events.Event
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, events.EventTypeTyping, first.Type)
	assert.False(t, first.Typing)

	_, err = s.chat.Send(context.Background(), "u1", models.InitialItineraryID, "hello")
	require.NoError(t, err)
	s.chat.Wait()

	var msg events.Event
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, events.EventTypeMessage, msg.Type)
	require.NotNil(t, msg.Message)
	assert.Equal(t, "hello", msg.Message.Message)

	var typing events.Event
	require.NoError(t, conn.ReadJSON(&typing))
	assert.True(t, typing.Typing)
}
