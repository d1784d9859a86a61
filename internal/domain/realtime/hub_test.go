package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/jwt"
)

func waitEvent(t *testing.T, ch <-chan []byte) Event {
	t.Helper()
	select {
	case msg := <-ch:
		var event Event
		require.NoError(t, json.Unmarshal(msg, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting websocket event")
	}
	return Event{}
}

func newLocalHub(userIDs ...uuid.UUID) (*Hub, map[uuid.UUID]*Connection) {
	h := NewHub(nil, nil)
	conns := map[uuid.UUID]*Connection{}
	for _, userID := range userIDs {
		conn := &Connection{UserID: userID, Send: make(chan []byte, 4)}
		conns[userID] = conn
		h.connections[userID] = map[*Connection]bool{conn: true}
	}
	return h, conns
}

func TestPointsUpdatedReachesOnlyOwner(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	h, conns := newLocalHub(owner, other)

	h.PointsUpdated(context.Background(), owner, ledger.KindStreak)

	event := waitEvent(t, conns[owner].Send)
	require.Equal(t, EventPointsUpdated, event.Type)
	require.Equal(t, owner, event.UserID)
	require.Equal(t, "streak", event.Reason)
	require.Nil(t, event.BalanceHint)
	require.Empty(t, conns[other].Send)
}

func TestPointsUpdatedPublishesForOtherInstances(t *testing.T) {
	userID := uuid.New()
	h, _ := newLocalHub()

	var published []byte
	h.publishFn = func(_ context.Context, channel string, payload []byte) error {
		require.Equal(t, userEventsChannel, channel)
		published = payload
		return nil
	}

	h.PointsUpdated(context.Background(), userID, ledger.KindSpotlight)
	require.NotEmpty(t, published)

	// the sending instance ignores its own echo
	peer, conns := newLocalHub(userID)
	h.handleUserEventPayload(string(published))
	peer.handleUserEventPayload(string(published))

	event := waitEvent(t, conns[userID].Send)
	require.Equal(t, "spotlight", event.Reason)
}

func TestHandleUserEventIgnoresOwnInstance(t *testing.T) {
	userID := uuid.New()
	h, conns := newLocalHub(userID)

	payload, err := json.Marshal(userEventMessage{
		UserID:           userID.String(),
		Payload:          json.RawMessage(`{"type":"points_updated"}`),
		SenderInstanceID: h.instanceID,
	})
	require.NoError(t, err)

	h.handleUserEventPayload(string(payload))
	require.Empty(t, conns[userID].Send)
}

func TestFullBufferDropsEvent(t *testing.T) {
	userID := uuid.New()
	h := NewHub(nil, nil)
	conn := &Connection{UserID: userID, Send: make(chan []byte)}
	h.connections[userID] = map[*Connection]bool{conn: true}

	h.PointsUpdated(context.Background(), userID, ledger.KindReferral)
	require.Empty(t, conn.Send)
}

func TestWebSocketDeliversPointsUpdated(t *testing.T) {
	jwtService := jwt.NewService("ws-secret", time.Minute, time.Hour)
	hub := NewHub(nil, nil)
	go hub.Run()
	defer hub.Shutdown()

	handler := NewHandler(hub, nil)
	server := httptest.NewServer(middleware.Auth(jwtService)(http.HandlerFunc(handler.WebSocket)))
	defer server.Close()

	userID := uuid.New()
	token, err := jwtService.GenerateAccessToken(userID, "user")
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.PointsUpdated(context.Background(), userID, ledger.KindStreak)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, EventPointsUpdated, event.Type)
	require.Equal(t, userID, event.UserID)
}

func TestWebSocketRequiresToken(t *testing.T) {
	jwtService := jwt.NewService("ws-secret", time.Minute, time.Hour)
	handler := NewHandler(NewHub(nil, nil), nil)
	server := httptest.NewServer(middleware.Auth(jwtService)(http.HandlerFunc(handler.WebSocket)))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
