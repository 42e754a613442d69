package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

func allowAll(*http.Request) bool { return true }

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PublishVoteCast(t *testing.T) {
	hub := NewHub(zap.NewNop(), allowAll)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Len() == 2 }, time.Second, 10*time.Millisecond)

	event := domain.VoteCastEvent{ID: "v1", Team: domain.TeamSpaces, User: "a@example.com"}
	require.NoError(t, hub.PublishVoteCast(context.Background(), event))

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var got domain.VoteCastEvent
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "v1", got.ID)
		assert.Equal(t, domain.TeamSpaces, got.Team)
	}
}

func TestHub_ForgetsClosedConnections(t *testing.T) {
	hub := NewHub(zap.NewNop(), allowAll)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)

	// nobody listening is not an error
	assert.NoError(t, hub.PublishVoteCast(context.Background(), domain.VoteCastEvent{ID: "v2"}))
}

func TestHub_SlowClientDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(zap.NewNop(), allowAll)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	// connected but never reads
	dial(t, srv)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	event := domain.VoteCastEvent{ID: "big", Team: domain.TeamTabs, User: strings.Repeat("x", 64<<10)}
	for i := 0; i < 1000; i++ {
		start := time.Now()
		require.NoError(t, hub.PublishVoteCast(context.Background(), event))
		require.Less(t, time.Since(start), 500*time.Millisecond, "publish %d", i)
	}

	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/live", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	unrestricted := OriginChecker([]string{"*"})
	assert.True(t, unrestricted(req("https://evil.example.com")))

	restricted := OriginChecker([]string{"https://tabs.example.com"})
	assert.True(t, restricted(req("https://tabs.example.com")))
	assert.True(t, restricted(req("HTTPS://TABS.EXAMPLE.COM")))
	assert.True(t, restricted(req("")))
	assert.False(t, restricted(req("https://evil.example.com")))
}

func TestHub_RejectsDisallowedOrigin(t *testing.T) {
	hub := NewHub(zap.NewNop(), OriginChecker([]string{"https://tabs.example.com"}))
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Len())
}
