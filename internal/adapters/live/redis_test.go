package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

func setupRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestRedisRelay(t *testing.T) {
	addr := setupRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := ConnectRedis(ctx, addr)
	require.NoError(t, err)
	defer rdb.Close()

	hub := NewHub(zap.NewNop(), allowAll)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, StartRedisSubscriber(ctx, zap.NewNop(), rdb, "votes_broadcast", hub))

	event := domain.VoteCastEvent{ID: "v9", Team: domain.TeamTabs, User: "r@example.com"}
	require.NoError(t, NewRedisBroadcaster(rdb, "votes_broadcast").PublishVoteCast(ctx, event))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got domain.VoteCastEvent
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, event.User, got.User)
}
