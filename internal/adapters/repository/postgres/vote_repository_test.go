package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	// a second run must be a no-op
	require.NoError(t, Migrate(ctx, db))

	return db
}

func TestVoteRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	votes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, votes)

	before := time.Now().Add(-time.Minute)
	saved := make(map[string]domain.Team)
	for _, team := range []domain.Team{domain.TeamTabs, domain.TeamTabs, domain.TeamSpaces} {
		v := &domain.Vote{ID: uuid.NewString(), Team: team, User: "user@example.com"}
		require.NoError(t, repo.Save(ctx, v))
		assert.True(t, v.Timestamp.After(before), "store assigns the timestamp")
		saved[v.ID] = team
	}

	votes, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, votes, 3)
	for _, v := range votes {
		assert.Equal(t, saved[v.ID], v.Team)
		assert.Equal(t, "user@example.com", v.User)
		assert.False(t, v.Timestamp.IsZero())
	}
}

func TestVoteRepository_RejectsUnknownTeam(t *testing.T) {
	db := setupDB(t)
	repo := NewVoteRepository(db)

	err := repo.Save(context.Background(), &domain.Vote{ID: uuid.NewString(), Team: "EMACS", User: "user@example.com"})
	assert.Error(t, err)
}

func TestMigrationFile(t *testing.T) {
	file, err := MigrationFile("create_votes", "up")
	require.NoError(t, err)
	assert.Equal(t, "000001_create_votes.up.sql", file)

	file, err = MigrationFile("create_votes", "down")
	require.NoError(t, err)
	assert.Equal(t, "000001_create_votes.down.sql", file)

	_, err = MigrationFile("create_votes", "sideways")
	assert.Error(t, err)

	_, err = MigrationFile("drop_everything", "up")
	assert.EqualError(t, err, "migration file not found")
}
