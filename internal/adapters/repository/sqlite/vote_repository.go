package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    team TEXT NOT NULL CHECK (team IN ('TABS', 'SPACES')),
    user_email TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_votes_created_at ON votes (created_at DESC);
`

// Open opens the database at path (":memory:" works), applies pragmas and
// creates the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection: an in-memory database exists per connection, and sqlite
	// serializes writers anyway
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout = 5000;", "PRAGMA journal_mode = WAL;"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `INSERT INTO votes (id, team, user_email) VALUES (?, ?, ?) RETURNING created_at`

	var createdAt string
	if err := r.db.QueryRowContext(ctx, query, vote.ID, string(vote.Team), vote.User).Scan(&createdAt); err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}

	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return err
	}
	vote.Timestamp = ts
	return nil
}

func (r *voteRepository) List(ctx context.Context) ([]*domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, team, user_email, created_at FROM votes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		var (
			vote      domain.Vote
			team      string
			createdAt sql.NullString
		)
		if err := rows.Scan(&vote.ID, &team, &vote.User, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		vote.Team = domain.Team(team)
		if createdAt.Valid {
			if vote.Timestamp, err = parseTimestamp(createdAt.String); err != nil {
				return nil, err
			}
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func parseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse created_at %q: %w", s, err)
	}
	return ts, nil
}
