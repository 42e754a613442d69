package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, team, user_email)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, vote.ID, vote.Team, vote.User).Scan(&vote.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) List(ctx context.Context) ([]*domain.Vote, error) {
	query := `SELECT id, team, user_email, created_at FROM votes`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.ID, &vote.Team, &vote.User, &vote.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
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
