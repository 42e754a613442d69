package ports

import (
	"context"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

// VoteRepository is an append-only vote store. Save must let the store assign
// the timestamp and write it back into vote.Timestamp.
type VoteRepository interface {
	Save(ctx context.Context, vote *domain.Vote) error
	List(ctx context.Context) ([]*domain.Vote, error)
	Ping(ctx context.Context) error
}

type VoteInput struct {
	Team        string
	Credentials Credentials
}

type VoteService interface {
	Cast(ctx context.Context, input VoteInput) (*domain.Vote, error)
}

type VoteEventPublisher interface {
	PublishVoteCast(ctx context.Context, event domain.VoteCastEvent) error
}
