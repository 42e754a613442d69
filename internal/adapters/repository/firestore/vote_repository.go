package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

// voteDocument is the stored shape. Timestamp is a pointer so documents
// without the field decode to a zero Vote.Timestamp.
type voteDocument struct {
	Team      string     `firestore:"team"`
	User      string     `firestore:"user"`
	Timestamp *time.Time `firestore:"timestamp"`
}

type voteRepository struct {
	client     *firestore.Client
	collection string
}

func NewVoteRepository(client *firestore.Client, collection string) ports.VoteRepository {
	return &voteRepository{
		client:     client,
		collection: collection,
	}
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	doc := r.client.Collection(r.collection).Doc(vote.ID)

	_, err := doc.Create(ctx, map[string]interface{}{
		"team":      string(vote.Team),
		"user":      vote.User,
		"timestamp": firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}

	// the server timestamp is only known after the write
	snap, err := doc.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read back vote: %w", err)
	}
	stored, err := decode(snap)
	if err != nil {
		return err
	}
	vote.Timestamp = stored.Timestamp
	return nil
}

func (r *voteRepository) List(ctx context.Context) ([]*domain.Vote, error) {
	snaps, err := r.client.Collection(r.collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	votes := make([]*domain.Vote, 0, len(snaps))
	for _, snap := range snaps {
		vote, err := decode(snap)
		if err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, nil
}

func (r *voteRepository) Ping(ctx context.Context) error {
	_, err := r.client.Collection(r.collection).Limit(1).Documents(ctx).GetAll()
	return err
}

func decode(snap *firestore.DocumentSnapshot) (*domain.Vote, error) {
	var doc voteDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode vote %s: %w", snap.Ref.ID, err)
	}

	vote := &domain.Vote{
		ID:   snap.Ref.ID,
		Team: domain.Team(doc.Team),
		User: doc.User,
	}
	if doc.Timestamp != nil {
		vote.Timestamp = *doc.Timestamp
	}
	return vote, nil
}
