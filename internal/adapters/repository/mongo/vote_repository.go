package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

type voteDocument struct {
	ID        string     `bson:"_id"`
	Team      string     `bson:"team"`
	User      string     `bson:"user"`
	Timestamp *time.Time `bson:"timestamp,omitempty"`
}

func (d voteDocument) toVote() *domain.Vote {
	vote := &domain.Vote{ID: d.ID, Team: domain.Team(d.Team), User: d.User}
	if d.Timestamp != nil {
		vote.Timestamp = *d.Timestamp
	}
	return vote
}

type voteRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewVoteRepository(client *mongo.Client, database, collection string) ports.VoteRepository {
	return &voteRepository{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// Save upserts with $currentDate so the server clock sets the timestamp, then
// reads the document back to learn it. $setOnInsert keeps an existing record
// untouched.
func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	filter := bson.M{"_id": vote.ID}
	update := bson.M{
		"$setOnInsert": bson.M{"team": string(vote.Team), "user": vote.User},
		"$currentDate": bson.M{"timestamp": true},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	if res.UpsertedCount != 1 {
		return fmt.Errorf("failed to save vote: id %s already exists", vote.ID)
	}

	var doc voteDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return fmt.Errorf("failed to read back vote: %w", err)
	}
	if doc.Timestamp != nil {
		vote.Timestamp = *doc.Timestamp
	}
	return nil
}

func (r *voteRepository) List(ctx context.Context) ([]*domain.Vote, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer cursor.Close(ctx)

	var votes []*domain.Vote
	for cursor.Next(ctx) {
		var doc voteDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode vote: %w", err)
		}
		votes = append(votes, doc.toVote())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
