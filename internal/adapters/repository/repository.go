// Package repository opens the vote store selected by configuration.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	gfirestore "cloud.google.com/go/firestore"
	_ "github.com/lib/pq"
	gmongo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/repository/firestore"
	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/repository/mongo"
	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/tabsvspaces/internal/config"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

// Store is an opened repository plus whatever must be released on shutdown.
type Store struct {
	Votes ports.VoteRepository
	close func() error
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		return openPostgres(ctx, cfg.PostgresDSN)
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{Votes: sqlite.NewVoteRepository(db), close: db.Close}, nil
	case config.StoreFirestore:
		projectID := cfg.GoogleCloudProject
		if projectID == "" {
			projectID = gfirestore.DetectProjectID
		}
		client, err := gfirestore.NewClient(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("open firestore: %w", err)
		}
		return &Store{Votes: firestore.NewVoteRepository(client, cfg.FirestoreCollection), close: client.Close}, nil
	case config.StoreMongo:
		client, err := gmongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		return &Store{
			Votes: mongo.NewVoteRepository(client, cfg.MongoDatabase, cfg.MongoCollection),
			close: func() error { return client.Disconnect(context.Background()) },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func openPostgres(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{Votes: postgres.NewVoteRepository(db), close: db.Close}, nil
}
