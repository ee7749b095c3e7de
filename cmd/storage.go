package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stream/pkg/config"
	"stream/pkg/post"
)

const connectTimeout = 5 * time.Second

type migrator interface {
	Migrate(context.Context) error
}

type storage struct {
	repo  post.Repo
	close func()
}

// migrate creates the schema when the backend has one.
func (s *storage) migrate(ctx context.Context) error {
	if m, ok := s.repo.(migrator); ok {
		return m.Migrate(ctx)
	}
	return nil
}

func openStorage(ctx context.Context, a *app) (*storage, error) {
	switch a.cfg.Storage {
	case config.StoragePostgres:
		db, err := sql.Open("pgx", a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("main: unable to open PostgreSQL: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("main: unable to reach PostgreSQL: %w", err)
		}
		return &storage{
			repo: post.NewPgRepo(db),
			close: func() {
				if err := db.Close(); err != nil {
					a.log.Errorf("main: failed closing PostgreSQL: %v", err)
				}
			},
		}, nil

	case config.StorageMongo:
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		client, err := mongo.Connect(connCtx, options.Client().ApplyURI(a.cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("main: can't connect to MongoDB: %w", err)
		}
		if err := client.Ping(connCtx, nil); err != nil {
			return nil, fmt.Errorf("main: unable to reach MongoDB: %w", err)
		}
		return &storage{
			repo: post.NewMongoRepo(client.Database(a.cfg.MongoDatabase)),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					a.log.Errorf("main: failed disconnecting from MongoDB: %v", err)
				}
			},
		}, nil

	case config.StorageMemory:
		a.log.Warn("main: using in-memory storage, posts are lost on restart")
		return &storage{repo: post.NewMemoryRepo(), close: func() {}}, nil
	}
	return nil, fmt.Errorf("main: unsupported storage %q", a.cfg.Storage)
}
