package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// defaultTimeout bounds every repository operation.
	defaultTimeout = 10 * time.Second
	connectTimeout = 10 * time.Second
)

// Store owns the Mongo connection for the lifetime of the process.
// Repositories are built from its database handle; the client itself stays
// private so the rest of the code can only open and close the connection.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open dials uri, confirms the primary answers a ping, and selects database.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Database returns the selected database for repository construction.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// EnsureIndexes creates the indexes behind the todo, category, and user
// access patterns. Safe to call on every startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := NewTodoRepository(s.db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("todo indexes: %w", err)
	}
	if err := NewCategoryRepository(s.db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("category indexes: %w", err)
	}
	if err := NewAuthRepository(s.db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
