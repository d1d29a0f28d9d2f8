// Package store persists parsed QSO records into MongoDB.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brianbruff/Log4YM/internal/adif"
)

// Mongo wraps a client with the QSO and journal collections of one database.
type Mongo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	journal *mongo.Collection
}

// Open connects to the MongoDB deployment at uri and pings it. The QSO
// collection is schemaless; no migration step runs.
func Open(ctx context.Context, uri, database, collection, journalCollection string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	db := client.Database(database)
	return &Mongo{
		client:  client,
		coll:    db.Collection(collection),
		journal: db.Collection(journalCollection),
	}, nil
}

// InsertMany writes docs as one atomic insert-many call and returns the
// number of generated identifiers.
func (m *Mongo) InsertMany(ctx context.Context, docs []adif.Record) (int, error) {
	payload := make([]any, len(docs))
	for i, doc := range docs {
		payload[i] = doc
	}
	res, err := m.coll.InsertMany(ctx, payload)
	if err != nil {
		return 0, fmt.Errorf("store: insert many: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
