package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ImportRecord documents one completed import run in the journal collection.
type ImportRecord struct {
	File       string    `bson:"file"`
	Checksum   string    `bson:"checksum"`
	Records    int       `bson:"records"`
	ImportedAt time.Time `bson:"imported_at"`
}

// SeenChecksum reports whether a file with this digest was imported before.
func (m *Mongo) SeenChecksum(ctx context.Context, sum string) (bool, error) {
	err := m.journal.FindOne(ctx, bson.M{"checksum": sum}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: journal lookup: %w", err)
	}
	return true, nil
}

// RecordImport appends a journal entry for a completed run.
func (m *Mongo) RecordImport(ctx context.Context, entry ImportRecord) error {
	if _, err := m.journal.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("store: journal insert: %w", err)
	}
	return nil
}
