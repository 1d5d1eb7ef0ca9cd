package loader

import (
	"context"
	"fmt"

	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/storage"
)

// SQLiteSource reads a catalog previously written by the import command.
type SQLiteSource struct {
	path string
}

// NewSQLiteSource returns a source for the database at path.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Name returns the database path.
func (s *SQLiteSource) Name() string { return s.path }

// Load returns every stored book ordered by id. Stored rows were validated
// on import, so no RecordErrors are produced.
func (s *SQLiteSource) Load(ctx context.Context) ([]models.Document, []RecordError, error) {
	store, err := storage.NewSQLiteStorage(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog database: %w", err)
	}
	defer store.Close()

	docs, err := store.ListDocuments(ctx, 0, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil, nil
}
