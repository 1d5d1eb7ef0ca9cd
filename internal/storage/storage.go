// Package storage persists catalog records in SQLite and inspects catalog files on disk.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/shiori/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Storage defines catalog persistence operations.
type Storage interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	UpsertDocuments(ctx context.Context, docs []models.Document) (int, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	// ListDocuments returns documents ordered by id. limit <= 0 returns all.
	ListDocuments(ctx context.Context, offset, limit int) ([]models.Document, error)
	CountDocuments(ctx context.Context) (int64, error)
	Close() error
}
