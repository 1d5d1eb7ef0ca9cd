// Package loader reads catalog records from CSV, TSV, XLSX and SQLite sources.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hyperjump/shiori/internal/config"
	"github.com/hyperjump/shiori/internal/models"
)

// ErrUnsupportedFormat is returned by Open when no source handles the catalog format.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Source loads catalog records. Malformed rows are returned as RecordErrors
// and skipped; the error return is reserved for failures that stop the load.
type Source interface {
	Load(ctx context.Context) ([]models.Document, []RecordError, error)
	Name() string
}

// RecordError describes a rejected catalog row.
type RecordError struct {
	Row    int    // 1-based row number in the source, header included
	ID     string // record id when one could be read
	Reason string
}

func (e RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("row %d (id %s): %s", e.Row, e.ID, e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Open returns the Source for cfg. Format wins over the file extension.
func Open(cfg config.CatalogConfig) (Source, error) {
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = formatFromExt(cfg.Path)
	}
	switch format {
	case "csv":
		delim := ','
		if cfg.Delimiter != "" {
			delim = []rune(cfg.Delimiter)[0]
		}
		return NewDelimitedSource(cfg.Path, delim, cfg.HasHeader()), nil
	case "tsv":
		return NewDelimitedSource(cfg.Path, '\t', cfg.HasHeader()), nil
	case "xlsx":
		return NewXLSXSource(cfg.Path, cfg.Sheet, cfg.HasHeader()), nil
	case "sqlite":
		return NewSQLiteSource(cfg.Path), nil
	default:
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, format, cfg.Path)
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return "csv"
	case ".tsv", ".tab":
		return "tsv"
	case ".xlsx":
		return "xlsx"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}

// parseRecord builds a document from the five catalog columns
// id, title, author, category, year.
func parseRecord(row int, fields []string) (models.Document, *RecordError) {
	if len(fields) < 5 {
		id := ""
		if len(fields) > 0 {
			id = strings.TrimSpace(fields[0])
		}
		return models.Document{}, &RecordError{Row: row, ID: id, Reason: fmt.Sprintf("expected 5 fields, got %d", len(fields))}
	}
	var vals [5]string
	for i := range vals {
		vals[i] = strings.TrimSpace(fields[i])
	}
	names := [5]string{"id", "title", "author", "category", "year"}
	for i, v := range vals {
		if v == "" {
			return models.Document{}, &RecordError{Row: row, ID: vals[0], Reason: "missing " + names[i]}
		}
	}
	year, err := strconv.Atoi(vals[4])
	if err != nil {
		return models.Document{}, &RecordError{Row: row, ID: vals[0], Reason: fmt.Sprintf("invalid year %q", vals[4])}
	}
	return models.Document{ID: vals[0], Title: vals[1], Author: vals[2], Category: vals[3], Year: year}, nil
}

// collector accumulates parsed rows; the first row with a given id wins.
// With header set, the first row it is given is dropped.
type collector struct {
	docs   []models.Document
	errs   []RecordError
	seen   map[string]int
	header bool
}

func newCollector(header bool) *collector {
	return &collector{seen: make(map[string]int), header: header}
}

func (c *collector) add(row int, fields []string) {
	if c.header {
		c.header = false
		return
	}
	if isBlank(fields) {
		return
	}
	doc, rerr := parseRecord(row, fields)
	if rerr != nil {
		c.errs = append(c.errs, *rerr)
		return
	}
	if first, dup := c.seen[doc.ID]; dup {
		c.errs = append(c.errs, RecordError{Row: row, ID: doc.ID, Reason: fmt.Sprintf("duplicate id, first seen on row %d", first)})
		return
	}
	c.seen[doc.ID] = row
	c.docs = append(c.docs, doc)
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
