package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hyperjump/shiori/internal/models"
)

// DelimitedSource reads CSV or TSV catalogs.
type DelimitedSource struct {
	path   string
	comma  rune
	header bool
}

// NewDelimitedSource returns a source reading path with the given field delimiter.
func NewDelimitedSource(path string, comma rune, header bool) *DelimitedSource {
	return &DelimitedSource{path: path, comma: comma, header: header}
}

// Name returns the file path.
func (s *DelimitedSource) Name() string { return s.path }

// Load reads every record from the file.
func (s *DelimitedSource) Load(ctx context.Context) ([]models.Document, []RecordError, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return s.read(ctx, f)
}

// read numbers records by the file line they start on, so a quoted field
// spanning lines does not shift the rows reported for later records.
func (s *DelimitedSource) read(ctx context.Context, r io.Reader) ([]models.Document, []RecordError, error) {
	cr := csv.NewReader(r)
	cr.Comma = s.comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	c := newCollector(s.header)
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				c.errs = append(c.errs, RecordError{Row: perr.Line, Reason: perr.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("read catalog: %w", err)
		}
		line, _ := cr.FieldPos(0)
		c.add(line, fields)
	}
	return c.docs, c.errs, nil
}
