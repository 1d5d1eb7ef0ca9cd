package loader

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/shiori/internal/models"
)

// XLSXSource reads a catalog from one worksheet of an Excel workbook.
type XLSXSource struct {
	path   string
	sheet  string
	header bool
}

// NewXLSXSource returns a source for path. An empty sheet reads the first sheet.
func NewXLSXSource(path, sheet string, header bool) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet, header: header}
}

// Name returns the file path.
func (s *XLSXSource) Name() string { return s.path }

// Load reads every row of the worksheet.
func (s *XLSXSource) Load(ctx context.Context) ([]models.Document, []RecordError, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("open Excel: %s has no sheets", s.path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
	}

	c := newCollector(s.header)
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		c.add(i+1, row)
	}
	return c.docs, c.errs, nil
}
