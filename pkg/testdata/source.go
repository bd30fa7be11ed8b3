// Package testdata reads tabular test data from spreadsheet workbooks.
//
// The expected shape is one header row followed by data rows whose first
// column carries a tag identifying the row. Lookups return header→cell maps,
// so callers address cells by column name rather than position.
package testdata

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/entrhq/waypoint/pkg/logging"
)

// Source reads workbooks relative to one test data directory.
type Source struct {
	dir string
	log *logging.Logger
}

// NewSource creates a source over the given test data directory.
func NewSource(dir string) *Source {
	log, _ := logging.NewLogger("testdata")
	return &Source{dir: dir, log: log}
}

// Row returns the first data row of the sheet whose first column equals tag,
// as a header→cell map.
func (s *Source) Row(file, sheet, tag string) (map[string]string, error) {
	header, rows, err := s.sheet(file, sheet)
	if err != nil {
		return nil, err
	}

	for _, cells := range rows {
		if len(cells) > 0 && cells[0] == tag {
			return zipRow(header, cells), nil
		}
	}
	return nil, fmt.Errorf("no row tagged %q in sheet %q of %s", tag, sheet, file)
}

// Rows returns every data row of the sheet as header→cell maps, in sheet
// order.
func (s *Source) Rows(file, sheet string) ([]map[string]string, error) {
	header, rows, err := s.sheet(file, sheet)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]string, 0, len(rows))
	for _, cells := range rows {
		out = append(out, zipRow(header, cells))
	}
	return out, nil
}

func (s *Source) sheet(file, sheet string) ([]string, [][]string, error) {
	path := filepath.Join(s.dir, file)

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer workbook.Close()

	raw, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q from %s: %w", sheet, path, err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("sheet %q of %s has no header row", sheet, path)
	}

	s.log.Debugf("Loaded %d data rows from %s sheet %s", len(raw)-1, file, sheet)
	return raw[0], raw[1:], nil
}

// zipRow pairs header names with cells. Rows shorter than the header are
// padded with empty strings; surplus cells are dropped.
func zipRow(header, cells []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(cells) {
			row[name] = cells[i]
		} else {
			row[name] = ""
		}
	}
	return row
}
