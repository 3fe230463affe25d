// =============================================================================
// POS Billing - CSV Table Store
// =============================================================================
//
// This module reads and writes flat tables: one header row followed by data
// rows. It is the only place that knows about CSV encoding; callers deal in
// headers and string cells.
//
// FEATURES:
//   - Configurable delimiter (comma, pipe, tab, semicolon)
//   - Whole-file overwrite through an atomic temp-file rename
//   - Reading back as header -> value maps
//   - A missing file reads as an empty table
//
// =============================================================================

package csvstore

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/pos-billing/internal/config"
	"github.com/ginjaninja78/pos-billing/pkg/utils"
)

// ErrRowWidth is returned when a row does not have one cell per header.
var ErrRowWidth = errors.New("row width does not match header")

// =============================================================================
// TABLE DATA STRUCTURE
// =============================================================================

// Table represents a parsed CSV file.
type Table struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// RawRows contains the data rows as read, in header order.
	RawRows [][]string

	// SourceFile is the path the table was read from.
	SourceFile string
}

// Store reads and writes tables using one set of CSV settings.
type Store struct {
	settings config.CSVSettings
}

// New creates a Store.
func New(settings config.CSVSettings) *Store {
	return &Store{settings: settings}
}

// =============================================================================
// WRITING
// =============================================================================

// WriteTable replaces the file at path with headers followed by rows.
//
// PARAMETERS:
//   - path: Destination file. Parent directories are created.
//   - headers: The header row.
//   - rows: Data rows; each must have len(headers) cells.
//
// RETURNS:
//   - An error if any row has the wrong width or the write fails. On error
//     the previous file content (if any) is left untouched.
func (s *Store) WriteTable(path string, headers []string, rows [][]string) error {
	for i, row := range rows {
		if len(row) != len(headers) {
			return fmt.Errorf("row %d has %d cells, want %d: %w", i+1, len(row), len(headers), ErrRowWidth)
		}
	}

	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		buffered := bufio.NewWriter(w)
		writer := csv.NewWriter(buffered)
		writer.Comma = s.delimiter()

		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := writer.WriteAll(rows); err != nil {
			return fmt.Errorf("failed to write rows: %w", err)
		}
		return buffered.Flush()
	})
}

// =============================================================================
// READING
// =============================================================================

// ReadTable reads a table written by WriteTable (or any CSV with a single
// header row).
//
// RETURNS:
//   - The table. A missing file returns an empty table and no error.
//   - An error if the file cannot be opened or parsed.
func (s *Store) ReadTable(path string) (*Table, error) {
	table := &Table{SourceFile: path, Rows: []map[string]string{}}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = s.delimiter()
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) == 0 {
		return table, nil
	}

	table.Headers = cleanHeaders(allRows[0])
	for _, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}
		table.RawRows = append(table.RawRows, row)
		table.Rows = append(table.Rows, rowToMap(table.Headers, row))
	}

	return table, nil
}

// delimiter maps the configured delimiter name to a rune.
func (s *Store) delimiter() rune {
	switch s.settings.Delimiter {
	case "\\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if len(s.settings.Delimiter) > 0 {
			return rune(s.settings.Delimiter[0])
		}
		return ','
	}
}

// cleanHeaders trims headers and names empty ones after their position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// rowToMap pairs cells with headers; missing cells become empty strings.
func rowToMap(headers, row []string) map[string]string {
	m := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(row) {
			m[header] = row[i]
		} else {
			m[header] = ""
		}
	}
	return m
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
