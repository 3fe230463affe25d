package taxexport

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ginjaninja78/pos-billing/internal/csvstore"
	"github.com/ginjaninja78/pos-billing/internal/model"
	"github.com/ginjaninja78/pos-billing/internal/validation"
)

// ErrUnexpectedHeader is returned when a report's header row is not the tax
// report header.
var ErrUnexpectedHeader = errors.New("unexpected tax report header")

// Mismatch describes one row that failed verification.
type Mismatch struct {
	// Line is the 1-based data row number (the header is not counted).
	Line   int
	BillID string
	Reason string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("row %d (bill %s): %s", m.Line, m.BillID, m.Reason)
}

// Report is the outcome of verifying a tax report.
type Report struct {
	Path       string
	Rows       int
	Mismatches []Mismatch
}

// OK reports whether every row verified.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// VerifyFile reads a tax report (CSV, or XLSX by extension) and checks
// every row.
func VerifyFile(path string, store *csvstore.Store) (*Report, error) {
	var headers []string
	var records [][]string

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		h, r, err := ReadWorkbook(path)
		if err != nil {
			return nil, err
		}
		headers, records = h, r
	} else {
		table, err := store.ReadTable(path)
		if err != nil {
			return nil, err
		}
		headers, records = table.Headers, table.RawRows
	}

	report, err := Verify(headers, records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	report.Path = path
	return report, nil
}

// Verify checks tax rows against their own content.
//
// Each row must hold a valid item, its line_total must equal
// sale_price * quantity, and its checksum must match the checksum of the
// other cells' text as written.
func Verify(headers []string, records [][]string) (*Report, error) {
	if !sameHeaders(headers) {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedHeader, strings.Join(headers, ","))
	}

	report := &Report{Rows: len(records)}
	for i, record := range records {
		if reason := verifyRecord(record); reason != "" {
			billID := ""
			if len(record) > 0 {
				billID = record[0]
			}
			report.Mismatches = append(report.Mismatches, Mismatch{
				Line:   i + 1,
				BillID: billID,
				Reason: reason,
			})
		}
	}
	return report, nil
}

// verifyRecord returns why record is wrong, or "" if it is consistent.
func verifyRecord(record []string) string {
	if len(record) != len(Headers) {
		return fmt.Sprintf("expected %d cells, found %d", len(Headers), len(record))
	}

	want, err := strconv.Atoi(record[7])
	if err != nil {
		return fmt.Sprintf("checksum %q is not an integer", record[7])
	}
	if got := Checksum(strings.Join(record[:7], "")); got != want {
		return fmt.Sprintf("checksum is %d, expected %d", want, got)
	}

	internal, err1 := strconv.ParseFloat(record[2], 64)
	discount, err2 := strconv.ParseFloat(record[3], 64)
	sale, err3 := strconv.ParseFloat(record[4], 64)
	quantity, err4 := strconv.Atoi(record[5])
	lineTotal, err5 := strconv.ParseFloat(record[6], 64)
	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return "non-numeric value"
	}

	item, err := model.NewItem(record[1], internal, discount, sale, quantity)
	if err != nil {
		return validation.Message(err)
	}
	if item.LineTotal() != lineTotal {
		return fmt.Sprintf("line_total is %s, expected %s", record[6], FormatFloat(item.LineTotal()))
	}
	return ""
}

func sameHeaders(headers []string) bool {
	if len(headers) != len(Headers) {
		return false
	}
	for i, h := range headers {
		if strings.TrimSpace(h) != Headers[i] {
			return false
		}
	}
	return true
}
