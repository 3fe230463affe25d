// =============================================================================
// POS Billing - Tax Export
// =============================================================================
//
// This module turns the bill registry into tax report files.
//
// EXPORT PIPELINE:
//   1. Flatten every bill into one row per item (BuildRows)
//   2. Attach the structural checksum to every row
//   3. Name the report after the export's wall-clock time
//   4. Write one file per configured format (csv, xlsx)
//
// OVERWRITE SEMANTICS:
//   Each export writes complete, fresh files: header plus every row of every
//   bill issued so far. If a file with the same name exists (two exports in
//   the same second) it is replaced, never appended to.
//
// =============================================================================

package taxexport

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/pos-billing/internal/config"
	"github.com/ginjaninja78/pos-billing/internal/csvstore"
	"github.com/ginjaninja78/pos-billing/internal/model"
	"github.com/ginjaninja78/pos-billing/pkg/utils"
)

// =============================================================================
// EXPORTER
// =============================================================================

// Exporter writes tax reports.
type Exporter struct {
	files      *utils.FileManager
	store      *csvstore.Store
	nameFormat string
	formats    []string

	// Now returns the export time. Defaults to time.Now.
	Now func() time.Time
}

// Result describes one completed export.
type Result struct {
	// Rows is the number of item rows written to each file.
	Rows int

	// Files lists the written paths, one per format.
	Files []string

	// ExportedAt is the time embedded in the file names.
	ExportedAt time.Time
}

// NewExporter creates an Exporter from the tax export settings.
func NewExporter(settings config.TaxExportSettings, files *utils.FileManager, store *csvstore.Store) *Exporter {
	formats := settings.Formats
	if len(formats) == 0 {
		formats = []string{config.FormatCSV}
	}
	return &Exporter{
		files:      files,
		store:      store,
		nameFormat: settings.FileNameFormat,
		formats:    formats,
		Now:        time.Now,
	}
}

// Export writes every bill's rows to freshly created report files.
//
// RETURNS:
//   - The export result.
//   - An error if any file cannot be written. Files written before the
//     failing one are kept; the failing one is left as it was.
func (e *Exporter) Export(bills []*model.Bill) (*Result, error) {
	now := e.Now()
	rows := BuildRows(bills)
	records := Records(rows)

	result := &Result{Rows: len(rows), ExportedAt: now}

	for _, format := range e.formats {
		name := utils.GenerateOutputFileName(e.nameFormat, "."+format, now, nil)
		path := e.files.DataPath(name)

		var err error
		switch format {
		case config.FormatXLSX:
			err = WriteWorkbook(path, Headers, records)
		default:
			err = e.store.WriteTable(path, Headers, records)
		}
		if err != nil {
			return result, fmt.Errorf("failed to write %s tax report: %w", format, err)
		}

		result.Files = append(result.Files, path)
	}

	return result, nil
}
