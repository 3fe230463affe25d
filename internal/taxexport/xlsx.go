package taxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/pos-billing/pkg/utils"
)

// SheetName is the worksheet holding the tax rows.
const SheetName = "tax_report"

// WriteWorkbook writes headers and records to a single-sheet XLSX file.
// Cells are stored as text so the workbook carries exactly the values the
// checksums were computed over.
func WriteWorkbook(path string, headers []string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	write := func(rowNum int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return f.SetSheetRow(SheetName, cell, &values)
	}

	if err := write(1, headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range records {
		if err := write(i+2, record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

// ReadWorkbook reads the first sheet of an XLSX file as a header row plus
// data rows.
func ReadWorkbook(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	return rows[0], rows[1:], nil
}
