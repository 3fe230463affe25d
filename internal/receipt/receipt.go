// Package receipt renders issued bills as printable PDF receipts.
package receipt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/ginjaninja78/pos-billing/internal/model"
	"github.com/ginjaninja78/pos-billing/pkg/utils"
)

// column widths in mm; they add up to the A4 text width
var columns = []struct {
	title string
	width float64
	align string
}{
	{"Line", 12, "C"},
	{"Item Code", 44, "L"},
	{"Sale Price", 30, "R"},
	{"Discount", 24, "R"},
	{"Quantity", 22, "R"},
	{"Line Total", 34, "R"},
}

// BuildPDF renders a one-page receipt for bill.
func BuildPDF(bill *model.Bill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Receipt %s", bill.ID()), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Receipt")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Bill ID: %s", bill.ID()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Timestamp: %s", bill.Timestamp().Format(model.TimestampLayout)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	for _, col := range columns {
		pdf.CellFormat(col.width, 6, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, item := range bill.Items() {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			item.ItemCode(),
			fmt.Sprintf("%.2f", item.SalePrice()),
			fmt.Sprintf("%.2f", item.Discount()),
			fmt.Sprintf("%d", item.Quantity()),
			fmt.Sprintf("%.2f", item.LineTotal()),
		}
		for j, col := range columns {
			pdf.CellFormat(col.width, 6, cells[j], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Grand Total: %.2f", bill.GrandTotal()))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt %s: %w", bill.ID(), err)
	}
	return buf.Bytes(), nil
}

// Writer saves receipts under the receipts directory.
type Writer struct {
	files *utils.FileManager
}

// NewWriter creates a Writer.
func NewWriter(files *utils.FileManager) *Writer {
	return &Writer{files: files}
}

// Receipt file name templates. Bill ids restart in every session, so the
// issue time is part of the name; the uuid form is used only when that name
// is already taken.
const (
	fileNameFormat       = "receipt_{bill_id}_{timestamp}"
	fileNameFormatUnique = "receipt_{bill_id}_{timestamp}_{uuid}"
)

// Write renders bill and saves it as receipt_<bill_id>_<timestamp>.pdf,
// returning the path written. An existing receipt is never replaced.
func (w *Writer) Write(bill *model.Bill) (string, error) {
	data, err := BuildPDF(bill)
	if err != nil {
		return "", err
	}

	params := map[string]string{"bill_id": bill.ID()}
	path := w.files.ReceiptPath(utils.GenerateOutputFileName(fileNameFormat, ".pdf", bill.Timestamp(), params))
	if utils.FileExists(path) {
		path = w.files.ReceiptPath(utils.GenerateOutputFileName(fileNameFormatUnique, ".pdf", bill.Timestamp(), params))
	}

	err = utils.WriteFileAtomic(path, func(out io.Writer) error {
		_, err := out.Write(data)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to save receipt: %w", err)
	}
	return path, nil
}
