package session_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/pos-billing/internal/config"
	"github.com/ginjaninja78/pos-billing/internal/csvstore"
	"github.com/ginjaninja78/pos-billing/internal/jsonstore"
	"github.com/ginjaninja78/pos-billing/internal/model"
	"github.com/ginjaninja78/pos-billing/internal/session"
	"github.com/ginjaninja78/pos-billing/internal/taxexport"
	"github.com/ginjaninja78/pos-billing/pkg/utils"
)

var sessionTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return sessionTime }

type stubExporter struct {
	calls int
	err   error
}

func (s *stubExporter) Export(bills []*model.Bill) (*taxexport.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &taxexport.Result{Rows: len(bills), Files: []string{"tax_report.csv"}}, nil
}

type stubReceipts struct {
	written []string
}

func (s *stubReceipts) Write(bill *model.Bill) (string, error) {
	s.written = append(s.written, bill.ID())
	return "receipts/receipt_" + bill.ID() + ".pdf", nil
}

func run(t *testing.T, input string, opts session.Options) (*session.Controller, string) {
	t.Helper()
	var out bytes.Buffer
	opts.In = strings.NewReader(input)
	opts.Out = &out
	if opts.Exporter == nil {
		opts.Exporter = &stubExporter{}
	}
	if opts.Now == nil {
		opts.Now = fixedClock
	}

	c := session.New(opts)
	require.NoError(t, c.Run(context.Background()))
	return c, out.String()
}

// lines joins operator input lines.
func lines(in ...string) string {
	return strings.Join(in, "\n") + "\n"
}

func TestEndToEndAddCheckoutSearchExport(t *testing.T) {
	dir := t.TempDir()
	store := csvstore.New(config.CSVSettings{Delimiter: ","})
	exporter := taxexport.NewExporter(
		config.TaxExportSettings{FileNameFormat: "tax_report_{timestamp}", Formats: []string{config.FormatCSV}},
		utils.NewFileManager(dir, filepath.Join(dir, "receipts")),
		store,
	)
	exporter.Now = fixedClock

	input := lines(
		"1", "SKU1", "1.00", "0", "2.00", "3",
		"2",
		"5",
		"6", "2501021",
		"7",
		"0",
	)
	c, out := run(t, input, session.Options{Exporter: exporter})

	assert.Contains(t, out, "Item added.")
	assert.Contains(t, out, "| 1    | SKU1           | 1.00           | 2.00         | 0.00       | 3        | 6.00         |")
	assert.Contains(t, out, "Bill ID: 2501021")
	assert.Contains(t, out, "Timestamp: 2025-01-02 03:04:05")
	assert.Contains(t, out, "Grand Total: 6.00")
	assert.Contains(t, out, "Bill found:")
	assert.True(t, strings.HasSuffix(out, "Exiting POS System.\n"))

	assert.True(t, c.Basket().IsEmpty())
	require.Equal(t, 1, c.Registry().Len())
	bill, ok := c.Registry().Find("2501021")
	require.True(t, ok)
	assert.Equal(t, 6.0, bill.GrandTotal())

	path := filepath.Join(dir, "tax_report_20250102_030405.csv")
	assert.Contains(t, out, "Tax report has been generated and saved to '"+path+"'.")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"bill_id,item_code,internal_price,discount,sale_price,quantity,line_total,checksum\n"+
			"2501021,SKU1,1.0,0.0,2.0,3,6.0,24\n",
		string(data))
}

func TestInvalidInputIsRePrompted(t *testing.T) {
	input := lines(
		"9",
		"1",
		"SKU-1", "SKU1",
		"abc", "-1", "1",
		"150", "0",
		"2",
		"0", "1",
		"0",
	)
	c, out := run(t, input, session.Options{})

	assert.Contains(t, out, "Invalid option. Please choose a number between 0 and 7.")
	assert.Contains(t, out, "Invalid item code: Only letters, numbers, and underscores are allowed.")
	assert.Contains(t, out, "Invalid input. Please enter a valid value.")
	assert.Contains(t, out, "Internal price cannot be negative.")
	assert.Contains(t, out, "Discount must be between 0 and 100.")
	assert.Contains(t, out, "Quantity must be a positive integer.")

	require.Equal(t, 1, c.Basket().Len())
	item, err := c.Basket().Get(0)
	require.NoError(t, err)
	assert.Equal(t, "SKU1", item.ItemCode())
	assert.Equal(t, 1.0, item.InternalPrice())
	assert.Equal(t, 2.0, item.LineTotal())
}

func TestEmptyStateMessages(t *testing.T) {
	exporter := &stubExporter{}
	_, out := run(t, lines("2", "3", "4", "5", "6", "7", "0"), session.Options{Exporter: exporter})

	assert.Contains(t, out, "Basket is empty.\n")
	assert.Contains(t, out, "Basket is empty. No items to delete.")
	assert.Contains(t, out, "Basket is empty. No items to update.")
	assert.Contains(t, out, "No items in the cart")
	assert.Contains(t, out, "No bills to search.")
	assert.Contains(t, out, "No bills available to generate tax file.")
	assert.Zero(t, exporter.calls)
}

func TestDeleteRePromptsOutOfRangeLine(t *testing.T) {
	input := lines(
		"1", "A", "1", "0", "1", "1",
		"1", "B", "1", "0", "2", "1",
		"3", "5", "0", "1",
		"0",
	)
	c, out := run(t, input, session.Options{})

	assert.Equal(t, 2, strings.Count(out, "Invalid index. Please enter a valid line number."))
	assert.Contains(t, out, "Item removed from basket:")
	require.Equal(t, 1, c.Basket().Len())
	item, err := c.Basket().Get(0)
	require.NoError(t, err)
	assert.Equal(t, "B", item.ItemCode())
	assert.Equal(t, 2.0, c.Basket().Total())
}

func TestUpdateAllFields(t *testing.T) {
	input := lines(
		"1", "SKU1", "1", "0", "2", "3",
		"4", "1", "7", "4", "5", "10", "2",
		"0",
	)
	c, out := run(t, input, session.Options{})

	assert.Contains(t, out, "Please enter a valid option (1 to 4).")
	assert.Contains(t, out, "Item updated.")

	item, err := c.Basket().Get(0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, item.SalePrice())
	assert.Equal(t, 10.0, item.Discount())
	assert.Equal(t, 2, item.Quantity())
	assert.Equal(t, 10.0, c.Basket().Total())
}

func TestUpdateSingleField(t *testing.T) {
	input := lines(
		"1", "SKU1", "1", "0", "2", "3",
		"4", "1", "3", "5",
		"0",
	)
	c, _ := run(t, input, session.Options{})

	item, err := c.Basket().Get(0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, item.SalePrice())
	assert.Equal(t, 5, item.Quantity())
}

func TestUpdateInterruptedLeavesItemUnchanged(t *testing.T) {
	input := lines(
		"1", "SKU1", "1", "0", "2", "3",
		"4", "1", "4", "9",
	)
	c, _ := run(t, input, session.Options{})

	item, err := c.Basket().Get(0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, item.SalePrice())
	assert.Equal(t, 6.0, c.Basket().Total())
}

func TestBillIDsIncrementAndSearchMisses(t *testing.T) {
	input := lines(
		"1", "A", "1", "0", "1", "1",
		"5",
		"1", "B", "1", "0", "2", "2",
		"5",
		"6", "-3", "42",
		"0",
	)
	c, out := run(t, input, session.Options{})

	ids := []string{}
	for _, bill := range c.Registry().All() {
		ids = append(ids, bill.ID())
	}
	assert.Equal(t, []string{"2501021", "2501022"}, ids)
	assert.Contains(t, out, "Bill ID should be positive.")
	assert.Contains(t, out, "Bill with ID 42 not found.")
}

func TestCheckoutJournalAndReceipt(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "bills.json")
	receipts := &stubReceipts{}

	input := lines("1", "SKU1", "1", "0", "2", "3", "5", "0")
	_, out := run(t, input, session.Options{JournalPath: journal, Receipts: receipts})

	assert.Equal(t, []string{"2501021"}, receipts.written)
	assert.Contains(t, out, "Receipt saved to 'receipts/receipt_2501021.pdf'.")

	records, err := jsonstore.ReadDocument(journal)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2501021", records[0]["bill_id"])
	assert.Equal(t, "2025-01-02 03:04:05", records[0]["timestamp"])
	assert.Equal(t, 6.0, records[0]["grand_total"])
}

func TestExportFailureKeepsSessionRunning(t *testing.T) {
	exporter := &stubExporter{err: errors.New("disk full")}
	input := lines("1", "SKU1", "1", "0", "2", "3", "5", "7", "2", "0")
	c, out := run(t, input, session.Options{Exporter: exporter})

	assert.Equal(t, 1, exporter.calls)
	assert.Contains(t, out, "Error: failed to generate tax file: disk full")
	assert.Contains(t, out, "Basket is empty.")
	assert.Equal(t, 1, c.Registry().Len())
}

func TestEndOfInputExitsCleanly(t *testing.T) {
	c, out := run(t, "1\nSKU1\n", session.Options{})

	assert.True(t, strings.HasSuffix(out, "Exiting POS System.\n"))
	assert.True(t, c.Basket().IsEmpty())
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := session.New(session.Options{In: strings.NewReader("0\n"), Exporter: &stubExporter{}})
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
	assert.NotEmpty(t, c.SessionID())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "checkout", session.CommandCheckout.String())
	assert.Equal(t, "export_tax", session.CommandExportTax.String())
	assert.Equal(t, "command_42", session.Command(42).String())
}
