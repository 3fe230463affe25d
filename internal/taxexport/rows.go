package taxexport

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/pos-billing/internal/model"
)

// Column names of the tax report, in file order.
const (
	ColBillID        = "bill_id"
	ColItemCode      = "item_code"
	ColInternalPrice = "internal_price"
	ColDiscount      = "discount"
	ColSalePrice     = "sale_price"
	ColQuantity      = "quantity"
	ColLineTotal     = "line_total"
	ColChecksum      = "checksum"
)

// Headers is the tax report header row.
var Headers = []string{
	ColBillID,
	ColItemCode,
	ColInternalPrice,
	ColDiscount,
	ColSalePrice,
	ColQuantity,
	ColLineTotal,
	ColChecksum,
}

// Row is one (bill, item) line of the tax report.
type Row struct {
	BillID        string
	ItemCode      string
	InternalPrice float64
	Discount      float64
	SalePrice     float64
	Quantity      int
	LineTotal     float64
	Checksum      int
}

// BuildRows flattens bills into tax rows: bills in the order given, items in
// line order within each bill.
func BuildRows(bills []*model.Bill) []Row {
	var rows []Row
	for _, bill := range bills {
		for _, item := range bill.Items() {
			row := Row{
				BillID:        bill.ID(),
				ItemCode:      item.ItemCode(),
				InternalPrice: item.InternalPrice(),
				Discount:      item.Discount(),
				SalePrice:     item.SalePrice(),
				Quantity:      item.Quantity(),
				LineTotal:     item.LineTotal(),
			}
			row.Checksum = Checksum(strings.Join(row.checksumFields(), ""))
			rows = append(rows, row)
		}
	}
	return rows
}

// checksumFields returns the value text of every column except checksum.
func (r Row) checksumFields() []string {
	return []string{
		r.BillID,
		r.ItemCode,
		FormatFloat(r.InternalPrice),
		FormatFloat(r.Discount),
		FormatFloat(r.SalePrice),
		FormatInt(r.Quantity),
		FormatFloat(r.LineTotal),
	}
}

// Record returns the row's cells in Headers order.
func (r Row) Record() []string {
	return append(r.checksumFields(), strconv.Itoa(r.Checksum))
}

// Records converts rows to cell slices in Headers order.
func Records(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = row.Record()
	}
	return out
}
