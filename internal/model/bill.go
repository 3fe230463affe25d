// =============================================================================
// POS Billing - Bill
// =============================================================================
//
// Bill is the immutable record produced by checkout. It keeps its own copies
// of the basket's items, so later edits to those items (or to the basket)
// never reach an issued bill.
//
// INVARIANTS:
//   - grand_total equals the sum of the copied items' line totals, computed
//     once at construction.
//   - timestamp has second precision.
//   - nothing about a Bill changes after NewBill returns.
//
// =============================================================================

package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// billIDWidth is the minimum width of a formatted bill id.
const billIDWidth = 4

// TimestampLayout is how bill timestamps are rendered and serialized.
const TimestampLayout = "2006-01-02 15:04:05"

// Bill is an issued, immutable snapshot of a basket.
type Bill struct {
	id         string
	items      []*Item
	timestamp  time.Time
	grandTotal float64
}

// NewBill freezes a copy of items under the bill id derived from seed.
func NewBill(seed string, items []*Item, now time.Time) *Bill {
	frozen := make([]*Item, len(items))
	for i, item := range items {
		frozen[i] = item.clone()
	}

	return &Bill{
		id:         FormatBillID(seed),
		items:      frozen,
		timestamp:  now.Truncate(time.Second),
		grandTotal: sumLineTotals(frozen),
	}
}

// FormatBillID left-pads seed with zeros to at least four characters.
// Seeds that are already four or more characters long are returned as is.
func FormatBillID(seed string) string {
	n := utf8.RuneCountInString(seed)
	if n >= billIDWidth {
		return seed
	}
	return strings.Repeat("0", billIDWidth-n) + seed
}

// ID returns the formatted bill id.
func (b *Bill) ID() string { return b.id }

// Timestamp returns the issuance time.
func (b *Bill) Timestamp() time.Time { return b.timestamp }

// GrandTotal returns the total frozen at issuance.
func (b *Bill) GrandTotal() float64 { return b.grandTotal }

// Len returns the number of lines on the bill.
func (b *Bill) Len() int { return len(b.items) }

// Items returns copies of the bill's items in line order.
func (b *Bill) Items() []*Item {
	out := make([]*Item, len(b.items))
	for i, item := range b.items {
		out[i] = item.clone()
	}
	return out
}

// ToMap returns the bill as a mapping with a nested list of item mappings.
func (b *Bill) ToMap() map[string]any {
	items := make([]map[string]any, len(b.items))
	for i, item := range b.items {
		items[i] = item.ToMap()
	}

	return map[string]any{
		"bill_id":     b.id,
		"timestamp":   b.timestamp.Format(TimestampLayout),
		"grand_total": b.grandTotal,
		"items":       items,
	}
}
