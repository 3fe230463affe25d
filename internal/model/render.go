// =============================================================================
// POS Billing - Table Rendering
// =============================================================================
//
// Fixed-width text tables for the console. Widths are a presentation
// contract only; values are left-aligned and never truncated, numbers are
// shown with two decimals.
//
// BASKET / BILL TABLE:
//   | Line | Item Code      | Internal Price | Sale Price   | Discount   | Quantity | Line Total   |
//
// SINGLE ITEM TABLE:
//   | Item Code             | Internal Price | Sale Price   | Discount   | Quantity | Line Total   |
//
// =============================================================================

package model

import (
	"fmt"
	"strings"
)

const (
	linesBorder = "+------+----------------+----------------+--------------+------------+----------+--------------+"
	linesHeader = "| Line | Item Code      | Internal Price | Sale Price   | Discount   | Quantity | Line Total   |"
	itemBorder  = "+-----------------------+----------------+--------------+------------+----------+--------------+"
)

// String renders the item as a one-row table.
func (i *Item) String() string {
	var sb strings.Builder
	sb.WriteString(itemBorder + "\n")
	fmt.Fprintf(&sb, "| %-21s | %-14s | %-12s | %-10s | %-8s | %-12s |\n",
		"Item Code", "Internal Price", "Sale Price", "Discount", "Quantity", "Line Total")
	sb.WriteString(itemBorder + "\n")
	fmt.Fprintf(&sb, "| %-21s | %-14.2f | %-12.2f | %-10.2f | %-8d | %-12.2f |\n",
		i.itemCode, i.internalPrice, i.salePrice, i.discount, i.quantity, i.LineTotal())
	sb.WriteString(itemBorder)
	return sb.String()
}

// String renders the basket as a numbered table.
func (b *Basket) String() string {
	if b.IsEmpty() {
		return "Basket is empty."
	}
	var sb strings.Builder
	writeLines(&sb, b.items)
	return strings.TrimSuffix(sb.String(), "\n")
}

// String renders the bill header, its lines and the grand total.
func (b *Bill) String() string {
	if len(b.items) == 0 {
		return "No items in the bill."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nBill ID: %s\nTimestamp: %s\n", b.id, b.timestamp.Format(TimestampLayout))
	writeLines(&sb, b.items)
	fmt.Fprintf(&sb, "\nGrand Total: %-12.2f\n", b.grandTotal)
	return sb.String()
}

func writeLines(sb *strings.Builder, items []*Item) {
	sb.WriteString(linesBorder + "\n")
	sb.WriteString(linesHeader + "\n")
	sb.WriteString(linesBorder + "\n")
	for n, item := range items {
		fmt.Fprintf(sb, "| %-4d | %-14s | %-14.2f | %-12.2f | %-10.2f | %-8d | %-12.2f |\n",
			n+1, item.itemCode, item.internalPrice, item.salePrice, item.discount, item.quantity, item.LineTotal())
	}
	sb.WriteString(linesBorder + "\n")
}
