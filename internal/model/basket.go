// =============================================================================
// POS Billing - Basket
// =============================================================================
//
// Basket is the operator's editable, uncommitted list of items. Position is
// identity: line N shown to the operator is index N-1 here, and removing a
// line shifts every later line up by one so numbering stays dense.
//
// =============================================================================

package model

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// Is lets errors.Is(err, ErrIndexOutOfRange) match.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Basket is an ordered collection of items.
type Basket struct {
	items []*Item
}

// NewBasket returns an empty basket.
func NewBasket() *Basket {
	return &Basket{}
}

// Add appends an item to the end of the basket.
func (b *Basket) Add(item *Item) {
	b.items = append(b.items, item)
}

// Get returns the item at a 0-based index. The returned item is the one held
// by the basket; mutating it through its setters updates the basket in place.
func (b *Basket) Get(index int) (*Item, error) {
	if err := b.checkIndex(index); err != nil {
		return nil, err
	}
	return b.items[index], nil
}

// Delete removes and returns the item at a 0-based index.
func (b *Basket) Delete(index int) (*Item, error) {
	if err := b.checkIndex(index); err != nil {
		return nil, err
	}
	removed := b.items[index]
	b.items = append(b.items[:index], b.items[index+1:]...)
	return removed, nil
}

// Update replaces the item at a 0-based index.
func (b *Basket) Update(index int, item *Item) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	b.items[index] = item
	return nil
}

// Items returns the basket's items in line order. The slice is a copy; the
// items are shared.
func (b *Basket) Items() []*Item {
	out := make([]*Item, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of lines in the basket.
func (b *Basket) Len() int {
	return len(b.items)
}

// IsEmpty reports whether the basket has no lines.
func (b *Basket) IsEmpty() bool {
	return len(b.items) == 0
}

// Total returns the sum of all line totals, 0 for an empty basket.
func (b *Basket) Total() float64 {
	return sumLineTotals(b.items)
}

// Clear empties the basket.
func (b *Basket) Clear() {
	b.items = nil
}

func (b *Basket) checkIndex(index int) error {
	if index < 0 || index >= len(b.items) {
		return &IndexError{Index: index, Len: len(b.items)}
	}
	return nil
}

func sumLineTotals(items []*Item) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
