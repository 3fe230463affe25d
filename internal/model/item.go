// =============================================================================
// POS Billing - Item
// =============================================================================
//
// Item is one basket or bill line. It owns its fields privately and exposes
// accessors plus validating setters, so an Item can never hold a value that
// breaks the field rules in the validation package.
//
// DERIVED DATA:
//   line_total = sale_price * quantity
//
// The line total is computed on demand and never rounded; two-decimal
// formatting happens only when rendering.
//
// =============================================================================

package model

import (
	"github.com/ginjaninja78/pos-billing/internal/validation"
)

// Item represents a single line in a basket or bill.
type Item struct {
	itemCode      string
	internalPrice float64
	discount      float64
	salePrice     float64
	quantity      int
}

// NewItem creates an Item after validating every field.
//
// RETURNS:
//   - The new Item.
//   - A *validation.ValidationError for the first field that breaks its rule.
func NewItem(itemCode string, internalPrice, discount, salePrice float64, quantity int) (*Item, error) {
	checks := []error{
		validation.CheckItemCode(itemCode),
		validation.CheckInternalPrice(internalPrice),
		validation.CheckDiscount(discount),
		validation.CheckSalePrice(salePrice),
		validation.CheckQuantity(quantity),
	}
	for _, err := range checks {
		if err != nil {
			return nil, err
		}
	}

	return &Item{
		itemCode:      itemCode,
		internalPrice: internalPrice,
		discount:      discount,
		salePrice:     salePrice,
		quantity:      quantity,
	}, nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ItemCode returns the item code.
func (i *Item) ItemCode() string { return i.itemCode }

// InternalPrice returns the cost price of the item.
func (i *Item) InternalPrice() float64 { return i.internalPrice }

// Discount returns the discount percentage applied to the item.
func (i *Item) Discount() float64 { return i.discount }

// SalePrice returns the price the item is sold at.
func (i *Item) SalePrice() float64 { return i.salePrice }

// Quantity returns the number of units sold.
func (i *Item) Quantity() int { return i.quantity }

// LineTotal returns sale price multiplied by quantity.
func (i *Item) LineTotal() float64 {
	return i.salePrice * float64(i.quantity)
}

// =============================================================================
// SETTERS
// =============================================================================
// Each setter validates before assigning; on error the item is unchanged.

// SetItemCode replaces the item code.
func (i *Item) SetItemCode(itemCode string) error {
	if err := validation.CheckItemCode(itemCode); err != nil {
		return err
	}
	i.itemCode = itemCode
	return nil
}

// SetInternalPrice replaces the internal price.
func (i *Item) SetInternalPrice(internalPrice float64) error {
	if err := validation.CheckInternalPrice(internalPrice); err != nil {
		return err
	}
	i.internalPrice = internalPrice
	return nil
}

// SetDiscount replaces the discount.
func (i *Item) SetDiscount(discount float64) error {
	if err := validation.CheckDiscount(discount); err != nil {
		return err
	}
	i.discount = discount
	return nil
}

// SetSalePrice replaces the sale price.
func (i *Item) SetSalePrice(salePrice float64) error {
	if err := validation.CheckSalePrice(salePrice); err != nil {
		return err
	}
	i.salePrice = salePrice
	return nil
}

// SetQuantity replaces the quantity.
func (i *Item) SetQuantity(quantity int) error {
	if err := validation.CheckQuantity(quantity); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// ToMap returns the item as a mapping keyed by field name, including the
// derived line total.
func (i *Item) ToMap() map[string]any {
	return map[string]any{
		validation.FieldItemCode:      i.itemCode,
		validation.FieldInternalPrice: i.internalPrice,
		validation.FieldDiscount:      i.discount,
		validation.FieldSalePrice:     i.salePrice,
		validation.FieldQuantity:      i.quantity,
		"line_total":                  i.LineTotal(),
	}
}

// clone returns an independent copy of the item.
func (i *Item) clone() *Item {
	cp := *i
	return &cp
}
