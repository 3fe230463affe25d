package session

import (
	"fmt"
	"strconv"

	"github.com/ginjaninja78/pos-billing/internal/jsonstore"
	"github.com/ginjaninja78/pos-billing/internal/model"
	"github.com/ginjaninja78/pos-billing/internal/validation"
)

const (
	invalidLineMessage   = "Invalid index. Please enter a valid line number."
	invalidUpdateMessage = "Please enter a valid option (1 to 4)."
	invalidBillIDMessage = "Bill ID should be positive."
)

// update menu choices
const (
	updateSalePrice = 1
	updateDiscount  = 2
	updateQuantity  = 3
	updateAll       = 4
)

// =============================================================================
// BASKET COMMANDS
// =============================================================================

func (c *Controller) addItem() error {
	code, err := prompt(c, "Item code: ", validation.ParseItemCode)
	if err != nil {
		return err
	}
	internal, err := prompt(c, "Internal price: ", validation.ParseInternalPrice)
	if err != nil {
		return err
	}
	discount, err := prompt(c, "Discount: ", validation.ParseDiscount)
	if err != nil {
		return err
	}
	sale, err := prompt(c, "Sale price: ", validation.ParseSalePrice)
	if err != nil {
		return err
	}
	quantity, err := prompt(c, "Quantity: ", validation.ParseQuantity)
	if err != nil {
		return err
	}

	item, err := model.NewItem(code, internal, discount, sale, quantity)
	if err != nil {
		return err
	}
	c.basket.Add(item)

	c.logger.Debug().
		Str("item_code", code).
		Int("quantity", quantity).
		Float64("line_total", item.LineTotal()).
		Msg("Item added")

	c.println("Item added.\n")
	return c.showBasket()
}

func (c *Controller) showBasket() error {
	if c.basket.IsEmpty() {
		c.println("Basket is empty.\n")
		return nil
	}
	c.println("\nBasket:")
	c.println(c.basket.String())
	return nil
}

func (c *Controller) deleteItem() error {
	if c.basket.IsEmpty() {
		c.println("Basket is empty. No items to delete.\n")
		return nil
	}

	index, err := c.promptLine("Enter line number to delete: ")
	if err != nil {
		return err
	}
	removed, err := c.basket.Delete(index)
	if err != nil {
		return err
	}

	c.logger.Debug().Int("line", index+1).Str("item_code", removed.ItemCode()).Msg("Item removed")
	c.println("Item removed from basket:\n" + removed.String())
	return nil
}

func (c *Controller) updateItem() error {
	if c.basket.IsEmpty() {
		c.println("Basket is empty. No items to update.\n")
		return nil
	}

	index, err := c.promptLine("Enter line number to update: ")
	if err != nil {
		return err
	}
	item, err := c.basket.Get(index)
	if err != nil {
		return err
	}

	c.println("\nWhat would you like to update?")
	c.println("1. Sale Price")
	c.println("2. Discount")
	c.println("3. Quantity")
	c.println("4. All of the above")
	option, err := prompt(c, "Choose an option (1-4): ", func(s string) (int, error) {
		return validation.ParseIntInRange(s, updateSalePrice, updateAll, "update_option", invalidUpdateMessage)
	})
	if err != nil {
		return err
	}

	// The item changes only after every requested value has been read.
	var setters []func() error
	if option == updateSalePrice || option == updateAll {
		sale, err := prompt(c, "New sale price: ", validation.ParseSalePrice)
		if err != nil {
			return err
		}
		setters = append(setters, func() error { return item.SetSalePrice(sale) })
	}
	if option == updateDiscount || option == updateAll {
		discount, err := prompt(c, "New discount: ", validation.ParseDiscount)
		if err != nil {
			return err
		}
		setters = append(setters, func() error { return item.SetDiscount(discount) })
	}
	if option == updateQuantity || option == updateAll {
		quantity, err := prompt(c, "New quantity: ", validation.ParseQuantity)
		if err != nil {
			return err
		}
		setters = append(setters, func() error { return item.SetQuantity(quantity) })
	}
	for _, set := range setters {
		if err := set(); err != nil {
			return err
		}
	}

	c.logger.Debug().Int("line", index+1).Int("option", option).Msg("Item updated")
	c.println("Item updated.\n" + item.String())
	return nil
}

// promptLine asks for a 1-based line number of the current basket and
// returns it as a 0-based index.
func (c *Controller) promptLine(label string) (int, error) {
	line, err := prompt(c, label, func(s string) (int, error) {
		return validation.ParseIntInRange(s, 1, c.basket.Len(), "line", invalidLineMessage)
	})
	if err != nil {
		return 0, err
	}
	return line - 1, nil
}

// =============================================================================
// BILL COMMANDS
// =============================================================================

// checkout turns the basket into a bill, registers it and empties the basket.
// Journal and receipt failures are reported but do not undo the bill.
func (c *Controller) checkout() error {
	if c.basket.IsEmpty() {
		c.println("No items in the cart")
		return nil
	}

	now := c.now()
	seed := now.Format(c.dateLayout) + strconv.Itoa(c.nextBill)
	bill := model.NewBill(seed, c.basket.Items(), now)
	c.registry.Append(bill)
	c.nextBill++
	c.basket.Clear()

	c.logger.Info().
		Str("bill_id", bill.ID()).
		Int("items", bill.Len()).
		Float64("grand_total", bill.GrandTotal()).
		Msg("Bill issued")
	c.println(bill.String())

	if c.journalPath != "" {
		if err := jsonstore.AppendRecord(c.journalPath, bill.ToMap()); err != nil {
			c.logger.Error().Err(err).Str("bill_id", bill.ID()).Msg("Failed to journal bill")
			c.println("Warning: bill was not written to the journal: " + err.Error())
		} else {
			c.logger.Debug().Str("bill_id", bill.ID()).Str("path", c.journalPath).Msg("Bill journaled")
		}
	}

	if c.receipts != nil {
		path, err := c.receipts.Write(bill)
		if err != nil {
			c.logger.Error().Err(err).Str("bill_id", bill.ID()).Msg("Failed to save receipt")
			c.println("Warning: receipt was not saved: " + err.Error())
		} else {
			c.logger.Debug().Str("bill_id", bill.ID()).Str("path", path).Msg("Receipt saved")
			c.println(fmt.Sprintf("Receipt saved to '%s'.", path))
		}
	}

	return nil
}

func (c *Controller) searchBill() error {
	if c.registry.Len() == 0 {
		c.println("No bills to search.")
		return nil
	}

	id, err := prompt(c, "Enter the Bill ID to search: ", func(s string) (int, error) {
		return validation.ParsePositiveInt(s, "bill_id", invalidBillIDMessage)
	})
	if err != nil {
		return err
	}

	bill, ok := c.registry.FindNumber(id)
	if !ok {
		c.println(fmt.Sprintf("Bill with ID %d not found.", id))
		return nil
	}
	c.println("Bill found: \n" + bill.String())
	return nil
}

func (c *Controller) exportTax() error {
	if c.registry.Len() == 0 {
		c.println("No bills available to generate tax file.")
		return nil
	}

	result, err := c.exporter.Export(c.registry.All())
	if err != nil {
		return fmt.Errorf("failed to generate tax file: %w", err)
	}

	c.logger.Info().
		Int("bills", c.registry.Len()).
		Int("rows", result.Rows).
		Strs("files", result.Files).
		Msg("Tax report exported")
	for _, path := range result.Files {
		c.println(fmt.Sprintf("Tax report has been generated and saved to '%s'.", path))
	}
	return nil
}
