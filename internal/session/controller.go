// =============================================================================
// POS Billing - Session Controller
// =============================================================================
//
// This module runs one operator session at the console. It owns the basket,
// the bill registry and the bill id counter, and turns menu choices into
// operations on them.
//
// SESSION LOOP:
//   1. Print the menu
//   2. Read a choice (re-prompting until it is 0..7)
//   3. Dispatch to the command's handler
//   4. Repeat until the operator exits or input ends
//
// INPUT:
//   Every prompt re-asks until the input parses and passes validation. The
//   rule's message is printed between attempts. End of input at any prompt
//   ends the session cleanly, as if the operator chose Exit.
//
// CONCURRENCY:
//   A controller is driven by a single goroutine. One command is fully
//   processed before the next choice is read.
//
// =============================================================================

package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ginjaninja78/pos-billing/internal/model"
	"github.com/ginjaninja78/pos-billing/internal/taxexport"
	"github.com/ginjaninja78/pos-billing/internal/validation"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command is a menu choice. Its value is the number the operator types.
type Command int

const (
	CommandExit Command = iota
	CommandAddItem
	CommandShowBasket
	CommandDeleteItem
	CommandUpdateItem
	CommandCheckout
	CommandSearchBill
	CommandExportTax
)

func (c Command) String() string {
	switch c {
	case CommandExit:
		return "exit"
	case CommandAddItem:
		return "add_item"
	case CommandShowBasket:
		return "show_basket"
	case CommandDeleteItem:
		return "delete_item"
	case CommandUpdateItem:
		return "update_item"
	case CommandCheckout:
		return "checkout"
	case CommandSearchBill:
		return "search_bill"
	case CommandExportTax:
		return "export_tax"
	default:
		return "command_" + strconv.Itoa(int(c))
	}
}

const menu = `
=== POS System Menu ===

1. Add item to basket
2. Show basket
3. Delete item
4. Update item
5. Generate bill
6. Search bill
7. Generate tax file
0. Exit`

const (
	invalidOptionMessage = "Invalid option. Please choose a number between 0 and 7."
	exitMessage          = "Exiting POS System."
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// TaxExporter writes the tax report for a list of bills.
type TaxExporter interface {
	Export(bills []*model.Bill) (*taxexport.Result, error)
}

// ReceiptWriter saves a receipt for an issued bill and returns where.
type ReceiptWriter interface {
	Write(bill *model.Bill) (string, error)
}

// Options configures a Controller.
type Options struct {
	// In is read line by line for operator input.
	In io.Reader

	// Out receives menus, prompts and results.
	Out io.Writer

	// Logger receives the audit log. Defaults to a no-op logger.
	Logger zerolog.Logger

	// Exporter writes tax reports. Required.
	Exporter TaxExporter

	// JournalPath, when set, is the JSON document every issued bill is
	// appended to.
	JournalPath string

	// Receipts, when set, saves a receipt for every issued bill.
	Receipts ReceiptWriter

	// BillIDDateLayout is the time layout of the bill id prefix.
	// Defaults to "060102".
	BillIDDateLayout string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// =============================================================================
// CONTROLLER STRUCTURE
// =============================================================================

// Controller runs one POS session.
type Controller struct {
	basket   *model.Basket
	registry *model.Registry

	// nextBill is the per-session counter appended to the bill id prefix.
	nextBill int

	in  *bufio.Scanner
	out io.Writer

	exporter    TaxExporter
	journalPath string
	receipts    ReceiptWriter
	dateLayout  string
	now         func() time.Time
	logger      zerolog.Logger
	sessionID   string
	handlers    map[Command]func() error
}

// New creates a Controller with an empty basket and registry.
func New(opts Options) *Controller {
	c := &Controller{
		basket:      model.NewBasket(),
		registry:    model.NewRegistry(),
		nextBill:    1,
		in:          bufio.NewScanner(opts.In),
		out:         opts.Out,
		exporter:    opts.Exporter,
		journalPath: opts.JournalPath,
		receipts:    opts.Receipts,
		dateLayout:  opts.BillIDDateLayout,
		now:         opts.Now,
		sessionID:   uuid.NewString(),
	}
	if c.out == nil {
		c.out = io.Discard
	}
	if c.dateLayout == "" {
		c.dateLayout = "060102"
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.logger = opts.Logger.With().Str("session_id", c.sessionID).Logger()

	c.handlers = map[Command]func() error{
		CommandAddItem:    c.addItem,
		CommandShowBasket: c.showBasket,
		CommandDeleteItem: c.deleteItem,
		CommandUpdateItem: c.updateItem,
		CommandCheckout:   c.checkout,
		CommandSearchBill: c.searchBill,
		CommandExportTax:  c.exportTax,
	}
	return c
}

// SessionID returns the id attached to this session's log entries.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Basket returns the session basket.
func (c *Controller) Basket() *model.Basket {
	return c.basket
}

// Registry returns the session's bill registry.
func (c *Controller) Registry() *model.Registry {
	return c.registry
}

// =============================================================================
// SESSION LOOP
// =============================================================================

// Run processes commands until the operator exits, input ends or ctx is
// cancelled.
//
// RETURNS:
//   - nil on exit or end of input.
//   - ctx.Err() if the context was cancelled.
//   - An error if reading input fails.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info().Msg("Session started")
	defer func() {
		c.logger.Info().Int("bills", c.registry.Len()).Msg("Session ended")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println(menu)
		choice, err := prompt(c, "Choose an option: ", func(s string) (int, error) {
			return validation.ParseIntInRange(s, 0, 7, "option", invalidOptionMessage)
		})
		if errors.Is(err, io.EOF) {
			c.println(exitMessage)
			return nil
		}
		if err != nil {
			return err
		}

		cmd := Command(choice)
		if cmd == CommandExit {
			c.println(exitMessage)
			return nil
		}

		err = c.handlers[cmd]()
		switch {
		case errors.Is(err, io.EOF):
			c.println(exitMessage)
			return nil
		case err != nil:
			c.logger.Error().Err(err).Stringer("command", cmd).Msg("Command failed")
			c.println("Error: " + err.Error())
		}
	}
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

// readLine prints label and reads one line. It returns io.EOF when input
// is exhausted.
func (c *Controller) readLine(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// prompt reads lines until parse accepts one, printing the validation
// message after every rejected line.
func prompt[T any](c *Controller, label string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := c.readLine(label)
		if err != nil {
			var zero T
			return zero, err
		}

		value, err := parse(line)
		if err == nil {
			return value, nil
		}
		c.println(validation.Message(err))
	}
}

func (c *Controller) println(s string) {
	fmt.Fprintln(c.out, s)
}
