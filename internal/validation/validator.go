// =============================================================================
// POS Billing - Validation Engine
// =============================================================================
//
// This module holds every rule an Item field must satisfy. The same rules are
// used in two places:
//   1. The console prompts, which parse raw operator input and re-prompt on
//      failure.
//   2. The model constructors and setters, which reject out-of-range values
//      no matter where they came from (console, exported tax report, tests).
//
// RULES:
//   - item_code      : non-empty, letters, digits and underscore only
//   - internal_price : finite, >= 0
//   - discount       : finite, 0 <= value <= 100
//   - sale_price     : finite, >= 0
//   - quantity       : integer > 0
//
// The rules are expressed as go-playground/validator tags so the checks and
// their operator-facing messages live side by side.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// FIELD NAMES
// =============================================================================

// Field names double as the keys used in serialized items and tax rows.
const (
	FieldItemCode      = "item_code"
	FieldInternalPrice = "internal_price"
	FieldDiscount      = "discount"
	FieldSalePrice     = "sale_price"
	FieldQuantity      = "quantity"
)

// InvalidInputMessage is shown when the operator's input cannot be parsed at all.
const InvalidInputMessage = "Invalid input. Please enter a valid value."

// ErrInvalidInput is returned by the Parse functions when the input is not a
// number of the expected kind.
var ErrInvalidInput = errors.New("invalid input")

// =============================================================================
// VALIDATION ERROR TYPE
// =============================================================================

// ValidationError represents a single failed field rule.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Value is the rejected value, formatted as text.
	Value string

	// Rule is the validator tag that was violated (e.g. "gte", "itemcode").
	Rule string

	// Message is the operator-facing explanation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("field '%s': %s (value: '%s')", e.Field, e.Message, e.Value)
}

// =============================================================================
// RULE TABLE
// =============================================================================

type rule struct {
	tag     string
	message string
}

var rules = map[string]rule{
	FieldItemCode: {
		tag:     "required,itemcode",
		message: "Invalid item code: Only letters, numbers, and underscores are allowed.",
	},
	FieldInternalPrice: {
		tag:     "finite,gte=0",
		message: "Internal price cannot be negative.",
	},
	FieldDiscount: {
		tag:     "finite,gte=0,lte=100",
		message: "Discount must be between 0 and 100.",
	},
	FieldSalePrice: {
		tag:     "finite,gte=0",
		message: "Sale price cannot be negative.",
	},
	FieldQuantity: {
		tag:     "gt=0",
		message: "Quantity must be a positive integer.",
	},
}

// itemCodePattern accepts letters, decimal digits and underscore. Other
// numeric characters (², Ⅰ, ½) are rejected: the tax checksum could not
// classify them consistently.
var itemCodePattern = regexp.MustCompile(`^[\p{L}\p{Nd}_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("itemcode", func(fl validator.FieldLevel) bool {
		return itemCodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	return v
}

// check runs the rule registered for field against value.
func check(field string, value interface{}, text string) error {
	r, ok := rules[field]
	if !ok {
		return fmt.Errorf("no validation rule for field %q", field)
	}

	err := validate.Var(value, r.tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	tag := "invalid"
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		tag = fieldErrs[0].Tag()
	}
	message := r.message
	if tag == "finite" {
		message = fmt.Sprintf("%s must be a finite number.", label(field))
	}

	return &ValidationError{
		Field:   field,
		Value:   text,
		Rule:    tag,
		Message: message,
	}
}

func label(field string) string {
	switch field {
	case FieldInternalPrice:
		return "Internal price"
	case FieldDiscount:
		return "Discount"
	case FieldSalePrice:
		return "Sale price"
	case FieldQuantity:
		return "Quantity"
	default:
		return "Item code"
	}
}

// =============================================================================
// FIELD CHECKS
// =============================================================================

// CheckItemCode validates an item code.
func CheckItemCode(code string) error {
	return check(FieldItemCode, code, code)
}

// CheckInternalPrice validates an internal (cost) price.
func CheckInternalPrice(price float64) error {
	return check(FieldInternalPrice, price, strconv.FormatFloat(price, 'f', -1, 64))
}

// CheckDiscount validates a discount percentage.
func CheckDiscount(discount float64) error {
	return check(FieldDiscount, discount, strconv.FormatFloat(discount, 'f', -1, 64))
}

// CheckSalePrice validates a sale price.
func CheckSalePrice(price float64) error {
	return check(FieldSalePrice, price, strconv.FormatFloat(price, 'f', -1, 64))
}

// CheckQuantity validates a quantity.
func CheckQuantity(quantity int) error {
	return check(FieldQuantity, quantity, strconv.Itoa(quantity))
}

// =============================================================================
// INPUT PARSERS
// =============================================================================
// The Parse functions turn one line of operator input into a typed value.
// Unparseable input yields ErrInvalidInput; parseable but out-of-range input
// yields a *ValidationError carrying the rule's message.

// ParseItemCode validates raw input as an item code.
// The value is not trimmed: surrounding spaces are not word characters.
func ParseItemCode(input string) (string, error) {
	if err := CheckItemCode(input); err != nil {
		return "", err
	}
	return input, nil
}

// ParseInternalPrice parses and validates an internal price.
func ParseInternalPrice(input string) (float64, error) {
	return parseFloatField(input, CheckInternalPrice)
}

// ParseDiscount parses and validates a discount.
func ParseDiscount(input string) (float64, error) {
	return parseFloatField(input, CheckDiscount)
}

// ParseSalePrice parses and validates a sale price.
func ParseSalePrice(input string) (float64, error) {
	return parseFloatField(input, CheckSalePrice)
}

// ParseQuantity parses and validates a quantity.
func ParseQuantity(input string) (int, error) {
	value, err := parseInt(input)
	if err != nil {
		return 0, err
	}
	if err := CheckQuantity(value); err != nil {
		return 0, err
	}
	return value, nil
}

// ParseIntInRange parses an integer and requires min <= value <= max.
// It backs menu choices, line numbers and update options; message is shown
// to the operator when the value is out of range.
func ParseIntInRange(input string, min, max int, field, message string) (int, error) {
	value, err := parseInt(input)
	if err != nil {
		return 0, err
	}
	if value < min || value > max {
		return 0, &ValidationError{
			Field:   field,
			Value:   strconv.Itoa(value),
			Rule:    fmt.Sprintf("range=%d..%d", min, max),
			Message: message,
		}
	}
	return value, nil
}

// ParsePositiveInt parses an integer that must be greater than zero.
func ParsePositiveInt(input, field, message string) (int, error) {
	return ParseIntInRange(input, 1, math.MaxInt, field, message)
}

// parseFloatField parses a decimal number and applies the given check.
func parseFloatField(input string, checkFn func(float64) error) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, ErrInvalidInput
	}
	if err := checkFn(value); err != nil {
		return 0, err
	}
	return value, nil
}

// parseInt parses a base-10 integer, ignoring surrounding whitespace.
func parseInt(input string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrInvalidInput
	}
	return value, nil
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// Message returns the operator-facing text for an error produced by this
// package, or the error text for anything else.
func Message(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, ErrInvalidInput):
		return InvalidInputMessage
	default:
		return err.Error()
	}
}
