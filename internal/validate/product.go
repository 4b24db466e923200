// product.go validates product attributes before they reach the store.
//
// The same rules are enforced by CHECK constraints in the schema; checking
// here first gives callers a readable error naming every offending field
// instead of a single constraint failure from SQLite.

package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Name length bounds, counted in characters.
const (
	MinNameLength = 2
	MaxNameLength = 255
)

// Name trims surrounding whitespace and checks the length bounds.
func Name(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name can't be blank", ErrInvalidName)
	}
	n := utf8.RuneCountInString(name)
	if n < MinNameLength {
		return "", fmt.Errorf("%w: name is too short (minimum is %d characters)", ErrInvalidName, MinNameLength)
	}
	if n > MaxNameLength {
		return "", fmt.Errorf("%w: name is too long (maximum is %d characters)", ErrInvalidName, MaxNameLength)
	}
	return name, nil
}

// Price requires a strictly positive amount with at most two decimal places.
func Price(p decimal.Decimal) error {
	if !p.IsPositive() {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidPrice)
	}
	if !p.Equal(p.Round(2)) {
		return fmt.Errorf("%w: price must have at most 2 decimal places", ErrInvalidPrice)
	}
	return nil
}

// Stock rejects negative quantities.
func Stock(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: stock must be greater than or equal to 0", ErrInvalidStock)
	}
	return nil
}

// Product validates all attributes at once and joins every failure, so a
// caller sees all problems from a single attempt. The returned name is
// trimmed.
func Product(name string, price decimal.Decimal, stock int) (string, error) {
	var errs []error
	name, err := Name(name)
	if err != nil {
		errs = append(errs, err)
	}
	if err := Price(price); err != nil {
		errs = append(errs, err)
	}
	if err := Stock(stock); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("%w: %w", ErrInvalidProduct, errors.Join(errs...))
	}
	return name, nil
}
