// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. These errors are used with
// errors.Is() for type-safe error checking. Each error represents a
// distinct validation failure category.
//
// Design: Sentinel errors (not error types) because validation failures
// don't carry additional context beyond the category. Detailed messages
// are provided by wrapping these with fmt.Errorf in the validation functions.

package validate

import (
	"errors"
	"strings"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrInvalidStock   = errors.New("invalid stock")
)

// IsValidation reports whether err is a product validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidProduct) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidStock)
}

// Messages returns the per-field messages inside err, without the category
// prefix: "name can't be blank", "price must be greater than 0". Context
// added by callers is dropped. Returns nil if err holds no field failures.
func Messages(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, c := range u.Unwrap() {
				walk(c)
			}
		case interface{ Unwrap() error }:
			inner := u.Unwrap()
			if inner == ErrInvalidName || inner == ErrInvalidPrice || inner == ErrInvalidStock {
				out = append(out, strings.TrimPrefix(e.Error(), inner.Error()+": "))
				return
			}
			walk(inner)
		}
	}
	walk(err)
	return out
}
