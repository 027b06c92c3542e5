// Package input converts raw menu text into typed values.
//
// The lenient default mirrors a forgiving terminal form: a malformed number
// becomes zero and the caller is told via ok=false. Strict mode turns the same
// failure into an error so the menu can refuse the submission.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is wrapped by every parse failure.
var ErrInvalidInput = errors.New("invalid input")

// Text trims surrounding whitespace.
func Text(raw string) string {
	return strings.TrimSpace(raw)
}

// Int parses a base-10 integer.
func Int(raw string) (int, error) {
	s := Text(raw)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidInput, s)
	}
	return n, nil
}

// Float parses a decimal number. NaN and infinities are rejected.
func Float(raw string) (float64, error) {
	s := Text(raw)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return f, nil
}

// Parser applies the configured failure policy to numeric fields.
type Parser struct {
	Strict bool
}

// Int parses raw. In lenient mode a failure yields 0, ok=false and a nil error.
func (p Parser) Int(raw string) (n int, ok bool, err error) {
	n, err = Int(raw)
	if err == nil {
		return n, true, nil
	}
	if p.Strict {
		return 0, false, err
	}
	return 0, false, nil
}

// Float parses raw. In lenient mode a failure yields 0.0, ok=false and a nil error.
func (p Parser) Float(raw string) (f float64, ok bool, err error) {
	f, err = Float(raw)
	if err == nil {
		return f, true, nil
	}
	if p.Strict {
		return 0, false, err
	}
	return 0, false, nil
}

// ClearText is the field value that sets a text field to the empty string.
const ClearText = "-"

// OptionalText returns nil for blank input and a pointer to "" for ClearText,
// otherwise the trimmed text.
func OptionalText(raw string) *string {
	s := Text(raw)
	switch s {
	case "":
		return nil
	case ClearText:
		s = ""
	}
	return &s
}

// OptionalInt returns nil for blank input. Non-blank input goes through p.
func (p Parser) OptionalInt(raw string) (*int, error) {
	if Text(raw) == "" {
		return nil, nil
	}
	n, _, err := p.Int(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// OptionalFloat returns nil for blank input. Non-blank input goes through p.
func (p Parser) OptionalFloat(raw string) (*float64, error) {
	if Text(raw) == "" {
		return nil, nil
	}
	f, _, err := p.Float(raw)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
