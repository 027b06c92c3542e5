// Package registration derives county codes from vehicle registration strings
// and holds the allow-list of codes the menu accepts.
//
// A registration is conventionally "<digits>-<county>-<digits>", for example
// "221-D-12345". Nothing enforces that shape at write time, so parsing is lenient:
// a string without a second '-' separated segment has an empty county code.
package registration

import (
	"slices"
	"strings"
)

// Separator splits a registration into its segments.
const Separator = "-"

// KnownCodes is the default allow-list of county codes.
var KnownCodes = []string{"C", "D", "W", "WX", "KK"}

// CountyCode returns the upper-cased second segment of registration, or ""
// when there is no second segment.
func CountyCode(registration string) string {
	parts := strings.Split(registration, Separator)
	if len(parts) < 2 {
		return ""
	}
	return strings.ToUpper(parts[1])
}

// Normalize prepares a user-supplied query code for comparison.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validator checks county codes against an allow-list.
type Validator struct {
	codes []string
}

// NewValidator builds a validator for codes. Codes are normalized and
// de-duplicated; an empty list falls back to KnownCodes.
func NewValidator(codes []string) *Validator {
	if len(codes) == 0 {
		codes = KnownCodes
	}
	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		c = Normalize(c)
		if c == "" || slices.Contains(normalized, c) {
			continue
		}
		normalized = append(normalized, c)
	}
	return &Validator{codes: normalized}
}

// IsKnown reports whether code (after normalization) is on the allow-list.
func (v *Validator) IsKnown(code string) bool {
	return slices.Contains(v.codes, Normalize(code))
}

// Codes returns a copy of the allow-list in configured order.
func (v *Validator) Codes() []string {
	return slices.Clone(v.codes)
}
