// Package changes renders the before/after view shown after an update.
package changes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/ui/styles"
)

// NoChanges is rendered when an update left every field as it was.
const NoChanges = "No changes."

// Field is one changed field of a car.
type Field struct {
	Name   string
	Before string
	After  string
}

// Compare lists the fields that differ between before and after in declaration order.
// ID is never compared.
func Compare(before, after car.Car) []Field {
	pairs := []Field{
		{Name: "make", Before: before.Make, After: after.Make},
		{Name: "model", Before: before.Model, After: after.Model},
		{Name: "carType", Before: before.CarType, After: after.CarType},
		{Name: "price", Before: formatPrice(before.Price), After: formatPrice(after.Price)},
		{Name: "registration", Before: before.Registration, After: after.Registration},
		{Name: "year", Before: strconv.Itoa(before.Year), After: strconv.Itoa(after.Year)},
	}

	changed := make([]Field, 0, len(pairs))
	for _, f := range pairs {
		if f.Before != f.After {
			changed = append(changed, f)
		}
	}
	return changed
}

// Render returns one line per changed field, "name: old → new", with the
// removed characters of old and the inserted characters of new highlighted.
func Render(before, after car.Car) string {
	fields := Compare(before, after)
	if len(fields) == 0 {
		return NoChanges
	}

	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name))
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		oldSegs, newSegs := diffSegments(f.Before, f.After)
		lines = append(lines, fmt.Sprintf("%-*s  %s → %s",
			width+1, f.Name+":", renderSegments(oldSegs), renderSegments(newSegs)))
	}
	return strings.Join(lines, "\n")
}

type segmentType int

const (
	segmentUnchanged segmentType = iota
	segmentAdded
	segmentDeleted
)

type segment struct {
	Type segmentType
	Text string
}

// diffSegments computes a character diff, cleaned up to word-ish boundaries.
func diffSegments(oldText, newText string) (oldSegs, newSegs []segment) {
	if oldText == "" && newText == "" {
		return nil, nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(oldText, newText, false))

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = append(oldSegs, segment{Type: segmentUnchanged, Text: d.Text})
			newSegs = append(newSegs, segment{Type: segmentUnchanged, Text: d.Text})
		case diffmatchpatch.DiffDelete:
			oldSegs = append(oldSegs, segment{Type: segmentDeleted, Text: d.Text})
		case diffmatchpatch.DiffInsert:
			newSegs = append(newSegs, segment{Type: segmentAdded, Text: d.Text})
		}
	}
	return oldSegs, newSegs
}

func renderSegments(segs []segment) string {
	if len(segs) == 0 {
		return styles.HintStyle.Render(`""`)
	}
	var b strings.Builder
	for _, s := range segs {
		switch s.Type {
		case segmentAdded:
			b.WriteString(styles.DiffInsertStyle.Render(s.Text))
		case segmentDeleted:
			b.WriteString(styles.DiffDeleteStyle.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
