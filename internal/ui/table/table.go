// Package table renders car listings as aligned text columns.
package table

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/ui/styles"
)

const (
	columnGap   = "  "
	minColWidth = 4
	ellipsis    = "…"
)

type column struct {
	title  string
	right  bool // numbers are right aligned
	shrink bool // free-text columns give up width first
	cell   func(c car.Car) string
}

var columns = []column{
	{title: "ID", right: true, cell: func(c car.Car) string { return strconv.Itoa(c.ID) }},
	{title: "Make", shrink: true, cell: func(c car.Car) string { return c.Make }},
	{title: "Model", shrink: true, cell: func(c car.Car) string { return c.Model }},
	{title: "Type", shrink: true, cell: func(c car.Car) string { return c.CarType }},
	{title: "Price", right: true, cell: func(c car.Car) string { return strconv.FormatFloat(c.Price, 'f', 2, 64) }},
	{title: "Registration", shrink: true, cell: func(c car.Car) string { return c.Registration }},
	{title: "Year", right: true, cell: func(c car.Car) string { return strconv.Itoa(c.Year) }},
}

// Cars renders a header row followed by one row per car, in the given order.
// When maxWidth > 0, free-text columns are truncated so each line fits.
// An empty slice renders only the header.
func Cars(cars []car.Car, maxWidth int) string {
	cells := make([][]string, len(cars))
	for i, c := range cars {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = col.cell(c)
		}
		cells[i] = row
	}

	widths := naturalWidths(cells)
	if maxWidth > 0 {
		fit(widths, maxWidth)
	}

	lines := make([]string, 0, len(cars)+1)
	header := make([]string, len(columns))
	for j, col := range columns {
		header[j] = pad(col.title, widths[j], col.right)
	}
	lines = append(lines, styles.TableHeaderStyle.Render(strings.Join(header, columnGap)))

	for _, row := range cells {
		out := make([]string, len(columns))
		for j, col := range columns {
			out[j] = pad(row[j], widths[j], col.right)
		}
		lines = append(lines, styles.TableCellStyle.Render(strings.Join(out, columnGap)))
	}

	if maxWidth > 0 {
		// Numeric columns never shrink, so a very narrow terminal still needs a hard cut.
		for i, l := range lines {
			lines[i] = ansi.Truncate(l, maxWidth, ellipsis)
		}
	}
	return strings.Join(lines, "\n")
}

func naturalWidths(cells [][]string) []int {
	widths := make([]int, len(columns))
	for j, col := range columns {
		widths[j] = runewidth.StringWidth(col.title)
	}
	for _, row := range cells {
		for j, cell := range row {
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// fit narrows the widest shrinkable column one cell at a time until the row fits.
func fit(widths []int, maxWidth int) {
	total := len(columnGap) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}

	for total > maxWidth {
		widest := -1
		for j, col := range columns {
			if !col.shrink || widths[j] <= minColWidth {
				continue
			}
			if widest < 0 || widths[j] > widths[widest] {
				widest = j
			}
		}
		if widest < 0 {
			return
		}
		widths[widest]--
		total--
	}
}

func pad(s string, width int, right bool) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, ellipsis)
	}
	if right {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}
