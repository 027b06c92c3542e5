// Package toast shows a short notification box over the bottom of the screen.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/carlot/internal/ui/styles"
)

// DismissAfter is how long a toast stays up.
const DismissAfter = 3 * time.Second

// Kind selects the border colour and icon.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

// Model holds the toast state. The zero value shows nothing.
type Model struct {
	message string
	kind    Kind
	// seq identifies the toast a DismissMsg belongs to.
	seq int
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}

// Show replaces the current toast and schedules its dismissal.
func (m Model) Show(message string, kind Kind) (Model, tea.Cmd) {
	m.message = message
	m.kind = kind
	m.seq++
	seq := m.seq
	return m, tea.Tick(DismissAfter, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Update handles DismissMsg. A dismissal for an older toast is ignored.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the text of the current toast.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}

	style := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	var icon string
	switch m.kind {
	case KindSuccess:
		style = style.BorderForeground(styles.StatusSuccessColor)
		icon = "✓"
	case KindError:
		style = style.BorderForeground(styles.StatusErrorColor)
		icon = "✗"
	default:
		style = style.BorderForeground(styles.AccentColor)
		icon = "•"
	}
	return style.Render(icon + " " + m.message)
}

// Overlay draws the toast right-aligned over the last lines of bg, which is
// padded to height lines of width columns first.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}

	bgLines := strings.Split(strings.TrimSuffix(bg, "\n"), "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	fgLines := strings.Split(fg, "\n")

	x := max(width-lipgloss.Width(fg)-1, 0)
	y := max(len(bgLines)-len(fgLines)-1, 0)

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		left := ansi.Truncate(bgLines[row], x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ""
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(bgLines[row]) {
			right = ansi.TruncateLeft(bgLines[row], end, "")
		}
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
