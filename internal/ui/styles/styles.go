// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#BBBBBB"} // IDs, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	AccentColor        = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"} // Focus, cursor, active elements

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}

	// Update diff
	DiffInsertColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffDeleteColor = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// Selection indicator style (">" prefix in the menus)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	MenuItemStyle           = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	MenuItemSelectedStyle   = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)
	ShortcutStyle           = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	LabelStyle        = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	LabelFocusedStyle = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)
	HintStyle         = lipgloss.NewStyle().Foreground(TextMutedColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(TextSecondaryColor)
	TableCellStyle   = lipgloss.NewStyle().Foreground(TextPrimaryColor)

	DiffInsertStyle = lipgloss.NewStyle().Foreground(DiffInsertColor).Bold(true)
	DiffDeleteStyle = lipgloss.NewStyle().Foreground(DiffDeleteColor).Strikethrough(true)

	// Status bar (repository events, log footer)
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)
)
