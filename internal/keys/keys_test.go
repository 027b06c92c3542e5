package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestKeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{name: "menu up", binding: Menu.Up, expected: []string{"k", "up"}},
		{name: "menu down", binding: Menu.Down, expected: []string{"j", "down"}},
		{name: "menu quit", binding: Menu.Quit, expected: []string{"q", "ctrl+c"}},
		{name: "form quit needs ctrl", binding: Form.Quit, expected: []string{"ctrl+c"}},
		{name: "form next", binding: Form.Next, expected: []string{"tab", "down"}},
		{name: "result back", binding: Result.Back, expected: []string{"esc", "enter"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestFormKeysLeaveLettersForTyping(t *testing.T) {
	letters := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyRunes, Runes: []rune{'j'}},
		{Type: tea.KeyRunes, Runes: []rune{'k'}},
		{Type: tea.KeyRunes, Runes: []rune{'1'}},
	}
	for _, msg := range letters {
		require.False(t, key.Matches(msg, Form.Next, Form.Prev, Form.Submit, Form.Back, Form.Quit), msg.String())
	}
}

func TestHelpTextPresent(t *testing.T) {
	var all []key.Binding
	for _, group := range Menu.FullHelp() {
		all = append(all, group...)
	}
	for _, group := range Form.FullHelp() {
		all = append(all, group...)
	}
	all = append(all, Result.ShortHelp()...)

	for _, b := range all {
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
}
