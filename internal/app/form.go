package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/carlot/internal/keys"
	"github.com/zjrosen/carlot/internal/ui/styles"
)

// formKind identifies what a submitted form does.
type formKind int

const (
	formAdd formKind = iota
	formUpdateID
	formUpdate
	formDelete
	formSearchID
	formSearchMake
	formSearchModel
	formSearchPriceType
	formSearchCounty
)

const fieldCharLimit = 64

type field struct {
	label string
	input textinput.Model
}

// form is a vertical list of labelled text inputs. Enter on the last field submits.
type form struct {
	kind   formKind
	title  string
	fields []field
	focus  int
	err    string
}

// newForm creates a form with one field per label. placeholders may be shorter than labels.
func newForm(kind formKind, title string, labels []string, placeholders ...string) form {
	f := form{kind: kind, title: title}
	for i, label := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = fieldCharLimit
		ti.Width = 32
		ti.PlaceholderStyle = styles.HintStyle
		if i < len(placeholders) {
			ti.Placeholder = placeholders[i]
		}
		f.fields = append(f.fields, field{label: label, input: ti})
	}
	f.setFocus(0)
	return f
}

// setFocus focuses field i and blurs the rest.
func (f *form) setFocus(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	i = max(0, min(i, len(f.fields)-1))
	f.focus = i
	var cmd tea.Cmd
	for j := range f.fields {
		if j == i {
			cmd = f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	return cmd
}

func (f *form) onLastField() bool {
	return f.focus == len(f.fields)-1
}

// values returns the raw text of every field in order.
func (f form) values() []string {
	out := make([]string, len(f.fields))
	for i, fl := range f.fields {
		out[i] = fl.input.Value()
	}
	return out
}

// update handles navigation keys and forwards everything else to the focused input.
// submit is true when enter was pressed on the last field.
func (f form) update(msg tea.Msg) (_ form, submit bool, _ tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Form.Next):
			return f, false, f.setFocus(f.focus + 1)
		case key.Matches(msg, keys.Form.Prev):
			return f, false, f.setFocus(f.focus - 1)
		case key.Matches(msg, keys.Form.Submit):
			if f.onLastField() {
				return f, true, nil
			}
			return f, false, f.setFocus(f.focus + 1)
		}
	}

	if len(f.fields) == 0 {
		return f, false, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, false, cmd
}

func (f form) view(width int) string {
	labelWidth := 0
	for _, fl := range f.fields {
		labelWidth = max(labelWidth, len(fl.label))
	}

	lines := make([]string, 0, len(f.fields)+2)
	for i, fl := range f.fields {
		label := fmt.Sprintf(" %-*s ", labelWidth+1, fl.label+":")
		if i == f.focus {
			label = styles.LabelFocusedStyle.Render(label)
		} else {
			label = styles.LabelStyle.Render(label)
		}
		lines = append(lines, label+fl.input.View())
	}
	if f.err != "" {
		lines = append(lines, "", " "+styles.ErrorStyle.Render(f.err))
	}
	return styles.RenderSection(lines, f.title, "esc cancel", width, true)
}
