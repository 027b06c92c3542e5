// Package app contains the interactive car menu.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/catalog"
	"github.com/zjrosen/carlot/internal/input"
	"github.com/zjrosen/carlot/internal/keys"
	"github.com/zjrosen/carlot/internal/log"
	"github.com/zjrosen/carlot/internal/pubsub"
	"github.com/zjrosen/carlot/internal/registration"
	"github.com/zjrosen/carlot/internal/ui/markdown"
	"github.com/zjrosen/carlot/internal/ui/styles"
	"github.com/zjrosen/carlot/internal/ui/toast"
)

// ExitMessage is the last thing the menu prints.
const ExitMessage = "Exiting App"

const (
	defaultWidth = 80
	minWidth     = 40
	maxWidth     = 100
)

type screen int

const (
	screenMenu screen = iota
	screenSearch
	screenForm
	screenResult
	screenHelp
)

// Config carries the collaborators and settings of the menu.
type Config struct {
	Catalog *catalog.Service
	Codes   *registration.Validator
	Parser  input.Parser

	// CarEvents, when set, shows a toast per repository change ("car #3 created").
	CarEvents *pubsub.Broker[car.Car]
	// ShowLogs shows the latest log line under the menu. Requires an installed logger.
	ShowLogs bool

	// ConfigChanges signals that the config file was saved. ReloadCodes is
	// then called and the county code allow-list replaced with its result.
	ConfigChanges <-chan struct{}
	ReloadCodes   func() ([]string, error)

	ShowHelp      bool
	MarkdownStyle string
}

type result struct {
	title string
	body  string
}

// Model is the root menu state.
type Model struct {
	ctx     context.Context
	catalog *catalog.Service
	codes   *registration.Validator
	parser  input.Parser

	screen       screen
	menuCursor   int
	searchCursor int
	form         form
	result       result

	// Update is a two step form: id first, then the fields.
	updating car.Car

	status  string
	toast   toast.Model
	logLine string
	exiting bool

	showHelp      bool
	help          help.Model
	markdownStyle string
	helpView      string

	width  int
	height int

	// zones maps mouse clicks to menu rows.
	zones *zone.Manager

	carEvents *pubsub.ContinuousListener[car.Car]
	logs      *log.Listener

	configChanges <-chan struct{}
	reloadCodes   func() ([]string, error)
}

// configChangedMsg is sent when the watched config file changes.
type configChangedMsg struct{}

// New creates the menu. Listeners live as long as ctx.
func New(ctx context.Context, cfg Config) Model {
	codes := cfg.Codes
	if codes == nil {
		codes = registration.NewValidator(nil)
	}

	m := Model{
		ctx:           ctx,
		catalog:       cfg.Catalog,
		codes:         codes,
		parser:        cfg.Parser,
		showHelp:      cfg.ShowHelp,
		help:          help.New(),
		markdownStyle: cfg.MarkdownStyle,
		zones:         zone.New(),
	}
	if cfg.CarEvents != nil {
		m.carEvents = pubsub.NewContinuousListener(ctx, cfg.CarEvents)
	}
	if cfg.ShowLogs {
		m.logs = log.NewListener(ctx)
	}
	if cfg.ConfigChanges != nil && cfg.ReloadCodes != nil {
		m.configChanges = cfg.ConfigChanges
		m.reloadCodes = cfg.ReloadCodes
	}
	return m
}

// Init starts the event listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.carEvents.Listen(), m.logs.Listen()}
	if m.configChanges != nil {
		cmds = append(cmds, m.waitForConfigChange())
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForConfigChange() tea.Cmd {
	ctx, ch := m.ctx, m.configChanges
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return configChangedMsg{}
		}
	}
}

// reloadCountyCodes swaps the allow-list. A failed reload keeps the old one.
func (m Model) reloadCountyCodes() (Model, tea.Cmd) {
	var cmd tea.Cmd
	codes, err := m.reloadCodes()
	if err != nil {
		log.ErrorErr(log.CatConfig, "reloading county codes", err)
		m.toast, cmd = m.toast.Show("Config reload failed: "+err.Error(), toast.KindError)
		return m, cmd
	}
	m.codes = registration.NewValidator(codes)
	m.toast, cmd = m.toast.Show("County codes reloaded: "+strings.Join(m.codes.Codes(), ", "), toast.KindInfo)
	log.Info(log.CatConfig, "county codes reloaded", "codes", len(codes))
	return m, cmd
}

// Exiting reports whether the user chose to exit.
func (m Model) Exiting() bool {
	return m.exiting
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen == screenHelp {
			m.helpView = m.renderHelp()
		}
		return m, nil

	case pubsub.Event[car.Car]:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(fmt.Sprintf("car #%d %s", msg.Payload.ID, msg.Type), toast.KindSuccess)
		return m, tea.Batch(cmd, m.carEvents.Listen())

	case toast.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil

	case pubsub.Event[string]:
		m.logLine = msg.Payload
		return m, m.logs.Listen()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case configChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.reloadCountyCodes()
		return m, tea.Batch(cmd, m.waitForConfigChange())

	case tea.KeyMsg:
		switch m.screen {
		case screenMenu, screenSearch:
			return m.updateMenu(msg)
		case screenForm:
			return m.updateForm(msg)
		case screenResult, screenHelp:
			return m.updateResult(msg)
		}
	}

	if m.screen == screenForm {
		// Cursor blink and other textinput messages.
		var cmd tea.Cmd
		m.form, _, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items, cursor := mainMenu, &m.menuCursor
	if m.screen == screenSearch {
		items, cursor = searchMenu, &m.searchCursor
	}

	switch {
	case key.Matches(msg, keys.Menu.Up):
		*cursor = max(*cursor-1, 0)
		return m, nil
	case key.Matches(msg, keys.Menu.Down):
		*cursor = min(*cursor+1, len(items)-1)
		return m, nil
	case key.Matches(msg, keys.Menu.Select):
		return m.selectItem(items[*cursor])
	case key.Matches(msg, keys.Menu.Back):
		m.screen = screenMenu
		return m, nil
	case key.Matches(msg, keys.Menu.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Menu.Quit):
		return m.exit()
	}

	if s := msg.String(); isDigit(s) {
		if it, ok := itemByShortcut(items, s); ok {
			return m.selectItem(it)
		}
		if m.screen == screenSearch {
			m.status = "Invalid option."
		} else {
			m.status = "Invalid Option"
		}
	}
	return m, nil
}

// updateMouse selects a menu row on left click.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	items, prefix := mainMenu, "main"
	switch m.screen {
	case screenMenu:
	case screenSearch:
		items, prefix = searchMenu, "search"
	default:
		return m, nil
	}

	for i, it := range items {
		if z := m.zones.Get(menuZoneID(prefix, i)); z != nil && z.InBounds(msg) {
			if m.screen == screenSearch {
				m.searchCursor = i
			} else {
				m.menuCursor = i
			}
			return m.selectItem(it)
		}
	}
	return m, nil
}

func (m Model) selectItem(it menuItem) (tea.Model, tea.Cmd) {
	log.Debug(log.CatMenu, "menu selection", "item", it.label)
	m.status = ""

	switch it.action {
	case actionAdd:
		return m.openForm(newForm(formAdd, "Add Car",
			[]string{"Make", "Model", "Car Type", "Price", "Registration", "Year"},
			"Toyota", "Corolla", "coupe/sedan/hatchback/etc", "15000", "221-D-12345", "2021"))
	case actionList:
		return m.showCars("All Cars", m.catalog.List(m.ctx), "No cars stored.")
	case actionSearch:
		m.screen = screenSearch
		m.searchCursor = 0
		return m, nil
	case actionUpdate:
		return m.openForm(newForm(formUpdateID, "Update Car", []string{"Car ID"}))
	case actionDelete:
		return m.openForm(newForm(formDelete, "Delete Car", []string{"Car ID"}))
	case actionHelp:
		m.screen = screenHelp
		m.helpView = m.renderHelp()
		return m, nil
	case actionExit:
		return m.exit()
	case actionSearchID:
		return m.openForm(newForm(formSearchID, "Search by ID", []string{"Car ID"}))
	case actionSearchMake:
		return m.openForm(newForm(formSearchMake, "Search by Make", []string{"Make"}))
	case actionSearchModel:
		return m.openForm(newForm(formSearchModel, "Search by Model", []string{"Model"}))
	case actionSearchPriceType:
		return m.openForm(newForm(formSearchPriceType, "Search by Max Price and Type",
			[]string{"Max Price", "Car Type"}))
	case actionSearchCounty:
		return m.openForm(newForm(formSearchCounty, "Search by County Code", []string{"County Code"},
			strings.Join(m.codes.Codes(), ", ")))
	case actionBack:
		m.screen = screenMenu
		return m, nil
	}
	return m, nil
}

func (m Model) openForm(f form) (tea.Model, tea.Cmd) {
	m.form = f
	m.screen = screenForm
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Quit):
		return m.exit()
	case key.Matches(msg, keys.Form.Back):
		m.screen = screenMenu
		return m, nil
	}

	var (
		submit bool
		cmd    tea.Cmd
	)
	m.form, submit, cmd = m.form.update(msg)
	if submit {
		return m.submit()
	}
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Result.Back):
		m.screen = screenMenu
	case key.Matches(msg, keys.Result.Quit):
		return m.exit()
	}
	return m, nil
}

func (m Model) exit() (tea.Model, tea.Cmd) {
	log.Info(log.CatMenu, "exiting")
	m.exiting = true
	return m, tea.Quit
}

func (m Model) showResult(title, body string) (tea.Model, tea.Cmd) {
	m.result = result{title: title, body: body}
	m.screen = screenResult
	return m, nil
}

func (m Model) panelWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return max(minWidth, min(m.width, maxWidth))
}

func (m Model) renderHelp() string {
	width := m.panelWidth() - 2
	r, err := markdown.New(width, m.markdownStyle)
	if err != nil {
		log.ErrorErr(log.CatMenu, "help renderer", err)
		return wordwrap.String(helpMarkdown, width)
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		log.ErrorErr(log.CatMenu, "help render", err)
		return wordwrap.String(helpMarkdown, width)
	}
	return strings.TrimRight(out, "\n")
}

// View renders the current screen.
func (m Model) View() string {
	if m.exiting {
		return ExitMessage + "\n"
	}

	width := m.panelWidth()
	var b strings.Builder

	switch m.screen {
	case screenMenu:
		b.WriteString(renderMenu(m.zones, "main", "Car Menu", mainMenu, m.menuCursor, width))
	case screenSearch:
		b.WriteString(renderMenu(m.zones, "search", "Search Options", searchMenu, m.searchCursor, width))
	case screenForm:
		b.WriteString(m.form.view(width))
	case screenResult:
		body := wordwrap.String(m.result.body, width-2)
		b.WriteString(styles.RenderSection(strings.Split(body, "\n"), m.result.title, "esc back", width, false))
	case screenHelp:
		b.WriteString(m.helpView)
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(styles.StatusBarStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString(m.help.View(m.keyMap()))
		b.WriteString("\n")
	}
	if m.logLine != "" {
		b.WriteString(styles.HintStyle.Render(ansi.Truncate(m.logLine, width, "…")))
		b.WriteString("\n")
	}
	out := m.zones.Scan(b.String())
	if m.height > 0 {
		return m.toast.Overlay(out, m.width, m.height)
	}
	if m.toast.Visible() {
		out += m.toast.View() + "\n"
	}
	return out
}

func (m Model) keyMap() help.KeyMap {
	switch m.screen {
	case screenForm:
		return keys.Form
	case screenResult, screenHelp:
		return keys.Result
	default:
		return keys.Menu
	}
}
