package app

import (
	"fmt"

	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/carlot/internal/ui/styles"
)

// action is what selecting a menu item does.
type action int

const (
	actionAdd action = iota
	actionList
	actionSearch
	actionUpdate
	actionDelete
	actionHelp
	actionExit

	actionSearchID
	actionSearchMake
	actionSearchModel
	actionSearchPriceType
	actionSearchCounty
	actionBack
)

type menuItem struct {
	shortcut string
	label    string
	action   action
}

var mainMenu = []menuItem{
	{shortcut: "1", label: "Add Car", action: actionAdd},
	{shortcut: "2", label: "List All Cars", action: actionList},
	{shortcut: "3", label: "Search Cars", action: actionSearch},
	{shortcut: "4", label: "Update Car", action: actionUpdate},
	{shortcut: "5", label: "Delete Car", action: actionDelete},
	{shortcut: "6", label: "Help", action: actionHelp},
	{shortcut: "0", label: "Exit", action: actionExit},
}

var searchMenu = []menuItem{
	{shortcut: "1", label: "Search by ID", action: actionSearchID},
	{shortcut: "2", label: "Search by Make", action: actionSearchMake},
	{shortcut: "3", label: "Search by Model", action: actionSearchModel},
	{shortcut: "4", label: "Search by Max Price and Type", action: actionSearchPriceType},
	{shortcut: "5", label: "Search by County Code", action: actionSearchCounty},
	{shortcut: "0", label: "Back", action: actionBack},
}

// itemByShortcut returns the item whose shortcut is s.
func itemByShortcut(items []menuItem, s string) (menuItem, bool) {
	for _, it := range items {
		if it.shortcut == s {
			return it, true
		}
	}
	return menuItem{}, false
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// menuZoneID names the click zone of item i of the menu identified by prefix.
func menuZoneID(prefix string, i int) string {
	return fmt.Sprintf("%s-item-%d", prefix, i)
}

// renderMenu draws items with the cursor row highlighted. Each row is a click zone of zones.
func renderMenu(zones *zone.Manager, prefix, title string, items []menuItem, cursor, width int) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		shortcut := styles.ShortcutStyle.Render(fmt.Sprintf("%s.", it.shortcut))
		var line string
		if i == cursor {
			line = styles.SelectionIndicatorStyle.Render(">") + " " + shortcut + " " + styles.MenuItemSelectedStyle.Render(it.label)
		} else {
			line = "  " + shortcut + " " + styles.MenuItemStyle.Render(it.label)
		}
		lines = append(lines, zones.Mark(menuZoneID(prefix, i), line))
	}
	return styles.RenderSection(lines, title, "", width, true)
}
