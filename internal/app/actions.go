package app

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/catalog"
	"github.com/zjrosen/carlot/internal/input"
	"github.com/zjrosen/carlot/internal/log"
	"github.com/zjrosen/carlot/internal/registration"
	"github.com/zjrosen/carlot/internal/ui/changes"
	"github.com/zjrosen/carlot/internal/ui/table"
)

// Messages shown when a search or lookup finds nothing.
const (
	msgNoCarWithID     = "No car found with the given ID."
	msgNoCarsMake      = "No cars found with the given make."
	msgNoCarsModel     = "No cars found with the searched model."
	msgNoCarsPriceType = "No cars found at or under that price with the given type."
	msgNoCarsCounty    = "No cars found with the given county code."
	msgUnknownCounty   = "Unknown county code"
	msgCarAdded        = "Car added successfully."
	msgCarDeleted      = "Car deleted."
)

// submit runs the operation of the current form.
func (m Model) submit() (tea.Model, tea.Cmd) {
	v := m.form.values()
	log.Debug(log.CatMenu, "form submitted", "form", m.form.title)

	switch m.form.kind {
	case formAdd:
		return m.submitAdd(v)
	case formUpdateID:
		return m.submitUpdateID(v[0])
	case formUpdate:
		return m.submitUpdate(v)
	case formDelete:
		return m.submitDelete(v[0])
	case formSearchID:
		return m.withID(v[0], func(id int) (tea.Model, tea.Cmd) {
			c, ok := m.catalog.Get(m.ctx, id)
			if !ok {
				return m.showResult("Search by ID", msgNoCarWithID)
			}
			return m.showResult("Search by ID", c.String())
		})
	case formSearchMake:
		return m.showCars("Search by Make", m.catalog.ByMake(m.ctx, input.Text(v[0])), msgNoCarsMake)
	case formSearchModel:
		return m.showCars("Search by Model", m.catalog.ByModel(m.ctx, input.Text(v[0])), msgNoCarsModel)
	case formSearchPriceType:
		maxPrice, _, err := m.parser.Float(v[0])
		if err != nil {
			return m.invalidNumber("max price", v[0])
		}
		cars := m.catalog.ByPriceAndType(m.ctx, maxPrice, input.Text(v[1]))
		return m.showCars("Search by Max Price and Type", cars, msgNoCarsPriceType)
	case formSearchCounty:
		code := registration.Normalize(v[0])
		if !m.codes.IsKnown(code) {
			log.Debug(log.CatMenu, "unknown county code", "code", code)
			m.form.err = fmt.Sprintf("%s. Known codes: %s", msgUnknownCounty, strings.Join(m.codes.Codes(), ", "))
			return m, nil
		}
		return m.showCars("Cars in county "+code, m.catalog.ByCounty(m.ctx, code), msgNoCarsCounty)
	}
	return m, nil
}

func (m Model) submitAdd(v []string) (tea.Model, tea.Cmd) {
	price, priceOK, err := m.parser.Float(v[3])
	if err != nil {
		return m.invalidNumber("price", v[3])
	}
	year, yearOK, err := m.parser.Int(v[5])
	if err != nil {
		return m.invalidNumber("year", v[5])
	}

	stored := m.catalog.Add(m.ctx, *car.New(
		input.Text(v[0]), input.Text(v[1]), input.Text(v[2]), price, input.Text(v[4]), year,
	))

	lines := []string{msgCarAdded, stored.String()}
	if !priceOK && input.Text(v[3]) != "" {
		lines = append(lines, "Price was not a number and was stored as 0.00.")
	}
	if !yearOK && input.Text(v[5]) != "" {
		lines = append(lines, "Year was not a number and was stored as 0.")
	}
	return m.showResult("Add Car", strings.Join(lines, "\n"))
}

func (m Model) submitUpdateID(raw string) (tea.Model, tea.Cmd) {
	return m.withID(raw, func(id int) (tea.Model, tea.Cmd) {
		current, ok := m.catalog.Get(m.ctx, id)
		if !ok {
			return m.showResult("Update Car", msgNoCarWithID)
		}
		m.updating = current
		f := newForm(formUpdate, fmt.Sprintf("Update Car #%d (blank keeps value, %s clears text)", id, input.ClearText),
			[]string{"Make", "Model", "Car Type", "Price", "Registration", "Year"},
			current.Make, current.Model, current.CarType,
			fmt.Sprintf("%.2f", current.Price), current.Registration, fmt.Sprintf("%d", current.Year))
		return m.openForm(f)
	})
}

func (m Model) submitUpdate(v []string) (tea.Model, tea.Cmd) {
	price, err := m.parser.OptionalFloat(v[3])
	if err != nil {
		return m.invalidNumber("price", v[3])
	}
	year, err := m.parser.OptionalInt(v[5])
	if err != nil {
		return m.invalidNumber("year", v[5])
	}

	ch := car.Changes{
		Make:         input.OptionalText(v[0]),
		Model:        input.OptionalText(v[1]),
		CarType:      input.OptionalText(v[2]),
		Price:        price,
		Registration: input.OptionalText(v[4]),
		Year:         year,
	}
	before := m.updating
	if ch.IsEmpty() {
		return m.showResult("Update Car", changes.NoChanges)
	}

	after, err := m.catalog.Update(m.ctx, before.ID, ch)
	if errors.Is(err, catalog.ErrNotFound) {
		return m.showResult("Update Car", msgNoCarWithID)
	} else if err != nil {
		return m.showResult("Update Car", err.Error())
	}
	return m.showResult("Update Car", "Car updated.\n"+after.String()+"\n\n"+changes.Render(before, after))
}

func (m Model) submitDelete(raw string) (tea.Model, tea.Cmd) {
	return m.withID(raw, func(id int) (tea.Model, tea.Cmd) {
		err := m.catalog.Remove(m.ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			return m.showResult("Delete Car", msgNoCarWithID)
		} else if err != nil {
			return m.showResult("Delete Car", err.Error())
		}
		return m.showResult("Delete Car", msgCarDeleted)
	})
}

// withID parses raw as a car id. A lenient parse failure becomes id 0, which never exists.
func (m Model) withID(raw string, fn func(id int) (tea.Model, tea.Cmd)) (tea.Model, tea.Cmd) {
	id, _, err := m.parser.Int(raw)
	if err != nil {
		return m.invalidNumber("car id", raw)
	}
	return fn(id)
}

// invalidNumber keeps the form open with an error. Only reachable in strict mode.
func (m Model) invalidNumber(field, raw string) (tea.Model, tea.Cmd) {
	log.Debug(log.CatMenu, "form rejected", "form", m.form.title, "field", field)
	m.form.err = fmt.Sprintf("Invalid number for %s: %q", field, input.Text(raw))
	return m, nil
}

func (m Model) showCars(title string, cars []car.Car, empty string) (tea.Model, tea.Cmd) {
	if len(cars) == 0 {
		return m.showResult(title, empty)
	}
	return m.showResult(title, table.Cars(cars, m.panelWidth()-2))
}
