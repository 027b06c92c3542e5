package changes

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/carlot/internal/car"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func corolla() car.Car {
	return car.Car{ID: 1, Make: "Toyota", Model: "Corolla", CarType: "Sedan", Price: 15000, Registration: "221-D-12345", Year: 2021}
}

func TestCompare(t *testing.T) {
	before := corolla()
	after := before
	after.Price = 14500
	after.Year = 2022
	after.ID = 9

	require.Equal(t, []Field{
		{Name: "price", Before: "15000.00", After: "14500.00"},
		{Name: "year", Before: "2021", After: "2022"},
	}, Compare(before, after), "ID is ignored, order follows the struct")
}

func TestCompare_NoChanges(t *testing.T) {
	require.Empty(t, Compare(corolla(), corolla()))
	require.Equal(t, NoChanges, Render(corolla(), corolla()))
}

func TestRender(t *testing.T) {
	before := corolla()
	after := before
	after.Model = "Corolla Cross"
	after.Price = 14500

	require.Equal(t,
		"model:  Corolla → Corolla Cross\n"+
			"price:  15000.00 → 14500.00",
		Render(before, after))
}

func TestRender_EmptyValue(t *testing.T) {
	before := corolla()
	after := before
	after.Registration = ""

	require.Equal(t, `registration:  221-D-12345 → ""`, Render(before, after))
}

func TestDiffSegments(t *testing.T) {
	oldSegs, newSegs := diffSegments("Corolla", "Corolla Cross")
	require.Equal(t, []segment{{Type: segmentUnchanged, Text: "Corolla"}}, oldSegs)
	require.Equal(t, []segment{
		{Type: segmentUnchanged, Text: "Corolla"},
		{Type: segmentAdded, Text: " Cross"},
	}, newSegs)

	oldSegs, newSegs = diffSegments("", "")
	require.Nil(t, oldSegs)
	require.Nil(t, newSegs)

	oldSegs, newSegs = diffSegments("Sedan", "")
	require.Equal(t, []segment{{Type: segmentDeleted, Text: "Sedan"}}, oldSegs)
	require.Empty(t, newSegs)
}
