package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r, err := New(60, "light")
	require.NoError(t, err)
	require.Equal(t, 60, r.Width())

	out, err := r.Render("# Help\n\nPress **1** to add a car.")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Help")
	require.Contains(t, plain, "Press 1 to add a car.")
}

func TestNew_DefaultStyle(t *testing.T) {
	_, err := New(40, "")
	require.NoError(t, err)
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New(40, "neon")
	require.ErrorContains(t, err, "unknown markdown style")
}
