package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/carlot/internal/car"
)

const fixture = `cars:
  - make: Toyota
    model: Corolla
    type: Sedan
    price: 15000
    registration: 221-D-12345
    year: 2021
  - id: 40
    make: Ford
    model: Focus
    type: Hatchback
    price: 16000.5
    registration: 219-W-67890
    year: 2019
`

func TestLoad(t *testing.T) {
	cars, err := Load(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Equal(t, []car.Car{
		{Make: "Toyota", Model: "Corolla", CarType: "Sedan", Price: 15000, Registration: "221-D-12345", Year: 2021},
		{Make: "Ford", Model: "Focus", CarType: "Hatchback", Price: 16000.5, Registration: "219-W-67890", Year: 2019},
	}, cars, "ids in the file are dropped")
}

func TestLoad_Empty(t *testing.T) {
	cars, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, cars)

	cars, err = Load(strings.NewReader("cars: []\n"))
	require.NoError(t, err)
	require.Empty(t, cars)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field": "cars:\n  - make: Toyota\n    colour: red\n",
		"bad price":     "cars:\n  - make: Toyota\n    price: cheap\n",
		"not yaml":      "cars: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			require.ErrorContains(t, err, "decoding fixture")
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	cars, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cars, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "opening seed file")
}

func TestSample(t *testing.T) {
	cars := Sample()
	require.Len(t, cars, 2)
	require.Equal(t, "Toyota", cars[0].Make)
	require.Equal(t, "219-W-67890", cars[1].Registration)
	for _, c := range cars {
		require.Zero(t, c.ID)
	}
}
