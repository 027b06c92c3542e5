// Package seed loads car fixtures from YAML.
//
//	cars:
//	  - make: Toyota
//	    model: Corolla
//	    type: Sedan
//	    price: 15000
//	    registration: 221-D-12345
//	    year: 2021
//
// Any id in the file is ignored; the repository assigns identifiers.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/log"
)

// File is the top-level fixture document.
type File struct {
	Cars []car.Car `yaml:"cars"`
}

// Load decodes a fixture document. An empty document yields no cars.
func Load(r io.Reader) ([]car.Car, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []car.Car{}, nil
		}
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	cars := make([]car.Car, 0, len(f.Cars))
	for _, c := range f.Cars {
		c.ID = 0
		cars = append(cars, c)
	}
	return cars, nil
}

// LoadFile opens path and decodes it with Load.
func LoadFile(path string) ([]car.Car, error) {
	f, err := os.Open(path) //nolint:gosec // G304: user-supplied fixture path
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cars, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info(log.CatSeed, "loaded seed file", "path", path, "cars", len(cars))
	return cars, nil
}

// Sample returns the built-in two-car lot used by the demo command.
func Sample() []car.Car {
	return []car.Car{
		*car.New("Toyota", "Corolla", "Sedan", 15000, "221-D-12345", 2021),
		*car.New("Ford", "Focus", "Hatchback", 16000, "219-W-67890", 2019),
	}
}
