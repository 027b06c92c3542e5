package testutil

import (
	"testing"

	"github.com/zjrosen/carlot/internal/car"
)

// Store is the subset of the repository the builder needs.
type Store interface {
	Create(c *car.Car) *car.Car
}

// Builder accumulates cars and creates them in declaration order.
type Builder struct {
	t    *testing.T
	cars []car.Car
}

// NewBuilder creates an empty builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithCar adds a car with optional configuration.
func (b *Builder) WithCar(carMake, model string, opts ...CarOption) *Builder {
	c := defaultCar(carMake, model)
	for _, opt := range opts {
		opt(&c)
	}
	b.cars = append(b.cars, c)
	return b
}

// Cars returns copies of the accumulated cars, all with ID 0.
func (b *Builder) Cars() []car.Car {
	out := make([]car.Car, len(b.cars))
	copy(out, b.cars)
	return out
}

// Build creates every accumulated car in s and returns the stored instances.
func (b *Builder) Build(s Store) []*car.Car {
	b.t.Helper()
	stored := make([]*car.Car, 0, len(b.cars))
	for _, c := range b.cars {
		c := c
		stored = append(stored, s.Create(&c))
	}
	return stored
}
