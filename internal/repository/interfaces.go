// Package repository holds the car collection and its query and mutation
// operations.
//
// Every operation is total: absence is reported as false or an empty slice,
// never as an error.
package repository

import "github.com/zjrosen/carlot/internal/car"

// CarRepository provides ordered access to stored cars.
// Implementations must be thread-safe.
type CarRepository interface {
	// Create assigns the next identifier to c and appends it.
	// Any ID already set on c is overwritten. Returns the stored instance.
	Create(c *car.Car) *car.Car

	// FindAll returns every stored car in insertion order.
	FindAll() []*car.Car

	// FindOne returns the car with the given id.
	FindOne(id int) (*car.Car, bool)

	// FindByMake returns cars whose make equals carMake, ignoring case.
	FindByMake(carMake string) []*car.Car

	// FindByModel returns cars whose model equals model, ignoring case.
	FindByModel(model string) []*car.Car

	// FindByPriceAndType returns cars priced at or below maxPrice whose type
	// equals carType, ignoring case.
	FindByPriceAndType(maxPrice float64, carType string) []*car.Car

	// FindByCountyCode returns cars whose registration county code equals code.
	// The code is compared verbatim against the upper-cased derived code; callers
	// normalize and validate it first.
	FindByCountyCode(code string) []*car.Car

	// Update applies ch to the stored car with the given id.
	Update(id int, ch car.Changes) (*car.Car, bool)

	// Delete removes the car with the given id. Reports whether a car was removed.
	Delete(id int) bool

	// Len returns the number of stored cars.
	Len() int

	// LastID returns the most recently assigned identifier, 0 if none.
	LastID() int
}
