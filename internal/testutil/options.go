// Package testutil builds car fixtures for tests.
package testutil

import "github.com/zjrosen/carlot/internal/car"

// CarOption configures a car during builder setup.
type CarOption func(*car.Car)

// defaultCar returns a car with sensible defaults for the given make and model.
func defaultCar(carMake, model string) car.Car {
	return car.Car{
		Make:         carMake,
		Model:        model,
		CarType:      "Sedan",
		Price:        10000,
		Registration: "221-D-1",
		Year:         2020,
	}
}

// CarType sets the body type.
func CarType(t string) CarOption {
	return func(c *car.Car) { c.CarType = t }
}

// Price sets the price.
func Price(p float64) CarOption {
	return func(c *car.Car) { c.Price = p }
}

// Registration sets the registration string.
func Registration(r string) CarOption {
	return func(c *car.Car) { c.Registration = r }
}

// Year sets the model year.
func Year(y int) CarOption {
	return func(c *car.Car) { c.Year = y }
}
