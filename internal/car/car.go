// Package car defines the vehicle record held by the repository.
package car

import "fmt"

// Car is one vehicle listing.
// ID is zero until the car is stored; the repository assigns it.
type Car struct {
	ID           int     `yaml:"id,omitempty"`
	Make         string  `yaml:"make"`
	Model        string  `yaml:"model"`
	CarType      string  `yaml:"type"`
	Price        float64 `yaml:"price"`
	Registration string  `yaml:"registration"`
	Year         int     `yaml:"year"`
}

// New returns an unsaved car (ID 0).
func New(carMake, model, carType string, price float64, registration string, year int) *Car {
	return &Car{
		Make:         carMake,
		Model:        model,
		CarType:      carType,
		Price:        price,
		Registration: registration,
		Year:         year,
	}
}

// String renders every field in declaration order.
func (c Car) String() string {
	return fmt.Sprintf("Car(id=%d, make=%s, model=%s, carType=%s, price=%.2f, registration=%s, year=%d)",
		c.ID, c.Make, c.Model, c.CarType, c.Price, c.Registration, c.Year)
}

// Changes is a field delta for an update. Nil fields are left unchanged.
type Changes struct {
	Make         *string
	Model        *string
	CarType      *string
	Price        *float64
	Registration *string
	Year         *int
}

// IsEmpty reports whether the delta changes nothing.
func (ch Changes) IsEmpty() bool {
	return ch.Make == nil && ch.Model == nil && ch.CarType == nil &&
		ch.Price == nil && ch.Registration == nil && ch.Year == nil
}

// Apply writes the non-nil fields onto c. The ID is never touched.
func (ch Changes) Apply(c *Car) {
	if ch.Make != nil {
		c.Make = *ch.Make
	}
	if ch.Model != nil {
		c.Model = *ch.Model
	}
	if ch.CarType != nil {
		c.CarType = *ch.CarType
	}
	if ch.Price != nil {
		c.Price = *ch.Price
	}
	if ch.Registration != nil {
		c.Registration = *ch.Registration
	}
	if ch.Year != nil {
		c.Year = *ch.Year
	}
}

// Fields lists the names of the fields the delta sets, in declaration order.
func (ch Changes) Fields() []string {
	var fields []string
	if ch.Make != nil {
		fields = append(fields, "make")
	}
	if ch.Model != nil {
		fields = append(fields, "model")
	}
	if ch.CarType != nil {
		fields = append(fields, "carType")
	}
	if ch.Price != nil {
		fields = append(fields, "price")
	}
	if ch.Registration != nil {
		fields = append(fields, "registration")
	}
	if ch.Year != nil {
		fields = append(fields, "year")
	}
	return fields
}

// Ptr returns a pointer to v. Handy when building Changes literals.
func Ptr[T any](v T) *T {
	return &v
}
