package repository

import (
	"slices"
	"strings"
	"sync"

	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/log"
	"github.com/zjrosen/carlot/internal/pubsub"
	"github.com/zjrosen/carlot/internal/registration"
)

// Compile-time check.
var _ CarRepository = (*MemoryCarRepository)(nil)

// MemoryCarRepository is an in-memory implementation of CarRepository.
// The slice and the identifier counter are guarded by one mutex so that
// Create is atomic.
type MemoryCarRepository struct {
	mu     sync.RWMutex
	cars   []*car.Car
	lastID int
	events pubsub.Publisher[car.Car]
}

// Option configures a MemoryCarRepository.
type Option func(*MemoryCarRepository)

// WithPublisher publishes a copy of every created, updated and deleted car to p.
func WithPublisher(p pubsub.Publisher[car.Car]) Option {
	return func(r *MemoryCarRepository) {
		r.events = p
	}
}

// NewMemoryCarRepository creates an empty repository.
func NewMemoryCarRepository(opts ...Option) *MemoryCarRepository {
	r := &MemoryCarRepository{
		cars: make([]*car.Car, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create assigns the next identifier to c and appends it.
func (r *MemoryCarRepository) Create(c *car.Car) *car.Car {
	r.mu.Lock()
	r.lastID++
	c.ID = r.lastID
	r.cars = append(r.cars, c)
	snapshot := *c
	r.mu.Unlock()

	log.Debug(log.CatRepo, "car created", "id", snapshot.ID, "make", snapshot.Make, "model", snapshot.Model)
	r.publish(pubsub.CreatedEvent, snapshot)
	return c
}

// FindAll returns every stored car in insertion order.
// The returned slice is a snapshot; the cars are the stored instances.
func (r *MemoryCarRepository) FindAll() []*car.Car {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.cars)
}

// FindOne returns the car with the given id.
func (r *MemoryCarRepository) FindOne(id int) (*car.Car, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.cars[i], true
	}
	return nil, false
}

// FindByMake returns cars whose make equals carMake, ignoring case.
func (r *MemoryCarRepository) FindByMake(carMake string) []*car.Car {
	return r.filter(func(c *car.Car) bool {
		return strings.EqualFold(c.Make, carMake)
	})
}

// FindByModel returns cars whose model equals model, ignoring case.
func (r *MemoryCarRepository) FindByModel(model string) []*car.Car {
	return r.filter(func(c *car.Car) bool {
		return strings.EqualFold(c.Model, model)
	})
}

// FindByPriceAndType returns cars with price <= maxPrice and a matching type.
func (r *MemoryCarRepository) FindByPriceAndType(maxPrice float64, carType string) []*car.Car {
	return r.filter(func(c *car.Car) bool {
		return c.Price <= maxPrice && strings.EqualFold(c.CarType, carType)
	})
}

// FindByCountyCode returns cars whose derived county code equals code.
func (r *MemoryCarRepository) FindByCountyCode(code string) []*car.Car {
	return r.filter(func(c *car.Car) bool {
		return registration.CountyCode(c.Registration) == code
	})
}

// Update applies ch to the stored car in place.
func (r *MemoryCarRepository) Update(id int, ch car.Changes) (*car.Car, bool) {
	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return nil, false
	}
	stored := r.cars[i]
	ch.Apply(stored)
	snapshot := *stored
	r.mu.Unlock()

	log.Debug(log.CatRepo, "car updated", "id", id, "fields", strings.Join(ch.Fields(), ","))
	r.publish(pubsub.UpdatedEvent, snapshot)
	return stored, true
}

// Delete removes the first car with the given id.
func (r *MemoryCarRepository) Delete(id int) bool {
	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	removed := *r.cars[i]
	r.cars = slices.Delete(r.cars, i, i+1)
	r.mu.Unlock()

	log.Debug(log.CatRepo, "car deleted", "id", id)
	r.publish(pubsub.DeletedEvent, removed)
	return true
}

// Len returns the number of stored cars.
func (r *MemoryCarRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.cars)
}

// LastID returns the most recently assigned identifier.
func (r *MemoryCarRepository) LastID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastID
}

// Reset clears all state, including the identifier counter. Useful for test setup.
func (r *MemoryCarRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cars = make([]*car.Car, 0)
	r.lastID = 0
}

// indexOf must be called with r.mu held.
func (r *MemoryCarRepository) indexOf(id int) int {
	return slices.IndexFunc(r.cars, func(c *car.Car) bool {
		return c.ID == id
	})
}

func (r *MemoryCarRepository) filter(match func(*car.Car) bool) []*car.Car {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*car.Car, 0)
	for _, c := range r.cars {
		if match(c) {
			result = append(result, c)
		}
	}
	return result
}

func (r *MemoryCarRepository) publish(eventType pubsub.EventType, c car.Car) {
	if r.events != nil {
		r.events.Publish(eventType, c)
	}
}
