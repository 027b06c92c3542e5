package repository

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/zjrosen/carlot/internal/car"
)

var (
	makes = []string{"Toyota", "Ford", "BMW", "Audi", "Opel"}
	types = []string{"Sedan", "Hatchback", "Estate", "Coupe"}
	codes = []string{"C", "D", "W", "WX", "KK"}
)

func drawCar(t *rapid.T) *car.Car {
	reg := rapid.SampledFrom([]string{
		rapid.StringMatching(`[0-9]{2,3}`).Draw(t, "prefix") + "-" +
			rapid.SampledFrom(codes).Draw(t, "code") + "-" +
			rapid.StringMatching(`[0-9]{1,6}`).Draw(t, "suffix"),
		rapid.StringMatching(`[0-9A-Z]{0,10}`).Draw(t, "malformed"),
	}).Draw(t, "registration")

	return car.New(
		randomCase(t, rapid.SampledFrom(makes).Draw(t, "make")),
		rapid.StringMatching(`[A-Za-z0-9]{1,8}`).Draw(t, "model"),
		randomCase(t, rapid.SampledFrom(types).Draw(t, "type")),
		rapid.Float64Range(0, 50000).Draw(t, "price"),
		reg,
		rapid.IntRange(1990, 2026).Draw(t, "year"),
	)
}

func randomCase(t *rapid.T, s string) string {
	if rapid.Bool().Draw(t, "upper") {
		return strings.ToUpper(s)
	}
	return s
}

// TestProperty_IDsAreGaplessAcrossDeletes checks that ids are 1..n in creation
// order no matter which deletes are interleaved.
func TestProperty_IDsAreGaplessAcrossDeletes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		repo := NewMemoryCarRepository()
		created := 0
		live := map[int]bool{}

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if created > 0 && rapid.Bool().Draw(rt, "delete") {
				id := rapid.IntRange(1, created).Draw(rt, "id")
				removed := repo.Delete(id)
				if removed != live[id] {
					rt.Fatalf("Delete(%d) = %v, live = %v", id, removed, live[id])
				}
				delete(live, id)
				continue
			}
			c := repo.Create(drawCar(rt))
			created++
			if c.ID != created {
				rt.Fatalf("expected id %d, got %d", created, c.ID)
			}
			live[c.ID] = true
		}

		for id := 1; id <= created; id++ {
			_, ok := repo.FindOne(id)
			if ok != live[id] {
				rt.Fatalf("FindOne(%d) present=%v, live=%v", id, ok, live[id])
			}
		}

		prev := 0
		for _, c := range repo.FindAll() {
			if c.ID <= prev {
				rt.Fatalf("FindAll not in creation order: %d after %d", c.ID, prev)
			}
			prev = c.ID
		}
	})
}

// TestProperty_PriceAndTypeIsExactSubset checks the conjunctive filter against
// a brute-force oracle and that raising the bound never drops a match.
func TestProperty_PriceAndTypeIsExactSubset(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		repo := NewMemoryCarRepository()
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		for i := 0; i < n; i++ {
			repo.Create(drawCar(rt))
		}

		carType := rapid.SampledFrom(types).Draw(rt, "queryType")
		low := rapid.Float64Range(0, 50000).Draw(rt, "low")
		high := low + rapid.Float64Range(0, 10000).Draw(rt, "delta")

		got := repo.FindByPriceAndType(low, carType)
		var want []int
		for _, c := range repo.FindAll() {
			if c.Price <= low && strings.EqualFold(c.CarType, carType) {
				want = append(want, c.ID)
			}
		}
		if len(got) != len(want) {
			rt.Fatalf("got %d matches, want %d", len(got), len(want))
		}
		for i := range got {
			if got[i].ID != want[i] {
				rt.Fatalf("match %d: got id %d, want %d", i, got[i].ID, want[i])
			}
		}

		wider := map[int]bool{}
		for _, c := range repo.FindByPriceAndType(high, carType) {
			wider[c.ID] = true
		}
		for _, c := range got {
			if !wider[c.ID] {
				rt.Fatalf("raising maxPrice from %v to %v dropped id %d", low, high, c.ID)
			}
		}
	})
}

// TestProperty_MakeMatchIgnoresCase checks that any casing of a stored make
// finds the same cars.
func TestProperty_MakeMatchIgnoresCase(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		repo := NewMemoryCarRepository()
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		for i := 0; i < n; i++ {
			repo.Create(drawCar(rt))
		}

		query := rapid.SampledFrom(makes).Draw(rt, "query")
		lower := repo.FindByMake(strings.ToLower(query))
		upper := repo.FindByMake(strings.ToUpper(query))
		if len(lower) != len(upper) {
			rt.Fatalf("case changed result size: %d vs %d", len(lower), len(upper))
		}
		for _, c := range lower {
			if !strings.EqualFold(c.Make, query) {
				rt.Fatalf("unexpected make %q for query %q", c.Make, query)
			}
		}
		if len(query) > 1 && len(repo.FindByMake(query[:len(query)-1])) != 0 {
			rt.Fatalf("prefix %q matched", query[:len(query)-1])
		}
	})
}
