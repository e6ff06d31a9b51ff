package schema

import "github.com/google/uuid"

// Infection carries the health state the allocator cares about: the
// outcome tag assigned by the health-index generator.
type Infection struct {
	Tag SymptomTag `json:"tag"`
}

// Person is the slice of the population model this subsystem needs:
// identity, current location and infection state. The full agent lives
// in the population model.
type Person struct {
	ID        string     `json:"id"`
	Location  Location   `json:"location"`
	Infection *Infection `json:"infection"`
}

// NewPerson - a person at a location with no infection
func NewPerson(location Location) *Person {
	return &Person{
		ID:       uuid.New().String(),
		Location: location,
	}
}

// NewInfectedPerson - a person at a location carrying an outcome tag
func NewInfectedPerson(location Location, tag SymptomTag) *Person {
	p := NewPerson(location)
	p.Infection = &Infection{Tag: tag}
	return p
}
