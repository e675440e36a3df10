package generator

import (
	"fmt"

	"github.com/mcncl/modelgen/internal/errors"
	"github.com/mcncl/modelgen/internal/models"
)

// CollisionPolicy decides what happens when two types are emitted under the
// same name.
type CollisionPolicy int

const (
	// CollisionOverwrite replaces the earlier unit with the later one.
	CollisionOverwrite CollisionPolicy = iota
	// CollisionError rejects the second unit with ErrTypeNameCollision.
	CollisionError
)

// UnitSet collects rendered units keyed by type name. A unit keeps the
// position at which its name was first emitted, even after being overwritten.
type UnitSet struct {
	policy     CollisionPolicy
	order      []string
	units      map[string]models.Unit
	collisions []string
}

// NewUnitSet creates an empty UnitSet with the given collision policy.
func NewUnitSet(policy CollisionPolicy) *UnitSet {
	return &UnitSet{
		policy: policy,
		units:  make(map[string]models.Unit),
	}
}

// Put adds u, or replaces the unit already stored under u.TypeName.
func (s *UnitSet) Put(u models.Unit) error {
	if _, exists := s.units[u.TypeName]; exists {
		if s.policy == CollisionError {
			return fmt.Errorf("%w: %s is emitted more than once", errors.ErrTypeNameCollision, u.TypeName)
		}
		s.collisions = append(s.collisions, u.TypeName)
		s.units[u.TypeName] = u
		return nil
	}
	s.order = append(s.order, u.TypeName)
	s.units[u.TypeName] = u
	return nil
}

// Get returns the unit stored under typeName.
func (s *UnitSet) Get(typeName string) (models.Unit, bool) {
	u, ok := s.units[typeName]
	return u, ok
}

// Units returns the stored units in first-emission order.
func (s *UnitSet) Units() []models.Unit {
	out := make([]models.Unit, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.units[name])
	}
	return out
}

// Collisions lists every type name that was overwritten, once per overwrite.
func (s *UnitSet) Collisions() []string {
	return s.collisions
}

// Len returns the number of distinct units.
func (s *UnitSet) Len() int {
	return len(s.order)
}
