// Package catalog holds the static exercise catalog used by the catalog fitness plan source.
// A catalog is loaded once at startup and never mutated, so it is safe for concurrent reads.
package catalog

import (
	"strings"

	"github.com/pageza/fitbuddy/backend/internal/types"
)

// Catalog is an immutable list of exercise records
type Catalog struct {
	exercises []types.Exercise
}

// New copies exercises into a Catalog
func New(exercises []types.Exercise) *Catalog {
	cp := make([]types.Exercise, len(exercises))
	copy(cp, exercises)
	return &Catalog{exercises: cp}
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// Match returns the records whose equipment contains equipment, ignoring case.
// The returned slice is owned by the caller.
func (c *Catalog) Match(equipment string) []types.Exercise {
	needle := strings.ToLower(equipment)
	matches := make([]types.Exercise, 0)
	for _, ex := range c.exercises {
		if strings.Contains(strings.ToLower(ex.Equipment), needle) {
			matches = append(matches, ex)
		}
	}
	return matches
}
