// internal/form/geo/resolver.go

// Package geo keeps the linked city/state/country selection fields mutually
// consistent. The rule set is a pure reducer over one field change plus the
// current values of the other two; Applier adds the echo suppression needed
// when resolver output is fed back through the same change stream.
package geo

import (
	"sync"

	"intake-service/internal/models"
)

// Location carries the current values of the three linked fields.
type Location struct {
	City    string
	State   string
	Country string
}

// Change is one raw field edit.
type Change struct {
	Field string
	Value string
}

// Patch maps field names to the values the resolver forces. Fields absent
// from the patch are untouched.
type Patch map[string]string

// Resolve applies the consistency rules for a single change.
//
//   - city recognized: state and country are forced to the city's parents.
//   - city unrecognized or empty: state and country are left as they are.
//   - state recognized: country is forced; a city whose parent state
//     differs is cleared.
//   - country changed: a state or city belonging to another country is
//     cleared.
//
// Unmapped values never propagate; there is no error path.
func Resolve(change Change, current Location) Patch {
	patch := Patch{}

	switch change.Field {
	case models.FieldCity:
		place, ok := LookupCity(change.Value)
		if !ok {
			return patch
		}
		if current.State != place.State {
			patch[models.FieldState] = place.State
		}
		if current.Country != place.Country {
			patch[models.FieldCountry] = place.Country
		}

	case models.FieldState:
		place, ok := LookupState(change.Value)
		if ok && current.Country != place.Country {
			patch[models.FieldCountry] = place.Country
		}
		if current.City != "" {
			cityPlace, cityKnown := LookupCity(current.City)
			if !cityKnown || normalize(cityPlace.State) != normalize(change.Value) {
				patch[models.FieldCity] = ""
			}
		}

	case models.FieldCountry:
		if current.State != "" {
			statePlace, stateKnown := LookupState(current.State)
			if !stateKnown || normalize(statePlace.Country) != normalize(change.Value) {
				patch[models.FieldState] = ""
			}
		}
		if current.City != "" {
			cityPlace, cityKnown := LookupCity(current.City)
			if !cityKnown || normalize(cityPlace.Country) != normalize(change.Value) {
				patch[models.FieldCity] = ""
			}
		}
	}

	return patch
}

// Applier wraps Resolve with a last-programmatic-write marker so that a
// resolver-issued update flowing back through the change stream is not
// re-interpreted as a fresh user edit.
type Applier struct {
	mu   sync.Mutex
	last map[string]string
}

func NewApplier() *Applier {
	return &Applier{last: make(map[string]string)}
}

// Apply resolves a change unless it exactly matches the most recent
// programmatic write for that field, in which case it is consumed silently.
// The second return value reports whether the change was processed.
func (a *Applier) Apply(change Change, current Location) (Patch, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if value, ok := a.last[change.Field]; ok && value == change.Value {
		delete(a.last, change.Field)
		return Patch{}, false
	}

	patch := Resolve(change, current)
	for field, value := range patch {
		a.last[field] = value
	}
	return patch, true
}
