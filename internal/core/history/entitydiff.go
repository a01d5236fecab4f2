package history

import "github.com/bethropolis/quill/internal/entity"

// EntityDelta holds the entities that exist only before (Previous) and only
// after (Next) a change. Entities are compared by value, ignoring order.
type EntityDelta struct {
	Previous []entity.Entity `json:"previous,omitempty"`
	Next     []entity.Entity `json:"next,omitempty"`
}

// DiffEntities computes the delta from previous to next.
func DiffEntities(previous, next []entity.Entity) EntityDelta {
	return EntityDelta{
		Previous: without(previous, next),
		Next:     without(next, previous),
	}
}

// IsEmpty reports whether d changes nothing.
func (d EntityDelta) IsEmpty() bool {
	return len(d.Previous) == 0 && len(d.Next) == 0
}

// ReconstructPrevious reverts d on current.
func (d EntityDelta) ReconstructPrevious(current []entity.Entity) []entity.Entity {
	return rebuild(without(current, d.Next), d.Previous)
}

// ReconstructNext replays d on current.
func (d EntityDelta) ReconstructNext(current []entity.Entity) []entity.Entity {
	return rebuild(without(current, d.Previous), d.Next)
}

func rebuild(kept, added []entity.Entity) []entity.Entity {
	out := append(kept, added...)
	if len(out) == 0 {
		return nil
	}
	return entity.Sort(out)
}

// without returns the entities of from that do not occur in remove.
func without(from, remove []entity.Entity) []entity.Entity {
	drop := make(map[entity.Entity]bool, len(remove))
	for _, e := range remove {
		drop[e] = true
	}
	var out []entity.Entity
	for _, e := range from {
		if !drop[e] {
			out = append(out, e)
		}
	}
	return out
}

// sameSet reports whether a and b contain the same entities.
func sameSet(a, b []entity.Entity) bool {
	return len(without(a, b)) == 0 && len(without(b, a)) == 0
}
