package entity

import "sort"

// Sort orders entities by offset ascending and, for equal offsets, by length
// descending so an enclosing entity precedes the ones it contains. Entities
// covering the same range are ordered by type. The sort is stable and happens
// in place; the slice is returned for chaining.
func Sort(entities []Entity) []Entity {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		return a.Type < b.Type
	})
	return entities
}

// normalize drops degenerate entities and sorts the rest. It returns nil when
// nothing survives.
func normalize(entities []Entity) []Entity {
	var out []Entity
	for _, e := range entities {
		if e.Length > 0 {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return Sort(out)
}
