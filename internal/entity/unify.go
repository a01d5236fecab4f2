package entity

// Unify merges runs of same-type entities that touch end to start and carry
// identical attributes, undoing the fragmentation Slice introduces. The
// result is sorted; the input is not modified.
func Unify(entities []Entity) []Entity {
	sorted := normalize(append([]Entity(nil), entities...))
	if sorted == nil {
		return nil
	}

	var order []Type
	groups := make(map[Type][]Entity)
	for _, cur := range sorted {
		group, seen := groups[cur.Type]
		if !seen {
			order = append(order, cur.Type)
		}
		if n := len(group); n > 0 {
			last := &group[n-1]
			if last.End() == cur.Offset && last.SameAttributes(cur) {
				last.Length += cur.Length
				groups[cur.Type] = group
				continue
			}
		}
		groups[cur.Type] = append(group, cur)
	}

	out := make([]Entity, 0, len(sorted))
	for _, t := range order {
		out = append(out, groups[t]...)
	}
	return Sort(out)
}
