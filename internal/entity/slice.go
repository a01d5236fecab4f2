package entity

// Slice splits crossing entities so that any two results are either disjoint
// or nested, which is what a stack-based renderer needs. An entity that starts
// inside another and runs past its end is cut at that end; the part beyond
// becomes a new fragment with the same attributes. The input is not modified.
// Slicing an already sliced list returns it unchanged.
func Slice(entities []Entity) []Entity {
	out := normalize(append([]Entity(nil), entities...))
	for i := 0; i < len(out); i++ {
		end := out[i].End()
		var fragments []Entity
		for j := i + 1; j < len(out); j++ {
			inner := &out[j]
			if inner.Offset >= end {
				break
			}
			if innerEnd := inner.End(); innerEnd > end {
				fragments = append(fragments, inner.WithRange(end, innerEnd-end))
				inner.Length = end - inner.Offset
			}
		}
		if len(fragments) > 0 {
			out = Sort(append(out, fragments...))
		}
	}
	return out
}
