package entity

// ApplyEdit moves entities to follow a plain-text edit that replaced the
// removed code units at offset with inserted new ones. The deletion is applied
// first: ranges shrink by the part they lose and collapse to nothing when
// fully deleted. The insertion then shifts entities starting at or after
// offset, and extends an entity when the insertion lands strictly inside it,
// or at its end for kinds that keep growing while the user types (links,
// mentions and custom emoji do not). Text that replaces a selection starting
// inside an entity takes that entity's formatting.
func ApplyEdit(entities []Entity, offset, removed, inserted int) []Entity {
	if removed < 0 {
		removed = 0
	}
	if inserted < 0 {
		inserted = 0
	}
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		start := shiftDeleted(e.Offset, offset, removed)
		end := shiftDeleted(e.End(), offset, removed)
		if end <= start {
			continue
		}
		switch {
		case removed > 0 && e.Offset <= offset && offset < e.End():
			// Replacing text inside an entity keeps the new text formatted.
			end += inserted
		case offset <= start:
			start += inserted
			end += inserted
		case offset < end, offset == end && growsAtEnd(e.Type):
			end += inserted
		}
		out = append(out, e.WithRange(start, end-start))
	}
	return normalize(out)
}

func shiftDeleted(pos, offset, removed int) int {
	switch {
	case pos <= offset:
		return pos
	case pos >= offset+removed:
		return pos - removed
	default:
		return offset
	}
}

func growsAtEnd(t Type) bool {
	switch t {
	case TypeTextURL, TypeCustomEmoji, TypeMentionName:
		return false
	}
	return true
}
