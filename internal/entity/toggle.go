package entity

import (
	"fmt"

	"github.com/bethropolis/quill/internal/logger"
)

// Toggle adds or removes the formatting described by req over req's range.
//
// Before looking at the request, contiguous fragments of the same type and
// attributes are merged back together (see Unify). Then same-type entities are
// scanned from the end:
//
//   - Adding with identical attributes folds every overlapping or touching
//     entity into the request, so repeated adds leave a single entity.
//   - Adding with different attributes (another link target, another code
//     language) cuts the requested range out of the existing entity instead of
//     merging; touching entities are left alone.
//   - Removing splits the first overlapping entity around the requested range
//     and stops. For links, when req carries a URL, the overlapped part is
//     re-wrapped with that URL instead of being dropped; if the URL is already
//     the same nothing changes.
//
// Requests with a non-positive length are ignored, as are requests that do not
// fit the text; the latter are logged since callers should never send them.
func (ft *FormattedText) Toggle(req Entity, add bool) {
	if req.Length <= 0 {
		return
	}
	if err := ft.checkRequest(req, add); err != nil {
		logger.Warnf("Toggle: ignoring %s request %s: %v", verb(add), req, err)
		return
	}

	entities := Unify(ft.Entities)
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		if e.Type != req.Type {
			continue
		}
		lo, hi := max(e.Offset, req.Offset), min(e.End(), req.End())

		if add {
			if lo > hi {
				continue // disjoint and not touching
			}
			if e.SameAttributes(req) {
				start, end := min(e.Offset, req.Offset), max(e.End(), req.End())
				req = req.WithRange(start, end-start)
				entities = remove(entities, i)
				continue
			}
			if lo == hi {
				continue
			}
			entities = append(remove(entities, i), remainders(e, lo, hi)...)
			continue
		}

		if lo >= hi {
			continue
		}
		if req.Type == TypeTextURL && req.URL != "" {
			if e.URL == req.URL {
				return
			}
			entities = append(remove(entities, i), remainders(e, lo, hi)...)
			entities = append(entities, NewTextURL(lo, hi-lo, req.URL))
		} else {
			entities = append(remove(entities, i), remainders(e, lo, hi)...)
		}
		ft.Entities = normalize(entities)
		logger.Debugf("Toggle: removed %s over [%d,%d)", req.Type, lo, hi)
		return
	}

	if add {
		entities = append(entities, req)
		logger.Debugf("Toggle: added %s", req)
	}
	ft.Entities = normalize(entities)
}

func (ft *FormattedText) checkRequest(req Entity, add bool) error {
	if add {
		return req.Validate(ft.Len())
	}
	// Removal only needs a known type and a range; link removals may omit
	// the URL.
	if _, ok := typeNames[req.Type]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownType, int(req.Type))
	}
	if req.Offset < 0 || req.End() > ft.Len() {
		return fmt.Errorf("%w: %s [%d, %d) in text of length %d", ErrBadRange, req.Type, req.Offset, req.End(), ft.Len())
	}
	return nil
}

// remainders returns the parts of e outside [lo, hi), dropping empty ones.
func remainders(e Entity, lo, hi int) []Entity {
	var out []Entity
	if lo > e.Offset {
		out = append(out, e.WithRange(e.Offset, lo-e.Offset))
	}
	if hi < e.End() {
		out = append(out, e.WithRange(hi, e.End()-hi))
	}
	return out
}

func remove(entities []Entity, i int) []Entity {
	return append(entities[:i], entities[i+1:]...)
}

func verb(add bool) string {
	if add {
		return "add"
	}
	return "remove"
}
