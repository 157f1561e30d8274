// Package identity compares entities by identifier and keeps collections of
// related entities free of duplicates.
package identity

// Entity is anything addressable by a comparable identifier.
// Implementations are pointer types so that nil is the absent value.
type Entity[K comparable] interface {
	comparable
	Identity() K
}

// Equal reports whether a and b designate the same entity.
// Two absent values are equal; an absent and a present value never are.
func Equal[K comparable, E Entity[K]](a, b E) bool {
	var none E
	if a == none || b == none {
		return a == b
	}
	return a.Identity() == b.Identity()
}

// AddIfMissing returns collection with every present candidate whose
// identifier is not already in it placed in front, in candidate order.
// Duplicates among the candidates collapse to their first occurrence.
//
// When nothing is added the original slice is returned unchanged, so callers
// can compare lengths or backing arrays to skip redundant updates.
func AddIfMissing[K comparable, E Entity[K]](collection []E, candidates ...E) []E {
	var none E
	present := make([]E, 0, len(candidates))
	for _, c := range candidates {
		if c != none {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return collection
	}

	seen := make(map[K]struct{}, len(collection)+len(present))
	for _, item := range collection {
		if item != none {
			seen[item.Identity()] = struct{}{}
		}
	}
	toAdd := present[:0]
	for _, c := range present {
		id := c.Identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		toAdd = append(toAdd, c)
	}
	if len(toAdd) == 0 {
		return collection
	}

	out := make([]E, 0, len(toAdd)+len(collection))
	out = append(out, toAdd...)
	return append(out, collection...)
}
