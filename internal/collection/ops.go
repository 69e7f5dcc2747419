package collection

// Pure collection transforms. These never touch storage; the store composes
// them inside its read-modify-write cycle.

// UpsertByID replaces the entry whose id matches rec (preserving its
// position), or prepends rec when no entry matches.
func UpsertByID[T any](col []T, rec T, id func(T) string) []T {
	recID := id(rec)
	for i, existing := range col {
		if id(existing) == recID {
			out := make([]T, len(col))
			copy(out, col)
			out[i] = rec
			return out
		}
	}
	out := make([]T, 0, len(col)+1)
	out = append(out, rec)
	return append(out, col...)
}

// RemoveByID drops the entry whose id matches. Removing an absent id is a
// no-op, not an error.
func RemoveByID[T any](col []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(col))
	for _, entry := range col {
		if id(entry) == target {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// ContainsID reports whether any entry has the given id.
func ContainsID[T any](col []T, target string, id func(T) string) bool {
	for _, entry := range col {
		if id(entry) == target {
			return true
		}
	}
	return false
}
