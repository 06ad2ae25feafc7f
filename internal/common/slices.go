package common

// FirstMatch returns the first element satisfying pred.
func FirstMatch[S ~[]E, E any](s S, pred func(E) bool) (E, bool) {
	for _, e := range s {
		if pred(e) {
			return e, true
		}
	}

	var zero E

	return zero, false
}
