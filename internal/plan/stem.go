package plan

import "strconv"

// newStem creates a stem producing stem1, stem2, ... skipping taken names.
// The nil namespace is treated as a free namespace, meaning all names are available.
func newStem(stem string, namespace map[string]struct{}) *nameStem {
	return &nameStem{
		taken: namespace,
		stem:  stem,
	}
}

type nameStem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

func (s *nameStem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
