package sets

type Set[K comparable] map[K]struct{}

func New[K comparable]() Set[K] {
	return make(Set[K])
}

func (s Set[K]) Has(key K) bool {
	_, ok := s[key]
	return ok
}

// Adds key to this set.
func (s Set[K]) Append(key K) {
	s[key] = struct{}{}
}
