package sets

import "encoding/json"

// Ordered is a set that remembers the order keys were first added in,
// so that anything rendered from it stays stable between runs on the same input.
//
// The zero value is ready to use.
type Ordered[K comparable] struct {
	index map[K]struct{}
	keys  []K
}

func NewOrdered[K comparable](capacity int) *Ordered[K] {
	return &Ordered[K]{
		index: make(map[K]struct{}, capacity),
		keys:  make([]K, 0, capacity),
	}
}

func OrderedFromSlice[K comparable](keys []K) *Ordered[K] {
	s := NewOrdered[K](len(keys))
	s.AppendSlice(keys)

	return s
}

// Adds key if it is not already present. Reports whether the key was new.
func (s *Ordered[K]) Append(key K) bool {
	if s.index == nil {
		s.index = make(map[K]struct{})
	}

	if _, ok := s.index[key]; ok {
		return false
	}

	s.index[key] = struct{}{}
	s.keys = append(s.keys, key)

	return true
}

func (s *Ordered[K]) AppendSlice(keys []K) {
	for _, k := range keys {
		s.Append(k)
	}
}

func (s *Ordered[K]) Has(key K) bool {
	_, ok := s.index[key]
	return ok
}

func (s *Ordered[K]) Len() int {
	return len(s.keys)
}

// Returns a copy of the keys in insertion order. Never nil.
func (s *Ordered[K]) Keys() []K {
	out := make([]K, len(s.keys))
	copy(out, s.keys)

	return out
}

func (s *Ordered[K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}
