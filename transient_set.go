package phamt

import (
	"hash/maphash"

	"github.com/gostructs/phamt/internal/node"
)

// TransientSet is a thread-confined, mutation-enabled builder view of
// a Set. It is obtained from Set.Transient, mutated via Add/Remove,
// and turned back into an immutable Set via Persist.
type TransientSet[K comparable, H Hasher[K]] struct {
	hasher Hasher[K]
	seed   maphash.Seed
	root   *node.Node[K, struct{}]
	length int
	token  *node.EditToken

	persisted bool
}

func (s *TransientSet[K, H]) checkLive() {
	if s.persisted {
		panic(ErrUseAfterPersist)
	}
}

// Contains reports whether key is an element of s. Safe to call after
// Persist.
func (s *TransientSet[K, H]) Contains(key K) bool {
	if s == nil {
		return false
	}
	h := hash32(s.hasher, s.seed, key)
	_, ok := node.Lookup(s.root, h, key, s.hasher.Equal)
	return ok
}

// Len returns the number of elements currently held.
func (s *TransientSet[K, H]) Len() int {
	if s == nil {
		return 0
	}
	return s.length
}

// Add inserts key in place where possible, and returns s for chaining.
func (s *TransientSet[K, H]) Add(key K) *TransientSet[K, H] {
	s.checkLive()
	existed := s.Contains(key)
	h := hash32(s.hasher, s.seed, key)
	s.root = node.InsertMut(s.root, s.token, h, key, struct{}{}, s.hasher.Equal)
	if !existed {
		s.length++
	}
	return s
}

// Remove removes key in place where possible, returning s for
// chaining, or an error if key was not present.
func (s *TransientSet[K, H]) Remove(key K) (*TransientSet[K, H], error) {
	s.checkLive()
	h := hash32(s.hasher, s.seed, key)
	newRoot, _, ok := node.RemoveMut(s.root, s.token, h, key, s.hasher.Equal)
	if !ok {
		return s, &KeyNotFoundError[K]{Key: key}
	}
	s.root = newRoot
	s.length--
	return s, nil
}

// Discard is Remove without the KeyNotFound error.
func (s *TransientSet[K, H]) Discard(key K) *TransientSet[K, H] {
	s.checkLive()
	next, err := s.Remove(key)
	if err != nil {
		return s
	}
	return next
}

// Persist promotes s to an immutable Set and poisons s against further
// mutating calls.
func (s *TransientSet[K, H]) Persist() *Set[K, H] {
	s.checkLive()
	s.persisted = true
	return &Set[K, H]{hasher: s.hasher, seed: s.seed, root: s.root, length: s.length}
}
