package phamt

import (
	"hash/maphash"
	"iter"

	"github.com/gostructs/phamt/internal/node"
)

// Set is an immutable collection of keys K, built on the same engine
// as Map with an empty struct{} value at every leaf. A nil *Set is a
// valid empty set.
type Set[K comparable, H Hasher[K]] struct {
	hasher Hasher[K]
	seed   maphash.Seed
	root   *node.Node[K, struct{}]
	length int
}

// NewSet returns a new empty Set using the given hasher.
func NewSet[K comparable, H Hasher[K]](h Hasher[K]) *Set[K, H] {
	return &Set[K, H]{hasher: h, seed: maphash.MakeSeed()}
}

// FromSeq builds a Set from a sequence of keys.
func FromSeq[K comparable, H Hasher[K]](h Hasher[K], seq iter.Seq[K]) *Set[K, H] {
	s := NewSet[K, H](h)
	for k := range seq {
		s = s.Add(k)
	}
	return s
}

// FromSlice builds a Set from a slice of keys.
func FromSlice[K comparable, H Hasher[K]](h Hasher[K], keys []K) *Set[K, H] {
	return FromSeq[K, H](h, func(yield func(K) bool) {
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	})
}

func (s *Set[K, H]) withSelf() (Hasher[K], maphash.Seed) {
	if s == nil {
		var zero H
		return zero, maphash.MakeSeed()
	}
	return s.hasher, s.seed
}

// Len returns the number of elements in s.
func (s *Set[K, H]) Len() int {
	if s == nil {
		return 0
	}
	return s.length
}

// Contains reports whether key is an element of s.
func (s *Set[K, H]) Contains(key K) bool {
	if s == nil {
		return false
	}
	hasher, seed := s.withSelf()
	h := hash32(hasher, seed, key)
	_, ok := node.Lookup(s.root, h, key, hasher.Equal)
	return ok
}

// Add returns a new Set with key present, sharing all untouched
// structure with s.
func (s *Set[K, H]) Add(key K) *Set[K, H] {
	hasher, seed := s.withSelf()
	existed := s.Contains(key)
	h := hash32(hasher, seed, key)
	var root *node.Node[K, struct{}]
	if s != nil {
		root = s.root
	}
	newRoot := node.Insert(root, h, key, struct{}{}, hasher.Equal)
	length := s.Len()
	if !existed {
		length++
	}
	return &Set[K, H]{hasher: hasher, seed: seed, root: newRoot, length: length}
}

// Remove returns a new Set with key absent, or a *KeyNotFoundError if
// key was not present.
func (s *Set[K, H]) Remove(key K) (*Set[K, H], error) {
	if s == nil {
		return nil, &KeyNotFoundError[K]{Key: key}
	}
	hasher, seed := s.withSelf()
	h := hash32(hasher, seed, key)
	newRoot, _, ok := node.Remove(s.root, h, key, hasher.Equal)
	if !ok {
		return nil, &KeyNotFoundError[K]{Key: key}
	}
	return &Set[K, H]{hasher: hasher, seed: seed, root: newRoot, length: s.length - 1}, nil
}

// Discard is Remove without the KeyNotFound error.
func (s *Set[K, H]) Discard(key K) *Set[K, H] {
	next, err := s.Remove(key)
	if err != nil {
		return s
	}
	return next
}

// All returns an iterator over every element of s.
func (s *Set[K, H]) All() iter.Seq[K] {
	var root *node.Node[K, struct{}]
	if s != nil {
		root = s.root
	}
	return func(yield func(K) bool) {
		for k := range node.All(root) {
			if !yield(k) {
				return
			}
		}
	}
}

// Union returns s ∪ other: every element of other folded into s via
// Add.
func (s *Set[K, H]) Union(other *Set[K, H]) *Set[K, H] {
	result := s
	if result == nil {
		hasher, seed := other.withSelf()
		result = &Set[K, H]{hasher: hasher, seed: seed}
	}
	for k := range other.All() {
		result = result.Add(k)
	}
	return result
}

// Intersection returns s ∩ other: elements present in both.
func (s *Set[K, H]) Intersection(other *Set[K, H]) *Set[K, H] {
	hasher, seed := s.withSelf()
	result := &Set[K, H]{hasher: hasher, seed: seed}
	for k := range other.All() {
		if s.Contains(k) {
			result = result.Add(k)
		}
	}
	return result
}

// SymDiff returns s △ other: elements present in exactly one of s,
// other.
func (s *Set[K, H]) SymDiff(other *Set[K, H]) *Set[K, H] {
	hasher, seed := s.withSelf()
	var root *node.Node[K, struct{}]
	length := 0
	if s != nil {
		root, length = s.root, s.length
	}
	for k := range other.All() {
		h := hash32(hasher, seed, k)
		existed := false
		if root != nil {
			if _, ok := node.Lookup(root, h, k, hasher.Equal); ok {
				existed = true
			}
		}
		root = node.SymDiff(root, h, k, struct{}{}, hasher.Equal)
		if existed {
			length--
		} else {
			length++
		}
	}
	return &Set[K, H]{hasher: hasher, seed: seed, root: root, length: length}
}

// Equal reports whether s and other contain the same elements.
func (s *Set[K, H]) Equal(other *Set[K, H]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.All() {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}

// Transient returns a TransientSet sharing s's root, ready for a
// sequence of in-place mutations. s itself is left unchanged.
func (s *Set[K, H]) Transient() *TransientSet[K, H] {
	hasher, seed := s.withSelf()
	var root *node.Node[K, struct{}]
	if s != nil {
		root = s.root
	}
	return &TransientSet[K, H]{
		hasher: hasher,
		seed:   seed,
		root:   root,
		length: s.Len(),
		token:  node.NewEditToken(),
	}
}
