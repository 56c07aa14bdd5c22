// Package phamt implements a persistent, immutable hash map and hash
// set on top of a Hash Array Mapped Trie. Every update returns a new
// logical value sharing structure with its predecessor; the original
// is left observationally unchanged. A Transient variant supports a
// thread-confined sequence of in-place mutations that is later
// promoted back to an immutable value via Persist.
package phamt

import (
	"hash/maphash"
	"iter"

	"github.com/gostructs/phamt/internal/node"
)

// Map is an immutable mapping from keys K to values V, parameterized
// by a stateless hasher/equality witness H. Just as with map[K]V, a
// nil *Map is a valid empty map.
type Map[K comparable, V any, H Hasher[K]] struct {
	hasher Hasher[K]
	seed   maphash.Seed
	root   *node.Node[K, V]
	length int
}

// NewMap returns a new empty Map using the given hasher.
func NewMap[K comparable, V any, H Hasher[K]](h Hasher[K]) *Map[K, V, H] {
	return &Map[K, V, H]{hasher: h, seed: maphash.MakeSeed()}
}

// FromSeq2 builds a Map from a sequence of (key, value) pairs. Later
// pairs override earlier ones with the same key.
func FromSeq2[K comparable, V any, H Hasher[K]](h Hasher[K], seq iter.Seq2[K, V]) *Map[K, V, H] {
	m := NewMap[K, V, H](h)
	for k, v := range seq {
		m = m.Insert(k, v)
	}
	return m
}

// FromMap builds a Map from a builtin map's contents.
func FromMap[K comparable, V any, H Hasher[K]](h Hasher[K], src map[K]V) *Map[K, V, H] {
	return FromSeq2[K, V, H](h, func(yield func(K, V) bool) {
		for k, v := range src {
			if !yield(k, v) {
				return
			}
		}
	})
}

func (m *Map[K, V, H]) withSelf() (Hasher[K], maphash.Seed) {
	if m == nil {
		var zero H
		return zero, maphash.MakeSeed()
	}
	return m.hasher, m.seed
}

// Len returns the number of entries in m.
func (m *Map[K, V, H]) Len() int {
	if m == nil {
		return 0
	}
	return m.length
}

// Lookup returns the value stored under key, or a *KeyNotFoundError if
// key is absent.
func (m *Map[K, V, H]) Lookup(key K) (V, error) {
	var zero V
	if m == nil {
		return zero, &KeyNotFoundError[K]{Key: key}
	}
	hasher, seed := m.withSelf()
	h := hash32(hasher, seed, key)
	v, ok := node.Lookup(m.root, h, key, hasher.Equal)
	if !ok {
		return zero, &KeyNotFoundError[K]{Key: key}
	}
	return v, nil
}

// Contains reports whether key is present in m.
func (m *Map[K, V, H]) Contains(key K) bool {
	_, err := m.Lookup(key)
	return err == nil
}

// Insert returns a new Map with key bound to value, sharing all
// untouched structure with m.
func (m *Map[K, V, H]) Insert(key K, value V) *Map[K, V, H] {
	hasher, seed := m.withSelf()
	existed := m.Contains(key)
	h := hash32(hasher, seed, key)
	var root *node.Node[K, V]
	if m != nil {
		root = m.root
	}
	newRoot := node.Insert(root, h, key, value, hasher.Equal)
	length := m.Len()
	if !existed {
		length++
	}
	return &Map[K, V, H]{hasher: hasher, seed: seed, root: newRoot, length: length}
}

// Remove returns a new Map with key absent, or a *KeyNotFoundError if
// key was not present.
func (m *Map[K, V, H]) Remove(key K) (*Map[K, V, H], error) {
	if m == nil {
		return nil, &KeyNotFoundError[K]{Key: key}
	}
	hasher, seed := m.withSelf()
	h := hash32(hasher, seed, key)
	newRoot, _, ok := node.Remove(m.root, h, key, hasher.Equal)
	if !ok {
		return nil, &KeyNotFoundError[K]{Key: key}
	}
	return &Map[K, V, H]{hasher: hasher, seed: seed, root: newRoot, length: m.length - 1}, nil
}

// Discard is Remove without the KeyNotFound error: removing an absent
// key is a no-op returning m unchanged.
func (m *Map[K, V, H]) Discard(key K) *Map[K, V, H] {
	next, err := m.Remove(key)
	if err != nil {
		return m
	}
	return next
}

// All returns an iterator over every (key, value) pair in m, in
// unspecified but stable-for-this-tree order.
func (m *Map[K, V, H]) All() iter.Seq2[K, V] {
	var root *node.Node[K, V]
	if m != nil {
		root = m.root
	}
	return node.All(root)
}

// Keys returns an iterator over every key in m.
func (m *Map[K, V, H]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over every value in m.
func (m *Map[K, V, H]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Union returns a ∪ b: every entry of b folded into a via Insert, so b
// wins on key collision.
func Union[K comparable, V any, H Hasher[K]](a, b *Map[K, V, H]) *Map[K, V, H] {
	result := a
	if result == nil {
		hasher, seed := b.withSelf()
		result = &Map[K, V, H]{hasher: hasher, seed: seed}
	}
	for k, v := range b.All() {
		result = result.Insert(k, v)
	}
	return result
}

// Intersection returns a ∩ b: for each entry of b whose key is present
// in a, that entry (with b's value) is kept. Values in the result
// therefore come from b.
func Intersection[K comparable, V any, H Hasher[K]](a, b *Map[K, V, H]) *Map[K, V, H] {
	hasher, seed := a.withSelf()
	result := &Map[K, V, H]{hasher: hasher, seed: seed}
	for k, v := range b.All() {
		if a.Contains(k) {
			result = result.Insert(k, v)
		}
	}
	return result
}

// SymDiff returns a △ b: a folded with every entry of b via the
// engine's sym_diff, which cancels (removes) a key present in both and
// inserts a key present only in b.
func SymDiff[K comparable, V any, H Hasher[K]](a, b *Map[K, V, H]) *Map[K, V, H] {
	hasher, seed := a.withSelf()
	var root *node.Node[K, V]
	length := 0
	if a != nil {
		root, length = a.root, a.length
	}
	for k, v := range b.All() {
		h := hash32(hasher, seed, k)
		existed := false
		if root != nil {
			if _, ok := node.Lookup(root, h, k, hasher.Equal); ok {
				existed = true
			}
		}
		root = node.SymDiff(root, h, k, v, hasher.Equal)
		if existed {
			length--
		} else {
			length++
		}
	}
	return &Map[K, V, H]{hasher: hasher, seed: seed, root: root, length: length}
}

// Equal reports whether a and b contain the same set of keys, each
// mapped to an equal value: the lengths must match and every entry of
// a must be found in b with an equal value. V must
// be comparable for this purpose even though Map itself does not
// require it; callers whose values are not comparable should compare
// manually via All.
func Equal[K, V comparable, H Hasher[K]](a, b *Map[K, V, H]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		bv, err := b.Lookup(k)
		if err != nil || bv != v {
			return false
		}
	}
	return true
}

// Transient returns a TransientMap that shares m's root, ready for a
// sequence of in-place mutations. m itself is left unchanged.
func (m *Map[K, V, H]) Transient() *TransientMap[K, V, H] {
	hasher, seed := m.withSelf()
	return &TransientMap[K, V, H]{
		hasher: hasher,
		seed:   seed,
		root:   deref(m),
		length: m.Len(),
		token:  node.NewEditToken(),
	}
}

func deref[K comparable, V any, H Hasher[K]](m *Map[K, V, H]) *node.Node[K, V] {
	if m == nil {
		return nil
	}
	return m.root
}
