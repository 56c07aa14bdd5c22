package phamt

import (
	"hash/maphash"

	"github.com/gostructs/phamt/internal/node"
)

// TransientMap is a thread-confined, mutation-enabled builder view of
// a Map. It is obtained from Map.Transient, mutated via Insert/Remove,
// and turned back into an immutable Map via Persist. Calling any
// mutating method after Persist panics with ErrUseAfterPersist rather
// than silently returning an unrelated value.
type TransientMap[K comparable, V any, H Hasher[K]] struct {
	hasher Hasher[K]
	seed   maphash.Seed
	root   *node.Node[K, V]
	length int
	token  *node.EditToken

	persisted bool
}

func (t *TransientMap[K, V, H]) checkLive() {
	if t.persisted {
		panic(ErrUseAfterPersist)
	}
}

// Lookup returns the value stored under key, or a *KeyNotFoundError if
// key is absent. Safe to call after Persist.
func (t *TransientMap[K, V, H]) Lookup(key K) (V, error) {
	var zero V
	if t == nil {
		return zero, &KeyNotFoundError[K]{Key: key}
	}
	h := hash32(t.hasher, t.seed, key)
	v, ok := node.Lookup(t.root, h, key, t.hasher.Equal)
	if !ok {
		return zero, &KeyNotFoundError[K]{Key: key}
	}
	return v, nil
}

// Contains reports whether key is present.
func (t *TransientMap[K, V, H]) Contains(key K) bool {
	_, err := t.Lookup(key)
	return err == nil
}

// Len returns the number of entries currently held.
func (t *TransientMap[K, V, H]) Len() int {
	if t == nil {
		return 0
	}
	return t.length
}

// Insert binds key to value in place where possible, and returns t for
// chaining.
func (t *TransientMap[K, V, H]) Insert(key K, value V) *TransientMap[K, V, H] {
	t.checkLive()
	existed := t.Contains(key)
	h := hash32(t.hasher, t.seed, key)
	t.root = node.InsertMut(t.root, t.token, h, key, value, t.hasher.Equal)
	if !existed {
		t.length++
	}
	return t
}

// Remove unbinds key in place where possible, returning t for
// chaining, or an error if key was not present.
func (t *TransientMap[K, V, H]) Remove(key K) (*TransientMap[K, V, H], error) {
	t.checkLive()
	h := hash32(t.hasher, t.seed, key)
	newRoot, _, ok := node.RemoveMut(t.root, t.token, h, key, t.hasher.Equal)
	if !ok {
		return t, &KeyNotFoundError[K]{Key: key}
	}
	t.root = newRoot
	t.length--
	return t, nil
}

// Discard is Remove without the KeyNotFound error.
func (t *TransientMap[K, V, H]) Discard(key K) *TransientMap[K, V, H] {
	t.checkLive()
	next, err := t.Remove(key)
	if err != nil {
		return t
	}
	return next
}

// Persist promotes t to an immutable Map and poisons t against further
// mutating calls.
func (t *TransientMap[K, V, H]) Persist() *Map[K, V, H] {
	t.checkLive()
	t.persisted = true
	return &Map[K, V, H]{hasher: t.hasher, seed: t.seed, root: t.root, length: t.length}
}
