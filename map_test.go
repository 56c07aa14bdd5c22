package phamt_test

import (
	"errors"
	"hash/maphash"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/gostructs/phamt"
)

func newStringMap() *phamt.Map[string, string, phamt.ComparableHasher[string]] {
	return phamt.NewMap[string, string, phamt.ComparableHasher[string]](phamt.ComparableHasher[string]{})
}

// TestBasicInsertLookupRemove covers boundary scenario S1.
func TestBasicInsertLookupRemove(t *testing.T) {
	m := newStringMap()

	m = m.Insert("a", "hello")
	v, err := m.Lookup("a")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, "hello"))

	m = m.Insert("b", "world")
	v, err = m.Lookup("a")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, "hello"))
	v, err = m.Lookup("b")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, "world"))

	m, err = m.Remove("a")
	qt.Assert(t, qt.IsNil(err))
	_, err = m.Lookup("a")
	var notFound *phamt.KeyNotFoundError[string]
	qt.Assert(t, qt.IsTrue(errors.As(err, &notFound)))
	qt.Assert(t, qt.Equals(notFound.Key, "a"))
	v, err = m.Lookup("b")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, "world"))
}

// TestIterationYieldsAllEntries covers boundary scenario S2.
func TestIterationYieldsAllEntries(t *testing.T) {
	m := newStringMap()
	m = m.Insert("a", "hello")
	m = m.Insert("b", "world")

	keys := map[string]bool{}
	for k := range m.Keys() {
		keys[k] = true
	}
	qt.Assert(t, qt.DeepEquals(keys, map[string]bool{"a": true, "b": true}))

	values := map[string]bool{}
	for v := range m.Values() {
		values[v] = true
	}
	qt.Assert(t, qt.DeepEquals(values, map[string]bool{"hello": true, "world": true}))

	entries := map[string]string{}
	for k, v := range m.All() {
		entries[k] = v
	}
	qt.Assert(t, qt.DeepEquals(entries, map[string]string{"a": "hello", "b": "world"}))
}

// collisionHasher writes nothing key-dependent, so every key collides
// under it regardless of content: this forces the engine through its
// collision-node path the way boundary scenario S3 calls for (a fixed
// hash shared by multiple distinct keys).
type collisionKey struct{ name string }

type collisionHasher struct{}

func (collisionHasher) Hash(*maphash.Hash, collisionKey) {}
func (collisionHasher) Equal(a, b collisionKey) bool     { return a.name == b.name }

// TestForcedCollision covers boundary scenario S3.
func TestForcedCollision(t *testing.T) {
	m := phamt.NewMap[collisionKey, any, collisionHasher](collisionHasher{})

	m = m.Insert(collisionKey{"hello"}, "world")
	m = m.Insert(collisionKey{"answer"}, 42)

	v, err := m.Lookup(collisionKey{"hello"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, any("world")))

	v, err = m.Lookup(collisionKey{"answer"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, any(42)))

	m, err = m.Remove(collisionKey{"hello"})
	qt.Assert(t, qt.IsNil(err))
	v, err = m.Lookup(collisionKey{"answer"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, any(42)))
}

func TestInsertIdempotentUnderOverride(t *testing.T) {
	m := newStringMap()
	m1 := m.Insert("a", "x").Insert("a", "x")
	m2 := m.Insert("a", "x")
	qt.Assert(t, qt.IsTrue(phamt.Equal[string, string, phamt.ComparableHasher[string]](m1, m2)))
}

func TestPersistenceAfterInsertAndRemove(t *testing.T) {
	m := newStringMap()
	m = m.Insert("a", "1")
	m2 := m.Insert("b", "2")
	_, err := m.Lookup("b")
	qt.Assert(t, qt.Not(qt.IsNil(err)))
	v, err := m2.Lookup("a")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, "1"))

	m3, _ := m2.Remove("a")
	v, err = m2.Lookup("a")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, "1"))
	_, err = m3.Lookup("a")
	qt.Assert(t, qt.Not(qt.IsNil(err)))
}

func TestLenTracksInsertAndRemove(t *testing.T) {
	m := newStringMap()
	qt.Assert(t, qt.Equals(m.Len(), 0))
	m = m.Insert("a", "1")
	m = m.Insert("b", "2")
	qt.Assert(t, qt.Equals(m.Len(), 2))
	m = m.Insert("a", "override")
	qt.Assert(t, qt.Equals(m.Len(), 2))
	m, _ = m.Remove("a")
	qt.Assert(t, qt.Equals(m.Len(), 1))
}

func TestUnionIntersectionSymDiff(t *testing.T) {
	a := phamt.FromMap[string, int, phamt.ComparableHasher[string]](phamt.ComparableHasher[string]{}, map[string]int{
		"x": 1, "y": 2,
	})
	b := phamt.FromMap[string, int, phamt.ComparableHasher[string]](phamt.ComparableHasher[string]{}, map[string]int{
		"y": 20, "z": 3,
	})

	union := phamt.Union(a, b)
	qt.Assert(t, qt.Equals(union.Len(), 3))
	v, _ := union.Lookup("y")
	qt.Assert(t, qt.Equals(v, 20)) // b wins

	inter := phamt.Intersection(a, b)
	qt.Assert(t, qt.Equals(inter.Len(), 1))
	v, err := inter.Lookup("y")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, 20)) // values come from b

	diff := phamt.SymDiff(a, b)
	qt.Assert(t, qt.Equals(diff.Len(), 2))
	_, err = diff.Lookup("y")
	qt.Assert(t, qt.Not(qt.IsNil(err)))
	v, err = diff.Lookup("x")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, 1))
	v, err = diff.Lookup("z")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, 3))
}

func TestEqualIgnoresInsertionOrder(t *testing.T) {
	h := phamt.ComparableHasher[string]{}
	a := phamt.FromMap[string, int, phamt.ComparableHasher[string]](h, map[string]int{"a": 1, "b": 2})
	b := phamt.NewMap[string, int, phamt.ComparableHasher[string]](h).Insert("b", 2).Insert("a", 1)
	qt.Assert(t, qt.IsTrue(phamt.Equal[string, int, phamt.ComparableHasher[string]](a, b)))
}

func TestSharedValueIdentity(t *testing.T) {
	m := phamt.NewMap[string, *[]string, phamt.ComparableHasher[string]](phamt.ComparableHasher[string]{})
	list := &[]string{}
	m = m.Insert("foo", list)

	*list = append(*list, "test")

	v, err := m.Lookup("foo")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(*v, []string{"test"}))
}

func TestNilMapIsValidEmptyMap(t *testing.T) {
	var m *phamt.Map[string, int, phamt.ComparableHasher[string]]
	qt.Assert(t, qt.Equals(m.Len(), 0))
	_, err := m.Lookup("a")
	qt.Assert(t, qt.Not(qt.IsNil(err)))

	m2 := m.Insert("a", 1)
	v, err := m2.Lookup("a")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, 1))
}
