package phamt_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/gostructs/phamt"
)

func newIntSet(vals ...int) *phamt.Set[int, phamt.ComparableHasher[int]] {
	return phamt.FromSlice[int, phamt.ComparableHasher[int]](phamt.ComparableHasher[int]{}, vals)
}

func TestSetAddContainsRemove(t *testing.T) {
	s := phamt.NewSet[int, phamt.ComparableHasher[int]](phamt.ComparableHasher[int]{})
	qt.Assert(t, qt.Equals(s.Len(), 0))

	s = s.Add(1)
	s = s.Add(2)
	qt.Assert(t, qt.Equals(s.Len(), 2))
	qt.Assert(t, qt.IsTrue(s.Contains(1)))
	qt.Assert(t, qt.IsTrue(s.Contains(2)))
	qt.Assert(t, qt.IsFalse(s.Contains(3)))

	s2, err := s.Remove(1)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(s2.Contains(1)))
	qt.Assert(t, qt.IsTrue(s.Contains(1))) // persistence: s unchanged
}

func TestSetRemoveAbsentIsError(t *testing.T) {
	s := newIntSet(1, 2)
	_, err := s.Remove(99)
	qt.Assert(t, qt.Not(qt.IsNil(err)))

	discarded := s.Discard(99)
	qt.Assert(t, qt.Equals(discarded.Len(), 2))
}

func TestSetUnionIntersectionSymDiff(t *testing.T) {
	a := newIntSet(1, 2, 3)
	b := newIntSet(2, 3, 4)

	union := a.Union(b)
	qt.Assert(t, qt.Equals(union.Len(), 4))
	for _, k := range []int{1, 2, 3, 4} {
		qt.Assert(t, qt.IsTrue(union.Contains(k)))
	}

	inter := a.Intersection(b)
	qt.Assert(t, qt.Equals(inter.Len(), 2))
	qt.Assert(t, qt.IsTrue(inter.Contains(2)))
	qt.Assert(t, qt.IsTrue(inter.Contains(3)))
	qt.Assert(t, qt.IsFalse(inter.Contains(1)))

	diff := a.SymDiff(b)
	qt.Assert(t, qt.Equals(diff.Len(), 2))
	qt.Assert(t, qt.IsTrue(diff.Contains(1)))
	qt.Assert(t, qt.IsTrue(diff.Contains(4)))
	qt.Assert(t, qt.IsFalse(diff.Contains(2)))
	qt.Assert(t, qt.IsFalse(diff.Contains(3)))
}

func TestSetEqualIgnoresInsertionOrder(t *testing.T) {
	a := newIntSet(1, 2, 3)
	b := newIntSet(3, 2, 1)
	qt.Assert(t, qt.IsTrue(a.Equal(b)))

	c := newIntSet(1, 2)
	qt.Assert(t, qt.IsFalse(a.Equal(c)))
}

func TestSubDispatchPromotionThroughSet(t *testing.T) {
	// Boundary scenario S4, exercised through the public façade: 64
	// keys under a random maphash seed almost surely occupy more than 16
	// of the root's 32 slots, promoting its bitmap dispatch to array
	// form. The test does not inspect the tree; it checks that every
	// element is still retrievable.
	s := phamt.NewSet[int, phamt.ComparableHasher[int]](phamt.ComparableHasher[int]{})
	const n = 64
	for i := 0; i < n; i++ {
		s = s.Add(i)
	}
	qt.Assert(t, qt.Equals(s.Len(), n))
	for i := 0; i < n; i++ {
		qt.Assert(t, qt.IsTrue(s.Contains(i)))
	}
}

func TestNilSetIsValidEmptySet(t *testing.T) {
	var s *phamt.Set[int, phamt.ComparableHasher[int]]
	qt.Assert(t, qt.Equals(s.Len(), 0))
	qt.Assert(t, qt.IsFalse(s.Contains(1)))

	s2 := s.Add(1)
	qt.Assert(t, qt.IsTrue(s2.Contains(1)))
}
