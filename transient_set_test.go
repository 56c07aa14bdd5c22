package phamt_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/gostructs/phamt"
)

func TestTransientSetAddRemove(t *testing.T) {
	s := phamt.NewSet[int, phamt.ComparableHasher[int]](phamt.ComparableHasher[int]{})
	tr := s.Transient()
	tr.Add(1)
	tr.Add(2)
	qt.Assert(t, qt.Equals(tr.Len(), 2))
	qt.Assert(t, qt.IsTrue(tr.Contains(1)))

	tr.Remove(1)
	qt.Assert(t, qt.Equals(tr.Len(), 1))
	qt.Assert(t, qt.IsFalse(tr.Contains(1)))

	persisted := tr.Persist()
	qt.Assert(t, qt.Equals(persisted.Len(), 1))
	qt.Assert(t, qt.IsTrue(persisted.Contains(2)))

	// s itself was never mutated.
	qt.Assert(t, qt.Equals(s.Len(), 0))
}

func TestTransientSetUseAfterPersistPanics(t *testing.T) {
	s := phamt.NewSet[int, phamt.ComparableHasher[int]](phamt.ComparableHasher[int]{})
	tr := s.Transient()
	tr.Persist()
	qt.Assert(t, qt.PanicMatches(func() { tr.Add(1) }, ".*use of transient after persist.*"))
}
