package phamt

import "fmt"

// KeyNotFoundError reports that a key was absent where the operation
// required it to be present: Lookup and Remove both fail this way
// rather than returning an ok flag, per the engine's error model.
type KeyNotFoundError[K any] struct {
	Key K
}

func (e *KeyNotFoundError[K]) Error() string {
	return fmt.Sprintf("phamt: key not found: %v", e.Key)
}

// ErrUseAfterPersist is the value panicked when a mutating method is
// called on a TransientMap or TransientSet after Persist has already
// been called on it. Calling Persist renders the transient poisoned;
// only its read-only methods (Lookup, Contains, Len) remain safe to
// call. Discard and a second Persist panic as well.
var ErrUseAfterPersist = &useAfterPersistError{}

type useAfterPersistError struct{}

func (*useAfterPersistError) Error() string {
	return "phamt: use of transient after persist"
}
