package node

// Eq is the key-equality collaborator every engine operation takes
// explicitly, keeping this package decoupled from hashing policy.
type Eq[K any] func(a, b K) bool

// Lookup finds the value stored under key, whose hash is h. A nil n
// is Empty and always misses.
func Lookup[K comparable, V any](n *Node[K, V], h uint32, key K, eq Eq[K]) (V, bool) {
	return lookup(n, h, 0, key, eq)
}

// lookup is the shift-carrying recursive implementation Lookup drives.
func lookup[K comparable, V any](n *Node[K, V], h uint32, shift uint, key K, eq Eq[K]) (V, bool) {
	if n == nil {
		var zero V
		return zero, false
	}
	switch n.kind {
	case leafKind:
		if eq(n.key, key) {
			return n.value, true
		}
	case collisionKind:
		if n.hash == h {
			for _, e := range n.entries {
				if eq(e.key, key) {
					return e.value, true
				}
			}
		}
	case interiorKind:
		return lookup(n.sub.get(slot(h, shift)), h, shift+stride, key, eq)
	}
	var zero V
	return zero, false
}

// Insert returns a new root with key/value inserted (or key's value
// overridden if already present), sharing all untouched structure
// with n. n may be nil (Empty).
func Insert[K comparable, V any](n *Node[K, V], h uint32, key K, value V, eq Eq[K]) *Node[K, V] {
	return insert(n, h, 0, newLeaf[K, V](h, key, value), eq)
}

func insert[K comparable, V any](n *Node[K, V], h uint32, shift uint, newEntry *Node[K, V], eq Eq[K]) *Node[K, V] {
	if n == nil {
		return newEntry
	}
	switch n.kind {
	case leafKind:
		if eq(n.key, newEntry.key) {
			return newEntry
		}
		if n.hash == h {
			return newCollision(h, n, newEntry)
		}
		return build(shift, n, newEntry)
	case collisionKind:
		if h != n.hash {
			return build(shift, n, newEntry)
		}
		return collisionInsert(n, newEntry, eq)
	default: // interiorKind
		s := slot(h, shift)
		child := n.sub.get(s)
		newChild := insert(child, h, shift+stride, newEntry, eq)
		return newInterior(n.sub.setPersistent(s, newChild))
	}
}

// collisionInsert returns a copy of a collision node with newEntry
// added, overriding any existing entry with the same key: entries
// within a collision node always stay deduped by key.
func collisionInsert[K comparable, V any](n *Node[K, V], newEntry *Node[K, V], eq Eq[K]) *Node[K, V] {
	entries := make([]*Node[K, V], 0, len(n.entries)+1)
	replaced := false
	for _, e := range n.entries {
		if eq(e.key, newEntry.key) {
			entries = append(entries, newEntry)
			replaced = true
		} else {
			entries = append(entries, e)
		}
	}
	if !replaced {
		entries = append(entries, newEntry)
	}
	return newCollision(n.hash, entries...)
}

// build constructs a fresh interior (or collision, if hash bits are
// exhausted) node routing two never-equal-key leaf/collision nodes a
// and b, whose hashes differ, recursing through shared slices.
func build[K comparable, V any](shift uint, a, b *Node[K, V]) *Node[K, V] {
	if shift >= maxShift {
		// All hash bits consumed without finding a differing slot;
		// only possible if a.hash == b.hash, which callers never pass
		// here (same-hash cases build a collision node directly).
		panic("node: build exhausted hash bits without resolving a slot conflict")
	}
	as, bs := slot(a.hash, shift), slot(b.hash, shift)
	if as == bs {
		child := build(shift+stride, a, b)
		d := newBitmapDispatch[K, V]()
		return newInterior[K, V](d.setMut(as, child))
	}
	d := newBitmapDispatch[K, V]()
	d.setMut(as, a)
	d.setMut(bs, b)
	return newInterior[K, V](d)
}

// Remove returns a new root with key removed, and the removed value.
// ok is false (and n returned unchanged) if key was absent.
func Remove[K comparable, V any](n *Node[K, V], h uint32, key K, eq Eq[K]) (root *Node[K, V], removed V, ok bool) {
	return remove(n, h, 0, key, eq)
}

func remove[K comparable, V any](n *Node[K, V], h uint32, shift uint, key K, eq Eq[K]) (*Node[K, V], V, bool) {
	var zero V
	if n == nil {
		return n, zero, false
	}
	switch n.kind {
	case leafKind:
		if !eq(n.key, key) {
			return n, zero, false
		}
		return nil, n.value, true
	case collisionKind:
		if n.hash != h {
			return n, zero, false
		}
		return collisionRemove(n, key, eq)
	default: // interiorKind
		s := slot(h, shift)
		child := n.sub.get(s)
		if child == nil {
			return n, zero, false
		}
		newChild, val, ok := remove(child, h, shift+stride, key, eq)
		if !ok {
			return n, zero, false
		}
		if newChild == nil {
			newSub := n.sub.unsetPersistent(s)
			if newSub.len() == 0 {
				return nil, val, true
			}
			return newInterior(newSub), val, true
		}
		return newInterior(n.sub.setPersistent(s, newChild)), val, true
	}
}

// collisionRemove returns the collision node (collapsed to a leaf if
// exactly one entry remains, or nil if somehow emptied) with key's
// entry removed.
func collisionRemove[K comparable, V any](n *Node[K, V], key K, eq Eq[K]) (*Node[K, V], V, bool) {
	var zero V
	idx := -1
	for i, e := range n.entries {
		if eq(e.key, key) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return n, zero, false
	}
	removedVal := n.entries[idx].value
	switch len(n.entries) {
	case 1:
		return nil, removedVal, true
	case 2:
		survivor := n.entries[1-idx]
		return survivor, removedVal, true
	default:
		entries := make([]*Node[K, V], 0, len(n.entries)-1)
		entries = append(entries, n.entries[:idx]...)
		entries = append(entries, n.entries[idx+1:]...)
		return newCollision(n.hash, entries...), removedVal, true
	}
}

// SymDiff folds a single (key, value) entry into n: cancel (remove)
// if the key is already present, otherwise insert.
func SymDiff[K comparable, V any](n *Node[K, V], h uint32, key K, value V, eq Eq[K]) *Node[K, V] {
	return symDiff(n, h, 0, newLeaf[K, V](h, key, value), eq)
}

func symDiff[K comparable, V any](n *Node[K, V], h uint32, shift uint, newEntry *Node[K, V], eq Eq[K]) *Node[K, V] {
	if n == nil {
		return newEntry
	}
	switch n.kind {
	case leafKind:
		if eq(n.key, newEntry.key) {
			return nil
		}
		if n.hash == h {
			return newCollision(h, n, newEntry)
		}
		return build(shift, n, newEntry)
	case collisionKind:
		if h != n.hash {
			return build(shift, n, newEntry)
		}
		for _, e := range n.entries {
			if eq(e.key, newEntry.key) {
				survivor, _, _ := collisionRemove(n, e.key, eq)
				return survivor
			}
		}
		entries := append(append([]*Node[K, V]{}, n.entries...), newEntry)
		return newCollision(n.hash, entries...)
	default: // interiorKind
		s := slot(h, shift)
		child := n.sub.get(s)
		newChild := symDiff(child, h, shift+stride, newEntry, eq)
		if newChild == nil {
			newSub := n.sub.unsetPersistent(s)
			if newSub.len() == 0 {
				return nil
			}
			return newInterior(newSub)
		}
		return newInterior(n.sub.setPersistent(s, newChild))
	}
}
