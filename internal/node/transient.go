package node

// NewEditToken returns a fresh, unique edit token identifying one
// transient scope. Grounded on ctrie's *generation; here a plain
// pointer identity suffices because a transient is confined to a
// single thread, so no CAS is required to claim ownership.
func NewEditToken() *EditToken { return newEditToken() }

// InsertMut inserts key/value into n in place wherever n's nodes are
// already owned by token, cloning (and claiming ownership of) any node
// along the path that is still shared. Returns the (possibly new)
// root; callers must re-seat their root reference to the result.
func InsertMut[K comparable, V any](n *Node[K, V], token *editToken, h uint32, key K, value V, eq Eq[K]) *Node[K, V] {
	newEntry := newLeaf[K, V](h, key, value)
	newEntry.owner = token
	return insertMut(n, token, h, 0, newEntry, eq)
}

func insertMut[K comparable, V any](n *Node[K, V], token *editToken, h uint32, shift uint, newEntry *Node[K, V], eq Eq[K]) *Node[K, V] {
	if n == nil {
		return newEntry
	}
	switch n.kind {
	case leafKind:
		if eq(n.key, newEntry.key) {
			if n.owner == token {
				n.value = newEntry.value
				return n
			}
			return newEntry
		}
		if n.hash == h {
			c := newCollision(h, n, newEntry)
			c.owner = token
			return c
		}
		return buildMut(token, shift, n, newEntry)
	case collisionKind:
		if h != n.hash {
			return buildMut(token, shift, n, newEntry)
		}
		return collisionInsertMut(n, token, newEntry, eq)
	default: // interiorKind
		s := slot(h, shift)
		child := n.sub.get(s)
		newChild := insertMut(child, token, h, shift+stride, newEntry, eq)
		if n.owner == token {
			n.sub = n.sub.setMut(s, newChild)
			return n
		}
		sub := n.sub.cloned().setMut(s, newChild)
		nn := newInterior(sub)
		nn.owner = token
		return nn
	}
}

func collisionInsertMut[K comparable, V any](n *Node[K, V], token *editToken, newEntry *Node[K, V], eq Eq[K]) *Node[K, V] {
	idx := -1
	for i, e := range n.entries {
		if eq(e.key, newEntry.key) {
			idx = i
			break
		}
	}
	owned := n.owner == token

	if idx >= 0 {
		if owned {
			n.entries[idx] = newEntry
			return n
		}
		entries := append([]*Node[K, V](nil), n.entries...)
		entries[idx] = newEntry
		c := newCollision(n.hash, entries...)
		c.owner = token
		return c
	}

	if owned {
		n.entries = append(n.entries, newEntry)
		return n
	}
	entries := append(append([]*Node[K, V]{}, n.entries...), newEntry)
	c := newCollision(n.hash, entries...)
	c.owner = token
	return c
}

// buildMut is build's transient counterpart: every node it allocates
// is freshly owned by token, since nothing else can reference it yet.
func buildMut[K comparable, V any](token *editToken, shift uint, a, b *Node[K, V]) *Node[K, V] {
	if shift >= maxShift {
		panic("node: build exhausted hash bits without resolving a slot conflict")
	}
	as, bs := slot(a.hash, shift), slot(b.hash, shift)
	if as == bs {
		child := buildMut(token, shift+stride, a, b)
		d := newBitmapDispatch[K, V]()
		d.setMut(as, child)
		n := newInterior[K, V](d)
		n.owner = token
		return n
	}
	d := newBitmapDispatch[K, V]()
	d.setMut(as, a)
	d.setMut(bs, b)
	n := newInterior[K, V](d)
	n.owner = token
	return n
}

// RemoveMut removes key from n in place wherever possible, returning
// the (possibly new) root, the removed value, and whether key was
// present.
func RemoveMut[K comparable, V any](n *Node[K, V], token *editToken, h uint32, key K, eq Eq[K]) (*Node[K, V], V, bool) {
	return removeMut(n, token, h, 0, key, eq)
}

func removeMut[K comparable, V any](n *Node[K, V], token *editToken, h uint32, shift uint, key K, eq Eq[K]) (*Node[K, V], V, bool) {
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
		return collisionRemoveMut(n, token, key, eq)
	default: // interiorKind
		s := slot(h, shift)
		child := n.sub.get(s)
		if child == nil {
			return n, zero, false
		}
		newChild, val, ok := removeMut(child, token, h, shift+stride, key, eq)
		if !ok {
			return n, zero, false
		}
		owned := n.owner == token
		if newChild == nil {
			if owned {
				n.sub.unsetMut(s)
				if n.sub.len() == 0 {
					return nil, val, true
				}
				return n, val, true
			}
			newSub := n.sub.unsetPersistent(s)
			if newSub.len() == 0 {
				return nil, val, true
			}
			nn := newInterior(newSub)
			nn.owner = token
			return nn, val, true
		}
		if owned {
			n.sub = n.sub.setMut(s, newChild)
			return n, val, true
		}
		sub := n.sub.cloned().setMut(s, newChild)
		nn := newInterior(sub)
		nn.owner = token
		return nn, val, true
	}
}

func collisionRemoveMut[K comparable, V any](n *Node[K, V], token *editToken, key K, eq Eq[K]) (*Node[K, V], V, bool) {
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
	if len(n.entries) == 2 {
		return n.entries[1-idx], removedVal, true
	}
	if n.owner == token {
		n.entries = append(n.entries[:idx], n.entries[idx+1:]...)
		return n, removedVal, true
	}
	entries := make([]*Node[K, V], 0, len(n.entries)-1)
	entries = append(entries, n.entries[:idx]...)
	entries = append(entries, n.entries[idx+1:]...)
	c := newCollision(n.hash, entries...)
	c.owner = token
	return c, removedVal, true
}

// SymDiffMut is SymDiff's transient counterpart.
func SymDiffMut[K comparable, V any](n *Node[K, V], token *editToken, h uint32, key K, value V, eq Eq[K]) *Node[K, V] {
	newEntry := newLeaf[K, V](h, key, value)
	newEntry.owner = token
	return symDiffMut(n, token, h, 0, newEntry, eq)
}

func symDiffMut[K comparable, V any](n *Node[K, V], token *editToken, h uint32, shift uint, newEntry *Node[K, V], eq Eq[K]) *Node[K, V] {
	if n == nil {
		return newEntry
	}
	switch n.kind {
	case leafKind:
		if eq(n.key, newEntry.key) {
			return nil
		}
		if n.hash == h {
			c := newCollision(h, n, newEntry)
			c.owner = token
			return c
		}
		return buildMut(token, shift, n, newEntry)
	case collisionKind:
		if h != n.hash {
			return buildMut(token, shift, n, newEntry)
		}
		for _, e := range n.entries {
			if eq(e.key, newEntry.key) {
				survivor, _, _ := collisionRemoveMut(n, token, e.key, eq)
				return survivor
			}
		}
		if n.owner == token {
			n.entries = append(n.entries, newEntry)
			return n
		}
		entries := append(append([]*Node[K, V]{}, n.entries...), newEntry)
		c := newCollision(n.hash, entries...)
		c.owner = token
		return c
	default: // interiorKind
		s := slot(h, shift)
		child := n.sub.get(s)
		newChild := symDiffMut(child, token, h, shift+stride, newEntry, eq)
		owned := n.owner == token
		if newChild == nil {
			if owned {
				n.sub.unsetMut(s)
				if n.sub.len() == 0 {
					return nil
				}
				return n
			}
			newSub := n.sub.unsetPersistent(s)
			if newSub.len() == 0 {
				return nil
			}
			nn := newInterior(newSub)
			nn.owner = token
			return nn
		}
		if owned {
			n.sub = n.sub.setMut(s, newChild)
			return n
		}
		sub := n.sub.cloned().setMut(s, newChild)
		nn := newInterior(sub)
		nn.owner = token
		return nn
	}
}
