package node

import "iter"

// All returns a lazy traversal of every (key, value) pair reachable
// from n, in an unspecified but stable-for-a-given-tree order. Grounded
// on anyhash.Map.All's use of iter.Seq2, adapted to walk this engine's
// own node taxonomy instead of a single builtin map.
func All[K comparable, V any](n *Node[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		walk(n, yield)
	}
}

// walk performs a depth-first traversal of n, calling yield for every
// leaf entry it finds, stopping as soon as yield returns false.
// Grounded on ctrie's stack-based Iter, simplified to a direct
// recursion since this engine's trees are shallow (bounded by 32-bit
// hashes) and unbounded goroutine-visible mutation is not a concern
// here the way it is for ctrie's concurrent structure.
func walk[K comparable, V any](n *Node[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	switch {
	case n.IsLeaf():
		return yield(n.key, n.value)
	case n.IsCollision():
		for _, e := range n.entries {
			if !yield(e.key, e.value) {
				return false
			}
		}
		return true
	case n.IsInterior():
		ok := true
		n.sub.each(func(_ uint32, child *Node[K, V]) bool {
			ok = walk(child, yield)
			return ok
		})
		return ok
	}
	return true
}

// Count returns the number of leaf entries reachable from n. It walks
// the whole tree; callers that already track a running size should
// prefer that instead of calling Count.
func Count[K comparable, V any](n *Node[K, V]) int {
	if n == nil {
		return 0
	}
	switch {
	case n.IsLeaf():
		return 1
	case n.IsCollision():
		return len(n.entries)
	case n.IsInterior():
		total := 0
		n.sub.each(func(_ uint32, child *Node[K, V]) bool {
			total += Count(child)
			return true
		})
		return total
	}
	return 0
}
