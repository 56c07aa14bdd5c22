package node

import "math/bits"

// stride is the number of hash bits consumed at each trie level,
// giving a branching factor of 1<<stride.
const stride = 5

// fanout is the number of slots in one level's dispatch, 1<<stride.
const fanout = 1 << stride

// slotMask selects the low stride bits of a shifted hash.
const slotMask = fanout - 1

// maxShift is the first shift at or beyond the usable hash bits; once
// a recursive interior construction reaches it, no further slicing is
// possible. Two hashes that still agree there are equal, and equal
// hashes go into a collision node before interior construction starts,
// so build and buildMut panic if they ever reach it.
const maxShift = 32

// slot extracts the stride-bit group of h used at the given shift.
func slot(h uint32, shift uint) uint32 {
	return (h >> shift) & slotMask
}

// popcount returns the number of set bits below the given slot index,
// i.e. the slot's position in a popcount-compressed items slice.
func popcount(bitmap uint32, upTo uint32) int {
	return bits.OnesCount32(bitmap & (1<<upTo - 1))
}
