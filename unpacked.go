package qf

import "fmt"

// unpackedVector stores one uint64 per slot, trading space for the
// absence of any shifting/masking on Get/Set. A legitimate alternative
// to packedVector for small filters or when CPU time matters more than
// memory.
type unpackedVector struct {
	mask uint64
	word []uint64
}

var _ Vector = (*unpackedVector)(nil)

// newUnpackedVector allocates one word per slot. Matches
// VectorAllocateFn.
func newUnpackedVector(bits uint, size uint64) Vector {
	if bits > bitsPerWord {
		panic(fmt.Sprintf("qf: element width %d exceeds word size %d", bits, bitsPerWord))
	}
	return &unpackedVector{mask: lowMask(bits), word: make([]uint64, size)}
}

func (v *unpackedVector) Get(ix uint64) uint64 { return v.word[ix] }

func (v *unpackedVector) Set(ix uint64, val uint64) { v.word[ix] = val & v.mask }

func (v *unpackedVector) Swap(ix uint64, val uint64) (old uint64) {
	old, v.word[ix] = v.word[ix], val&v.mask
	return
}
