package bitqf

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Config sizes a bitqf.Index the same way qf.Config sizes a qf.Filter.
type Config struct {
	// RBits is the number of remainder bits stored per slot.
	RBits uint
	// BitsOfStoragePerEntry, when non-zero, allocates an opaque value
	// alongside every slot (see Index.InsertWithValue).
	BitsOfStoragePerEntry uint
	// ExpectedEntries, when set, picks q so that loading the index to
	// this many entries stays under MaxLoadingFactor.
	ExpectedEntries uint64

	qBitsOverride uint
	qBitsSet      bool
}

// MaxLoadingFactor mirrors qf.MaxLoadingFactor.
const MaxLoadingFactor = 0.65

const minQBits = 2
const defaultRBits = 8

// QBits returns the quotient bit count this Config implies.
func (c *Config) QBits() uint {
	if c.qBitsSet {
		return c.qBitsOverride
	}
	x := uint(1)
	bits := uint(0)
	for (float64(x) * MaxLoadingFactor) < float64(c.ExpectedEntries) {
		x <<= 1
		bits++
	}
	if bits < minQBits {
		bits = minQBits
	}
	return bits
}

// BucketCount is 2^QBits().
func (c *Config) BucketCount() uint {
	return 1 << c.QBits()
}

// Index is a quotient filter whose metadata bits are stored in three
// independent bitsets rather than packed alongside the remainder. See
// the package doc for why this representation exists alongside qf.Filter.
type Index struct {
	entries uint64
	size    uint64
	qBits   uint
	rBits   uint
	rMask   uint64

	occupied     *bitset.BitSet
	continuation *bitset.BitSet
	shifted      *bitset.BitSet
	remainders   *packedVector
	storage      *packedVector

	config Config
}

// New allocates an Index with 2^q slots and r-bit remainders. It fails
// if q == 0, r == 0, q+r > 64, or r > 64: unlike qf.Filter there is no
// r+3 bound, because metadata lives in its own bitsets rather than
// alongside the remainder, so only the remainder word itself must fit
// in 64 bits.
func New(q, r uint) (*Index, error) {
	return NewWithConfig(Config{qBitsOverride: q, RBits: r, qBitsSet: true})
}

// NewWithConfig is Index's equivalent of qf.NewWithConfig.
func NewWithConfig(c Config) (*Index, error) {
	q := c.QBits()
	r := c.RBits
	if r == 0 && !c.qBitsSet {
		r = defaultRBits
	}
	if q == 0 || r == 0 || q+r > 64 || r > 64 {
		return nil, fmt.Errorf("bitqf: invalid parameters q=%d r=%d (require q>0, r>0, q+r<=64, r<=64)", q, r)
	}

	size := uint64(1) << q
	ix := &Index{
		size:         size,
		qBits:        q,
		rBits:        r,
		rMask:        lowMask(r),
		occupied:     bitset.New(uint(size)),
		continuation: bitset.New(uint(size)),
		shifted:      bitset.New(uint(size)),
		remainders:   newPackedVector(r, size),
		config:       c,
	}
	if c.BitsOfStoragePerEntry > 0 {
		ix.storage = newPackedVector(c.BitsOfStoragePerEntry, size)
	}
	return ix, nil
}

// Len reports the number of fingerprints currently stored.
func (ix *Index) Len() uint64 { return ix.entries }

// QBits reports the number of quotient bits.
func (ix *Index) QBits() uint { return ix.qBits }

// RBits reports the number of remainder bits.
func (ix *Index) RBits() uint { return ix.rBits }

// HasStorage reports whether an associated value is configured.
func (ix *Index) HasStorage() bool { return ix.storage != nil }

// Clear resets the index to empty without releasing its backing
// storage.
func (ix *Index) Clear() {
	ix.entries = 0
	ix.occupied.ClearAll()
	ix.continuation.ClearAll()
	ix.shifted.ClearAll()
	for i := range ix.remainders.word {
		ix.remainders.word[i] = 0
	}
	if ix.storage != nil {
		for i := range ix.storage.word {
			ix.storage.word[i] = 0
		}
	}
}

// Destroy releases the index's backing storage. The index must not be
// used afterward.
func (ix *Index) Destroy() {
	ix.occupied, ix.continuation, ix.shifted = nil, nil, nil
	ix.remainders, ix.storage = nil, nil
}

// slot is the decoded metadata + remainder content of one table
// position, the bitqf equivalent of qf's packed slotData.
type slot struct {
	occupied, continuation, shifted bool
	remainder                       uint64
}

func (s slot) empty() bool { return !s.occupied && !s.continuation && !s.shifted }

func (s slot) isClusterStart() bool { return s.occupied && !s.continuation && !s.shifted }

func (s slot) isRunStart() bool { return !s.continuation && (s.occupied || s.shifted) }

func (ix *Index) read(i uint64) slot {
	return slot{
		occupied:     ix.occupied.Test(uint(i)),
		continuation: ix.continuation.Test(uint(i)),
		shifted:      ix.shifted.Test(uint(i)),
		remainder:    ix.remainders.get(i),
	}
}

func (ix *Index) setOccupied(i uint64, on bool)     { ix.occupied.SetTo(uint(i), on) }
func (ix *Index) setContinuation(i uint64, on bool) { ix.continuation.SetTo(uint(i), on) }
func (ix *Index) setShifted(i uint64, on bool)      { ix.shifted.SetTo(uint(i), on) }

func (ix *Index) clearSlot(i uint64) {
	ix.occupied.Clear(uint(i))
	ix.continuation.Clear(uint(i))
	ix.shifted.Clear(uint(i))
	ix.remainders.set(i, 0)
}

func (ix *Index) right(i *uint64) { *i = (*i + 1) & (ix.size - 1) }
func (ix *Index) left(i *uint64)  { *i = (*i - 1) & (ix.size - 1) }

// countEntries walks the table counting non-empty slots.
func (ix *Index) countEntries() (count uint64) {
	for i := uint64(0); i < ix.size; i++ {
		if !ix.read(i).empty() {
			count++
		}
	}
	return
}
