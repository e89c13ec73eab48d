package qf

import (
	"fmt"
)

// MaxLoadingFactor bounds the load factor used when a filter is sized
// from an expected entry count via Config.ExpectedEntries. It has no
// effect on a filter constructed with an explicit q via New: such a
// filter is a fixed-size table that reports Full once entries == size,
// by construction (quotient filters in this package never
// resize themselves; only Merge grows capacity, into a new filter).
const MaxLoadingFactor = 0.65

// minQBits is the smallest number of quotient bits this package will
// pick automatically when sizing from Config.ExpectedEntries.
const minQBits = 2

// defaultRBits is used by NewWithConfig when Config.RBits is left at
// zero. It is a reasonable default remainder width (roughly a 1/256
// false-positive rate at moderate load), not a requirement: callers who
// know the fingerprint width they want should always set Config.RBits.
const defaultRBits = 8

// Filter is a quotient filter: a table of m = 2^q slots, each holding a
// 3-bit metadata field (is_occupied, is_continuation, is_shifted) and an
// r-bit remainder, plus optionally an externally addressed value.
//
// A Filter must be constructed with New or NewWithConfig. The zero value
// is not usable.
type Filter struct {
	entries uint64
	size    uint64 // m = 2^qBits
	qBits   uint
	rBits   uint
	rMask   uint64
	table   Vector // elem_bits = rBits+3 wide, size entries
	storage Vector // optional, config.BitsOfStoragePerEntry wide, size entries
	config  Config
	allocfn VectorAllocateFn
}

// New allocates a quotient filter with 2^q slots and r-bit remainders.
// It fails if q == 0, r == 0, q+r > 64, or r+3 > 64 (a slot's metadata
// bits plus remainder must fit in one storage word).
func New(q, r uint) (*Filter, error) {
	return NewWithConfig(Config{qBitsOverride: q, RBits: r, qBitsSet: true})
}

// NewWithConfig allocates a quotient filter based on the supplied
// configuration. When c.ExpectedEntries is set, q is chosen by
// Config.QBits so that loading it to ExpectedEntries stays under
// MaxLoadingFactor; r defaults to defaultRBits when unset. Fails under
// the same conditions as New.
func NewWithConfig(c Config) (*Filter, error) {
	q := c.QBits()
	r := c.RBits
	if r == 0 && !c.qBitsSet {
		r = defaultRBits
	}
	if q == 0 || r == 0 || q+r > 64 || r+3 > 64 {
		return nil, fmt.Errorf("qf: invalid parameters q=%d r=%d (require q>0, r>0, q+r<=64, r+3<=64)", q, r)
	}

	f := &Filter{config: c}
	if c.BitPacked {
		f.allocfn = newPackedVector
	} else {
		f.allocfn = newUnpackedVector
	}
	f.initForBits(q, r)
	f.allocStorage()
	return f, nil
}

func (f *Filter) initForBits(q, r uint) {
	f.qBits = q
	f.rBits = r
	f.size = uint64(1) << q
	f.rMask = lowMask(r)
}

func (f *Filter) allocStorage() {
	f.table = f.allocfn(f.rBits+3, f.size)
	if f.config.BitsOfStoragePerEntry > 0 {
		f.storage = f.allocfn(f.config.BitsOfStoragePerEntry, f.size)
	}
}

func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// Len reports the number of fingerprints currently stored.
func (f *Filter) Len() uint64 {
	return f.entries
}

// QBits reports the number of quotient bits the filter was built with.
func (f *Filter) QBits() uint {
	return f.qBits
}

// RBits reports the number of remainder bits the filter was built with.
func (f *Filter) RBits() uint {
	return f.rBits
}

// TableSize reports the number of bytes a q/r bit-packed table occupies,
// ceil(m*(r+3)/8): m slots of r remainder bits plus 3 metadata bits each.
func TableSize(q, r uint) uint64 {
	bits := (uint64(1) << q) * uint64(r+3)
	bytes := bits / 8
	if bits%8 != 0 {
		bytes++
	}
	return bytes
}

// Clear resets the filter to empty without releasing its backing
// storage.
func (f *Filter) Clear() {
	f.entries = 0
	for i := uint64(0); i < f.size; i++ {
		f.table.Set(i, 0)
		if f.storage != nil {
			f.storage.Set(i, 0)
		}
	}
}

// Destroy releases the filter's backing storage. The filter must not be
// used afterward.
func (f *Filter) Destroy() {
	f.table = nil
	f.storage = nil
}

// countEntries walks the whole table counting non-empty slots; used by
// tests to validate the entries invariant.
func (f *Filter) countEntries() (count uint64) {
	for i := uint64(0); i < f.size; i++ {
		if !f.read(i).empty() {
			count++
		}
	}
	return
}

// slotData is the 3-bit metadata + r-bit remainder content of one slot.
// Bits 0-2 are is_occupied, is_continuation, is_shifted respectively;
// bits 3.. are the remainder.
type slotData uint64

const (
	occupiedMask     = slotData(1)
	continuationMask = slotData(1 << 1)
	shiftedMask      = slotData(1 << 2)
	bookkeepingMask  = slotData(0x7)
)

func (sd slotData) empty() bool { return (sd & bookkeepingMask) == 0 }

func (sd slotData) occupied() bool { return sd&occupiedMask != 0 }

func (sd slotData) setOccupied(on bool) slotData {
	if on {
		return sd | occupiedMask
	}
	return sd &^ occupiedMask
}

func (sd slotData) continuation() bool { return sd&continuationMask != 0 }

func (sd slotData) setContinuation(on bool) slotData {
	if on {
		return sd | continuationMask
	}
	return sd &^ continuationMask
}

func (sd slotData) shifted() bool { return sd&shiftedMask != 0 }

func (sd slotData) setShifted(on bool) slotData {
	if on {
		return sd | shiftedMask
	}
	return sd &^ shiftedMask
}

// isClusterStart reports whether this slot begins a new cluster: it is
// occupied and neither shifted nor a continuation of another run.
func (sd slotData) isClusterStart() bool {
	return sd.occupied() && !sd.continuation() && !sd.shifted()
}

// isRunStart reports whether this slot begins a run: it is not a
// continuation, and is either occupied or has been shifted here.
func (sd slotData) isRunStart() bool {
	return !sd.continuation() && (sd.occupied() || sd.shifted())
}

func (sd slotData) remainder() uint64 { return uint64(sd >> 3) }

func (sd slotData) withRemainder(r uint64) slotData {
	return (sd & bookkeepingMask) | slotData(r<<3)
}

func (f *Filter) read(slot uint64) slotData {
	return slotData(f.table.Get(slot))
}

func (f *Filter) write(slot uint64, sd slotData) {
	f.table.Set(slot, uint64(sd))
}

func incr(i, indexMask uint64) uint64 {
	return (i + 1) & indexMask
}

func decr(i, indexMask uint64) uint64 {
	return (i - 1) & indexMask
}

func (f *Filter) right(i *uint64) { *i = incr(*i, f.size-1) }
func (f *Filter) left(i *uint64)  { *i = decr(*i, f.size-1) }
