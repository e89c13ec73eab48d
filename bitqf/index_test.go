package bitqf

import (
	"fmt"
	"testing"

	murmur "github.com/aviddiviner/go-murmur"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotientfilter/qf"
)

// checkConsistency walks the whole table and verifies the same
// structural invariants qf.Filter's test helper checks: the entries
// count matches the number of non-empty slots, and every occupied
// canonical slot has exactly one discoverable run that doesn't overlap
// any other run.
func (ix *Index) checkConsistency() error {
	if ix.countEntries() != ix.entries {
		return fmt.Errorf("%d entries recorded, %d non-empty slots found", ix.entries, ix.countEntries())
	}

	usage := map[uint64]uint64{}
	for i := uint64(0); i < ix.size; i++ {
		if !ix.occupied.Test(uint(i)) {
			continue
		}
		runStart := ix.findRunIndex(i)
		s := runStart
		for {
			who, used := usage[s]
			if used {
				return fmt.Errorf("slot %d claimed by both quotient %d and %d", s, i, who)
			}
			usage[s] = i
			ix.right(&s)
			if !ix.continuation.Test(uint(s)) {
				break
			}
		}
	}
	if uint64(len(usage)) != ix.entries {
		return fmt.Errorf("runs account for %d entries, expected %d", len(usage), ix.entries)
	}
	return nil
}

func (ix *Index) eachHash(cb func(uint64)) {
	for it := ix.NewIterator(); !it.Done(); {
		cb(it.Next())
	}
}

func TestScenarioMixedQuotients(t *testing.T) {
	ix, err := New(3, 4)
	require.NoError(t, err)

	hashes := []uint64{0x00, 0x01, 0x10, 0x11, 0x20}
	for _, h := range hashes {
		assert.True(t, ix.Insert(h))
	}
	require.NoError(t, ix.checkConsistency())

	for _, h := range hashes {
		assert.True(t, ix.MayContain(h), "expected %#x to be present", h)
	}
	for _, h := range []uint64{0x02, 0x12, 0x21} {
		assert.False(t, ix.MayContain(h), "expected %#x to be absent", h)
	}
	assert.EqualValues(t, 5, ix.Len())
}

func TestScenarioDuplicateInsertIsIdempotent(t *testing.T) {
	ix, err := New(4, 4)
	require.NoError(t, err)

	assert.True(t, ix.Insert(0x00))
	assert.True(t, ix.Insert(0x00))
	assert.EqualValues(t, 1, ix.Len())
	assert.True(t, ix.MayContain(0x00))

	assert.True(t, ix.Remove(0x00))
	assert.False(t, ix.MayContain(0x00))
	assert.EqualValues(t, 0, ix.Len())
}

func TestScenarioLongRun(t *testing.T) {
	ix, err := New(4, 4)
	require.NoError(t, err)

	var hashes []uint64
	for r := uint64(0); r < 16; r++ {
		h := (uint64(3) << 4) | r
		hashes = append(hashes, h)
		assert.True(t, ix.Insert(h))
		require.NoError(t, ix.checkConsistency())
	}
	assert.EqualValues(t, 16, ix.Len())

	for i := len(hashes) - 1; i >= 0; i-- {
		assert.True(t, ix.Remove(hashes[i]))
		require.NoError(t, ix.checkConsistency())
	}
	assert.EqualValues(t, 0, ix.Len())
}

func TestScenarioIteratorRoundTrip(t *testing.T) {
	ix, err := New(6, 6)
	require.NoError(t, err)

	target := uint64(float64(ix.size) * 0.75)
	seen := map[uint64]bool{}
	for i := uint64(0); ix.Len() < target; i++ {
		h := murmur.MurmurHash64A([]byte(fmt.Sprintf("key-%d", i)), 0) & ((1 << 12) - 1)
		if seen[h] {
			continue
		}
		seen[h] = true
		ix.Insert(h)
	}
	require.NoError(t, ix.checkConsistency())

	var collected []uint64
	ix.eachHash(func(h uint64) { collected = append(collected, h) })
	assert.Len(t, collected, int(ix.Len()))

	fresh, err := New(6, 6)
	require.NoError(t, err)
	for _, h := range collected {
		fresh.Insert(h)
	}

	var a, b []uint64
	ix.eachHash(func(h uint64) { a = append(a, h) })
	fresh.eachHash(func(h uint64) { b = append(b, h) })
	assert.ElementsMatch(t, a, b)
}

func TestScenarioMergeDisjoint(t *testing.T) {
	a, err := New(3, 5)
	require.NoError(t, err)
	b, err := New(3, 5)
	require.NoError(t, err)

	for i := uint64(0); i < 8; i++ {
		a.Insert(i * 2)
		b.Insert(i*2 + 1)
	}
	require.NoError(t, a.checkConsistency())
	require.NoError(t, b.checkConsistency())

	out, err := Merge(a, b)
	require.NoError(t, err)
	require.NoError(t, out.checkConsistency())

	assert.EqualValues(t, a.Len()+b.Len(), out.Len())

	union := map[uint64]bool{}
	a.eachHash(func(h uint64) { union[h] = true })
	b.eachHash(func(h uint64) { union[h] = true })

	got := map[uint64]bool{}
	out.eachHash(func(h uint64) { got[h] = true })
	assert.Equal(t, union, got)
}

func TestScenarioFull(t *testing.T) {
	ix, err := New(1, 1)
	require.NoError(t, err)

	assert.True(t, ix.Insert(0b00))
	assert.True(t, ix.Insert(0b01))
	require.NoError(t, ix.checkConsistency())
	assert.EqualValues(t, ix.size, ix.Len())

	assert.False(t, ix.Insert(0b10))
	assert.False(t, ix.Insert(0b11))
}

func TestInsertContains(t *testing.T) {
	ix, err := New(8, 10)
	require.NoError(t, err)

	for i := uint64(0); i < 50; i++ {
		h := murmur.MurmurHash64A([]byte(fmt.Sprintf("item-%d", i)), 0) & lowMask(18)
		ix.Insert(h)
		assert.True(t, ix.MayContain(h))
	}
	require.NoError(t, ix.checkConsistency())
}

func TestRemovePreservesOthers(t *testing.T) {
	ix, err := New(6, 8)
	require.NoError(t, err)

	kept := map[uint64]bool{}
	for i := uint64(0); i < 40; i++ {
		h := murmur.MurmurHash64A([]byte(fmt.Sprintf("keep-%d", i)), 0) & lowMask(14)
		if ix.Insert(h) {
			kept[h] = true
		}
	}
	gone := murmur.MurmurHash64A([]byte("not-inserted"), 0) & lowMask(14)
	for kept[gone] {
		gone++
	}

	assert.True(t, ix.Remove(gone))
	require.NoError(t, ix.checkConsistency())
	for h := range kept {
		assert.True(t, ix.MayContain(h))
	}
}

func TestRemoveRejectsOversizeHash(t *testing.T) {
	ix, err := New(4, 4)
	require.NoError(t, err)

	ix.Insert(0x00)
	oversize := uint64(1) << (ix.qBits + ix.rBits)
	assert.False(t, ix.Remove(oversize))
	assert.EqualValues(t, 1, ix.Len())
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	_, err := New(0, 4)
	assert.Error(t, err)
	_, err = New(4, 0)
	assert.Error(t, err)
	_, err = New(4, 65)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	ix, err := New(4, 4)
	require.NoError(t, err)
	ix.Insert(0x00)
	ix.Insert(0x10)
	ix.Clear()
	assert.EqualValues(t, 0, ix.Len())
	assert.False(t, ix.MayContain(0x00))
	require.NoError(t, ix.checkConsistency())
}

func TestFalsePositiveRateIsInRange(t *testing.T) {
	r := FalsePositiveRate(100, 10, 8)
	assert.True(t, r >= 0 && r <= 1)
	assert.InDelta(t, 0.0, FalsePositiveRate(0, 10, 8), 1e-9)
}

func TestInsertWithValueRoundTrips(t *testing.T) {
	ix, err := NewWithConfig(Config{RBits: 8, BitsOfStoragePerEntry: 16, ExpectedEntries: 32})
	require.NoError(t, err)

	values := map[uint64]uint64{}
	for i := uint64(0); i < 20; i++ {
		h := murmur.MurmurHash64A([]byte(fmt.Sprintf("val-%d", i)), 0) & lowMask(ix.qBits+ix.rBits)
		if _, dup := values[h]; dup {
			continue
		}
		values[h] = i
		assert.True(t, ix.InsertWithValue(h, i))
	}

	for h, want := range values {
		found, got := ix.Lookup(h)
		assert.True(t, found)
		assert.Equal(t, want, got)
	}
}

// TestInsertBetweenRunsDoesNotCollideWithNextRunsHead exercises the
// case where a new entry sorts at the tail of its own run, immediately
// before another quotient's run head, and that head's remainder
// happens to equal the new entry's remainder. The insertion point sits
// one slot past the end of the scanning quotient's own run, so a
// remainder match there must never be treated as a duplicate of the
// entry being inserted.
func TestInsertBetweenRunsDoesNotCollideWithNextRunsHead(t *testing.T) {
	ix, err := New(3, 4)
	require.NoError(t, err)

	require.True(t, ix.Insert(0x32)) // q=3, r=2
	require.True(t, ix.Insert(0x33)) // q=3, r=3
	require.True(t, ix.Insert(0x57)) // q=5, r=7 (run head)
	require.NoError(t, ix.checkConsistency())

	assert.True(t, ix.Insert(0x37)) // q=3, r=7: collides in remainder with 0x57's head
	require.NoError(t, ix.checkConsistency())

	assert.EqualValues(t, 4, ix.Len())
	assert.True(t, ix.MayContain(0x32))
	assert.True(t, ix.MayContain(0x33))
	assert.True(t, ix.MayContain(0x37))
	assert.True(t, ix.MayContain(0x57))
}

// TestAgreesWithFilter drives the same hash stream through both
// representations and checks they agree on membership at every step,
// confirming bitqf.Index is observably equivalent to qf.Filter.
func TestAgreesWithFilter(t *testing.T) {
	ix, err := New(6, 6)
	require.NoError(t, err)
	f, err := qf.New(6, 6)
	require.NoError(t, err)

	inserted := map[uint64]bool{}
	var stream []uint64
	for i := uint64(0); i < 200; i++ {
		h := murmur.MurmurHash64A([]byte(fmt.Sprintf("agree-%d", i)), 0) & lowMask(12)
		stream = append(stream, h)
		ok := ix.Insert(h)
		assert.Equal(t, f.Insert(h), ok, "Insert(%#x)", h)
		if ok {
			inserted[h] = true
		}
		for _, g := range stream {
			assert.Equal(t, f.MayContain(g), ix.MayContain(g), "MayContain(%#x) after step %d", g, i)
		}
	}
	require.NoError(t, ix.checkConsistency())

	for h := range inserted {
		assert.True(t, ix.MayContain(h))
	}
	assert.EqualValues(t, len(inserted), ix.Len())
	assert.EqualValues(t, f.Len(), ix.Len())
}
