package qf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedLoading(t *testing.T) {
	c := Config{ExpectedEntries: 128}
	// QBits() picks q such that 2^q * 0.65 >= 128: q=8 (256 buckets).
	assert.EqualValues(t, 256, c.BucketCount())
	assert.InDelta(t, 50., c.ExpectedLoading(), 1e-9)
}

func TestQBitsFloorsAtMinimum(t *testing.T) {
	c := Config{ExpectedEntries: 1}
	assert.GreaterOrEqual(t, c.QBits(), uint(minQBits))
}

func TestBytesRequired(t *testing.T) {
	c := Config{ExpectedEntries: 5500000, RBits: 4, BitsOfStoragePerEntry: 4}
	assert.Greater(t, c.BytesRequired(), uint(0))
}

func TestNewUsesExactQBitsFromNew(t *testing.T) {
	f, err := New(5, 5)
	assert.NoError(t, err)
	assert.EqualValues(t, 5, f.QBits())
	assert.EqualValues(t, 5, f.RBits())
	assert.EqualValues(t, 32, f.size)
}
