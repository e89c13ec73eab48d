package qf

import "fmt"

// Config controls how a quotient filter is sized and represented. The
// zero value is valid: it yields a small filter (minQBits quotient bits,
// defaultRBits remainder bits) sized for no particular expected load.
type Config struct {
	// RBits is the number of remainder bits stored per slot. Wider
	// remainders lower the false-positive rate at the cost of space;
	// see FalsePositiveRate. Required to be > 0 in the end
	// (NewWithConfig fills in defaultRBits when this is left zero; New
	// rejects r == 0).
	RBits uint
	// BitsOfStoragePerEntry, when non-zero, allocates an additional
	// opaque value (truncated to this many bits) alongside every slot,
	// addressable via Filter.InsertWithValue / Filter.Lookup. This
	// is not part of the quotient filter's membership contract; it is
	// a caller convenience for attaching e.g. a row id to a key.
	BitsOfStoragePerEntry uint
	// BitPacked selects the table representation: true packs slots
	// tightly into a []uint64 (smaller, slightly slower); false stores
	// one uint64 per slot (larger, avoids bit-shifting on every
	// access). See packedVector and unpackedVector.
	BitPacked bool
	// ExpectedEntries, when set, is used to automatically pick a
	// quotient bit count that keeps the filter under MaxLoadingFactor
	// once it holds this many entries. Ignored if qBitsOverride is set
	// (i.e. when the Config was produced by New, which wants an exact
	// q rather than a derived one).
	ExpectedEntries uint64

	qBitsOverride uint
	qBitsSet      bool
}

// ExpectedLoading reports the expected percentage loading given
// ExpectedEntries and the q that QBits would choose.
func (c *Config) ExpectedLoading() float64 {
	return 100. * float64(c.ExpectedEntries) / float64(c.BucketCount())
}

// BytesRequired reports the approximate amount of space required to
// represent the quotient filter in RAM, assuming bit packing.
func (c *Config) BytesRequired() uint {
	r := c.RBits
	if r == 0 {
		r = defaultRBits
	}
	bitsPerEntry := r + 3 + c.BitsOfStoragePerEntry
	return c.BucketCount() * bitsPerEntry / 8
}

// BucketCount reports the number of hash buckets (slots) that will be
// allocated, 2^QBits().
func (c *Config) BucketCount() uint {
	return 1 << c.QBits()
}

// QBits returns the number of quotient bits a filter built from this
// Config will use: either the exact value requested (via New), or one
// derived from ExpectedEntries so that loading stays under
// MaxLoadingFactor, floored at minQBits.
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

// ExplainIndent prints an indented summary of the configuration to
// stdout: chosen q, derived remainder width, metadata overhead and
// expected storage size.
func (c *Config) ExplainIndent(indent string) {
	r := c.RBits
	if r == 0 {
		r = defaultRBits
	}
	fmt.Printf("%s%2d bits configured for quotient (%d buckets)\n", indent, c.QBits(), c.BucketCount())
	fmt.Printf("%s%2d bits configured for remainder\n", indent, r)
	fmt.Printf("%s%2d bits metadata per bucket\n", indent, 3)
	fmt.Printf("%s%2d bits external storage\n", indent, c.BitsOfStoragePerEntry)
	fmt.Printf("%s   %s storage size expected\n", indent, humanBytes(c.BytesRequired()))
}

// Explain prints a summary of the configuration to stdout.
func (c *Config) Explain() {
	c.ExplainIndent("")
}

func humanBytes(bytes uint) string {
	v := float64(bytes)
	suffix := "bytes"
	if v > 1024 {
		v /= 1024.
		suffix = "KB"
		if v > 1024. {
			suffix = "MB"
			v /= 1024.0
			if v > 1024. {
				suffix = "GB"
				v /= 1024.
			}
		}
	}
	if v < 10 {
		return fmt.Sprintf("%0.2f %s", v, suffix)
	} else if v < 100 {
		return fmt.Sprintf("%0.1f %s", v, suffix)
	}
	return fmt.Sprintf("%0.0f %s", v, suffix)
}
