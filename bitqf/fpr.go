package bitqf

import "math"

// FalsePositiveRate estimates the false-positive rate of an index
// holding n entries with p = q+r significant fingerprint bits, using
// the Poisson approximation 1 - exp(-n / 2^p). It assumes a uniform,
// independent hash function and is a diagnostic only — this package
// never consults it internally.
func FalsePositiveRate(n uint64, q, r uint) float64 {
	p := q + r
	if p >= 64 {
		return 1 - math.Exp(-float64(n)/math.MaxUint64)
	}
	return 1 - math.Exp(-float64(n)/float64(uint64(1)<<p))
}

// FalsePositiveRate reports the current estimated false-positive rate
// of this index, using its own entry count, q and r.
func (ix *Index) FalsePositiveRate() float64 {
	return FalsePositiveRate(ix.entries, ix.qBits, ix.rBits)
}
