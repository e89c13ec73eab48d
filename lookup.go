package qf

// MayContain reports whether hash's fingerprint may be present in the
// filter. There are no false negatives (for fingerprints that were
// validly inserted, provided hash fits within q+r bits);
// false positives are possible and bounded by FalsePositiveRate.
func (f *Filter) MayContain(hash uint64) bool {
	found, _ := f.Lookup(hash)
	return found
}

// Lookup is like MayContain, but also returns the associated value
// stored via InsertWithValue, when Config.BitsOfStoragePerEntry > 0.
func (f *Filter) Lookup(hash uint64) (bool, uint64) {
	fq := (hash >> f.rBits) & (f.size - 1)
	fr := hash & f.rMask

	if !f.read(fq).occupied() {
		return false, 0
	}

	s := f.findRunIndex(fq)
	for {
		sd := f.read(s)
		rem := sd.remainder()
		if rem == fr {
			var v uint64
			if f.storage != nil {
				v = f.storage.Get(s)
			}
			return true, v
		}
		if rem > fr {
			return false, 0
		}
		f.right(&s)
		if !f.read(s).continuation() {
			return false, 0
		}
	}
}
