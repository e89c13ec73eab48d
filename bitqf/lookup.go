package bitqf

// MayContain reports whether hash's fingerprint may be present in the
// index. There are no false negatives for fingerprints that were
// validly inserted; false positives are possible.
func (ix *Index) MayContain(hash uint64) bool {
	found, _ := ix.Lookup(hash)
	return found
}

// Lookup is like MayContain, but also returns the associated value
// stored via InsertWithValue, when Config.BitsOfStoragePerEntry > 0.
func (ix *Index) Lookup(hash uint64) (bool, uint64) {
	fq := (hash >> ix.rBits) & (ix.size - 1)
	fr := hash & ix.rMask

	if !ix.occupied.Test(uint(fq)) {
		return false, 0
	}

	s := ix.findRunIndex(fq)
	for {
		rem := ix.remainders.get(s)
		if rem == fr {
			var v uint64
			if ix.storage != nil {
				v = ix.storage.get(s)
			}
			return true, v
		}
		if rem > fr {
			return false, 0
		}
		ix.right(&s)
		if !ix.continuation.Test(uint(s)) {
			return false, 0
		}
	}
}
