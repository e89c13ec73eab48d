package bitqf

// Insert stores the (q+r)-bit fingerprint derived from hash. It is
// idempotent and returns false iff the index is full (entries == size).
func (ix *Index) Insert(hash uint64) bool {
	return ix.InsertWithValue(hash, 0)
}

// InsertWithValue is like Insert, additionally storing value alongside
// the fingerprint when Config.BitsOfStoragePerEntry > 0.
//
// Because occupied lives in its own bitset, separate from continuation,
// shifted and the remainder, the shift cascade below never has to
// separate an "occupied" bit out of the entry being moved the way qf's
// packed-word representation must: writes to the continuation/shifted
// bitsets and the remainder array simply never touch the occupied
// bitset, so occupied naturally stays a pure property of the slot
// address.
func (ix *Index) InsertWithValue(hash uint64, value uint64) bool {
	if ix.entries >= ix.size {
		return false
	}

	fq := (hash >> ix.rBits) & (ix.size - 1)
	fr := hash & ix.rMask

	t := ix.read(fq)
	extendingRun := t.occupied
	ix.setOccupied(fq, true)

	if t.empty() {
		ix.entries++
		ix.remainders.set(fq, fr)
		if ix.storage != nil {
			ix.storage.set(fq, value)
		}
		return true
	}

	runStart := ix.findRunIndex(fq)
	s := runStart
	if extendingRun {
		for {
			cur := ix.read(s)
			if cur.remainder == fr {
				// Duplicate: idempotent insert, update value in place.
				if ix.storage != nil {
					ix.storage.set(s, value)
				}
				return true
			} else if cur.remainder > fr {
				break
			}
			ix.right(&s)
			if !ix.read(s).continuation {
				break
			}
		}
	}
	ix.entries++

	shifted := s != fq
	continuation := s != runStart

	for {
		oldRemainder := ix.remainders.get(s)
		wasContinuation := ix.continuation.Test(uint(s))
		wasEmpty := ix.read(s).empty()

		var oldValue uint64
		if ix.storage != nil {
			oldValue = ix.storage.get(s)
			ix.storage.set(s, value)
		}
		value = oldValue

		nextContinuation := wasContinuation
		if s == runStart && extendingRun {
			nextContinuation = true
		}

		ix.remainders.set(s, fr)
		ix.setContinuation(s, continuation)
		ix.setShifted(s, shifted)

		if wasEmpty {
			break
		}

		fr = oldRemainder
		continuation = nextContinuation
		shifted = true
		ix.right(&s)
	}
	return true
}
