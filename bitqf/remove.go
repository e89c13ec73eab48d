package bitqf

// Remove deletes a previously inserted fingerprint. It returns false
// iff hash has bits set above position q+r-1 (caller error: an
// oversize hash would otherwise corrupt the index's idempotence);
// otherwise it returns true, including the no-op cases where the
// fingerprint was never present.
func (ix *Index) Remove(hash uint64) bool {
	if hash>>(ix.qBits+ix.rBits) != 0 {
		return false
	}

	fq := (hash >> ix.rBits) & (ix.size - 1)
	fr := hash & ix.rMask

	if !ix.occupied.Test(uint(fq)) || ix.entries == 0 {
		return true
	}

	start := ix.findRunIndex(fq)
	s := start
	var rem uint64
	for {
		rem = ix.remainders.get(s)
		if rem == fr {
			break
		} else if rem > fr {
			return true
		}
		ix.right(&s)
		if !ix.continuation.Test(uint(s)) {
			return true
		}
	}
	if rem != fr {
		return true
	}

	wasRunStart := ix.read(s).isRunStart()

	if wasRunStart {
		next := s
		ix.right(&next)
		if !ix.continuation.Test(uint(next)) {
			ix.setOccupied(fq, false)
		}
	}

	ix.deleteEntry(s, fq)

	if wasRunStart {
		next := ix.read(s)
		if next.continuation {
			ix.setContinuation(s, false)
		}
		if s == fq && ix.read(s).isRunStart() {
			ix.setShifted(s, false)
		}
	}

	ix.entries--
	return true
}

// deleteEntry removes the entry at s and slides the rest of its
// cluster back by one slot. quot tracks the canonical slot of whatever
// currently lives at s (as the slide progresses, entries from later
// runs arrive at s and quot must be advanced to match).
func (ix *Index) deleteEntry(s uint64, quot uint64) {
	currOccupied := ix.occupied.Test(uint(s))
	sp := s
	ix.right(&sp)
	orig := s

	for {
		next := ix.read(sp)

		if next.empty() || next.isClusterStart() || sp == orig {
			ix.clearSlot(s)
			if ix.storage != nil {
				ix.storage.set(s, 0)
			}
			return
		}

		nextShifted := next.shifted
		if next.isRunStart() {
			for {
				ix.right(&quot)
				if ix.occupied.Test(uint(quot)) {
					break
				}
			}
			if currOccupied && quot == s {
				nextShifted = false
			}
		}

		ix.remainders.set(s, next.remainder)
		ix.setContinuation(s, next.continuation)
		ix.setShifted(s, nextShifted)
		ix.setOccupied(s, currOccupied)
		if ix.storage != nil {
			ix.storage.set(s, ix.storage.get(sp))
		}

		s = sp
		ix.right(&sp)
		currOccupied = next.occupied
	}
}
