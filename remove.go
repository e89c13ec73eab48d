package qf

// Remove deletes a previously inserted fingerprint. It returns false
// iff hash has bits set above position q+r-1 (caller error: an
// oversize hash would otherwise corrupt the filter's idempotence);
// otherwise it returns true, including the no-op cases where the
// fingerprint was never present.
func (f *Filter) Remove(hash uint64) bool {
	if hash>>(f.qBits+f.rBits) != 0 {
		return false
	}

	fq := (hash >> f.rBits) & (f.size - 1)
	fr := hash & f.rMask
	t := f.read(fq)

	if !t.occupied() || f.entries == 0 {
		return true
	}

	start := f.findRunIndex(fq)
	s := start
	var rem uint64
	for {
		sd := f.read(s)
		rem = sd.remainder()
		if rem == fr {
			break
		} else if rem > fr {
			return true
		}
		f.right(&s)
		if !f.read(s).continuation() {
			return true
		}
	}
	if rem != fr {
		return true
	}

	kill := f.read(s)
	wasRunStart := kill.isRunStart()

	if wasRunStart {
		next := f.incrRead(s)
		if !next.continuation() {
			f.write(fq, t.setOccupied(false))
		}
	}

	f.deleteEntry(s, fq)

	if wasRunStart {
		next := f.read(s)
		updated := next
		if next.continuation() {
			updated = updated.setContinuation(false)
		}
		if s == fq && updated.isRunStart() {
			updated = updated.setShifted(false)
		}
		if updated != next {
			f.write(s, updated)
		}
	}

	f.entries--
	return true
}

func (f *Filter) incrRead(s uint64) slotData {
	f.right(&s)
	return f.read(s)
}

// deleteEntry removes the entry at s and slides the rest of its cluster
// back by one slot. quot tracks the canonical slot of
// whatever currently lives at s (as the slide progresses, entries from
// later runs arrive at s and quot must be advanced to match).
func (f *Filter) deleteEntry(s uint64, quot uint64) {
	curr := f.read(s)
	sp := s
	f.right(&sp)
	orig := s

	for {
		next := f.read(sp)
		currOccupied := curr.occupied()

		if next.empty() || next.isClusterStart() || sp == orig {
			f.write(s, 0)
			if f.storage != nil {
				f.storage.Set(s, 0)
			}
			return
		}

		updated := next
		if next.isRunStart() {
			for {
				quot = incr(quot, f.size-1)
				if f.read(quot).occupied() {
					break
				}
			}
			if currOccupied && quot == s {
				updated = updated.setShifted(false)
			}
		}

		if currOccupied {
			updated = updated.setOccupied(true)
		} else {
			updated = updated.setOccupied(false)
		}
		f.write(s, updated)
		if f.storage != nil {
			f.storage.Set(s, f.storage.Get(sp))
		}

		s = sp
		f.right(&sp)
		curr = next
	}
}
