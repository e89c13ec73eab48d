package qf

// Insert reports fullness as a plain bool rather than an error: there
// is no in-band exception, Insert simply returns false once the table
// is at capacity.

// Insert stores the (q+r)-bit fingerprint derived from hash. It is
// idempotent: inserting the same fingerprint twice leaves the filter
// unchanged. Returns false iff the filter is full (entries == size).
func (f *Filter) Insert(hash uint64) bool {
	return f.InsertWithValue(hash, 0)
}

// InsertWithValue is like Insert, but additionally stores value
// alongside the fingerprint when the filter was configured with
// Config.BitsOfStoragePerEntry > 0. value is ignored (but still
// accepted, for a uniform signature) when no storage vector was
// configured.
func (f *Filter) InsertWithValue(hash uint64, value uint64) bool {
	if f.entries >= f.size {
		return false
	}

	fq := (hash >> f.rBits) & (f.size - 1)
	fr := hash & f.rMask

	t := f.read(fq)

	// Fast path: canonical slot is empty.
	if t.empty() {
		f.write(fq, slotData(0).setOccupied(true).withRemainder(fr))
		if f.storage != nil {
			f.storage.Set(fq, value)
		}
		f.entries++
		return true
	}

	extendingRun := t.occupied()
	if !extendingRun {
		f.write(fq, t.setOccupied(true))
	}

	start := f.findRunIndex(fq)
	s := start

	if extendingRun {
		sd := f.read(s)
		for {
			rem := sd.remainder()
			if rem == fr {
				// Duplicate: idempotent insert, update value in place.
				if f.storage != nil {
					f.storage.Set(s, value)
				}
				return true
			} else if rem > fr {
				break
			}
			f.right(&s)
			sd = f.read(s)
			if !sd.continuation() {
				break
			}
		}
	}

	entry := slotData(0).withRemainder(fr)
	if s == start && extendingRun {
		// The run's current head becomes a continuation.
		head := f.read(start)
		f.write(start, head.setContinuation(true))
	} else if s != start {
		entry = entry.setContinuation(true)
	}
	if s != fq {
		entry = entry.setShifted(true)
	}

	f.insertInto(s, entry, value)
	f.entries++
	return true
}

// insertInto shifts a cascade of entries (and, if configured, their
// associated values) forward by one slot starting at s, writing entry
// into the vacated spot. is_occupied is a property of the slot address,
// not the shifted entry: each step moves the displaced entry's occupied
// bit onto the entry written into that same slot, so the slot keeps it,
// and the displaced entry moves on without it.
func (f *Filter) insertInto(s uint64, entry slotData, value uint64) {
	for {
		prev := f.read(s)
		empty := prev.empty()
		if !empty {
			prev = prev.setShifted(true)
			if prev.occupied() {
				entry = entry.setOccupied(true)
				prev = prev.setOccupied(false)
			}
		}
		f.write(s, entry)
		if f.storage != nil {
			value = f.storage.Swap(s, value)
		}
		if empty {
			return
		}
		entry = prev
		f.right(&s)
	}
}
