package qf

// Iterator is a read-only cursor over a Filter's stored fingerprints,
// yielded in cluster/run order. The filter must not be
// mutated while an iterator is in use.
type Iterator struct {
	f        *Filter
	index    uint64
	quotient uint64
	visited  uint64
}

// NewIterator returns an iterator positioned at the first stored
// fingerprint, or already Done if the filter is empty.
func (f *Filter) NewIterator() *Iterator {
	it := &Iterator{f: f, visited: f.entries}
	if f.entries == 0 {
		return it
	}

	var start uint64
	for start = 0; start < f.size; start++ {
		if f.read(start).isClusterStart() {
			break
		}
	}
	it.visited = 0
	it.index = start
	return it
}

// Done reports whether every stored fingerprint has been yielded.
func (it *Iterator) Done() bool {
	return it.visited == it.f.entries
}

// Next returns the next (q+r)-bit fingerprint in cluster order. Calling
// Next when Done is true panics, mirroring the reference
// implementation's documented precondition.
func (it *Iterator) Next() uint64 {
	hash, _ := it.next()
	return hash
}

// NextValue is like Next, but also returns the value associated with
// the fingerprint (see InsertWithValue), when storage is configured.
func (it *Iterator) NextValue() (uint64, uint64) {
	hash, slot := it.next()
	var v uint64
	if it.f.storage != nil {
		v = it.f.storage.Get(slot)
	}
	return hash, v
}

// next does the real walking and also reports the slot the yielded
// fingerprint was read from, so NextValue can address the storage
// vector at the right index.
func (it *Iterator) next() (hash uint64, slot uint64) {
	f := it.f
	for !it.Done() {
		elt := f.read(it.index)

		if elt.isClusterStart() {
			it.quotient = it.index
		} else if elt.isRunStart() {
			quot := it.quotient
			for {
				f.right(&quot)
				if f.read(quot).occupied() {
					break
				}
			}
			it.quotient = quot
		}

		slot = it.index
		it.index = incr(it.index, f.size-1)

		if !elt.empty() {
			hash = (it.quotient << f.rBits) | elt.remainder()
			it.visited++
			return hash, slot
		}
	}
	panic("qf: Next called on exhausted iterator")
}
