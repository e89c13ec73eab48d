package bitqf

// Iterator is a read-only cursor over an Index's stored fingerprints,
// yielded in cluster/run order. The index must not be mutated while an
// iterator is in use.
type Iterator struct {
	ix       *Index
	index    uint64
	quotient uint64
	visited  uint64
}

// NewIterator returns an iterator positioned at the first stored
// fingerprint, or already Done if the index is empty.
func (ix *Index) NewIterator() *Iterator {
	it := &Iterator{ix: ix, visited: ix.entries}
	if ix.entries == 0 {
		return it
	}

	var start uint64
	for start = 0; start < ix.size; start++ {
		if ix.read(start).isClusterStart() {
			break
		}
	}
	it.visited = 0
	it.index = start
	return it
}

// Done reports whether every stored fingerprint has been yielded.
func (it *Iterator) Done() bool {
	return it.visited == it.ix.entries
}

// Next returns the next (q+r)-bit fingerprint in cluster order. Calling
// Next when Done is true panics.
func (it *Iterator) Next() uint64 {
	hash, _ := it.next()
	return hash
}

// NextValue is like Next, but also returns the value associated with
// the fingerprint (see InsertWithValue), when storage is configured.
func (it *Iterator) NextValue() (uint64, uint64) {
	hash, slot := it.next()
	var v uint64
	if it.ix.storage != nil {
		v = it.ix.storage.get(slot)
	}
	return hash, v
}

// next does the real walking and also reports the slot the yielded
// fingerprint was read from, so NextValue can address the storage
// vector at the right index.
func (it *Iterator) next() (hash uint64, slot uint64) {
	ix := it.ix
	for !it.Done() {
		elt := ix.read(it.index)

		if elt.isClusterStart() {
			it.quotient = it.index
		} else if elt.isRunStart() {
			quot := it.quotient
			for {
				ix.right(&quot)
				if ix.occupied.Test(uint(quot)) {
					break
				}
			}
			it.quotient = quot
		}

		slot = it.index
		ix.right(&it.index)

		if !elt.empty() {
			hash = (it.quotient << ix.rBits) | elt.remainder
			it.visited++
			return hash, slot
		}
	}
	panic("bitqf: Next called on exhausted iterator")
}
