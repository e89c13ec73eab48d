package bitqf

// findRunIndex locates the first slot of the run belonging to quotient
// fq: walk left over shifted slots to find the start of the cluster,
// then walk right one run at a time until the run for fq is reached.
// It is bitqf's equivalent of qf's findRunIndex, addressing the
// occupied/continuation/shifted bitsets directly instead of a packed
// slot word.
func (ix *Index) findRunIndex(fq uint64) uint64 {
	b := fq
	for ix.shifted.Test(uint(b)) {
		ix.left(&b)
	}

	s := b
	for b != fq {
		for {
			ix.right(&s)
			if !ix.continuation.Test(uint(s)) {
				break
			}
		}
		for {
			ix.right(&b)
			if ix.occupied.Test(uint(b)) {
				break
			}
		}
	}
	return s
}
