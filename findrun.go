package qf

// findRunIndex returns the index of the first slot of fq's run, given
// that slot fq's is_occupied bit is already set: walk backward to the
// start of the cluster, then walk forward run-by-run (in lock-step
// with a bucket cursor over occupied canonical slots) until the
// bucket cursor reaches fq.
func (f *Filter) findRunIndex(fq uint64) uint64 {
	b := fq
	for f.read(b).shifted() {
		f.left(&b)
	}

	s := b
	for b != fq {
		for {
			f.right(&s)
			if !f.read(s).continuation() {
				break
			}
		}
		for {
			f.right(&b)
			if f.read(b).occupied() {
				break
			}
		}
	}
	return s
}
