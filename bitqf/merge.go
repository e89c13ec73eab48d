package bitqf

// Merge creates a new index sized q' = 1+max(a.q, b.q), r' = max(a.r,
// b.r), then inserts every fingerprint yielded by a and then b into
// it. Duplicates collapse naturally via Insert's idempotence.
// Re-decomposition at the new q'/r' is intentional: a fingerprint
// iterated out of a or b at its original width is re-split into the
// merged index's quotient/remainder before being reinserted.
func Merge(a, b *Index) (*Index, error) {
	q := 1 + maxUint(a.qBits, b.qBits)
	r := maxUint(a.rBits, b.rBits)

	out, err := New(q, r)
	if err != nil {
		return nil, err
	}

	for it := a.NewIterator(); !it.Done(); {
		out.Insert(it.Next())
	}
	for it := b.NewIterator(); !it.Done(); {
		out.Insert(it.Next())
	}
	return out, nil
}

func maxUint(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}
