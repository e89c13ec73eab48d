// Package qf implements a quotient filter: a compact, probabilistic
// approximate-membership data structure built over fixed-width hash
// fingerprints. It supports insertion, lookup, deletion and merge,
// and ordered iteration over the fingerprints it holds.
//
// Unlike a Bloom filter, a quotient filter probes a single, mostly
// cache-line-local run of slots per operation, supports true deletion,
// and can be merged with another filter of the same or different size.
// The trade-off is that every operation walks the cluster the target
// quotient lives in, so performance degrades as the load factor
// approaches 1.0 rather than staying flat.
//
// The filter consumes already-computed 64-bit hashes; producing good,
// independent hashes for your keys is the caller's job (see
// internal/hashutil for two reference implementations used by this
// repository's command-line tool and example program). This package never hashes
// anything itself.
package qf
