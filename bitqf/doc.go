// Package bitqf implements the same quotient filter contract as the
// root qf package, but keeps the three per-slot metadata bits
// (is_occupied, is_continuation, is_shifted) in three independent
// github.com/bits-and-blooms/bitset vectors instead of packing them
// alongside the remainder in one word per slot. Remainders live in
// their own bit-packed array.
//
// This is not a faster or smaller alternative — it is a different
// representation of the identical contract, offered for the same
// reason qf itself offers both a packed and an unpacked Vector: there
// is more than one reasonable way to lay the bits out, and which one
// wins depends on the access pattern (here, a caller who wants to scan
// or bulk-test occupancy independently of remainders, e.g. computing
// cluster statistics, benefits from occupied/continuation/shifted
// being separately addressable bitsets).
package bitqf
