package dpf

import "github.com/sachaservan/pir/block"

// maskE returns a mask with the low e bits set (e in 1..64).
func maskE(e int) uint64 {
	if e >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(e)) - 1
}

// convert extracts the low e bits of a block's lane-0 u64, the ring
// element a naive-mode leaf encodes.
func convert(b block.Block, e int) uint64 {
	return b.Lo & maskE(e)
}

// negate returns the two's-complement negation of v, wrapping mod 2^64;
// callers reduce mod 2^e afterward via maskE.
func negate(v uint64) uint64 {
	return (^v) + 1
}

// signCombine applies sign(bit): negate v when bit is true, identity
// otherwise. This realizes sign(b) = -1 if b else 1 without a signed
// integer type, per the resolved convert()/sign() semantics (see
// DESIGN.md).
func signCombine(bit bool, v uint64) uint64 {
	if bit {
		return negate(v)
	}
	return v
}
