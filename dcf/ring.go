package dcf

import "github.com/sachaservan/pir/block"

func maskE(e int) uint64 {
	if e >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(e)) - 1
}

func convert(b block.Block, e int) uint64 {
	return b.Lo & maskE(e)
}

func negate(v uint64) uint64 {
	return (^v) + 1
}

func signCombine(bit bool, v uint64) uint64 {
	if bit {
		return negate(v)
	}
	return v
}
