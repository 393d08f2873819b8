package dpf

import (
	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/fssparams"
)

// Early-termination leaf packing (r in {2, 3, 7}) is realized lane-wise
// for r=2 (four 32-bit lanes) and r=3 (eight 16-bit lanes), and bit-wise
// (128 single-bit lanes, indexed directly by block.Bit) for r=7's
// SingleBitMask mode. Generation places beta's single bit with placeAtBit
// and evaluation reads it back with block.Bit/readLeaf using the same
// index; as long as both sides agree, which bit within the 128 counts as
// "first" is an arbitrary but internally consistent convention, not a
// value visible to either party on its own.

func lanesPerLeaf(r int) int {
	switch r {
	case 2:
		return 4
	case 3:
		return 8
	case 7:
		return 128
	default:
		panic("dpf: unsupported r (must be 2, 3 or 7)")
	}
}

func addLanesR(r int, a, b block.Block) block.Block {
	switch r {
	case 2:
		return a.AddLanes32(b)
	case 3:
		return a.AddLanes16(b)
	default:
		panic("dpf: addLanesR only defined for r=2,3")
	}
}

func subLanesR(r int, a, b block.Block) block.Block {
	switch r {
	case 2:
		return a.SubLanes32(b)
	case 3:
		return a.SubLanes16(b)
	default:
		panic("dpf: subLanesR only defined for r=2,3")
	}
}

func negateLanesR(r int, a block.Block) block.Block {
	switch r {
	case 2:
		return a.NegateLanes32()
	case 3:
		return a.NegateLanes16()
	default:
		panic("dpf: negateLanesR only defined for r=2,3")
	}
}

func laneValue(r int, b block.Block, k int) uint64 {
	switch r {
	case 2:
		return uint64(b.Lane32(k))
	case 3:
		return uint64(b.Lane16(k))
	default:
		panic("dpf: laneValue only defined for r=2,3")
	}
}

func withLaneValue(r int, b block.Block, k int, v uint64) block.Block {
	switch r {
	case 2:
		return b.WithLane32(k, uint32(v))
	case 3:
		return b.WithLane16(k, uint16(v))
	default:
		panic("dpf: withLaneValue only defined for r=2,3")
	}
}

// placeAtLane returns a block with value v written into lane alphaHat and
// every other lane zero (r=2,3), used to build beta_shifted.
func placeAtLane(r int, alphaHat int, v uint64) block.Block {
	return withLaneValue(r, block.Zero, alphaHat, v)
}

// placeAtBit returns a block with exactly bit alphaHat set, the r=7
// SingleBitMask equivalent of placeAtLane.
func placeAtBit(alphaHat int) block.Block {
	if alphaHat < 64 {
		return block.New(0, uint64(1)<<uint(alphaHat))
	}
	return block.New(uint64(1)<<uint(alphaHat-64), 0)
}

// alphaHatOf returns the low r bits of a value, the index of its leaf
// lane / bit within the packed block.
func alphaHatOf(v uint64, r int) int {
	return int(v & ((uint64(1) << uint(r)) - 1))
}

// readLeaf extracts the output for index x within a packed leaf block,
// masked to e bits, per params.OutputMode.
func readLeaf(params fssparams.DPFParameters, leaf block.Block, x uint64) uint64 {
	r := params.R()
	alphaHat := alphaHatOf(x, r)
	if params.OutputMode == fssparams.SingleBitMask {
		if leaf.Bit(alphaHat) {
			return 1
		}
		return 0
	}
	return laneValue(r, leaf, alphaHat) & maskE(params.E)
}
