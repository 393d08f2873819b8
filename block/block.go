// Package block implements the 128-bit value type the FSS tree walk
// operates on: a GGM tree seed, a packed early-termination leaf, or a
// correction word, depending on context.
package block

import "encoding/binary"

// Block is a 128-bit value stored as two 64-bit halves, little-endian
// across the pair (Lo holds bits 0-63, Hi holds bits 64-127). Lane
// extraction treats the block as 16 little-endian bytes: Lo's bytes
// first, then Hi's.
type Block struct {
	Lo uint64
	Hi uint64
}

// Zero is the all-zero block.
var Zero = Block{}

// AllOnes is the all-one-bits block.
var AllOnes = Block{Lo: ^uint64(0), Hi: ^uint64(0)}

// Select implements "multiply by control bit" without branching:
// cw.And(Select[bit]) yields cw when bit is true and Zero otherwise.
var Select = [2]Block{Zero, AllOnes}

// AllBytesOne is a block with every byte equal to 0x01, used to isolate
// bit k of every byte via And + a right shift.
var AllBytesOne = allBytesOneBlock()

func allBytesOneBlock() Block {
	var b [16]byte
	for i := range b {
		b[i] = 0x01
	}
	return FromBytes(b)
}

// New builds a block from its high and low 64-bit halves.
func New(hi, lo uint64) Block {
	return Block{Lo: lo, Hi: hi}
}

// FromBytes interprets 16 bytes, little-endian, as a Block.
func FromBytes(b [16]byte) Block {
	return Block{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Bytes returns the block's 16-byte little-endian representation.
func (b Block) Bytes() [16]byte {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], b.Lo)
	binary.LittleEndian.PutUint64(out[8:16], b.Hi)
	return out
}

// Xor returns b XOR o.
func (b Block) Xor(o Block) Block {
	return Block{Lo: b.Lo ^ o.Lo, Hi: b.Hi ^ o.Hi}
}

// And returns b AND o.
func (b Block) And(o Block) Block {
	return Block{Lo: b.Lo & o.Lo, Hi: b.Hi & o.Hi}
}

// Equal reports whether b and o hold the same 128 bits.
func (b Block) Equal(o Block) bool {
	return b.Lo == o.Lo && b.Hi == o.Hi
}

// Bit returns bit i of the block, 0 (LSB of Lo) through 127 (MSB of Hi).
func (b Block) Bit(i int) bool {
	if i < 64 {
		return (b.Lo>>uint(i))&1 == 1
	}
	return (b.Hi>>uint(i-64))&1 == 1
}

// Byte returns byte i (0..15) of the little-endian representation.
func (b Block) Byte(i int) byte {
	bb := b.Bytes()
	return bb[i]
}

// Lsb returns the control-bit channel stored in the block's lowest bit.
func (b Block) Lsb() bool {
	return b.Lo&1 == 1
}

// WithLsbZero returns b with its control-bit channel masked to zero, as
// required immediately after a PRG split (see SPEC_FULL.md 3,
// "Invariant").
func (b Block) WithLsbZero() Block {
	return Block{Lo: b.Lo &^ 1, Hi: b.Hi}
}

// Lane32 returns the i-th (0..3) little-endian 32-bit lane.
func (b Block) Lane32(i int) uint32 {
	bb := b.Bytes()
	return binary.LittleEndian.Uint32(bb[i*4 : i*4+4])
}

// WithLane32 returns b with its i-th 32-bit lane replaced by v.
func (b Block) WithLane32(i int, v uint32) Block {
	bb := b.Bytes()
	binary.LittleEndian.PutUint32(bb[i*4:i*4+4], v)
	return FromBytes(bb)
}

// Lane16 returns the i-th (0..7) little-endian 16-bit lane.
func (b Block) Lane16(i int) uint16 {
	bb := b.Bytes()
	return binary.LittleEndian.Uint16(bb[i*2 : i*2+2])
}

// WithLane16 returns b with its i-th 16-bit lane replaced by v.
func (b Block) WithLane16(i int, v uint16) Block {
	bb := b.Bytes()
	binary.LittleEndian.PutUint16(bb[i*2:i*2+2], v)
	return FromBytes(bb)
}

// AddLanes32 adds b and o lane-wise across the four 32-bit lanes,
// wrapping mod 2^32 per lane.
func (b Block) AddLanes32(o Block) Block {
	r := b
	for i := 0; i < 4; i++ {
		r = r.WithLane32(i, b.Lane32(i)+o.Lane32(i))
	}
	return r
}

// SubLanes32 subtracts o from b lane-wise across the four 32-bit lanes.
func (b Block) SubLanes32(o Block) Block {
	r := b
	for i := 0; i < 4; i++ {
		r = r.WithLane32(i, b.Lane32(i)-o.Lane32(i))
	}
	return r
}

// NegateLanes32 returns the two's-complement negation of each 32-bit lane.
func (b Block) NegateLanes32() Block {
	return Zero.SubLanes32(b)
}

// AddLanes16 adds b and o lane-wise across the eight 16-bit lanes,
// wrapping mod 2^16 per lane.
func (b Block) AddLanes16(o Block) Block {
	r := b
	for i := 0; i < 8; i++ {
		r = r.WithLane16(i, b.Lane16(i)+o.Lane16(i))
	}
	return r
}

// SubLanes16 subtracts o from b lane-wise across the eight 16-bit lanes.
func (b Block) SubLanes16(o Block) Block {
	r := b
	for i := 0; i < 8; i++ {
		r = r.WithLane16(i, b.Lane16(i)-o.Lane16(i))
	}
	return r
}

// NegateLanes16 returns the two's-complement negation of each 16-bit lane.
func (b Block) NegateLanes16() Block {
	return Zero.SubLanes16(b)
}

// ShiftBytesLeft8 shifts the block left by 8 bytes (64 bits), discarding
// the original high 8 bytes.
func (b Block) ShiftBytesLeft8() Block {
	return Block{Lo: 0, Hi: b.Lo}
}

// ShiftRightArithmetic16 performs a signed, sign-extending right shift by
// k within each of the eight 16-bit lanes. Shifting by k=15 broadcasts
// each lane's sign bit (bit 15) across the whole lane (0x0000 or
// 0xFFFF), the bit-broadcast primitive
// SPEC_FULL.md 4.1 names.
func (b Block) ShiftRightArithmetic16(k uint) Block {
	r := b
	for i := 0; i < 8; i++ {
		v := int16(b.Lane16(i)) >> k
		r = r.WithLane16(i, uint16(v))
	}
	return r
}

// BroadcastByteBit broadcasts bit i of every byte across that whole byte
// (0xFF or 0x00), the byte-wise analogue of the bit-mask trick the
// full-domain dot product (SPEC_FULL.md 4.7) uses on raw uint64 halves.
func (b Block) BroadcastByteBit(i uint) Block {
	bb := b.Bytes()
	var out [16]byte
	for k := range bb {
		if (bb[k]>>i)&1 == 1 {
			out[k] = 0xFF
		}
	}
	return FromBytes(out)
}

// MaskU64 returns an all-ones or all-zero uint64 depending on bit,
// realizing `mask = -((v >> j) & 1)` without a branch.
func MaskU64(bit uint64) uint64 {
	return -(bit & 1)
}
