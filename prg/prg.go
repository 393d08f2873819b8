// Package prg implements the fixed-key AES pseudorandom generator the
// GGM tree walk expands seeds with: a Davies-Meyer construction,
// G(s) = AES_k(s) XOR s, keyed by one of four well-known keys so every
// party derives the same output from the same seed without exchanging
// anything beyond the seed itself.
package prg

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/sachaservan/pir/block"
)

// Side selects which of the two AES keys (left child / right child) a
// PRG call expands with.
type Side int

const (
	Left Side = iota
	Right
)

// Fixed 128-bit keys, mirrored from the reference prg.cpp: separate key
// pairs for seed expansion (GGM tree) and value expansion (DCF payload).
var (
	keySeedLeft   = block.New(0x00, 0x00)
	keySeedRight  = block.New(0x00, 0x01)
	keyValueLeft  = block.New(0x01, 0x01)
	keyValueRight = block.New(0x01, 0x00)
)

// PRG holds the four fixed-key AES ciphers used to expand seeds and
// values. It is created once per process (no per-key-generation state)
// and passed explicitly to generators and evaluators rather than
// reached for as a global singleton.
type PRG struct {
	seed  [2]cipher.Block
	value [2]cipher.Block
}

// New builds a PRG with the fixed, well-known AES keys. It never
// returns an error: the keys are a compile-time constant 16 bytes, and
// aes.NewCipher only fails on a bad key length.
func New() *PRG {
	mustCipher := func(k block.Block) cipher.Block {
		kb := k.Bytes()
		c, err := aes.NewCipher(kb[:])
		if err != nil {
			panic("prg: fixed-size AES key rejected: " + err.Error())
		}
		return c
	}
	return &PRG{
		seed:  [2]cipher.Block{mustCipher(keySeedLeft), mustCipher(keySeedRight)},
		value: [2]cipher.Block{mustCipher(keyValueLeft), mustCipher(keyValueRight)},
	}
}

func encryptBlock(c cipher.Block, in block.Block) block.Block {
	inBytes := in.Bytes()
	var outBytes [16]byte
	c.Encrypt(outBytes[:], inBytes[:])
	return block.FromBytes(outBytes)
}

// Expand computes G(in) = AES_side(in) XOR in using the seed key pair.
func (p *PRG) Expand(in block.Block, side Side) block.Block {
	return encryptBlock(p.seed[side], in).Xor(in)
}

// ExpandValue computes G(in) = AES_side(in) XOR in using the value key
// pair, the channel the DCF payload correction words are derived from.
func (p *PRG) ExpandValue(in block.Block, side Side) block.Block {
	return encryptBlock(p.value[side], in).Xor(in)
}

// DoubleExpand returns {Expand(in, Left), Expand(in, Right)}, the single
// GGM-tree split operation every DPF/DCF generation and evaluation step
// performs once per level.
func (p *PRG) DoubleExpand(in block.Block) [2]block.Block {
	return [2]block.Block{p.Expand(in, Left), p.Expand(in, Right)}
}

// DoubleExpandValue is DoubleExpand over the value key pair.
func (p *PRG) DoubleExpandValue(in block.Block) [2]block.Block {
	return [2]block.Block{p.ExpandValue(in, Left), p.ExpandValue(in, Right)}
}

// ExpandBatch8 expands 8 seeds at once on the given side. AES-NI
// hardware pipelines independent block encryptions; Go's crypto/aes
// does not expose a batched API, so this loops, but keeping the method
// shape lets callers (the HybridBatched strategy) group work in 8s the
// way the reference implementation's templated Expand<8> does.
func (p *PRG) ExpandBatch8(in [8]block.Block, side Side) [8]block.Block {
	var out [8]block.Block
	for i, s := range in {
		out[i] = p.Expand(s, side)
	}
	return out
}
