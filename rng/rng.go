// Package rng wraps crypto/rand as the one secure randomness source the
// DPF/DCF key generators draw from, never reimplementing a CSPRNG.
package rng

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/sachaservan/pir/block"
)

// Block draws a uniformly random 128-bit block.
func Block() block.Block {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("rng: crypto/rand failed: " + err.Error())
	}
	return block.FromBytes(b)
}

// Bit draws a single uniformly random bit, used to seed each party's
// initial control bit convention at key-generation time callers that
// want a random (rather than the canonical 0/1) starting bit.
func Bit() bool {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("rng: crypto/rand failed: " + err.Error())
	}
	return b[0]&1 == 1
}

// Uint64 draws a uniformly random 64-bit value.
func Uint64() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("rng: crypto/rand failed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}
