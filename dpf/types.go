// Package dpf implements Distributed Point Function key generation and
// evaluation: two keys that, evaluated independently, reconstruct
// to β at x=α and to 0 everywhere else.
//
// This is based on the following paper:
// Boyle, Elette, Niv Gilboa, and Yuval Ishai. "Function Secret Sharing:
// Improvements and Extensions." ACM CCS 2016.
package dpf

import (
	"fmt"

	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/fssparams"
)

// Key is one party's half of a generated DPF key pair. cw_seed,
// cw_control_left/right and output are bitwise identical between both
// halves; only PartyID and InitSeed differ.
//
// Key is move-only by contract: copy it via Clone, never by assignment.
type Key struct {
	PartyID  int
	InitSeed block.Block
	Params   fssparams.DPFParameters

	CWSeed         []block.Block
	CWControlLeft  []bool
	CWControlRight []bool

	// Output is the final leaf correction: a single ring element in lane
	// 0 (naive mode) or a packed 2^r-entry leaf (early-termination modes).
	Output block.Block
}

// CWLength is the number of correction-word levels, nu.
func (k *Key) CWLength() int {
	return len(k.CWSeed)
}

// Clone makes a deep, independent copy of k. Must never be called
// silently: a DPF key is move-only by contract, and duplicating one
// duplicates the secret share it represents.
func (k *Key) Clone() *Key {
	c := &Key{
		PartyID:  k.PartyID,
		InitSeed: k.InitSeed,
		Params:   k.Params,
		Output:   k.Output,
	}
	c.CWSeed = append([]block.Block(nil), k.CWSeed...)
	c.CWControlLeft = append([]bool(nil), k.CWControlLeft...)
	c.CWControlRight = append([]bool(nil), k.CWControlRight...)
	return c
}

// Equal reports whether two keys hold bitwise identical contents,
// including PartyID and InitSeed (used by tests, not by the protocol
// itself — two valid key halves are never equal).
func (k *Key) Equal(o *Key) bool {
	if k.PartyID != o.PartyID || !k.InitSeed.Equal(o.InitSeed) || k.Params != o.Params {
		return false
	}
	if len(k.CWSeed) != len(o.CWSeed) {
		return false
	}
	for i := range k.CWSeed {
		if !k.CWSeed[i].Equal(o.CWSeed[i]) {
			return false
		}
		if k.CWControlLeft[i] != o.CWControlLeft[i] || k.CWControlRight[i] != o.CWControlRight[i] {
			return false
		}
	}
	return k.Output.Equal(o.Output)
}

func (k *Key) String() string {
	return fmt.Sprintf("dpf.Key{party=%d, n=%d, e=%d, nu=%d, evalType=%s, outputMode=%s}",
		k.PartyID, k.Params.N, k.Params.E, k.Params.Nu, k.Params.EvalType, k.Params.OutputMode)
}
