// Package dcf implements Distributed Comparison Function key generation
// and evaluation: f_{alpha,beta}(x) = beta if x < alpha else 0, mirroring
// the dpf package's GGM-tree construction with an added per-level value
// correction word computed from a second, value-keyed PRG channel.
package dcf

import (
	"fmt"

	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/fssparams"
)

// Key is one party's half of a generated DCF key pair. Layout mirrors
// dpf.Key with an added per-level CWValue array (see spec.md 4.6 / 3).
// Move-only by contract: use Clone, never assignment.
type Key struct {
	PartyID  int
	InitSeed block.Block
	Params   fssparams.DCFParameters

	CWSeed         []block.Block
	CWControlLeft  []bool
	CWControlRight []bool
	CWValue        []uint64

	// Output is the final scalar leaf correction.
	Output uint64
}

// CWLength is the number of correction-word levels, n (DCF never
// early-terminates).
func (k *Key) CWLength() int {
	return len(k.CWSeed)
}

// Clone makes a deep, independent copy of k. Must never be called
// silently: a DCF key is move-only by contract.
func (k *Key) Clone() *Key {
	return &Key{
		PartyID:        k.PartyID,
		InitSeed:       k.InitSeed,
		Params:         k.Params,
		CWSeed:         append([]block.Block(nil), k.CWSeed...),
		CWControlLeft:  append([]bool(nil), k.CWControlLeft...),
		CWControlRight: append([]bool(nil), k.CWControlRight...),
		CWValue:        append([]uint64(nil), k.CWValue...),
		Output:         k.Output,
	}
}

// Equal reports whether two keys hold bitwise identical contents.
func (k *Key) Equal(o *Key) bool {
	if k.PartyID != o.PartyID || !k.InitSeed.Equal(o.InitSeed) || k.Params != o.Params || k.Output != o.Output {
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
		if k.CWValue[i] != o.CWValue[i] {
			return false
		}
	}
	return true
}

func (k *Key) String() string {
	return fmt.Sprintf("dcf.Key{party=%d, n=%d, e=%d}", k.PartyID, k.Params.N, k.Params.E)
}
