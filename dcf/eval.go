package dcf

import (
	"fmt"

	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/prg"
)

// EvaluateAt evaluates k at a single domain point x, returning this
// party's additive share of f_{alpha,beta}(x).
func EvaluateAt(p *prg.PRG, k *Key, x uint64) (uint64, error) {
	n := k.Params.N
	if x >= uint64(1)<<uint(n) {
		return 0, fmt.Errorf("dcf: x=%d out of range for n=%d", x, n)
	}

	s := k.InitSeed
	t := k.PartyID == 1
	var value uint64

	for i := 0; i < n; i++ {
		xBit := (x>>uint(n-i-1))&1 == 1

		d := p.DoubleExpand(s)
		l, r := d[prg.Left], d[prg.Right]
		lt, rt := l.Lsb(), r.Lsb()
		l, r = l.WithLsbZero(), r.WithLsbZero()

		v := p.DoubleExpandValue(s)
		vl, vr := v[prg.Left], v[prg.Right]

		cwSeed := k.CWSeed[i]
		var cur block.Block
		var curLsb bool
		var curV block.Block
		if xBit {
			cur = r.Xor(cwSeed.And(block.Select[boolIdxE(t)]))
			curLsb = rt != (k.CWControlRight[i] && t)
			curV = vr
		} else {
			cur = l.Xor(cwSeed.And(block.Select[boolIdxE(t)]))
			curLsb = lt != (k.CWControlLeft[i] && t)
			curV = vl
		}

		contribution := convert(curV, k.Params.E)
		if t {
			contribution = (contribution + k.CWValue[i]) & maskE(k.Params.E)
		}
		value = (value + signCombine(k.PartyID == 1, contribution)) & maskE(k.Params.E)

		s = cur
		t = curLsb
	}

	finalSeed := p.Expand(s, prg.Left)
	leaf := convert(finalSeed, k.Params.E)
	if t {
		leaf = (leaf + (k.Output & maskE(k.Params.E))) & maskE(k.Params.E)
	}
	out := (value + signCombine(k.PartyID == 1, leaf)) & maskE(k.Params.E)
	return out, nil
}

func boolIdxE(b bool) int {
	if b {
		return 1
	}
	return 0
}
