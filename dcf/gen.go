package dcf

import (
	"fmt"

	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/fssparams"
	"github.com/sachaservan/pir/prg"
	"github.com/sachaservan/pir/rng"
)

// GenerateKeys builds a DCF key pair for f(x) = beta if x < alpha else 0,
// over the domain and ring described by params.
func GenerateKeys(p *prg.PRG, params fssparams.DCFParameters, alpha, beta uint64) (k0, k1 *Key, err error) {
	if params.N <= 0 {
		return nil, nil, fmt.Errorf("dcf: invalid params: n=%d", params.N)
	}
	if alpha > uint64(1)<<uint(params.N) {
		return nil, nil, fmt.Errorf("dcf: alpha=%d out of range for n=%d", alpha, params.N)
	}
	if params.E < 64 && beta >= uint64(1)<<uint(params.E) {
		return nil, nil, fmt.Errorf("dcf: beta=%d out of range for e=%d", beta, params.E)
	}

	initSeed0 := rng.Block()
	initSeed1 := rng.Block()

	s0, s1 := initSeed0, initSeed1
	t0, t1 := false, true
	var value uint64

	n := params.N
	cwSeed := make([]block.Block, n)
	cwCtrlLeft := make([]bool, n)
	cwCtrlRight := make([]bool, n)
	cwValue := make([]uint64, n)

	for i := 0; i < n; i++ {
		aBit := (alpha>>uint(n-i-1))&1 == 1

		d0 := p.DoubleExpand(s0)
		d1 := p.DoubleExpand(s1)
		l0, r0 := d0[prg.Left], d0[prg.Right]
		l1, r1 := d1[prg.Left], d1[prg.Right]

		lt0, rt0 := l0.Lsb(), r0.Lsb()
		lt1, rt1 := l1.Lsb(), r1.Lsb()
		l0, r0 = l0.WithLsbZero(), r0.WithLsbZero()
		l1, r1 = l1.WithLsbZero(), r1.WithLsbZero()

		cwCtrlLeft[i] = (lt0 != lt1) != !aBit
		cwCtrlRight[i] = (rt0 != rt1) != aBit

		v0 := p.DoubleExpandValue(s0)
		v1 := p.DoubleExpandValue(s1)
		vl0, vr0 := v0[prg.Left], v0[prg.Right]
		vl1, vr1 := v1[prg.Left], v1[prg.Right]

		var loseSeed0, loseSeed1, keepSeed0, keepSeed1 block.Block
		var keepLsb0, keepLsb1, cwKeep bool
		var vLose0, vLose1, vKeep0, vKeep1 block.Block
		loseIsLeft := aBit
		if aBit {
			loseSeed0, loseSeed1 = l0, l1
			keepSeed0, keepSeed1 = r0, r1
			keepLsb0, keepLsb1 = rt0, rt1
			cwKeep = cwCtrlRight[i]
			vLose0, vLose1 = vl0, vl1
			vKeep0, vKeep1 = vr0, vr1
		} else {
			loseSeed0, loseSeed1 = r0, r1
			keepSeed0, keepSeed1 = l0, l1
			keepLsb0, keepLsb1 = lt0, lt1
			cwKeep = cwCtrlLeft[i]
			vLose0, vLose1 = vr0, vr1
			vKeep0, vKeep1 = vl0, vl1
		}
		cwSeed[i] = loseSeed0.Xor(loseSeed1)

		valueCorrection := (negate(convert(vLose0, params.E)) + convert(vLose1, params.E) + negate(value)) & maskE(params.E)
		valueCorrection = signCombine(t1, valueCorrection) & maskE(params.E)
		if loseIsLeft {
			valueCorrection = (valueCorrection + signCombine(t1, beta)) & maskE(params.E)
		}
		cwValue[i] = valueCorrection

		value = (value + negate(convert(vKeep1, params.E)) + convert(vKeep0, params.E) +
			signCombine(t1, valueCorrection)) & maskE(params.E)

		s0 = keepSeed0.Xor(cwSeed[i].And(block.Select[boolIdx(t0)]))
		s1 = keepSeed1.Xor(cwSeed[i].And(block.Select[boolIdx(t1)]))
		t0 = keepLsb0 != (cwKeep && t0)
		t1 = keepLsb1 != (cwKeep && t1)
	}

	finalSeed0 := p.Expand(s0, prg.Left)
	finalSeed1 := p.Expand(s1, prg.Left)

	out := (negate(value) + negate(convert(finalSeed0, params.E)) + convert(finalSeed1, params.E)) & maskE(params.E)
	out = signCombine(t1, out) & maskE(params.E)

	k0 = &Key{PartyID: 0, InitSeed: initSeed0, Params: params, CWSeed: cwSeed, CWControlLeft: cwCtrlLeft, CWControlRight: cwCtrlRight, CWValue: cwValue, Output: out}
	k1 = &Key{PartyID: 1, InitSeed: initSeed1, Params: params,
		CWSeed:         append([]block.Block(nil), cwSeed...),
		CWControlLeft:  append([]bool(nil), cwCtrlLeft...),
		CWControlRight: append([]bool(nil), cwCtrlRight...),
		CWValue:        append([]uint64(nil), cwValue...),
		Output:         out}
	return k0, k1, nil
}

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}
