package dpf

import (
	"fmt"

	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/fssparams"
	"github.com/sachaservan/pir/prg"
	"github.com/sachaservan/pir/rng"
)

// GenerateKeys builds a DPF key pair for f(x) = beta if x == alpha else 0,
// over the domain and ring described by params. It fails if alpha or beta
// exceed their respective ranges.
func GenerateKeys(p *prg.PRG, params fssparams.DPFParameters, alpha, beta uint64) (k0, k1 *Key, err error) {
	if params.N <= 0 {
		return nil, nil, fmt.Errorf("dpf: invalid params: n=%d", params.N)
	}
	if alpha >= uint64(1)<<uint(params.N) {
		return nil, nil, fmt.Errorf("dpf: alpha=%d out of range for n=%d", alpha, params.N)
	}
	if params.E < 64 && beta >= uint64(1)<<uint(params.E) {
		return nil, nil, fmt.Errorf("dpf: beta=%d out of range for e=%d", beta, params.E)
	}

	initSeed0 := rng.Block()
	initSeed1 := rng.Block()

	s0, s1 := initSeed0, initSeed1
	t0, t1 := false, true

	nu := params.Nu
	cwSeed := make([]block.Block, nu)
	cwCtrlLeft := make([]bool, nu)
	cwCtrlRight := make([]bool, nu)

	for i := 0; i < nu; i++ {
		aBit := (alpha>>uint(params.N-i-1))&1 == 1

		d0 := p.DoubleExpand(s0)
		d1 := p.DoubleExpand(s1)
		l0, r0 := d0[prg.Left], d0[prg.Right]
		l1, r1 := d1[prg.Left], d1[prg.Right]

		lt0, rt0 := l0.Lsb(), r0.Lsb()
		lt1, rt1 := l1.Lsb(), r1.Lsb()
		l0, r0 = l0.WithLsbZero(), r0.WithLsbZero()
		l1, r1 = l1.WithLsbZero(), r1.WithLsbZero()

		// cw_control_left = lsb(L0) xor lsb(L1) xor a_i xor 1
		// cw_control_right = lsb(R0) xor lsb(R1) xor a_i
		cwCtrlLeft[i] = (lt0 != lt1) != !aBit
		cwCtrlRight[i] = (rt0 != rt1) != aBit

		var loseSeed0, loseSeed1, keepSeed0, keepSeed1 block.Block
		var keepLsb0, keepLsb1, cwKeep bool
		if aBit {
			loseSeed0, loseSeed1 = l0, l1
			keepSeed0, keepSeed1 = r0, r1
			keepLsb0, keepLsb1 = rt0, rt1
			cwKeep = cwCtrlRight[i]
		} else {
			loseSeed0, loseSeed1 = r0, r1
			keepSeed0, keepSeed1 = l0, l1
			keepLsb0, keepLsb1 = lt0, lt1
			cwKeep = cwCtrlLeft[i]
		}
		cwSeed[i] = loseSeed0.Xor(loseSeed1)

		s0 = keepSeed0.Xor(cwSeed[i].And(block.Select[boolIdx(t0)]))
		s1 = keepSeed1.Xor(cwSeed[i].And(block.Select[boolIdx(t1)]))
		t0 = keepLsb0 != (cwKeep && t0)
		t1 = keepLsb1 != (cwKeep && t1)
	}

	// One more expand prevents a trivial correlation with the last
	// correction word (spec.md 4.4 step 5); the evaluator mirrors this
	// by applying PRG_left(s_nu) again at combine time.
	finalSeed0 := p.Expand(s0, prg.Left)
	finalSeed1 := p.Expand(s1, prg.Left)

	output := computeGenOutput(params, finalSeed0, finalSeed1, t1, alpha, beta)

	k0 = &Key{PartyID: 0, InitSeed: initSeed0, Params: params, CWSeed: cwSeed, CWControlLeft: cwCtrlLeft, CWControlRight: cwCtrlRight, Output: output}
	k1 = &Key{PartyID: 1, InitSeed: initSeed1, Params: params, CWSeed: append([]block.Block(nil), cwSeed...), CWControlLeft: append([]bool(nil), cwCtrlLeft...), CWControlRight: append([]bool(nil), cwCtrlRight...), Output: output}
	return k0, k1, nil
}

// computeGenOutput implements spec.md 4.4 step 6 and its early-termination
// analogues. The naive path is the literal spec formula, beta - s0 + s1
// sign-combined by t1. The r=2/3 additive-packing path mirrors that same
// pattern lane-wise: reconstruction at evaluation time sums lanes and
// adds the leaf's Output, so the correction word generated here must hold
// beta - s0 + s1, not s0 + s1 - beta. The r=7 SingleBitMask path is GF(2)
// and needs no sign.
func computeGenOutput(params fssparams.DPFParameters, finalSeed0, finalSeed1 block.Block, t1 bool, alpha, beta uint64) block.Block {
	if !params.EnableET {
		v := (beta + negate(convert(finalSeed0, params.E)) + convert(finalSeed1, params.E)) & maskE(params.E)
		v = signCombine(t1, v) & maskE(params.E)
		return block.New(0, v)
	}

	r := params.R()
	alphaHat := alphaHatOf(alpha, r)

	if params.OutputMode == fssparams.SingleBitMask {
		betaShifted := block.Zero
		if beta&1 == 1 {
			betaShifted = placeAtBit(alphaHat)
		}
		return betaShifted.Xor(finalSeed0).Xor(finalSeed1)
	}

	betaShifted := placeAtLane(r, alphaHat, beta)
	out := subLanesR(r, betaShifted, finalSeed0)
	out = addLanesR(r, out, finalSeed1)
	if t1 {
		out = negateLanesR(r, out)
	}
	return out
}

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}
