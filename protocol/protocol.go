// Package protocol implements small secret-shared comparison primitives
// built on top of dpf and dcf: equality, less-than, oblivious selection,
// and a three-way minimum. Grounded on
// original_source/RingOA_Tests/protocol/integer_comparison_test.cpp and
// min3_test.cpp, which exercise the same "reduce to pairwise compare +
// select" construction.
package protocol

import (
	"fmt"

	"github.com/sachaservan/pir/dcf"
	"github.com/sachaservan/pir/dpf"
	"github.com/sachaservan/pir/fssparams"
	"github.com/sachaservan/pir/prg"
)

// Equal returns the two parties' additive shares of the indicator
// [x == a], using a DPF with beta=1 and SingleBitMask output: each
// party's share of f_a(x) XORs to 1 iff x equals a.
func Equal(p *prg.PRG, n int, x, a uint64) (share0, share1 uint64, err error) {
	params, _, err := fssparams.ResolveDPF(n, 1, fssparams.Recursion, fssparams.SingleBitMask)
	if err != nil {
		return 0, 0, fmt.Errorf("protocol: resolve equal: %w", err)
	}
	k0, k1, err := dpf.GenerateKeys(p, params, a, 1)
	if err != nil {
		return 0, 0, fmt.Errorf("protocol: generate equal: %w", err)
	}
	v0, err := dpf.EvaluateAt(p, k0, x)
	if err != nil {
		return 0, 0, err
	}
	v1, err := dpf.EvaluateAt(p, k1, x)
	if err != nil {
		return 0, 0, err
	}
	return v0, v1, nil
}

// LessThan returns the two parties' additive shares of beta * [x < a],
// a thin wrapper around DCF generation and evaluation.
func LessThan(p *prg.PRG, n, e int, x, a, beta uint64) (share0, share1 uint64, err error) {
	params, _, err := fssparams.ResolveDCF(n, e, fssparams.DCFNaive)
	if err != nil {
		return 0, 0, fmt.Errorf("protocol: resolve less-than: %w", err)
	}
	k0, k1, err := dcf.GenerateKeys(p, params, a, beta)
	if err != nil {
		return 0, 0, fmt.Errorf("protocol: generate less-than: %w", err)
	}
	v0, err := dcf.EvaluateAt(p, k0, x)
	if err != nil {
		return 0, 0, err
	}
	v1, err := dcf.EvaluateAt(p, k1, x)
	if err != nil {
		return 0, 0, err
	}
	return v0, v1, nil
}

// ObliviousSelect computes one party's share of c*a + (1-c)*b, where c
// is an additively shared bit (0 or 1) and a, b are additively shared
// ring elements. The caller combines both parties' returned shares
// (they sum to the reconstructed select) outside this call; no
// interaction happens here.
func ObliviousSelect(conditionShare, aShare, bShare uint64) uint64 {
	return bShare + conditionShare*(aShare-bShare)
}

// Min3 takes three values, each additively shared between two parties
// as a0[0]+a0[1], a1[0]+a1[1], a2[0]+a2[1], and returns each party's
// share of min(a0, a1, a2). Follows the standard reduce-to-pairwise
// construction: compare a0 to a1, select the smaller, compare that to
// a2, select again.
func Min3(p *prg.PRG, n, e int, a0, a1, a2 [2]uint64) (share0, share1 uint64, err error) {
	min01Share0, min01Share1, err := selectMin(p, n, e, a0, a1)
	if err != nil {
		return 0, 0, err
	}
	return selectMin(p, n, e, [2]uint64{min01Share0, min01Share1}, a2)
}

// selectMin returns shares of min(x, y) given two pairs of additive
// shares. It reconstructs x and y locally (both halves are already in
// hand, unlike a real two-party run where each half lives with a
// different party) to drive one LessThan comparison, reconstructs the
// comparison bit from its two shares the same way, and applies
// ObliviousSelect to each party's halves with that bit. This local reconstruction is unrelated to the
// masked-index reconstruction DotProductSharedIndex performs for C7;
// selectMin never touches a database index.
func selectMin(p *prg.PRG, n, e int, x, y [2]uint64) (share0, share1 uint64, err error) {
	mask := maskE(e)
	xVal := (x[0] + x[1]) & mask
	yVal := (y[0] + y[1]) & mask
	c0, c1, err := LessThan(p, n, 1, xVal, yVal, 1)
	if err != nil {
		return 0, 0, err
	}
	c := (c0 + c1) & 1
	s0 := ObliviousSelect(c, x[0], y[0])
	s1 := ObliviousSelect(c, x[1], y[1])
	return s0 & mask, s1 & mask, nil
}

func maskE(e int) uint64 {
	if e >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(e)) - 1
}
