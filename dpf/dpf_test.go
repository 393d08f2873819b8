package dpf

import (
	"testing"

	"github.com/sachaservan/pir/fssparams"
	"github.com/sachaservan/pir/prg"
)

// S1: n=3, e=3, eval=Naive, (alpha,beta)=(5,1).
func TestS1NaivePointEval(t *testing.T) {
	p := prg.New()
	params, _, err := fssparams.ResolveDPF(3, 3, fssparams.Naive, fssparams.ShiftedAdditive)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	k0, k1, err := GenerateKeys(p, params, 5, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	v0, err := EvaluateAt(p, k0, 5)
	if err != nil {
		t.Fatalf("eval k0: %v", err)
	}
	v1, err := EvaluateAt(p, k1, 5)
	if err != nil {
		t.Fatalf("eval k1: %v", err)
	}
	if got := (v0 + v1) & maskE(3); got != 1 {
		t.Fatalf("eval_at(5) reconstructs to %d, want 1", got)
	}

	w0, _ := EvaluateAt(p, k0, 7)
	w1, _ := EvaluateAt(p, k1, 7)
	if got := (w0 + w1) & maskE(3); got != 0 {
		t.Fatalf("eval_at(7) reconstructs to %d, want 0", got)
	}
}

// P1: DPF point correctness across the supported range.
func TestP1PointCorrectnessSweep(t *testing.T) {
	p := prg.New()
	for _, nc := range []struct{ n, e int }{{4, 4}, {6, 8}, {8, 16}} {
		params, _, err := fssparams.ResolveDPF(nc.n, nc.e, fssparams.Naive, fssparams.ShiftedAdditive)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		alpha := uint64(1) << uint(nc.n-1)
		beta := uint64(1)<<uint(nc.e-1) - 1
		k0, k1, err := GenerateKeys(p, params, alpha, beta)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for x := uint64(0); x < uint64(1)<<uint(nc.n); x++ {
			v0, _ := EvaluateAt(p, k0, x)
			v1, _ := EvaluateAt(p, k1, x)
			got := (v0 + v1) & maskE(nc.e)
			want := uint64(0)
			if x == alpha {
				want = beta
			}
			if got != want {
				t.Fatalf("n=%d e=%d x=%d: got %d, want %d", nc.n, nc.e, x, got, want)
			}
		}
	}
}

// S2/P3: full-domain reconstruction, HybridBatched strategy.
func TestS2HybridBatchedFullDomain(t *testing.T) {
	p := prg.New()
	params, _, err := fssparams.ResolveDPF(10, 10, fssparams.HybridBatched, fssparams.ShiftedAdditive)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	k0, k1, err := GenerateKeys(p, params, 5, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out0 := make([]uint64, 1<<10)
	out1 := make([]uint64, 1<<10)
	if err := EvaluateFullDomain(p, k0, out0); err != nil {
		t.Fatalf("full domain k0: %v", err)
	}
	if err := EvaluateFullDomain(p, k1, out1); err != nil {
		t.Fatalf("full domain k1: %v", err)
	}
	for i := range out0 {
		got := (out0[i] + out1[i]) & maskE(10)
		want := uint64(0)
		if i == 5 {
			want = 1
		}
		if got != want {
			t.Fatalf("index %d: got %d, want %d", i, got, want)
		}
	}
}

// P3 for the Recursion strategy, as a cross-check against HybridBatched.
func TestP3RecursionFullDomain(t *testing.T) {
	p := prg.New()
	params, _, _ := fssparams.ResolveDPF(9, 9, fssparams.Recursion, fssparams.ShiftedAdditive)
	k0, k1, err := GenerateKeys(p, params, 42, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out0 := make([]uint64, 1<<9)
	out1 := make([]uint64, 1<<9)
	if err := EvaluateFullDomain(p, k0, out0); err != nil {
		t.Fatalf("full domain k0: %v", err)
	}
	if err := EvaluateFullDomain(p, k1, out1); err != nil {
		t.Fatalf("full domain k1: %v", err)
	}
	for i := range out0 {
		got := (out0[i] + out1[i]) & maskE(9)
		want := uint64(0)
		if i == 42 {
			want = 7
		}
		if got != want {
			t.Fatalf("index %d: got %d, want %d", i, got, want)
		}
	}
}

// P7: early termination on vs off agree at every x.
func TestP7EarlyTerminationEquivalence(t *testing.T) {
	p := prg.New()
	n, e := 9, 9
	alpha, beta := uint64(17), uint64(3)

	paramsET, _, err := fssparams.ResolveDPF(n, e, fssparams.HybridBatched, fssparams.ShiftedAdditive)
	if err != nil {
		t.Fatalf("resolve ET: %v", err)
	}
	if !paramsET.EnableET {
		t.Fatalf("expected early termination enabled for n=%d", n)
	}
	paramsNoET, _, err := fssparams.ResolveDPF(n, e, fssparams.Naive, fssparams.ShiftedAdditive)
	if err != nil {
		t.Fatalf("resolve no-ET: %v", err)
	}

	et0, et1, err := GenerateKeys(p, paramsET, alpha, beta)
	if err != nil {
		t.Fatalf("generate ET: %v", err)
	}
	no0, no1, err := GenerateKeys(p, paramsNoET, alpha, beta)
	if err != nil {
		t.Fatalf("generate no-ET: %v", err)
	}

	for x := uint64(0); x < uint64(1)<<uint(n); x++ {
		a0, _ := EvaluateAt(p, et0, x)
		a1, _ := EvaluateAt(p, et1, x)
		b0, _ := EvaluateAt(p, no0, x)
		b1, _ := EvaluateAt(p, no1, x)
		gotET := (a0 + a1) & maskE(e)
		gotNo := (b0 + b1) & maskE(e)
		if gotET != gotNo {
			t.Fatalf("x=%d: ET=%d, no-ET=%d disagree", x, gotET, gotNo)
		}
	}
}

// S3/P4: SingleBitMask reconstruction for n=10, e=1, alpha=5.
func TestS3SingleBitMaskFullDomain(t *testing.T) {
	p := prg.New()
	params, _, err := fssparams.ResolveDPF(10, 1, fssparams.Recursion, fssparams.SingleBitMask)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if params.OutputMode != fssparams.SingleBitMask || !params.EnableET {
		t.Fatalf("expected SingleBitMask/ET, got %+v", params)
	}
	k0, k1, err := GenerateKeys(p, params, 5, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out0 := make([]uint64, 1<<10)
	out1 := make([]uint64, 1<<10)
	if err := EvaluateFullDomain(p, k0, out0); err != nil {
		t.Fatalf("full domain k0: %v", err)
	}
	if err := EvaluateFullDomain(p, k1, out1); err != nil {
		t.Fatalf("full domain k1: %v", err)
	}
	for i := range out0 {
		got := out0[i] ^ out1[i]
		want := uint64(0)
		if i == 5 {
			want = 1
		}
		if got != want {
			t.Fatalf("index %d: got %d, want %d", i, got, want)
		}
	}
}

// P5: serialization round trip.
func TestP5SerializationRoundTrip(t *testing.T) {
	p := prg.New()
	params, _, err := fssparams.ResolveDPF(12, 8, fssparams.HybridBatched, fssparams.ShiftedAdditive)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	k0, _, err := GenerateKeys(p, params, 100, 9)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	buf := k0.Serialize()
	if len(buf) != serializedSize(k0.CWLength()) {
		t.Fatalf("serialized length %d != predicted %d", len(buf), serializedSize(k0.CWLength()))
	}
	back, err := DeserializeKey(params, buf)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !k0.Equal(back) {
		t.Fatalf("round trip mismatch:\n%+v\nvs\n%+v", k0, back)
	}
}

// Clone must be independent of the source key: mutating the original
// after cloning must not be observed through the clone.
func TestCloneIsIndependent(t *testing.T) {
	p := prg.New()
	params, _, _ := fssparams.ResolveDPF(5, 5, fssparams.Naive, fssparams.ShiftedAdditive)
	k0, _, err := GenerateKeys(p, params, 3, 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	clone := k0.Clone()
	k0.CWSeed[0] = k0.CWSeed[0].Xor(k0.CWSeed[0])
	if clone.CWSeed[0].Equal(k0.CWSeed[0]) {
		t.Fatalf("clone should be independent of source mutation")
	}
}

func TestGenerateKeysRejectsOutOfRangeAlpha(t *testing.T) {
	p := prg.New()
	params, _, _ := fssparams.ResolveDPF(4, 4, fssparams.Naive, fssparams.ShiftedAdditive)
	if _, _, err := GenerateKeys(p, params, 16, 0); err == nil {
		t.Fatalf("expected error for alpha out of range")
	}
}
