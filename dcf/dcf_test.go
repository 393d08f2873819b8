package dcf

import (
	"testing"

	"github.com/sachaservan/pir/fssparams"
	"github.com/sachaservan/pir/prg"
)

// P2: DCF point correctness. f_{alpha,beta}(x) = beta if x < alpha else 0.
func TestP2PointCorrectnessSweep(t *testing.T) {
	p := prg.New()
	for _, nc := range []struct{ n, e int }{{4, 4}, {6, 8}, {8, 16}} {
		params, _, err := fssparams.ResolveDCF(nc.n, nc.e, fssparams.DCFNaive)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		alpha := uint64(1) << uint(nc.n-2)
		beta := uint64(1)<<uint(nc.e-1) - 1
		k0, k1, err := GenerateKeys(p, params, alpha, beta)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for x := uint64(0); x < uint64(1)<<uint(nc.n); x++ {
			v0, err := EvaluateAt(p, k0, x)
			if err != nil {
				t.Fatalf("eval k0: %v", err)
			}
			v1, err := EvaluateAt(p, k1, x)
			if err != nil {
				t.Fatalf("eval k1: %v", err)
			}
			got := (v0 + v1) & maskE(nc.e)
			want := uint64(0)
			if x < alpha {
				want = beta
			}
			if got != want {
				t.Fatalf("n=%d e=%d x=%d: got %d, want %d", nc.n, nc.e, x, got, want)
			}
		}
	}
}

// S4: n=6, e=6, (alpha,beta)=(20,3): spot-check a few points either side
// of the threshold.
func TestS4ThresholdBoundary(t *testing.T) {
	p := prg.New()
	params, _, err := fssparams.ResolveDCF(6, 6, fssparams.DCFNaive)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	k0, k1, err := GenerateKeys(p, params, 20, 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	cases := []struct {
		x    uint64
		want uint64
	}{
		{0, 3},
		{19, 3},
		{20, 0},
		{21, 0},
		{63, 0},
	}
	for _, c := range cases {
		v0, _ := EvaluateAt(p, k0, c.x)
		v1, _ := EvaluateAt(p, k1, c.x)
		got := (v0 + v1) & maskE(6)
		if got != c.want {
			t.Fatalf("x=%d: got %d, want %d", c.x, got, c.want)
		}
	}
}

// ResolveDCF never enables early termination, even when asked for the
// optimized strategy; it downgrades to naive with a warning instead.
func TestResolveDCFNeverEarlyTerminates(t *testing.T) {
	params, warnings, err := fssparams.ResolveDCF(10, 8, fssparams.DCFOptimized)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if params.EvalType != fssparams.DCFNaive {
		t.Fatalf("expected downgrade to DCFNaive, got %v", params.EvalType)
	}
	if len(warnings) == 0 {
		t.Fatalf("expected a downgrade warning")
	}
	if params.Nu != params.N {
		t.Fatalf("DCF must never early-terminate: nu=%d, n=%d", params.Nu, params.N)
	}
}

// P5 analogue: DCF key serialization round trip.
func TestDCFSerializationRoundTrip(t *testing.T) {
	p := prg.New()
	params, _, err := fssparams.ResolveDCF(10, 10, fssparams.DCFNaive)
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

func TestDCFCloneIsIndependent(t *testing.T) {
	p := prg.New()
	params, _, _ := fssparams.ResolveDCF(5, 5, fssparams.DCFNaive)
	k0, _, err := GenerateKeys(p, params, 3, 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	clone := k0.Clone()
	k0.CWValue[0] = ^k0.CWValue[0]
	if clone.CWValue[0] == k0.CWValue[0] {
		t.Fatalf("clone should be independent of source mutation")
	}
}

func TestDCFGenerateKeysRejectsOutOfRangeBeta(t *testing.T) {
	p := prg.New()
	params, _, _ := fssparams.ResolveDCF(4, 4, fssparams.DCFNaive)
	if _, _, err := GenerateKeys(p, params, 5, 16); err == nil {
		t.Fatalf("expected error for beta out of range")
	}
}
