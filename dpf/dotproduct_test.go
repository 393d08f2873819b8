package dpf

import (
	"testing"

	"github.com/sachaservan/pir/fssparams"
	"github.com/sachaservan/pir/prg"
)

// C7: full-domain dot product recovers db[alpha].
func TestC7DotProductRecoversIndex(t *testing.T) {
	p := prg.New()
	params, _, err := fssparams.ResolveDPF(4, 64, fssparams.Recursion, fssparams.ShiftedAdditive)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	alpha := uint64(6)
	k0, k1, err := GenerateKeys(p, params, alpha, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	n := 1 << uint(params.N)
	db := make([]uint64, n)
	for i := range db {
		db[i] = uint64(100 + i)
	}

	out0 := make([]uint64, n)
	out1 := make([]uint64, n)
	if err := EvaluateFullDomain(p, k0, out0); err != nil {
		t.Fatalf("eval k0: %v", err)
	}
	if err := EvaluateFullDomain(p, k1, out1); err != nil {
		t.Fatalf("eval k1: %v", err)
	}

	s0, err := DotProduct(out0, db)
	if err != nil {
		t.Fatalf("dot product k0: %v", err)
	}
	s1, err := DotProduct(out1, db)
	if err != nil {
		t.Fatalf("dot product k1: %v", err)
	}
	if got, want := s0+s1, db[alpha]; got != want {
		t.Fatalf("dot product reconstructs to %d, want db[%d]=%d", got, alpha, want)
	}
}

// C7: masked-index dot product recovers db[alpha] when the scan is
// shifted by a public mask pr, wrapping modulo the domain size.
func TestC7DotProductMaskedIndex(t *testing.T) {
	p := prg.New()
	params, _, err := fssparams.ResolveDPF(4, 64, fssparams.Recursion, fssparams.ShiftedAdditive)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	alpha := uint64(6)
	pr := uint64(9)
	// Key is generated for the masked point (alpha-pr) mod 2^n so that
	// the dot product's pr-shifted scan lands back on alpha.
	n := uint64(1) << uint(params.N)
	maskedAlpha := (alpha + n - pr%n) % n
	k0, k1, err := GenerateKeys(p, params, maskedAlpha, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	db := make([]uint64, n)
	for i := range db {
		db[i] = uint64(1000 + i)
	}

	out0 := make([]uint64, n)
	out1 := make([]uint64, n)
	if err := EvaluateFullDomain(p, k0, out0); err != nil {
		t.Fatalf("eval k0: %v", err)
	}
	if err := EvaluateFullDomain(p, k1, out1); err != nil {
		t.Fatalf("eval k1: %v", err)
	}

	s0, err := DotProductMaskedIndex(out0, db, pr)
	if err != nil {
		t.Fatalf("masked dot product k0: %v", err)
	}
	s1, err := DotProductMaskedIndex(out1, db, pr)
	if err != nil {
		t.Fatalf("masked dot product k1: %v", err)
	}
	if got, want := s0+s1, db[alpha]; got != want {
		t.Fatalf("masked dot product reconstructs to %d, want db[%d]=%d", got, alpha, want)
	}
}
