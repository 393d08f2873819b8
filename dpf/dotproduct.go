package dpf

import "fmt"

// DotProduct returns one party's additive share of db[alpha] mod 2^64,
// given outputs already filled in by EvaluateFullDomain for a beta=1
// point function and an external database vector of the same length.
// Ring arithmetic here is always mod 2^64 (the width of a uint64),
// independent of the DPF's own params.E, so the result is a share of
// db[alpha] only when the outputs are shares mod 2^64 (params.E = 64).
func DotProduct(outputs []uint64, db []uint64) (uint64, error) {
	if len(outputs) != len(db) {
		return 0, fmt.Errorf("dpf: dot product: outputs has len %d, db has len %d", len(outputs), len(db))
	}
	var sum uint64
	for i, v := range outputs {
		sum += v * db[i]
	}
	return sum, nil
}

// DotProductMaskedIndex is DotProduct with the database scan shifted by
// the public mask pr, wrapping modulo len(db): outputs[i] pairs with
// db[(i+pr) mod len(db)] rather than db[i]. This recovers db[alpha] when
// the key was generated for a masked point alpha-pr rather than alpha
// itself, so that alpha is never handled in the clear by either party.
func DotProductMaskedIndex(outputs []uint64, db []uint64, pr uint64) (uint64, error) {
	n := len(outputs)
	if n != len(db) {
		return 0, fmt.Errorf("dpf: dot product: outputs has len %d, db has len %d", n, len(db))
	}
	mod := uint64(n)
	var sum uint64
	for i, v := range outputs {
		j := (uint64(i) + pr) % mod
		sum += v * db[j]
	}
	return sum, nil
}
