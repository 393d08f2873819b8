package protocol

import (
	"fmt"

	"github.com/sachaservan/pir/dpf"
	"github.com/sachaservan/pir/prg"
)

// Channel is the one-round send/receive abstraction DotProductSharedIndex
// needs to reconstruct a masked index. TCP channel plumbing itself is out
// of scope for this package; callers supply whatever transport they have.
type Channel interface {
	Send(v uint64) error
	Receive() (uint64, error)
}

// DotProductMaskedIndex evaluates k over its full domain and returns this
// party's share of db[alpha], scanning db shifted by the public mask pr
// (see dpf.DotProductMaskedIndex).
func DotProductMaskedIndex(p *prg.PRG, k *dpf.Key, db []uint64, pr uint64) (uint64, error) {
	n := uint64(1) << uint(k.Params.N)
	if uint64(len(db)) != n {
		return 0, fmt.Errorf("protocol: dot product masked index: db has len %d, want 2^n=%d", len(db), n)
	}
	outputs := make([]uint64, n)
	if err := dpf.EvaluateFullDomain(p, k, outputs); err != nil {
		return 0, err
	}
	return dpf.DotProductMaskedIndex(outputs, db, pr)
}

// DotProductSharedIndex jointly reconstructs the masked index alpha+r
// (mod 2^n) from each party's additive index share by exchanging shares
// over chl, one round of blocking send/recv, then calls
// DotProductMaskedIndex with the reconstructed mask.
func DotProductSharedIndex(p *prg.PRG, k *dpf.Key, db []uint64, indexShare uint64, chl Channel) (uint64, error) {
	n := uint64(1) << uint(k.Params.N)
	if err := chl.Send(indexShare % n); err != nil {
		return 0, fmt.Errorf("protocol: dot product shared index: send: %w", err)
	}
	peerShare, err := chl.Receive()
	if err != nil {
		return 0, fmt.Errorf("protocol: dot product shared index: receive: %w", err)
	}
	pr := (indexShare + peerShare) % n
	return DotProductMaskedIndex(p, k, db, pr)
}
