package dpf

import (
	"encoding/binary"
	"fmt"

	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/fssparams"
)

// serializedSize computes the predicted encoded length of a key with the
// given cw_length, per spec.md 4.8's layout: party_id(8) + init_seed(16)
// + cw_length(8) + cw_seed(16*L) + cw_control_left(L) + cw_control_right(L)
// + output(16).
func serializedSize(cwLength int) int {
	return 8 + 16 + 8 + 16*cwLength + cwLength + cwLength + 16
}

// Serialize encodes k into its canonical binary form. The constructor's
// predicted size and the emitted buffer length are cross-checked; a
// mismatch is an internal bug and panics rather than returning a
// corrupt buffer.
func (k *Key) Serialize() []byte {
	l := k.CWLength()
	want := serializedSize(l)
	buf := make([]byte, want)
	off := 0

	binary.LittleEndian.PutUint64(buf[off:], uint64(k.PartyID))
	off += 8

	seedBytes := k.InitSeed.Bytes()
	copy(buf[off:], seedBytes[:])
	off += 16

	binary.LittleEndian.PutUint64(buf[off:], uint64(l))
	off += 8

	for _, cw := range k.CWSeed {
		b := cw.Bytes()
		copy(buf[off:], b[:])
		off += 16
	}
	for _, bit := range k.CWControlLeft {
		buf[off] = boolByte(bit)
		off++
	}
	for _, bit := range k.CWControlRight {
		buf[off] = boolByte(bit)
		off++
	}
	outBytes := k.Output.Bytes()
	copy(buf[off:], outBytes[:])
	off += 16

	if off != want {
		panic(fmt.Sprintf("dpf: serialized size mismatch: wrote %d bytes, predicted %d", off, want))
	}
	return buf
}

// DeserializeKey decodes a key previously produced by Serialize, given
// the parameter tuple it was generated under (parameters are not
// self-describing in the wire format and must be supplied by the
// caller, matching how they were resolved at generation time).
func DeserializeKey(params fssparams.DPFParameters, buf []byte) (*Key, error) {
	if len(buf) < 8+16+8 {
		return nil, fmt.Errorf("dpf: deserialize: buffer too short (%d bytes)", len(buf))
	}
	off := 0
	partyID := int(binary.LittleEndian.Uint64(buf[off:]))
	off += 8

	var seedBytes [16]byte
	copy(seedBytes[:], buf[off:off+16])
	initSeed := block.FromBytes(seedBytes)
	off += 16

	l := int(binary.LittleEndian.Uint64(buf[off:]))
	off += 8

	want := serializedSize(l)
	if len(buf) != want {
		return nil, fmt.Errorf("dpf: deserialize: buffer has %d bytes, expected %d for cw_length=%d", len(buf), want, l)
	}

	cwSeed := make([]block.Block, l)
	for i := 0; i < l; i++ {
		var b [16]byte
		copy(b[:], buf[off:off+16])
		cwSeed[i] = block.FromBytes(b)
		off += 16
	}
	cwCtrlLeft := make([]bool, l)
	for i := 0; i < l; i++ {
		cwCtrlLeft[i] = buf[off] != 0
		off++
	}
	cwCtrlRight := make([]bool, l)
	for i := 0; i < l; i++ {
		cwCtrlRight[i] = buf[off] != 0
		off++
	}
	var outBytes [16]byte
	copy(outBytes[:], buf[off:off+16])
	output := block.FromBytes(outBytes)
	off += 16

	if off != want {
		return nil, fmt.Errorf("dpf: deserialize: consumed %d bytes, expected %d", off, want)
	}

	return &Key{
		PartyID:        partyID,
		InitSeed:       initSeed,
		Params:         params,
		CWSeed:         cwSeed,
		CWControlLeft:  cwCtrlLeft,
		CWControlRight: cwCtrlRight,
		Output:         output,
	}, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
