package dcf

import (
	"encoding/binary"
	"fmt"

	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/fssparams"
)

// serializedSize computes the predicted encoded length of a key with the
// given cw_length, mirroring dpf's layout with an added cw_value section
// (8 bytes per level) and a scalar (rather than packed-block) output.
func serializedSize(cwLength int) int {
	return 8 + 16 + 8 + 16*cwLength + cwLength + cwLength + 8*cwLength + 8
}

// Serialize encodes k into its canonical binary form.
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
	for _, v := range k.CWValue {
		binary.LittleEndian.PutUint64(buf[off:], v)
		off += 8
	}
	binary.LittleEndian.PutUint64(buf[off:], k.Output)
	off += 8

	if off != want {
		panic(fmt.Sprintf("dcf: serialized size mismatch: wrote %d bytes, predicted %d", off, want))
	}
	return buf
}

// DeserializeKey decodes a key previously produced by Serialize, given the
// parameter tuple it was generated under.
func DeserializeKey(params fssparams.DCFParameters, buf []byte) (*Key, error) {
	if len(buf) < 8+16+8 {
		return nil, fmt.Errorf("dcf: deserialize: buffer too short (%d bytes)", len(buf))
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
		return nil, fmt.Errorf("dcf: deserialize: buffer has %d bytes, expected %d for cw_length=%d", len(buf), want, l)
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
	cwValue := make([]uint64, l)
	for i := 0; i < l; i++ {
		cwValue[i] = binary.LittleEndian.Uint64(buf[off:])
		off += 8
	}
	output := binary.LittleEndian.Uint64(buf[off:])
	off += 8

	if off != want {
		return nil, fmt.Errorf("dcf: deserialize: consumed %d bytes, expected %d", off, want)
	}

	return &Key{
		PartyID:        partyID,
		InitSeed:       initSeed,
		Params:         params,
		CWSeed:         cwSeed,
		CWControlLeft:  cwCtrlLeft,
		CWControlRight: cwCtrlRight,
		CWValue:        cwValue,
		Output:         output,
	}, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
