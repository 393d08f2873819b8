package pir

import (
	"errors"
	"math"
	"math/big"

	"github.com/sachaservan/paillier"
	"github.com/sachaservan/pir/dpf"
	"github.com/sachaservan/pir/fssparams"
	"github.com/sachaservan/pir/prg"
)

// QueryShare is one party's share of a DPF-based PIR query over the
// database: the DPF key that evaluates to the one-bit indicator of the
// requested row (or keyword), plus the resolved parameters needed to
// evaluate it.
type QueryShare struct {
	Key            *dpf.Key
	Params         fssparams.DPFParameters
	IsKeywordBased bool
	ShareNumber    uint
	GroupSize      int // width of the database (columns per row)
	DimHeight      int // height of the database
}

// EncryptedQuery is an encryption of a point function
// that evaluates to 1 at the desired row in the database
// bits = (0, 0,.., 1, ...0, 0). DBWidth is the number of adjacent
// slots a matching row contributes (the group size); DBHeight is
// len(EBits).
type EncryptedQuery struct {
	Pk       *paillier.PublicKey
	EBits    []*paillier.Ciphertext
	DBWidth  int
	DBHeight int
}

// DoublyEncryptedQuery composes two encrypted point functions: Row
// selects one group of DBWidth adjacent slots, Col then selects one
// slot within that group.
type DoublyEncryptedQuery struct {
	Pk  *paillier.PublicKey
	Row *EncryptedQuery
	Col *EncryptedQuery
}

// NewIndexQueryShares generates the two PIR query shares for index, over
// a database of the given groupSize (dbmd.DBSize rows are grouped into
// ceil(DBSize/groupSize)-row "groups" of groupSize adjacent slots). Only
// two-party queries are supported: the DPF core this is built on is a
// two-party GGM-tree construction (see dpf.GenerateKeys), not an
// n-party one.
func (dbmd *DBMetadata) NewIndexQueryShares(index uint, groupSize int) []*QueryShare {
	dimHeight := int(math.Ceil(float64(dbmd.DBSize) / float64(groupSize)))
	shares, err := dbmd.newQueryShares(uint64(index), dimHeight, groupSize, true)
	if err != nil {
		panic(err)
	}
	return shares
}

// NewKeywordQueryShares generates keyword-based PIR query shares for keyword.
func (dbmd *DBMetadata) NewKeywordQueryShares(keyword uint, height int, groupSize int) []*QueryShare {
	shares, err := dbmd.newQueryShares(uint64(keyword), height, groupSize, false)
	if err != nil {
		panic(err)
	}
	return shares
}

// newQueryShares resolves DPF parameters for a beta=1, SingleBitMask
// point function over the row domain (or the 32-bit keyword domain) and
// generates the two-party key pair for it.
func (dbmd *DBMetadata) newQueryShares(key uint64, dimHeight int, groupSize int, isIndexQuery bool) ([]*QueryShare, error) {

	// num bits to represent the index
	numBits := int(math.Log2(float64(dimHeight)) + 1)

	// otherwise assume keyword based (32 bit keys)
	if !isIndexQuery {
		numBits = 32
	}

	if isIndexQuery && key >= uint64(dimHeight) {
		return nil, errors.New("requesting key outside of domain")
	}

	params, _, err := fssparams.ResolveDPF(numBits, 1, fssparams.HybridBatched, fssparams.SingleBitMask)
	if err != nil {
		return nil, err
	}

	p := prg.New()
	k0, k1, err := dpf.GenerateKeys(p, params, key, 1)
	if err != nil {
		return nil, err
	}

	shares := make([]*QueryShare, 2)
	for i, k := range []*dpf.Key{k0, k1} {
		shares[i] = &QueryShare{
			Key:            k,
			Params:         params,
			IsKeywordBased: !isIndexQuery,
			ShareNumber:    uint(i),
			GroupSize:      groupSize,
			DimHeight:      dimHeight,
		}
	}

	return shares, nil
}

// NewEncryptedQuery generates a new encrypted point function, of height
// dimHeight bits, that acts as a PIR query selecting a group of
// dimWidth adjacent slots at row index.
func (dbmd *DBMetadata) NewEncryptedQuery(pk *paillier.PublicKey, dimWidth, dimHeight, index int) *EncryptedQuery {

	res := make([]*paillier.Ciphertext, dimHeight)
	for i := 0; i < dimHeight; i++ {
		if i == index {
			res[i] = pk.EncryptOne()
		} else {
			res[i] = pk.EncryptZero()
		}
	}

	return &EncryptedQuery{
		Pk:       pk,
		EBits:    res,
		DBWidth:  dimWidth,
		DBHeight: dimHeight,
	}
}

// NewDoublyEncryptedQuery generates two encrypted point functions that act
// as a PIR query to select the row-group and then the column within it.
func (dbmd *DBMetadata) NewDoublyEncryptedQuery(pk *paillier.PublicKey, groupSize int, index int) *DoublyEncryptedQuery {

	dimWidth := groupSize
	dimHeight := int(math.Ceil(float64(dbmd.DBSize) / float64(dimWidth)))

	rowIndex := index / dimWidth
	colIndex := index % dimWidth

	row := make([]*paillier.Ciphertext, dimHeight)
	for i := 0; i < dimHeight; i++ {
		if i == rowIndex {
			row[i] = pk.EncryptOne()
		} else {
			row[i] = pk.EncryptZero()
		}
	}

	col := make([]*paillier.Ciphertext, dimWidth)
	for i := 0; i < dimWidth; i++ {
		if i == colIndex {
			col[i] = pk.EncryptOneAtLevel(paillier.EncLevelTwo)
		} else {
			col[i] = pk.EncryptZeroAtLevel(paillier.EncLevelTwo)
		}
	}

	return &DoublyEncryptedQuery{
		Pk: pk,
		Row: &EncryptedQuery{
			Pk:       pk,
			EBits:    row,
			DBWidth:  dimWidth,
			DBHeight: dimHeight,
		},
		Col: &EncryptedQuery{
			Pk:       pk,
			EBits:    col,
			DBWidth:  1,
			DBHeight: dimWidth,
		},
	}
}

// Recover combines shares of slots to recover the data
func Recover(resShares []*SecretSharedQueryResult) []*Slot {

	numSlots := len(resShares[0].Shares)
	res := make([]*Slot, numSlots)

	// init the slots with the correct size
	for i := 0; i < numSlots; i++ {
		res[i] = &Slot{
			Data: make([]byte, resShares[0].SlotBytes),
		}
	}

	for i := 0; i < len(resShares); i++ {
		for j := 0; j < numSlots; j++ {
			XorSlots(res[j], resShares[i].Shares[j])
		}
	}

	return res
}

// RecoverEncrypted decryptes the encrypted slot and returns slot
func RecoverEncrypted(res *EncryptedQueryResult, sk *paillier.SecretKey) []*Slot {

	slots := make([]*Slot, len(res.Slots))

	// iterate over all the encrypted slots
	for i, eslot := range res.Slots {
		arr := make([]*big.Int, len(eslot.Cts))
		for j, ct := range eslot.Cts {
			arr[j] = paillier.ToBigInt(sk.Decrypt(ct))
		}

		slots[i] = NewSlotFromBigIntArray(arr, res.SlotBytes, res.NumBytesPerCiphertext)
	}

	return slots
}

// RecoverDoublyEncrypted decryptes the encrypted slot and returns slot
func RecoverDoublyEncrypted(res *DoublyEncryptedQueryResult, sk *paillier.SecretKey) *Slot {

	ciphertexts := make([]*paillier.Ciphertext, len(res.Slots))
	for i, slot := range res.Slots {

		arr := make([]*big.Int, len(slot.Cts))
		for j, ct := range slot.Cts {
			arr[j] = paillier.ToBigInt(sk.Decrypt(ct))
		}

		ciphertexts[i] = &paillier.Ciphertext{C: arr[0], Level: paillier.EncLevelOne}
	}

	arr := make([]*big.Int, len(ciphertexts))
	for j, c := range ciphertexts {
		arr[j] = paillier.ToBigInt(sk.Decrypt(c))
	}

	return NewSlotFromBigIntArray(arr, res.SlotBytes, res.NumBytesPerCiphertext)
}
