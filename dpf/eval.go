package dpf

import (
	"fmt"
	"math/bits"

	"github.com/sachaservan/pir/block"
	"github.com/sachaservan/pir/fssparams"
	"github.com/sachaservan/pir/prg"
)

// walkState is a party's ephemeral (seed, control bit) during a tree
// walk. It is never stored on Key; it lives only as a local variable.
type walkState struct {
	seed block.Block
	t    bool
}

// step descends one level of the GGM tree along bit `dir` (false=left,
// true=right), applying the level-i correction words.
func step(p *prg.PRG, k *Key, st walkState, i int, dir bool) walkState {
	side := prg.Left
	if dir {
		side = prg.Right
	}
	exp := p.Expand(st.seed, side)
	lsb := exp.Lsb()
	exp = exp.WithLsbZero()

	cwCtrl := k.CWControlLeft[i]
	if dir {
		cwCtrl = k.CWControlRight[i]
	}

	seed := exp.Xor(k.CWSeed[i].And(block.Select[boolIdx(st.t)]))
	t := lsb != (cwCtrl && st.t)
	return walkState{seed: seed, t: t}
}

// walkToDepth walks from the key's init seed along the top `levels` bits
// (MSB-first) of path, within an n-bit domain.
func walkToDepth(p *prg.PRG, k *Key, path uint64, levels int) walkState {
	st := walkState{seed: k.InitSeed, t: k.PartyID == 1}
	for i := 0; i < levels; i++ {
		dir := (path>>uint(k.Params.N-i-1))&1 == 1
		st = step(p, k, st, i, dir)
	}
	return st
}

// finalizeNaive computes the naive-mode (no early termination) reconstructed
// ring share at the end of a full n-level walk.
func finalizeNaive(p *prg.PRG, k *Key, st walkState) uint64 {
	finalSeed := p.Expand(st.seed, prg.Left)
	v := convert(finalSeed, k.Params.E)
	if st.t {
		v = (v + convert(k.Output, k.Params.E)) & maskE(k.Params.E)
	}
	return signCombine(k.PartyID == 1, v) & maskE(k.Params.E)
}

// finalizeLeaf computes the packed early-termination leaf block at the
// end of a nu-level walk.
func finalizeLeaf(p *prg.PRG, k *Key, st walkState) block.Block {
	finalSeed := p.Expand(st.seed, prg.Left)
	if k.Params.OutputMode == fssparams.SingleBitMask {
		if st.t {
			return finalSeed.Xor(k.Output)
		}
		return finalSeed
	}
	r := k.Params.R()
	lanes := finalSeed
	if st.t {
		lanes = addLanesR(r, lanes, k.Output)
	}
	if k.PartyID == 1 {
		lanes = negateLanesR(r, lanes)
	}
	return lanes
}

// EvaluateAt evaluates a single point x in [0, 2^n) and returns this
// party's share of f(x) mod 2^e.
func EvaluateAt(p *prg.PRG, k *Key, x uint64) (uint64, error) {
	if x >= uint64(1)<<uint(k.Params.N) {
		return 0, fmt.Errorf("dpf: x=%d out of range for n=%d", x, k.Params.N)
	}
	st := walkToDepth(p, k, x, k.Params.Nu)
	if !k.Params.EnableET {
		return finalizeNaive(p, k, st), nil
	}
	leaf := finalizeLeaf(p, k, st)
	return readLeaf(k.Params, leaf, x), nil
}

// EvaluateFullDomain fills outputs[0..2^n) with this party's share of
// f(x) for every x, using the strategy named by k.Params.EvalType.
func EvaluateFullDomain(p *prg.PRG, k *Key, outputs []uint64) error {
	n := k.Params.N
	want := 1 << uint(n)
	if len(outputs) != want {
		return fmt.Errorf("dpf: outputs has len %d, want %d (2^n)", len(outputs), want)
	}

	if !k.Params.EnableET {
		switch k.Params.EvalType {
		case fssparams.DepthFirst:
			return depthFirstRingWalk(p, k, outputs)
		default:
			for x := 0; x < want; x++ {
				v, err := EvaluateAt(p, k, uint64(x))
				if err != nil {
					return err
				}
				outputs[x] = v
			}
			return nil
		}
	}

	nu := k.Params.Nu
	leaves := make([]block.Block, 1<<uint(nu))
	var err error
	switch k.Params.EvalType {
	case fssparams.Naive:
		for j := range leaves {
			st := walkToDepth(p, k, uint64(j)<<uint(n-nu), nu)
			leaves[j] = finalizeLeaf(p, k, st)
		}
	case fssparams.Recursion:
		recursionWalk(p, k, walkState{seed: k.InitSeed, t: k.PartyID == 1}, 0, 0, leaves)
	case fssparams.HybridBatched:
		err = hybridBatchedWalk(p, k, leaves)
	default:
		return fmt.Errorf("dpf: eval type %s unsupported for full-domain early-termination output", k.Params.EvalType)
	}
	if err != nil {
		return err
	}

	r := k.Params.R()
	for j, leaf := range leaves {
		base := j << uint(r)
		for off := 0; off < 1<<uint(r); off++ {
			outputs[base+off] = readLeaf(k.Params, leaf, uint64(off))
		}
	}
	return nil
}

// recursionWalk is a top-down depth-first traversal: double-expand at
// each internal node and recurse left then right, writing a leaf block
// once `level` reaches nu.
func recursionWalk(p *prg.PRG, k *Key, st walkState, level, prefix int, leaves []block.Block) {
	if level == k.Params.Nu {
		leaves[prefix] = finalizeLeaf(p, k, st)
		return
	}
	left := step(p, k, st, level, false)
	right := step(p, k, st, level, true)
	recursionWalk(p, k, left, level+1, prefix<<1, leaves)
	recursionWalk(p, k, right, level+1, (prefix<<1)|1, leaves)
}

// hybridBatchedWalk performs a BFS of the top 3 levels to obtain 8
// (seed, t) pairs, then an iterative Gray-code DFS of the remaining
// nu-3 levels, batching each level's AES expansion across the 8
// sub-trees via PRG.ExpandBatch8. The Gray-code bookkeeping mirrors
// depthFirstRingWalk below, generalized to a group of 8 lock-step
// sub-trees sharing the same direction bit at every level (since they
// differ only in their fixed 3-bit prefix from phase A).
func hybridBatchedWalk(p *prg.PRG, k *Key, leaves []block.Block) error {
	nu := k.Params.Nu
	if nu < 3 {
		// Too shallow to batch in groups of 8; fall back to the plain
		// recursive walk, which is exact for any nu.
		recursionWalk(p, k, walkState{seed: k.InitSeed, t: k.PartyID == 1}, 0, 0, leaves)
		return nil
	}

	// Phase A: BFS the top 3 levels, in tree order so that group i's
	// 3-bit prefix equals i.
	var groupStates [8]walkState
	frontier := []walkState{{seed: k.InitSeed, t: k.PartyID == 1}}
	for level := 0; level < 3; level++ {
		next := make([]walkState, 0, len(frontier)*2)
		for _, st := range frontier {
			next = append(next, step(p, k, st, level, false), step(p, k, st, level, true))
		}
		frontier = next
	}
	if len(frontier) != 8 {
		return fmt.Errorf("dpf: hybrid batched walk expected 8 states after 3 levels, got %d", len(frontier))
	}
	copy(groupStates[:], frontier)

	remaining := nu - 3
	if remaining == 0 {
		for i, st := range groupStates {
			leaves[i] = finalizeLeaf(p, k, st)
		}
		return nil
	}

	// Phase B: Gray-code DFS of `remaining` levels, applied in lock-step
	// to all 8 sub-trees. stack[d] holds the 8 states at relative depth
	// d (0..remaining); level 3+d of the key's correction-word arrays
	// applies at relative depth d.
	stack := make([][8]walkState, 1, remaining+1)
	stack[0] = groupStates

	total := 1 << uint(remaining)
	for idx := 0; idx < total; idx++ {
		for lvl := len(stack) - 1; lvl < remaining; lvl++ {
			dir := (idx>>uint(remaining-lvl-1))&1 == 1
			var curSeeds [8]block.Block
			for i, st := range stack[lvl] {
				curSeeds[i] = st.seed
			}
			expanded := p.ExpandBatch8(curSeeds, sideOf(dir))

			cwLevel := 3 + lvl
			cwCtrl := k.CWControlLeft[cwLevel]
			if dir {
				cwCtrl = k.CWControlRight[cwLevel]
			}
			var next [8]walkState
			for i := 0; i < 8; i++ {
				lsb := expanded[i].Lsb()
				e := expanded[i].WithLsbZero()
				seed := e.Xor(k.CWSeed[cwLevel].And(block.Select[boolIdx(stack[lvl][i].t)]))
				t := lsb != (cwCtrl && stack[lvl][i].t)
				next[i] = walkState{seed: seed, t: t}
			}
			stack = append(stack, next)
		}

		leafGroup := stack[len(stack)-1]
		for i := 0; i < 8; i++ {
			leaves[(i<<uint(remaining))|idx] = finalizeLeaf(p, k, leafGroup[i])
		}

		if idx+1 < total {
			shift := uint64(idx+1) ^ uint64(idx)
			popLevels := bits.Len64(shift)
			newLen := len(stack) - popLevels
			if newLen < 1 {
				newLen = 1
			}
			stack = stack[:newLen]
		}
	}
	return nil
}

func sideOf(dir bool) prg.Side {
	if dir {
		return prg.Right
	}
	return prg.Left
}

// depthFirstRingWalk is the non-batched Gray-code iterative walker used
// for full-domain evaluation when early termination is disabled: it
// produces per-leaf ring elements (not packed blocks) directly. The
// stack holds one walkState per depth 0..n; after emitting leaf idx, the
// number of levels popped before descending to idx+1 is the position of
// the highest bit in which idx and idx+1 differ (spec.md 4.5's
// `floor(log2(shift)) + 1`, computed as `bits.Len64(shift)` — resolved
// in favor of this formula over the design-notes' ctz-based one, since
// only the highest-bit identity reproduces a binary-counter DFS order).
func depthFirstRingWalk(p *prg.PRG, k *Key, outputs []uint64) error {
	n := k.Params.N
	total := 1 << uint(n)

	stack := make([]walkState, 1, n+1)
	stack[0] = walkState{seed: k.InitSeed, t: k.PartyID == 1}

	for idx := 0; idx < total; idx++ {
		for lvl := len(stack) - 1; lvl < n; lvl++ {
			dir := (idx>>uint(n-lvl-1))&1 == 1
			stack = append(stack, step(p, k, stack[lvl], lvl, dir))
		}

		outputs[idx] = finalizeNaive(p, k, stack[len(stack)-1])

		if idx+1 < total {
			shift := uint64(idx+1) ^ uint64(idx)
			popLevels := bits.Len64(shift)
			newLen := len(stack) - popLevels
			if newLen < 1 {
				newLen = 1
			}
			stack = stack[:newLen]
		}
	}
	return nil
}
