// Package fssparams resolves the immutable (n, e, eval_type, output_mode,
// enable_et, nu) parameter tuple that every DPF/DCF key generator and
// evaluator is built from, downgrading unsupported combinations with a
// warning instead of miscomputing them silently.
package fssparams

import "fmt"

// OutputMode selects how a packed early-termination leaf encodes its
// payload.
type OutputMode int

const (
	// ShiftedAdditive packs 2^r ring elements per leaf block (r=2: four
	// 32-bit lanes, r=3: eight 16-bit lanes), combined by addition.
	ShiftedAdditive OutputMode = iota
	// SingleBitMask packs 128 single-bit outputs per leaf block,
	// combined by XOR. Requires e=1.
	SingleBitMask
)

func (m OutputMode) String() string {
	switch m {
	case ShiftedAdditive:
		return "ShiftedAdditive"
	case SingleBitMask:
		return "SingleBitMask"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// DPFEvalType selects the DPF full-domain walk strategy.
type DPFEvalType int

const (
	Naive DPFEvalType = iota
	Recursion
	HybridBatched
	DepthFirst
)

func (e DPFEvalType) String() string {
	switch e {
	case Naive:
		return "Naive"
	case Recursion:
		return "Recursion"
	case HybridBatched:
		return "HybridBatched"
	case DepthFirst:
		return "DepthFirst"
	default:
		return fmt.Sprintf("DPFEvalType(%d)", int(e))
	}
}

// DCFEvalType selects the DCF walk strategy. Optimized is accepted as a
// request but always resolves to the naive full-depth walk: DCF early
// termination is not implemented (see DESIGN.md).
type DCFEvalType int

const (
	DCFNaive DCFEvalType = iota
	DCFOptimized
)

func (e DCFEvalType) String() string {
	switch e {
	case DCFNaive:
		return "DCFNaive"
	case DCFOptimized:
		return "DCFOptimized"
	default:
		return fmt.Sprintf("DCFEvalType(%d)", int(e))
	}
}

// DPFParameters is the resolved, immutable configuration a DPF key
// generator/evaluator pair is built from.
type DPFParameters struct {
	N          int
	E          int
	EvalType   DPFEvalType
	OutputMode OutputMode
	EnableET   bool
	Nu         int
}

// R returns the number of collapsed bottom levels, n - nu.
func (p DPFParameters) R() int {
	return p.N - p.Nu
}

// DCFParameters is the resolved, immutable configuration a DCF key
// generator/evaluator pair is built from. DCF never enables early
// termination, so Nu is always N.
type DCFParameters struct {
	N        int
	E        int
	EvalType DCFEvalType
	Nu       int
}

// smallDomainThreshold reports whether n is below the threshold at which
// early termination stops paying for itself: n<=8 for e>1, n<10 for e=1.
func smallDomainThreshold(n, e int) bool {
	if e == 1 {
		return n < 10
	}
	return n <= 8
}

// ResolveDPF derives the full DPF parameter tuple from a requested
// (n, e, evalType, outputMode), downgrading unsupported combinations
// (recorded as warnings) rather than producing an inconsistent tuple.
// It returns a non-recoverable error only for out-of-range n/e or an
// output mode that cannot be reconciled with e by any downgrade.
func ResolveDPF(n, e int, evalType DPFEvalType, outputMode OutputMode) (DPFParameters, []string, error) {
	var warnings []string

	if n <= 0 || n > 32 {
		return DPFParameters{}, nil, fmt.Errorf("fssparams: n=%d out of range (1..32)", n)
	}
	if e <= 0 || e > 64 {
		return DPFParameters{}, nil, fmt.Errorf("fssparams: e=%d out of range (1..64)", e)
	}
	if outputMode == SingleBitMask && e != 1 {
		return DPFParameters{}, nil, fmt.Errorf("fssparams: SingleBitMask requires e=1, got e=%d", e)
	}

	resolvedEval := evalType
	resolvedMode := outputMode

	// Naive and DepthFirst never early-terminate; everything else does
	// unless the domain is too small to bother.
	enableET := resolvedEval != Naive && resolvedEval != DepthFirst
	if enableET && smallDomainThreshold(n, e) {
		warnings = append(warnings, fmt.Sprintf(
			"n=%d below small-domain threshold for e=%d: downgrading eval_type %s to Naive and disabling early termination",
			n, e, resolvedEval))
		resolvedEval = Naive
		enableET = false
	}
	if resolvedEval == Naive && enableET {
		// Defensive: should already be false by construction above.
		enableET = false
	}
	if !enableET && resolvedMode == SingleBitMask {
		warnings = append(warnings, "early termination disabled: downgrading SingleBitMask to ShiftedAdditive")
		resolvedMode = ShiftedAdditive
	}

	nu := n
	if enableET {
		switch {
		case e == 1:
			nu = n - 7
		case n < 17:
			nu = n - 3
		case n < 33:
			nu = n - 2
		}
	}
	if nu < 0 || nu > n {
		return DPFParameters{}, nil, fmt.Errorf("fssparams: resolved nu=%d invalid for n=%d", nu, n)
	}
	if enableET {
		switch r := n - nu; r {
		case 2, 3, 7:
		default:
			return DPFParameters{}, nil, fmt.Errorf("fssparams: resolved r=%d unsupported (must be 2, 3 or 7)", r)
		}
	}

	return DPFParameters{
		N:          n,
		E:          e,
		EvalType:   resolvedEval,
		OutputMode: resolvedMode,
		EnableET:   enableET,
		Nu:         nu,
	}, warnings, nil
}

// ResolveDCF derives the DCF parameter tuple. DCF never early-terminates
// regardless of the requested eval type, so Nu is always n; a request for
// DCFOptimized is downgraded to DCFNaive and the downgrade is recorded as
// a warning.
func ResolveDCF(n, e int, evalType DCFEvalType) (DCFParameters, []string, error) {
	var warnings []string

	if n <= 0 || n > 32 {
		return DCFParameters{}, nil, fmt.Errorf("fssparams: n=%d out of range (1..32)", n)
	}
	if e <= 0 || e > 64 {
		return DCFParameters{}, nil, fmt.Errorf("fssparams: e=%d out of range (1..64)", e)
	}

	if evalType == DCFOptimized {
		warnings = append(warnings, "DCF early termination not implemented: DCFOptimized resolves to the naive full-depth walk")
		evalType = DCFNaive
	}

	return DCFParameters{
		N:        n,
		E:        e,
		EvalType: evalType,
		Nu:       n,
	}, warnings, nil
}
