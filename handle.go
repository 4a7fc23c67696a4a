package dice

// Handle is an opaque reference to a fully parsed and evaluated
// expression. It is the only way external callers touch the AST: the four
// operations in spec.md's external interface (evaluate, total, results,
// free) are its constructor and methods.
type Handle struct {
	root  *Node
	freed bool
}

// Evaluate parses input, rolls every die it describes using the package's
// default Source, and returns a Handle to the evaluated result. On
// failure it returns a nil Handle and an *EvalError identifying the
// phase (parse or evaluate) and reason.
//
// The caller owns the returned Handle and must call Free on it.
func Evaluate(input string) (*Handle, error) {
	return EvaluateWithSource(input, defaultSource)
}

// EvaluateWithSource is Evaluate against an explicit Source instead of the
// package default, for callers that need a private or deterministic
// generator (tests, or concurrent evaluators each owning their own
// source — see the sync subpackage for a shared, synchronized one).
func EvaluateWithSource(input string, src Source) (*Handle, error) {
	root, err := parseExpr(input)
	if err != nil {
		return nil, err
	}
	if err := evaluate(root, src); err != nil {
		// A partially evaluated tree is still owned by the caller in
		// spec, but Evaluate never hands out a Handle to it: there is no
		// way to name a failed evaluation through this API, so free it
		// here instead of leaking it.
		free(root)
		return nil, err
	}
	return &Handle{root: root}, nil
}

// Total returns the expression's numeric total.
func (h *Handle) Total() (float64, error) {
	if h == nil {
		return 0, ErrNullResult
	}
	if h.freed {
		return 0, ErrInvalidNode
	}
	return total(h.root)
}

// KeptResults returns the sorted faces that contributed to the total
// (after any keep/drop selection). ErrNoDice means the expression had no
// reportable roll at all (e.g. a pure arithmetic expression like "2+3*4").
func (h *Handle) KeptResults() ([]float64, error) {
	if h == nil {
		return nil, ErrNullResult
	}
	if h.freed {
		return nil, ErrInvalidNode
	}
	return keptResults(h.root)
}

// RawResults is KeptResults but includes faces a Keep dropped.
func (h *Handle) RawResults() ([]float64, error) {
	if h == nil {
		return nil, ErrNullResult
	}
	if h.freed {
		return nil, ErrInvalidNode
	}
	return rawResults(h.root)
}

// Tree returns the evaluated AST root, for debug tooling (the CLI's
// eval --ast mode) that wants to inspect node structure beyond
// the Total/KeptResults/RawResults summaries. It is not part of the core
// external interface and callers should still prefer the summary accessors
// for anything but debugging.
func (h *Handle) Tree() (*Node, error) {
	if h == nil {
		return nil, ErrNullResult
	}
	if h.freed {
		return nil, ErrInvalidNode
	}
	return h.root, nil
}

// Free releases the handle. It is safe to call more than once; the second
// and later calls are no-ops, matching the double-free guard the original
// implementation relies on the root's overwritten tag for.
func (h *Handle) Free() {
	if h == nil || h.freed {
		return
	}
	free(h.root)
	h.freed = true
}
