package generator

import (
	"errors"

	"svw.info/dotlink/internal/ports"
)

// AnchorGenerator places random anchor pairs and keeps retrying until
// the provided Solver accepts the level.
type AnchorGenerator struct {
	Solver ports.Solver
}

// NewAnchorGenerator wires a generator that uses the given solver for
// solvability and uniqueness checks.
func NewAnchorGenerator(s ports.Solver) *AnchorGenerator {
	return &AnchorGenerator{Solver: s}
}

var (
	// ErrBadSpec rejects an invalid parameterization before any search:
	// non-positive dimensions, a pair count outside the palette, or more
	// anchors than the board has cells.
	ErrBadSpec = errors.New("generator: invalid level spec")

	// ErrRetryExhausted is returned when no acceptable level was found
	// within the attempt ceiling.
	ErrRetryExhausted = errors.New("generator: attempt ceiling reached")
)

// maxAttempts bounds the retry loop. Infeasible but samplable specs
// (say, too many pairs for the area to ever cover) burn through the
// ceiling rather than spinning forever.
const maxAttempts = 1000
