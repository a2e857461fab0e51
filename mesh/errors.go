// Copyright © 2026 Freestyle Sculpt contributors.

package mesh

import (
	"errors"
	"fmt"
)

// ErrStaleId marks a lookup against an id that is no longer live. Per
// §7 policy this is never returned to callers from query methods (which
// instead report ok=false); it exists for operators that need to
// distinguish "stale" from other no-op reasons in logging.
var ErrStaleId = errors.New("mesh: stale id")

// ErrBrokenInvariant marks an internal assertion failure (missing twin,
// missing next on a face-bearing half-edge, unset outgoing on a
// connected vertex). Operations that hit this abort without partial
// mutation; the caller should discard the mesh. InvariantError is the
// concrete value returned to callers; this sentinel is what errors.Is
// matches against.
var ErrBrokenInvariant = errors.New("mesh: broken invariant")

// ErrDegenerateGeometry marks a proposed edit (zero-length edge split,
// zero-area triangle) that was skipped without mutating the mesh.
var ErrDegenerateGeometry = errors.New("mesh: degenerate geometry")

// InvariantError reports a BrokenInvariant-class failure: Invariant
// names the specific assertion that broke (§7), HalfEdge identifies the
// operand the operator aborted on. The operation that constructs one
// has already left the mesh unmutated.
type InvariantError struct {
	Invariant string
	HalfEdge  HalfEdgeID
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("mesh: broken invariant: %s (halfedge %d)", e.Invariant, e.HalfEdge)
}

func (e *InvariantError) Unwrap() error { return ErrBrokenInvariant }
