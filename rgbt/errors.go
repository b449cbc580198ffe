package rgbt

import (
	"fmt"

	"github.com/pkg/errors"
)

// An OperationKind classifies why an operation was refused.
type OperationKind int

const (
	// NotLegalHere is returned when the target does not support the
	// operation at all, e.g. removing a level 0 vertex or splitting a red
	// edge.
	NotLegalHere OperationKind = iota

	// VertexOnBorder is returned when an interior-only operation is applied
	// on the mesh boundary, or vice versa.
	VertexOnBorder

	// PatternMismatch is returned when the colors around the target do not
	// match any known configuration.
	PatternMismatch
)

func (o OperationKind) String() string {
	switch o {
	case NotLegalHere:
		return "not legal here"
	case VertexOnBorder:
		return "vertex on border"
	case PatternMismatch:
		return "pattern mismatch"
	}
	return fmt.Sprintf("OperationKind(%d)", int(o))
}

// An OperationError is returned by the mesh-changing entry points when the
// requested operation is not feasible. The mesh is not modified when an
// OperationError is returned, with one exception: RemoveVertex keeps the
// edge swaps it applied around a vertex when no merge could follow them.
// The mesh stays valid in that case.
type OperationError struct {
	Kind  OperationKind
	Op    string
	Face  int
	Index int
}

func (o *OperationError) Error() string {
	return fmt.Sprintf("%s (face %d, index %d): %s", o.Op, o.Face, o.Index, o.Kind)
}

// Is makes errors.Is match any OperationError of the same kind.
func (o *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	return ok && t.Kind == o.Kind && t.Op == ""
}

var (
	ErrNotLegalHere    = &OperationError{Kind: NotLegalHere}
	ErrVertexOnBorder  = &OperationError{Kind: VertexOnBorder}
	ErrPatternMismatch = &OperationError{Kind: PatternMismatch}
)

func opError(kind OperationKind, op string, face, index int) error {
	return errors.WithStack(&OperationError{Kind: kind, Op: op, Face: face, Index: index})
}
