// core/geomre/errors.go
package geomre

import (
	"errors"
	"fmt"

	"seqgeom/core/geom"
)

var (
	// ErrRangeTooWide: a bounded-range piece spans more than MaxRangeWidth bases.
	ErrRangeTooWide = errors.New("bounded range too wide")
	// ErrInvalidPattern: the assembled pattern was rejected by the regexp compiler.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// CompileError describes why a read's geometry could not be compiled.
// Kind is ErrRangeTooWide or ErrInvalidPattern; errors.Is matches either.
type CompileError struct {
	Kind    error
	Read    int
	Piece   geom.Piece // offending piece for ErrRangeTooWide
	Pattern string     // assembled pattern for ErrInvalidPattern
	Err     error      // underlying regexp error, if any
}

func (e *CompileError) Error() string {
	if errors.Is(e.Kind, ErrRangeTooWide) {
		return fmt.Sprintf("read %d: %v: piece %s has variable width %d, at most %d is supported",
			e.Read, e.Kind, e.Piece, e.Piece.Len.Width(), MaxRangeWidth)
	}
	return fmt.Sprintf("read %d: could not compile %q into a matcher: %v", e.Read, e.Pattern, e.Err)
}

func (e *CompileError) Is(target error) bool { return target == e.Kind }

func (e *CompileError) Unwrap() error { return e.Err }
