// internal/cmdutil/exit.go
package cmdutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"seqgeom/core/geom"
	"seqgeom/core/geomre"
	"seqgeom/internal/writers"
	"seqgeom/internal/xform"
)

// Exit codes shared by the seqgeom commands.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// Flush flushes outw and returns code, or ExitRuntime if the flush failed
// for a reason other than a closed downstream pipe. Only stdout gets that
// leniency; ExitCode treats a broken pipe on a read sink as a runtime error.
func Flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return code
}

// ExitCode maps a run error to a process exit code.
func ExitCode(err error) int {
	var pe *geom.ParseError
	var ce *geomre.CompileError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCanceled
	case errors.As(err, &pe), errors.As(err, &ce), errors.Is(err, xform.ErrInputMismatch):
		return ExitUsage
	default:
		return ExitRuntime
	}
}
