// internal/writers/brokenpipe.go
package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err comes from writing after the reading end
// went away: EPIPE from the kernel, or io.ErrClosedPipe from an io.Pipe.
// The commands accept it only when flushing their own stdout report.
func IsBrokenPipe(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, syscall.EPIPE):
		return true
	default:
		return errors.Is(err, io.ErrClosedPipe)
	}
}
