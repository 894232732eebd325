// internal/xform/fifo.go
package xform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"seqgeom/core/fastx"
	"seqgeom/core/geomre"
	"seqgeom/internal/logging"
)

// removeAll is swapped in tests to exercise cleanup failures.
var removeAll = os.RemoveAll

// FifoXform is a transform streaming into two named pipes. The producer
// blocks until both pipes are opened for reading and whenever a pipe buffer
// is full, so consumers must drain R1Fifo and R2Fifo concurrently.
type FifoXform struct {
	R1Fifo string
	R2Fifo string
	Dir    string

	done  chan struct{}
	stats Stats
	err   error
}

// ToFifo checks the inputs, creates a private directory holding r1.pipe and
// r2.pipe, and starts a goroutine running ToFiles into them. The directory is
// removed once the transform finishes; Wait reports the outcome of both.
// m is cloned, so the caller keeps ownership of its matcher.
func ToFifo(ctx context.Context, m *geomre.FragmentMatcher, r1, r2 []string, opts Options) (*FifoXform, error) {
	if err := checkPairs(r1, r2); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFifoSetup, err)
	}
	for _, p := range append(append([]string(nil), r1...), r2...) {
		if err := fastx.Readable(p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFifoSetup, err)
		}
	}
	log := logging.OrNop(opts.Logger)

	dir, err := os.MkdirTemp(opts.TempDir, "seqgeom-")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFifoSetup, err)
	}
	fx := &FifoXform{
		R1Fifo: filepath.Join(dir, "r1.pipe"),
		R2Fifo: filepath.Join(dir, "r2.pipe"),
		Dir:    dir,
		done:   make(chan struct{}),
	}
	for i, p := range []string{fx.R1Fifo, fx.R2Fifo} {
		if err := unix.Mkfifo(p, 0o700); err != nil {
			_ = removeAll(dir)
			return nil, fmt.Errorf("%w: error creating read %d fifo: %w", ErrFifoSetup, i+1, err)
		}
		log.Info("created fifo", zap.String("path", p))
	}

	producer := m.Clone()
	go func() {
		defer close(fx.done)
		fx.stats, fx.err = ToFiles(ctx, producer, r1, r2, fx.R1Fifo, fx.R2Fifo, opts)
		if rmErr := removeAll(dir); rmErr != nil {
			fx.err = errors.Join(fx.err, fmt.Errorf("%w: removing %s: %w", ErrCleanup, dir, rmErr))
		}
		log.Debug("fifo transform finished", zap.String("dir", dir), zap.Error(fx.err))
	}()
	return fx, nil
}

// Wait blocks until the producer has finished and its directory is gone,
// and returns the run statistics and any transform or cleanup error.
func (f *FifoXform) Wait() (Stats, error) {
	<-f.done
	return f.stats, f.err
}

// Done is closed when the producer has finished.
func (f *FifoXform) Done() <-chan struct{} { return f.done }

// Discard reads both pipes to completion and throws the data away, letting
// a producer whose consumer went away run to its end. It returns once the
// producer is done.
func (f *FifoXform) Discard() error {
	var g errgroup.Group
	for _, p := range []string{f.R1Fifo, f.R2Fifo} {
		p := p
		g.Go(func() error { return drain(p, f.done) })
	}
	return g.Wait()
}

// drain keeps a non-blocking read end open until done, so the producer's
// write-only open never waits on a reader.
func drain(path string, done <-chan struct{}) error {
	fh, err := os.OpenFile(path, os.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer fh.Close()

	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		if _, err := io.Copy(io.Discard, fh); err != nil {
			return err
		}
		select {
		case <-done:
			return nil
		case <-tick.C:
		}
	}
}
