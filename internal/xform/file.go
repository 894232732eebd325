// internal/xform/file.go
package xform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"seqgeom/core/fastx"
	"seqgeom/core/geomre"
	"seqgeom/internal/logging"
	"seqgeom/internal/writers"
)

var (
	// ErrInputMismatch: the read 1 and read 2 file lists differ in length.
	ErrInputMismatch = errors.New("read 1 and read 2 file counts differ")
	// ErrFifoSetup: the named pipes could not be prepared.
	ErrFifoSetup = errors.New("fifo setup failed")
	// ErrCleanup: the temporary fifo directory could not be removed.
	ErrCleanup = errors.New("fifo cleanup failed")
)

// Options controls a transform run. The zero value is usable.
type Options struct {
	Logger        *zap.Logger
	BufferSize    int    // per-sink write buffer; <=0 uses the writer default
	ProgressEvery uint64 // log running counts every N pairs; 0 disables
	TempDir       string // parent of the fifo directory; "" = os.TempDir()
}

func checkPairs(r1, r2 []string) error {
	if len(r1) != len(r2) {
		return fmt.Errorf("%w: the number of R1 files (%d) must match the number of R2 files (%d)",
			ErrInputMismatch, len(r1), len(r2))
	}
	return nil
}

// createSink opens path write-only, so a named pipe blocks until a reader
// attaches instead of being opened for both ends.
func createSink(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

// ToFiles transforms the paired inputs r1[i]/r2[i] with m and writes the
// reconstructed reads as FASTA to out1 and out2. Pairs that fail to parse are
// counted, not fatal. I/O errors abort the run; the stats gathered so far
// are returned alongside the error.
func ToFiles(ctx context.Context, m *geomre.FragmentMatcher, r1, r2 []string, out1, out2 string, opts Options) (Stats, error) {
	var stats Stats
	if err := checkPairs(r1, r2); err != nil {
		return stats, err
	}
	log := logging.OrNop(opts.Logger)

	f1, err := createSink(out1)
	if err != nil {
		return stats, fmt.Errorf("unable to open read 1 output: %w", err)
	}
	f2, err := createSink(out2)
	if err != nil {
		_ = f1.Close()
		return stats, fmt.Errorf("unable to open read 2 output: %w", err)
	}
	w1 := writers.NewFastaWriter(f1, opts.BufferSize)
	w2 := writers.NewFastaWriter(f2, opts.BufferSize)

	runErr := transformAll(ctx, log, m, r1, r2, w1, w2, &stats, opts.ProgressEvery)

	var flushErr error
	if runErr == nil {
		flushErr = errors.Join(w1.Flush(), w2.Flush())
	}
	closeErr := errors.Join(f1.Close(), f2.Close())
	if err := errors.Join(runErr, flushErr, closeErr); err != nil {
		return stats, err
	}
	return stats, nil
}

func transformAll(
	ctx context.Context,
	log *zap.Logger,
	m *geomre.FragmentMatcher,
	r1, r2 []string,
	w1, w2 *writers.FastaWriter,
	stats *Stats,
	progressEvery uint64,
) error {
	var sp geomre.SeqPair
	for i := range r1 {
		log.Debug("transforming file pair", zap.String("read1", r1[i]), zap.String("read2", r2[i]))
		pr, err := fastx.OpenPair(r1[i], r2[i])
		if err != nil {
			return err
		}
		err = transformPair(ctx, log, m, pr, w1, w2, &sp, stats, progressEvery)
		if pr.Unbalanced() {
			n1, n2 := pr.Counts()
			log.Warn("mate files have different record counts; extra records ignored",
				zap.String("read1", r1[i]), zap.String("read2", r2[i]),
				zap.Int("read1_records", n1), zap.Int("read2_records", n2))
		}
		if cerr := pr.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func transformPair(
	ctx context.Context,
	log *zap.Logger,
	m *geomre.FragmentMatcher,
	pr *fastx.PairReader,
	w1, w2 *writers.FastaWriter,
	sp *geomre.SeqPair,
	stats *Stats,
	progressEvery uint64,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		a, b, err := pr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		stats.TotalFragments++
		if m.ParseInto(a.Seq, b.Seq, sp) {
			if err := w1.WriteRecord(a.Name, sp.S1); err != nil {
				return fmt.Errorf("couldn't write output to file 1: %w", err)
			}
			if err := w2.WriteRecord(b.Name, sp.S2); err != nil {
				return fmt.Errorf("couldn't write output to file 2: %w", err)
			}
		} else {
			stats.FailedParsing++
		}
		if progressEvery > 0 && stats.TotalFragments%progressEvery == 0 {
			log.Info("progress",
				zap.Uint64("total_fragments", stats.TotalFragments),
				zap.Uint64("failed_parsing", stats.FailedParsing))
		}
	}
}
