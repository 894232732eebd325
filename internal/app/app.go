// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seqgeom/core/geomre"
	"seqgeom/internal/cli"
	"seqgeom/internal/cliutil"
	"seqgeom/internal/cmdutil"
	"seqgeom/internal/config"
	"seqgeom/internal/logging"
	"seqgeom/internal/version"
	"seqgeom/internal/writers"
	"seqgeom/internal/xform"
	"seqgeom/pkg/api"
)

// RunContext is the seqgeom entry point. It returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("seqgeom")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, cmdutil.ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "seqgeom version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	env, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}
	if opts.Config != "" {
		m, err := config.LoadManifest(opts.Config)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return cmdutil.ExitUsage
		}
		opts.ApplyManifest(m)
	}
	if err := opts.Finalize(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitUsage
	}

	logCfg := logging.Config{Level: env.Logging.Level, Development: env.Logging.Development}
	if opts.Quiet {
		logCfg.Level = "warn"
	}
	logger, err := logging.NewWriter(logCfg, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid SEQGEOM_LOG_LEVEL: %v\n", err)
		return cmdutil.ExitUsage
	}
	defer func() { _ = logger.Sync() }()
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	m, err := geomre.CompileString(opts.Geometry)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid geometry: %v\n", err)
		return cmdutil.ExitUsage
	}
	simplified := m.SimplifiedDescriptionString()
	logger.Info("compiled geometry",
		zap.String("geometry", opts.Geometry),
		zap.String("simplified", simplified),
		zap.String("read1_pattern", m.R1.Pattern()),
		zap.String("read2_pattern", m.R2.Pattern()))

	xopts := xform.Options{
		Logger:        logger,
		BufferSize:    env.Xform.WriteBuffer,
		ProgressEvery: env.Xform.ProgressEvery,
		TempDir:       env.Xform.TempDir,
	}

	var stats xform.Stats
	if opts.Fifo {
		stats, err = runFifo(parent, logger, m, opts, xopts, stdout, stderr)
	} else {
		stats, err = xform.ToFiles(parent, m, opts.Read1, opts.Read2, opts.Output1, opts.Output2, xopts)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "seqgeom: %v\n", err)
		return cmdutil.ExitCode(err)
	}

	logger.Info("transform finished",
		zap.Uint64("total_fragments", stats.TotalFragments),
		zap.Uint64("failed_parsing", stats.FailedParsing),
		zap.Float64("success_percent", stats.SuccessPercent()))

	if opts.Stats != "" {
		report := stats.API()
		report.Geometry = opts.Geometry
		report.Simplified = simplified
		report.Read1Files = opts.Read1
		report.Read2Files = opts.Read2
		report.RunID = runID
		if err := writeStats(opts.Stats, opts.StatsFormat, outw, report); err != nil {
			_, _ = fmt.Fprintf(stderr, "seqgeom: writing stats: %v\n", err)
			return cmdutil.ExitRuntime
		}
	}
	return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func writeStats(path, format string, stdout io.Writer, report api.StatsV1) error {
	if path == "-" {
		return writers.WriteReport(format, stdout, report)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writers.WriteReport(format, fh, report); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

// runFifo streams into named pipes while the --exec command consumes them.
// Once the consumer exits, whatever it left unread is drained so the
// producer can always finish and clean up.
func runFifo(
	ctx context.Context,
	logger *zap.Logger,
	m *geomre.FragmentMatcher,
	opts cli.Options,
	xopts xform.Options,
	stdout, stderr io.Writer,
) (xform.Stats, error) {
	fx, err := xform.ToFifo(ctx, m, opts.Read1, opts.Read2, xopts)
	if err != nil {
		return xform.Stats{}, err
	}
	cmdline := cliutil.ExpandCommand(opts.Exec, map[string]string{"r1": fx.R1Fifo, "r2": fx.R2Fifo})

	var stats xform.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cmd := exec.CommandContext(gctx, "sh", "-c", cmdline)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		logger.Info("starting consumer", zap.String("command", cmdline))
		runErr := cmd.Run()
		if derr := fx.Discard(); derr != nil {
			logger.Warn("draining fifos failed", zap.Error(derr))
		}
		if runErr != nil {
			return fmt.Errorf("consumer %q: %w", opts.Exec, runErr)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats, err = fx.Wait()
		return err
	})
	err = g.Wait()
	if ctx.Err() != nil {
		return stats, errors.Join(ctx.Err(), err)
	}
	return stats, err
}
