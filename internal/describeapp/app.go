// internal/describeapp/app.go
package describeapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"seqgeom/core/fastx"
	"seqgeom/core/geom"
	"seqgeom/core/geomre"
	"seqgeom/internal/cli"
	"seqgeom/internal/cmdutil"
	"seqgeom/internal/version"
	"seqgeom/internal/writers"
	"seqgeom/pkg/api"
)

// RunContext is the seqgeom-describe entry point.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewDescribeFlagSet("seqgeom-describe")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseDescribeArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "seqgeom-describe version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	g, err := Describe(ctx, opts.Geometry, opts.Read1, opts.Read2, opts.Limit)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "seqgeom-describe: %v\n", err)
		return cmdutil.ExitCode(err)
	}
	if err := writers.WriteReport(opts.Output, outw, g); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitRuntime
	}
	return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
}

// Describe compiles geometry and, when read1/read2 are given, parses up to
// limit pairs from them as a preview.
func Describe(ctx context.Context, geometry, read1, read2 string, limit int) (api.GeometryV1, error) {
	desc, err := geom.Parse(geometry)
	if err != nil {
		return api.GeometryV1{}, err
	}
	m, err := geomre.Compile(desc)
	if err != nil {
		return api.GeometryV1{}, err
	}
	g := api.GeometryV1{
		Geometry:   desc.String(),
		Read1:      readMatch(m.R1, desc.Read1Desc),
		Read2:      readMatch(m.R2, desc.Read2Desc),
		Simplified: m.SimplifiedDescriptionString(),
	}
	if read1 == "" || limit == 0 {
		return g, nil
	}

	pr, err := fastx.OpenPair(read1, read2)
	if err != nil {
		return g, err
	}
	defer pr.Close()

	var sp geomre.SeqPair
	for len(g.Preview) < limit {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		a, b, err := pr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return g, err
		}
		p := api.PairPreviewV1{Name1: string(a.Name), Name2: string(b.Name)}
		if m.ParseInto(a.Seq, b.Seq, &sp) {
			p.Parsed = true
			p.Seq1 = string(sp.S1)
			p.Seq2 = string(sp.S2)
		}
		g.Preview = append(g.Preview, p)
	}
	return g, nil
}

func readMatch(rm *geomre.ReadMatcher, pieces []geom.Piece) api.ReadMatchV1 {
	out := api.ReadMatchV1{
		Pattern:  rm.Pattern(),
		Captures: []string{},
		MinLen:   geom.MinReadLen(pieces),
	}
	for _, p := range rm.Pieces() {
		out.Captures = append(out.Captures, p.String())
	}
	return out
}
