// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"seqgeom/internal/cliutil"
	"seqgeom/internal/config"
	"seqgeom/internal/version"
)

// Options holds all seqgeom flags.
type Options struct {
	// Input
	Geometry string
	Read1    []string
	Read2    []string

	// File mode
	Output1 string
	Output2 string

	// Pipe mode
	Fifo bool
	Exec string

	// Reporting
	Stats       string
	StatsFormat string

	Config  string
	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: extract barcodes, UMIs and read sequence from paired-end reads

License: MIT
Version: %s

Geometry example: 1{b[16]u[12]x:}2{r:}

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags. Cross-flag validation happens
// in Finalize, after a --config manifest has been merged in.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Geometry, "geometry", "", "fragment geometry, e.g. 1{b[16]u[12]x:}2{r:} [*]")
	fs.StringVar(&opt.Geometry, "g", "", "alias of --geometry")
	var r1, r2 stringSlice
	fs.Var(&r1, "read1", "read 1 FASTA/FASTQ file(s), globs allowed (repeatable or '-') [*]")
	fs.Var(&r2, "read2", "read 2 FASTA/FASTQ file(s), globs allowed (repeatable) [*]")

	fs.StringVar(&opt.Output1, "output1", "", "read 1 FASTA output (file mode)")
	fs.StringVar(&opt.Output2, "output2", "", "read 2 FASTA output (file mode)")

	fs.BoolVar(&opt.Fifo, "fifo", false, "stream into named pipes instead of files [false]")
	fs.StringVar(&opt.Exec, "exec", "", "command consuming the pipes; {r1} and {r2} are replaced by their paths")

	fs.StringVar(&opt.Stats, "stats", "", "write run statistics to FILE ('-' = stdout)")
	fs.StringVar(&opt.StatsFormat, "stats-format", "json", "statistics format: json | text [json]")

	fs.StringVar(&opt.Config, "config", "", "YAML run manifest; flags override its values")
	fs.BoolVar(&opt.Quiet, "quiet", false, "only log warnings and errors [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q (inputs go through --read1/--read2)", fs.Arg(0))
	}
	opt.Read1 = r1
	opt.Read2 = r2
	return opt, nil
}

// ApplyManifest fills every option left unset on the command line.
func (o *Options) ApplyManifest(m *config.Manifest) {
	if m == nil {
		return
	}
	if o.Geometry == "" {
		o.Geometry = m.Geometry
	}
	if len(o.Read1) == 0 {
		o.Read1 = append([]string(nil), m.Read1...)
	}
	if len(o.Read2) == 0 {
		o.Read2 = append([]string(nil), m.Read2...)
	}
	if o.Output1 == "" {
		o.Output1 = m.Output1
	}
	if o.Output2 == "" {
		o.Output2 = m.Output2
	}
	if o.Stats == "" {
		o.Stats = m.Stats
	}
}

// Finalize expands input globs and checks flag combinations.
func (o *Options) Finalize() error {
	var err error
	if o.Read1, err = cliutil.ExpandGlobs(o.Read1); err != nil {
		return err
	}
	if o.Read2, err = cliutil.ExpandGlobs(o.Read2); err != nil {
		return err
	}
	return o.Validate()
}

// Validate applies the cross-flag rules.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Geometry) == "" {
		return errors.New("--geometry is required")
	}
	if len(o.Read1) == 0 || len(o.Read2) == 0 {
		return errors.New("at least one --read1 and one --read2 file are required")
	}
	if len(o.Read1) != len(o.Read2) {
		return fmt.Errorf("the number of --read1 files (%d) must match the number of --read2 files (%d)",
			len(o.Read1), len(o.Read2))
	}
	if o.Fifo {
		if o.Exec == "" {
			return errors.New("--fifo requires --exec")
		}
		if o.Output1 != "" || o.Output2 != "" {
			return errors.New("--fifo conflicts with --output1/--output2")
		}
	} else {
		if o.Exec != "" {
			return errors.New("--exec requires --fifo")
		}
		if o.Output1 == "" || o.Output2 == "" {
			return errors.New("--output1 and --output2 are required (or use --fifo --exec)")
		}
		if o.Output1 == o.Output2 {
			return errors.New("--output1 and --output2 must differ")
		}
	}
	switch o.StatsFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid --stats-format %q", o.StatsFormat)
	}
	return nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
