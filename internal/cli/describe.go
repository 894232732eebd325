// internal/cli/describe.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"seqgeom/internal/version"
)

// DescribeOptions holds the seqgeom-describe flags.
type DescribeOptions struct {
	Geometry string
	Output   string
	Read1    string
	Read2    string
	Limit    int
	Version  bool
}

// NewDescribeFlagSet returns the FlagSet for seqgeom-describe.
func NewDescribeFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: show how a fragment geometry is compiled and normalized

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseDescribeArgs parses and validates seqgeom-describe flags. A single
// positional argument is taken as the geometry.
func ParseDescribeArgs(fs *flag.FlagSet, argv []string) (DescribeOptions, error) {
	var opt DescribeOptions
	var help bool

	fs.StringVar(&opt.Geometry, "geometry", "", "fragment geometry [*]")
	fs.StringVar(&opt.Geometry, "g", "", "alias of --geometry")
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json [text]")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.StringVar(&opt.Read1, "read1", "", "read 1 file to preview")
	fs.StringVar(&opt.Read2, "read2", "", "read 2 file to preview")
	fs.IntVar(&opt.Limit, "limit", 10, "number of read pairs to preview [10]")
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
	switch {
	case fs.NArg() == 1 && opt.Geometry == "":
		opt.Geometry = fs.Arg(0)
	case fs.NArg() > 0:
		return opt, fmt.Errorf("unexpected argument %q", fs.Arg(fs.NArg()-1))
	}

	if strings.TrimSpace(opt.Geometry) == "" {
		return opt, errors.New("--geometry is required")
	}
	if (opt.Read1 == "") != (opt.Read2 == "") {
		return opt, errors.New("--read1 and --read2 must be supplied together")
	}
	if opt.Limit < 0 {
		return opt, errors.New("--limit must be ≥ 0")
	}
	if opt.Output != "text" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}
