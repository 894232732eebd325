// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"seqgeom/pkg/api"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	keyColor  = color.New(color.Bold)
)

// WriteStatsText prints a short human summary of a run. Colors follow
// color.NoColor, which is set automatically when w is not a terminal.
func WriteStatsText(w io.Writer, s api.StatsV1) error {
	var b strings.Builder
	if s.Geometry != "" {
		fmt.Fprintf(&b, "%s %s\n", keyColor.Sprint("geometry:"), s.Geometry)
	}
	if s.Simplified != "" && s.Simplified != s.Geometry {
		fmt.Fprintf(&b, "%s %s\n", keyColor.Sprint("simplified:"), s.Simplified)
	}
	transformed := s.TotalFragments - s.FailedParsing
	failed := humanize.Comma(int64(s.FailedParsing))
	if s.FailedParsing > 0 {
		failed = failColor.Sprint(failed)
	}
	fmt.Fprintf(&b, "%s %s total, %s transformed, %s failed (%s)\n",
		keyColor.Sprint("fragments:"),
		humanize.Comma(int64(s.TotalFragments)),
		okColor.Sprint(humanize.Comma(int64(transformed))),
		failed,
		fmt.Sprintf("%.2f%%", s.SuccessPercent),
	)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteGeometryText prints the normalized, compiled and simplified forms of
// a geometry, followed by any preview pairs.
func WriteGeometryText(w io.Writer, g api.GeometryV1) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", keyColor.Sprint("geometry:  "), g.Geometry)
	fmt.Fprintf(&b, "%s %s\n", keyColor.Sprint("simplified:"), g.Simplified)
	for i, r := range []api.ReadMatchV1{g.Read1, g.Read2} {
		fmt.Fprintf(&b, "%s %s\n", keyColor.Sprintf("read %d:    ", i+1), r.Pattern)
		caps := "-"
		if len(r.Captures) > 0 {
			caps = strings.Join(r.Captures, " ")
		}
		fmt.Fprintf(&b, "  captures: %s\n  min length: %d\n", caps, r.MinLen)
	}
	for _, p := range g.Preview {
		if !p.Parsed {
			fmt.Fprintf(&b, "%s\t%s\n", p.Name1, failColor.Sprint("no match"))
			continue
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", p.Name1, okColor.Sprint(p.Seq1), okColor.Sprint(p.Seq2))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
