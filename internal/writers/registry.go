// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// Report writers (format → handler). Register in init() blocks.
var ReportWriters = map[string]func(w io.Writer, data interface{}) error{}

// RegisterReport is idempotent, last wins.
func RegisterReport(format string, fn func(io.Writer, interface{}) error) { ReportWriters[format] = fn }

// WriteReport dispatches payload to the writer registered for format.
func WriteReport(format string, w io.Writer, payload interface{}) error {
	fn, ok := ReportWriters[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, payload)
}

// ReportFormats lists the registered formats, sorted.
func ReportFormats() []string {
	out := make([]string, 0, len(ReportWriters))
	for k := range ReportWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
