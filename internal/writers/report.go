// internal/writers/report.go
package writers

import (
	"fmt"
	"io"

	"seqgeom/internal/output"
	"seqgeom/pkg/api"
)

func init() {
	RegisterReport("text", writeTextReport)
	RegisterReport("json", writeJSONReport)
}

func writeTextReport(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case api.StatsV1:
		return output.WriteStatsText(w, v)
	case api.GeometryV1:
		return output.WriteGeometryText(w, v)
	default:
		return fmt.Errorf("text report: unsupported payload %T", data)
	}
}

func writeJSONReport(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case api.StatsV1:
		return output.WriteStatsJSON(w, v)
	case api.GeometryV1:
		return output.WriteGeometryJSON(w, v)
	default:
		return fmt.Errorf("json report: unsupported payload %T", data)
	}
}
