// internal/output/json.go
package output

import (
	"io"

	"seqgeom/internal/jsonutil"
	"seqgeom/pkg/api"
)

// WriteStatsJSON writes a run summary in the v1 wire schema.
func WriteStatsJSON(w io.Writer, s api.StatsV1) error {
	return jsonutil.EncodePretty(w, s)
}

// WriteGeometryJSON writes a compiled geometry description in the v1 wire schema.
func WriteGeometryJSON(w io.Writer, g api.GeometryV1) error {
	if g.Preview == nil {
		g.Preview = []api.PairPreviewV1{}
	}
	return jsonutil.EncodePretty(w, g)
}
