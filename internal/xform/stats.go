// internal/xform/stats.go
package xform

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"seqgeom/pkg/api"
)

// Stats counts the fragments seen by one transform run.
type Stats struct {
	TotalFragments uint64
	FailedParsing  uint64
}

// Transformed is the number of pairs written out.
func (s Stats) Transformed() uint64 { return s.TotalFragments - s.FailedParsing }

// SuccessPercent is the share of fragments transformed, 100 for an empty run.
func (s Stats) SuccessPercent() float64 {
	if s.TotalFragments == 0 {
		return 100
	}
	return (1 - float64(s.FailedParsing)/float64(s.TotalFragments)) * 100
}

func (s Stats) String() string {
	return fmt.Sprintf(`XformStats {
    total fragments: %s,
    fragments failing parsing: %s,
    percentage successfully transformed fragments: %.2f,
}`,
		humanize.Comma(int64(s.TotalFragments)),
		humanize.Comma(int64(s.FailedParsing)),
		s.SuccessPercent(),
	)
}

// API converts to the stable wire type; callers fill in run metadata.
func (s Stats) API() api.StatsV1 {
	return api.StatsV1{
		TotalFragments: s.TotalFragments,
		FailedParsing:  s.FailedParsing,
		SuccessPercent: s.SuccessPercent(),
	}
}
