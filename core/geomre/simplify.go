// core/geomre/simplify.go
package geomre

import (
	"strings"

	"seqgeom/core/geom"
)

// SimplifiedDescription returns the fixed-geometry equivalent of the captured
// pieces: every LenRange(_, h) becomes FixedLen(h+1), matching the padded
// width ParseInto emits. Fixed and unbounded pieces are unchanged.
func (m *FragmentMatcher) SimplifiedDescription() geom.FragmentGeomDesc {
	return geom.FragmentGeomDesc{
		Read1Desc: simplifyPieces(m.R1.pieces),
		Read2Desc: simplifyPieces(m.R2.pieces),
	}
}

// SimplifiedDescriptionString renders SimplifiedDescription as "1{...}2{...}",
// omitting a read with no captured pieces.
func (m *FragmentMatcher) SimplifiedDescriptionString() string {
	var b strings.Builder
	if len(m.R1.pieces) > 0 {
		b.WriteString("1{")
		b.WriteString(geom.FormatPieces(simplifyPieces(m.R1.pieces)))
		b.WriteString("}")
	}
	if len(m.R2.pieces) > 0 {
		b.WriteString("2{")
		b.WriteString(geom.FormatPieces(simplifyPieces(m.R2.pieces)))
		b.WriteString("}")
	}
	return b.String()
}

// PaddedWidth is the width ParseInto emits for a piece captured at width w.
func PaddedWidth(p geom.Piece, w int) int {
	if p.Len.Kind == geom.LenRange {
		return int(p.Len.High) + 1
	}
	return w
}

func simplifyPieces(pieces []geom.Piece) []geom.Piece {
	if len(pieces) == 0 {
		return nil
	}
	out := make([]geom.Piece, len(pieces))
	for i, p := range pieces {
		out[i] = simplifyPiece(p)
	}
	return out
}

// simplifyPiece assumes ranges no wider than MaxRangeWidth; the compiler
// rejects anything wider before a piece gets here.
func simplifyPiece(p geom.Piece) geom.Piece {
	if p.Kind != geom.Literal && p.Len.Kind == geom.LenRange {
		p.Len = geom.Fixed(p.Len.High + 1)
	}
	return p
}
