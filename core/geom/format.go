// core/geom/format.go
package geom

import (
	"strconv"
	"strings"
)

// String renders the length suffix: "[n]", "[l-h]" or ":".
func (l Len) String() string {
	switch l.Kind {
	case FixedLen:
		return "[" + strconv.FormatUint(uint64(l.Low), 10) + "]"
	case LenRange:
		return "[" + strconv.FormatUint(uint64(l.Low), 10) + "-" + strconv.FormatUint(uint64(l.High), 10) + "]"
	}
	return ":"
}

// String renders the piece in geometry grammar, e.g. "b[9-10]" or "f[CAGAGC]".
func (p Piece) String() string {
	if p.Kind == Literal {
		return "f[" + p.Seq + "]"
	}
	return string(p.Kind.Tag()) + p.Len.String()
}

// FormatPieces concatenates the grammar form of pieces.
func FormatPieces(pieces []Piece) string {
	var b strings.Builder
	for _, p := range pieces {
		b.WriteString(p.String())
	}
	return b.String()
}

// String renders the description as "1{...}2{...}", skipping empty reads.
func (d FragmentGeomDesc) String() string {
	var b strings.Builder
	if len(d.Read1Desc) > 0 {
		b.WriteString("1{")
		b.WriteString(FormatPieces(d.Read1Desc))
		b.WriteString("}")
	}
	if len(d.Read2Desc) > 0 {
		b.WriteString("2{")
		b.WriteString(FormatPieces(d.Read2Desc))
		b.WriteString("}")
	}
	return b.String()
}
