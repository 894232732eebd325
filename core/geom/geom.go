// core/geom/geom.go
package geom

import "fmt"

// LenKind tags the length model of a geometry piece.
type LenKind uint8

const (
	FixedLen LenKind = iota
	LenRange
	Unbounded
)

// Len is the length model of a piece: an exact width, a bounded range, or unbounded.
// For FixedLen, Low == High == n.
type Len struct {
	Kind LenKind
	Low  uint32
	High uint32
}

func Fixed(n uint32) Len { return Len{Kind: FixedLen, Low: n, High: n} }

// Range returns a bounded length. It panics if low > high; the grammar parser
// rejects such input before reaching here.
func Range(low, high uint32) Len {
	if low > high {
		panic(fmt.Sprintf("geom: invalid range %d-%d", low, high))
	}
	return Len{Kind: LenRange, Low: low, High: high}
}

func Any() Len { return Len{Kind: Unbounded} }

// Width returns high-low for ranges and 0 otherwise.
func (l Len) Width() uint32 {
	if l.Kind != LenRange {
		return 0
	}
	return l.High - l.Low
}

// PieceKind tags the semantic role of a piece.
type PieceKind uint8

const (
	Discard PieceKind = iota
	Barcode
	Umi
	ReadSeq
	Literal
)

var kindTags = [...]byte{Discard: 'x', Barcode: 'b', Umi: 'u', ReadSeq: 'r', Literal: 'f'}

// Tag is the single-letter grammar tag of the kind.
func (k PieceKind) Tag() byte { return kindTags[k] }

func (k PieceKind) String() string {
	switch k {
	case Discard:
		return "discard"
	case Barcode:
		return "barcode"
	case Umi:
		return "umi"
	case ReadSeq:
		return "read"
	case Literal:
		return "fixed"
	}
	return fmt.Sprintf("PieceKind(%d)", uint8(k))
}

// Piece is one typed segment of a read. Literal pieces carry Seq and ignore Len.
type Piece struct {
	Kind PieceKind
	Len  Len
	Seq  string
}

func NewDiscard(l Len) Piece { return Piece{Kind: Discard, Len: l} }
func NewBarcode(l Len) Piece { return Piece{Kind: Barcode, Len: l} }
func NewUmi(l Len) Piece     { return Piece{Kind: Umi, Len: l} }
func NewReadSeq(l Len) Piece { return Piece{Kind: ReadSeq, Len: l} }

// NewLiteral returns a fixed anchor piece. seq is stored as given.
func NewLiteral(seq string) Piece { return Piece{Kind: Literal, Seq: seq} }

// IsCapture reports whether the piece is extracted into the output.
func (p Piece) IsCapture() bool {
	return p.Kind == Barcode || p.Kind == Umi || p.Kind == ReadSeq
}

// IsFixedLen reports whether the piece has a single known width.
func (p Piece) IsFixedLen() bool {
	return p.Kind == Literal || p.Len.Kind == FixedLen
}

// IsBounded reports whether the piece consumes a bounded number of bases.
func (p Piece) IsBounded() bool {
	return p.Kind == Literal || p.Len.Kind != Unbounded
}

// MinWidth is the minimum number of bases the piece consumes.
func (p Piece) MinWidth() int {
	if p.Kind == Literal {
		return len(p.Seq)
	}
	if p.Len.Kind == Unbounded {
		return 0
	}
	return int(p.Len.Low)
}

// FragmentGeomDesc describes both reads of a fragment. Treat it as immutable
// once built.
type FragmentGeomDesc struct {
	Read1Desc []Piece
	Read2Desc []Piece
}

// Read returns the description of read 1 or 2.
func (d FragmentGeomDesc) Read(n int) []Piece {
	if n == 2 {
		return d.Read2Desc
	}
	return d.Read1Desc
}

// MinReadLen is the shortest read that can satisfy pieces.
func MinReadLen(pieces []Piece) int {
	n := 0
	for _, p := range pieces {
		n += p.MinWidth()
	}
	return n
}
