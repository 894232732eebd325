// core/geom/parse.go
package geom

import (
	"fmt"
	"strconv"
)

// ParseError reports a malformed geometry string.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("geometry %q: offset %d: %s", e.Input, e.Offset, e.Msg)
}

// Parse reads a geometry description such as "1{b[16]u[12]x:}2{r:}".
// Both read blocks are required, each exactly once.
func Parse(s string) (FragmentGeomDesc, error) {
	p := parser{in: s}
	var (
		d    FragmentGeomDesc
		seen [3]bool
	)
	for !p.eof() {
		start := p.pos
		c := p.next()
		if c != '1' && c != '2' {
			return d, p.errAt(start, "expected read number 1 or 2, got %q", c)
		}
		n := int(c - '0')
		if seen[n] {
			return d, p.errAt(start, "read %d described twice", n)
		}
		seen[n] = true
		pieces, err := p.block()
		if err != nil {
			return d, err
		}
		if n == 1 {
			d.Read1Desc = pieces
		} else {
			d.Read2Desc = pieces
		}
	}
	for n := 1; n <= 2; n++ {
		if !seen[n] {
			return d, p.errAt(p.pos, "missing description for read %d", n)
		}
	}
	return d, nil
}

// MustParse is Parse for package-level fixtures; it panics on error.
func MustParse(s string) FragmentGeomDesc {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

type parser struct {
	in  string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.in) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.in[p.pos]
}

func (p *parser) next() byte {
	c := p.peek()
	if !p.eof() {
		p.pos++
	}
	return c
}

func (p *parser) expect(c byte) error {
	if got := p.peek(); got != c {
		if p.eof() {
			return p.errAt(p.pos, "expected %q, got end of input", c)
		}
		return p.errAt(p.pos, "expected %q, got %q", c, got)
	}
	p.pos++
	return nil
}

func (p *parser) errAt(off int, format string, args ...any) error {
	return &ParseError{Input: p.in, Offset: off, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) block() ([]Piece, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	var pieces []Piece
	for p.peek() != '}' {
		if p.eof() {
			return nil, p.errAt(p.pos, "unterminated read block")
		}
		pc, err := p.piece()
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, pc)
	}
	p.pos++ // '}'
	if len(pieces) == 0 {
		return nil, p.errAt(p.pos-1, "empty read description")
	}
	return pieces, nil
}

func (p *parser) piece() (Piece, error) {
	start := p.pos
	var kind PieceKind
	switch c := p.next(); c {
	case 'x':
		kind = Discard
	case 'b':
		kind = Barcode
	case 'u':
		kind = Umi
	case 'r':
		kind = ReadSeq
	case 'f':
		return p.literal()
	default:
		return Piece{}, p.errAt(start, "unknown piece type %q", c)
	}
	l, err := p.length()
	if err != nil {
		return Piece{}, err
	}
	return Piece{Kind: kind, Len: l}, nil
}

func (p *parser) literal() (Piece, error) {
	if err := p.expect('['); err != nil {
		return Piece{}, err
	}
	start := p.pos
	seq := make([]byte, 0, 16)
	for p.peek() != ']' {
		if p.eof() {
			return Piece{}, p.errAt(p.pos, "unterminated fixed sequence")
		}
		c := p.next()
		switch c {
		case 'A', 'C', 'G', 'T', 'N':
		case 'a', 'c', 'g', 't', 'n':
			c -= 'a' - 'A'
		default:
			return Piece{}, p.errAt(p.pos-1, "invalid base %q in fixed sequence", c)
		}
		seq = append(seq, c)
	}
	if len(seq) == 0 {
		return Piece{}, p.errAt(start, "empty fixed sequence")
	}
	p.pos++ // ']'
	return NewLiteral(string(seq)), nil
}

func (p *parser) length() (Len, error) {
	if p.peek() == ':' {
		p.pos++
		return Any(), nil
	}
	if err := p.expect('['); err != nil {
		return Len{}, err
	}
	lowAt := p.pos
	low, err := p.number()
	if err != nil {
		return Len{}, err
	}
	if p.peek() == ']' {
		p.pos++
		if low == 0 {
			return Len{}, p.errAt(lowAt, "zero-length piece")
		}
		return Fixed(low), nil
	}
	if err := p.expect('-'); err != nil {
		return Len{}, err
	}
	high, err := p.number()
	if err != nil {
		return Len{}, err
	}
	if err := p.expect(']'); err != nil {
		return Len{}, err
	}
	if low > high {
		return Len{}, p.errAt(lowAt, "range lower bound %d exceeds upper bound %d", low, high)
	}
	return Range(low, high), nil
}

func (p *parser) number() (uint32, error) {
	start := p.pos
	for c := p.peek(); c >= '0' && c <= '9'; c = p.peek() {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errAt(start, "expected a number")
	}
	n, err := strconv.ParseUint(p.in[start:p.pos], 10, 32)
	if err != nil {
		return 0, p.errAt(start, "bad number: %v", err)
	}
	return uint32(n), nil
}
