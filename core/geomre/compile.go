// core/geomre/compile.go
package geomre

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"seqgeom/core/geom"
)

// MaxRangeWidth is the widest high-low a bounded range may have; the padding
// table holds one filler per possible shortfall.
const MaxRangeWidth = 4

// Alphabet is the character class every non-literal piece matches.
// Reads are expected to carry only these bytes; anything else fails the match.
const Alphabet = "[ACGTNacgtn]"

// ReadMatcher is the compiled form of one read's geometry.
type ReadMatcher struct {
	re     *regexp.Regexp
	pieces []geom.Piece // captured pieces, one per group, in group order
	locs   []int        // last match locations; empty when the last match failed
}

// FragmentMatcher holds the compiled matchers of both reads. Its location
// buffers are overwritten by every ParseInto, so an instance must not be
// shared between goroutines; use Clone.
type FragmentMatcher struct {
	R1 *ReadMatcher
	R2 *ReadMatcher
}

// Compile turns desc into a FragmentMatcher. A failure on either read aborts.
func Compile(desc geom.FragmentGeomDesc) (*FragmentMatcher, error) {
	r1, err := compileRead(1, desc.Read1Desc)
	if err != nil {
		return nil, err
	}
	r2, err := compileRead(2, desc.Read2Desc)
	if err != nil {
		return nil, err
	}
	return &FragmentMatcher{R1: r1, R2: r2}, nil
}

// CompileString parses a geometry string and compiles it.
func CompileString(s string) (*FragmentMatcher, error) {
	desc, err := geom.Parse(s)
	if err != nil {
		return nil, err
	}
	return Compile(desc)
}

// Clone returns a matcher with its own location buffers. The compiled
// patterns and piece lists are immutable and shared.
func (m *FragmentMatcher) Clone() *FragmentMatcher {
	return &FragmentMatcher{R1: m.R1.clone(), R2: m.R2.clone()}
}

func (rm *ReadMatcher) clone() *ReadMatcher {
	return &ReadMatcher{re: rm.re, pieces: rm.pieces, locs: make([]int, 0, cap(rm.locs))}
}

// Pattern is the regular expression the read is matched against.
func (rm *ReadMatcher) Pattern() string { return rm.re.String() }

// Pieces returns the captured pieces in capture-group order.
func (rm *ReadMatcher) Pieces() []geom.Piece { return rm.pieces }

// Locations exposes the capture locations of the most recent match, in
// regexp.FindSubmatchIndex layout, or nil if that match failed.
func (rm *ReadMatcher) Locations() []int {
	if len(rm.locs) == 0 {
		return nil
	}
	return rm.locs
}

func compileRead(read int, pieces []geom.Piece) (*ReadMatcher, error) {
	var b strings.Builder
	b.WriteByte('^')
	var captured []geom.Piece
	for _, p := range pieces {
		capture, err := writePiece(&b, p)
		if err != nil {
			return nil, &CompileError{Kind: err, Read: read, Piece: p}
		}
		if capture {
			captured = append(captured, p)
		}
	}
	// A bounded tail gets an explicit unbounded discard so longer reads still
	// match and the pattern stays anchored at both ends.
	if n := len(pieces); n > 0 && pieces[n-1].IsBounded() {
		_, _ = writePiece(&b, geom.NewDiscard(geom.Any()))
	}
	b.WriteByte('$')

	pat := b.String()
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, &CompileError{Kind: ErrInvalidPattern, Read: read, Pattern: pat, Err: err}
	}
	if re.NumSubexp() != len(captured) {
		err := fmt.Errorf("pattern has %d groups for %d captured pieces", re.NumSubexp(), len(captured))
		return nil, &CompileError{Kind: ErrInvalidPattern, Read: read, Pattern: pat, Err: err}
	}
	return &ReadMatcher{
		re:     re,
		pieces: captured,
		locs:   make([]int, 0, 2*(re.NumSubexp()+1)),
	}, nil
}

// writePiece appends the pattern fragment of p and reports whether it is a
// capture group.
func writePiece(b *strings.Builder, p geom.Piece) (bool, error) {
	if p.Kind == geom.Literal {
		// Anchors match soft-masked bases the same way Alphabet does.
		b.WriteString("(?i:")
		b.WriteString(p.Seq)
		b.WriteByte(')')
		return false, nil
	}
	if p.Len.Kind == geom.LenRange && p.Len.Width() > MaxRangeWidth {
		return false, ErrRangeTooWide
	}
	capture := p.IsCapture()
	if capture {
		b.WriteByte('(')
	}
	b.WriteString(Alphabet)
	switch p.Len.Kind {
	case geom.FixedLen:
		b.WriteByte('{')
		b.WriteString(strconv.FormatUint(uint64(p.Len.Low), 10))
		b.WriteByte('}')
	case geom.LenRange:
		b.WriteByte('{')
		b.WriteString(strconv.FormatUint(uint64(p.Len.Low), 10))
		b.WriteByte(',')
		b.WriteString(strconv.FormatUint(uint64(p.Len.High), 10))
		b.WriteByte('}')
	case geom.Unbounded:
		b.WriteByte('*')
	}
	if capture {
		b.WriteByte(')')
	}
	return capture, nil
}
