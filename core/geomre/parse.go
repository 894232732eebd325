// core/geomre/parse.go
package geomre

import "seqgeom/core/geom"

// Padding holds the filler appended to a variable-length capture, indexed by
// how many bases the capture fell short of its upper bound. Each filler is one
// base longer than the shortfall, so a padded piece is always high+1 wide.
// The last base of a filler differs per entry, so captures of different widths
// never pad to the same string.
var Padding = [MaxRangeWidth + 1]string{"A", "AC", "AAG", "AAAT", "AAAAN"}

// SeqPair holds the reconstructed sequences of a read pair. It is reset by
// every ParseInto and may be reused across calls.
type SeqPair struct {
	S1 []byte
	S2 []byte
}

func (sp *SeqPair) Reset() {
	sp.S1 = sp.S1[:0]
	sp.S2 = sp.S2[:0]
}

// ParseInto matches r1 and r2 against their geometries and writes the
// reconstructed sequences into out. It reports whether both reads parsed;
// on false the contents of out are unspecified.
//
// Reads are expected to be ASCII. Bytes outside the matcher alphabet fail the
// match, so a successful parse only ever emits alphabet bytes and padding.
func (m *FragmentMatcher) ParseInto(r1, r2 []byte, out *SeqPair) bool {
	out.Reset()
	ok1 := m.R1.match(r1)
	ok2 := m.R2.match(r2)
	if !ok1 && !ok2 {
		return false
	}
	if !m.R1.build(r1, &out.S1) {
		return false
	}
	return m.R2.build(r2, &out.S2)
}

// Match reports whether read satisfies the geometry, updating Locations.
func (rm *ReadMatcher) Match(read []byte) bool { return rm.match(read) }

func (rm *ReadMatcher) match(read []byte) bool {
	loc := rm.re.FindSubmatchIndex(read)
	rm.locs = append(rm.locs[:0], loc...)
	return loc != nil
}

// build appends the captured pieces of the last match to dst.
func (rm *ReadMatcher) build(read []byte, dst *[]byte) bool {
	if len(rm.locs) == 0 {
		return false
	}
	if len(rm.pieces) == 1 && rm.locs[2] == 0 && rm.locs[3] == len(read) && rm.pieces[0].Len.Kind != geom.LenRange {
		*dst = append(*dst, read...)
		return true
	}
	out := *dst
	for g := 1; 2*g+1 < len(rm.locs); g++ {
		start, end := rm.locs[2*g], rm.locs[2*g+1]
		if start < 0 {
			return false
		}
		out = append(out, read[start:end]...)
		if g-1 < len(rm.pieces) {
			if l := rm.pieces[g-1].Len; l.Kind == geom.LenRange {
				out = append(out, Padding[int(l.High)-(end-start)]...)
			}
		}
	}
	*dst = out
	return true
}
