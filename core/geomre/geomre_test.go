package geomre

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqgeom/core/geom"
)

const sciseq3 = "1{b[9-10]f[CAGAGC]u[8]b[10]}2{r:}"

// First technical reads of SRR7827207 (sci-RNA-seq3). Reads without the
// CAGAGC anchor must be rejected; the rest carry a 9 or 10 base barcode
// before it.
var sciseq3Reads = []struct {
	read   string
	parses bool
	bcLen  int
}{
	{"TNGCGCATTCAGAGCGCCACTTTCGGAAGATATTTT", true, 9},
	{"TNTATACCTTCAGAGCGTGAGGATGTCCTAGAGGTT", true, 10},
	{"AGAGATGAATCAGAGCTGTGCCGGGCTAACCTCATT", true, 10},
	{"TGAACGCGTTTTTTTTTTTTTTTTTTTTTTTTTTTT", false, 0},
	{"AAACTCCAATCAGAGCTCCGAGACAACCATTGGATT", true, 10},
	{"ACGAGGTTTCTGAGCCGATAAAGTGATGGCCTTTTT", false, 0},
	{"GCTCTTAGTCAGAGCCGTTTTGGGCGACGCCTTTTT", true, 9},
	{"TCCGTATGTCAGAGCGACTGATGTTATAGCAGATTT", true, 9},
	{"TCTCTCCATCAGAGCAAAAGATTCATTCAATCATTC", true, 9},
	{"AGAACTCCTCTGAGCAATGTCGCTTATTCTGAGTTT", false, 0},
	{"AAGTATTGGTCAGAGCTACGCATTACGCAACTCCTT", true, 10},
	{"TGTCCTTATTCAGAGCCCATTTACGCCACGCAGCTC", true, 10},
	{"GCGCTCAATCAGAGCCGGTGGAAAGACTCAAGCCCT", true, 9},
	{"TTCTTAACCTCAGAGCTGACTAGTACTAGAGAGTTT", true, 10},
	{"TCCTCGAGTCAGAGCGTCCTGGCTTAATTATTGTTT", true, 9},
	{"AACTGGCATCAGAGCCCTCTAATGATCGCTTCTTTT", true, 9},
	{"TATGCGATTTCAGAGCGCGGGGGGCCGAGAATCCTT", true, 10},
	{"TAGTTACCTTCAGAGCGGTTTACACATCCGACTATT", true, 10},
	{"CAAGCAACTCAGAGCTTTTTCTTTCGCGGTTGGTTT", true, 9},
	{"ACCGTAGCTCAGAGCGGCCAGTTACGCAACTCCTTT", true, 9},
	{"CCAAGGATTCAGAGCGGCGCGCCATCCATGACTTTT", true, 9},
	{"TTACTAAGTCAGAGCAGAGGGACGCCAGGATCTTTT", true, 9},
	{"GTAGCGATTCAGAGCAGGCGTGATTATAGCAGATTT", true, 9},
	{"AGCAACGATCTGAGCATATTCAGACCGCGCAACCAT", false, 0},
	{"ATTAATGCCTCAGAGCACGGTACAGATCTTACGCTT", true, 10},
}

func TestSciseq3Transforms(t *testing.T) {
	m, err := CompileString(sciseq3)
	require.NoError(t, err)

	var sp SeqPair
	for _, tc := range sciseq3Reads {
		ok := m.ParseInto([]byte(tc.read), []byte(tc.read), &sp)
		require.Equal(t, tc.parses, ok, tc.read)
		if !ok {
			continue
		}
		s1 := string(sp.S1)
		assert.Equal(t, tc.read[:tc.bcLen], s1[:tc.bcLen])
		switch tc.bcLen {
		case 9:
			assert.Equal(t, Padding[1], s1[9:11], tc.read)
		case 10:
			assert.Equal(t, Padding[0], s1[10:11], tc.read)
		}
		// b[11] u[8] b[10] after simplification
		assert.Len(t, s1, 29, tc.read)
		assert.Equal(t, tc.read, string(sp.S2), "unbounded read 2 is emitted whole")
	}
}

func TestSciseq3FirstRead(t *testing.T) {
	m, err := CompileString(sciseq3)
	require.NoError(t, err)

	var sp SeqPair
	read := []byte("TNGCGCATTCAGAGCGCCACTTTCGGAAGATATTTT")
	require.True(t, m.ParseInto(read, read, &sp))
	assert.Equal(t, "TNGCGCATT"+"AC"+"GCCACTTT"+"CGGAAGATAT", string(sp.S1))

	locs := m.R1.Locations()
	require.NotNil(t, locs)
	assert.Equal(t, 9, locs[3]-locs[2], "first barcode group is 9 bases")
}

func TestSoftMaskedAnchor(t *testing.T) {
	m, err := CompileString(sciseq3)
	require.NoError(t, err)

	var sp SeqPair
	read := []byte("tngcgcattcagagcgccactttcggaagatatttt")
	require.True(t, m.ParseInto(read, read, &sp))
	assert.Equal(t, "tngcgcatt"+"AC"+"gccacttt"+"cggaagatat", string(sp.S1))

	mixed := []byte("TNGCGCATTcaGAgcGCCACTTTCGGAAGATATTTT")
	assert.True(t, m.ParseInto(mixed, mixed, &sp))

	wrong := []byte("TNGCGCATTcagaggGCCACTTTCGGAAGATATTTT")
	assert.False(t, m.ParseInto(wrong, wrong, &sp))
}

func TestCompilePatterns(t *testing.T) {
	m, err := CompileString(sciseq3)
	require.NoError(t, err)
	assert.Equal(t, `^([ACGTNacgtn]{9,10})(?i:CAGAGC)([ACGTNacgtn]{8})([ACGTNacgtn]{10})[ACGTNacgtn]*$`, m.R1.Pattern())
	assert.Equal(t, `^([ACGTNacgtn]*)$`, m.R2.Pattern())
	assert.Len(t, m.R1.Pieces(), 3)
	assert.Len(t, m.R2.Pieces(), 1)

	m, err = CompileString("1{x[2-3]b[4]x:}2{u[6]f[TT]}")
	require.NoError(t, err)
	assert.Equal(t, `^[ACGTNacgtn]{2,3}([ACGTNacgtn]{4})[ACGTNacgtn]*$`, m.R1.Pattern())
	assert.Equal(t, `^([ACGTNacgtn]{6})(?i:TT)[ACGTNacgtn]*$`, m.R2.Pattern())
}

func TestCompileEmptyRead(t *testing.T) {
	m, err := Compile(geom.FragmentGeomDesc{Read1Desc: []geom.Piece{geom.NewBarcode(geom.Fixed(4))}})
	require.NoError(t, err)
	assert.Equal(t, "^$", m.R2.Pattern())

	var sp SeqPair
	assert.True(t, m.ParseInto([]byte("ACGT"), nil, &sp))
	assert.False(t, m.ParseInto([]byte("ACGT"), []byte("A"), &sp))
}

func TestPaddingWidth(t *testing.T) {
	for low := uint32(1); low <= 3; low++ {
		for width := uint32(0); width <= MaxRangeWidth; width++ {
			high := low + width
			p := geom.NewUmi(geom.Range(low, high))
			desc := geom.FragmentGeomDesc{
				Read1Desc: []geom.Piece{p, geom.NewLiteral("GG")},
				Read2Desc: []geom.Piece{geom.NewReadSeq(geom.Any())},
			}
			m, err := Compile(desc)
			require.NoError(t, err)

			for w := low; w <= high; w++ {
				name := fmt.Sprintf("u[%d-%d] w=%d", low, high, w)
				capture := strings.Repeat("A", int(w))
				var sp SeqPair
				require.True(t, m.ParseInto([]byte(capture+"GG"), []byte("C"), &sp), name)
				assert.Len(t, sp.S1, int(high)+1, name)
				assert.Equal(t, PaddedWidth(p, int(w)), len(sp.S1), name)
				assert.Equal(t, capture+Padding[high-w], string(sp.S1), name)
			}
		}
	}
}

func TestPaddingTable(t *testing.T) {
	last := map[byte]bool{}
	for i, f := range Padding {
		assert.Len(t, f, i+1)
		assert.False(t, last[f[len(f)-1]], "filler %q repeats a final base", f)
		last[f[len(f)-1]] = true
	}
}

func TestAnchoring(t *testing.T) {
	m, err := CompileString("1{b[4]u[4]}2{r:}")
	require.NoError(t, err)

	var sp SeqPair
	assert.True(t, m.ParseInto([]byte("ACGTACGT"), []byte("A"), &sp))
	assert.Equal(t, "ACGTACGT", string(sp.S1))

	assert.True(t, m.ParseInto([]byte("ACGTACGTTTTTNN"), []byte("A"), &sp), "longer reads drop the suffix")
	assert.Equal(t, "ACGTACGT", string(sp.S1))

	assert.False(t, m.ParseInto([]byte("ACGTACG"), []byte("A"), &sp), "shorter than the geometry")
	assert.False(t, m.ParseInto([]byte("ACGTACGTXX"), []byte("A"), &sp), "suffix outside the alphabet")
}

func TestAlphabet(t *testing.T) {
	m, err := CompileString("1{b[4]}2{r:}")
	require.NoError(t, err)

	var sp SeqPair
	assert.True(t, m.ParseInto([]byte("acgn"), []byte("acgt"), &sp))
	assert.Equal(t, "acgn", string(sp.S1))
	assert.False(t, m.ParseInto([]byte("ACGR"), []byte("ACGT"), &sp))
	assert.False(t, m.ParseInto([]byte("ACGT"), []byte("AC-T"), &sp))
}

func TestPairAtomicity(t *testing.T) {
	m, err := CompileString("1{b[4]}2{u[4]}")
	require.NoError(t, err)

	var sp SeqPair
	assert.True(t, m.ParseInto([]byte("ACGT"), []byte("TTTT"), &sp))
	assert.Equal(t, "ACGT", string(sp.S1))
	assert.Equal(t, "TTTT", string(sp.S2))

	assert.False(t, m.ParseInto([]byte("ACGT"), []byte("TT"), &sp), "read 2 fails")
	assert.False(t, m.ParseInto([]byte("AC"), []byte("TTTT"), &sp), "read 1 fails")
	assert.Nil(t, m.R1.Locations())
	assert.NotNil(t, m.R2.Locations(), "read 2 is still matched")
	assert.False(t, m.ParseInto([]byte("AC"), []byte("TT"), &sp), "both fail")
	assert.Nil(t, m.R2.Locations())
}

func TestParseIntoResetsOutput(t *testing.T) {
	m, err := CompileString("1{b[2]}2{u[2]}")
	require.NoError(t, err)

	var sp SeqPair
	require.True(t, m.ParseInto([]byte("AC"), []byte("GT"), &sp))
	require.True(t, m.ParseInto([]byte("TT"), []byte("CC"), &sp))
	assert.Equal(t, "TT", string(sp.S1))
	assert.Equal(t, "CC", string(sp.S2))
}

func TestRangeTooWide(t *testing.T) {
	for _, s := range []string{
		"1{b[1-6]}2{r:}",
		"1{x[10-15]b[4]}2{r:}",
		"1{b[4]}2{r[20-30]}",
	} {
		m, err := CompileString(s)
		require.Error(t, err, s)
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, ErrRangeTooWide), s)
		assert.False(t, errors.Is(err, ErrInvalidPattern), s)

		var ce *CompileError
		require.True(t, errors.As(err, &ce))
		assert.Contains(t, ce.Error(), ce.Piece.String())
	}

	_, err := CompileString("1{b[1-5]}2{r:}")
	assert.NoError(t, err, "width 4 is the limit")
}

func TestInvalidPattern(t *testing.T) {
	tests := []struct {
		name  string
		piece geom.Piece
	}{
		{"unbalanced literal", geom.NewLiteral("AC(")},
		{"repeat count too large", geom.NewBarcode(geom.Fixed(5000))},
		{"literal adds a group", geom.NewLiteral("(AC)")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			desc := geom.FragmentGeomDesc{
				Read1Desc: []geom.Piece{geom.NewBarcode(geom.Fixed(4))},
				Read2Desc: []geom.Piece{tc.piece},
			}
			m, err := Compile(desc)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, ErrInvalidPattern))

			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, 2, ce.Read)
			assert.NotEmpty(t, ce.Pattern)
			assert.Contains(t, err.Error(), ce.Pattern)
		})
	}
}

func TestSimplifiedDescription(t *testing.T) {
	m, err := CompileString(sciseq3)
	require.NoError(t, err)

	want := geom.FragmentGeomDesc{
		Read1Desc: []geom.Piece{
			geom.NewBarcode(geom.Fixed(11)),
			geom.NewUmi(geom.Fixed(8)),
			geom.NewBarcode(geom.Fixed(10)),
		},
		Read2Desc: []geom.Piece{geom.NewReadSeq(geom.Any())},
	}
	assert.Equal(t, want, m.SimplifiedDescription())
	assert.Equal(t, "1{b[11]u[8]b[10]}2{r:}", m.SimplifiedDescriptionString())
	assert.Equal(t, m.SimplifiedDescription().String(), m.SimplifiedDescriptionString())
}

func TestSimplifiedDescriptionString(t *testing.T) {
	tests := []struct {
		geometry string
		want     string
	}{
		{"1{b[16]u[12]x:}2{r:}", "1{b[16]u[12]}2{r:}"},
		{"1{x[3]b[8-12]f[ACG]u[6-7]}2{x:r[50-52]}", "1{b[13]u[8]}2{r[53]}"},
		{"1{b[16]u[12]}2{x:}", "1{b[16]u[12]}"},
		{"1{x[4]}2{u:b[2-3]}", "2{u:b[4]}"},
		{"1{x:}2{x[1-2]}", ""},
	}
	for _, tc := range tests {
		m, err := CompileString(tc.geometry)
		require.NoError(t, err, tc.geometry)
		assert.Equal(t, tc.want, m.SimplifiedDescriptionString(), tc.geometry)
	}
}

// The simplified width of every piece equals what ParseInto emits for it.
func TestSimplificationConsistency(t *testing.T) {
	m, err := CompileString("1{b[3-5]f[GG]u[2-4]r[6]}2{u[1-2]f[C]}")
	require.NoError(t, err)
	simple := m.SimplifiedDescription()

	want1, want2 := 0, 0
	for _, p := range simple.Read1Desc {
		want1 += int(p.Len.Low)
	}
	for _, p := range simple.Read2Desc {
		want2 += int(p.Len.Low)
	}

	var sp SeqPair
	for _, r1 := range []string{"ACGGGTTACGTAC", "ACGTAGGTTTTACGTAC", "ACGGGTTTTACGTAC"} {
		for _, r2 := range []string{"AC", "TC"} {
			require.True(t, m.ParseInto([]byte(r1), []byte(r2), &sp), r1+"/"+r2)
			assert.Len(t, sp.S1, want1, r1)
			assert.Len(t, sp.S2, want2, r2)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := CompileString(sciseq3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(mm *FragmentMatcher) {
			defer wg.Done()
			var sp SeqPair
			for n := 0; n < 50; n++ {
				for _, tc := range sciseq3Reads {
					if mm.ParseInto([]byte(tc.read), []byte(tc.read), &sp) != tc.parses {
						errs <- tc.read
						return
					}
				}
			}
		}(m.Clone())
	}
	wg.Wait()
	close(errs)
	for r := range errs {
		t.Errorf("clone disagreed on %s", r)
	}
	assert.Equal(t, m.R1.Pattern(), m.Clone().R1.Pattern())
}

func BenchmarkParseInto(b *testing.B) {
	m, err := CompileString(sciseq3)
	if err != nil {
		b.Fatal(err)
	}
	var sp SeqPair
	read := []byte(sciseq3Reads[0].read)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.ParseInto(read, read, &sp)
	}
}
