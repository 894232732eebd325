// core/fastx/pair.go
package fastx

import (
	"errors"
	"io"
)

// PairReader reads mate records from two files in lockstep.
type PairReader struct {
	r1, r2     *Reader
	unbalanced bool
}

// OpenPair opens both mates. On error nothing is left open.
func OpenPair(path1, path2 string) (*PairReader, error) {
	r1, err := NewReader(path1)
	if err != nil {
		return nil, err
	}
	r2, err := NewReader(path2)
	if err != nil {
		_ = r1.Close()
		return nil, err
	}
	return &PairReader{r1: r1, r2: r2}, nil
}

// Next returns the next mate pair. It returns io.EOF as soon as either file
// is exhausted; Unbalanced then reports whether the other still had records.
func (p *PairReader) Next() (Record, Record, error) {
	a, err1 := p.r1.Next()
	if err1 != nil && !errors.Is(err1, io.EOF) {
		return Record{}, Record{}, err1
	}
	b, err2 := p.r2.Next()
	if err2 != nil && !errors.Is(err2, io.EOF) {
		return Record{}, Record{}, err2
	}
	if err1 != nil || err2 != nil {
		p.unbalanced = (err1 == nil) != (err2 == nil)
		return Record{}, Record{}, io.EOF
	}
	return a, b, nil
}

// Unbalanced reports whether one mate file ran out before the other.
func (p *PairReader) Unbalanced() bool { return p.unbalanced }

// Counts returns the records read from each mate file so far.
func (p *PairReader) Counts() (int, int) { return p.r1.Count(), p.r2.Count() }

func (p *PairReader) Close() error {
	err1 := p.r1.Close()
	err2 := p.r2.Close()
	return errors.Join(err1, err2)
}
