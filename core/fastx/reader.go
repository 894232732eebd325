// core/fastx/reader.go
package fastx

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Record is one FASTA/FASTQ entry. Name is the full header line without the
// leading '>' or '@'. Both slices are only valid until the next call to Next.
type Record struct {
	Name []byte
	Seq  []byte
}

// Reader streams FASTA or FASTQ records from a single file.
type Reader struct {
	path string
	rc   io.ReadCloser
	fx   *fastx.Reader // nil for an empty input
	n    int
}

// NewReader opens path (see Open) for record streaming. The format is
// detected from the first record. An empty input yields no records.
func NewReader(path string) (*Reader, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(rc)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return &Reader{path: path, rc: rc}, nil
		}
		_ = rc.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// bio closes any io.Closer it is handed once it reaches EOF, so it only
	// sees a plain reader and rc stays ours to close.
	// Unlimit skips alphabet checks; the geometry matcher owns validation.
	fx, err := fastx.NewReaderFromIO(seq.Unlimit, struct{ io.Reader }{br}, fastx.DefaultIDRegexp)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Reader{path: path, rc: rc, fx: fx}, nil
}

// Next returns the next record, or io.EOF when the stream is exhausted.
func (r *Reader) Next() (Record, error) {
	if r.fx == nil {
		return Record{}, io.EOF
	}
	rec, err := r.fx.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("%s: record %d: %w", r.path, r.n+1, err)
	}
	r.n++
	return Record{Name: rec.Name, Seq: rec.Seq.Seq}, nil
}

// Count is the number of records returned so far.
func (r *Reader) Count() int { return r.n }

func (r *Reader) Path() string { return r.path }

// Close returns the record parser to bio's pool and closes the input.
func (r *Reader) Close() error {
	if r.fx != nil {
		r.fx.Close()
		r.fx = nil
	}
	return r.rc.Close()
}
