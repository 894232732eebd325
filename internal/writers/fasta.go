// internal/writers/fasta.go
package writers

import (
	"bufio"
	"io"
)

// FastaWriter writes two-line FASTA records (">name\nseq\n") through a buffer.
type FastaWriter struct {
	bw *bufio.Writer
	n  uint64
}

func NewFastaWriter(w io.Writer, bufSize int) *FastaWriter {
	if bufSize <= 0 {
		bufSize = 64 << 10
	}
	return &FastaWriter{bw: bufio.NewWriterSize(w, bufSize)}
}

// WriteRecord emits one record. bufio latches the first error, so checking
// the last write is enough.
func (f *FastaWriter) WriteRecord(name, seq []byte) error {
	_ = f.bw.WriteByte('>')
	_, _ = f.bw.Write(name)
	_ = f.bw.WriteByte('\n')
	_, _ = f.bw.Write(seq)
	if err := f.bw.WriteByte('\n'); err != nil {
		return err
	}
	f.n++
	return nil
}

// Records is the number of records written so far.
func (f *FastaWriter) Records() uint64 { return f.n }

func (f *FastaWriter) Flush() error { return f.bw.Flush() }
