// core/fastx/open.go
package fastx

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// multiReadCloser closes multiple io.Closers on the first Close. Later calls
// return the same result.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
	once    sync.Once
	err     error
}

func (m *multiReadCloser) Close() error {
	m.once.Do(func() {
		for _, c := range m.closers {
			if cerr := c.Close(); cerr != nil && m.err == nil {
				m.err = cerr
			}
		}
	})
	return m.err
}

// Open returns a reader over path, transparently decompressing gzip and zstd.
// Compression is detected by magic number, falling back to the .gz/.zst suffix.
// "-" reads stdin.
func Open(path string) (io.ReadCloser, error) {
	var (
		src    io.Reader
		closer io.Closer
	)
	if path == "-" {
		src, closer = os.Stdin, io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closer = fh, fh
	}

	br := bufio.NewReaderSize(src, 64<<10)
	sig, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(sig, gzipMagic) || strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
	case bytes.HasPrefix(sig, zstdMagic) || strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		rc := zr.IOReadCloser()
		return &multiReadCloser{Reader: rc, closers: []io.Closer{rc, closer}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{closer}}, nil
}

// Readable checks that path can be opened, without consuming it. Stdin is
// always considered readable.
func Readable(path string) error {
	if path == "-" {
		return nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	return fh.Close()
}
