// internal/tabio/open.go
package tabio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"

	"github.com/biogo/hts/bgzf"
)

// gzip member header: ID1 ID2 CM FLG MTIME(4) XFL OS XLEN(2) then the first
// extra subfield. BGZF blocks set FEXTRA and carry a "BC" subfield first.
const (
	gzipID1    = 0x1f
	gzipID2    = 0x8b
	flagFExtra = 0x04
	headerPeek = 14
)

// Open returns a reader for path. "-" reads stdin. Gzip input is detected by
// magic bytes, not by extension; BGZF (bgzip, tabix) goes through biogo's
// reader and plain gzip through compress/gzip.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return wrap(io.NopCloser(os.Stdin))
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := wrap(fh)
	if err != nil {
		fh.Close()
		return nil, err
	}
	return rc, nil
}

func wrap(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	h, _ := br.Peek(headerPeek)
	if len(h) < 4 || h[0] != gzipID1 || h[1] != gzipID2 {
		return readCloser{Reader: br, Closer: rc}, nil
	}
	if len(h) == headerPeek && h[3]&flagFExtra != 0 && h[12] == 'B' && h[13] == 'C' {
		bg, err := bgzf.NewReader(br, 1)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: bg, Closer: closeBoth{bg, rc}}, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return readCloser{Reader: gr, Closer: closeBoth{gr, rc}}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

type closeBoth [2]io.Closer

func (c closeBoth) Close() error {
	err := c[0].Close()
	if e := c[1].Close(); err == nil {
		err = e
	}
	return err
}
