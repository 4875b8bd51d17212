package tabio

import (
	"io"
	"os"

	"gopkg.in/cheggaaa/pb.v1"
)

// OpenProgress is Open with a byte progress bar written to w. The bar tracks
// the on-disk (possibly compressed) size, so it is only attached to regular
// files; stdin and pipes fall back to plain Open.
func OpenProgress(path string, w io.Writer) (io.ReadCloser, error) {
	if path == "-" || w == nil {
		return Open(path)
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() {
		return Open(path)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	bar := pb.New64(st.Size()).SetUnits(pb.U_BYTES)
	bar.Output = w
	bar.ShowSpeed = true
	bar.Start()

	rc, err := wrap(readCloser{Reader: bar.NewProxyReader(fh), Closer: fh})
	if err != nil {
		bar.Finish()
		fh.Close()
		return nil, err
	}
	return readCloser{Reader: rc, Closer: finishBar{bar: bar, rc: rc}}, nil
}

type finishBar struct {
	bar *pb.ProgressBar
	rc  io.Closer
}

func (f finishBar) Close() error {
	f.bar.Finish()
	return f.rc.Close()
}
