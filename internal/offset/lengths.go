package offset

import (
	"fmt"
	"io"

	"dotplot/internal/tabio"
)

// ReadLengths reads a tab-delimited length table: name, length, anything else
// ignored. A samtools .fai index is a valid length table.
func ReadLengths(r io.Reader, path string) ([]Entry, error) {
	sc := tabio.NewScanner(r, path)
	var list []Entry
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		f := tabio.SplitTab(line)
		if len(f) < 2 {
			return nil, sc.Errorf("want name and length, got %d field(s)", len(f))
		}
		n, err := sc.Int(f, 1, "length")
		if err != nil {
			return nil, err
		}
		list = append(list, Entry{Name: f[0], Length: n})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Load reads the length table at path and builds its Index.
func Load(path string) (*Index, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	entries, err := ReadLengths(rc, path)
	if err != nil {
		return nil, err
	}
	idx, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}
