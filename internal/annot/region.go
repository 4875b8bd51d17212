package annot

import (
	"io"

	"dotplot/internal/tabio"
)

// Region is a highlighted interval from a plain BED file.
type Region struct {
	Start    int
	End      int
	Sequence string
}

// Regions is the aggregated feature file, in file order.
type Regions struct {
	Regions []Region
	Skipped int
}

// ReadRegions reads BED3 or wider; columns past the third are ignored.
func ReadRegions(r io.Reader, path string, idx Lookup) (Regions, error) {
	sc := tabio.NewScanner(r, path)
	var out Regions
	for sc.Scan() {
		line := sc.Text()
		if tabio.IsBEDHeader(line) {
			continue
		}
		f := tabio.SplitTab(line)
		if len(f) < 3 {
			return Regions{}, sc.Errorf("feature row has %d fields, want 3", len(f))
		}
		off, ok := idx.Lookup(f[0])
		if !ok {
			out.Skipped++
			continue
		}
		start, err := sc.Int(f, 1, "start")
		if err != nil {
			return Regions{}, err
		}
		end, err := sc.Int(f, 2, "end")
		if err != nil {
			return Regions{}, err
		}
		out.Regions = append(out.Regions, Region{Start: start + off, End: end + off, Sequence: f[0]})
	}
	if err := sc.Err(); err != nil {
		return Regions{}, err
	}
	return out, nil
}

// LoadRegions reads the feature file at path.
func LoadRegions(path string, idx Lookup) (Regions, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return Regions{}, err
	}
	defer rc.Close()
	return ReadRegions(rc, path, idx)
}
