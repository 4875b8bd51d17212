// Package annot places stranded annotations (genes, repeats) and plain
// feature regions on a global axis.
package annot

import (
	"io"

	"dotplot/internal/tabio"
)

// Lookup is the view of an offset index the aggregator needs.
type Lookup interface {
	Lookup(name string) (int, bool)
}

// Palette maps strands to color tags.
type Palette struct {
	Plus  string
	Minus string
	Other string // any strand other than + or -
}

// DefaultPalette is the Okabe-Ito vermillion/blue pair plus grey.
var DefaultPalette = Palette{Plus: "#D55E00", Minus: "#0072B2", Other: "#999999"}

// ColorFor returns the color tag for a strand symbol.
func (p Palette) ColorFor(strand string) string {
	switch strand {
	case "+":
		return p.Plus
	case "-":
		return p.Minus
	}
	return p.Other
}

// Record is one annotation in global coordinates.
type Record struct {
	Start    int
	End      int
	Name     string
	Strand   string
	Sequence string
	Color    string
}

// Annotations is the aggregated file, in file order.
type Annotations struct {
	Records []Record
	Skipped int
}

// ReadAnnotations reads BED6 (name, start, end, feature, score, strand).
// Overlaps are kept as-is.
func ReadAnnotations(r io.Reader, path string, idx Lookup, pal Palette) (Annotations, error) {
	sc := tabio.NewScanner(r, path)
	var out Annotations
	for sc.Scan() {
		line := sc.Text()
		if tabio.IsBEDHeader(line) {
			continue
		}
		f := tabio.SplitTab(line)
		if len(f) < 6 {
			return Annotations{}, sc.Errorf("annotation row has %d fields, want 6", len(f))
		}
		off, ok := idx.Lookup(f[0])
		if !ok {
			out.Skipped++
			continue
		}
		start, err := sc.Int(f, 1, "start")
		if err != nil {
			return Annotations{}, err
		}
		end, err := sc.Int(f, 2, "end")
		if err != nil {
			return Annotations{}, err
		}
		out.Records = append(out.Records, Record{
			Start:    start + off,
			End:      end + off,
			Name:     f[3],
			Strand:   f[5],
			Sequence: f[0],
			Color:    pal.ColorFor(f[5]),
		})
	}
	if err := sc.Err(); err != nil {
		return Annotations{}, err
	}
	return out, nil
}

// LoadAnnotations reads the annotation file at path.
func LoadAnnotations(path string, idx Lookup, pal Palette) (Annotations, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return Annotations{}, err
	}
	defer rc.Close()
	return ReadAnnotations(rc, path, idx, pal)
}
