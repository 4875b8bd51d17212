package align

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"dotplot/internal/tabio"
)

// Format names an alignment file layout. It is chosen by the caller, never
// sniffed from content.
type Format string

const (
	FormatCoords Format = "coords" // nucmer show-coords -T -l
	FormatPAF    Format = "paf"    // minimap2 PAF with a de:f: tag
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatCoords, FormatPAF}

// Source parses one alignment format. Implementations read r to the end and
// apply f to every data record.
type Source interface {
	Format() Format
	Parse(r io.Reader, path string, f Filter) (Result, error)
}

// SourceFor returns the Source for a format name.
func SourceFor(format Format) (Source, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatCoords:
		return CoordsSource{}, nil
	case FormatPAF:
		return PAFSource{}, nil
	}
	return nil, fmt.Errorf("unknown alignment format %q", format)
}

// Stats counts records by filter outcome.
type Stats struct {
	Records        int
	Kept           int
	LowIdentity    int
	Short          int
	UnknownQuery   int
	UnknownSubject int
}

// Skipped is the number of records dropped for naming an unknown sequence.
func (s Stats) Skipped() int { return s.UnknownQuery + s.UnknownSubject }

func (s *Stats) count(r Reason) {
	s.Records++
	switch r {
	case Kept:
		s.Kept++
	case LowIdentity:
		s.LowIdentity++
	case Short:
		s.Short++
	case UnknownQuery:
		s.UnknownQuery++
	case UnknownSubject:
		s.UnknownSubject++
	}
}

// Result is a parsed, filtered alignment file.
type Result struct {
	Segments []Segment
	Stats    Stats
}

// IdentityRange returns the min and max identity of the kept segments.
// ok is false when there are none.
func (r Result) IdentityRange() (lo, hi float64, ok bool) {
	if len(r.Segments) == 0 {
		return 0, 0, false
	}
	ids := r.identities()
	return floats.Min(ids), floats.Max(ids), true
}

// MeanIdentity is the unweighted mean identity of the kept segments (0 if none).
func (r Result) MeanIdentity() float64 {
	if len(r.Segments) == 0 {
		return 0
	}
	return stat.Mean(r.identities(), nil)
}

func (r Result) identities() []float64 {
	ids := make([]float64, len(r.Segments))
	for i, s := range r.Segments {
		ids[i] = s.Identity
	}
	return ids
}

// record is the raw, local-coordinate shape every Source normalizes to.
type record struct {
	qName, sName string
	qStart, qEnd int
	sStart, sEnd int
	identity     float64
}

// collector applies the filter and the coordinate shift; it is the one place
// both formats share.
type collector struct {
	f   Filter
	res Result
}

func (c *collector) add(rec record) error {
	v := c.f.Check(rec.identity, rec.qName, rec.sName, rec.qStart, rec.qEnd)
	if err := c.f.missError(v, rec.qName, rec.sName); err != nil {
		return err
	}
	c.res.Stats.count(v.Reason)
	if v.Reason != Kept {
		return nil
	}
	c.res.Segments = append(c.res.Segments, Segment{
		Query:       Interval{rec.qStart + v.QOffset, rec.qEnd + v.QOffset},
		Subject:     Interval{rec.sStart + v.SOffset, rec.sEnd + v.SOffset},
		Identity:    rec.identity,
		Strand:      StrandOf(rec.sStart, rec.sEnd),
		QueryName:   rec.qName,
		SubjectName: rec.sName,
	})
	return nil
}

// ParseFile opens path (gzip/BGZF aware, "-" for stdin) and parses it with src.
func ParseFile(src Source, path string, f Filter) (Result, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer rc.Close()
	return src.Parse(rc, path, f)
}

// SortSegments orders segments by query start, then subject start, then names,
// for reproducible output.
func SortSegments(segs []Segment) {
	sort.SliceStable(segs, func(i, j int) bool {
		a, b := segs[i], segs[j]
		if a.Query.Start != b.Query.Start {
			return a.Query.Start < b.Query.Start
		}
		if a.Subject.Start != b.Subject.Start {
			return a.Subject.Start < b.Subject.Start
		}
		if a.QueryName != b.QueryName {
			return a.QueryName < b.QueryName
		}
		return a.SubjectName < b.SubjectName
	})
}
