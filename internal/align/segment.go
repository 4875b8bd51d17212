// Package align turns pairwise alignment files into filtered segments in
// global (concatenated-axis) coordinates. It is domain-only: it never imports
// app, cli, writers or render.
package align

// Strand symbols.
const (
	Plus  = "+"
	Minus = "-"
)

// Interval is a pair of global coordinates in file order; Start may exceed End.
type Interval struct {
	Start int
	End   int
}

// Len is |End-Start|.
func (iv Interval) Len() int {
	if iv.End < iv.Start {
		return iv.Start - iv.End
	}
	return iv.End - iv.Start
}

// Segment is one retained match between a query (x axis) and a subject
// (y axis) sequence.
type Segment struct {
	Query       Interval
	Subject     Interval
	Identity    float64
	Strand      string
	QueryName   string
	SubjectName string
}

// StrandOf derives the strand from the orientation of the subject interval.
// A zero-length subject interval counts as forward.
func StrandOf(subjectStart, subjectEnd int) string {
	if subjectEnd < subjectStart {
		return Minus
	}
	return Plus
}
