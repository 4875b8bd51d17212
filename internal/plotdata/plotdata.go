// Package plotdata is the in-memory result handed to writers and the
// renderer: both axes, the filtered segments and the per-axis overlays.
// Everything here is read-only once built.
package plotdata

import (
	"dotplot/internal/align"
	"dotplot/internal/annot"
	"dotplot/internal/offset"
	"dotplot/internal/track"
)

// Axis is one assembly with its optional overlays. Nil pointers mean the
// corresponding file was not given.
type Axis struct {
	Index       *offset.Index
	Track       *track.Track
	Annotations *annot.Annotations
	Features    *annot.Regions

	TrackTitle   string
	TrackColor   string
	FeatureColor string
}

// Data is a complete dot plot.
type Data struct {
	Title     string
	Threshold float64
	MinLength int

	X, Y      Axis
	Alignment align.Result
}
