// Package track bins a per-window quantitative file (e.g. windowed coverage)
// into global midpoints.
package track

import (
	"errors"
	"fmt"
	"io"

	"dotplot/internal/tabio"
)

var (
	// ErrEmptyTrack means no row was accepted, so no window width exists.
	ErrEmptyTrack = errors.New("track has no rows on this axis")
	// ErrWindowMismatch is returned under Options.StrictWindows.
	ErrWindowMismatch = errors.New("window width differs from the first window")
)

// Lookup is the view of an offset index the aggregator needs.
type Lookup interface {
	Lookup(name string) (int, bool)
}

// Point is one window, placed at its global midpoint.
type Point struct {
	Position int
	Value    float64
	Sequence string
}

// Track is the aggregated file. Width is the width of the first accepted
// window and is used for every bar.
type Track struct {
	Points     []Point
	Width      int
	Mismatched int // accepted windows whose width != Width
	Skipped    int // rows on sequences absent from the index
}

// Options tunes validation.
type Options struct {
	StrictWindows bool
}

// widthAccumulator records the first width and checks every later one.
type widthAccumulator struct {
	width    int
	set      bool
	mismatch int
}

func (w *widthAccumulator) observe(width int) bool {
	if !w.set {
		w.width, w.set = width, true
		return true
	}
	if width != w.width {
		w.mismatch++
		return false
	}
	return true
}

// Read aggregates a track: name, start, end, value (tab-separated, extra
// columns ignored).
func Read(r io.Reader, path string, idx Lookup, opt Options) (Track, error) {
	sc := tabio.NewScanner(r, path)
	var (
		tr  Track
		acc widthAccumulator
	)
	for sc.Scan() {
		line := sc.Text()
		if tabio.IsBEDHeader(line) {
			continue
		}
		f := tabio.SplitTab(line)
		if len(f) < 4 {
			return Track{}, sc.Errorf("track row has %d fields, want 4", len(f))
		}
		off, ok := idx.Lookup(f[0])
		if !ok {
			tr.Skipped++
			continue
		}
		start, err := sc.Int(f, 1, "window start")
		if err != nil {
			return Track{}, err
		}
		end, err := sc.Int(f, 2, "window end")
		if err != nil {
			return Track{}, err
		}
		val, err := sc.Float(f, 3, "value")
		if err != nil {
			return Track{}, err
		}
		gs, ge := start+off, end+off
		if !acc.observe(ge-gs) && opt.StrictWindows {
			return Track{}, sc.Errorf("%w: %d != %d", ErrWindowMismatch, ge-gs, acc.width)
		}
		tr.Points = append(tr.Points, Point{Position: floorHalf(gs + ge), Value: val, Sequence: f[0]})
	}
	if err := sc.Err(); err != nil {
		return Track{}, err
	}
	if len(tr.Points) == 0 {
		return Track{}, ErrEmptyTrack
	}
	tr.Width = acc.width
	tr.Mismatched = acc.mismatch
	return tr, nil
}

// floorHalf is n/2 rounded toward negative infinity; Go's / truncates.
func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}

// Load reads the track file at path.
func Load(path string, idx Lookup, opt Options) (Track, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return Track{}, err
	}
	defer rc.Close()

	tr, err := Read(rc, path, idx, opt)
	if errors.Is(err, ErrEmptyTrack) {
		return Track{}, fmt.Errorf("%s: %w", path, err)
	}
	return tr, err
}
