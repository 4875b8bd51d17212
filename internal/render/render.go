// Package render draws a finished plotdata.Data as a static image with
// gonum/plot. The output format follows the file extension.
package render

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"dotplot/internal/align"
	"dotplot/internal/offset"
	"dotplot/internal/plotdata"
	"dotplot/internal/track"
)

// Options size the main plot in points.
type Options struct {
	Width  int
	Height int
}

var gridColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// YProjection returns the y endpoints drawn for s. Minus-strand matches run
// down from the subject start by the query length.
func YProjection(s align.Segment) (y0, y1 float64) {
	if s.Strand == align.Minus {
		return float64(s.Subject.Start), float64(s.Subject.Start + (s.Query.Start - s.Query.End))
	}
	return float64(s.Subject.Start), float64(s.Subject.End)
}

// TrackPath is where the track panel for axis ("x" or "y") is written
// alongside the main plot: dot.svg -> dot.xtrack.svg.
func TrackPath(path, axis string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + axis + "track" + ext
}

// Render writes the dot plot to path, and one track panel per axis that
// carries a track. It returns every path written.
func Render(d plotdata.Data, path string, opt Options) ([]string, error) {
	p, err := dotPlot(d)
	if err != nil {
		return nil, err
	}
	w, h := vg.Points(float64(opt.Width)), vg.Points(float64(opt.Height))
	if err := p.Save(w, h, path); err != nil {
		return nil, fmt.Errorf("save %s: %w", path, err)
	}
	written := []string{path}

	for _, ax := range []struct {
		name string
		a    plotdata.Axis
	}{{"x", d.X}, {"y", d.Y}} {
		if ax.a.Track == nil {
			continue
		}
		tp, err := trackPlot(ax.name, ax.a)
		if err != nil {
			return written, err
		}
		out := TrackPath(path, ax.name)
		if err := tp.Save(w, h/4, out); err != nil {
			return written, fmt.Errorf("save %s: %w", out, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func dotPlot(d plotdata.Data) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = "query"
	p.Y.Label.Text = "reference"
	xTotal, yTotal := float64(d.X.Index.Total()), float64(d.Y.Index.Total())

	if err := addGrid(p, d.X.Index, d.Y.Index); err != nil {
		return nil, err
	}
	if err := addFeatures(p, d.X, true, yTotal); err != nil {
		return nil, err
	}
	if err := addFeatures(p, d.Y, false, xTotal); err != nil {
		return nil, err
	}
	if err := addSegments(p, d.Alignment); err != nil {
		return nil, err
	}
	if err := addAnnotations(p, d.X, true, yTotal); err != nil {
		return nil, err
	}
	if err := addAnnotations(p, d.Y, false, xTotal); err != nil {
		return nil, err
	}

	p.X.Tick.Marker = plot.ConstantTicks(axisTicks(d.X.Index))
	p.Y.Tick.Marker = plot.ConstantTicks(axisTicks(d.Y.Index))
	p.X.Max = max(p.X.Max, xTotal)
	p.Y.Max = max(p.Y.Max, yTotal)
	return p, nil
}

// axisTicks labels each sequence at the middle of its block.
func axisTicks(idx *offset.Index) []plot.Tick {
	var ticks []plot.Tick
	for _, n := range idx.Names() {
		off, _ := idx.Lookup(n)
		l, _ := idx.Length(n)
		ticks = append(ticks, plot.Tick{Value: float64(off) + float64(l)/2, Label: n})
	}
	return ticks
}

func line(xys plotter.XYs, c color.Color, width vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = width
	return l, nil
}

func addGrid(p *plot.Plot, x, y *offset.Index) error {
	xTotal, yTotal := float64(x.Total()), float64(y.Total())
	for _, b := range x.Boundaries() {
		l, err := line(plotter.XYs{{X: float64(b), Y: 0}, {X: float64(b), Y: yTotal}}, gridColor, vg.Points(0.5))
		if err != nil {
			return err
		}
		p.Add(l)
	}
	for _, b := range y.Boundaries() {
		l, err := line(plotter.XYs{{X: 0, Y: float64(b)}, {X: xTotal, Y: float64(b)}}, gridColor, vg.Points(0.5))
		if err != nil {
			return err
		}
		p.Add(l)
	}
	return nil
}

func addSegments(p *plot.Plot, res align.Result) error {
	lo, hi, _ := res.IdentityRange()
	scale, err := NewIdentityScale(lo, hi)
	if err != nil {
		return err
	}
	for _, s := range res.Segments {
		y0, y1 := YProjection(s)
		xys := plotter.XYs{{X: float64(s.Query.Start), Y: y0}, {X: float64(s.Query.End), Y: y1}}
		c, err := scale.At(s.Identity)
		if err != nil {
			return err
		}
		l, err := line(xys, c, vg.Points(1))
		if err != nil {
			return err
		}
		p.Add(l)
	}
	return nil
}

// addFeatures shades each region across the full extent of the other axis.
func addFeatures(p *plot.Plot, a plotdata.Axis, onX bool, span float64) error {
	if a.Features == nil || len(a.Features.Regions) == 0 {
		return nil
	}
	c, err := ParseColor(a.FeatureColor)
	if err != nil {
		return err
	}
	fill := translucent(c, 77)
	for _, r := range a.Features.Regions {
		s, e := float64(r.Start), float64(r.End)
		box := plotter.XYs{{X: s, Y: 0}, {X: e, Y: 0}, {X: e, Y: span}, {X: s, Y: span}}
		if !onX {
			box = plotter.XYs{{X: 0, Y: s}, {X: span, Y: s}, {X: span, Y: e}, {X: 0, Y: e}}
		}
		poly, err := plotter.NewPolygon(box)
		if err != nil {
			return err
		}
		poly.Color = fill
		poly.LineStyle.Width = 0
		p.Add(poly)
	}
	return nil
}

// addAnnotations draws each record as a thick tick just outside its axis.
func addAnnotations(p *plot.Plot, a plotdata.Axis, onX bool, span float64) error {
	if a.Annotations == nil {
		return nil
	}
	gap := span / 100
	for _, r := range a.Annotations.Records {
		c, err := ParseColor(r.Color)
		if err != nil {
			return err
		}
		s, e := float64(r.Start), float64(r.End)
		xys := plotter.XYs{{X: s, Y: -gap}, {X: e, Y: -gap}}
		if !onX {
			xys = plotter.XYs{{X: -gap, Y: s}, {X: -gap, Y: e}}
		}
		l, err := line(xys, c, vg.Points(3))
		if err != nil {
			return err
		}
		p.Add(l)
	}
	return nil
}

// trackPlot draws one bar of the track's width per window. Positions run
// along the horizontal axis for both x and y tracks.
func trackPlot(axis string, a plotdata.Axis) (*plot.Plot, error) {
	c, err := ParseColor(a.TrackColor)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = a.TrackTitle
	if p.Title.Text == "" {
		p.Title.Text = axis + " track"
	}
	if err := addBars(p, a.Track, c); err != nil {
		return nil, err
	}
	p.X.Tick.Marker = plot.ConstantTicks(axisTicks(a.Index))
	p.X.Min = 0
	p.X.Max = max(p.X.Max, float64(a.Index.Total()))
	return p, nil
}

func addBars(p *plot.Plot, tr *track.Track, c color.Color) error {
	half := float64(tr.Width) / 2
	for _, pt := range tr.Points {
		x := float64(pt.Position)
		bar := plotter.XYs{{X: x - half, Y: 0}, {X: x + half, Y: 0}, {X: x + half, Y: pt.Value}, {X: x - half, Y: pt.Value}}
		poly, err := plotter.NewPolygon(bar)
		if err != nil {
			return err
		}
		poly.Color = c
		poly.LineStyle.Width = 0
		p.Add(poly)
	}
	return nil
}
