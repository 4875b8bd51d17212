// internal/output/api.go
package output

import (
	"dotplot/internal/align"
	"dotplot/internal/annot"
	"dotplot/internal/offset"
	"dotplot/internal/plotdata"
	"dotplot/internal/track"
	"dotplot/pkg/api"
)

// ToAPISegment converts a domain Segment to the stable wire schema (v1).
func ToAPISegment(s align.Segment) api.SegmentV1 {
	return api.SegmentV1{
		QueryStart:   s.Query.Start,
		QueryEnd:     s.Query.End,
		SubjectStart: s.Subject.Start,
		SubjectEnd:   s.Subject.End,
		Identity:     s.Identity,
		Strand:       s.Strand,
		Query:        s.QueryName,
		Subject:      s.SubjectName,
	}
}

func toAPIAxis(idx *offset.Index) api.AxisV1 {
	ax := api.AxisV1{Sequences: []api.SequenceV1{}}
	if idx == nil {
		return ax
	}
	for _, n := range idx.Names() {
		off, _ := idx.Lookup(n)
		l, _ := idx.Length(n)
		ax.Sequences = append(ax.Sequences, api.SequenceV1{Name: n, Offset: off, Length: l})
	}
	ax.Total = idx.Total()
	return ax
}

func toAPITrack(tr *track.Track, title, color string) *api.TrackV1 {
	if tr == nil {
		return nil
	}
	v := &api.TrackV1{Width: tr.Width, Title: title, Color: color, Points: make([]api.TrackPointV1, 0, len(tr.Points))}
	for _, p := range tr.Points {
		v.Points = append(v.Points, api.TrackPointV1{Position: p.Position, Value: p.Value, Sequence: p.Sequence})
	}
	return v
}

func toAPIAnnotations(an *annot.Annotations) []api.AnnotationV1 {
	if an == nil {
		return nil
	}
	out := make([]api.AnnotationV1, 0, len(an.Records))
	for _, r := range an.Records {
		out = append(out, api.AnnotationV1{
			Start: r.Start, End: r.End, Name: r.Name,
			Strand: r.Strand, Sequence: r.Sequence, Color: r.Color,
		})
	}
	return out
}

func toAPIRegions(rg *annot.Regions) []api.RegionV1 {
	if rg == nil {
		return nil
	}
	out := make([]api.RegionV1, 0, len(rg.Regions))
	for _, r := range rg.Regions {
		out = append(out, api.RegionV1{Start: r.Start, End: r.End, Sequence: r.Sequence})
	}
	return out
}

// ToAPIStats converts filter counts, adding the mean identity of kept segments.
func ToAPIStats(res align.Result) api.StatsV1 {
	st := res.Stats
	return api.StatsV1{
		Records:        st.Records,
		Kept:           st.Kept,
		LowIdentity:    st.LowIdentity,
		Short:          st.Short,
		UnknownQuery:   st.UnknownQuery,
		UnknownSubject: st.UnknownSubject,
		MeanIdentity:   res.MeanIdentity(),
	}
}

// ToAPI converts the whole plot.
func ToAPI(d plotdata.Data) api.DotPlotV1 {
	v := api.DotPlotV1{
		Title:     d.Title,
		Threshold: d.Threshold,
		MinLength: d.MinLength,
		X:         toAPIAxis(d.X.Index),
		Y:         toAPIAxis(d.Y.Index),
		Segments:  make([]api.SegmentV1, 0, len(d.Alignment.Segments)),
		Stats:     ToAPIStats(d.Alignment),
	}
	for _, s := range d.Alignment.Segments {
		v.Segments = append(v.Segments, ToAPISegment(s))
	}
	v.Tracks.X = toAPITrack(d.X.Track, d.X.TrackTitle, d.X.TrackColor)
	v.Tracks.Y = toAPITrack(d.Y.Track, d.Y.TrackTitle, d.Y.TrackColor)
	v.Annotations.X = toAPIAnnotations(d.X.Annotations)
	v.Annotations.Y = toAPIAnnotations(d.Y.Annotations)
	v.Features.X = toAPIRegions(d.X.Features)
	v.Features.Y = toAPIRegions(d.Y.Features)
	return v
}

// Records flattens the plot into JSONL lines: axes, segments, overlays, stats.
func Records(d plotdata.Data) []api.RecordV1 {
	doc := ToAPI(d)
	var out []api.RecordV1
	axes := []struct {
		name string
		ax   api.AxisV1
		tr   *api.TrackV1
		an   []api.AnnotationV1
		ft   []api.RegionV1
	}{
		{"x", doc.X, doc.Tracks.X, doc.Annotations.X, doc.Features.X},
		{"y", doc.Y, doc.Tracks.Y, doc.Annotations.Y, doc.Features.Y},
	}
	for _, a := range axes {
		for i := range a.ax.Sequences {
			out = append(out, api.RecordV1{Kind: "axis", Axis: a.name, Sequence: &a.ax.Sequences[i]})
		}
	}
	for i := range doc.Segments {
		out = append(out, api.RecordV1{Kind: "segment", Segment: &doc.Segments[i]})
	}
	for _, a := range axes {
		if a.tr != nil {
			head := &api.TrackV1{Width: a.tr.Width, Title: a.tr.Title, Color: a.tr.Color}
			out = append(out, api.RecordV1{Kind: "track", Axis: a.name, Track: head})
			for i := range a.tr.Points {
				out = append(out, api.RecordV1{Kind: "point", Axis: a.name, Point: &a.tr.Points[i]})
			}
		}
		for i := range a.an {
			out = append(out, api.RecordV1{Kind: "annotation", Axis: a.name, Annotation: &a.an[i]})
		}
		for i := range a.ft {
			out = append(out, api.RecordV1{Kind: "feature", Axis: a.name, Feature: &a.ft[i]})
		}
	}
	out = append(out, api.RecordV1{Kind: "stats", Stats: &doc.Stats})
	return out
}
