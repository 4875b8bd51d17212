// pkg/api/dotplot_v1.go
package api

// Stable JSON/JSONL schema (v1). Keep fields, names, and types stable.
// Add new fields only with ",omitempty".

// SequenceV1 is one block of an axis.
type SequenceV1 struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// AxisV1 is one assembly laid out longest sequence first.
type AxisV1 struct {
	Sequences []SequenceV1 `json:"sequences"`
	Total     int          `json:"total"`
}

// SegmentV1 is one retained alignment in global coordinates.
type SegmentV1 struct {
	QueryStart   int     `json:"query_start"`
	QueryEnd     int     `json:"query_end"`
	SubjectStart int     `json:"subject_start"`
	SubjectEnd   int     `json:"subject_end"`
	Identity     float64 `json:"identity"`
	Strand       string  `json:"strand"` // "+" | "-"
	Query        string  `json:"query"`
	Subject      string  `json:"subject"`
}

// TrackPointV1 is one window at its global midpoint.
type TrackPointV1 struct {
	Position int     `json:"position"`
	Value    float64 `json:"value"`
	Sequence string  `json:"sequence"`
}

// TrackV1 is a quantitative track; Width is the bar width for every point.
type TrackV1 struct {
	Width  int            `json:"width"`
	Title  string         `json:"title,omitempty"`
	Color  string         `json:"color,omitempty"`
	Points []TrackPointV1 `json:"points"`
}

// AnnotationV1 is one stranded feature.
type AnnotationV1 struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Name     string `json:"name"`
	Strand   string `json:"strand"`
	Sequence string `json:"sequence"`
	Color    string `json:"color"`
}

// RegionV1 is one highlighted feature box.
type RegionV1 struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Sequence string `json:"sequence"`
}

// StatsV1 summarizes alignment filtering.
type StatsV1 struct {
	Records        int     `json:"records"`
	Kept           int     `json:"kept"`
	LowIdentity    int     `json:"low_identity"`
	Short          int     `json:"short"`
	UnknownQuery   int     `json:"unknown_query"`
	UnknownSubject int     `json:"unknown_subject"`
	MeanIdentity   float64 `json:"mean_identity,omitempty"`
}

// PairV1 groups per-axis auxiliary data.
type PairV1[T any] struct {
	X T `json:"x,omitempty"`
	Y T `json:"y,omitempty"`
}

// DotPlotV1 is the whole document written by --format json.
type DotPlotV1 struct {
	Title       string                 `json:"title,omitempty"`
	Threshold   float64                `json:"threshold"`
	MinLength   int                    `json:"min_length"`
	X           AxisV1                 `json:"x"`
	Y           AxisV1                 `json:"y"`
	Segments    []SegmentV1            `json:"segments"`
	Tracks      PairV1[*TrackV1]       `json:"tracks"`
	Annotations PairV1[[]AnnotationV1] `json:"annotations"`
	Features    PairV1[[]RegionV1]     `json:"features"`
	Stats       StatsV1                `json:"stats"`
}

// RecordV1 is one JSONL line; Kind says which payload field is set.
type RecordV1 struct {
	Kind       string        `json:"kind"` // axis|segment|track|point|annotation|feature|stats
	Axis       string        `json:"axis,omitempty"`
	Sequence   *SequenceV1   `json:"sequence,omitempty"`
	Segment    *SegmentV1    `json:"segment,omitempty"`
	Track      *TrackV1      `json:"track,omitempty"`
	Point      *TrackPointV1 `json:"point,omitempty"`
	Annotation *AnnotationV1 `json:"annotation,omitempty"`
	Feature    *RegionV1     `json:"feature,omitempty"`
	Stats      *StatsV1      `json:"stats,omitempty"`
}
