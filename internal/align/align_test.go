package align

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"dotplot/internal/offset"
	"dotplot/internal/tabio"
)

func index(t *testing.T, entries ...offset.Entry) *offset.Index {
	t.Helper()
	idx, err := offset.New(entries)
	if err != nil {
		t.Fatalf("offset.New: %v", err)
	}
	return idx
}

func pairIndexes(t *testing.T) (*offset.Index, *offset.Index) {
	return index(t, offset.Entry{Name: "seqA", Length: 1000}),
		index(t, offset.Entry{Name: "seqB", Length: 1000})
}

// coordsRow renders one show-coords -T -l data row.
func coordsRow(qs, qe, ss, se int, idy float64, q, s string) string {
	return fmt.Sprintf("%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t1000\t1000\t%s\t%s\n",
		qs, qe, ss, se, abs(qe-qs)+1, abs(se-ss)+1, idy, q, s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

const coordsHeader = "/data/x.fa /data/y.fa\n" +
	"NUCMER\n" +
	"\n" +
	"[S1]\t[E1]\t[S2]\t[E2]\t[LEN 1]\t[LEN 2]\t[% IDY]\t[LEN R]\t[LEN Q]\t[TAGS]\n"

func TestStrandRule(t *testing.T) {
	if got := StrandOf(100, 200); got != Plus {
		t.Errorf("StrandOf(100,200) = %s", got)
	}
	if got := StrandOf(200, 100); got != Minus {
		t.Errorf("StrandOf(200,100) = %s", got)
	}
	if got := StrandOf(150, 150); got != Plus {
		t.Errorf("StrandOf(150,150) = %s, want + for a point", got)
	}
}

func TestEndToEndCoords(t *testing.T) {
	x, y := pairIndexes(t)
	in := coordsHeader + coordsRow(100, 200, 300, 400, 95, "seqA", "seqB")

	res, err := CoordsSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: 90, MinLength: 50, X: x, Y: y})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("want 1 segment, got %d (%+v)", len(res.Segments), res.Stats)
	}
	s := res.Segments[0]
	if s.Query != (Interval{100, 200}) || s.Subject != (Interval{300, 400}) || s.Strand != Plus {
		t.Fatalf("segment = %+v", s)
	}
	if s.Identity != 95 || s.QueryName != "seqA" || s.SubjectName != "seqB" {
		t.Fatalf("metadata = %+v", s)
	}

	res, err = CoordsSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: 90, MinLength: 150, X: x, Y: y})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Segments) != 0 || res.Stats.Short != 1 {
		t.Fatalf("length 100 < 150 must be rejected; got %d segments, stats %+v", len(res.Segments), res.Stats)
	}
}

func TestIdentityThresholdIsStrict(t *testing.T) {
	x, y := pairIndexes(t)
	in := coordsRow(1, 500, 1, 500, 90, "seqA", "seqB")
	res, err := CoordsSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: 90, MinLength: 0, X: x, Y: y})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Segments) != 0 || res.Stats.LowIdentity != 1 {
		t.Fatalf("identity == threshold must be dropped, got %+v", res.Stats)
	}
}

func TestMinLengthIsInclusive(t *testing.T) {
	x, y := pairIndexes(t)
	in := coordsRow(200, 100, 1, 100, 99, "seqA", "seqB")
	res, err := CoordsSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: 90, MinLength: 100, X: x, Y: y})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("|100-200| == 100 must be kept, got %+v", res.Stats)
	}
}

func TestLookupMissIsSkipped(t *testing.T) {
	x, y := pairIndexes(t)
	in := coordsRow(100, 2000, 300, 2400, 99, "ghost", "seqB") +
		coordsRow(100, 2000, 300, 2400, 99, "seqA", "ghost") +
		coordsRow(100, 2000, 300, 2400, 99, "seqA", "seqB")
	res, err := CoordsSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: 90, MinLength: 1000, X: x, Y: y})
	if err != nil {
		t.Fatalf("lookup miss must not be fatal: %v", err)
	}
	if len(res.Segments) != 1 || res.Stats.UnknownQuery != 1 || res.Stats.UnknownSubject != 1 || res.Stats.Skipped() != 2 {
		t.Fatalf("stats = %+v", res.Stats)
	}
}

func TestLookupMissStrict(t *testing.T) {
	x, y := pairIndexes(t)
	in := coordsRow(100, 2000, 300, 2400, 99, "seqA", "ghost")
	_, err := CoordsSource{}.Parse(strings.NewReader(in), "a.coords", Filter{Threshold: 90, MinLength: 1000, X: x, Y: y, Miss: MissFail})
	var ue *UnknownSequenceError
	if !errors.As(err, &ue) || ue.Axis != "y" || ue.Name != "ghost" {
		t.Fatalf("want UnknownSequenceError for y/ghost, got %v", err)
	}
	var pe *tabio.ParseError
	if !errors.As(err, &pe) || pe.Line != 1 {
		t.Fatalf("want the error located at line 1, got %v", err)
	}
}

func TestCoordinateShift(t *testing.T) {
	x := index(t, offset.Entry{Name: "big", Length: 5000}, offset.Entry{Name: "S", Length: 3000})
	y := index(t, offset.Entry{Name: "T", Length: 900}, offset.Entry{Name: "U", Length: 7000})
	in := coordsRow(10, 2500, 800, 20, 97.5, "S", "T")
	res, err := CoordsSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: 90, MinLength: 1000, X: x, Y: y})
	if err != nil || len(res.Segments) != 1 {
		t.Fatalf("Parse: %v %+v", err, res.Stats)
	}
	s := res.Segments[0]
	if s.Query != (Interval{5010, 7500}) {
		t.Errorf("query = %+v, want {5010 7500}", s.Query)
	}
	if s.Subject != (Interval{7800, 7020}) || s.Strand != Minus {
		t.Errorf("subject = %+v strand %s, want {7800 7020} -", s.Subject, s.Strand)
	}
}

func TestCoordsMalformed(t *testing.T) {
	x, y := pairIndexes(t)
	f := Filter{Threshold: 90, X: x, Y: y}
	for name, in := range map[string]string{
		"short row":    "1\t2\t3\n",
		"bad identity": "1\t500\t1\t500\t500\t500\tNaNx\t1000\t1000\tseqA\tseqB\n",
		"bad start":    "one\t500\t1\t500\t500\t500\t99\t1000\t1000\tseqA\tseqB\n",
	} {
		if _, err := (CoordsSource{}).Parse(strings.NewReader(in), "bad.coords", f); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

func pafRow(q string, qs, qe int, s string, ss, se int, tags ...string) string {
	cols := []string{q, "1000", fmt.Sprint(qs), fmt.Sprint(qe), "+", s, "1000", fmt.Sprint(ss), fmt.Sprint(se), "90", "100", "60"}
	return strings.Join(append(cols, tags...), "\t") + "\n"
}

func TestPAFIdentityFromDivergence(t *testing.T) {
	x, y := pairIndexes(t)
	in := pafRow("seqA", 100, 200, "seqB", 300, 400, "tp:A:P", "NM:i:3", "de:f:0.05")
	res, err := PAFSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: 90, MinLength: 50, X: x, Y: y})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("want 1 segment, got %+v", res.Stats)
	}
	s := res.Segments[0]
	if math.Abs(s.Identity-95) > 1e-9 {
		t.Fatalf("identity = %v, want 95", s.Identity)
	}
	if s.Query != (Interval{100, 200}) || s.Subject != (Interval{300, 400}) || s.Strand != Plus {
		t.Fatalf("segment = %+v", s)
	}
}

func TestPAFLastDivergenceWins(t *testing.T) {
	x, y := pairIndexes(t)
	// "dv" does not contain "de"; both "de" and "xde" do, the later wins.
	in := pafRow("seqA", 0, 500, "seqB", 0, 500, "de:f:0.5", "dv:f:0.3", "xde:f:0.01")
	res, err := PAFSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: 90, X: x, Y: y})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Segments) != 1 || math.Abs(res.Segments[0].Identity-99) > 1e-9 {
		t.Fatalf("want identity 99 from the last de-like tag, got %+v / %+v", res.Segments, res.Stats)
	}
}

func TestPAFMissingDivergenceIsFatal(t *testing.T) {
	x, y := pairIndexes(t)
	in := pafRow("seqA", 0, 500, "seqB", 0, 500, "tp:A:P", "NM:i:0")
	_, err := PAFSource{}.Parse(strings.NewReader(in), "x.paf", Filter{Threshold: 90, X: x, Y: y})
	if !errors.Is(err, ErrMissingDivergence) {
		t.Fatalf("want ErrMissingDivergence, got %v", err)
	}
}

func TestPAFMalformed(t *testing.T) {
	x, y := pairIndexes(t)
	f := Filter{Threshold: 90, X: x, Y: y}
	for name, in := range map[string]string{
		"few fields": "seqA\t1000\t0\t10\n",
		"bad de":     pafRow("seqA", 0, 500, "seqB", 0, 500, "de:f:abc"),
		"bad coord":  strings.Replace(pafRow("seqA", 0, 500, "seqB", 0, 500, "de:f:0.1"), "\t500\t", "\tfive\t", 1),
	} {
		if _, err := (PAFSource{}).Parse(strings.NewReader(in), "bad.paf", f); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

// Raising either threshold never grows the retained set.
func TestFilterMonotonic(t *testing.T) {
	x, y := pairIndexes(t)
	rng := rand.New(rand.NewSource(3))
	var b strings.Builder
	for i := 0; i < 300; i++ {
		qs := rng.Intn(1000)
		qe := rng.Intn(1000)
		b.WriteString(coordsRow(qs, qe, rng.Intn(1000), rng.Intn(1000), 80+rng.Float64()*20, "seqA", "seqB"))
	}
	in := b.String()
	count := func(th float64, min int) int {
		res, err := CoordsSource{}.Parse(strings.NewReader(in), "", Filter{Threshold: th, MinLength: min, X: x, Y: y})
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		return len(res.Segments)
	}
	for _, min := range []int{0, 100, 500} {
		prev := -1
		for th := 80.0; th <= 100; th += 2.5 {
			n := count(th, min)
			if prev >= 0 && n > prev {
				t.Fatalf("min=%d: raising threshold to %.1f grew %d -> %d", min, th, prev, n)
			}
			prev = n
		}
	}
	for _, th := range []float64{80, 90, 95} {
		prev := -1
		for min := 0; min <= 1000; min += 100 {
			n := count(th, min)
			if prev >= 0 && n > prev {
				t.Fatalf("th=%.1f: raising min length to %d grew %d -> %d", th, min, prev, n)
			}
			prev = n
		}
	}
}

func TestSourceFor(t *testing.T) {
	for _, f := range Formats {
		src, err := SourceFor(f)
		if err != nil || src.Format() != f {
			t.Errorf("SourceFor(%s) = %v, %v", f, src, err)
		}
	}
	if _, err := SourceFor("blast"); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestIdentitySummary(t *testing.T) {
	r := Result{Segments: []Segment{{Identity: 91}, {Identity: 99}, {Identity: 95}}}
	lo, hi, ok := r.IdentityRange()
	if !ok || lo != 91 || hi != 99 {
		t.Fatalf("range = %v %v %v", lo, hi, ok)
	}
	if m := r.MeanIdentity(); math.Abs(m-95) > 1e-9 {
		t.Fatalf("mean = %v", m)
	}
	if _, _, ok := (Result{}).IdentityRange(); ok {
		t.Fatalf("empty result must report !ok")
	}
}

func TestSortSegments(t *testing.T) {
	segs := []Segment{
		{Query: Interval{50, 60}, Subject: Interval{1, 2}},
		{Query: Interval{10, 20}, Subject: Interval{9, 8}},
		{Query: Interval{10, 20}, Subject: Interval{3, 4}},
	}
	SortSegments(segs)
	if segs[0].Subject.Start != 3 || segs[1].Subject.Start != 9 || segs[2].Query.Start != 50 {
		t.Fatalf("order = %+v", segs)
	}
}
