// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dotplot/internal/app"
	"dotplot/pkg/api"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

type fixture struct {
	coords, paf, x, y string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	return fixture{
		coords: write(t, dir, "a.coords",
			"/tmp/ref.fa /tmp/qry.fa\nNUCMER\n\n[S1]\t[E1]\t[S2]\t[E2]\t[LEN 1]\t[LEN 2]\t[% IDY]\t[LEN R]\t[LEN Q]\t[TAGS]\n"+
				"100\t200\t300\t400\t101\t101\t95.00\t1000\t1000\tseqA\tseqB\n"),
		paf: write(t, dir, "a.paf",
			"seqA\t1000\t100\t200\t+\tseqB\t1000\t300\t400\t95\t100\t60\ttp:A:P\tde:f:0.05\n"),
		x: write(t, dir, "x.fai", "seqA\t1000\t6\t60\t61\n"),
		y: write(t, dir, "y.fai", "seqB\t1000\t6\t60\t61\n"),
	}
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func decode(t *testing.T, s string) api.DotPlotV1 {
	t.Helper()
	var v api.DotPlotV1
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad json: %v\n%s", err, s)
	}
	return v
}

func TestEndToEndRetained(t *testing.T) {
	fx := newFixture(t)
	for _, src := range [][]string{{"--coords", fx.coords}, {"--paf", fx.paf}} {
		args := append(src, "--x-index", fx.x, "--y-index", fx.y, "--min-length", "50", "-q")
		code, out, stderr := run(t, args...)
		if code != 0 {
			t.Fatalf("%s: exit %d, stderr=%s", src[0], code, stderr)
		}
		v := decode(t, out)
		if len(v.Segments) != 1 {
			t.Fatalf("%s: segments = %+v", src[0], v.Segments)
		}
		s := v.Segments[0]
		if s.QueryStart != 100 || s.QueryEnd != 200 || s.SubjectStart != 300 || s.SubjectEnd != 400 || s.Strand != "+" {
			t.Fatalf("%s: segment = %+v", src[0], s)
		}
	}
}

func TestEndToEndRejectedBySize(t *testing.T) {
	fx := newFixture(t)
	code, out, stderr := run(t, "--coords", fx.coords, "--x-index", fx.x, "--y-index", fx.y, "--min-length", "150", "-q")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	v := decode(t, out)
	if len(v.Segments) != 0 || v.Stats.Short != 1 {
		t.Fatalf("want one short rejection, got %+v", v)
	}
}

func TestLookupMissSkipped(t *testing.T) {
	fx := newFixture(t)
	dir := t.TempDir()
	coords := write(t, dir, "miss.coords",
		"100\t200\t300\t400\t101\t101\t95.00\t1000\t1000\tseqA\tseqZ\n"+
			"100\t200\t300\t400\t101\t101\t95.00\t1000\t1000\tseqA\tseqB\n")

	code, out, stderr := run(t, "--coords", coords, "--x-index", fx.x, "--y-index", fx.y,
		"--min-length", "50", "--format", "tsv")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || strings.Contains(out, "seqZ") {
		t.Fatalf("tsv = %q", out)
	}
	if !strings.Contains(stderr, "unknown_subject=1") {
		t.Fatalf("expected a skip warning, stderr=%s", stderr)
	}

	code, _, _ = run(t, "--coords", coords, "--x-index", fx.x, "--y-index", fx.y,
		"--min-length", "50", "--strict-names", "-q")
	if code != 2 {
		t.Fatalf("strict names: exit %d, want 2", code)
	}
}

func TestMissingInputsIsUsageError(t *testing.T) {
	code, out, stderr := run(t, "--x-index", "x.fai")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if out != "" || !strings.Contains(stderr, "--coords|--paf") || !strings.Contains(stderr, "usage:") {
		t.Fatalf("stdout=%q stderr=%q", out, stderr)
	}
}

func TestMissingFileIsInputError(t *testing.T) {
	fx := newFixture(t)
	code, _, _ := run(t, "--coords", filepath.Join(t.TempDir(), "absent"), "--x-index", fx.x, "--y-index", fx.y, "-q")
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run(t, "--help")
	if code != 0 || !strings.Contains(out, "--x-index") {
		t.Fatalf("help: exit %d out=%q", code, out)
	}
	code, out, _ = run(t, "--version")
	if code != 0 || !strings.HasPrefix(out, "dotplot version ") {
		t.Fatalf("version: exit %d out=%q", code, out)
	}
}

func TestConfigFileAndDump(t *testing.T) {
	fx := newFixture(t)
	dir := t.TempDir()
	conf := write(t, dir, "dotplot.toml", "min_length = 150\nformat = \"tsv\"\n")

	// file value applies
	code, out, stderr := run(t, "--config", conf, "--coords", fx.coords, "--x-index", fx.x, "--y-index", fx.y, "-q")
	if code != 0 || strings.Count(out, "\n") != 1 {
		t.Fatalf("exit %d out=%q stderr=%s", code, out, stderr)
	}

	// explicit flag wins
	code, out, _ = run(t, "--config", conf, "--min-length", "50", "--coords", fx.coords, "--x-index", fx.x, "--y-index", fx.y, "-q")
	if code != 0 || strings.Count(out, "\n") != 2 {
		t.Fatalf("flag did not win: exit %d out=%q", code, out)
	}

	code, out, _ = run(t, "--config", conf, "--dump-config")
	if code != 0 || !strings.Contains(out, "min_length = 150") || !strings.Contains(out, "format = \"tsv\"") {
		t.Fatalf("dump: exit %d out=%q", code, out)
	}

	bad := write(t, dir, "bad.toml", "min_lenght = 1\n")
	code, _, _ = run(t, "--config", bad, "--coords", fx.coords, "--x-index", fx.x, "--y-index", fx.y)
	if code != 1 {
		t.Fatalf("unknown key: exit %d, want 1", code)
	}
}

func TestOutFileAndPlot(t *testing.T) {
	fx := newFixture(t)
	dir := t.TempDir()
	outFile := filepath.Join(dir, "dot.jsonl")
	plotFile := filepath.Join(dir, "dot.svg")
	code, out, stderr := run(t, "--coords", fx.coords, "--x-index", fx.x, "--y-index", fx.y,
		"--min-length", "50", "--format", "jsonl", "-o", outFile, "--plot", plotFile, "-q")
	if code != 0 {
		t.Fatalf("exit %d stderr=%s", code, stderr)
	}
	if out != "" {
		t.Fatalf("stdout should be empty with --out, got %q", out)
	}
	b, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"kind":"segment"`) {
		t.Fatalf("jsonl = %s", b)
	}
	if _, err := os.Stat(plotFile); err != nil {
		t.Fatalf("plot not written: %v", err)
	}
}
