package align

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"dotplot/internal/tabio"
)

// PAF fixed columns (0-based).
const (
	pafQName    = 0
	pafQStart   = 2
	pafQEnd     = 3
	pafSName    = 5
	pafSStart   = 7
	pafSEnd     = 8
	pafMinField = 12

	divergenceTag = "de"
)

// ErrMissingDivergence is wrapped into the parse error of a PAF record that
// carries no divergence tag.
var ErrMissingDivergence = errors.New("no divergence (de) tag")

// PAFSource reads minimap2 PAF. Identity is 100*(1-de), where de is the
// gap-compressed per-base divergence tag minimap2 writes as "de:f:<frac>".
type PAFSource struct{}

func (PAFSource) Format() Format { return FormatPAF }

func (PAFSource) Parse(r io.Reader, path string, f Filter) (Result, error) {
	sc := tabio.NewScanner(r, path)
	c := collector{f: f}
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < pafMinField {
			return Result{}, sc.Errorf("PAF record has %d fields, want at least %d", len(fields), pafMinField)
		}
		rec, err := pafRecord(sc, fields)
		if err != nil {
			return Result{}, err
		}
		if err := c.add(rec); err != nil {
			return Result{}, sc.Errorf("%w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return Result{}, err
	}
	return c.res, nil
}

func pafRecord(sc *tabio.Scanner, f []string) (record, error) {
	var (
		rec record
		err error
	)
	div, err := divergence(sc, f[pafMinField:])
	if err != nil {
		return rec, err
	}
	rec.identity = 100 - div*100
	if rec.qStart, err = sc.Int(f, pafQStart, "query start"); err != nil {
		return rec, err
	}
	if rec.qEnd, err = sc.Int(f, pafQEnd, "query end"); err != nil {
		return rec, err
	}
	if rec.sStart, err = sc.Int(f, pafSStart, "subject start"); err != nil {
		return rec, err
	}
	if rec.sEnd, err = sc.Int(f, pafSEnd, "subject end"); err != nil {
		return rec, err
	}
	rec.qName = f[pafQName]
	rec.sName = f[pafSName]
	return rec, nil
}

// divergence scans every optional field and keeps the last one whose tag
// contains "de"; earlier matches are overwritten.
func divergence(sc *tabio.Scanner, tags []string) (float64, error) {
	found := ""
	for _, t := range tags {
		name, _, ok := strings.Cut(t, ":")
		if !ok || !strings.Contains(name, divergenceTag) {
			continue
		}
		found = t
	}
	if found == "" {
		return 0, sc.Errorf("%w", ErrMissingDivergence)
	}
	val := found[strings.LastIndexByte(found, ':')+1:]
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, sc.Errorf("bad divergence %q", found)
	}
	return v, nil
}
