package align

import (
	"io"
	"strings"

	"dotplot/internal/tabio"
)

// show-coords -T -l column layout:
// [S1] [E1] [S2] [E2] [LEN 1] [LEN 2] [% IDY] [LEN R] [LEN Q] [TAGS]
const (
	coordsQStart   = 0
	coordsQEnd     = 1
	coordsSStart   = 2
	coordsSEnd     = 3
	coordsIdentity = 6
	coordsQName    = 9
	coordsSName    = 10
	coordsMinField = 11

	coordsHeaderToken = "[S1]"
	coordsBanner      = "NUCMER"
)

// CoordsSource reads nucmer show-coords output written with -T and -l.
type CoordsSource struct{}

func (CoordsSource) Format() Format { return FormatCoords }

// Parse skips the path line ("/..."), the NUCMER banner, the [S1] column
// header and any single-field line; every other line is a data row.
func (CoordsSource) Parse(r io.Reader, path string, f Filter) (Result, error) {
	sc := tabio.NewScanner(r, path)
	c := collector{f: f}
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "/") || strings.HasPrefix(line, coordsBanner) {
			continue
		}
		fields := tabio.SplitTab(line)
		if len(fields) == 1 || fields[0] == coordsHeaderToken {
			continue
		}
		if len(fields) < coordsMinField {
			return Result{}, sc.Errorf("coords row has %d fields, want at least %d", len(fields), coordsMinField)
		}
		rec, err := coordsRecord(sc, fields)
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

func coordsRecord(sc *tabio.Scanner, f []string) (record, error) {
	var (
		rec record
		err error
	)
	if rec.identity, err = sc.Float(f, coordsIdentity, "identity"); err != nil {
		return rec, err
	}
	if rec.qStart, err = sc.Int(f, coordsQStart, "query start"); err != nil {
		return rec, err
	}
	if rec.qEnd, err = sc.Int(f, coordsQEnd, "query end"); err != nil {
		return rec, err
	}
	if rec.sStart, err = sc.Int(f, coordsSStart, "subject start"); err != nil {
		return rec, err
	}
	if rec.sEnd, err = sc.Int(f, coordsSEnd, "subject end"); err != nil {
		return rec, err
	}
	rec.qName = f[coordsQName]
	rec.sName = f[coordsSName]
	return rec, nil
}
