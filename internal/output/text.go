// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"

	"dotplot/internal/align"
)

// WriteTSV prints one line per segment.
func WriteTSV(w io.Writer, segs []align.Segment, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, s := range segs {
		_, err := fmt.Fprintf(w,
			"%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			s.QueryName, s.SubjectName,
			s.Query.Start, s.Query.End, s.Subject.Start, s.Subject.End,
			strconv.FormatFloat(s.Identity, 'f', -1, 64), s.Strand,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
