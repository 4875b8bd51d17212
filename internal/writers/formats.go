// internal/writers/formats.go
package writers

import (
	"encoding/json"
	"io"

	"dotplot/internal/jsonlutil"
	"dotplot/internal/output"
	"dotplot/internal/plotdata"
	"dotplot/pkg/api"
)

func init() {
	Register(output.FormatJSON, func(w io.Writer, d plotdata.Data, _ Options) error {
		return output.WriteJSON(w, d)
	})
	Register(output.FormatJSONL, writeJSONL)
	Register(output.FormatTSV, func(w io.Writer, d plotdata.Data, opt Options) error {
		return output.WriteTSV(w, d.Alignment.Segments, opt.Header)
	})
}

// writeJSONL streams one api.RecordV1 per line.
func writeJSONL(w io.Writer, d plotdata.Data, _ Options) error {
	return jsonlutil.Write(w, output.Records(d),
		func(enc *json.Encoder, r api.RecordV1) error { return enc.Encode(r) },
		IsBrokenPipe,
	)
}
