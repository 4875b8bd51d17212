// internal/output/json.go
package output

import (
	"io"

	"dotplot/internal/jsonutil"
	"dotplot/internal/plotdata"
)

// WriteJSON writes the whole plot as one v1 document (pretty-indented).
func WriteJSON(w io.Writer, d plotdata.Data) error {
	return jsonutil.EncodePretty(w, ToAPI(d))
}
