// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"dotplot/internal/plotdata"
)

// Options are presentation switches shared by all formats.
type Options struct {
	Header bool // TSV only
}

// Func writes one plot to w.
type Func func(w io.Writer, d plotdata.Data, opt Options) error

var registry = map[string]Func{}

// Register installs fn for format; last registration wins.
func Register(format string, fn Func) { registry[format] = fn }

// Formats lists the registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, d plotdata.Data, opt Options) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, d, opt)
}
