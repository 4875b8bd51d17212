package cli

import (
	"io"

	"github.com/alecthomas/kingpin/v2"

	"dotplot/internal/version"
)

// NewApp returns a kingpin application that writes help and errors to out
// and never exits the process.
func NewApp(name string, out io.Writer) *kingpin.Application {
	app := kingpin.New(name, "Dot plots of genome-to-genome alignments on concatenated axes.\n\n"+
		"Version: "+version.Version)
	app.UsageWriter(out)
	app.ErrorWriter(out)
	return app
}
