// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"dotplot/internal/align"
	"dotplot/internal/config"
)

// ErrHelp is returned by ParseArgs after usage has been printed for -h/--help.
var ErrHelp = errors.New("help requested")

// Options holds all CLI flags. Tunables live in Config so a TOML file can
// supply them too; Set records which flags the user typed.
type Options struct {
	// Alignment input (exactly one)
	CoordsFile string
	PAFFile    string

	// Length tables
	XIndex string
	YIndex string

	// Auxiliary inputs per axis
	XFeature    string
	YFeature    string
	XTrack      string
	YTrack      string
	XAnnotation string
	YAnnotation string

	// Output
	Out  string
	Plot string

	// Misc
	ConfigFile string
	DumpConfig bool
	Progress   bool
	Quiet      bool
	Verbose    bool
	Version    bool

	Config config.Config
	Set    map[string]bool
}

// Alignment returns the alignment path and its format.
func (o Options) Alignment() (string, align.Format) {
	if o.PAFFile != "" {
		return o.PAFFile, align.FormatPAF
	}
	return o.CoordsFile, align.FormatCoords
}

// ParseArgs registers every flag on app, parses argv and validates the result.
func ParseArgs(app *kingpin.Application, argv []string) (Options, error) {
	opt := Options{Config: config.Default(), Set: map[string]bool{}}
	d := config.Default()
	c := &opt.Config

	helped := false
	app.Terminate(func(int) { helped = true })
	app.HelpFlag.Short('h')

	seen := map[string]*bool{}
	flag := func(name, help string) *kingpin.FlagClause {
		b := new(bool)
		seen[name] = b
		return app.Flag(name, help).IsSetByUser(b)
	}

	// Alignment input
	flag("coords", "nucmer show-coords -T -l file (x = query, y = reference)").PlaceHolder("FILE").StringVar(&opt.CoordsFile)
	flag("paf", "minimap2 PAF file with de:f: tags").PlaceHolder("FILE").StringVar(&opt.PAFFile)
	flag("x-index", "length table (.fai) for the x-axis assembly").PlaceHolder("FILE").StringVar(&opt.XIndex)
	flag("y-index", "length table (.fai) for the y-axis assembly").PlaceHolder("FILE").StringVar(&opt.YIndex)

	// Filter
	flag("threshold", "minimum identity of plotted matches (strict >)").
		Default(strconv.FormatFloat(d.Threshold, 'g', -1, 64)).Float64Var(&c.Threshold)
	flag("min-length", "minimum match length in query coordinates").
		Default(strconv.Itoa(d.MinLength)).IntVar(&c.MinLength)
	flag("strict-names", "fail on alignment records naming sequences absent from an index").BoolVar(&c.StrictNames)

	// Auxiliary
	flag("x-feature", "BED regions to highlight on the x axis").PlaceHolder("FILE").StringVar(&opt.XFeature)
	flag("y-feature", "BED regions to highlight on the y axis").PlaceHolder("FILE").StringVar(&opt.YFeature)
	flag("x-track", "windowed value track for the x axis (name start end value)").PlaceHolder("FILE").StringVar(&opt.XTrack)
	flag("y-track", "windowed value track for the y axis (name start end value)").PlaceHolder("FILE").StringVar(&opt.YTrack)
	flag("x-annotation", "BED6 stranded annotations for the x axis").PlaceHolder("FILE").StringVar(&opt.XAnnotation)
	flag("y-annotation", "BED6 stranded annotations for the y axis").PlaceHolder("FILE").StringVar(&opt.YAnnotation)
	flag("strict-windows", "fail when track windows differ in width").BoolVar(&c.StrictWindows)

	// Output
	flag("format", "data output format: json | jsonl | tsv").Default(d.Format).EnumVar(&c.Format, "json", "jsonl", "tsv")
	flag("out", "data output file ('-' = stdout)").Short('o').Default("-").StringVar(&opt.Out)
	flag("sort", "sort segments by position").BoolVar(&c.Sort)
	flag("no-header", "omit the TSV header line").BoolVar(&c.NoHeader)
	flag("plot", "also render a static plot; format from extension (.svg .png .pdf)").PlaceHolder("FILE").StringVar(&opt.Plot)
	flag("title", "plot title").Default(d.Title).StringVar(&c.Title)
	flag("width", "plot width in points").Default(strconv.Itoa(d.Width)).IntVar(&c.Width)
	flag("height", "plot height in points").Default(strconv.Itoa(d.Height)).IntVar(&c.Height)
	flag("x-track-title", "title of the x-axis track panel").Default(d.XTrackTitle).StringVar(&c.XTrackTitle)
	flag("y-track-title", "title of the y-axis track panel").Default(d.YTrackTitle).StringVar(&c.YTrackTitle)

	// Misc
	flag("config", "TOML config file; flags given explicitly win").PlaceHolder("FILE").StringVar(&opt.ConfigFile)
	flag("dump-config", "print the effective config as TOML and exit").BoolVar(&opt.DumpConfig)
	flag("progress", "show a progress bar while reading the alignment file").BoolVar(&opt.Progress)
	flag("quiet", "only log warnings and errors").Short('q').BoolVar(&opt.Quiet)
	flag("verbose", "log debug detail").Short('v').BoolVar(&opt.Verbose)
	flag("version", "print version and exit").BoolVar(&opt.Version)

	_, err := app.Parse(argv)
	if helped {
		return opt, ErrHelp
	}
	if err != nil {
		return opt, err
	}
	for name, b := range seen {
		if *b {
			opt.Set[name] = true
		}
	}
	if opt.Version || opt.DumpConfig {
		return opt, nil
	}
	return opt, Validate(opt)
}

// Validate applies the required-input rules. Value ranges are checked by
// config.Config.Validate after any config file has been merged.
func Validate(o Options) error {
	var missing []string
	switch {
	case o.CoordsFile != "" && o.PAFFile != "":
		return errors.New("--coords conflicts with --paf")
	case o.CoordsFile == "" && o.PAFFile == "":
		missing = append(missing, "--coords|--paf")
	}
	if o.XIndex == "" {
		missing = append(missing, "--x-index")
	}
	if o.YIndex == "" {
		missing = append(missing, "--y-index")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))
	}
	if o.Plot != "" && o.Plot == o.Out {
		return errors.New("--plot and --out must be different files")
	}
	return nil
}
