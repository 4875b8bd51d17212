// Package config holds the tunables that can come from a TOML file as well as
// from flags. Flags that were set explicitly always win over the file.
package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"dotplot/internal/align"
	"dotplot/internal/annot"
)

// Colors used by annotations, feature boxes and track bars.
type Colors struct {
	Plus    string `toml:"plus"`
	Minus   string `toml:"minus"`
	Other   string `toml:"other"`
	Feature string `toml:"feature"`
	XTrack  string `toml:"x_track"`
	YTrack  string `toml:"y_track"`
}

// Config is the effective run configuration.
type Config struct {
	Threshold     float64 `toml:"threshold"`
	MinLength     int     `toml:"min_length"`
	StrictNames   bool    `toml:"strict_names"`
	StrictWindows bool    `toml:"strict_windows"`

	Format   string `toml:"format"`
	Sort     bool   `toml:"sort"`
	NoHeader bool   `toml:"no_header"`

	Title       string `toml:"title"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	XTrackTitle string `toml:"x_track_title"`
	YTrackTitle string `toml:"y_track_title"`

	Colors Colors `toml:"colors"`
}

// Default returns a fresh copy of the defaults.
func Default() Config {
	return Config{
		Threshold: align.DefaultThreshold,
		MinLength: align.DefaultMinLength,
		Format:    "json",
		Title:     "dotplot",
		Width:     800,
		Height:    600,

		XTrackTitle: "Feature Plot",
		YTrackTitle: "Feature Plot",

		Colors: Colors{
			Plus:    annot.DefaultPalette.Plus,
			Minus:   annot.DefaultPalette.Minus,
			Other:   annot.DefaultPalette.Other,
			Feature: "green",
			XTrack:  "#56B4E9",
			YTrack:  "#f49ac2",
		},
	}
}

// Load decodes r over the defaults; keys absent from the file keep their
// default value. Unknown keys are an error so typos do not pass silently.
func Load(r io.Reader) (Config, error) {
	conf := Default()
	md, err := toml.NewDecoder(r).Decode(&conf)
	if err != nil {
		return Config{}, err
	}
	if un := md.Undecoded(); len(un) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", un[0].String())
	}
	return conf, nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Merge copies every value from file into c unless the matching flag was
// set on the command line. set is keyed by flag name.
func (c *Config) Merge(file Config, set map[string]bool) {
	if !set["threshold"] {
		c.Threshold = file.Threshold
	}
	if !set["min-length"] {
		c.MinLength = file.MinLength
	}
	if !set["strict-names"] {
		c.StrictNames = file.StrictNames
	}
	if !set["strict-windows"] {
		c.StrictWindows = file.StrictWindows
	}
	if !set["format"] {
		c.Format = file.Format
	}
	if !set["sort"] {
		c.Sort = file.Sort
	}
	if !set["no-header"] {
		c.NoHeader = file.NoHeader
	}
	if !set["title"] {
		c.Title = file.Title
	}
	if !set["width"] {
		c.Width = file.Width
	}
	if !set["height"] {
		c.Height = file.Height
	}
	if !set["x-track-title"] {
		c.XTrackTitle = file.XTrackTitle
	}
	if !set["y-track-title"] {
		c.YTrackTitle = file.YTrackTitle
	}
	// colors have no flags
	c.Colors = file.Colors
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MinLength < 0 {
		return fmt.Errorf("min_length must be >= 0, got %d", c.MinLength)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", c.Width, c.Height)
	}
	switch c.Format {
	case "json", "jsonl", "tsv":
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}

// Palette is the annotation palette for this configuration.
func (c Config) Palette() annot.Palette {
	return annot.Palette{Plus: c.Colors.Plus, Minus: c.Colors.Minus, Other: c.Colors.Other}
}

// MissPolicy maps StrictNames onto the alignment filter policy.
func (c Config) MissPolicy() align.MissPolicy {
	if c.StrictNames {
		return align.MissFail
	}
	return align.MissSkip
}
