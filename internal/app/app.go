// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"dotplot/internal/align"
	"dotplot/internal/cli"
	"dotplot/internal/cmdutil"
	"dotplot/internal/config"
	"dotplot/internal/pipeline"
	"dotplot/internal/plotdata"
	"dotplot/internal/render"
	"dotplot/internal/version"
	"dotplot/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 1
	ExitInput     = 2
	ExitOutput    = 3
	ExitCancelled = 130
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	kp := cli.NewApp("dotplot", outw)
	opts, err := cli.ParseArgs(kp, argv)
	if errors.Is(err, cli.ErrHelp) {
		return flush(outw, stderr, ExitOK)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "dotplot: error: %v\n\n", err)
		kp.UsageWriter(stderr)
		kp.Usage(nil)
		return ExitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "dotplot version %s\n", version.Version)
		return flush(outw, stderr, ExitOK)
	}

	cfg, err := effectiveConfig(opts)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "dotplot: error: %v\n", err)
		return ExitUsage
	}
	if opts.DumpConfig {
		if err := cfg.Write(outw); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitOutput
		}
		return flush(outw, stderr, ExitOK)
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)

	alnPath, alnFormat := opts.Alignment()
	in := pipeline.Inputs{
		Alignment:   alnPath,
		Format:      alnFormat,
		XIndex:      opts.XIndex,
		YIndex:      opts.YIndex,
		XFeature:    opts.XFeature,
		YFeature:    opts.YFeature,
		XTrack:      opts.XTrack,
		YTrack:      opts.YTrack,
		XAnnotation: opts.XAnnotation,
		YAnnotation: opts.YAnnotation,
	}
	if opts.Progress && !opts.Quiet {
		in.Progress = stderr
	}

	data, err := pipeline.Build(parent, in, cfg, log)
	if err != nil {
		if errors.Is(err, context.Canceled) || parent.Err() != nil {
			log.Warn("cancelled")
			return ExitCancelled
		}
		log.Error(err)
		return ExitInput
	}
	if cfg.Sort {
		align.SortSegments(data.Alignment.Segments)
	}

	if code := writeData(opts.Out, outw, stderr, cfg, data, log); code != ExitOK {
		return code
	}

	if opts.Plot != "" {
		files, err := render.Render(data, opts.Plot, render.Options{Width: cfg.Width, Height: cfg.Height})
		if err != nil {
			log.WithError(err).Error("render failed")
			return ExitOutput
		}
		for _, fn := range files {
			log.WithField("file", fn).Info("plot written")
		}
	}
	return ExitOK
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// effectiveConfig merges --config under the explicit flags and validates the
// result, including colors when a plot will be drawn.
func effectiveConfig(opts cli.Options) (config.Config, error) {
	cfg := opts.Config
	if opts.ConfigFile != "" {
		f, err := os.Open(opts.ConfigFile)
		if err != nil {
			return cfg, err
		}
		file, err := config.Load(f)
		_ = f.Close()
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", opts.ConfigFile, err)
		}
		cfg.Merge(file, opts.Set)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if opts.Plot != "" {
		c := cfg.Colors
		for _, s := range []string{c.Plus, c.Minus, c.Other, c.Feature, c.XTrack, c.YTrack} {
			if _, err := render.ParseColor(s); err != nil {
				return cfg, fmt.Errorf("colors: %w", err)
			}
		}
	}
	return cfg, nil
}

func writeData(path string, stdout *bufio.Writer, stderr io.Writer, cfg config.Config, data plotdata.Data, log logrus.FieldLogger) int {
	opt := writers.Options{Header: !cfg.NoHeader}
	if path == "-" {
		err := writers.Write(cfg.Format, stdout, data, opt)
		if err == nil {
			err = stdout.Flush()
		}
		if err != nil && !writers.IsBrokenPipe(err) {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitOutput
		}
		return ExitOK
	}

	f, err := os.Create(path)
	if err != nil {
		log.WithError(err).Error("cannot create output")
		return ExitOutput
	}
	bw := bufio.NewWriter(f)
	err = writers.Write(cfg.Format, bw, data, opt)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.WithError(err).Error("write failed")
		return ExitOutput
	}
	log.WithFields(logrus.Fields{"file": path, "format": cfg.Format, "segments": len(data.Alignment.Segments)}).
		Info("data written")
	return ExitOK
}

func flush(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	return code
}
