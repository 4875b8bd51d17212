// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"dotplot/internal/align"
	"dotplot/internal/annot"
	"dotplot/internal/config"
	"dotplot/internal/offset"
	"dotplot/internal/plotdata"
	"dotplot/internal/tabio"
	"dotplot/internal/track"
)

// Inputs names every file of one run. Empty optional paths are skipped.
type Inputs struct {
	Alignment string
	Format    align.Format
	XIndex    string
	YIndex    string

	XFeature, YFeature       string
	XTrack, YTrack           string
	XAnnotation, YAnnotation string

	// Progress, when non-nil, receives a byte progress bar for the alignment file.
	Progress io.Writer
}

// Build runs every stage and returns the assembled data.
func Build(ctx context.Context, in Inputs, cfg config.Config, log logrus.FieldLogger) (plotdata.Data, error) {
	data := plotdata.Data{Title: cfg.Title, Threshold: cfg.Threshold, MinLength: cfg.MinLength}

	src, err := align.SourceFor(in.Format)
	if err != nil {
		return data, err
	}

	if data.X.Index, err = loadIndex(in.XIndex, "x", log); err != nil {
		return data, err
	}
	if data.Y.Index, err = loadIndex(in.YIndex, "y", log); err != nil {
		return data, err
	}
	if err := ctx.Err(); err != nil {
		return data, err
	}

	data.Alignment, err = parseAlignment(src, in, align.Filter{
		Threshold: cfg.Threshold,
		MinLength: cfg.MinLength,
		X:         data.X.Index,
		Y:         data.Y.Index,
		Miss:      cfg.MissPolicy(),
	})
	if err != nil {
		return data, err
	}
	st := data.Alignment.Stats
	log.WithFields(logrus.Fields{
		"file":         in.Alignment,
		"format":       src.Format(),
		"records":      st.Records,
		"kept":         st.Kept,
		"low_identity": st.LowIdentity,
		"short":        st.Short,
	}).Info("alignments parsed")
	if st.Skipped() > 0 {
		log.WithFields(logrus.Fields{
			"unknown_query":   st.UnknownQuery,
			"unknown_subject": st.UnknownSubject,
		}).Warn("alignment records name sequences missing from the length tables; skipped")
	}
	if err := ctx.Err(); err != nil {
		return data, err
	}

	data.X.TrackTitle, data.Y.TrackTitle = cfg.XTrackTitle, cfg.YTrackTitle
	if err := overlays(&data.X, "x", in.XTrack, in.XAnnotation, in.XFeature, cfg, cfg.Colors.XTrack, log); err != nil {
		return data, err
	}
	if err := ctx.Err(); err != nil {
		return data, err
	}
	if err := overlays(&data.Y, "y", in.YTrack, in.YAnnotation, in.YFeature, cfg, cfg.Colors.YTrack, log); err != nil {
		return data, err
	}
	return data, nil
}

func loadIndex(path, axis string, log logrus.FieldLogger) (*offset.Index, error) {
	idx, err := offset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s-axis index: %w", axis, err)
	}
	log.WithFields(logrus.Fields{"axis": axis, "file": path, "sequences": idx.Len(), "total": idx.Total()}).
		Debug("length table loaded")
	return idx, nil
}

func parseAlignment(src align.Source, in Inputs, f align.Filter) (align.Result, error) {
	if in.Progress == nil {
		return align.ParseFile(src, in.Alignment, f)
	}
	rc, err := tabio.OpenProgress(in.Alignment, in.Progress)
	if err != nil {
		return align.Result{}, err
	}
	defer rc.Close()
	return src.Parse(rc, in.Alignment, f)
}

func overlays(ax *plotdata.Axis, name, trackPath, annotPath, featPath string, cfg config.Config, trackColor string, log logrus.FieldLogger) error {
	ax.TrackColor = trackColor
	ax.FeatureColor = cfg.Colors.Feature
	fields := logrus.Fields{"axis": name}

	if trackPath != "" {
		tr, err := track.Load(trackPath, ax.Index, track.Options{StrictWindows: cfg.StrictWindows})
		if err != nil {
			return fmt.Errorf("%s-axis track: %w", name, err)
		}
		ax.Track = &tr
		log.WithFields(fields).WithFields(logrus.Fields{"file": trackPath, "points": len(tr.Points), "width": tr.Width}).
			Info("track loaded")
		if tr.Mismatched > 0 {
			log.WithFields(fields).Warnf("%d track windows differ from the first window width %d; drawn at %d", tr.Mismatched, tr.Width, tr.Width)
		}
		if tr.Skipped > 0 {
			log.WithFields(fields).Debugf("%d track rows on other sequences skipped", tr.Skipped)
		}
	}
	if annotPath != "" {
		an, err := annot.LoadAnnotations(annotPath, ax.Index, cfg.Palette())
		if err != nil {
			return fmt.Errorf("%s-axis annotations: %w", name, err)
		}
		ax.Annotations = &an
		log.WithFields(fields).WithFields(logrus.Fields{"file": annotPath, "records": len(an.Records), "skipped": an.Skipped}).
			Info("annotations loaded")
	}
	if featPath != "" {
		rg, err := annot.LoadRegions(featPath, ax.Index)
		if err != nil {
			return fmt.Errorf("%s-axis features: %w", name, err)
		}
		ax.Features = &rg
		log.WithFields(fields).WithFields(logrus.Fields{"file": featPath, "regions": len(rg.Regions), "skipped": rg.Skipped}).
			Info("features loaded")
	}
	return nil
}
