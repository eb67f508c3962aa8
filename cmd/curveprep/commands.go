package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-curves/dataset"
	"github.com/cwbudde/algo-curves/dsp/signal"
	"github.com/cwbudde/algo-curves/internal/config"
	"github.com/cwbudde/algo-curves/internal/metrics"
	"github.com/cwbudde/algo-curves/stats/curve"
	"github.com/cwbudde/algo-curves/store"
)

type command func(ctx context.Context, args []string, stdout, stderr io.Writer) error

var commands = map[string]command{
	"synth":   runSynth,
	"prep":    runPrep,
	"extend":  runExtend,
	"inspect": runInspect,
}

// app carries the per-run configuration, logger and metrics.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	rec   *metrics.Recorder
	runID string
	start time.Time
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	return &app{
		cfg:   cfg,
		log:   log.With(zap.String("run_id", runID)),
		rec:   metrics.New(),
		runID: runID,
		start: time.Now(),
	}, nil
}

// finish records the run duration, exports metrics and flushes the logger.
func (a *app) finish(err error) error {
	a.rec.RunDuration(a.start)
	if err != nil {
		a.log.Error("run failed", zap.Error(err))
	}
	if path := a.cfg.Metrics.Textfile; path != "" {
		if werr := a.rec.WriteTextfile(path); werr != nil {
			a.log.Warn("writing metrics textfile", zap.String("path", path), zap.Error(werr))
		}
	}
	_ = a.log.Sync()
	return err
}

func (a *app) datasetOptions() []dataset.Option {
	return append([]dataset.Option{dataset.WithLogger(a.log)}, a.cfg.DatasetOptions()...)
}

// open opens a store and registers its Close with *err.
func (a *app) open(ctx context.Context, path string, err *error) (store.ArrayStore, func(), error) {
	s, oerr := openStore(ctx, path, a.runID)
	if oerr != nil {
		return nil, nil, oerr
	}
	closeFn := func() {
		if cerr := s.Close(); cerr != nil && *err == nil {
			*err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}
	return s, closeFn, nil
}

// prepare smooths ds and extracts its peaks, recording metrics and failed
// curves.
func (a *app) prepare(ds *dataset.Dataset) error {
	p, err := a.cfg.Prep()
	if err != nil {
		return err
	}
	if err := ds.PrepData(p); err != nil {
		a.rec.Failure(err)
		if failed := dataset.FailedCurves(err); len(failed) > 0 {
			a.log.Error("no peak found", zap.Ints("curves", failed))
		}
		return err
	}

	_, y := ds.Data()
	ymax, _ := ds.Ymax()
	a.rec.Curves(metrics.StageSmoothed, y.NumCurves())
	a.rec.Curves(metrics.StageExtracted, len(ymax))
	a.rec.Peaks(ymax)
	return nil
}

func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return false, errUsage
	}
	return true, nil
}

func requireFlag(fs *flag.FlagSet, name, value string) error {
	if value == "" {
		fmt.Fprintf(fs.Output(), "flag -%s is required\n", name)
		fs.Usage()
		return errUsage
	}
	return nil
}

func runSynth(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("synth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "", "store to write (.db, .sqlite, .sqlite3, .xlsx)")
	n := fs.Int("curves", 8, "number of curves")
	points := fs.Int("points", 1000, "samples per curve")
	noise := fs.Float64("noise", 0.02, "white noise amplitude")
	seed := fs.Int64("seed", 1, "random seed")
	configPath := fs.String("config", "", "config file (default ./curveprep.yaml if present)")
	if ok, perr := parseFlags(fs, args); !ok {
		return perr
	}
	if err := requireFlag(fs, "out", *out); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { err = a.finish(err) }()

	b, err := signal.NewGenerator(signal.WithSeed(*seed)).Synthesize(*n, *points, *noise)
	if err != nil {
		return err
	}

	s, closeStore, err := a.open(ctx, *out, &err)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.SaveRaw(ctx, s, b.Features, b.Curves); err != nil {
		return err
	}
	a.rec.Curves(metrics.StageLoaded, len(b.Curves))
	a.log.Info("synthetic curves written",
		zap.String("store", *out),
		zap.Int("curves", len(b.Curves)),
		zap.Int("points", *points),
		zap.Int64("seed", *seed))

	fmt.Fprintf(stdout, "wrote %d curves of %d points to %s\n", len(b.Curves), *points, *out)
	return nil
}

func runPrep(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("prep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "store holding features and raw curves")
	out := fs.String("out", "", "store to write peak values to (default -in)")
	configPath := fs.String("config", "", "config file (default ./curveprep.yaml if present)")
	if ok, perr := parseFlags(fs, args); !ok {
		return perr
	}
	if err := requireFlag(fs, "in", *in); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { err = a.finish(err) }()

	src, closeSrc, err := a.open(ctx, *in, &err)
	if err != nil {
		return err
	}
	defer closeSrc()

	ds, err := store.LoadDataset(ctx, src, a.datasetOptions()...)
	if err != nil {
		return err
	}
	a.rec.Curves(metrics.StageLoaded, ds.Len())

	if err := a.prepare(ds); err != nil {
		return err
	}

	dst, err := a.target(ctx, src, *in, *out, &err)
	if err != nil {
		return err
	}
	if dst.close != nil {
		defer dst.close()
	}
	if dst.fresh {
		raw, err := src.LoadMatrix(ctx, store.KeyCurves)
		if err != nil {
			return err
		}
		if err := dst.SaveMatrix(ctx, store.KeyCurves, raw); err != nil {
			return err
		}
	}
	if err := store.SaveDataset(ctx, dst, ds); err != nil {
		return err
	}

	ymax, _ := ds.Ymax()
	fmt.Fprintf(stdout, "prepared %d samples (%s), %d peak values written to %s\n",
		ds.Len(), ds.State(), len(ymax), dst.path)
	return nil
}

func runExtend(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("extend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "store holding the base dataset")
	from := fs.String("from", "", "store holding the new samples")
	out := fs.String("out", "", "store to write the extended dataset to (default -in)")
	maxima := fs.Bool("maxima", false, "read peak values instead of raw curves from -from")
	configPath := fs.String("config", "", "config file (default ./curveprep.yaml if present)")
	if ok, perr := parseFlags(fs, args); !ok {
		return perr
	}
	if err := requireFlag(fs, "in", *in); err != nil {
		return err
	}
	if err := requireFlag(fs, "from", *from); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { err = a.finish(err) }()

	base, closeBase, err := a.open(ctx, *in, &err)
	if err != nil {
		return err
	}
	defer closeBase()

	ds, err := store.LoadDataset(ctx, base, a.datasetOptions()...)
	if err != nil {
		return err
	}
	a.rec.Curves(metrics.StageLoaded, ds.Len())
	if err := a.prepare(ds); err != nil {
		return err
	}
	raw, err := base.LoadMatrix(ctx, store.KeyCurves)
	if err != nil {
		return err
	}

	more, closeMore, err := a.open(ctx, *from, &err)
	if err != nil {
		return err
	}
	defer closeMore()

	kind := store.ExtendCurves
	if *maxima {
		kind = store.ExtendMaxima
	}
	features, curves, err := store.ExtendDataset(ctx, more, ds, kind)
	if err != nil {
		a.rec.Failure(err)
		return err
	}
	a.rec.Curves(metrics.StageExtended, len(features))
	a.log.Info("dataset extended",
		zap.String("from", *from),
		zap.Stringer("kind", kind),
		zap.Int("samples", len(features)))

	dst, err := a.target(ctx, base, *in, *out, &err)
	if err != nil {
		return err
	}
	if dst.close != nil {
		defer dst.close()
	}
	if len(curves) > 0 || dst.fresh {
		if err := dst.SaveMatrix(ctx, store.KeyCurves, append(raw, curves...)); err != nil {
			return err
		}
	}
	if err := store.SaveDataset(ctx, dst, ds); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "extended %s with %d samples (%s), %d samples written to %s\n",
		*in, len(features), kind, ds.Len(), dst.path)
	return nil
}

func runInspect(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "store to inspect")
	configPath := fs.String("config", "", "config file (default ./curveprep.yaml if present)")
	if ok, perr := parseFlags(fs, args); !ok {
		return perr
	}
	if err := requireFlag(fs, "in", *in); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer func() { err = a.finish(err) }()

	s, closeStore, err := a.open(ctx, *in, &err)
	if err != nil {
		return err
	}
	defer closeStore()

	ds, err := store.LoadDataset(ctx, s, a.datasetOptions()...)
	if err != nil {
		return err
	}
	return printInspect(stdout, ds)
}

// output is the store a command writes to.
type output struct {
	store.ArrayStore
	path  string
	fresh bool // a different store than the input
	close func()
}

// target returns src unless out names a different store.
func (a *app) target(ctx context.Context, src store.ArrayStore, in, out string, err *error) (output, error) {
	if out == "" || out == in {
		return output{ArrayStore: src, path: in}, nil
	}
	s, closeFn, oerr := a.open(ctx, out, err)
	if oerr != nil {
		return output{}, oerr
	}
	return output{ArrayStore: s, path: out, fresh: true, close: closeFn}, nil
}

func printInspect(w io.Writer, ds *dataset.Dataset) error {
	x, y := ds.Data()
	ymax, hasPeaks := ds.Ymax()

	peakOnly := make(map[int]bool)
	for _, r := range ds.PeakOnlyRows() {
		peakOnly[r] = true
	}
	stats := curve.CalculateAll(y.Curves())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Row\tFeatures\tPoints\tMax\tArgMax\tMean\tRMS\tPeak\n")
	fmt.Fprintf(tw, "---\t--------\t------\t---\t------\t----\t---\t----\n")

	next := 0
	for row := range x {
		peakCol := "-"
		if hasPeaks && row < len(ymax) {
			peakCol = fmt.Sprintf("%.4f", ymax[row])
		}
		if peakOnly[row] {
			fmt.Fprintf(tw, "%d\t%s\t-\t-\t-\t-\t-\t%s\n", row, formatRow(x[row]), peakCol)
			continue
		}
		st := stats[next]
		next++
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.4f\t%d\t%.4f\t%.4f\t%s\n",
			row, formatRow(x[row]), st.Length, st.Max, st.MaxPos, st.Mean, st.RMS, peakCol)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if !hasPeaks {
		fmt.Fprintf(w, "\nno peak values stored; run 'curveprep prep' first\n")
		return nil
	}
	sum, err := curve.Summarize(ymax)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\npeaks: n=%d min=%.4f p05=%.4f median=%.4f mean=%.4f p95=%.4f max=%.4f std=%.4f\n",
		sum.Count, sum.Min, sum.P05, sum.Median, sum.Mean, sum.P95, sum.Max, sum.StdDev)
	return nil
}

func formatRow(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprintf("%.4g", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
