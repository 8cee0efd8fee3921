package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/conneroisu/s2l/internal/convert"
	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/session"
	"github.com/conneroisu/s2l/internal/types"
	"github.com/conneroisu/s2l/internal/ui"
	"github.com/conneroisu/s2l/internal/watcher"
)

type convertOptions struct {
	viewBox  viewBoxValue
	class    string
	fill     string
	prefix   string
	selects  []string
	manifest string
	watch    bool

	// outputFlag is set when --output was given explicitly
	outputFlag bool
}

// overrides returns the attribute flags as a bulk edit.
func (o *convertOptions) overrides() types.BulkEditSettings {
	s := types.BulkEditSettings{
		ClassName: o.class,
		Fill:      o.fill,
		Prefix:    o.prefix,
	}
	if o.viewBox.set {
		s.ViewBox = o.viewBox.vb
	}
	return s
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:     "convert [dir]",
		Aliases: []string{"c"},
		Short:   "Convert every SVG file of a directory to .liquid",
		Long: `Convert every SVG file directly inside a directory into a .liquid file.

Configured defaults apply to every file first, then the manifest (if any),
then the attribute flags, which only touch the files matched by --select.
Every file is converted regardless of selection. Existing output files are
never overwritten.

Examples:
  s2l convert ./icons                              # Write next to the sources
  s2l convert ./icons -O ./snippets --class icon   # Class on every file
  s2l convert ./icons --select 'logo*' --fill '{{ color }}'
  s2l convert ./icons --manifest edits.yml
  s2l convert ./icons --watch                      # Convert changed files until interrupted`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "O", "", "Output directory (default is the input directory)")
	flags.Var(&opts.viewBox, "viewbox", `viewBox for selected files, "x y w h" or "x,y,w,h"`)
	flags.StringVar(&opts.class, "class", "", "class for selected files")
	flags.StringVar(&opts.fill, "fill", "", "fill added to <path> tags of selected files")
	flags.StringVar(&opts.prefix, "prefix", "", "output name prefix for selected files")
	flags.StringArrayVarP(&opts.selects, "select", "s", nil, "glob of file names the attribute flags apply to (repeatable, default all)")
	flags.StringVarP(&opts.manifest, "manifest", "m", "", "YAML file with bulk and per-file edits")
	flags.IntP("workers", "w", 0, "number of files converted at once (default 2x CPUs)")
	flags.Int("max-collisions", 0, `how many "(n)" name variants to try per file`)
	flags.BoolVar(&opts.watch, "watch", false, "keep running and convert SVG files as they change")
	flags.Bool("open", false, "open the destination directory when done")

	_ = a.v.BindPFlag("directories.output", flags.Lookup("output"))
	_ = a.v.BindPFlag("conversion.workers", flags.Lookup("workers"))
	_ = a.v.BindPFlag("conversion.max_collisions", flags.Lookup("max-collisions"))
	_ = a.v.BindPFlag("open_output", flags.Lookup("open"))

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, args []string, opts *convertOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	dir := a.inputDir(args)
	opts.outputFlag = cmd.Flags().Changed("output")

	sess, err := a.prepareSession(dir, opts, stderr)
	if err != nil {
		return err
	}
	files := sess.Files()
	if len(files) == 0 && !opts.watch {
		fmt.Fprintln(stdout, ui.RenderMuted("No SVG files found in "+dir))
		return nil
	}

	orch := convert.New(a.fs,
		convert.WithWorkers(a.cfg.Conversion.Workers),
		convert.WithMaxCollisions(a.cfg.Conversion.MaxCollisions),
		convert.WithLogger(a.logger),
	)

	failures := errors.NewErrorCollector()
	sink := convert.MultiSink{convert.NewTextSink(stdout), collectorSink{failures}}
	summary, err := orch.Convert(ctx, sess.Directories(), files, sink)
	if err != nil {
		return err
	}

	if a.cfg.OpenOutput && summary.FilesConverted > 0 {
		if err := a.opener.Open(summary.DestinationDirectory); err != nil {
			fmt.Fprintln(stderr, ui.Warning("could not open "+summary.DestinationDirectory+": "+errors.Human(err)))
		}
	}

	if opts.watch {
		return a.watchAndConvert(ctx, dir, opts, orch, sink, failures, stderr)
	}

	if failures.HasErrors() {
		return fmt.Errorf("%d of %d files failed to convert", failures.Len(), len(files))
	}
	return nil
}

// prepareSession scans dir and applies, in order, the configured defaults,
// the manifest, and the attribute flags.
func (a *app) prepareSession(dir string, opts *convertOptions, stderr io.Writer) (*session.Session, error) {
	sess, err := a.loadSession(dir)
	if err != nil {
		return nil, err
	}
	sess.SetOutputDirectory(a.cfg.Directories.Output)

	if opts.manifest != "" {
		m, err := session.LoadManifest(a.fs, opts.manifest)
		if err != nil {
			return nil, err
		}
		unmatched, err := sess.ApplyManifest(m)
		if err != nil {
			return nil, err
		}
		for _, name := range unmatched {
			fmt.Fprintln(stderr, ui.Warning(fmt.Sprintf("manifest entry %q matches no file in %s", name, dir)))
		}
		// --output wins over the manifest's output.
		if opts.outputFlag {
			sess.SetOutputDirectory(a.cfg.Directories.Output)
		}
	}

	overrides := opts.overrides()
	switch {
	case !overrides.IsEmpty():
		patterns := opts.selects
		if len(patterns) == 0 {
			patterns = []string{"*"}
		}
		n, err := sess.SelectMatching(patterns...)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			if _, err := sess.ApplyBulkEdit(overrides); err != nil {
				return nil, err
			}
		} else if sess.Count() > 0 {
			return nil, errors.NewValidationError(errors.CodeNoSelection,
				errors.Human(errors.ErrNoSelection)+": --select matched no file in "+dir)
		}
		sess.ClearSelection()
	case len(opts.selects) > 0:
		fmt.Fprintln(stderr, ui.Warning("--select has no effect without --viewbox, --class, --fill or --prefix"))
	}

	warnAttributes(stderr, sess.Files())
	return sess, nil
}

// warnAttributes prints one advisory line per distinct suspicious prefix or
// fill. The values are still used as given.
func warnAttributes(w io.Writer, files []types.FileDescriptor) {
	seen := make(map[string]bool)
	var warnings []string
	add := func(err error) {
		if err == nil {
			return
		}
		msg := errors.Human(err)
		if !seen[msg] {
			seen[msg] = true
			warnings = append(warnings, msg)
		}
	}
	for _, fd := range files {
		add(session.ValidatePrefix(fd.Prefix))
		add(session.CheckFill(fd.Fill))
	}
	sort.Strings(warnings)
	for _, msg := range warnings {
		fmt.Fprintln(w, ui.Warning(msg))
	}
}

// watchAndConvert converts created or modified SVG files until ctx is done.
// Only the changed files are converted; untouched files keep their output.
// Failures of the whole session, the initial batch included, decide the
// exit status once watching stops.
func (a *app) watchAndConvert(ctx context.Context, dir string, opts *convertOptions, orch *convert.Orchestrator, sink convert.Sink, failures *errors.ErrorCollector, stderr io.Writer) error {
	fw, err := watcher.NewFileWatcher(a.cfg.Watch.Debounce, a.logger)
	if err != nil {
		return err
	}
	defer func() { _ = fw.Stop() }()

	fw.AddFilter(watcher.SVGFilter)
	if err := fw.AddPath(dir); err != nil {
		return err
	}

	fw.AddHandler(func(ctx context.Context, events []watcher.ChangeEvent) error {
		changed := make(map[string]bool)
		for _, e := range events {
			if e.Type == watcher.EventTypeCreated || e.Type == watcher.EventTypeModified {
				changed[filepath.Base(e.Path)] = true
			}
		}
		if len(changed) == 0 {
			return nil
		}

		sess, err := a.prepareSession(dir, opts, stderr)
		if err != nil {
			return err
		}
		var files []types.FileDescriptor
		for _, fd := range sess.Files() {
			if changed[fd.Name] {
				files = append(files, fd)
			}
		}
		if len(files) == 0 {
			return nil
		}
		_, err = orch.Convert(ctx, sess.Directories(), files, sink)
		a.logger.Debug(ctx, "Watch batch converted", "files", len(files),
			"success_rate", orch.Metrics().GetSuccessRate())
		return err
	})

	if err := fw.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintln(stderr, ui.RenderAccent("Watching "+dir+" for changes (Ctrl+C to stop)"))
	a.logger.Info(ctx, "Watching for changes", "dir", dir)

	<-ctx.Done()
	if err := fw.Stop(); err != nil {
		a.logger.Warn(ctx, err, "Stopping file watcher")
	}

	snap := orch.Metrics().GetSnapshot()
	a.logger.Info(ctx, "Watch stopped",
		"batches", snap.Batches,
		"files", snap.TotalFiles,
		"converted", snap.ConvertedFiles,
		"failed", snap.FailedFiles,
		"avg_duration", snap.AverageDuration)

	if failures.HasErrors() {
		return fmt.Errorf("%d of %d files failed to convert", failures.Len(), snap.TotalFiles)
	}
	return nil
}

// collectorSink records failed results for the exit status.
type collectorSink struct {
	errs *errors.ErrorCollector
}

func (c collectorSink) OnResult(result types.ConversionResult) {
	if !result.OK() {
		c.errs.AddError(result.Err)
	}
}

func (collectorSink) OnSummary(types.ConversionSummary) {}
