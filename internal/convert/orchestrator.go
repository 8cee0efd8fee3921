// Package convert runs a conversion batch: every descriptor in the list is
// read, rewritten, and written to a collision-free .liquid file.
//
// Files are converted by a bounded pool of workers. Workers never touch
// shared state; each sends exactly one ConversionResult on a channel that a
// single aggregator drains. The aggregator owns the converted counter and
// the Sink, so sinks need no locking. The summary is delivered only after
// every per-file result of the batch, and only when at least one file was
// converted.
//
// A failing file never stops the others. When the context is cancelled the
// remaining files report a Cancelled failure instead of being converted.
package convert

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/logging"
	"github.com/conneroisu/s2l/internal/output"
	"github.com/conneroisu/s2l/internal/rewriter"
	"github.com/conneroisu/s2l/internal/types"
)

// DefaultWorkers is used when no pool size is configured.
const DefaultWorkers = 4

// Orchestrator converts batches of descriptors.
type Orchestrator struct {
	// fs is where sources are read and outputs written
	fs afero.Fs
	// resolver picks output names and performs no-overwrite writes
	resolver *output.Resolver
	// workers bounds the number of files converted at once
	workers int
	logger  logging.Logger
	metrics *Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithWorkers sets the pool size. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithMaxCollisions bounds the "(n)" variants tried per file; 0 is unbounded.
func WithMaxCollisions(n int) Option {
	return func(o *Orchestrator) {
		o.resolver = output.NewResolver(o.fs, n)
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records every result into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// New creates an orchestrator working on fs.
func New(fs afero.Fs, opts ...Option) *Orchestrator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	o := &Orchestrator{
		fs:       fs,
		resolver: output.NewResolver(fs, output.DefaultMaxAttempts),
		workers:  DefaultWorkers,
		logger:   logging.NewNopLogger(),
		metrics:  NewMetrics(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.WithComponent("convert")
	return o
}

// Metrics returns the metrics the orchestrator records into.
func (o *Orchestrator) Metrics() *Metrics {
	return o.metrics
}

// Convert converts every descriptor in files, regardless of selection, from
// dirs.Input into dirs.Destination(). Each result is passed to sink as it
// arrives, followed by the summary when at least one file was converted.
//
// Convert blocks until the batch is finished. The returned summary is always
// filled in; the error is non-nil only when ctx was cancelled.
func (o *Orchestrator) Convert(ctx context.Context, dirs types.Directories, files []types.FileDescriptor, sink Sink) (types.ConversionSummary, error) {
	if sink == nil {
		sink = DiscardSink{}
	}
	perf := logging.StartOperation(o.logger, "convert_batch")
	start := time.Now()
	dest := dirs.Destination()

	results := make(chan types.ConversionResult, o.workers)

	go func() {
		var g errgroup.Group
		g.SetLimit(o.workers)
		for _, fd := range files {
			g.Go(func() error {
				results <- o.convertFile(ctx, dirs.Input, dest, fd)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	summary := types.ConversionSummary{DestinationDirectory: dest}
	for result := range results {
		if result.OK() {
			summary.FilesConverted++
			o.logger.Debug(ctx, "File converted", "file", result.OriginalName, "output", result.OutputName)
		} else {
			summary.Failed++
			o.logger.Warn(ctx, result.Err, "File conversion failed", "file", result.OriginalName, "kind", string(result.Failure))
		}
		o.metrics.RecordConversion(result)
		sink.OnResult(result)
	}
	summary.Elapsed = time.Since(start)

	if summary.FilesConverted > 0 {
		sink.OnSummary(summary)
	}
	o.metrics.RecordBatch(summary)
	perf.End(ctx, "files", len(files), "converted", summary.FilesConverted, "failed", summary.Failed)

	return summary, ctx.Err()
}

// convertFile runs the per-file pipeline. Every exit path yields a result;
// the context is checked before each filesystem step.
func (o *Orchestrator) convertFile(ctx context.Context, inputDir, dest string, fd types.FileDescriptor) types.ConversionResult {
	start := time.Now()
	result := o.convertSteps(ctx, inputDir, dest, fd)
	result.Duration = time.Since(start)
	return result
}

func (o *Orchestrator) convertSteps(ctx context.Context, inputDir, dest string, fd types.FileDescriptor) types.ConversionResult {
	srcPath := filepath.Join(inputDir, fd.Name)
	cancelled := func() (types.ConversionResult, bool) {
		if err := ctx.Err(); err != nil {
			return types.Failure(fd.Name, types.FailureCancelled, errors.NewCancelledError(srcPath, err)), true
		}
		return types.ConversionResult{}, false
	}

	if r, stop := cancelled(); stop {
		return r
	}
	exists, err := afero.Exists(o.fs, srcPath)
	if err != nil {
		return types.Failure(fd.Name, types.FailureIO, errors.NewIOError("stat", srcPath, err))
	}
	if !exists {
		return types.Failure(fd.Name, types.FailureSourceMissing, errors.NewSourceMissingError(srcPath))
	}

	if r, stop := cancelled(); stop {
		return r
	}
	src, err := afero.ReadFile(o.fs, srcPath)
	if err != nil {
		return types.Failure(fd.Name, types.FailureIO, errors.NewIOError("read", srcPath, err))
	}

	rewritten := rewriter.RewriteDescriptor(string(src), fd)

	if r, stop := cancelled(); stop {
		return r
	}
	if err := o.fs.MkdirAll(dest, 0o755); err != nil {
		return types.Failure(fd.Name, types.FailureIO, errors.NewIOError("mkdir", dest, err))
	}

	if r, stop := cancelled(); stop {
		return r
	}
	outName, err := o.resolver.WriteNew(dest, fd.Name, fd.Prefix, []byte(rewritten))
	if err != nil {
		if errors.IsCollisionLimit(err) {
			return types.Failure(fd.Name, types.FailureCollisionLimit, err)
		}
		return types.Failure(fd.Name, types.FailureIO, err)
	}

	return types.Success(fd.Name, outName)
}
