package convert

import (
	"fmt"
	"io"
	"sync"

	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/types"
)

// Sink receives the progress of a batch. Calls come from a single goroutine,
// in order: zero or more OnResult, then at most one OnSummary.
type Sink interface {
	OnResult(result types.ConversionResult)
	OnSummary(summary types.ConversionSummary)
}

// TextSink renders progress as the plain text lines shown in the log view:
//
//	Success: Converted file icon.svg ---> icon.liquid
//	Error: file does not exist at path: /in/gone.svg
//
//	File conversions complete.
//	Number of Files Converted: 1
//	Time Taken: 0.01 seconds
//	Destination Directory: /out
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// OnResult writes one progress line.
func (s *TextSink) OnResult(result types.ConversionResult) {
	_, _ = io.WriteString(s.w, FormatResult(result)+"\n")
}

// OnSummary writes the summary block.
func (s *TextSink) OnSummary(summary types.ConversionSummary) {
	_, _ = io.WriteString(s.w, FormatSummary(summary))
}

// FormatResult returns the progress line for result, without a newline.
func FormatResult(result types.ConversionResult) string {
	if result.OK() {
		return fmt.Sprintf("Success: Converted file %s ---> %s", result.OriginalName, result.OutputName)
	}
	return "Error: " + errors.Human(result.Err)
}

// FormatSummary returns the summary block, starting with a blank line and
// ending with a newline.
func FormatSummary(summary types.ConversionSummary) string {
	return fmt.Sprintf("\nFile conversions complete.\nNumber of Files Converted: %d\nTime Taken: %.2f seconds\nDestination Directory: %s\n",
		summary.FilesConverted, summary.ElapsedSeconds(), summary.DestinationDirectory)
}

// DiscardSink ignores everything.
type DiscardSink struct{}

func (DiscardSink) OnResult(types.ConversionResult) {}

func (DiscardSink) OnSummary(types.ConversionSummary) {}

// CollectSink keeps every result and the summary in memory. It is safe to
// read from other goroutines while a batch is running.
type CollectSink struct {
	mu      sync.Mutex
	results []types.ConversionResult
	summary *types.ConversionSummary
}

// OnResult records result.
func (c *CollectSink) OnResult(result types.ConversionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

// OnSummary records summary.
func (c *CollectSink) OnSummary(summary types.ConversionSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = &summary
}

// Results returns a copy of the recorded results in arrival order.
func (c *CollectSink) Results() []types.ConversionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.ConversionResult, len(c.results))
	copy(out, c.results)
	return out
}

// Summary returns the recorded summary, if any.
func (c *CollectSink) Summary() (types.ConversionSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.summary == nil {
		return types.ConversionSummary{}, false
	}
	return *c.summary, true
}

// MultiSink fans every call out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) OnResult(result types.ConversionResult) {
	for _, s := range m {
		s.OnResult(result)
	}
}

func (m MultiSink) OnSummary(summary types.ConversionSummary) {
	for _, s := range m {
		s.OnSummary(summary)
	}
}
