// Package types provides the data model shared by the scanner, session,
// rewriter, and conversion orchestrator.
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conneroisu/s2l/internal/errors"
)

// ViewBox holds the four free-form viewBox fields: x, y, width, height.
// Values are never coerced to numbers.
type ViewBox [4]string

// DefaultViewBox is assigned to every freshly scanned file.
var DefaultViewBox = ViewBox{"0", "0", "100", "100"}

// String joins the fields with single spaces, verbatim.
func (v ViewBox) String() string {
	return strings.Join(v[:], " ")
}

// IsEmpty reports whether all four fields are empty.
func (v ViewBox) IsEmpty() bool {
	for _, f := range v {
		if f != "" {
			return false
		}
	}
	return true
}

// ParseViewBox splits s on whitespace and/or commas into exactly four fields.
// An empty or blank s yields the empty ViewBox.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return ViewBox{}, nil
	}
	if len(fields) != 4 {
		return ViewBox{}, errors.NewValidationError(
			errors.CodeInvalidViewBox,
			fmt.Sprintf("viewBox needs 4 fields (x y width height), got %d in %q", len(fields), s),
		)
	}
	return ViewBox{fields[0], fields[1], fields[2], fields[3]}, nil
}

// FileDescriptor is one candidate SVG file and the attributes it will be
// converted with.
type FileDescriptor struct {
	// ID is an opaque identity, stable for the lifetime of a session
	ID string `json:"id" yaml:"id"`
	// Name is the file name relative to the input directory
	Name string `json:"name" yaml:"name"`
	// ViewBox replaces or is inserted as the root svg viewBox
	ViewBox ViewBox `json:"viewBox" yaml:"viewBox"`
	// ClassName is inserted on the svg tag unless it already has a class
	ClassName string `json:"className" yaml:"className"`
	// Fill is inserted on every path tag that has no fill
	Fill string `json:"fill" yaml:"fill"`
	// Prefix is prepended to the output file name
	Prefix string `json:"prefix" yaml:"prefix"`
	// Selected scopes bulk edits and removal
	Selected bool `json:"selected" yaml:"selected"`
}

// NewFileDescriptor returns a descriptor for name with default attributes.
func NewFileDescriptor(name string) FileDescriptor {
	return FileDescriptor{
		ID:      uuid.NewString(),
		Name:    name,
		ViewBox: DefaultViewBox,
	}
}

// BulkEditSettings is an override record. Empty fields (and an all-empty
// ViewBox) leave the target attribute untouched.
type BulkEditSettings struct {
	ViewBox   ViewBox `json:"viewBox" yaml:"viewBox"`
	ClassName string  `json:"className" yaml:"className"`
	Fill      string  `json:"fill" yaml:"fill"`
	Prefix    string  `json:"prefix" yaml:"prefix"`
}

// IsEmpty reports whether applying s would change nothing.
func (s BulkEditSettings) IsEmpty() bool {
	return s.ViewBox.IsEmpty() && s.ClassName == "" && s.Fill == "" && s.Prefix == ""
}

// Directories holds the input and output locations of a session.
type Directories struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// Destination returns the output directory, falling back to the input
// directory when no output directory is set.
func (d Directories) Destination() string {
	if d.Output == "" {
		return d.Input
	}
	return d.Output
}

// FailureKind classifies a failed conversion.
type FailureKind string

const (
	FailureNone           FailureKind = ""
	FailureSourceMissing  FailureKind = "source_missing"
	FailureIO             FailureKind = "io_error"
	FailureCollisionLimit FailureKind = "collision_limit"
	FailureCancelled      FailureKind = "cancelled"
)

// ConversionResult is the outcome of converting one file. Exactly one of
// OutputName (success) or Failure/Err (failure) is meaningful.
type ConversionResult struct {
	OriginalName string
	OutputName   string
	Failure      FailureKind
	Err          error
	Duration     time.Duration
}

// Success builds a successful result.
func Success(name, outputName string) ConversionResult {
	return ConversionResult{OriginalName: name, OutputName: outputName}
}

// Failure builds a failed result.
func Failure(name string, kind FailureKind, err error) ConversionResult {
	return ConversionResult{OriginalName: name, Failure: kind, Err: err}
}

// OK reports whether the conversion succeeded.
func (r ConversionResult) OK() bool {
	return r.Failure == FailureNone
}

// ConversionSummary describes a finished batch. It is only emitted when
// FilesConverted > 0.
type ConversionSummary struct {
	FilesConverted       int
	Failed               int
	Elapsed              time.Duration
	DestinationDirectory string
}

// ElapsedSeconds returns Elapsed in seconds.
func (s ConversionSummary) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}
