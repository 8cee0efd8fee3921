// Package internal contains the core implementation packages for s2l.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - types: file descriptors, viewBox, conversion results
//   - scanner: lists the SVG files of a directory in a stable order
//   - session: selection, bulk and per-file edits, edit manifests
//   - rewriter: the SVG to .liquid text transform
//   - output: collision-free output names and no-overwrite writes
//   - convert: the bounded worker pool running a batch, sinks, metrics
//   - watcher: debounced fsnotify watching for convert --watch
//   - config: viper-backed settings from .s2l.yml and S2L_* variables
//   - errors: the structured error taxonomy
//   - logging: slog-based structured logging
//   - opener, ui, version: CLI collaborators
//
// # Data Flow
//
// A conversion follows one path:
//
//   - Scanner produces descriptors with default attributes
//   - Session applies configured defaults, the manifest, and flag overrides
//   - Convert rewrites each file and hands it to output for writing
//   - Results stream to a Sink; the summary follows the last result
//
// # Testing Strategy
//
// Packages are tested against afero's in-memory filesystem where possible
// and t.TempDir() where a real filesystem is needed (watcher, CLI, concurrent
// exclusive creates). Property tests use gopter and build with the
// "property" tag.
package internal
