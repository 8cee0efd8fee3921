// Package output computes collision-free destination names for converted
// files and writes them without ever replacing an existing file.
//
// Naming: "<prefix><stem>.liquid", where stem is the source name with a
// trailing ".svg" (any case) removed. When that name is taken the variants
// "<prefix><stem>(1).liquid", "(2)", ... are tried in order.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	s2lerrors "github.com/conneroisu/s2l/internal/errors"
)

const (
	// SourceExt is the extension accepted by the scanner.
	SourceExt = ".svg"
	// TargetExt is the extension of every converted file.
	TargetExt = ".liquid"
	// DefaultMaxAttempts bounds the number of "(n)" variants tried before
	// giving up. Zero means no bound.
	DefaultMaxAttempts = 10000
)

// Resolver finds unused output paths on a filesystem.
type Resolver struct {
	fs          afero.Fs
	maxAttempts int
}

// NewResolver creates a resolver. maxAttempts <= 0 disables the bound.
func NewResolver(fs afero.Fs, maxAttempts int) *Resolver {
	if maxAttempts < 0 {
		maxAttempts = 0
	}
	return &Resolver{fs: fs, maxAttempts: maxAttempts}
}

// Stem returns name without a trailing ".svg". Earlier occurrences are kept:
// "a.svg.b.svg" has stem "a.svg.b".
func Stem(name string) string {
	if len(name) >= len(SourceExt) && strings.EqualFold(name[len(name)-len(SourceExt):], SourceExt) {
		return name[:len(name)-len(SourceExt)]
	}
	return name
}

// OutputName returns the base candidate name for name and prefix.
func OutputName(name, prefix string) string {
	return prefix + Stem(name) + TargetExt
}

// VariantName returns the n-th candidate; n == 0 is the base candidate.
func VariantName(name, prefix string, n int) string {
	if n == 0 {
		return OutputName(name, prefix)
	}
	return fmt.Sprintf("%s%s(%d)%s", prefix, Stem(name), n, TargetExt)
}

// Resolve returns the first candidate in dir that does not exist yet, as a
// full path and as a bare file name.
func (r *Resolver) Resolve(dir, name, prefix string) (string, string, error) {
	_, path, outName, err := r.resolveFrom(dir, name, prefix, 0)
	return path, outName, err
}

func (r *Resolver) resolveFrom(dir, name, prefix string, n int) (int, string, string, error) {
	for ; r.maxAttempts == 0 || n <= r.maxAttempts; n++ {
		outName := VariantName(name, prefix, n)
		path := filepath.Join(dir, outName)
		exists, err := afero.Exists(r.fs, path)
		if err != nil {
			return n, "", "", s2lerrors.NewIOError("stat", path, err)
		}
		if !exists {
			return n, path, outName, nil
		}
	}
	return n, "", "", s2lerrors.NewCollisionLimitError(dir, OutputName(name, prefix), r.maxAttempts)
}

// WriteNew resolves a free name in dir and writes data to it. The file is
// created exclusively, so a name claimed by a concurrent writer between
// resolution and creation moves on to the next variant instead of being
// overwritten. It returns the bare output file name.
func (r *Resolver) WriteNew(dir, name, prefix string, data []byte) (string, error) {
	n := 0
	for {
		next, path, outName, err := r.resolveFrom(dir, name, prefix, n)
		if err != nil {
			return "", err
		}

		f, err := r.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				n = next + 1
				continue
			}
			return "", s2lerrors.NewIOError("create", path, err)
		}

		if err := writeAll(f, data); err != nil {
			_ = f.Close()
			_ = r.fs.Remove(path)
			return "", s2lerrors.NewIOError("write", path, err)
		}
		if err := f.Close(); err != nil {
			_ = r.fs.Remove(path)
			return "", s2lerrors.NewIOError("close", path, err)
		}
		return outName, nil
	}
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
