// Package scanner provides SVG discovery for a single input directory.
//
// The scanner lists a directory (non-recursively), keeps every regular file
// whose extension is ".svg" in any letter case, and returns one
// FileDescriptor per match with default attributes. Results are sorted by
// the NFC-normalized file name so that the order does not depend on the
// filesystem's listing order or on how the platform composes accented
// characters in names.
package scanner

import (
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/types"
)

// SVGExt is the extension matched by the scanner, compared case-insensitively.
const SVGExt = ".svg"

// Scanner discovers SVG files on a filesystem.
type Scanner struct {
	// fs is the filesystem directories are listed from
	fs afero.Fs
}

// New creates a scanner reading from fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *Scanner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Scanner{fs: fs}
}

// Fs returns the filesystem the scanner reads from.
func (s *Scanner) Fs() afero.Fs {
	return s.fs
}

// IsSVG reports whether name ends in ".svg", ignoring case.
func IsSVG(name string) bool {
	return len(name) > len(SVGExt) && strings.EqualFold(name[len(name)-len(SVGExt):], SVGExt)
}

// ScanDirectory returns one descriptor per SVG file directly inside dir.
// Subdirectories are not descended into, and a directory whose name happens
// to end in ".svg" is skipped. When dir cannot be listed the result is empty
// and the error is a DirectoryRead error naming dir.
func (s *Scanner) ScanDirectory(dir string) ([]types.FileDescriptor, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return []types.FileDescriptor{}, errors.NewDirectoryReadError(dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSVG(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.SliceStable(names, func(i, j int) bool {
		a, b := norm.NFC.String(names[i]), norm.NFC.String(names[j])
		if a != b {
			return a < b
		}
		// Same composed form, different bytes: fall back to raw order.
		return names[i] < names[j]
	})

	files := make([]types.FileDescriptor, 0, len(names))
	for _, name := range names {
		files = append(files, types.NewFileDescriptor(name))
	}
	return files, nil
}
