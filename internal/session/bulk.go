package session

import (
	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/types"
)

// ApplyBulkEdit merges settings into every selected descriptor of files, in
// place, and returns how many descriptors were touched.
//
// Fields merge independently: the viewBox is replaced only when at least one
// of its four fields is non-empty, and className, fill, and prefix only when
// the override is non-empty. Values are copied verbatim.
//
// When no descriptor is selected nothing is changed and ErrNoSelection is
// returned, so callers can surface it to the user.
func ApplyBulkEdit(files []types.FileDescriptor, settings types.BulkEditSettings) (int, error) {
	if !hasSelection(files) {
		return 0, errors.ErrNoSelection
	}

	applied := 0
	for i := range files {
		if !files[i].Selected {
			continue
		}
		merge(&files[i], settings)
		applied++
	}
	return applied, nil
}

func merge(fd *types.FileDescriptor, settings types.BulkEditSettings) {
	if !settings.ViewBox.IsEmpty() {
		fd.ViewBox = settings.ViewBox
	}
	if settings.ClassName != "" {
		fd.ClassName = settings.ClassName
	}
	if settings.Fill != "" {
		fd.Fill = settings.Fill
	}
	if settings.Prefix != "" {
		fd.Prefix = settings.Prefix
	}
}
