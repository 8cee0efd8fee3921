// Package session holds the mutable state of one conversion session: the
// input/output directories and the ordered list of file descriptors, along
// with the selection, removal, and editing operations applied to it before
// a batch is converted.
//
// The list is owned by the Session and handed to the orchestrator as a
// snapshot, so conversion never observes a half-applied edit.
package session

import (
	"path/filepath"
	"sync"

	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/scanner"
	"github.com/conneroisu/s2l/internal/types"
)

// Session manages the descriptor list of one input directory.
type Session struct {
	scanner   *scanner.Scanner
	dirs      types.Directories
	files     []types.FileDescriptor
	selectAll bool
	mutex     sync.RWMutex
}

// New creates an empty session that loads directories through sc.
func New(sc *scanner.Scanner) *Session {
	return &Session{
		scanner: sc,
		files:   make([]types.FileDescriptor, 0),
	}
}

// Load scans dir and replaces the descriptor list with the result. On
// failure the list is left empty and the DirectoryRead error is returned.
func (s *Session) Load(dir string) error {
	files, err := s.scanner.ScanDirectory(dir)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.dirs.Input = dir
	s.files = files
	s.selectAll = false
	return err
}

// SetOutputDirectory sets where converted files are written. An empty dir
// means "next to the sources".
func (s *Session) SetOutputDirectory(dir string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.dirs.Output = dir
}

// Directories returns the current input and output directories.
func (s *Session) Directories() types.Directories {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.dirs
}

// Files returns a snapshot of the descriptor list in order.
func (s *Session) Files() []types.FileDescriptor {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make([]types.FileDescriptor, len(s.files))
	copy(result, s.files)
	return result
}

// Count returns the number of descriptors.
func (s *Session) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.files)
}

// Get retrieves a descriptor by id.
func (s *Session) Get(id string) (types.FileDescriptor, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.files[i], true
	}
	return types.FileDescriptor{}, false
}

// FindByName retrieves the first descriptor whose file name is name.
func (s *Session) FindByName(name string) (types.FileDescriptor, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, f := range s.files {
		if f.Name == name {
			return f, true
		}
	}
	return types.FileDescriptor{}, false
}

func (s *Session) indexOf(id string) int {
	for i := range s.files {
		if s.files[i].ID == id {
			return i
		}
	}
	return -1
}

// Select marks the given descriptors as selected. Unknown ids are rejected
// before anything is changed.
func (s *Session) Select(ids ...string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := make([]int, 0, len(ids))
	for _, id := range ids {
		i := s.indexOf(id)
		if i < 0 {
			return errors.ErrNotFound(id)
		}
		idx = append(idx, i)
	}
	for _, i := range idx {
		s.files[i].Selected = true
	}
	return nil
}

// Deselect clears the selection flag of one descriptor.
func (s *Session) Deselect(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.ErrNotFound(id)
	}
	s.files[i].Selected = false
	return nil
}

// SelectMatching replaces the selection with the descriptors whose name
// matches at least one of the shell patterns (see filepath.Match). It
// returns the number of selected descriptors. A malformed pattern leaves the
// selection untouched.
func (s *Session) SelectMatching(patterns ...string) (int, error) {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return 0, errors.NewValidationError(errors.CodeInvalidPattern, "invalid select pattern "+p).
				WithContext("pattern", p)
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	selected := 0
	for i := range s.files {
		s.files[i].Selected = matchesAny(s.files[i].Name, patterns)
		if s.files[i].Selected {
			selected++
		}
	}
	s.selectAll = selected > 0 && selected == len(s.files)
	return selected, nil
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// ClearSelection deselects every descriptor.
func (s *Session) ClearSelection() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.files {
		s.files[i].Selected = false
	}
	s.selectAll = false
}

// ToggleSelectAll flips the select-all state and applies it to every
// descriptor. It returns the new state.
func (s *Session) ToggleSelectAll() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.selectAll = !s.selectAll
	for i := range s.files {
		s.files[i].Selected = s.selectAll
	}
	return s.selectAll
}

// HasSelection reports whether at least one descriptor is selected.
func (s *Session) HasSelection() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return hasSelection(s.files)
}

func hasSelection(files []types.FileDescriptor) bool {
	for _, f := range files {
		if f.Selected {
			return true
		}
	}
	return false
}

// Remove deletes one descriptor from the list. The file on disk is not
// touched.
func (s *Session) Remove(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.ErrNotFound(id)
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
	return nil
}

// RemoveSelected deletes every selected descriptor and returns how many were
// removed.
func (s *Session) RemoveSelected() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	kept := s.files[:0]
	for _, f := range s.files {
		if !f.Selected {
			kept = append(kept, f)
		}
	}
	removed := len(s.files) - len(kept)
	s.files = kept
	return removed
}

// Edit merges patch into a single descriptor, regardless of selection. Empty
// patch fields leave the descriptor's value untouched.
func (s *Session) Edit(id string, patch types.BulkEditSettings) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.ErrNotFound(id)
	}
	merge(&s.files[i], patch)
	return nil
}

// ApplyDefaults merges settings into every descriptor, selected or not.
func (s *Session) ApplyDefaults(settings types.BulkEditSettings) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.files {
		merge(&s.files[i], settings)
	}
}

// ApplyBulkEdit merges settings into every selected descriptor. It returns
// ErrNoSelection when nothing is selected.
func (s *Session) ApplyBulkEdit(settings types.BulkEditSettings) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return ApplyBulkEdit(s.files, settings)
}
