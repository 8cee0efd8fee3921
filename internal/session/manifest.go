package session

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/types"
)

// Manifest is a YAML document describing the edits of a session, so that a
// batch can be reproduced without retyping flags:
//
//	output: ./liquid
//	bulk:
//	  select: ["icon-*.svg"]
//	  viewBox: "0 0 24 24"
//	  className: icon
//	files:
//	  logo.svg:
//	    fill: "#fff"
//	    prefix: brand
type Manifest struct {
	Output string              `yaml:"output,omitempty"`
	Bulk   *BulkEdit           `yaml:"bulk,omitempty"`
	Files  map[string]FileEdit `yaml:"files,omitempty"`
}

// FileEdit is a set of attribute overrides. Empty fields are left alone.
type FileEdit struct {
	ViewBox   string `yaml:"viewBox,omitempty"`
	ClassName string `yaml:"className,omitempty"`
	Fill      string `yaml:"fill,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
}

// BulkEdit applies one FileEdit to every file matching Select. An empty
// Select matches every file.
type BulkEdit struct {
	Select   []string `yaml:"select,omitempty"`
	FileEdit `yaml:",inline"`
}

// Settings converts the edit into bulk edit settings, parsing the viewBox.
func (e FileEdit) Settings() (types.BulkEditSettings, error) {
	vb, err := types.ParseViewBox(e.ViewBox)
	if err != nil {
		return types.BulkEditSettings{}, err
	}
	return types.BulkEditSettings{
		ViewBox:   vb,
		ClassName: e.ClassName,
		Fill:      e.Fill,
		Prefix:    e.Prefix,
	}, nil
}

// ParseManifest decodes a manifest. Unknown keys are rejected so that a
// misspelt attribute does not silently do nothing.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		// A document with no content decodes to io.EOF.
		if err == io.EOF {
			return &m, nil
		}
		return nil, &errors.S2LError{
			Type:    errors.ErrorTypeValidation,
			Code:    errors.CodeManifestInvalid,
			Message: "invalid manifest",
			Cause:   err,
		}
	}

	if m.Bulk != nil {
		if _, err := m.Bulk.Settings(); err != nil {
			return nil, manifestFieldError("bulk", err)
		}
	}
	for name, edit := range m.Files {
		if _, err := edit.Settings(); err != nil {
			return nil, manifestFieldError("files."+name, err)
		}
	}
	return &m, nil
}

func manifestFieldError(field string, cause error) error {
	return (&errors.S2LError{
		Type:    errors.ErrorTypeValidation,
		Code:    errors.CodeManifestInvalid,
		Message: fmt.Sprintf("invalid manifest entry %s", field),
		Cause:   cause,
	}).WithContext("field", field)
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		if se, ok := err.(*errors.S2LError); ok {
			return nil, se.WithPath(path)
		}
		return nil, err
	}
	return m, nil
}

// ApplyManifest applies m to the session: the bulk section first, then the
// per-file entries, so a file entry wins over the bulk values. The
// selection is cleared afterwards. It returns the per-file entry names that
// matched no descriptor, sorted.
//
// A bulk section whose patterns match nothing returns ErrNoSelection and
// leaves every descriptor unchanged. On an empty session the bulk section is
// skipped, as there is nothing it could select.
func (s *Session) ApplyManifest(m *Manifest) ([]string, error) {
	if m == nil {
		return nil, nil
	}
	if m.Output != "" {
		s.SetOutputDirectory(m.Output)
	}

	if m.Bulk != nil {
		settings, err := m.Bulk.Settings()
		if err != nil {
			return nil, err
		}
		if err := s.applyBulk(m.Bulk.Select, settings); err != nil {
			return nil, err
		}
	}

	return s.applyFileEdits(m)
}

// applyBulk selects the files matching patterns (all files when empty),
// applies settings to them, and clears the selection.
func (s *Session) applyBulk(patterns []string, settings types.BulkEditSettings) error {
	if s.Count() == 0 {
		return nil
	}
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}
	if _, err := s.SelectMatching(patterns...); err != nil {
		return err
	}
	_, err := s.ApplyBulkEdit(settings)
	s.ClearSelection()
	return err
}

// applyFileEdits applies the per-file entries of m and returns the names
// that matched no descriptor, sorted.
func (s *Session) applyFileEdits(m *Manifest) ([]string, error) {
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	var unmatched []string
	for _, name := range names {
		settings, err := m.Files[name].Settings()
		if err != nil {
			return nil, err
		}
		if !s.editByName(name, settings) {
			unmatched = append(unmatched, name)
		}
	}
	return unmatched, nil
}

func (s *Session) editByName(name string, settings types.BulkEditSettings) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found := false
	for i := range s.files {
		if s.files[i].Name == name {
			merge(&s.files[i], settings)
			found = true
		}
	}
	return found
}
