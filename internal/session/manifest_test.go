package session

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/scanner"
	"github.com/conneroisu/s2l/internal/types"
)

const sampleManifest = `
output: /out
bulk:
  select: ["icon-*"]
  viewBox: "0 0 24 24"
  className: icon
files:
  icon-a.svg:
    className: special
  logo.svg:
    fill: "#fff"
    prefix: brand
  ghost.svg:
    fill: red
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "/out", m.Output)
	require.NotNil(t, m.Bulk)
	assert.Equal(t, []string{"icon-*"}, m.Bulk.Select)
	assert.Equal(t, "0 0 24 24", m.Bulk.ViewBox)
	assert.Equal(t, "icon", m.Bulk.ClassName)
	assert.Len(t, m.Files, 3)
	assert.Equal(t, "brand", m.Files["logo.svg"].Prefix)
}

func TestParseManifestEmpty(t *testing.T) {
	for _, doc := range []string{"", "   \n", "# only a comment\n"} {
		m, err := ParseManifest([]byte(doc))
		require.NoError(t, err)
		assert.Nil(t, m.Bulk)
		assert.Empty(t, m.Files)
	}
}

func TestParseManifestErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"unknown key", "bulk:\n  colour: red\n"},
		{"bad viewBox", "bulk:\n  viewBox: \"0 0 24\"\n"},
		{"bad file viewBox", "files:\n  a.svg:\n    viewBox: \"1 2\"\n"},
		{"not yaml", "bulk: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.doc))
			require.Error(t, err)
			assert.Equal(t, errors.CodeManifestInvalid, errors.GetErrorCode(err))
		})
	}
}

func TestLoadManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/edits.yml", []byte(sampleManifest), 0o644))

	m, err := LoadManifest(fs, "/edits.yml")
	require.NoError(t, err)
	assert.Equal(t, "/out", m.Output)

	_, err = LoadManifest(fs, "/missing.yml")
	assert.True(t, errors.IsIO(err))

	require.NoError(t, afero.WriteFile(fs, "/bad.yml", []byte("nope: 1\n"), 0o644))
	_, err = LoadManifest(fs, "/bad.yml")
	var se *errors.S2LError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "/bad.yml", se.Path)
}

func TestApplyManifest(t *testing.T) {
	s := loadedSession(t, "icon-a.svg", "icon-b.svg", "logo.svg")
	m, err := ParseManifest([]byte(sampleManifest))
	require.NoError(t, err)

	unmatched, err := s.ApplyManifest(m)
	require.NoError(t, err)

	assert.Equal(t, []string{"ghost.svg"}, unmatched)
	assert.Equal(t, "/out", s.Directories().Output)
	assert.False(t, s.HasSelection())

	a, _ := s.FindByName("icon-a.svg")
	assert.Equal(t, types.ViewBox{"0", "0", "24", "24"}, a.ViewBox)
	assert.Equal(t, "special", a.ClassName)

	b, _ := s.FindByName("icon-b.svg")
	assert.Equal(t, "icon", b.ClassName)

	logo, _ := s.FindByName("logo.svg")
	assert.Equal(t, types.DefaultViewBox, logo.ViewBox)
	assert.Empty(t, logo.ClassName)
	assert.Equal(t, "#fff", logo.Fill)
	assert.Equal(t, "brand", logo.Prefix)
}

func TestApplyManifestBulkWithoutSelectTargetsAll(t *testing.T) {
	s := loadedSession(t, "a.svg", "b.svg")

	_, err := s.ApplyManifest(&Manifest{Bulk: &BulkEdit{FileEdit: FileEdit{Fill: "none"}}})

	require.NoError(t, err)
	for _, f := range s.Files() {
		assert.Equal(t, "none", f.Fill)
	}
}

func TestApplyManifestBulkMatchesNothing(t *testing.T) {
	s := loadedSession(t, "a.svg")

	_, err := s.ApplyManifest(&Manifest{Bulk: &BulkEdit{Select: []string{"zzz*"}, FileEdit: FileEdit{Fill: "none"}}})

	assert.True(t, errors.IsNoSelection(err))
	assert.Empty(t, s.Files()[0].Fill)
}

func TestApplyManifestEmptySession(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/in", 0o755))
	s := New(scanner.New(fs))
	require.NoError(t, s.Load("/in"))
	m, err := ParseManifest([]byte(sampleManifest))
	require.NoError(t, err)

	unmatched, err := s.ApplyManifest(m)

	require.NoError(t, err)
	assert.Equal(t, []string{"ghost.svg", "icon-a.svg", "logo.svg"}, unmatched)
	assert.Equal(t, "/out", s.Directories().Output)
}

func TestApplyManifestEmptySessionRejectsBadBulk(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/in", 0o755))
	s := New(scanner.New(fs))
	require.NoError(t, s.Load("/in"))

	_, err := s.ApplyManifest(&Manifest{Bulk: &BulkEdit{FileEdit: FileEdit{ViewBox: "0 0 24"}}})

	var se *errors.S2LError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, errors.CodeInvalidViewBox, se.Code)
}

func TestApplyManifestNil(t *testing.T) {
	s := loadedSession(t, "a.svg")

	unmatched, err := s.ApplyManifest(nil)

	assert.NoError(t, err)
	assert.Nil(t, unmatched)
}
