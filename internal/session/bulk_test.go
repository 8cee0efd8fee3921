package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/types"
)

func descriptors(n int) []types.FileDescriptor {
	files := make([]types.FileDescriptor, n)
	for i := range files {
		files[i] = types.NewFileDescriptor(string(rune('a'+i)) + ".svg")
	}
	return files
}

func TestApplyBulkEditOnlySelected(t *testing.T) {
	files := descriptors(5)
	files[1].Selected = true
	files[3].Selected = true

	n, err := ApplyBulkEdit(files, types.BulkEditSettings{Fill: "#fff"})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	for i, f := range files {
		if i == 1 || i == 3 {
			assert.Equal(t, "#fff", f.Fill)
		} else {
			assert.Empty(t, f.Fill)
		}
		assert.Equal(t, types.DefaultViewBox, f.ViewBox)
		assert.Empty(t, f.ClassName)
		assert.Empty(t, f.Prefix)
	}
}

func TestApplyBulkEditNoSelection(t *testing.T) {
	files := descriptors(3)

	n, err := ApplyBulkEdit(files, types.BulkEditSettings{ClassName: "icon"})

	require.Error(t, err)
	assert.True(t, errors.IsNoSelection(err))
	assert.Equal(t, 0, n)
	for _, f := range files {
		assert.Empty(t, f.ClassName)
	}
}

func TestApplyBulkEditEmptyList(t *testing.T) {
	_, err := ApplyBulkEdit(nil, types.BulkEditSettings{ClassName: "icon"})

	assert.True(t, errors.IsNoSelection(err))
}

func TestApplyBulkEditFieldMerge(t *testing.T) {
	testCases := []struct {
		name     string
		settings types.BulkEditSettings
		expected types.FileDescriptor
	}{
		{
			name:     "all empty changes nothing",
			settings: types.BulkEditSettings{},
			expected: types.FileDescriptor{ViewBox: types.ViewBox{"1", "1", "1", "1"}, ClassName: "c", Fill: "f", Prefix: "p"},
		},
		{
			name:     "partial viewBox overwrites all four fields",
			settings: types.BulkEditSettings{ViewBox: types.ViewBox{"", "", "24", ""}},
			expected: types.FileDescriptor{ViewBox: types.ViewBox{"", "", "24", ""}, ClassName: "c", Fill: "f", Prefix: "p"},
		},
		{
			name:     "non-numeric viewBox is copied verbatim",
			settings: types.BulkEditSettings{ViewBox: types.ViewBox{"a", "b", "c", "d"}},
			expected: types.FileDescriptor{ViewBox: types.ViewBox{"a", "b", "c", "d"}, ClassName: "c", Fill: "f", Prefix: "p"},
		},
		{
			name:     "class only",
			settings: types.BulkEditSettings{ClassName: "icon"},
			expected: types.FileDescriptor{ViewBox: types.ViewBox{"1", "1", "1", "1"}, ClassName: "icon", Fill: "f", Prefix: "p"},
		},
		{
			name:     "prefix and fill",
			settings: types.BulkEditSettings{Prefix: "ic-", Fill: "none"},
			expected: types.FileDescriptor{ViewBox: types.ViewBox{"1", "1", "1", "1"}, ClassName: "c", Fill: "none", Prefix: "ic-"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			files := []types.FileDescriptor{{
				ViewBox:   types.ViewBox{"1", "1", "1", "1"},
				ClassName: "c",
				Fill:      "f",
				Prefix:    "p",
				Selected:  true,
			}}

			_, err := ApplyBulkEdit(files, tc.settings)
			require.NoError(t, err)

			tc.expected.Selected = true
			assert.Equal(t, tc.expected, files[0])
		})
	}
}

func TestSessionApplyBulkEdit(t *testing.T) {
	s := loadedSession(t, "a.svg", "b.svg")

	_, err := s.ApplyBulkEdit(types.BulkEditSettings{ClassName: "x"})
	assert.True(t, errors.IsNoSelection(err))

	s.ToggleSelectAll()
	n, err := s.ApplyBulkEdit(types.BulkEditSettings{ClassName: "x"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	for _, f := range s.Files() {
		assert.Equal(t, "x", f.ClassName)
	}
}
