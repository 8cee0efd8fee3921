package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/s2l/internal/errors"
)

func TestNewFileDescriptor(t *testing.T) {
	a := NewFileDescriptor("icon.svg")
	b := NewFileDescriptor("icon.svg")

	assert.Equal(t, "icon.svg", a.Name)
	assert.Equal(t, DefaultViewBox, a.ViewBox)
	assert.Empty(t, a.ClassName)
	assert.Empty(t, a.Fill)
	assert.Empty(t, a.Prefix)
	assert.False(t, a.Selected)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestViewBoxString(t *testing.T) {
	assert.Equal(t, "0 0 100 100", DefaultViewBox.String())
	assert.Equal(t, "a b  d", ViewBox{"a", "b", "", "d"}.String())
	assert.Equal(t, "   ", ViewBox{}.String())
	assert.True(t, ViewBox{}.IsEmpty())
	assert.False(t, ViewBox{"", "", "", "1"}.IsEmpty())
}

func TestParseViewBox(t *testing.T) {
	tests := []struct {
		in       string
		expected ViewBox
		wantErr  bool
	}{
		{in: "0 0 24 24", expected: ViewBox{"0", "0", "24", "24"}},
		{in: "0,0,24,24", expected: ViewBox{"0", "0", "24", "24"}},
		{in: " -1, 2.5  3e2\t4 ", expected: ViewBox{"-1", "2.5", "3e2", "4"}},
		{in: "x y w h", expected: ViewBox{"x", "y", "w", "h"}},
		{in: "", expected: ViewBox{}},
		{in: "  ", expected: ViewBox{}},
		{in: "0 0 24", wantErr: true},
		{in: "0 0 24 24 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseViewBox(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.CodeInvalidViewBox, errors.GetErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBulkEditSettingsIsEmpty(t *testing.T) {
	assert.True(t, BulkEditSettings{}.IsEmpty())
	assert.False(t, BulkEditSettings{Fill: "#fff"}.IsEmpty())
	assert.False(t, BulkEditSettings{ViewBox: ViewBox{"0", "", "", ""}}.IsEmpty())
}

func TestDirectoriesDestination(t *testing.T) {
	assert.Equal(t, "/in", Directories{Input: "/in"}.Destination())
	assert.Equal(t, "/out", Directories{Input: "/in", Output: "/out"}.Destination())
}

func TestConversionResult(t *testing.T) {
	ok := Success("a.svg", "a.liquid")
	assert.True(t, ok.OK())
	assert.Nil(t, ok.Err)

	failed := Failure("a.svg", FailureIO, assert.AnError)
	assert.False(t, failed.OK())
	assert.Empty(t, failed.OutputName)

	s := ConversionSummary{Elapsed: 1500 * time.Millisecond}
	assert.InDelta(t, 1.5, s.ElapsedSeconds(), 1e-9)
}
