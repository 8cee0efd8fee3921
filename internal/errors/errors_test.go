package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS2LErrorError(t *testing.T) {
	testCases := []struct {
		name     string
		err      *S2LError
		expected string
	}{
		{
			name:     "code path message cause",
			err:      NewDirectoryReadError("/icons", fs.ErrPermission),
			expected: "[ERR_DIRECTORY_READ] /icons error reading directory contents: permission denied",
		},
		{
			name:     "message only",
			err:      &S2LError{Message: "boom"},
			expected: "boom",
		},
		{
			name:     "validation",
			err:      ErrNoSelection,
			expected: "[ERR_NO_SELECTION] please select files to edit",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestS2LErrorHuman(t *testing.T) {
	assert.Equal(t, "file does not exist at path: /in/a.svg", NewSourceMissingError("/in/a.svg").Human())
	assert.Equal(t, "write /out/a.liquid: disk full",
		NewIOError("write", "/out/a.liquid", fmt.Errorf("disk full")).Human())
	assert.Equal(t, "plain", Human(fmt.Errorf("plain")))
	assert.Equal(t, "", Human(nil))
}

func TestS2LErrorUnwrapAndIs(t *testing.T) {
	err := NewIOError("read", "/in/a.svg", fs.ErrNotExist)

	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorIs(t, err, &S2LError{Type: ErrorTypeIO, Code: CodeIO})
	assert.NotErrorIs(t, err, &S2LError{Type: ErrorTypeIO, Code: CodeSourceMissing})

	wrapped := fmt.Errorf("converting: %w", err)
	assert.True(t, IsIO(wrapped))
	assert.Equal(t, CodeIO, GetErrorCode(wrapped))
}

func TestPredicates(t *testing.T) {
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"directory read", NewDirectoryReadError("d", nil), IsDirectoryRead},
		{"source missing", NewSourceMissingError("p"), IsSourceMissing},
		{"io", NewIOError("mkdir", "d", nil), IsIO},
		{"collision limit", NewCollisionLimitError("d", "a.liquid", 3), IsCollisionLimit},
		{"no selection", ErrNoSelection, IsNoSelection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.check(tc.err))
			assert.False(t, tc.check(errors.New("other")))
		})
	}
}

func TestWithContextAndPath(t *testing.T) {
	err := NewValidationError(CodeInvalidViewBox, "bad").
		WithContext("field", "viewbox").
		WithPath("cfg.yml")

	assert.Equal(t, "viewbox", err.Context["field"])
	assert.Equal(t, "cfg.yml", err.Path)
	assert.Equal(t, ErrorTypeValidation, err.Type)
}

func TestErrNotFound(t *testing.T) {
	err := ErrNotFound("abc")

	assert.Equal(t, CodeNotFound, GetErrorCode(err))
	assert.Contains(t, err.Error(), "abc")
}

func TestGetErrorCodeNonStructured(t *testing.T) {
	assert.Equal(t, "", GetErrorCode(errors.New("x")))
	assert.Equal(t, "", GetErrorCode(nil))
}

func TestNewErrorCollector(t *testing.T) {
	collector := NewErrorCollector()

	assert.NotNil(t, collector)
	assert.False(t, collector.HasErrors())
	assert.NoError(t, collector.Err())
}

func TestErrorCollector(t *testing.T) {
	collector := NewErrorCollector()
	collector.AddError(nil)
	collector.AddError(NewSourceMissingError("a"))
	collector.AddError(NewIOError("write", "b", nil))
	collector.AddError(NewSourceMissingError("c"))

	assert.True(t, collector.HasErrors())
	assert.Equal(t, 3, collector.Len())
	assert.Len(t, collector.GetErrorsByCode(CodeSourceMissing), 2)
	assert.Len(t, collector.GetErrorsByCode(CodeIO), 1)

	joined := collector.Err()
	require.Error(t, joined)
	assert.True(t, IsIO(joined))

	collector.Clear()
	assert.False(t, collector.HasErrors())
	assert.Empty(t, collector.GetErrors())
}

func TestPredicatesSearchJoinedErrors(t *testing.T) {
	missing := NewSourceMissingError("a")
	ioErr := NewIOError("write", "b", nil)

	tests := []struct {
		name string
		err  error
	}{
		{"joined", errors.Join(missing, ioErr)},
		{"wrapped joined", fmt.Errorf("batch: %w", errors.Join(missing, ioErr))},
		{"joined wrapped", errors.Join(missing, fmt.Errorf("file b: %w", ioErr))},
		{"cause", NewIOError("read", "c", errors.Join(errors.New("x"), missing))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsSourceMissing(tt.err))
			assert.True(t, IsIO(tt.err))
			assert.False(t, IsCollisionLimit(tt.err))
			assert.False(t, IsNoSelection(tt.err))
		})
	}

	var nilErr *S2LError
	assert.False(t, IsIO(nilErr))
	assert.False(t, IsIO(nil))
}

func TestErrorCollectorConcurrent(t *testing.T) {
	collector := NewErrorCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			collector.AddError(NewIOError("write", fmt.Sprintf("f%d", i), nil))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, collector.Len())
}
