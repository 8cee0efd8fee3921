// Package opener hands a path to the platform's default handler, such as a
// file manager for a directory.
package opener

import (
	"github.com/skratchdot/open-golang/open"

	"github.com/conneroisu/s2l/internal/errors"
)

// Opener opens a path with whatever the desktop associates with it.
type Opener interface {
	Open(path string) error
}

// Func adapts a plain function to the Opener interface.
type Func func(path string) error

// Open calls f(path).
func (f Func) Open(path string) error {
	return f(path)
}

// Default returns the system opener (xdg-open, open, or start).
func Default() Opener {
	return Func(run)
}

func run(path string) error {
	if err := open.Run(path); err != nil {
		return errors.NewIOError("open", path, err)
	}
	return nil
}
