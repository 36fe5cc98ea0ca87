package compose

import (
	"errors"
	"fmt"
)

// ErrBuild matches every error returned by Build.
var ErrBuild = errors.New("compose index build failed")

// BuildError reports that a layout could not be read.
type BuildError struct {
	Layout string
	Err    error
}

func (e *BuildError) Error() string {
	if e.Layout == "" {
		return fmt.Sprintf("build compose index: %v", e.Err)
	}
	return fmt.Sprintf("build compose index for %q: %v", e.Layout, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func (e *BuildError) Is(target error) bool { return target == ErrBuild }

// Reasons a layout cannot be read.
var (
	ErrNilSource    = errors.New("no layout source")
	ErrKeyRange     = errors.New("invalid key range")
	ErrNoNamedKeys  = errors.New("layout has no named keys")
	errSourcePanics = errors.New("layout source panicked")
)
