package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrEngine         = errors.New("lint engine failed")
	ErrLintFailed     = errors.New("lint failed")
	ErrNoChangedFiles = errors.New("no changed ruby files")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidConfig ErrorKind = "invalid_config"
	KindEngine        ErrorKind = "engine"
	KindIO            ErrorKind = "io"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel for its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindEngine:
		return target == ErrEngine
	case KindInvalidConfig:
		return target == ErrInvalidConfig
	}
	return false
}

// IsKind helps callers classify errors without depending on adapter packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
