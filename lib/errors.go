package library

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

const (
	LibraryCUDA = "cuda"
	LibraryNVML = "nvml"
)

// ErrNotSupported is returned by a vendor boundary that was not compiled into
// this binary.
var ErrNotSupported = errors.New("not supported by this build")

// DriverError is a non-success status returned by a vendor driver call. It
// carries the name of the failing call and the source location it was made
// from.
type DriverError struct {
	Library     string
	Op          string
	Code        int
	Description string
	File        string
	Line        int
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("%s in %s at %s:%d", e.Description, e.Op, e.File, e.Line)
}

// newDriverError records the location skip frames above its caller.
func newDriverError(skip int, library, op string, code int, description string) *DriverError {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		file = "???"
		line = 0
	}
	return &DriverError{
		Library:     library,
		Op:          op,
		Code:        code,
		Description: description,
		File:        filepath.Base(file),
		Line:        line,
	}
}

// AsDriverError unwraps err to a *DriverError.
func AsDriverError(err error) (*DriverError, bool) {
	var de *DriverError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
