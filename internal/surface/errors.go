package surface

import (
	"errors"
	"fmt"
)

// ErrNoCanvas is returned by operations that need the raster before the
// first Resize.
var ErrNoCanvas = errors.New("canvas not allocated")

// ExportError reports which step of an export failed.
type ExportError struct {
	Op   string // "snapshot", "open", "encode" or "close"
	Name string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("export: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("export %s: %s: %v", e.Name, e.Op, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
