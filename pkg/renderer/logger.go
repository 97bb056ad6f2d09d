package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to a diagnostic stream
type DefaultLogger struct {
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a logger that writes to out
func NewDefaultLogger(out io.Writer) core.Logger {
	return &DefaultLogger{out: out}
}
