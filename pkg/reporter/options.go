package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format Format

	// Color controls colorized output: "auto" (default), "always" or "never".
	Color string

	// Quiet drops warnings and reports errors only.
	Quiet bool

	// WorkingDir makes displayed paths relative. Empty keeps them as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatStylish,
		Color:  "auto",
	}
}
