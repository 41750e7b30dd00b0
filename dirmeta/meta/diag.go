package meta

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// Reporter is the sink for absorbed I/O failures. Every failure is written to
// the stream as "<path>: <message>." — that exact format is part of the
// observable contract — and mirrored to the structured logger.
type Reporter struct {
	out    io.Writer
	logger *slog.Logger
}

// NewReporter creates a reporter writing to out, defaulting to stderr.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{out: out, logger: slog.Default()}
}

// WithLogger sets the structured logger the diagnostics are mirrored to.
func (r *Reporter) WithLogger(logger *slog.Logger) *Reporter {
	r.logger = logger
	return r
}

// Report emits one diagnostic line for an absorbed failure.
func (r *Reporter) Report(path string, err error) {
	fmt.Fprintf(r.out, "%s: %s.\n", path, systemMessage(err))
	r.logger.Debug("absorbed I/O failure",
		"path", path,
		"error", err)
}

// systemMessage strips the wrapping fs.PathError so the path is not printed
// twice on the diagnostic line.
func systemMessage(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
