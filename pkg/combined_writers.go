package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all of its writers, e.g. stdout and a rotating log file.
// A failing writer does not stop the others; all errors are combined.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	cw.Writers = append(cw.Writers, writers...)
	return cw
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range cw.Writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
		}
	}
	return len(p), err
}
