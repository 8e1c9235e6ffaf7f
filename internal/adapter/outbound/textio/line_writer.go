package textio

import (
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// LineWriter writes already-terminated lines to a target stream,
// encoding through the given encoding. Close flushes any buffered
// transformer state; until then the target is not fully materialized.
type LineWriter struct {
	out io.WriteCloser
	tw  *transform.Writer
}

// NewLineWriter wraps out in an encoding line writer. A nil encoding
// writes the stream as-is (UTF-8).
func NewLineWriter(out io.WriteCloser, enc encoding.Encoding) *LineWriter {
	lw := &LineWriter{out: out}
	if enc != nil {
		lw.tw = transform.NewWriter(out, enc.NewEncoder())
	}
	return lw
}

// WriteString writes s verbatim, terminator included.
func (lw *LineWriter) WriteString(s string) error {
	var err error
	if lw.tw != nil {
		_, err = lw.tw.Write([]byte(s))
	} else {
		_, err = io.WriteString(lw.out, s)
	}
	return err
}

// Close flushes the encoder and closes the underlying stream. The first
// failure wins but the stream is closed on every path.
func (lw *LineWriter) Close() error {
	var flushErr error
	if lw.tw != nil {
		flushErr = lw.tw.Close()
	}
	closeErr := lw.out.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
