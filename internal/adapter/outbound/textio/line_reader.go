package textio

import (
	"bufio"
	"errors"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// LineReader reads a text stream line by line, decoding through the
// given encoding. Lines are returned with their terminator intact; the
// final line of a stream may lack one.
type LineReader struct {
	br *bufio.Reader
}

// NewLineReader wraps r in a decoding line reader. A nil encoding reads
// the stream as-is (UTF-8). Callers that rewind the underlying stream
// must construct a fresh LineReader, so decoder state never carries
// over between passes.
func NewLineReader(r io.Reader, enc encoding.Encoding) *LineReader {
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	return &LineReader{br: bufio.NewReader(r)}
}

// ReadLine returns the next line including its terminator. It returns
// io.EOF once the stream is exhausted; a final unterminated line is
// returned with a nil error first.
func (lr *LineReader) ReadLine() (string, error) {
	line, err := lr.br.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", io.EOF
		}
		return line, nil
	}
	return line, err
}

// More reports whether at least one byte of content remains.
func (lr *LineReader) More() (bool, error) {
	if _, err := lr.br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CountLines consumes the remainder of the stream and returns the number
// of lines it held. A final unterminated line counts.
func (lr *LineReader) CountLines() (int, error) {
	count := 0
	for {
		_, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		count++
	}
}
