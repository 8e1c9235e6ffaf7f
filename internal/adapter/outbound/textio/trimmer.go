package textio

import (
	"bytes"
	"os"

	"golang.org/x/text/encoding"
)

// TrimTrailingTerminator removes one trailing line-ending sequence (LF,
// or CR LF) from the end of the file at path, if present. The
// comparison uses the encoded byte form of the terminator under enc, so
// multi-byte encoded content is never cut mid-character. An empty file
// or one without a trailing terminator is left untouched.
func TrimTrailingTerminator(path string, enc encoding.Encoding) error {
	crlf, err := EncodedTerminator(enc, "\r\n")
	if err != nil {
		return err
	}
	lf, err := EncodedTerminator(enc, "\n")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	size := info.Size()

	tailLen := int64(len(crlf))
	if int64(len(lf)) > tailLen {
		tailLen = int64(len(lf))
	}
	if tailLen > size {
		tailLen = size
	}
	if tailLen == 0 {
		return nil
	}

	tail := make([]byte, tailLen)
	if _, err := f.ReadAt(tail, size-tailLen); err != nil {
		return err
	}

	switch {
	case bytes.HasSuffix(tail, crlf):
		return f.Truncate(size - int64(len(crlf)))
	case bytes.HasSuffix(tail, lf):
		return f.Truncate(size - int64(len(lf)))
	default:
		return nil
	}
}
