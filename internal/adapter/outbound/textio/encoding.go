// Package textio provides encoding-aware line-oriented file access:
// resolving IANA encoding names, reading and writing terminator-preserving
// lines through x/text transforms, and trimming a trailing line terminator
// from a written file without corrupting multi-byte encodings.
package textio

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"splitfile/internal/domain/errors/domain"
)

// ResolveEncoding maps an IANA encoding name to its x/text encoding. The
// empty name selects the platform default, which is plain UTF-8
// pass-through, reported as a nil encoding.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEncoding, name)
	}
	return enc, nil
}

// EncodedTerminator returns the byte sequence the given terminator
// characters occupy under enc. A nil encoding means UTF-8 pass-through.
func EncodedTerminator(enc encoding.Encoding, term string) ([]byte, error) {
	if enc == nil {
		return []byte(term), nil
	}
	// Encode the terminator behind a leading character and strip that
	// character's encoding, so stateful prefixes such as a BOM cancel out.
	plain, err := enc.NewEncoder().Bytes([]byte("a"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	terminated, err := enc.NewEncoder().Bytes([]byte("a" + term))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	if !bytes.HasPrefix(terminated, plain) {
		return nil, fmt.Errorf("%w: terminator %q has no stable encoded form", domain.ErrEncoding, term)
	}
	return terminated[len(plain):], nil
}
