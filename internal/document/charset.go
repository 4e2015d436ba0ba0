package document

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the character encoding of templates unless configured otherwise.
const DefaultEncoding = "utf-8"

// IsUTF8 reports whether name denotes UTF-8 (the empty name included).
func IsUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	default:
		return false
	}
}

// LookupEncoding resolves a WHATWG encoding label such as "gb18030" or "gbk".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Decode converts src from the named encoding to UTF-8.
// UTF-8 input is returned unchanged, byte for byte.
func Decode(src []byte, name string) ([]byte, error) {
	if IsUTF8(name) {
		return src, nil
	}
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewDecoder().Bytes(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", name, err)
	}
	return out, nil
}

// Encode converts UTF-8 src to the named encoding.
func Encode(src []byte, name string) ([]byte, error) {
	if IsUTF8(name) {
		return src, nil
	}
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes(src)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s document: %w", name, err)
	}
	return out, nil
}
