// Package textio reads decoder artifact files, which are written by a C tool
// and are not guaranteed to be UTF-8.
package textio

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns the file content as valid UTF-8. A BOM is stripped; content
// that is not valid UTF-8 is re-read as Latin-1, which accepts any byte.
func Decode(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 decoding cannot fail on arbitrary bytes; keep the raw
		// content if it somehow does.
		return string(data)
	}
	return string(decoded)
}

// ReadFile reads path and decodes it per Decode.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data), nil
}
