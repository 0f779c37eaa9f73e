package utils

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeSource turns raw file bytes into text. A UTF-8 or UTF-16 (LE/BE)
// byte order mark selects the encoding and is stripped; without one the
// bytes are taken as UTF-8.
func DecodeSource(raw []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", fmt.Errorf("decode source: %w", err)
	}
	// CRLF line endings are normalised to LF.
	return string(bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))), nil
}

// ReadSource reads and decodes an assembly source file.
func ReadSource(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return DecodeSource(raw)
}
