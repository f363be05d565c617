package usecase

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText turns fetched bytes into log text.
//
// A UTF-8 byte order mark is dropped and UTF-16 content with a BOM is
// converted. Invalid UTF-8 sequences become U+FFFD, so one bad byte in a
// referer or user agent costs at most the line it sits on.
func DecodeText(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return strings.ToValidUTF8(string(decoded), "\uFFFD"), nil
}
