package options

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/d21d3q/ctsensor/internal/driver"
)

// Format names an output encoding for decoded records.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseDecoderName validates an explicit decoder selection. An empty input
// means "detect from the payload" and is returned as-is.
func ParseDecoderName(input string) (string, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return "", nil
	}
	if _, err := driver.Lookup(name); err != nil {
		return "", fmt.Errorf("%w (choose one of %s)", err, strings.Join(driver.Names(), ", "))
	}
	return name, nil
}

// ParseFormat validates an output format, defaulting to JSON.
func ParseFormat(input string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(input))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (choose json or cbor)", input)
	}
}

// StripWhitespace removes all whitespace, which transports tend to insert
// into long base64 strings.
func StripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
