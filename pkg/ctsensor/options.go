package ctsensor

import (
	"errors"

	internalopts "github.com/d21d3q/ctsensor/internal/options"
)

// ErrInvalidEncoding is returned when a payload is not valid base64.
var ErrInvalidEncoding = errors.New("invalid payload encoding")

// Format names an output encoding accepted by Result.Marshal.
type Format = internalopts.Format

const (
	FormatJSON = internalopts.FormatJSON
	FormatCBOR = internalopts.FormatCBOR
)

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// Decoder forces a decoder by name. Empty selects by the type byte.
	Decoder string
}

func (opts DecodeOptions) decoderName() (string, error) {
	return internalopts.ParseDecoderName(opts.Decoder)
}

// ParseFormat validates a format name; empty means JSON.
func ParseFormat(s string) (Format, error) {
	return internalopts.ParseFormat(s)
}
