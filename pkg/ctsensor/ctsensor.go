package ctsensor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/d21d3q/ctsensor/internal/driver"
	"github.com/d21d3q/ctsensor/internal/driver/hybridgps"
	"github.com/d21d3q/ctsensor/internal/driver/levelsensor"
	"github.com/d21d3q/ctsensor/internal/driver/pushbutton"
	"github.com/d21d3q/ctsensor/internal/frame"
	"github.com/d21d3q/ctsensor/internal/options"
)

// Errors reported by Decode. Use errors.Is to match them.
var (
	ErrOutOfRange         = frame.ErrOutOfRange
	ErrTooManySatellites  = hybridgps.ErrTooManySatellites
	ErrGPS                = hybridgps.ErrGPS
	ErrUnknownDecoder     = driver.ErrUnknownDecoder
	ErrUnknownMessageType = driver.ErrUnknownMessageType
)

// Record types.
type (
	Payload          = frame.Payload
	Header           = frame.Header
	Body             = frame.Body
	Kind             = frame.Kind
	PushButtonBody   = pushbutton.Body
	PushButtonCounts = pushbutton.Counts
	LevelSensorEvent = levelsensor.Event
	HybridGPSBody    = hybridgps.Body
	Satellite        = hybridgps.Satellite
)

const (
	KindPushButton  = frame.KindPushButton
	KindLevelSensor = frame.KindLevelSensor
	KindHybridGPS   = frame.KindHybridGPS
)

// Result captures the outcome of a decode call.
type Result struct {
	Decoder   string
	RawBase64 string
	ByteCount int
	Payload   Payload
}

// String renders the decoded record as compact JSON.
func (r Result) String() string {
	data, err := json.Marshal(r.Payload)
	if err != nil {
		return fmt.Sprintf("decoder: %s bytes:%d (marshal error: %v)", r.Decoder, r.ByteCount, err)
	}
	return string(data)
}

// DecoderNames lists the decoders that may be passed in DecodeOptions.
func DecoderNames() []string {
	return driver.Names()
}

// Decode selects a decoder and decodes the raw payload. The payload is only
// read and may be reused by the caller afterwards.
func Decode(ctx context.Context, data []byte, opts DecodeOptions) (Result, error) {
	name, err := opts.decoderName()
	if err != nil {
		return Result{}, err
	}
	drv, err := driver.Select(data, name)
	if err != nil {
		return Result{}, err
	}
	payload, err := drv.Decode(ctx, data)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", drv.Name(), err)
	}
	return Result{
		Decoder:   drv.Name(),
		ByteCount: len(data),
		Payload:   payload,
	}, nil
}

// DecodeBase64 decodes the base64 text into bytes and then calls Decode.
func DecodeBase64(ctx context.Context, raw string, opts DecodeOptions) (Result, error) {
	clean := options.StripWhitespace(raw)
	data, err := decodeBase64(clean)
	if err != nil {
		return Result{}, err
	}
	result, err := Decode(ctx, data, opts)
	if err != nil {
		return Result{}, err
	}
	result.RawBase64 = clean
	return result, nil
}

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// decodeBase64 accepts standard and URL alphabets with or without padding.
func decodeBase64(input string) ([]byte, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidEncoding)
	}
	var firstErr error
	for _, enc := range base64Encodings {
		data, err := enc.DecodeString(input)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, firstErr)
}
