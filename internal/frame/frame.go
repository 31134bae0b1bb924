package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a field extends past the end of the payload.
var ErrOutOfRange = errors.New("read out of range")

// Offsets of the header shared by every sensor message.
const (
	AckIndex            = 0
	StatusIndex         = 1
	BatteryVoltageIndex = 2
	MessageIDIndex      = 3
	SizeIndex           = 4

	// HeaderLen is the number of bytes occupied by the header.
	HeaderLen = 5
)

// Reader is a bounds-checked view over a raw payload. It never mutates or
// retains the underlying slice beyond the lifetime of the value.
type Reader struct {
	buf []byte
}

// NewReader wraps the payload for field extraction.
func NewReader(payload []byte) Reader {
	return Reader{buf: payload}
}

// Len returns the payload length.
func (r Reader) Len() int { return len(r.buf) }

// Uint8 reads the byte at off.
func (r Reader) Uint8(off int) (byte, error) {
	b, err := r.span(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16LE reads a little-endian uint16 at off.
func (r Reader) Uint16LE(off int) (uint16, error) {
	b, err := r.span(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Int16LE reads a little-endian two's complement int16 at off.
func (r Reader) Int16LE(off int) (int16, error) {
	v, err := r.Uint16LE(off)
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}

// Uint32LE reads a little-endian uint32 at off.
func (r Reader) Uint32LE(off int) (uint32, error) {
	b, err := r.span(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Slice returns a sub-reader over [start, end).
func (r Reader) Slice(start, end int) (Reader, error) {
	if end < start {
		return Reader{}, fmt.Errorf("%w: invalid range [%d:%d]", ErrOutOfRange, start, end)
	}
	b, err := r.span(start, end-start)
	if err != nil {
		return Reader{}, err
	}
	return Reader{buf: b}, nil
}

func (r Reader) span(off, width int) ([]byte, error) {
	if off < 0 || off+width > len(r.buf) {
		return nil, fmt.Errorf("%w: %d byte(s) at offset %d, payload has %d", ErrOutOfRange, width, off, len(r.buf))
	}
	return r.buf[off : off+width : off+width], nil
}

// RawHeader holds the five header bytes before any rendering.
type RawHeader struct {
	Ack       byte
	Status    byte
	Voltage   byte
	MessageID byte
	Size      byte
}

// ParseHeader extracts the shared header from bytes 0..4.
func ParseHeader(r Reader) (RawHeader, error) {
	var h RawHeader
	fields := []struct {
		off int
		dst *byte
	}{
		{AckIndex, &h.Ack},
		{StatusIndex, &h.Status},
		{BatteryVoltageIndex, &h.Voltage},
		{MessageIDIndex, &h.MessageID},
		{SizeIndex, &h.Size},
	}
	for _, f := range fields {
		v, err := r.Uint8(f.off)
		if err != nil {
			return RawHeader{}, fmt.Errorf("header: %w", err)
		}
		*f.dst = v
	}
	return h, nil
}
