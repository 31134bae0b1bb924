package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is the rendered form of the shared header.
type Header struct {
	Ack              string  `json:"ack"`
	Status           string  `json:"status,omitempty"`
	StatusBeaconless string  `json:"statusBeaconless,omitempty"`
	BatteryVoltage   float64 `json:"batteryVoltage"`
	MessageID        string  `json:"messageId"`
	Size             string  `json:"size"`
}

// Padding selects which side of a one-digit hex value receives the zero.
type Padding int

const (
	PadLeading Padding = iota
	PadTrailing
)

// StatusStyle selects how the status byte is rendered.
type StatusStyle int

const (
	// StatusHex renders the raw status byte as two hex digits.
	StatusHex StatusStyle = iota
	// StatusBeaconless renders bit 7 as "true" or "false".
	StatusBeaconless
)

const beaconlessMask = 0x80

// Layout describes how a decoder renders the header bytes. Decoders disagree
// on the ack padding and status field, and consumers rely on both forms.
type Layout struct {
	AckPadding Padding
	Status     StatusStyle
	Voltage    VoltageFormula
}

// Render produces the header record for the given layout.
func (h RawHeader) Render(l Layout) Header {
	out := Header{
		Ack:            HexByte(h.Ack, l.AckPadding),
		BatteryVoltage: l.Voltage.Decode(h.Voltage),
		MessageID:      HexByte(h.MessageID, PadLeading),
		Size:           HexByte(h.Size, PadLeading),
	}
	switch l.Status {
	case StatusBeaconless:
		out.StatusBeaconless = strconv.FormatBool(h.Status&beaconlessMask != 0)
	default:
		out.Status = HexByte(h.Status, PadLeading)
	}
	return out
}

// HexByte renders b as two lowercase hex digits padded on the given side.
func HexByte(b byte, p Padding) string {
	if p == PadLeading {
		return fmt.Sprintf("%02x", b)
	}
	s := strconv.FormatUint(uint64(b), 16)
	if len(s) < 2 {
		s += strings.Repeat("0", 2-len(s))
	}
	return s
}
