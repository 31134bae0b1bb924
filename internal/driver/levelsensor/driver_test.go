package levelsensor

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/d21d3q/ctsensor/internal/frame"
)

func TestDecode(t *testing.T) {
	raw := mustHex(t, "1a007d2a0b"+"0100"+"ffff"+"1027"+"e803"+"2c01"+"09")
	p, err := (Driver{}).Decode(context.Background(), raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	wantHeader := frame.Header{Ack: "1a", Status: "00", BatteryVoltage: 6.4, MessageID: "2a", Size: "0b"}
	if p.Header != wantHeader {
		t.Fatalf("header mismatch: got %+v want %+v", p.Header, wantHeader)
	}
	want := Event{
		Occupancy:   1,
		DataStatus:  0,
		Range:       "-001",
		SignalRate:  "10000",
		AmbientRate: "1000",
		Sigma:       "0300",
		PixelCount:  9,
	}
	if got := p.Body.(Event); got != want {
		t.Fatalf("body mismatch: got %+v want %+v", got, want)
	}
}

func TestAckLeadingPadding(t *testing.T) {
	raw := mustHex(t, "05000f2a0b0000000000000000000000")
	p, err := (Driver{}).Decode(context.Background(), raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Header.Ack != "05" {
		t.Fatalf("expected leading padded ack, got %q", p.Header.Ack)
	}
	if p.Header.StatusBeaconless != "" {
		t.Fatalf("level sensor must not render beaconless status")
	}
}

func TestDecodeShort(t *testing.T) {
	raw := mustHex(t, "1a007d2a0b0100ffff1027e8032c01")
	if _, err := (Driver{}).Decode(context.Background(), raw); !errors.Is(err, frame.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for 15-byte payload, got %v", err)
	}
}

func TestFormatReading(t *testing.T) {
	cases := map[int16]string{
		0:      "0000",
		7:      "0007",
		-1:     "-001",
		-42:    "-042",
		1234:   "1234",
		-1234:  "-1234",
		32767:  "32767",
		-32768: "-32768",
	}
	for in, want := range cases {
		if got := formatReading(in); got != want {
			t.Errorf("formatReading(%d) = %q, want %q", in, got, want)
		}
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex decode: %v", err)
	}
	return b
}
