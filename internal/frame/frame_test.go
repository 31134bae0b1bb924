package frame

import (
	"encoding/hex"
	"errors"
	"testing"
)

func TestParseHeader(t *testing.T) {
	raw := decodeHex(t, "05400a120c")
	h, err := ParseHeader(NewReader(raw))
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Ack != 0x05 || h.Status != 0x40 || h.Voltage != 0x0a || h.MessageID != 0x12 || h.Size != 0x0c {
		t.Fatalf("unexpected header %+v", h)
	}
}

func TestParseHeaderShort(t *testing.T) {
	_, err := ParseHeader(NewReader(decodeHex(t, "05400a12")))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestReaderLittleEndian(t *testing.T) {
	r := NewReader(decodeHex(t, "ffff3412785634120a"))
	i16, err := r.Int16LE(0)
	if err != nil || i16 != -1 {
		t.Fatalf("Int16LE: %d %v", i16, err)
	}
	u16, err := r.Uint16LE(2)
	if err != nil || u16 != 0x1234 {
		t.Fatalf("Uint16LE: %04x %v", u16, err)
	}
	u32, err := r.Uint32LE(4)
	if err != nil || u32 != 0x12345678 {
		t.Fatalf("Uint32LE: %08x %v", u32, err)
	}
	if _, err := r.Uint32LE(6); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := r.Uint8(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for negative offset, got %v", err)
	}
}

func TestReaderSlice(t *testing.T) {
	r := NewReader(decodeHex(t, "0102030405"))
	sub, err := r.Slice(1, 4)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if sub.Len() != 3 {
		t.Fatalf("unexpected len %d", sub.Len())
	}
	if b, _ := sub.Uint8(0); b != 0x02 {
		t.Fatalf("unexpected first byte %02x", b)
	}
	if _, err := sub.Uint8(3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("sub-reader must not see past its end, got %v", err)
	}
	if _, err := r.Slice(3, 9); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestRenderLayouts(t *testing.T) {
	h := RawHeader{Ack: 0x05, Status: 0x81, Voltage: 0x00, MessageID: 0x0a, Size: 0x19}

	plain := h.Render(Layout{AckPadding: PadLeading, Status: StatusHex, Voltage: VoltageClamped})
	if plain.Ack != "05" || plain.Status != "81" || plain.StatusBeaconless != "" {
		t.Fatalf("unexpected leading/hex render %+v", plain)
	}
	if plain.MessageID != "0a" || plain.Size != "19" || plain.BatteryVoltage != 2.5 {
		t.Fatalf("unexpected render %+v", plain)
	}

	gps := h.Render(Layout{AckPadding: PadTrailing, Status: StatusBeaconless, Voltage: VoltageClamped})
	// Trailing-zero ack padding is what deployed consumers expect.
	if gps.Ack != "50" {
		t.Fatalf("expected trailing padded ack, got %q", gps.Ack)
	}
	if gps.Status != "" || gps.StatusBeaconless != "true" {
		t.Fatalf("unexpected beaconless render %+v", gps)
	}
}

func TestHexByte(t *testing.T) {
	cases := []struct {
		in   byte
		pad  Padding
		want string
	}{
		{0x00, PadLeading, "00"},
		{0x00, PadTrailing, "00"},
		{0x0f, PadLeading, "0f"},
		{0x0f, PadTrailing, "f0"},
		{0xab, PadLeading, "ab"},
		{0xab, PadTrailing, "ab"},
	}
	for _, tc := range cases {
		if got := HexByte(tc.in, tc.pad); got != tc.want {
			t.Errorf("HexByte(%#x, %d) = %q, want %q", tc.in, tc.pad, got, tc.want)
		}
	}
}

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex decode: %v", err)
	}
	return b
}
