package frame

import "testing"

func TestClampedVoltageRange(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		got := VoltageClamped.Decode(b)
		if got < 2.5 || got > 4.25 {
			t.Fatalf("byte %#x: voltage %.2f out of range", b, got)
		}
		want := float64(int(b&0x3F)*4+250) / 100
		if want <= 4.25 && got != want {
			t.Fatalf("byte %#x: got %v want %v", b, got, want)
		}
	}
}

func TestClampedVoltageEdges(t *testing.T) {
	if got := VoltageClamped.Decode(0x00); got != 2.5 {
		t.Fatalf("0x00: got %v", got)
	}
	if got := VoltageClamped.Decode(0x3F); got != 4.25 {
		t.Fatalf("0x3F: got %v", got)
	}
	// upper two bits are status flags
	if got := VoltageClamped.Decode(0xC1); got != VoltageClamped.Decode(0x01) {
		t.Fatalf("status bits leaked into voltage: %v", got)
	}
}

func TestLevelSensorVoltage(t *testing.T) {
	cases := map[byte]float64{
		0x00: 0,
		0x7d: 6.4,
		0xff: 13.056,
	}
	for b, want := range cases {
		if got := VoltageLevelSensor.Decode(b); got != want {
			t.Errorf("byte %#x: got %v want %v", b, got, want)
		}
	}
}

func TestUnknownVoltageFormulaPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	VoltageFormula(99).Decode(0)
}
