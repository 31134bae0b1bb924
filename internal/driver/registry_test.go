package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/d21d3q/ctsensor/internal/frame"
)

type stubDriver struct{ name string }

func (d stubDriver) Name() string { return d.name }

func (stubDriver) Decode(context.Context, []byte) (frame.Payload, error) {
	return frame.Payload{}, nil
}

func TestRegisterAndSelect(t *testing.T) {
	Register(Detection{TypeID: 0xee}, stubDriver{name: "stub"})

	drv, err := Lookup("stub")
	if err != nil || drv.Name() != "stub" {
		t.Fatalf("Lookup: %v %v", drv, err)
	}
	drv, err = Detect([]byte{0, 0, 0, 0xee})
	if err != nil || drv.Name() != "stub" {
		t.Fatalf("Detect: %v %v", drv, err)
	}
	drv, err = Select([]byte{0, 0, 0, 0xff}, "stub")
	if err != nil || drv.Name() != "stub" {
		t.Fatalf("explicit name must win over type byte: %v %v", drv, err)
	}

	found := false
	for _, n := range Names() {
		if n == "stub" {
			found = true
		}
	}
	if !found {
		t.Fatalf("stub missing from %v", Names())
	}

	assertPanics(t, func() { Register(Detection{TypeID: 0xed}, stubDriver{name: "stub"}) })
	assertPanics(t, func() { Register(Detection{TypeID: 0xee}, stubDriver{name: "other"}) })
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); !errors.Is(err, ErrUnknownDecoder) {
		t.Fatalf("expected ErrUnknownDecoder, got %v", err)
	}
}

func TestDetectUnknownAndShort(t *testing.T) {
	if _, err := Detect([]byte{0, 0, 0, 0x99, 0}); !errors.Is(err, ErrUnknownMessageType) {
		t.Fatalf("expected ErrUnknownMessageType, got %v", err)
	}
	if _, err := Detect([]byte{0, 0, 0}); !errors.Is(err, frame.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func assertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
}
