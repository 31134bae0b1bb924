package levelsensor

import (
	"context"
	"fmt"

	"github.com/d21d3q/ctsensor/internal/driver"
	"github.com/d21d3q/ctsensor/internal/frame"
)

const (
	typeID = 0x2a

	occupancyIndex   = 5
	dataStatusIndex  = 6
	rangeIndex       = 7
	signalRateIndex  = 9
	ambientRateIndex = 11
	sigmaIndex       = 13
	pixelCountIndex  = 15
)

var layout = frame.Layout{
	AckPadding: frame.PadLeading,
	Status:     frame.StatusHex,
	Voltage:    frame.VoltageLevelSensor,
}

func init() {
	driver.Register(driver.Detection{TypeID: typeID}, Driver{})
}

// Event is a single level sensor measurement. The 16-bit readings are kept as
// zero padded decimal strings.
type Event struct {
	Occupancy   uint8  `json:"occupancy"`
	DataStatus  uint8  `json:"dataStatus"`
	Range       string `json:"range"`
	SignalRate  string `json:"signalRate"`
	AmbientRate string `json:"ambientRate"`
	Sigma       string `json:"sigma"`
	PixelCount  uint8  `json:"pixelCount"`
}

// Kind implements frame.Body.
func (Event) Kind() frame.Kind { return frame.KindLevelSensor }

// Driver decodes level sensor messages.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "levelSensor" }

// Decode parses the fixed 16-byte level sensor layout.
func (Driver) Decode(_ context.Context, payload []byte) (frame.Payload, error) {
	r := frame.NewReader(payload)
	raw, err := frame.ParseHeader(r)
	if err != nil {
		return frame.Payload{}, err
	}
	var ev Event
	bytes := []struct {
		off int
		dst *uint8
	}{
		{occupancyIndex, &ev.Occupancy},
		{dataStatusIndex, &ev.DataStatus},
		{pixelCountIndex, &ev.PixelCount},
	}
	for _, f := range bytes {
		if *f.dst, err = r.Uint8(f.off); err != nil {
			return frame.Payload{}, err
		}
	}
	readings := []struct {
		name string
		off  int
		dst  *string
	}{
		{"range", rangeIndex, &ev.Range},
		{"signalRate", signalRateIndex, &ev.SignalRate},
		{"ambientRate", ambientRateIndex, &ev.AmbientRate},
		{"sigma", sigmaIndex, &ev.Sigma},
	}
	for _, f := range readings {
		v, err := r.Int16LE(f.off)
		if err != nil {
			return frame.Payload{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = formatReading(v)
	}
	return frame.Payload{Header: raw.Render(layout), Body: ev}, nil
}

// formatReading pads to four digits; the sign, when present, stays in front
// and counts toward the width.
func formatReading(v int16) string {
	return fmt.Sprintf("%04d", v)
}
