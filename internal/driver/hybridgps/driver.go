package hybridgps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/d21d3q/ctsensor/internal/driver"
	"github.com/d21d3q/ctsensor/internal/frame"
)

// ErrGPS is returned when the device flagged a GPS fix failure.
var ErrGPS = errors.New("gps error")

const (
	typeID = 0x0a

	satellitesIndex = 5
	towIndex        = 25
	infoIndex       = 29

	infoGPSError = 0x80
	infoTOWSet   = 0x40
)

var layout = frame.Layout{
	AckPadding: frame.PadTrailing,
	Status:     frame.StatusBeaconless,
	Voltage:    frame.VoltageClamped,
}

func init() {
	driver.Register(driver.Detection{TypeID: typeID}, Driver{})
}

// Body carries the satellites seen by the beacon. TOW is nil when the device
// did not report a time of week.
type Body struct {
	Satellites []Satellite `json:"satellites"`
	TOW        *string     `json:"tow,omitempty"`
}

// Kind implements frame.Body.
func (Body) Kind() frame.Kind { return frame.KindHybridGPS }

// Driver decodes hybrid GPS beacon messages.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "HGPS" }

// Decode parses the header, checks the info byte, then the satellite table.
// A set GPS error flag fails the decode before the body is looked at.
func (Driver) Decode(_ context.Context, payload []byte) (frame.Payload, error) {
	r := frame.NewReader(payload)
	raw, err := frame.ParseHeader(r)
	if err != nil {
		return frame.Payload{}, err
	}
	info, err := r.Uint8(infoIndex)
	if err != nil {
		return frame.Payload{}, fmt.Errorf("info byte: %w", err)
	}
	if info&infoGPSError != 0 {
		return frame.Payload{}, fmt.Errorf("%w: info byte 0x%02x", ErrGPS, info)
	}
	region, err := r.Slice(satellitesIndex, infoIndex)
	if err != nil {
		return frame.Payload{}, err
	}
	sats, err := DecodeSatellites(region)
	if err != nil {
		return frame.Payload{}, err
	}
	body := Body{Satellites: sats}
	if info&infoTOWSet != 0 {
		tow, err := r.Uint32LE(towIndex)
		if err != nil {
			return frame.Payload{}, fmt.Errorf("tow: %w", err)
		}
		s := strconv.FormatUint(uint64(tow), 16)
		body.TOW = &s
	}
	return frame.Payload{Header: raw.Render(layout), Body: body}, nil
}
