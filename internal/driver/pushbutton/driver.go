package pushbutton

import (
	"context"
	"fmt"

	"github.com/d21d3q/ctsensor/internal/driver"
	"github.com/d21d3q/ctsensor/internal/frame"
)

const (
	typeID = 0x12

	buttonStartIndex = frame.HeaderLen
	buttonGroupWidth = 4

	singlePressIndex = 0
	doublePressIndex = 1
	longPressIndex   = 2
	stuckFlagIndex   = 3
)

var layout = frame.Layout{
	AckPadding: frame.PadTrailing,
	Status:     frame.StatusHex,
	Voltage:    frame.VoltageClamped,
}

func init() {
	driver.Register(driver.Detection{TypeID: typeID}, Driver{})
}

// Counts holds the press counters reported for one button.
type Counts struct {
	ButtonID         int   `json:"buttonId"`
	SinglePressCount uint8 `json:"singlePressCount"`
	DoublePressCount uint8 `json:"doublePressCount"`
	LongPressCount   uint8 `json:"longPressCount"`
	Stuck            bool  `json:"stuck"`
}

// Body lists button counters in payload order.
type Body []Counts

// Kind implements frame.Body.
func (Body) Kind() frame.Kind { return frame.KindPushButton }

// Driver decodes push-button panel messages.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "pushButton" }

// Decode parses the header and one 4-byte group per button until the payload
// is exhausted. A trailing partial group is an error.
func (Driver) Decode(_ context.Context, payload []byte) (frame.Payload, error) {
	r := frame.NewReader(payload)
	raw, err := frame.ParseHeader(r)
	if err != nil {
		return frame.Payload{}, err
	}
	buttons := make(Body, 0, (r.Len()-buttonStartIndex+buttonGroupWidth-1)/buttonGroupWidth)
	for off := buttonStartIndex; off < r.Len(); off += buttonGroupWidth {
		counts, err := parseGroup(r, off, len(buttons))
		if err != nil {
			return frame.Payload{}, err
		}
		buttons = append(buttons, counts)
	}
	return frame.Payload{Header: raw.Render(layout), Body: buttons}, nil
}

func parseGroup(r frame.Reader, off, id int) (Counts, error) {
	group, err := r.Slice(off, off+buttonGroupWidth)
	if err != nil {
		return Counts{}, fmt.Errorf("button %d: %w", id, err)
	}
	// Bounds were checked by Slice.
	single, _ := group.Uint8(singlePressIndex)
	double, _ := group.Uint8(doublePressIndex)
	long, _ := group.Uint8(longPressIndex)
	stuck, _ := group.Uint8(stuckFlagIndex)
	return Counts{
		ButtonID:         id,
		SinglePressCount: single,
		DoublePressCount: double,
		LongPressCount:   long,
		Stuck:            stuck == 1,
	}, nil
}
