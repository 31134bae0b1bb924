package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/d21d3q/ctsensor/internal/frame"
)

var (
	ErrUnknownDecoder     = errors.New("unknown decoder")
	ErrUnknownMessageType = errors.New("unknown message type")
)

// TypeIDIndex is the payload offset of the message type byte. It coincides
// with the message id header field.
const TypeIDIndex = frame.MessageIDIndex

// Detection contains the information required to recognise a payload.
type Detection struct {
	TypeID byte
}

// Driver decodes payloads of one message type.
type Driver interface {
	Name() string
	Decode(context.Context, []byte) (frame.Payload, error)
}

// The tables are filled by init functions and only read afterwards, so
// lookups need no locking.
var (
	byName = map[string]Driver{}
	byType = map[byte]Driver{}
)

// Register stores a driver under its name and type id. It is meant to be
// called from package init functions and panics on duplicates.
func Register(det Detection, drv Driver) {
	name := drv.Name()
	if _, dup := byName[name]; dup {
		panic(fmt.Sprintf("driver: %q registered twice", name))
	}
	if prev, dup := byType[det.TypeID]; dup {
		panic(fmt.Sprintf("driver: type 0x%02x claimed by %q and %q", det.TypeID, prev.Name(), name))
	}
	byName[name] = drv
	byType[det.TypeID] = drv
}

// Lookup returns the driver registered under name.
func Lookup(name string) (Driver, error) {
	drv, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDecoder, name)
	}
	return drv, nil
}

// Detect selects a driver from the type byte embedded in the payload.
func Detect(payload []byte) (Driver, error) {
	id, err := frame.NewReader(payload).Uint8(TypeIDIndex)
	if err != nil {
		return nil, fmt.Errorf("type id: %w", err)
	}
	drv, ok := byType[id]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownMessageType, id)
	}
	return drv, nil
}

// Select uses the named driver when name is set and falls back to Detect.
func Select(payload []byte, name string) (Driver, error) {
	if name != "" {
		return Lookup(name)
	}
	return Detect(payload)
}

// Names lists the registered driver names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
