package hybridgps

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"

	"github.com/d21d3q/ctsensor/internal/frame"
)

// ErrTooManySatellites is returned when the visibility mask names more
// satellites than the code phase table can hold.
var ErrTooManySatellites = errors.New("too many satellites")

const (
	numSatellites  = 32
	maskLen        = numSatellites / 8
	maxSatellites  = 8
	codePhaseWidth = 2
)

// Satellite is one visible satellite with its measured code phase.
type Satellite struct {
	SatNumber int    `json:"satNumber"`
	CodePhase string `json:"codePhase"`
}

// DecodeSatellites reads a little-endian visibility mask followed by one
// 16-bit code phase per set bit, in ascending satellite order.
func DecodeSatellites(r frame.Reader) ([]Satellite, error) {
	mask, err := r.Uint32LE(0)
	if err != nil {
		return nil, fmt.Errorf("satellite mask: %w", err)
	}
	visible := bits.OnesCount32(mask)
	if visible > maxSatellites {
		return nil, fmt.Errorf("%w: mask 0x%08x has %d set, max %d", ErrTooManySatellites, mask, visible, maxSatellites)
	}
	sats := make([]Satellite, 0, visible)
	for i := 0; i < numSatellites; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		phase, err := r.Uint16LE(maskLen + len(sats)*codePhaseWidth)
		if err != nil {
			return nil, fmt.Errorf("code phase for satellite %d: %w", i, err)
		}
		sats = append(sats, Satellite{
			SatNumber: i,
			CodePhase: strconv.FormatUint(uint64(phase), 16),
		})
	}
	return sats, nil
}
