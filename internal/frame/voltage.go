package frame

import "fmt"

// VoltageFormula names one of the battery voltage conversions in use by the
// sensor fleet. The formulas are independent and must not be merged.
type VoltageFormula int

const (
	// VoltageClamped is used by push-button and hybrid GPS sensors.
	VoltageClamped VoltageFormula = iota
	// VoltageLevelSensor is used by level sensors.
	VoltageLevelSensor
)

// Hundredths of a volt.
const (
	batteryVoltageMin = 250
	batteryVoltageMax = 425
)

// Decode converts a raw voltage byte with the selected formula.
func (f VoltageFormula) Decode(b byte) float64 {
	switch f {
	case VoltageClamped:
		return clampedVoltage(b)
	case VoltageLevelSensor:
		return levelSensorVoltage(b)
	default:
		panic(fmt.Sprintf("frame: unknown voltage formula %d", int(f)))
	}
}

func (f VoltageFormula) String() string {
	switch f {
	case VoltageClamped:
		return "clamped"
	case VoltageLevelSensor:
		return "level-sensor"
	default:
		return fmt.Sprintf("VoltageFormula(%d)", int(f))
	}
}

// clampedVoltage uses the low six bits; the upper two bits are status flags.
// The formula follows the network server rather than the published message
// document, which is wrong.
func clampedVoltage(b byte) float64 {
	raw := int(b&0x3F)*4 + batteryVoltageMin
	v := float64(raw) / 100
	if v > batteryVoltageMax/100.0 {
		return batteryVoltageMax / 100.0
	}
	return v
}

func levelSensorVoltage(b byte) float64 {
	return float64(int(b)*256) / 5000
}
