package frame

import "fmt"

// Kind identifies the message type that produced a body.
type Kind int

const (
	KindPushButton Kind = iota + 1
	KindLevelSensor
	KindHybridGPS
)

func (k Kind) String() string {
	switch k {
	case KindPushButton:
		return "pushButton"
	case KindLevelSensor:
		return "levelSensor"
	case KindHybridGPS:
		return "HGPS"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Body is implemented by every message-type specific body.
type Body interface {
	Kind() Kind
}

// Payload is a fully decoded message.
type Payload struct {
	Header Header `json:"header"`
	Body   Body   `json:"body"`
}
