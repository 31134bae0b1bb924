package ctsensor

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborMode = mustCBORMode()

func mustCBORMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("ctsensor: cbor encoder: %v", err))
	}
	return em
}

// Marshal encodes the decoded record in the requested format.
func (r Result) Marshal(f Format) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		return json.Marshal(r.Payload)
	case FormatCBOR:
		return cborMode.Marshal(r.Payload)
	default:
		return nil, fmt.Errorf("unsupported output format %q", f)
	}
}

// Text renders the record for line-oriented output. Binary formats are hex
// encoded.
func (r Result) Text(f Format) (string, error) {
	data, err := r.Marshal(f)
	if err != nil {
		return "", err
	}
	if f == FormatCBOR {
		return hex.EncodeToString(data), nil
	}
	return string(data), nil
}
