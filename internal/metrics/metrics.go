package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/d21d3q/ctsensor/pkg/ctsensor"
)

// Failure reasons used as the "reason" label.
const (
	ReasonOutOfRange         = "out_of_range"
	ReasonTooManySatellites  = "too_many_satellites"
	ReasonGPSError           = "gps_error"
	ReasonUnknownDecoder     = "unknown_decoder"
	ReasonUnknownMessageType = "unknown_message_type"
	ReasonInvalidEncoding    = "invalid_encoding"
	ReasonPublish            = "publish"
	ReasonOther              = "other"
)

// Recorder counts decode outcomes.
type Recorder struct {
	decoded  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewRecorder registers the decode counters with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		decoded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctsensor_decoded_total",
				Help: "Payloads decoded successfully, by decoder",
			},
			[]string{"decoder"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctsensor_decode_failures_total",
				Help: "Payloads that could not be decoded or forwarded, by reason",
			},
			[]string{"reason"},
		),
	}
}

// Decoded records a successful decode.
func (r *Recorder) Decoded(decoder string) {
	if r == nil {
		return
	}
	r.decoded.WithLabelValues(decoder).Inc()
}

// Failed records a failure with the given reason label.
func (r *Recorder) Failed(reason string) {
	if r == nil {
		return
	}
	r.failures.WithLabelValues(reason).Inc()
}

// Reason maps a decode error to its label.
func Reason(err error) string {
	switch {
	case errors.Is(err, ctsensor.ErrOutOfRange):
		return ReasonOutOfRange
	case errors.Is(err, ctsensor.ErrTooManySatellites):
		return ReasonTooManySatellites
	case errors.Is(err, ctsensor.ErrGPS):
		return ReasonGPSError
	case errors.Is(err, ctsensor.ErrUnknownDecoder):
		return ReasonUnknownDecoder
	case errors.Is(err, ctsensor.ErrUnknownMessageType):
		return ReasonUnknownMessageType
	case errors.Is(err, ctsensor.ErrInvalidEncoding):
		return ReasonInvalidEncoding
	default:
		return ReasonOther
	}
}
