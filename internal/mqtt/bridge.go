package mqtt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/d21d3q/ctsensor/internal/metrics"
	"github.com/d21d3q/ctsensor/pkg/ctsensor"
)

// Payload encodings accepted on the uplink topic.
const (
	EncodingRaw    = "raw"
	EncodingBase64 = "base64"
)

const (
	deviceToken    = "{device}"
	publishTimeout = 5 * time.Second
)

var errPublishTimeout = errors.New("publish timed out")

// Publisher is the subset of mqtt.Client used to forward records.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Subscriber is the subset of mqtt.Client used to receive uplinks.
type Subscriber interface {
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// BridgeConfig selects topics and the uplink payload encoding.
type BridgeConfig struct {
	UplinkTopic  string
	DecodedTopic string
	Encoding     string
	QoS          byte
}

// Validate checks the encoding and topics.
func (c BridgeConfig) Validate() error {
	switch c.Encoding {
	case EncodingRaw, EncodingBase64:
	default:
		return fmt.Errorf("unsupported payload encoding %q (choose raw or base64)", c.Encoding)
	}
	if c.UplinkTopic == "" {
		return errors.New("uplink topic is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("invalid qos %d", c.QoS)
	}
	return nil
}

// Bridge decodes uplink messages and republishes the records as JSON.
type Bridge struct {
	cfg     BridgeConfig
	pub     Publisher
	metrics *metrics.Recorder
}

// NewBridge builds a bridge. rec may be nil.
func NewBridge(cfg BridgeConfig, pub Publisher, rec *metrics.Recorder) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Bridge{cfg: cfg, pub: pub, metrics: rec}, nil
}

// Subscribe registers the uplink handler.
func (b *Bridge) Subscribe(sub Subscriber) error {
	token := sub.Subscribe(b.cfg.UplinkTopic, b.cfg.QoS, b.HandleMessage)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", b.cfg.UplinkTopic, token.Error())
	}
	logrus.WithField("topic", b.cfg.UplinkTopic).Info("subscribed to uplinks")
	return nil
}

// HandleMessage is the paho callback. Failures are logged and counted.
func (b *Bridge) HandleMessage(_ mqtt.Client, msg mqtt.Message) {
	log := logrus.WithField("topic", msg.Topic())
	result, err := b.Process(context.Background(), msg.Topic(), msg.Payload())
	if err != nil {
		log.WithError(err).Warn("dropping uplink")
		return
	}
	log.WithField("decoder", result.Decoder).Debug("uplink decoded")
}

// Process decodes one uplink and publishes the record when a decoded topic
// is configured.
func (b *Bridge) Process(ctx context.Context, topic string, payload []byte) (ctsensor.Result, error) {
	result, err := b.decode(ctx, payload)
	if err != nil {
		b.metrics.Failed(metrics.Reason(err))
		return ctsensor.Result{}, err
	}
	b.metrics.Decoded(result.Decoder)
	if b.cfg.DecodedTopic == "" || b.pub == nil {
		return result, nil
	}
	out := DecodedTopic(b.cfg.DecodedTopic, topic)
	if err := b.publish(out, []byte(result.String())); err != nil {
		b.metrics.Failed(metrics.ReasonPublish)
		return result, fmt.Errorf("publish %s: %w", out, err)
	}
	return result, nil
}

func (b *Bridge) decode(ctx context.Context, payload []byte) (ctsensor.Result, error) {
	if b.cfg.Encoding == EncodingBase64 {
		return ctsensor.DecodeBase64(ctx, string(payload), ctsensor.DecodeOptions{})
	}
	return ctsensor.Decode(ctx, payload, ctsensor.DecodeOptions{})
}

func (b *Bridge) publish(topic string, data []byte) error {
	token := b.pub.Publish(topic, b.cfg.QoS, false, data)
	if !token.WaitTimeout(publishTimeout) {
		return errPublishTimeout
	}
	return token.Error()
}

// DeviceFromTopic returns the second topic level, which carries the device
// id in "<prefix>/<device>/uplink" style topics.
func DeviceFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// DecodedTopic expands the {device} token of tmpl for an uplink topic.
func DecodedTopic(tmpl, uplink string) string {
	if !strings.Contains(tmpl, deviceToken) {
		return tmpl
	}
	device := DeviceFromTopic(uplink)
	if device == "" {
		device = "unknown"
	}
	return strings.ReplaceAll(tmpl, deviceToken, device)
}
