package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"MQTT_BROKER", "MQTT_QOS", "MQTT_TOPIC_UPLINK", "MQTT_PAYLOAD_ENCODING", "CTSENSOR_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	require.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	require.Equal(t, 1, cfg.MQTTQoS)
	require.Equal(t, "ctsensor/+/uplink", cfg.UplinkTopic)
	require.Equal(t, "base64", cfg.PayloadEncoding)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("MQTT_QOS", "0")
	t.Setenv("MQTT_PAYLOAD_ENCODING", "raw")
	cfg := FromEnv()
	require.Equal(t, "tcp://broker:1883", cfg.MQTTBroker)
	require.Equal(t, 0, cfg.MQTTQoS)
	require.Equal(t, "raw", cfg.PayloadEncoding)
}

func TestFromEnvBadInt(t *testing.T) {
	t.Setenv("MQTT_QOS", "two")
	require.Equal(t, 1, FromEnv().MQTTQoS)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.env")
	require.NoError(t, os.WriteFile(path, []byte("MQTT_TOPIC_DECODED=out/{device}\nMETRICS_ADDR=:9100\n"), 0o600))
	// registered so the values loaded from the file are cleared afterwards
	t.Setenv("MQTT_TOPIC_DECODED", "")
	t.Setenv("METRICS_ADDR", "")
	require.NoError(t, os.Unsetenv("MQTT_TOPIC_DECODED"))
	require.NoError(t, os.Unsetenv("METRICS_ADDR"))

	cfg := Load(path)
	require.Equal(t, "out/{device}", cfg.DecodedTopic)
	require.Equal(t, ":9100", cfg.MetricsAddr)
}
