package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the bridge settings read from the environment.
type Config struct {
	MQTTBroker   string
	MQTTClientID string
	MQTTUsername string
	MQTTPassword string
	MQTTQoS      int

	UplinkTopic     string
	DecodedTopic    string
	PayloadEncoding string

	MetricsAddr string
	LogLevel    string
}

// Load reads the given env files (".env" when none are named) without
// overriding variables already set, then builds the config. Missing files
// are not an error.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	return FromEnv()
}

// FromEnv builds the config from the current environment.
func FromEnv() Config {
	return Config{
		MQTTBroker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "ctsensor-bridge"),
		MQTTUsername: getEnv("MQTT_USERNAME", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),
		MQTTQoS:      getEnvInt("MQTT_QOS", 1),

		UplinkTopic:     getEnv("MQTT_TOPIC_UPLINK", "ctsensor/+/uplink"),
		DecodedTopic:    getEnv("MQTT_TOPIC_DECODED", "ctsensor/{device}/decoded"),
		PayloadEncoding: getEnv("MQTT_PAYLOAD_ENCODING", "base64"),

		MetricsAddr: getEnv("METRICS_ADDR", ""),
		LogLevel:    getEnv("CTSENSOR_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithError(err).Warnf("failed to parse %s as int, using default %d", key, defaultValue)
		return defaultValue
	}
	return i
}
