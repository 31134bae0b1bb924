package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/ctsensor/internal/config"
	"github.com/d21d3q/ctsensor/internal/metrics"
	"github.com/d21d3q/ctsensor/internal/mqtt"
)

func newBridgeCmd(env config.Config) *cobra.Command {
	cfg := env
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Decode uplinks from an MQTT broker and republish them as JSON",
		Long: "bridge subscribes to the uplink topic, decodes each message by its type byte and publishes the\n" +
			"record to the decoded topic. {device} in the decoded topic is replaced by the second uplink topic level.\n" +
			"Defaults come from the environment or a .env file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBridge(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.MQTTBroker, "broker", env.MQTTBroker, "MQTT broker URL (MQTT_BROKER)")
	f.StringVar(&cfg.MQTTClientID, "client-id", env.MQTTClientID, "MQTT client id (MQTT_CLIENT_ID)")
	f.StringVar(&cfg.MQTTUsername, "username", env.MQTTUsername, "MQTT username (MQTT_USERNAME)")
	f.IntVar(&cfg.MQTTQoS, "qos", env.MQTTQoS, "MQTT QoS for subscribe and publish (MQTT_QOS)")
	f.StringVar(&cfg.UplinkTopic, "uplink-topic", env.UplinkTopic, "topic filter carrying raw payloads (MQTT_TOPIC_UPLINK)")
	f.StringVar(&cfg.DecodedTopic, "decoded-topic", env.DecodedTopic, "topic template for decoded records, empty to only log (MQTT_TOPIC_DECODED)")
	f.StringVar(&cfg.PayloadEncoding, "encoding", env.PayloadEncoding, "uplink payload encoding: raw or base64 (MQTT_PAYLOAD_ENCODING)")
	f.StringVar(&cfg.MetricsAddr, "metrics-addr", env.MetricsAddr, "listen address for /metrics, empty to disable (METRICS_ADDR)")
	return cmd
}

func runBridge(ctx context.Context, cfg config.Config) error {
	if cfg.MQTTQoS < 0 || cfg.MQTTQoS > 2 {
		return fmt.Errorf("invalid qos %d", cfg.MQTTQoS)
	}
	bridgeCfg := mqtt.BridgeConfig{
		UplinkTopic:  cfg.UplinkTopic,
		DecodedTopic: cfg.DecodedTopic,
		Encoding:     cfg.PayloadEncoding,
		QoS:          byte(cfg.MQTTQoS),
	}
	if err := bridgeCfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Error("metrics server stopped")
			}
		}()
		defer srv.Close()
		logrus.WithField("addr", cfg.MetricsAddr).Info("serving metrics")
	}

	var bridge *mqtt.Bridge
	client := mqtt.NewClient(mqtt.ClientConfig{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Username: cfg.MQTTUsername,
		Password: cfg.MQTTPassword,
	}, func(c paho.Client) {
		if err := bridge.Subscribe(c); err != nil {
			logrus.WithError(err).Error("subscribe failed")
		}
	})
	bridge, err := mqtt.NewBridge(bridgeCfg, client, rec)
	if err != nil {
		return err
	}
	if err := mqtt.Connect(client); err != nil {
		return err
	}
	defer client.Disconnect(250)

	<-ctx.Done()
	logrus.Info("bridge shutting down")
	return nil
}

func metricsMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}
