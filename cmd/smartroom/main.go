// Smart Study Room - reactive coordination engine
//
// This is the main entry point for the room daemon. It connects to the
// MQTT bus, runs one decision engine per actuator, the central gateway
// aggregator, and the HTTP/WebSocket API for dashboards.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Clover-Hill/iot-project/internal/actuator"
	"github.com/Clover-Hill/iot-project/internal/api"
	"github.com/Clover-Hill/iot-project/internal/gateway"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/logging"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/mqtt"
	"github.com/Clover-Hill/iot-project/internal/task"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// shutdownTimeout bounds the wait for supervised tasks on shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Smart Study Room",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Connect to MQTT broker
	bus, err := mqtt.Connect(cfg.MQTT, cfg.MQTT.Broker.ClientID)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := bus.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	bus.SetLogger(log)
	bus.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	bus.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Metrics registry with process/runtime collectors plus gateway metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := gateway.NewMetrics(registry)

	// Gateway aggregator and command router
	aggregator := gateway.New(bus, cfg, metrics, log)
	router := gateway.NewRouter(bus, log)

	// Supervised tasks: one engine per actuator plus the aggregator
	supervisor := task.NewSupervisor()
	supervisor.SetLogger(log)
	for _, act := range actuator.Build(cfg) {
		engine := actuator.NewEngine(act, bus, cfg.TickInterval(), log)
		supervisor.Add("engine/"+act.ID(), func(ctx context.Context) {
			if runErr := engine.Run(ctx); runErr != nil {
				log.Error("actuator engine exited", "error", runErr)
			}
		})
	}
	supervisor.Add("gateway", func(ctx context.Context) {
		if runErr := aggregator.Run(ctx); runErr != nil {
			log.Error("gateway aggregator exited", "error", runErr)
		}
	})
	if err := supervisor.Start(ctx); err != nil {
		return fmt.Errorf("starting tasks: %w", err)
	}
	defer func() {
		if stuck := supervisor.Stop(shutdownTimeout); stuck > 0 {
			log.Warn("tasks did not stop in time", "stuck", stuck)
		}
	}()

	// HTTP API server
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		WS:        cfg.WebSocket,
		Logger:    log,
		Data:      aggregator,
		Commands:  router,
		Events:    aggregator.Events(),
		Gatherer:  registry,
		Observers: metrics.Observers,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses SMARTROOM_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SMARTROOM_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
