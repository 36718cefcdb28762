// Smart Study Room - sensor simulator
//
// Standalone binary that publishes synthetic sensor readings onto the
// room bus. Run it against the same broker as the main daemon to exercise
// the actuators and gateway without real hardware.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/logging"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/mqtt"
	"github.com/Clover-Hill/iot-project/internal/simulator"
)

var version = "dev"

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := logging.Default()

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("starting Smart Study Room simulator", "version", version)

	// The simulator connects with its own client identity so it can run
	// alongside the main daemon.
	bus, err := mqtt.Connect(cfg.MQTT, cfg.MQTT.Broker.ClientID+"_sim")
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
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
	)

	sim := simulator.New(bus, cfg, log)
	if err := sim.Run(ctx); err != nil {
		return fmt.Errorf("running simulator: %w", err)
	}

	log.Info("simulator stopped")
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
