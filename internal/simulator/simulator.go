package simulator

import (
	"context"
	"math/rand"
	"time"

	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/logging"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/mqtt"
	"github.com/Clover-Hill/iot-project/internal/message"
	"github.com/Clover-Hill/iot-project/internal/task"
)

// Publisher is the slice of the MQTT client the simulator needs.
type Publisher interface {
	PublishJSON(topic string, v any) error
}

// Simulator publishes simulated readings for a set of sensor generators on
// a fixed interval.
type Simulator struct {
	bus        Publisher
	log        *logging.Logger
	interval   time.Duration
	generators []Generator
	topics     mqtt.Topics
}

// New creates a simulator from configuration. When cfg.Simulator.Sensors
// is empty, all known sensor types are simulated.
func New(bus Publisher, cfg *config.Config, log *logging.Logger) *Simulator {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	all := []Generator{
		NewTemperature("temp_01", rng),
		NewHumidity("hum_01", rng),
		NewLight("light_01", rng),
		NewNoise("noise_01", rng),
		NewMotion("motion_01", rng),
	}

	generators := all
	if len(cfg.Simulator.Sensors) > 0 {
		wanted := make(map[string]bool, len(cfg.Simulator.Sensors))
		for _, t := range cfg.Simulator.Sensors {
			wanted[t] = true
		}
		generators = generators[:0:0]
		for _, g := range all {
			if wanted[g.Type()] {
				generators = append(generators, g)
			}
		}
	}

	return &Simulator{
		bus:        bus,
		log:        log.With("component", "simulator"),
		interval:   cfg.SensorInterval(),
		generators: generators,
	}
}

// Generators returns the active generators.
func (s *Simulator) Generators() []Generator { return s.generators }

// Run publishes one reading per generator every interval until ctx is
// cancelled. Intended to run under a task supervisor.
func (s *Simulator) Run(ctx context.Context) error {
	s.log.Info("simulator started",
		"sensors", len(s.generators),
		"interval", s.interval.String(),
	)

	task.RunTicker(ctx, s.interval, s.publishAll)

	s.log.Info("simulator stopping")
	return nil
}

// publishAll emits one reading per generator.
func (s *Simulator) publishAll(now time.Time) {
	for _, g := range s.generators {
		reading := message.SensorReading{
			SensorID:  g.ID(),
			Type:      g.Type(),
			Value:     g.Next(now),
			Unit:      g.Unit(),
			Timestamp: now,
		}
		if err := s.bus.PublishJSON(s.topics.Sensor(g.Type()), reading); err != nil {
			s.log.Error("failed to publish reading", "sensor_type", g.Type(), "error", err)
		}
	}
}
