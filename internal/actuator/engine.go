package actuator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Clover-Hill/iot-project/internal/infrastructure/logging"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/mqtt"
	"github.com/Clover-Hill/iot-project/internal/message"
)

// channel buffers for bus subscriptions. Sensors arrive from five
// generators at once; commands are rare.
const (
	sensorChanBuffer  = 64
	commandChanBuffer = 16
)

// Bus is the slice of the MQTT client the engine needs. Satisfied by
// *mqtt.Client; tests provide a mock.
type Bus interface {
	PublishJSON(topic string, v any) error
	SubscribeChan(topic string, qos byte, buffer int) (<-chan mqtt.Message, error)
}

// Engine drives one Actuator: it accumulates the latest sensor readings,
// applies manual commands, and runs the actuator's decision function on a
// fixed evaluation tick. All actuator state is owned by the engine's
// single goroutine, so no locking is needed anywhere in the decision path.
type Engine struct {
	act      Actuator
	bus      Bus
	log      *logging.Logger
	interval time.Duration
	topics   mqtt.Topics

	// latest readings by sensor type, updated as messages arrive and
	// copied into a Snapshot per tick.
	readings map[string]message.SensorReading
}

// NewEngine creates an engine for the given actuator. The interval is the
// evaluation tick period.
func NewEngine(act Actuator, bus Bus, interval time.Duration, log *logging.Logger) *Engine {
	return &Engine{
		act:      act,
		bus:      bus,
		log:      log.With("actuator_id", act.ID(), "actuator_type", act.Type()),
		interval: interval,
		readings: make(map[string]message.SensorReading),
	}
}

// Run subscribes to the sensor firehose and this actuator's command topic,
// then loops until ctx is cancelled. Intended to run under a task
// supervisor, one goroutine per actuator.
func (e *Engine) Run(ctx context.Context) error {
	sensors, err := e.bus.SubscribeChan(e.topics.AllSensors(), 1, sensorChanBuffer)
	if err != nil {
		return err
	}
	commands, err := e.bus.SubscribeChan(e.topics.Command(e.act.Type()), 1, commandChanBuffer)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.log.Info("actuator engine started", "interval", e.interval.String())

	for {
		select {
		case <-ctx.Done():
			e.log.Info("actuator engine stopping")
			return nil
		case msg := <-sensors:
			e.handleSensor(msg)
		case msg := <-commands:
			e.handleCommand(msg)
		case now := <-ticker.C:
			e.tick(now)
		}
	}
}

// handleSensor records the latest reading for its sensor type.
func (e *Engine) handleSensor(msg mqtt.Message) {
	var reading message.SensorReading
	if err := json.Unmarshal(msg.Payload, &reading); err != nil {
		e.log.Warn("discarding malformed sensor payload", "topic", msg.Topic, "error", err)
		return
	}
	if reading.Type == "" {
		e.log.Warn("discarding sensor payload without type", "topic", msg.Topic)
		return
	}
	e.readings[reading.Type] = reading
}

// handleCommand applies a manual command and republishes state immediately.
func (e *Engine) handleCommand(msg mqtt.Message) {
	var cmd message.Command
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		e.log.Warn("discarding malformed command payload", "topic", msg.Topic, "error", err)
		return
	}
	// Commands without an actuator_id address every actuator of the type.
	if cmd.ActuatorID != "" && cmd.ActuatorID != e.act.ID() {
		return
	}

	state := e.act.Apply(cmd, time.Now())
	e.log.Info("applied manual command", "state", state.State)
	e.publishState(state)
}

// tick runs one decision evaluation against a snapshot of the readings.
func (e *Engine) tick(now time.Time) {
	snap := make(Snapshot, len(e.readings))
	for t, r := range e.readings {
		snap[t] = r
	}

	state, notes, ok := e.act.Tick(snap, now)
	if !ok {
		return
	}

	e.publishState(state)
	for _, note := range notes {
		e.publishNotification(note)
	}
}

func (e *Engine) publishState(state message.ActuatorState) {
	if err := e.bus.PublishJSON(e.topics.Actuator(e.act.Type()), state); err != nil {
		e.log.Error("failed to publish actuator state", "error", err)
	}
}

// publishNotification routes a notification to the topic for its kind.
func (e *Engine) publishNotification(note message.Notification) {
	var topic string
	switch note.Type {
	case message.KindAlert:
		topic = e.topics.Alerts()
	case message.KindSystemNotification:
		topic = e.topics.SystemNotifications()
	default:
		topic = e.topics.Notifications()
	}

	if err := e.bus.PublishJSON(topic, note); err != nil {
		e.log.Error("failed to publish notification", "kind", note.Type, "error", err)
	}
}
