package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/logging"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/mqtt"
	"github.com/Clover-Hill/iot-project/internal/message"
)

// firehoseBuffer is the channel buffer for the smartroom/+/+ subscription.
const firehoseBuffer = 256

// Edge rule thresholds. These are tighter than the comfort ranges: they
// mark conditions that warrant an immediate alert rather than a violation
// count.
const (
	edgeTempMin  = 16.0
	edgeTempMax  = 30.0
	edgeNoiseMax = 70.0
)

// Event is one item on the observer fan-out queue.
//
// Name is "update" for every ingested bus message and "alert" for
// edge-rule alerts, which are raised in addition to the update for the
// triggering reading.
type Event struct {
	Name     string          `json:"event"`
	Category string          `json:"category,omitempty"`
	Type     string          `json:"type,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// Bus is the slice of the MQTT client the aggregator needs.
type Bus interface {
	SubscribeChan(topic string, qos byte, buffer int) (<-chan mqtt.Message, error)
}

// Aggregator is the room's single logical consumer of all bus traffic.
//
// One goroutine (Run) ingests every message serially: latest values,
// bounded history, violation counters, the notification log, and edge
// rules all update in arrival order. Observers read through Snapshot and
// Analytics (mutex-guarded) or subscribe to the bounded fan-out queue via
// Events; a slow observer costs dropped events, never ingest stalls.
type Aggregator struct {
	bus     Bus
	log     *logging.Logger
	ranges  map[string]config.Range
	metrics *Metrics
	topics  mqtt.Topics

	events chan Event

	mu            sync.RWMutex
	sensors       map[string]message.SensorReading
	actuators     map[string]message.ActuatorState
	history       map[string]*historyBuffer
	notifications *notificationLog
	violations    map[string]int
}

// New creates an aggregator over the given comfort ranges.
func New(bus Bus, cfg *config.Config, metrics *Metrics, log *logging.Logger) *Aggregator {
	queueSize := cfg.Gateway.FanoutQueueSize
	if queueSize < 1 {
		queueSize = 1
	}
	return &Aggregator{
		bus:           bus,
		log:           log.With("component", "gateway"),
		ranges:        cfg.Comfort.Ranges,
		metrics:       metrics,
		events:        make(chan Event, queueSize),
		sensors:       make(map[string]message.SensorReading),
		actuators:     make(map[string]message.ActuatorState),
		history:       make(map[string]*historyBuffer),
		notifications: newNotificationLog(notificationCap),
		violations:    make(map[string]int),
	}
}

// Events returns the observer fan-out queue. Events are dropped (and
// counted) when the queue is full, so consumers need not keep pace with
// the bus.
func (a *Aggregator) Events() <-chan Event { return a.events }

// Run subscribes to all room traffic and ingests until ctx is cancelled.
// Intended to run under a task supervisor.
func (a *Aggregator) Run(ctx context.Context) error {
	messages, err := a.bus.SubscribeChan(a.topics.All(), 1, firehoseBuffer)
	if err != nil {
		return err
	}

	a.log.Info("gateway aggregator started")
	for {
		select {
		case <-ctx.Done():
			a.log.Info("gateway aggregator stopping")
			return nil
		case msg := <-messages:
			a.ingest(msg, time.Now())
		}
	}
}

// ingest processes one bus message.
func (a *Aggregator) ingest(msg mqtt.Message, now time.Time) {
	category, deviceType, ok := mqtt.Parse(msg.Topic)
	if !ok {
		a.log.Warn("discarding message on unparseable topic", "topic", msg.Topic)
		a.metrics.MalformedTotal.Inc()
		return
	}
	a.metrics.IngestedTotal.WithLabelValues(category).Inc()

	switch category {
	case mqtt.CategorySensors:
		a.ingestSensor(deviceType, msg, now)
	case mqtt.CategoryActuators:
		a.ingestActuator(deviceType, msg)
	}

	// Every parsed message reaches observers, commands included.
	a.publishEvent(Event{
		Name:     "update",
		Category: category,
		Type:     deviceType,
		Data:     json.RawMessage(msg.Payload),
	})
}

func (a *Aggregator) ingestSensor(sensorType string, msg mqtt.Message, now time.Time) {
	var reading message.SensorReading
	if err := json.Unmarshal(msg.Payload, &reading); err != nil {
		a.log.Warn("discarding malformed sensor payload", "topic", msg.Topic, "error", err)
		a.metrics.MalformedTotal.Inc()
		return
	}
	if reading.Timestamp.IsZero() {
		reading.Timestamp = now
	}

	a.mu.Lock()
	a.sensors[sensorType] = reading

	buf, ok := a.history[sensorType]
	if !ok {
		buf = newHistoryBuffer(historyCap)
		a.history[sensorType] = buf
	}
	buf.Append(HistoryPoint{Timestamp: reading.Timestamp, Value: reading.Value})

	if r, tracked := a.ranges[sensorType]; tracked && !r.Contains(reading.Value) {
		a.violations[sensorType]++
		a.metrics.ViolationsTotal.WithLabelValues(sensorType).Inc()
	}
	a.mu.Unlock()

	a.applyEdgeRules(sensorType, reading.Value, now)
}

func (a *Aggregator) ingestActuator(deviceType string, msg mqtt.Message) {
	switch deviceType {
	case mqtt.TypeAlerts, mqtt.TypeNotifications, mqtt.TypeSystemNotifications:
		var note message.Notification
		if err := json.Unmarshal(msg.Payload, &note); err != nil {
			a.log.Warn("discarding malformed notification payload", "topic", msg.Topic, "error", err)
			a.metrics.MalformedTotal.Inc()
			return
		}
		a.mu.Lock()
		a.notifications.Append(note)
		a.mu.Unlock()
	default:
		var state message.ActuatorState
		if err := json.Unmarshal(msg.Payload, &state); err != nil {
			a.log.Warn("discarding malformed actuator payload", "topic", msg.Topic, "error", err)
			a.metrics.MalformedTotal.Inc()
			return
		}
		a.mu.Lock()
		a.actuators[deviceType] = state
		a.mu.Unlock()
	}
}

// applyEdgeRules checks a reading against the immediate-response rules and
// raises a gateway alert when one fires. Alerts repeat on every reading
// the condition holds for; they are not deduplicated.
func (a *Aggregator) applyEdgeRules(sensorType string, value float64, now time.Time) {
	var text string
	switch {
	case sensorType == message.SensorTemperature && (value < edgeTempMin || value > edgeTempMax):
		text = "CRITICAL: Temperature out of safe range!"
	case sensorType == message.SensorNoise && value > edgeNoiseMax:
		text = "WARNING: Very high noise level detected!"
	default:
		return
	}

	alert := message.NewNotification("", message.KindGatewayAlert, text, message.SeverityHigh, now)
	a.log.Warn("edge rule fired", "sensor_type", sensorType, "value", value, "message", text)
	a.metrics.EdgeAlertsTotal.Inc()

	a.mu.Lock()
	a.notifications.Append(alert)
	a.mu.Unlock()

	payload, err := json.Marshal(alert)
	if err != nil {
		return
	}
	a.publishEvent(Event{Name: "alert", Data: payload})
}

// publishEvent enqueues an event for observers, dropping when full.
func (a *Aggregator) publishEvent(ev Event) {
	select {
	case a.events <- ev:
	default:
		a.metrics.FanoutDropsTotal.Inc()
	}
}

// Snapshot is the observer-facing view of everything the aggregator holds.
type Snapshot struct {
	Sensors       map[string]message.SensorReading `json:"sensors"`
	Actuators     map[string]message.ActuatorState `json:"actuators"`
	History       map[string][]HistoryPoint        `json:"history"`
	Notifications []message.Notification           `json:"notifications"`
	Analytics     SnapshotAnalytics                `json:"analytics"`
}

// SnapshotAnalytics carries the cheap always-current counters. The derived
// analytics (score, trends, recommendations) live behind Analytics.
type SnapshotAnalytics struct {
	ComfortViolations map[string]int `json:"comfort_violations"`
}

// Snapshot returns a self-contained copy of the current aggregate state.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := Snapshot{
		Sensors:       make(map[string]message.SensorReading, len(a.sensors)),
		Actuators:     make(map[string]message.ActuatorState, len(a.actuators)),
		History:       make(map[string][]HistoryPoint, len(a.history)),
		Notifications: a.notifications.Slice(),
		Analytics: SnapshotAnalytics{
			ComfortViolations: make(map[string]int, len(a.violations)),
		},
	}
	for k, v := range a.sensors {
		snap.Sensors[k] = v
	}
	for k, v := range a.actuators {
		snap.Actuators[k] = v
	}
	for k, buf := range a.history {
		snap.History[k] = buf.Slice()
	}
	for k, v := range a.violations {
		snap.Analytics.ComfortViolations[k] = v
	}
	return snap
}

// notificationLog is a fixed-capacity rolling log of notifications.
type notificationLog struct {
	entries []message.Notification
	start   int
	count   int
}

func newNotificationLog(capacity int) *notificationLog {
	return &notificationLog{entries: make([]message.Notification, capacity)}
}

func (l *notificationLog) Append(n message.Notification) {
	idx := (l.start + l.count) % len(l.entries)
	l.entries[idx] = n
	if l.count < len(l.entries) {
		l.count++
	} else {
		l.start = (l.start + 1) % len(l.entries)
	}
}

func (l *notificationLog) Len() int { return l.count }

// Slice returns the retained notifications oldest-first.
func (l *notificationLog) Slice() []message.Notification {
	out := make([]message.Notification, l.count)
	for i := 0; i < l.count; i++ {
		out[i] = l.entries[(l.start+i)%len(l.entries)]
	}
	return out
}
