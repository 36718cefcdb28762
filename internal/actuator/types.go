package actuator

import (
	"time"

	"github.com/Clover-Hill/iot-project/internal/message"
)

// Snapshot is an immutable copy of the latest known sensor readings, keyed
// by sensor type. Each engine hands a fresh Snapshot to its decision
// function on every evaluation tick, so decisions are pure with respect to
// bus timing and can be unit-tested without a live bus.
type Snapshot map[string]message.SensorReading

// Value returns the latest value for a sensor type and whether one exists.
func (s Snapshot) Value(sensorType string) (float64, bool) {
	r, ok := s[sensorType]
	if !ok {
		return 0, false
	}
	return r.Value, true
}

// ValueOr returns the latest value for a sensor type, or def when absent.
func (s Snapshot) ValueOr(sensorType string, def float64) float64 {
	if v, ok := s.Value(sensorType); ok {
		return v
	}
	return def
}

// Motion reports whether the latest motion reading indicates presence.
// An absent motion reading counts as no motion.
func (s Snapshot) Motion() bool {
	return s.ValueOr(message.SensorMotion, 0) != 0
}

// Actuator is one decision state machine. Each kind carries its own state
// struct; the engine dispatches through this interface, which keeps the
// variants exhaustively enumerable instead of hidden behind hook overrides.
//
// Implementations are not safe for concurrent use: each Actuator is owned
// by exactly one engine goroutine.
type Actuator interface {
	// ID returns the actuator's unique identifier (e.g. "light_01").
	ID() string

	// Type returns the actuator type, used as the topic segment
	// (e.g. "smart_light").
	Type() string

	// Tick runs one evaluation against the snapshot.
	//
	// Returns:
	//   - state: The state payload to publish
	//   - notes: Zero or more notifications produced by this evaluation
	//   - ok: false when a required reading is absent (or automatic logic
	//     is disabled) and nothing should be published; not an error
	Tick(snap Snapshot, now time.Time) (state message.ActuatorState, notes []message.Notification, ok bool)

	// Apply applies a manual command, bypassing the decision function for
	// this invocation, and returns the state to republish immediately.
	// The next scheduled Tick re-runs the decision function from current
	// readings, so overrides on auto-mode actuators are transient unless
	// the command also clears the relevant mode flag.
	Apply(cmd message.Command, now time.Time) message.ActuatorState
}
