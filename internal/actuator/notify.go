package actuator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
	"github.com/Clover-Hill/iot-project/internal/message"
)

// Notification system states.
const (
	NotifyOK      = "OK"
	NotifyWarning = "WARNING"
	NotifyAlert   = "ALERT"
)

// decideNotify classifies the latest readings against the comfort ranges
// and returns the new state plus the list of violation lines, one per
// out-of-range sensor. Sensors with no reading yet are skipped. Iteration
// is sorted by sensor type so the consolidated message is deterministic.
func decideNotify(snap Snapshot, ranges map[string]config.Range) (string, []string) {
	types := make([]string, 0, len(ranges))
	for t := range ranges {
		types = append(types, t)
	}
	sort.Strings(types)

	var violations []string
	for _, t := range types {
		v, ok := snap.Value(t)
		if !ok {
			continue
		}
		r := ranges[t]
		if !r.Contains(v) {
			violations = append(violations, fmt.Sprintf("%s is outside comfort range: %g",
				capitalize(t), v))
		}
	}

	switch {
	case len(violations) >= 2:
		return NotifyAlert, violations
	case len(violations) == 1:
		return NotifyWarning, violations
	default:
		return NotifyOK, nil
	}
}

// NotificationSystem watches every monitored sensor against its comfort
// range and raises a single consolidated alert when two or more are
// out of range at once.
type NotificationSystem struct {
	id     string
	ranges map[string]config.Range
	state  string
}

// NewNotificationSystem creates a notification system over the given
// comfort ranges, keyed by sensor type.
func NewNotificationSystem(id string, ranges map[string]config.Range) *NotificationSystem {
	return &NotificationSystem{
		id:     id,
		ranges: ranges,
		state:  NotifyOK,
	}
}

// ID implements Actuator.
func (n *NotificationSystem) ID() string { return n.id }

// Type implements Actuator.
func (n *NotificationSystem) Type() string { return message.ActuatorNotifySystem }

// State returns the current comfort classification.
func (n *NotificationSystem) State() string { return n.state }

// Tick implements Actuator.
func (n *NotificationSystem) Tick(snap Snapshot, now time.Time) (message.ActuatorState, []message.Notification, bool) {
	state, violations := decideNotify(snap, n.ranges)
	n.state = state

	var notes []message.Notification
	if state == NotifyAlert {
		msg := "Multiple comfort issues detected:\n" + strings.Join(violations, "\n")
		notes = append(notes, message.NewNotification(
			n.id, message.KindSystemNotification, msg, message.SeverityAlert, now,
		))
	}
	return n.statePayload(now), notes, true
}

// Apply implements Actuator. The notification system has no commandable
// settings; a command only forces the reported state until the next tick
// reclassifies it.
func (n *NotificationSystem) Apply(cmd message.Command, now time.Time) message.ActuatorState {
	if cmd.State != "" {
		n.state = cmd.State
	}
	return n.statePayload(now)
}

func (n *NotificationSystem) statePayload(now time.Time) message.ActuatorState {
	return message.ActuatorState{
		ActuatorID: n.id,
		Type:       n.Type(),
		State:      n.state,
		Timestamp:  now,
	}
}

// capitalize upper-cases the first byte of an ASCII sensor type name.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
