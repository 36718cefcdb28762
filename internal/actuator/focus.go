package actuator

import (
	"fmt"
	"time"

	"github.com/Clover-Hill/iot-project/internal/message"
)

// Focus mode comfort states.
const (
	FocusNoisy = "NOISY"
	FocusQuiet = "QUIET"
)

// FocusState is the focus controller's decision state. It combines the
// noise comfort state with a study session machine: sessions start on a
// motion rising edge, remind about breaks once per session, and end when
// motion disappears.
type FocusState struct {
	State string

	SessionActive     bool
	SessionStart      time.Time
	BreakReminderSent bool
}

// FocusParams are the focus controller's tuning knobs.
type FocusParams struct {
	// NoiseThreshold is the dB level above which the room counts as noisy.
	NoiseThreshold float64
	// BreakAfter is the continuous study time before the break reminder.
	BreakAfter time.Duration
	// MinSession is the minimum session length that produces a
	// session-ended notification.
	MinSession time.Duration
}

// decideFocus computes the next focus state from the latest readings.
//
// Returns ok=false when no noise reading exists. The returned messages
// are ordered: noise warnings precede session transitions, matching the
// evaluation order of the decision.
func decideFocus(st FocusState, snap Snapshot, now time.Time, p FocusParams) (FocusState, []string, bool) {
	noise, haveNoise := snap.Value(message.SensorNoise)
	if !haveNoise {
		return st, nil, false
	}

	var msgs []string

	if noise > p.NoiseThreshold {
		st.State = FocusNoisy
		msgs = append(msgs, "High noise level detected! Consider using headphones.")
	} else {
		st.State = FocusQuiet
	}

	if snap.Motion() {
		switch {
		case !st.SessionActive:
			st.SessionActive = true
			st.SessionStart = now
			st.BreakReminderSent = false
			msgs = append(msgs, "Study session started. Good luck!")
		case !st.BreakReminderSent && now.Sub(st.SessionStart) > p.BreakAfter:
			st.BreakReminderSent = true
			msgs = append(msgs, fmt.Sprintf("You've been studying for %d minutes. Time for a break!",
				int(p.BreakAfter.Minutes())))
		}
	} else if st.SessionActive {
		duration := now.Sub(st.SessionStart)
		if duration > p.MinSession {
			msgs = append(msgs, fmt.Sprintf("Study session ended. Duration: %d minutes", int(duration.Minutes())))
		}
		st.SessionActive = false
		st.BreakReminderSent = false
	}

	return st, msgs, true
}

// FocusMode monitors study conditions from noise and motion readings.
type FocusMode struct {
	id     string
	params FocusParams
	state  FocusState
}

// NewFocusMode creates a focus mode actuator.
func NewFocusMode(id string, params FocusParams) *FocusMode {
	return &FocusMode{
		id:     id,
		params: params,
		state:  FocusState{State: FocusQuiet},
	}
}

// ID implements Actuator.
func (f *FocusMode) ID() string { return f.id }

// Type implements Actuator.
func (f *FocusMode) Type() string { return message.ActuatorFocusMode }

// State returns the current decision state.
func (f *FocusMode) State() FocusState { return f.state }

// Tick implements Actuator.
func (f *FocusMode) Tick(snap Snapshot, now time.Time) (message.ActuatorState, []message.Notification, bool) {
	next, msgs, ok := decideFocus(f.state, snap, now, f.params)
	if !ok {
		return message.ActuatorState{}, nil, false
	}
	f.state = next

	notes := make([]message.Notification, 0, len(msgs))
	for _, msg := range msgs {
		notes = append(notes, message.NewNotification(
			f.id, message.KindNotification, msg, message.SeverityInfo, now,
		))
	}
	return f.statePayload(now), notes, true
}

// Apply implements Actuator.
func (f *FocusMode) Apply(cmd message.Command, now time.Time) message.ActuatorState {
	if cmd.State != "" {
		f.state.State = cmd.State
	}
	return f.statePayload(now)
}

// statePayload builds the wire payload for the current state.
func (f *FocusMode) statePayload(now time.Time) message.ActuatorState {
	return message.ActuatorState{
		ActuatorID: f.id,
		Type:       f.Type(),
		State:      f.state.State,
		Timestamp:  now,
	}
}
