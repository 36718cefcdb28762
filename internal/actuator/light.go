package actuator

import (
	"time"

	"github.com/Clover-Hill/iot-project/internal/message"
)

// Smart light states.
const (
	LightOn  = "ON"
	LightOff = "OFF"
)

// Ambient light level bands (lux) and the brightness selected for each.
const (
	lightLevelDark     = 200
	lightLevelDim      = 400
	lightLevelModerate = 600

	brightnessFull     = 100
	brightnessDim      = 60
	brightnessModerate = 30

	// brightnessDecayStep is subtracted per tick while no motion is present.
	brightnessDecayStep = 20
)

// LightState is the smart light's decision state.
type LightState struct {
	On         bool
	Brightness int
	AutoMode   bool
}

// decideLight computes the next light state from the latest readings.
//
// With motion present, brightness is selected by ambient light band; with
// no motion and the light on, brightness decays by a fixed step per tick
// until it reaches zero and the light switches off.
//
// Returns ok=false when automatic control is disabled or no light reading
// exists; the caller publishes nothing in that case.
func decideLight(st LightState, snap Snapshot) (LightState, bool) {
	if !st.AutoMode {
		return st, false
	}
	level, haveLight := snap.Value(message.SensorLight)
	if !haveLight {
		return st, false
	}

	if snap.Motion() {
		switch {
		case level < lightLevelDark:
			st.Brightness = brightnessFull
			st.On = true
		case level < lightLevelDim:
			st.Brightness = brightnessDim
			st.On = true
		case level < lightLevelModerate:
			st.Brightness = brightnessModerate
			st.On = true
		default:
			st.Brightness = 0
			st.On = false
		}
		return st, true
	}

	if st.On {
		st.Brightness -= brightnessDecayStep
		if st.Brightness <= 0 {
			st.Brightness = 0
			st.On = false
		}
	}
	return st, true
}

// SmartLight controls room lighting from ambient light and motion readings.
type SmartLight struct {
	id    string
	state LightState
}

// NewSmartLight creates a smart light actuator.
func NewSmartLight(id string, autoMode bool) *SmartLight {
	return &SmartLight{
		id: id,
		state: LightState{
			On:       false,
			AutoMode: autoMode,
		},
	}
}

// ID implements Actuator.
func (l *SmartLight) ID() string { return l.id }

// Type implements Actuator.
func (l *SmartLight) Type() string { return message.ActuatorSmartLight }

// State returns the current decision state.
func (l *SmartLight) State() LightState { return l.state }

// Tick implements Actuator.
func (l *SmartLight) Tick(snap Snapshot, now time.Time) (message.ActuatorState, []message.Notification, bool) {
	next, ok := decideLight(l.state, snap)
	if !ok {
		return message.ActuatorState{}, nil, false
	}
	l.state = next
	return l.statePayload(now), nil, true
}

// Apply implements Actuator.
func (l *SmartLight) Apply(cmd message.Command, now time.Time) message.ActuatorState {
	if cmd.State != "" {
		l.state.On = cmd.State == LightOn
	}
	if cmd.Brightness != nil {
		l.state.Brightness = clampPercent(*cmd.Brightness)
	}
	if cmd.AutoMode != nil {
		l.state.AutoMode = *cmd.AutoMode
	}
	return l.statePayload(now)
}

// statePayload builds the wire payload for the current state.
func (l *SmartLight) statePayload(now time.Time) message.ActuatorState {
	brightness := l.state.Brightness
	autoMode := l.state.AutoMode
	state := LightOff
	if l.state.On {
		state = LightOn
	}
	return message.ActuatorState{
		ActuatorID: l.id,
		Type:       l.Type(),
		State:      state,
		Brightness: &brightness,
		AutoMode:   &autoMode,
		Timestamp:  now,
	}
}

// clampPercent bounds a brightness value to [0, 100].
func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
