package actuator

import (
	"time"

	"github.com/Clover-Hill/iot-project/internal/message"
)

// Climate control modes.
const (
	ClimateModeOff  = "OFF"
	ClimateModeCool = "COOL"
	ClimateModeHeat = "HEAT"
	ClimateModeAuto = "AUTO"
)

// Climate control states.
const (
	ClimateCooling = "COOLING"
	ClimateHeating = "HEATING"
	ClimateIdle    = "IDLE"
)

// Climate thresholds.
const (
	// climateHysteresis is the half-width of the dead band around the
	// target temperature; the full band is twice this value wide.
	climateHysteresis = 2.0

	// Humidity comfort limits. Readings outside [low, high] raise an
	// alert on every tick the condition holds.
	humidityAlertLow  = 30.0
	humidityAlertHigh = 70.0

	// defaultHumidity substitutes for a missing humidity reading.
	defaultHumidity = 50.0
)

// ClimateState is the climate controller's decision state.
type ClimateState struct {
	Mode           string
	State          string
	TargetTemp     float64
	TargetHumidity float64
}

// decideClimate computes the next climate state from the latest readings.
//
// In AUTO mode the state follows the temperature with a hysteresis band
// around the target; in other modes the state is left as previously set.
// Humidity outside the comfort limits raises an alert on every tick the
// condition holds; alerts are not deduplicated.
//
// Returns ok=false when no temperature reading exists.
func decideClimate(st ClimateState, snap Snapshot) (ClimateState, bool, bool) {
	temp, haveTemp := snap.Value(message.SensorTemperature)
	if !haveTemp {
		return st, false, false
	}
	humidity := snap.ValueOr(message.SensorHumidity, defaultHumidity)

	if st.Mode == ClimateModeAuto {
		switch {
		case temp > st.TargetTemp+climateHysteresis:
			st.State = ClimateCooling
		case temp < st.TargetTemp-climateHysteresis:
			st.State = ClimateHeating
		default:
			st.State = ClimateIdle
		}
	}

	humidityAlert := humidity < humidityAlertLow || humidity > humidityAlertHigh
	return st, humidityAlert, true
}

// ClimateControl manages HVAC state from temperature and humidity readings.
type ClimateControl struct {
	id    string
	state ClimateState
}

// NewClimateControl creates a climate control actuator in AUTO mode.
func NewClimateControl(id string, targetTemp, targetHumidity float64) *ClimateControl {
	return &ClimateControl{
		id: id,
		state: ClimateState{
			Mode:           ClimateModeAuto,
			State:          ClimateIdle,
			TargetTemp:     targetTemp,
			TargetHumidity: targetHumidity,
		},
	}
}

// ID implements Actuator.
func (c *ClimateControl) ID() string { return c.id }

// Type implements Actuator.
func (c *ClimateControl) Type() string { return message.ActuatorClimateControl }

// State returns the current decision state.
func (c *ClimateControl) State() ClimateState { return c.state }

// Tick implements Actuator.
func (c *ClimateControl) Tick(snap Snapshot, now time.Time) (message.ActuatorState, []message.Notification, bool) {
	next, humidityAlert, ok := decideClimate(c.state, snap)
	if !ok {
		return message.ActuatorState{}, nil, false
	}
	c.state = next

	var notes []message.Notification
	if humidityAlert {
		notes = append(notes, message.NewNotification(
			c.id, message.KindAlert,
			"Humidity out of comfort range!",
			message.SeverityWarning, now,
		))
	}
	return c.statePayload(now), notes, true
}

// Apply implements Actuator.
func (c *ClimateControl) Apply(cmd message.Command, now time.Time) message.ActuatorState {
	if cmd.State != "" {
		c.state.State = cmd.State
	}
	if cmd.Mode != nil {
		c.state.Mode = *cmd.Mode
	}
	if cmd.TargetTemp != nil {
		c.state.TargetTemp = *cmd.TargetTemp
	}
	if cmd.TargetHumidity != nil {
		c.state.TargetHumidity = *cmd.TargetHumidity
	}
	return c.statePayload(now)
}

// statePayload builds the wire payload for the current state.
func (c *ClimateControl) statePayload(now time.Time) message.ActuatorState {
	targetTemp := c.state.TargetTemp
	targetHumidity := c.state.TargetHumidity
	return message.ActuatorState{
		ActuatorID:     c.id,
		Type:           c.Type(),
		State:          c.state.State,
		Mode:           c.state.Mode,
		TargetTemp:     &targetTemp,
		TargetHumidity: &targetHumidity,
		Timestamp:      now,
	}
}
