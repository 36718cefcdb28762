package message

import (
	"time"

	"github.com/google/uuid"
)

// Sensor types known to the room. Readings for other types are carried
// verbatim but never checked against comfort ranges.
const (
	SensorTemperature = "temperature"
	SensorHumidity    = "humidity"
	SensorLight       = "light"
	SensorNoise       = "noise"
	SensorMotion      = "motion"
)

// Actuator types. These appear as the {type} segment of actuator state
// and command topics.
const (
	ActuatorSmartLight     = "smart_light"
	ActuatorClimateControl = "climate_control"
	ActuatorFocusMode      = "focus_mode"
	ActuatorNotifySystem   = "notification_system"
)

// Notification kinds as carried in the payload's "type" field.
const (
	KindAlert              = "alert"
	KindNotification       = "notification"
	KindSystemNotification = "system_notification"
	KindGatewayAlert       = "gateway_alert"
)

// Notification severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityAlert   = "alert"
	// SeverityHigh marks gateway edge-rule alerts that bypass the
	// aggregate notification cycle.
	SeverityHigh = "high"
)

// SensorReading is one published sensor measurement.
// Readings are immutable once published.
type SensorReading struct {
	SensorID  string    `json:"sensor_id"`
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"timestamp"`
}

// ActuatorState is the state payload an actuator publishes after every
// evaluation tick or accepted command. Kind-specific fields are omitted
// when they do not apply to the publishing actuator.
type ActuatorState struct {
	ActuatorID string    `json:"actuator_id"`
	Type       string    `json:"type"`
	State      string    `json:"state"`
	Timestamp  time.Time `json:"timestamp"`

	// Smart light fields.
	Brightness *int  `json:"brightness,omitempty"`
	AutoMode   *bool `json:"auto_mode,omitempty"`

	// Climate control fields.
	Mode           string   `json:"mode,omitempty"`
	TargetTemp     *float64 `json:"target_temp,omitempty"`
	TargetHumidity *float64 `json:"target_humidity,omitempty"`
}

// Notification is a message for room occupants or observers. Notifications
// are immutable once created; the gateway appends them to its rolling log
// and never mutates them.
type Notification struct {
	ID         string    `json:"id"`
	ActuatorID string    `json:"actuator_id,omitempty"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewNotification creates a Notification with a fresh ID and the given
// creation time.
func NewNotification(actuatorID, kind, msg, severity string, now time.Time) Notification {
	return Notification{
		ID:         uuid.NewString(),
		ActuatorID: actuatorID,
		Type:       kind,
		Message:    msg,
		Severity:   severity,
		Timestamp:  now,
	}
}

// Command is a manual control command addressed to one actuator. Commands
// are transient: they are routed to the actuator's command topic and not
// retained after delivery.
type Command struct {
	ActuatorID string `json:"actuator_id"`
	State      string `json:"state,omitempty"`

	// Optional mode overrides. nil means "leave unchanged".
	AutoMode       *bool    `json:"auto_mode,omitempty"`
	Mode           *string  `json:"mode,omitempty"`
	Brightness     *int     `json:"brightness,omitempty"`
	TargetTemp     *float64 `json:"target_temp,omitempty"`
	TargetHumidity *float64 `json:"target_humidity,omitempty"`
}
