package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes for the Smart Room bus.
//
// All room traffic uses the flat scheme: smartroom/{category}/{type}
// where category is one of sensors, actuators, or commands and type is the
// sensor or actuator kind.
const (
	// TopicPrefix is the base for all Smart Room topics.
	TopicPrefix = "smartroom"

	// TopicPrefixSystem is the base for system status topics.
	TopicPrefixSystem = "smartroom/system"
)

// Message categories as they appear in the topic's second segment.
const (
	CategorySensors   = "sensors"
	CategoryActuators = "actuators"
	CategoryCommands  = "commands"
)

// Actuator sub-topics carrying notifications rather than state.
const (
	TypeAlerts              = "alerts"
	TypeNotifications       = "notifications"
	TypeSystemNotifications = "system_notifications"
)

// Topics provides builders for Smart Room MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	readingTopic := topics.Sensor("temperature")
//	// Returns: "smartroom/sensors/temperature"
type Topics struct{}

// Sensor returns the topic a sensor of the given type publishes readings on.
//
// Example: smartroom/sensors/temperature
func (Topics) Sensor(sensorType string) string {
	return fmt.Sprintf("%s/%s/%s", TopicPrefix, CategorySensors, sensorType)
}

// Actuator returns the topic an actuator of the given type publishes state on.
//
// Example: smartroom/actuators/smart_light
func (Topics) Actuator(actuatorType string) string {
	return fmt.Sprintf("%s/%s/%s", TopicPrefix, CategoryActuators, actuatorType)
}

// Alerts returns the topic for high-priority actuator alerts.
//
// Example: smartroom/actuators/alerts
func (Topics) Alerts() string {
	return Topics{}.Actuator(TypeAlerts)
}

// Notifications returns the topic for informational actuator notifications.
//
// Example: smartroom/actuators/notifications
func (Topics) Notifications() string {
	return Topics{}.Actuator(TypeNotifications)
}

// SystemNotifications returns the topic for consolidated room-level notifications.
//
// Example: smartroom/actuators/system_notifications
func (Topics) SystemNotifications() string {
	return Topics{}.Actuator(TypeSystemNotifications)
}

// Command returns the topic an actuator of the given type consumes commands on.
//
// Example: smartroom/commands/smart_light
func (Topics) Command(actuatorType string) string {
	return fmt.Sprintf("%s/%s/%s", TopicPrefix, CategoryCommands, actuatorType)
}

// SystemStatus returns the component online/offline status topic.
//
// Example: smartroom/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllSensors returns a pattern matching every sensor reading.
//
// Pattern: smartroom/sensors/+
func (Topics) AllSensors() string {
	return fmt.Sprintf("%s/%s/+", TopicPrefix, CategorySensors)
}

// AllCommands returns a pattern matching every actuator command.
//
// Pattern: smartroom/commands/+
func (Topics) AllCommands() string {
	return fmt.Sprintf("%s/%s/+", TopicPrefix, CategoryCommands)
}

// All returns a pattern matching all room traffic with a category and type.
// This is the gateway's firehose subscription.
//
// Pattern: smartroom/+/+
func (Topics) All() string {
	return fmt.Sprintf("%s/+/+", TopicPrefix)
}

// Parse splits a Smart Room topic into its category and device type.
//
// Parameters:
//   - topic: A concrete topic, e.g. "smartroom/sensors/temperature"
//
// Returns:
//   - category: The second segment (sensors, actuators, commands)
//   - deviceType: The third segment (temperature, smart_light, alerts, ...)
//   - ok: false if the topic does not follow the smartroom/{category}/{type} shape
func Parse(topic string) (category, deviceType string, ok bool) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 || parts[0] != TopicPrefix {
		return "", "", false
	}
	return parts[1], parts[2], true
}
