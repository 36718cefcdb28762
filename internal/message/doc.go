// Package message defines the JSON payload types carried on the Smart Room
// bus: sensor readings, actuator state, notifications, and commands.
//
// Field names follow the wire format consumed by existing dashboards
// (snake_case, e.g. sensor_id, actuator_id). All payloads are immutable
// once published; components exchange copies, never shared references.
package message
