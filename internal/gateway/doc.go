// Package gateway implements the room's central aggregator.
//
// The Aggregator is the single logical consumer of all bus traffic. It
// maintains the latest sensor and actuator values, bounded per-sensor
// history, monotonic comfort violation counters, and a rolling
// notification log, and applies edge rules that raise immediate alerts
// for critical readings. Observers pull consistent state through Snapshot
// and Analytics, or receive push events from a bounded fan-out queue that
// drops rather than blocks when an observer falls behind.
//
// The Router forwards control commands to actuator command topics without
// interpreting them.
package gateway
