// Package actuator implements the room's decision state machines and the
// engines that run them.
//
// Each actuator kind (smart light, climate control, focus mode,
// notification system) is a pure decision function plus a thin Actuator
// wrapper holding its state. An Engine owns one actuator: it accumulates
// the latest sensor readings from the bus, applies manual commands, and
// evaluates the decision function on a fixed tick, publishing state and
// notifications back to the bus.
//
// Decision functions take the current state and a reading snapshot and
// return the next state, so every transition is unit-testable without a
// broker or a clock.
package actuator
