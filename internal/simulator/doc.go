// Package simulator generates synthetic sensor readings for the room.
//
// Each sensor type is a Generator: bounded random walks for temperature,
// humidity, and noise, time-of-day bands for light, and presence periods
// for motion. The Simulator publishes one reading per generator on a
// fixed interval, which is enough to exercise every decision path in the
// actuators and the gateway without real hardware.
package simulator
