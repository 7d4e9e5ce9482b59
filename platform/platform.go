// Package platform isolates the external collaborators the core consumes:
// the console device, the wall clock with its daily alarm, the temperature
// sensor, the LED pin, and the low-power wait primitive. Hardware builds and
// host builds provide them behind the same interfaces, selected by build
// tags.
package platform

import (
	"deviceconsole-go/console"
	"deviceconsole-go/types"
)

// Clock is the external timekeeper. SetTime and SetDate each apply their
// whole field group atomically; validation of ranges happens in the caller.
type Clock interface {
	Now() types.DateTime
	SetTime(hour, minute, second uint8) error
	SetDate(year, month, day, weekday uint8) error

	// SetAlarm arms (or re-arms) the single daily alarm. fire runs outside
	// task context when the alarm triggers and must only use never-blocking
	// paths.
	SetAlarm(cfg types.AlarmConfig, fire func()) error
}

// TempSensor reads the ambient temperature in °C.
type TempSensor interface {
	Sample() float32
}

// LED is the blinkable output pin.
type LED interface {
	Set(on bool)
	Toggle()
}

// LowPower is the platform's wait-for-interrupt primitive. WaitForInterrupt
// returns on any wake event; the caller re-enters it while sleep is still
// requested.
type LowPower interface {
	WaitForInterrupt()
}

// Platform bundles everything the application wires at startup.
type Platform struct {
	Console console.Device
	Clock   Clock
	Sensor  TempSensor
	LED     LED
	Power   LowPower
}
