// Package servo binds a pulse-width controlled actuator to a circuit pin.
package servo

import (
	chip "periphsim-go/chips/servo"
	"periphsim-go/services/sim/internal/core"
	"periphsim-go/types"
)

const neutral = chip.NeutralDeg

type Device struct {
	id    string
	pin   int
	host  core.Host
	angle float64
}

func (d *Device) ID() string       { return d.id }
func (d *Device) Kind() types.Kind { return types.KindServo }

func (d *Device) Info() types.Info {
	return types.Info{SchemaVersion: 1, Driver: "servo", Detail: types.ServoInfo{Pin: d.pin}}
}

func (d *Device) Poll(emit func(payload any)) { emit(d.value()) }

// Angle is the last decoded angle in degrees.
func (d *Device) Angle() float64 { return d.angle }

// onAngle publishes immediately so subscribers see every decoded pulse,
// not only the state at batch boundaries.
func (d *Device) onAngle(a float64) {
	d.angle = a
	d.host.Publish(types.KindServo, d.id, d.value())
}

func (d *Device) value() types.ServoValue {
	return types.ServoValue{Angle: d.angle, TS: d.host.Clock().Micros()}
}
