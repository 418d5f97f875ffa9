// Package rtc binds a DS1307 clock chip into a circuit.
package rtc

import (
	"periphsim-go/chips/ds1307"
	"periphsim-go/types"
)

type Device struct {
	id     string
	chip   *ds1307.Chip
	millis func() int64
}

func (d *Device) ID() string       { return d.id }
func (d *Device) Kind() types.Kind { return types.KindRTC }

func (d *Device) Info() types.Info {
	return types.Info{
		SchemaVersion: 1,
		Driver:        "ds1307",
		Detail:        types.RTCInfo{Addr: d.chip.Address()},
	}
}

func (d *Device) Poll(emit func(payload any)) {
	emit(d.Value())
}

// Value is the clock as the registers would read now.
func (d *Device) Value() types.RTCValue {
	return types.RTCValue{
		Time:   d.chip.Now(),
		Halted: d.chip.Halted(),
		Hour12: d.chip.Hour12(),
		TS:     d.millis(),
	}
}

// Chip exposes the register model.
func (d *Device) Chip() *ds1307.Chip { return d.chip }
