// Package ntc binds a thermistor divider to an analog input of the circuit.
package ntc

import (
	"math"

	"periphsim-go/chips/ntc"
	"periphsim-go/services/sim/internal/core"
	"periphsim-go/types"
)

type Device struct {
	id      string
	channel int
	host    core.Host
	sensor  *ntc.Sensor
}

func newDevice(id string, ch int, h core.Host) *Device {
	return &Device{id: id, channel: ch, host: h, sensor: ntc.New()}
}

func (d *Device) ID() string       { return d.id }
func (d *Device) Kind() types.Kind { return types.KindTemperature }

func (d *Device) Info() types.Info {
	return types.Info{
		SchemaVersion: 1,
		Driver:        "ntc",
		Detail:        types.TemperatureInfo{Sensor: "ntc", Channel: d.channel},
	}
}

func (d *Device) Poll(emit func(payload any)) { emit(d.Value()) }

// SetTemperature clamps c to the sensor range, drives the new divider
// voltage onto the channel and returns the stored temperature.
func (d *Device) SetTemperature(c float64) float64 {
	got := d.sensor.SetTemperature(c)
	d.drive()
	d.host.Publish(types.KindTemperature, d.id, d.Value())
	return got
}

func (d *Device) Temperature() float64 { return d.sensor.Temperature() }

func (d *Device) Value() types.TemperatureValue {
	return types.TemperatureValue{
		DeciC: int16(math.Round(d.sensor.Temperature() * 10)),
		Volts: d.sensor.Voltage(),
		ADC:   d.sensor.ADC10(),
	}
}

func (d *Device) drive() { d.host.SetADC(d.channel, d.sensor.Voltage()) }
