package ntc

import (
	"context"

	"periphsim-go/errcode"
	"periphsim-go/services/sim/internal/core"
)

func init() {
	core.RegisterBuilder("ntc", builder{})
}

// Params for an "ntc" thermistor divider on an analog channel.
type Params struct {
	Channel int
	// InitialC is applied when SetInitial is true; otherwise the sensor
	// starts at 25 °C.
	InitialC   float64
	SetInitial bool
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, ok := in.Params.(Params)
	if !ok {
		return nil, errcode.InvalidParams
	}
	if p.Channel < 0 {
		return nil, errcode.InvalidParams
	}
	d := newDevice(in.ID, p.Channel, in.Host)
	if p.SetInitial {
		d.sensor.SetTemperature(p.InitialC)
	}
	d.drive()
	return d, nil
}
