package servo

import (
	"context"

	"github.com/pkg/errors"

	"periphsim-go/errcode"
	"periphsim-go/services/sim/internal/core"
)

func init() {
	core.RegisterBuilder("servo", builder{})
}

type Params struct {
	Pin int
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, ok := in.Params.(Params)
	if !ok {
		return nil, errcode.InvalidParams
	}
	if p.Pin < 0 {
		return nil, errors.Wrapf(errcode.InvalidParams, "pin %d", p.Pin)
	}
	d := &Device{id: in.ID, pin: p.Pin, host: in.Host, angle: neutral}
	if err := in.Host.Servo(p.Pin, in.ID, d.onAngle); err != nil {
		return nil, err
	}
	return d, nil
}
