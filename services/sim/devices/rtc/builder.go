package rtc

import (
	"context"
	"time"

	"periphsim-go/chips/ds1307"
	"periphsim-go/errcode"
	"periphsim-go/services/sim/internal/core"
)

func init() {
	core.RegisterBuilder("ds1307", builder{})
}

// Params for a "ds1307" device. Zero values select the chip defaults.
type Params struct {
	Addr     uint8          // 0 => 0x68
	Seed     time.Time      // zero => host clock at build
	Location *time.Location // nil => UTC
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := parseParams(in.Params)
	if err != nil {
		return nil, err
	}
	clock := in.Host.Clock()
	chip := ds1307.New(clock.MillisSource(), ds1307.Config{
		Address:  p.Addr,
		Seed:     p.Seed,
		Location: p.Location,
	})
	if _, err := in.Host.TWI().Register(chip.Address(), chip); err != nil {
		return nil, err
	}
	return &Device{id: in.ID, chip: chip, millis: clock.Millis}, nil
}

func parseParams(v any) (Params, error) {
	switch p := v.(type) {
	case nil:
		return Params{}, nil
	case Params:
		return p, nil
	case *Params:
		return *p, nil
	default:
		return Params{}, errcode.InvalidParams
	}
}
