// Package regmem places a plain pointer-addressed register memory on the
// two-wire bus.
package regmem

import (
	"context"

	"github.com/pkg/errors"

	"periphsim-go/chips/regfile"
	"periphsim-go/errcode"
	"periphsim-go/services/sim/internal/core"
	"periphsim-go/types"
)

func init() {
	core.RegisterBuilder("regfile", builder{})
}

type Params struct {
	Addr   uint8
	Size   int // 0 => 64
	NoWrap bool
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, ok := in.Params.(Params)
	if !ok {
		return nil, errcode.InvalidParams
	}
	if p.Size < 0 || p.Size > 256 {
		return nil, errors.Wrapf(errcode.InvalidParams, "size %d", p.Size)
	}
	f := regfile.New(regfile.Config{Address: p.Addr, Size: p.Size, NoWrap: p.NoWrap})
	if _, err := in.Host.TWI().Register(p.Addr, f); err != nil {
		return nil, err
	}
	return &Device{id: in.ID, file: f, wrap: !p.NoWrap}, nil
}

type Device struct {
	id   string
	file *regfile.File
	wrap bool
}

func (d *Device) ID() string       { return d.id }
func (d *Device) Kind() types.Kind { return types.KindMemory }

func (d *Device) Info() types.Info {
	return types.Info{
		SchemaVersion: 1,
		Driver:        "regfile",
		Detail:        types.MemoryInfo{Addr: d.file.Address(), Size: d.file.Size(), Wrap: d.wrap},
	}
}

// Poll has nothing to report; contents are read over the bus.
func (d *Device) Poll(func(payload any)) {}

// File exposes the register array.
func (d *Device) File() *regfile.File { return d.file }
