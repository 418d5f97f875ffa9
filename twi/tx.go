package twi

import (
	"github.com/pkg/errors"
	"tinygo.org/x/drivers"

	"periphsim-go/errcode"
)

var _ drivers.I2C = (*Bus)(nil)

// Tx runs a complete master transaction so firmware-side drivers written
// against drivers.I2C can talk to emulated chips:
//
//	START addr+W w... [repeated START addr+R r...] STOP
//
// An empty w with a non-empty r skips the write phase. Both empty is an
// address probe. The final read byte is not acknowledged.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > MaxAddress {
		return errors.Wrapf(errcode.InvalidAddress, "twi: tx address %#x", addr)
	}
	a := uint8(addr)
	defer b.Stop()

	if len(w) > 0 || len(r) == 0 {
		if !b.Start(a, true) {
			return errors.Wrapf(errcode.Nack, "twi: address %#02x", a)
		}
		for i, v := range w {
			if !b.Write(v) {
				return errors.Wrapf(errcode.Nack, "twi: %#02x byte %d", a, i)
			}
		}
	}
	if len(r) > 0 {
		if !b.Start(a, false) {
			return errors.Wrapf(errcode.Nack, "twi: address %#02x (read)", a)
		}
		for i := range r {
			r[i] = b.Read(i < len(r)-1)
		}
	}
	return nil
}

// Scan probes every address with an empty write and returns the ones that
// acknowledge, in ascending order.
func (b *Bus) Scan() []uint8 {
	var found []uint8
	for a := 0; a <= MaxAddress; a++ {
		if b.byAddr[a] == NoHandle {
			continue
		}
		if b.Tx(uint16(a), nil, nil) == nil {
			found = append(found, uint8(a))
		}
	}
	return found
}
