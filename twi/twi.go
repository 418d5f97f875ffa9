// Package twi models a single-master two-wire (I²C-style) bus.
//
// The bus owns protocol framing (START, address+direction, ACK, data, STOP)
// and exposes byte-granular operations to the embedder. Devices never see
// raw pin toggles; they implement Device and are routed to by 7-bit address.
//
// A Bus is not safe for concurrent use. All calls are expected from the
// single callback goroutine that drives the simulated core.
package twi

import (
	"github.com/pkg/errors"

	"periphsim-go/errcode"
)

// MaxAddress is the highest 7-bit address.
const MaxAddress = 0x7F

// IdleByte is what a read returns when no device drives the bus.
const IdleByte = 0xFF

// Device is the capability set every chip on the bus implements.
type Device interface {
	// TryConnect reports whether the device answers addr. It may reset
	// framing so that the next received byte is a register pointer.
	TryConnect(addr uint8, write bool) bool
	// ReceiveByte handles one byte written by the master and returns the ACK.
	ReceiveByte(v byte) bool
	// ProduceByte returns the next byte for the master. The device advances
	// its pointer only when ack is true.
	ProduceByte(ack bool) byte
	// Disconnect ends the transaction.
	Disconnect()
}

// Handle is a stable index assigned at registration time.
type Handle int

// NoHandle marks an empty slot.
const NoHandle Handle = -1

type slot struct {
	addr uint8
	dev  Device
}

// Bus routes transactions to the registered device at an address.
type Bus struct {
	slots  []slot
	byAddr [MaxAddress + 1]Handle
	sel    Handle
}

// New returns an empty bus.
func New() *Bus {
	b := &Bus{sel: NoHandle}
	for i := range b.byAddr {
		b.byAddr[i] = NoHandle
	}
	return b
}

// Register binds d to addr. Binding an address twice is a configuration
// error and must be treated as fatal by the caller.
func (b *Bus) Register(addr uint8, d Device) (Handle, error) {
	if addr > MaxAddress {
		return NoHandle, errors.Wrapf(errcode.InvalidAddress, "twi: address %#02x", addr)
	}
	if d == nil {
		return NoHandle, errors.Wrap(errcode.InvalidParams, "twi: nil device")
	}
	if h := b.byAddr[addr]; h != NoHandle {
		return NoHandle, errors.Wrapf(errcode.AddressInUse, "twi: address %#02x held by handle %d", addr, h)
	}
	h := Handle(len(b.slots))
	b.slots = append(b.slots, slot{addr: addr, dev: d})
	b.byAddr[addr] = h
	return h, nil
}

// Device returns the device registered under h.
func (b *Bus) Device(h Handle) (Device, bool) {
	if h < 0 || int(h) >= len(b.slots) {
		return nil, false
	}
	return b.slots[h].dev, true
}

// Lookup returns the handle bound to addr.
func (b *Bus) Lookup(addr uint8) (Handle, bool) {
	if addr > MaxAddress {
		return NoHandle, false
	}
	h := b.byAddr[addr]
	return h, h != NoHandle
}

// Selected returns the device currently in a transaction, if any.
func (b *Bus) Selected() (Handle, bool) { return b.sel, b.sel != NoHandle }

// Start issues a START (or repeated START) followed by the address byte.
// Any device still selected is disconnected first. It returns the ACK.
func (b *Bus) Start(addr uint8, write bool) bool {
	b.Stop()
	h, ok := b.Lookup(addr)
	if !ok {
		return false
	}
	if !b.slots[h].dev.TryConnect(addr, write) {
		return false
	}
	b.sel = h
	return true
}

// Write sends one data byte to the selected device and returns its ACK.
// With nothing selected the byte is lost and the result is a NACK.
func (b *Bus) Write(v byte) bool {
	if b.sel == NoHandle {
		return false
	}
	return b.slots[b.sel].dev.ReceiveByte(v)
}

// Read clocks one byte out of the selected device. ack tells the device
// whether the master will accept another byte.
func (b *Bus) Read(ack bool) byte {
	if b.sel == NoHandle {
		return IdleByte
	}
	return b.slots[b.sel].dev.ProduceByte(ack)
}

// Stop issues a STOP. It is a no-op when nothing is selected.
func (b *Bus) Stop() {
	if b.sel == NoHandle {
		return
	}
	d := b.slots[b.sel].dev
	b.sel = NoHandle
	d.Disconnect()
}
