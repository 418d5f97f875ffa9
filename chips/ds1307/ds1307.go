// Package ds1307 models a DS1307-style real-time-clock chip on the
// two-wire bus: 8 time-keeping registers and 56 bytes of RAM behind an
// auto-incrementing register pointer.
//
// The clock does not tick. Every read derives the time fields from elapsed
// simulated time:
//
//	now = refWall + (millis() - refInstant)
//
// Halting the oscillator (seconds bit7) freezes the registers. Writing the
// time-keeping registers while running re-anchors refWall to the written
// fields at the end of the transaction, so the clock continues from exactly
// what the master wrote.
package ds1307

import (
	"time"

	"periphsim-go/chips/regfile"
	"periphsim-go/x/timex"
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x68 if zero.
	Address uint8
	// Seed is the initial wall time. Zero reads the host clock once.
	Seed time.Time
	// Location for field decomposition. Defaults to UTC.
	Location *time.Location
}

// Chip is one emulated RTC.
type Chip struct {
	rf     *regfile.File
	millis timex.Source
	loc    *time.Location

	refInstant int64     // simulated ms at which refWall was true
	refWall    time.Time // wall time at refInstant
	halted     bool
	hour12     bool

	// Clock registers written in the current transaction; re-anchor at
	// anchorAt once the transaction ends.
	anchor   bool
	anchorAt int64
}

// New creates a chip seeded from cfg.Seed (or the host clock) at the
// current simulated instant. millis returns elapsed simulated milliseconds.
func New(millis timex.Source, cfg Config) *Chip {
	if cfg.Address == 0 {
		cfg.Address = Address
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Seed.IsZero() {
		cfg.Seed = time.Now()
	}
	c := &Chip{
		rf:     regfile.New(regfile.Config{Address: cfg.Address, Size: Size}),
		millis: millis,
		loc:    cfg.Location,
	}
	c.refInstant = c.now()
	c.refWall = cfg.Seed.In(c.loc)
	c.encodeFields(c.refWall)
	c.rf.Poke(RegControl, 0x00)
	return c
}

func (c *Chip) now() int64 {
	if c.millis == nil {
		return 0
	}
	return c.millis()
}

func (c *Chip) Address() uint8 { return c.rf.Address() }

// --- bus contract ---

func (c *Chip) TryConnect(addr uint8, _ bool) bool {
	if addr != c.rf.Address() {
		return false
	}
	c.rf.Reset()
	return true
}

func (c *Chip) ReceiveByte(v byte) bool {
	if !c.rf.PointerLoaded() {
		c.rf.Load(v)
		return true
	}
	reg := c.rf.Pointer()
	timekeeping := reg <= RegYear
	if timekeeping && !c.anchor {
		// Bring the untouched fields up to date before overwriting one.
		c.refresh()
	}
	c.rf.Store(v)

	switch {
	case reg == RegSeconds:
		c.halted = v&BitHalt != 0
	case reg == RegHours:
		c.hour12 = v&Bit12h != 0
	}
	if timekeeping {
		c.anchor = true
		c.anchorAt = c.now()
	}
	return true
}

func (c *Chip) ProduceByte(ack bool) byte {
	c.refresh()
	return c.rf.Fetch(ack)
}

func (c *Chip) Disconnect() {
	c.settle()
	c.rf.Reset()
}

// --- time derivation ---

// settle applies a pending re-anchor from written registers.
func (c *Chip) settle() {
	if !c.anchor {
		return
	}
	c.anchor = false
	c.refWall = c.decodeFields()
	c.refInstant = c.anchorAt
}

// refresh re-derives the time-keeping registers unless halted.
func (c *Chip) refresh() {
	c.settle()
	if c.halted {
		return
	}
	elapsed := time.Duration(c.now()-c.refInstant) * time.Millisecond
	c.encodeFields(c.refWall.Add(elapsed))
}

// --- embedder conveniences (not part of the bus contract) ---

// Now returns the decoded date and time as the registers would read now.
func (c *Chip) Now() time.Time {
	c.refresh()
	return c.decodeFields()
}

// Halted reports whether the oscillator is stopped.
func (c *Chip) Halted() bool { return c.halted }

// Hour12 reports whether the hours register is in 12-hour mode.
func (c *Chip) Hour12() bool { return c.hour12 }

// Control returns the control register.
func (c *Chip) Control() byte { return c.rf.Peek(RegControl) }

// Register returns register reg after lazy derivation, without moving the
// bus pointer.
func (c *Chip) Register(reg int) byte {
	c.refresh()
	return c.rf.Peek(reg)
}

// SetTime forces the time origin to t at the current simulated instant.
// A halted clock shows t and stays there until restarted.
func (c *Chip) SetTime(t time.Time) {
	c.anchor = false
	c.refInstant = c.now()
	c.refWall = t.In(c.loc)
	c.encodeFields(c.refWall)
}
