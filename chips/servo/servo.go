// Package servo decodes hobby-servo PWM from pin-level callbacks.
//
// A pulse is measured from a rising edge to the next falling edge. Widths
// inside [MinPulse, MaxPulse] map linearly onto an angle:
//
//	angle = clamp((width-1000)/1000*180, 0, 180)
//
// Anything outside the window is treated as a glitch and ignored. Time is
// whatever unit the injected source produces; the constants assume µs.
package servo

import (
	"periphsim-go/x/mathx"
	"periphsim-go/x/timex"
)

// Pulse window and mapping, in time-source units (µs).
const (
	MinPulse = 500
	MaxPulse = 2500

	zeroPulse  = 1000
	pulseSpan  = 1000
	MaxAngle   = 180.0
	NeutralDeg = 90.0
)

// ID identifies one actuator. The embedder chooses it (a pin number or a
// handle it assigned) and keeps it stable for the life of the circuit.
type ID int

// Listener is told about every published angle, including resets.
type Listener func(id ID, angle float64)

type track struct {
	level      bool
	pulseStart int64
	angle      float64
}

// Decoder tracks any number of actuators. It is not safe for concurrent use.
type Decoder struct {
	clock   timex.Source
	onAngle Listener
	tracks  map[ID]*track
	order   []ID
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithListener installs l as the angle sink.
func WithListener(l Listener) Option { return func(d *Decoder) { d.onAngle = l } }

// New returns a decoder reading time from clock (µs). clock may be nil if
// the caller always passes explicit timestamps to OnPinLevel.
func New(clock timex.Source, opts ...Option) *Decoder {
	d := &Decoder{
		clock:  clock,
		tracks: make(map[ID]*track),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Decoder) get(id ID) *track {
	tr, ok := d.tracks[id]
	if !ok {
		tr = &track{angle: NeutralDeg}
		d.tracks[id] = tr
		d.order = append(d.order, id)
	}
	return tr
}

// OnPinLevel feeds the level of id's control pin at time now.
func (d *Decoder) OnPinLevel(id ID, level bool, now int64) {
	tr := d.get(id)
	switch {
	case level && !tr.level:
		tr.pulseStart = now
	case !level && tr.level:
		width := now - tr.pulseStart
		if mathx.Between(width, MinPulse, MaxPulse) {
			tr.angle = PulseToAngle(width)
			d.publish(id, tr.angle)
		}
	}
	tr.level = level
}

// OnPin is OnPinLevel stamped with the injected clock.
func (d *Decoder) OnPin(id ID, level bool) {
	var now int64
	if d.clock != nil {
		now = d.clock()
	}
	d.OnPinLevel(id, level, now)
}

// Angle returns the last decoded angle for id.
func (d *Decoder) Angle(id ID) (float64, bool) {
	tr, ok := d.tracks[id]
	if !ok {
		return 0, false
	}
	return tr.angle, true
}

// Tracked lists actuators in first-seen order.
func (d *Decoder) Tracked() []ID {
	return append([]ID(nil), d.order...)
}

// ResetAll centres every tracked actuator and forgets edge state. Used when
// the simulated circuit is halted or rewound.
func (d *Decoder) ResetAll() {
	for _, id := range d.order {
		tr := d.tracks[id]
		tr.angle = NeutralDeg
		tr.level = false
		tr.pulseStart = 0
		d.publish(id, tr.angle)
	}
}

func (d *Decoder) publish(id ID, angle float64) {
	if d.onAngle != nil {
		d.onAngle(id, angle)
	}
}

// PulseToAngle maps a pulse width to degrees, clamped to [0, MaxAngle].
// It does not apply the glitch window.
func PulseToAngle(width int64) float64 {
	a := float64(width-zeroPulse) / pulseSpan * MaxAngle
	return mathx.Clamp(a, 0, MaxAngle)
}
