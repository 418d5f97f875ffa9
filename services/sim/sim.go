// Package sim assembles simulated peripherals into a circuit around a
// host-driven core: one two-wire bus, a pulse-width decoder shared by all
// servo pins, analog inputs, and a telemetry bus.
//
// The embedder owns the CPU model. It reports pin changes and completed
// instruction batches; the circuit never runs goroutines of its own.
package sim

import (
	"context"

	"github.com/pkg/errors"

	"periphsim-go/bus"
	"periphsim-go/chips/servo"
	"periphsim-go/errcode"
	"periphsim-go/services/sim/internal/core"
	"periphsim-go/twi"
	"periphsim-go/types"
	"periphsim-go/x/timex"
)

type Config = types.CircuitConfig
type DeviceConfig = types.Device

// Device is a built circuit part.
type Device = core.Device

// Env connects the circuit to its host core.
type Env struct {
	// Cycles returns the core's elapsed cycle count. Nil reads as zero.
	Cycles func() uint64
	// ADC receives analog input changes. Optional.
	ADC func(channel int, volts float64)
}

type pinWatch struct {
	devID string
	fn    func(level bool)
}

// Circuit is one simulated board. It is not safe for concurrent use; the
// embedder drives it from its instruction loop.
type Circuit struct {
	clock  timex.SimClock
	twi    *twi.Bus
	servos *servo.Decoder
	conn   *bus.Connection
	adcOut func(channel int, volts float64)

	devs    []Device
	byID    map[string]Device
	pins    map[int]pinWatch
	onAngle map[servo.ID]func(angle float64)
	adc     map[int]float64
}

// New builds every configured device. Any failure aborts construction.
// telemetry may be nil, in which case a private bus is created.
func New(cfg Config, env Env, telemetry *bus.Bus) (*Circuit, error) {
	if telemetry == nil {
		telemetry = bus.NewBus(16)
	}
	c := &Circuit{
		clock:   timex.SimClock{Cycles: env.Cycles, FreqHz: cfg.FreqHz},
		twi:     twi.New(),
		conn:    telemetry.NewConnection("sim"),
		adcOut:  env.ADC,
		byID:    make(map[string]Device),
		pins:    make(map[int]pinWatch),
		onAngle: make(map[servo.ID]func(float64)),
		adc:     make(map[int]float64),
	}
	c.servos = servo.New(c.clock.MicrosSource(), servo.WithListener(c.angleChanged))

	ctx := context.Background()
	for _, dc := range cfg.Devices {
		if err := c.build(ctx, dc); err != nil {
			println("[sim] build", dc.ID, "failed:", err.Error())
			return nil, err
		}
	}
	c.publishState("ready", "ok")
	return c, nil
}

func (c *Circuit) build(ctx context.Context, dc DeviceConfig) error {
	if _, dup := c.byID[dc.ID]; dup {
		return errors.Wrapf(errcode.DuplicateID, "device %q", dc.ID)
	}
	b, ok := core.LookupBuilder(dc.Type)
	if !ok {
		return errors.Wrapf(errcode.UnknownType, "device %q: type %q", dc.ID, dc.Type)
	}
	d, err := b.Build(ctx, core.BuilderInput{ID: dc.ID, Type: dc.Type, Params: dc.Params, Host: c})
	if err != nil {
		return errors.Wrapf(err, "device %q", dc.ID)
	}
	c.devs = append(c.devs, d)
	c.byID[dc.ID] = d
	c.conn.Publish(c.conn.NewMessage(core.TopicInfo(d.Kind(), d.ID()), d.Info(), true))
	return nil
}

// ---- core.Host ----

var _ core.Host = (*Circuit)(nil)

func (c *Circuit) TWI() *twi.Bus         { return c.twi }
func (c *Circuit) Clock() timex.SimClock { return c.clock }

func (c *Circuit) WatchPin(pin int, devID string, fn func(level bool)) error {
	if w, taken := c.pins[pin]; taken {
		return errors.Wrapf(errcode.PinInUse, "pin %d held by %q", pin, w.devID)
	}
	c.pins[pin] = pinWatch{devID: devID, fn: fn}
	return nil
}

func (c *Circuit) Servo(pin int, devID string, onAngle func(angle float64)) error {
	id := servo.ID(pin)
	if err := c.WatchPin(pin, devID, func(level bool) { c.servos.OnPin(id, level) }); err != nil {
		return err
	}
	c.onAngle[id] = onAngle
	return nil
}

func (c *Circuit) SetADC(channel int, volts float64) {
	c.adc[channel] = volts
	if c.adcOut != nil {
		c.adcOut(channel, volts)
	}
}

func (c *Circuit) Publish(kind types.Kind, devID string, payload any) {
	c.conn.Publish(c.conn.NewMessage(core.TopicValue(kind, devID), payload, true))
}

func (c *Circuit) angleChanged(id servo.ID, angle float64) {
	if fn := c.onAngle[id]; fn != nil {
		fn(angle)
	}
}

// ---- embedder API ----

// PinChanged reports a digital output level. Unwatched pins are ignored.
func (c *Circuit) PinChanged(pin int, level bool) {
	if w, ok := c.pins[pin]; ok {
		w.fn(level)
	}
}

// BatchCompleted lets every device publish its display state.
func (c *Circuit) BatchCompleted() {
	for _, d := range c.devs {
		kind, id := d.Kind(), d.ID()
		d.Poll(func(payload any) { c.Publish(kind, id, payload) })
	}
}

// Reset returns actuators to neutral and clears resettable device state.
// Register chips keep their contents, as on a core reset.
func (c *Circuit) Reset() {
	c.twi.Stop()
	c.servos.ResetAll()
	for _, d := range c.devs {
		if r, ok := d.(core.Resetter); ok {
			r.Reset()
		}
	}
	c.publishState("reset", "ok")
}

// Device returns the device built for id.
func (c *Circuit) Device(id string) (Device, error) {
	d, ok := c.byID[id]
	if !ok {
		return nil, errors.Wrapf(errcode.UnknownDevice, "device %q", id)
	}
	return d, nil
}

// Devices lists devices in configuration order.
func (c *Circuit) Devices() []Device { return append([]Device(nil), c.devs...) }

// Servos exposes the shared pulse decoder.
func (c *Circuit) Servos() *servo.Decoder { return c.servos }

// ADC returns the last voltage driven onto channel.
func (c *Circuit) ADC(channel int) (float64, bool) {
	v, ok := c.adc[channel]
	return v, ok
}

func (c *Circuit) publishState(level, status string) {
	st := types.SimState{Level: level, Status: status, TS: c.clock.Millis()}
	c.conn.Publish(c.conn.NewMessage(core.TopicState(), st, true))
}

// Topic helpers for telemetry subscribers.
func InfoTopic(kind types.Kind, id string) bus.Topic  { return core.TopicInfo(kind, id) }
func ValueTopic(kind types.Kind, id string) bus.Topic { return core.TopicValue(kind, id) }
func StateTopic() bus.Topic                           { return core.TopicState() }

// BuilderTypes lists the registered device types.
func BuilderTypes() []string { return core.BuilderTypes() }
