package core

import (
	"context"

	"periphsim-go/twi"
	"periphsim-go/types"
	"periphsim-go/x/timex"
)

// ---- Device model ----

type Device interface {
	ID() string
	Kind() types.Kind
	Info() types.Info
	// Poll reports display state once per completed instruction batch.
	// It must not block.
	Poll(emit func(payload any))
}

// Resetter is implemented by devices with state to clear on circuit reset.
type Resetter interface {
	Reset()
}

// ---- Circuit-injected resources ----

// Host is the part of the circuit a builder may touch.
type Host interface {
	TWI() *twi.Bus
	Clock() timex.SimClock
	// WatchPin claims pin for devID; fn runs on every reported level.
	WatchPin(pin int, devID string, fn func(level bool)) error
	// Servo claims pin for a pulse-width decoded actuator. onAngle runs on
	// every decoded angle, including resets.
	Servo(pin int, devID string, onAngle func(angle float64)) error
	// SetADC drives an analog input channel.
	SetADC(channel int, volts float64)
	// Publish emits a retained value for a device outside of Poll.
	Publish(kind types.Kind, devID string, payload any)
}

// Builder input
type BuilderInput struct {
	ID, Type string
	Params   any
	Host     Host
}

type Builder interface {
	Build(ctx context.Context, in BuilderInput) (Device, error)
}
