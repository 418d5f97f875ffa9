// Package pacer drives a circuit in real time when no CPU model is
// attached: every period it advances a cycle counter by one period's worth
// of cycles and completes a batch.
package pacer

import (
	"context"
	"sync/atomic"
	"time"

	"periphsim-go/bus"
	"periphsim-go/services/sim"
)

// DefaultPeriod is one display frame.
const DefaultPeriod = 20 * time.Millisecond

// Counter is a cycle counter shared with the circuit's Env.
type Counter struct{ n atomic.Uint64 }

func (c *Counter) Cycles() uint64    { return c.n.Load() }
func (c *Counter) Advance(by uint64)  { c.n.Add(by) }

// TopicConfig carries {"period_ms": n} to retune a running pacer.
func TopicConfig() bus.Topic { return bus.T("config", "pacer") }

// Service owns the circuit while running; nothing else may drive it.
type Service struct {
	Circuit *sim.Circuit
	Counter *Counter
	Period  time.Duration
	// OnTick runs before each batch with the simulated time in µs.
	OnTick func(c *sim.Circuit, nowUs int64)
}

// Step advances one period and completes a batch.
func (s *Service) Step() {
	s.Counter.Advance(s.Circuit.Clock().CyclesFor(s.period().Microseconds()))
	if s.OnTick != nil {
		s.OnTick(s.Circuit, s.Circuit.Clock().Micros())
	}
	s.Circuit.BatchCompleted()
}

func (s *Service) period() time.Duration {
	if s.Period <= 0 {
		return DefaultPeriod
	}
	return s.Period
}

// applyConfig reads a period change from a config payload.
func (s *Service) applyConfig(payload any) bool {
	m, ok := payload.(map[string]any)
	if !ok {
		return false
	}
	ms, ok := m["period_ms"].(float64)
	if !ok || ms <= 0 {
		return false
	}
	s.Period = time.Duration(ms * float64(time.Millisecond))
	return true
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(TopicConfig())
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.period())
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("[pacer] stopping")
			return
		case <-tick.C:
			s.Step()
		case msg := <-cfgSub.Channel():
			if s.applyConfig(msg.Payload) {
				tick.Reset(s.period())
				println("[pacer] period set to", s.period().String())
			}
		}
	}
}

// Start runs the pacer until ctx is cancelled.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
