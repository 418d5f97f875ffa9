package main

import (
	"context"
	"os"
	"os/signal"

	"periphsim-go/bus"
	"periphsim-go/services/pacer"
	"periphsim-go/services/sim"
	"periphsim-go/services/sim/setups"
	"periphsim-go/types"
)

// Sweeps the bench servos in real time and prints the clock once a second.
func main() {
	println("boot")

	tel := bus.NewBus(32)
	var cnt pacer.Counter
	c, err := sim.New(setups.Bench, sim.Env{Cycles: cnt.Cycles}, tel)
	if err != nil {
		println("[main] circuit:", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := &pacer.Service{Circuit: c, Counter: &cnt, OnTick: sweep(&cnt)}
	if err := p.Start(ctx, tel.NewConnection("pacer")); err != nil {
		println("[main] pacer:", err.Error())
		os.Exit(1)
	}

	conn := tel.NewConnection("main")
	clock := conn.Subscribe(sim.ValueTopic(types.KindRTC, "clock"))
	var lastSec int64 = -1
	for {
		select {
		case <-ctx.Done():
			conn.Disconnect()
			return
		case m := <-clock.Channel():
			v, ok := m.Payload.(types.RTCValue)
			if !ok || v.TS/1000 == lastSec {
				continue
			}
			lastSec = v.TS / 1000
			println(v.Time.Format("15:04:05"), "clock")
		}
	}
}

// sweep emits one control pulse per servo per tick, its width ramping
// over 4 s. The pulse itself advances simulated time.
func sweep(cnt *pacer.Counter) func(*sim.Circuit, int64) {
	return func(c *sim.Circuit, nowUs int64) {
		width := 1000 + (nowUs%4_000_000)/4_000
		for _, pin := range []int{9, 10} {
			c.PinChanged(pin, true)
			cnt.Advance(c.Clock().CyclesFor(width))
			c.PinChanged(pin, false)
		}
	}
}
