package pacer

import (
	"testing"
	"time"

	"periphsim-go/bus"
	"periphsim-go/services/sim"
	"periphsim-go/services/sim/setups"
	"periphsim-go/types"
)

func TestStepAdvancesAndPublishes(t *testing.T) {
	tel := bus.NewBus(8)
	var cnt Counter
	c, err := sim.New(setups.ClockOnly, sim.Env{Cycles: cnt.Cycles}, tel)
	if err != nil {
		t.Fatal(err)
	}
	var ticks []int64
	s := &Service{Circuit: c, Counter: &cnt, OnTick: func(_ *sim.Circuit, us int64) { ticks = append(ticks, us) }}

	conn := tel.NewConnection("test")
	defer conn.Disconnect()
	val := conn.Subscribe(sim.ValueTopic(types.KindRTC, "clock"))

	s.Step()
	s.Step()
	if len(ticks) != 2 || ticks[0] != 20_000 || ticks[1] != 40_000 {
		t.Fatalf("ticks = %v", ticks)
	}
	if got := c.Clock().Millis(); got != 40 {
		t.Fatalf("simulated ms = %d", got)
	}
	for i := 0; i < 2; i++ {
		select {
		case <-val.Channel():
		default:
			t.Fatalf("batch %d published nothing", i)
		}
	}
}

func TestApplyConfig(t *testing.T) {
	s := &Service{}
	cases := []struct {
		payload any
		ok      bool
		want    time.Duration
	}{
		{map[string]any{"period_ms": 5.0}, true, 5 * time.Millisecond},
		{map[string]any{"period_ms": 0.5}, true, 500 * time.Microsecond},
		{map[string]any{"period_ms": -1.0}, false, 500 * time.Microsecond},
		{map[string]any{"period": 5.0}, false, 500 * time.Microsecond},
		{"fast", false, 500 * time.Microsecond},
	}
	for _, tc := range cases {
		if ok := s.applyConfig(tc.payload); ok != tc.ok || s.period() != tc.want {
			t.Fatalf("%v: ok=%v period=%v", tc.payload, ok, s.period())
		}
	}
}
