// Package setups holds ready-made circuits for the console and tests.
package setups

import (
	"sort"

	ntcdev "periphsim-go/services/sim/devices/ntc"
	memdev "periphsim-go/services/sim/devices/regmem"
	rtcdev "periphsim-go/services/sim/devices/rtc"
	servodev "periphsim-go/services/sim/devices/servo"

	"periphsim-go/types"
)

// Bench is an Uno-style bench board: a DS1307 breakout, two servos on the
// timer pins, a thermistor on A0 and a scratch memory.
var Bench = types.CircuitConfig{
	FreqHz: 16_000_000,
	Devices: []types.Device{
		// Clock breakout (sim/rtc/clock/…)
		{ID: "clock", Type: "ds1307", Params: rtcdev.Params{}},

		// Servos on D9 and D10 (sim/servo/<id>/…)
		{ID: "pan", Type: "servo", Params: servodev.Params{Pin: 9}},
		{ID: "tilt", Type: "servo", Params: servodev.Params{Pin: 10}},

		// Thermistor divider on A0 (sim/temperature/ambient/…)
		{ID: "ambient", Type: "ntc", Params: ntcdev.Params{Channel: 0}},

		// 24C02-style scratch memory without the page logic.
		{ID: "scratch", Type: "regfile", Params: memdev.Params{Addr: 0x50, Size: 256}},
	},
}

// ClockOnly is the minimal circuit for driver bring-up.
var ClockOnly = types.CircuitConfig{
	Devices: []types.Device{
		{ID: "clock", Type: "ds1307", Params: rtcdev.Params{}},
	},
}

var byName = map[string]types.CircuitConfig{
	"bench": Bench,
	"clock": ClockOnly,
}

// Lookup returns the named setup.
func Lookup(name string) (types.CircuitConfig, bool) {
	c, ok := byName[name]
	return c, ok
}

// Names lists setup names, sorted.
func Names() []string {
	out := make([]string, 0, len(byName))
	for k := range byName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
