// Package timex converts the host core's cycle counter into simulated time.
// Wall-clock time is only read by callers that seed state at construction.
package timex

// Source returns elapsed simulated time in a unit fixed by its producer
// (milliseconds for the RTC, microseconds for pulse decoding).
type Source func() int64

// SimClock derives simulated time from a cycle counter and a core frequency.
type SimClock struct {
	Cycles func() uint64
	FreqHz uint32
}

// DefaultFreqHz matches the 16 MHz AVR reference board.
const DefaultFreqHz = 16_000_000

func (c SimClock) freq() uint64 {
	if c.FreqHz == 0 {
		return DefaultFreqHz
	}
	return uint64(c.FreqHz)
}

func (c SimClock) cycles() uint64 {
	if c.Cycles == nil {
		return 0
	}
	return c.Cycles()
}

// Millis returns round(cycles / freq * 1e3).
func (c SimClock) Millis() int64 { return scale(c.cycles(), 1_000, c.freq()) }

// Micros returns round(cycles / freq * 1e6).
func (c SimClock) Micros() int64 { return scale(c.cycles(), 1_000_000, c.freq()) }

// Nanos returns round(cycles / freq * 1e9).
func (c SimClock) Nanos() int64 { return scale(c.cycles(), 1_000_000_000, c.freq()) }

// MillisSource and MicrosSource adapt the clock for chip constructors.
func (c SimClock) MillisSource() Source { return c.Millis }
func (c SimClock) MicrosSource() Source { return c.Micros }

// CyclesFor returns the cycle count spanning us microseconds.
func (c SimClock) CyclesFor(us int64) uint64 {
	if us <= 0 {
		return 0
	}
	return uint64(us) * c.freq() / 1_000_000
}

// scale computes round(n*mul/div) without overflowing for realistic runs:
// whole periods and the remainder are scaled separately.
func scale(n, mul, div uint64) int64 {
	q, r := n/div, n%div
	return int64(q*mul + (r*mul+div/2)/div)
}
