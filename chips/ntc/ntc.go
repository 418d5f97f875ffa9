// Package ntc models a 10 kΩ NTC thermistor in a pull-up divider feeding an
// ADC channel. The temperature is set by the embedder; the sensor reports
// the divider voltage the ADC would sample.
package ntc

import (
	"math"

	"periphsim-go/x/mathx"
)

// B-parameter model and divider constants.
const (
	R0      = 10_000.0 // Ω at T0
	T0      = 298.15   // K (25 °C)
	B       = 3950.0
	RPullUp = 10_000.0 // Ω
	VCC     = 5.0      // V
	ADCMax  = 1023

	MinTempC     = -40.0
	MaxTempC     = 125.0
	DefaultTempC = 25.0

	kelvin = 273.15
)

// Sensor holds the current temperature of one thermistor.
type Sensor struct {
	tempC float64
}

// New returns a sensor at DefaultTempC.
func New() *Sensor { return &Sensor{tempC: DefaultTempC} }

// SetTemperature clamps c to the sensor's range and returns the stored value.
func (s *Sensor) SetTemperature(c float64) float64 {
	s.tempC = mathx.Clamp(c, MinTempC, MaxTempC)
	return s.tempC
}

func (s *Sensor) Temperature() float64 { return s.tempC }

// Resistance of the thermistor at the current temperature.
func (s *Sensor) Resistance() float64 { return TemperatureToResistance(s.tempC) }

// Voltage at the divider midpoint: VCC * Rntc / (Rpullup + Rntc).
func (s *Sensor) Voltage() float64 {
	r := s.Resistance()
	return VCC * r / (RPullUp + r)
}

// ADC10 is the 10-bit conversion of Voltage, rounded.
func (s *Sensor) ADC10() uint16 {
	return uint16(math.Round(s.Voltage() / VCC * ADCMax))
}

// TemperatureToResistance applies R = R0 * exp(B * (1/T - 1/T0)).
func TemperatureToResistance(c float64) float64 {
	return R0 * math.Exp(B*(1/(c+kelvin)-1/T0))
}

// ResistanceToTemperature is the inverse of TemperatureToResistance.
func ResistanceToTemperature(r float64) float64 {
	return 1/(math.Log(r/R0)/B+1/T0) - kelvin
}

// ADCToResistance recovers the thermistor resistance from a 10-bit sample.
// A sample at or above VCC is a short (0 Ω); at or below 0 V it is open.
func ADCToResistance(sample float64, vcc, pullUp float64) float64 {
	v := sample / ADCMax * vcc
	if v >= vcc {
		return 0
	}
	if v <= 0 {
		return math.Inf(1)
	}
	return pullUp * v / (vcc - v)
}
