package types

import "time"

// ---- Circuit state (retained) ----

type SimState struct {
	Level  string `json:"level"`  // "ready", "reset"
	Status string `json:"status"` // freeform short code
	TS     int64  `json:"ts_ms"`  // simulated ms
}

// ---- Device kinds & info ----

type Kind string

const (
	KindRTC         Kind = "rtc"
	KindServo       Kind = "servo"
	KindTemperature Kind = "temperature"
	KindMemory      Kind = "memory"
)

// Info envelope each device exposes (retained)
type Info struct {
	SchemaVersion int    `json:"schema_version"`
	Driver        string `json:"driver"`
	Detail        any    `json:"detail,omitempty"`
}

// ---- RTC ----

type RTCInfo struct {
	Addr uint8 `json:"addr"`
}

type RTCValue struct {
	Time   time.Time `json:"time"`
	Halted bool      `json:"halted"`
	Hour12 bool      `json:"hour12"`
	TS     int64     `json:"ts_ms"`
}

// ---- Servo ----

type ServoInfo struct {
	Pin int `json:"pin"`
}

type ServoValue struct {
	Angle float64 `json:"angle"` // degrees, 0..180
	TS    int64   `json:"ts_us"`
}

// ---- Temperature (analog) ----

type TemperatureInfo struct {
	Sensor  string `json:"sensor"` // "ntc"
	Channel int    `json:"channel"`
}

type TemperatureValue struct {
	DeciC int16   `json:"deci_c"`
	Volts float64 `json:"volts"`
	ADC   uint16  `json:"adc"`
}

// ---- Register file memory ----

type MemoryInfo struct {
	Addr uint8 `json:"addr"`
	Size int   `json:"size"`
	Wrap bool  `json:"wrap"`
}
