package types

// Circuit configuration: one entry per simulated part.

type CircuitConfig struct {
	FreqHz  uint32   `json:"freq_hz,omitempty"` // 0 => 16 MHz
	Devices []Device `json:"devices"`
}

type Device struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Params any    `json:"params,omitempty"`
}
