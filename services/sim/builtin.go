package sim

// Built-in device types.
import (
	_ "periphsim-go/services/sim/devices/ntc"
	_ "periphsim-go/services/sim/devices/regmem"
	_ "periphsim-go/services/sim/devices/rtc"
	_ "periphsim-go/services/sim/devices/servo"
)
