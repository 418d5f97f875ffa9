package ds1307

// 7-bit bus address (1101_000b).
const Address = 0x68

// Register map.
const (
	RegSeconds = 0x00 // CH bit7
	RegMinutes = 0x01
	RegHours   = 0x02 // 12/24 bit6, PM bit5 (12-hour mode)
	RegWeekday = 0x03 // 1..7, not BCD-significant
	RegDate    = 0x04
	RegMonth   = 0x05
	RegYear    = 0x06 // 00..99 after CenturyBase
	RegControl = 0x07
	RAMStart   = 0x08
	RAMEnd     = 0x3F

	Size = RAMEnd + 1
)

// Bitfields.
const (
	BitHalt = 0x80 // seconds: clock halt
	Bit12h  = 0x40 // hours: 12-hour mode
	BitPM   = 0x20 // hours: PM in 12-hour mode

	maskSeconds = 0x7F
	maskMinutes = 0x7F
	maskHour24  = 0x3F
	maskHour12  = 0x1F
	maskDate    = 0x3F
	maskMonth   = 0x1F
	maskWeekday = 0x07
)

// CenturyBase is added to the two-digit year register.
const CenturyBase = 2000
