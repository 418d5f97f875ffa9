package ds1307

import (
	"time"

	"periphsim-go/x/conv"
)

// EncodeHour packs hour 0..23 for the hours register.
//
//	24-hour: BCD(hour)
//	12-hour: BCD(1..12) | Bit12h | BitPM when hour >= 12
func EncodeHour(hour int, twelve bool) byte {
	if !twelve {
		return conv.ToBCD(hour)
	}
	pm := hour >= 12
	h := hour % 12
	if h == 0 {
		h = 12
	}
	b := conv.ToBCD(h) | Bit12h
	if pm {
		b |= BitPM
	}
	return b
}

// DecodeHour is the inverse of EncodeHour. The mode comes from bit6 of b;
// bit7 is ignored in both modes.
func DecodeHour(b byte) int {
	if b&Bit12h == 0 {
		return conv.FromBCD(b & maskHour24)
	}
	h := conv.FromBCD(b & maskHour12)
	if h == 12 {
		h = 0
	}
	if b&BitPM != 0 {
		h += 12
	}
	return h
}

// encodeFields writes the time-keeping registers for t. The halt bit is
// preserved from the current seconds register.
func (c *Chip) encodeFields(t time.Time) {
	halt := c.rf.Peek(RegSeconds) & BitHalt
	c.rf.Poke(RegSeconds, conv.ToBCD(t.Second())|halt)
	c.rf.Poke(RegMinutes, conv.ToBCD(t.Minute()))
	c.rf.Poke(RegHours, EncodeHour(t.Hour(), c.hour12))
	c.rf.Poke(RegWeekday, byte(t.Weekday())+1)
	c.rf.Poke(RegDate, conv.ToBCD(t.Day()))
	c.rf.Poke(RegMonth, conv.ToBCD(int(t.Month())))
	c.rf.Poke(RegYear, conv.ToBCD(t.Year()-CenturyBase))
}

// decodeFields rebuilds a time from the registers. Out-of-range fields are
// normalised by time.Date the same way a calendar rollover would.
func (c *Chip) decodeFields() time.Time {
	return time.Date(
		CenturyBase+conv.FromBCD(c.rf.Peek(RegYear)),
		time.Month(conv.FromBCD(c.rf.Peek(RegMonth)&maskMonth)),
		conv.FromBCD(c.rf.Peek(RegDate)&maskDate),
		DecodeHour(c.rf.Peek(RegHours)),
		conv.FromBCD(c.rf.Peek(RegMinutes)&maskMinutes),
		conv.FromBCD(c.rf.Peek(RegSeconds)&maskSeconds),
		0, c.loc,
	)
}
