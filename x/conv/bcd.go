package conv

// ToBCD packs a decimal value 0..99 as one digit per nibble.
// Values above 99 keep only the last two digits.
func ToBCD(dec int) byte {
	if dec < 0 {
		dec = -dec
	}
	dec %= 100
	return byte(dec/10)<<4 | byte(dec%10)
}

// FromBCD unpacks a two-digit BCD byte. Nibbles above 9 are taken at face
// value, as silicon counters do.
func FromBCD(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}
