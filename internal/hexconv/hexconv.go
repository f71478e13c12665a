package hexconv

// halfbyte holds the value of every hex digit plus one, so zero marks non-hex characters.
var halfbyte = [256]byte{
	'0': 0x1,
	'1': 0x2,
	'2': 0x3,
	'3': 0x4,
	'4': 0x5,
	'5': 0x6,
	'6': 0x7,
	'7': 0x8,
	'8': 0x9,
	'9': 0xa,
	'a': 0xb,
	'b': 0xc,
	'c': 0xd,
	'd': 0xe,
	'e': 0xf,
	'f': 0x10,
	'A': 0xb,
	'B': 0xc,
	'C': 0xd,
	'D': 0xe,
	'E': 0xf,
	'F': 0x10,
}

// Parse returns the value of a hex digit. Both cases are accepted.
func Parse(char byte) (value byte, ok bool) {
	v := halfbyte[char]
	return v - 1, v != 0
}

// Byte decodes a pair of hex digits, the high one first.
func Byte(hi, lo byte) (byte, bool) {
	h, ok1 := Parse(hi)
	l, ok2 := Parse(lo)

	return h<<4 | l, ok1 && ok2
}
