package core

// itoa converts an integer to a string without using fmt or strconv,
// which keeps the firmware image small
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// PatternString renders the low four bits of a coil pattern, coil D first
func PatternString(pattern uint8) string {
	var buf [4]byte
	for i := 0; i < 4; i++ {
		if pattern&(1<<(3-i)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf[:])
}
