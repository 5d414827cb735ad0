package core

// itoa64 converts a signed integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa64(n int64) string {
	if n < 0 {
		// Negate in unsigned space so the minimum value survives
		return "-" + utoa64(uint64(-(n + 1))+1)
	}
	return utoa64(uint64(n))
}

// utoa64 converts an unsigned 64-bit integer to a string
func utoa64(n uint64) string {
	if n == 0 {
		return "0"
	}

	// uint64 has at most 20 decimal digits
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
