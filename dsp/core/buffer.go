package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ShiftIn pushes x onto the front of a newest-first history and returns a
// history of exactly n values. Values that fall off the back are dropped and
// a history shorter than n is zero-padded at the back. buf capacity is reused
// when possible.
func ShiftIn(buf []float64, x float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	keep := min(len(buf), n-1)

	var out []float64
	if cap(buf) >= n {
		out = buf[:n]
	} else {
		out = make([]float64, n)
	}

	copy(out[1:1+keep], buf[:keep])
	Zero(out[1+keep:])
	out[0] = x

	return out
}
