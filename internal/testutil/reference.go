package testutil

// DirectForm filters x through b/a with a plain real difference equation,
//
//	a[0]*y[n] = sum b[k]*x[n-k] - sum_{k>=1} a[k]*y[n-k]
//
// It is the batch reference for sample-by-sample engines.
func DirectForm(b, a, x []float64) []float64 {
	y := make([]float64, len(x))
	for n := range x {
		var acc float64
		for k, bk := range b {
			if n-k >= 0 {
				acc += bk * x[n-k]
			}
		}
		for k := 1; k < len(a); k++ {
			if n-k >= 0 {
				acc -= a[k] * y[n-k]
			}
		}
		y[n] = acc / a[0]
	}
	return y
}
