package decimalise

import "math"

// Lite is the fast path: scan decimal exponents upward and accept the
// first mantissa that reproduces the input exactly in the input's own
// precision. Most hand-written decimals match within a few steps;
// anything else is reported with a false return and left to a
// fallback. At most 19 iterations, no allocation.
type Lite struct{}

func (Lite) ToDecimal64(value float64, sink Sink) bool {
	if math.IsNaN(value) {
		return false
	}
	if value == 0 {
		sink.Append(math.Signbit(value), 0, 1)
		return true
	}
	// sign comes from the bit pattern, not a comparison: -0.0 < 0.0
	// is false.
	neg := math.Signbit(value)
	abs := math.Abs(value)
	factor := 1.0
	for exp := 0; exp <= MaxExponent; exp++ {
		scaled := abs * factor
		if scaled >= mantissaCeil {
			return false
		}
		m := uint64(math.Round(scaled))
		if float64(m)/factor == abs {
			sink.Append(neg, m, exp)
			return true
		}
		factor *= 10
	}
	return false
}

func (Lite) ToDecimal32(value float32, sink Sink) bool {
	v := float64(value)
	if math.IsNaN(v) {
		return false
	}
	if v == 0 {
		sink.Append(math.Signbit(v), 0, 1)
		return true
	}
	neg := math.Signbit(v)
	abs := math.Abs(v)
	factor := 1.0
	for exp := 0; exp <= MaxExponent; exp++ {
		scaled := abs * factor
		if scaled >= mantissaCeil {
			return false
		}
		m := uint64(math.Round(scaled))
		// The round trip must be checked in float32: boundary values
		// pass the float64 check and come back wrong.
		if float32(float64(m)/factor) == value {
			sink.Append(neg, m, exp)
			return true
		}
		factor *= 10
	}
	return false
}
