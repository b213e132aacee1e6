package decimalise

import (
	"math"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

// Exact decomposes through the shortest round-trip decimal string,
// which both float widths convert to without loss. Scales the compact
// decimal type can hold are extracted through it (fixed-width uint64
// coefficient, overflow surfaced as a parse error); scales its data
// model excludes, negative ones in particular, are split straight off
// the scientific string. Exact fails only for non-finite input and for
// negative zero.
type Exact struct{}

func (Exact) ToDecimal64(value float64, sink Sink) bool {
	return exactToDecimal(value, 64, sink)
}

// ToDecimal32 formats at float32 width: widening to float64 first
// would manufacture digits the 32-bit value never had.
func (Exact) ToDecimal32(value float32, sink Sink) bool {
	return exactToDecimal(float64(value), 32, sink)
}

func exactToDecimal(v float64, bits int, sink Sink) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if v == 0 {
		if math.Signbit(v) {
			// decimal libraries normalise -0 and 0 to the same value;
			// the sign has to be preserved upstream of this engine.
			return false
		}
		sink.Append(false, 0, 1)
		return true
	}
	s := strconv.FormatFloat(v, 'e', -1, bits)
	neg, digits, scale := splitScientific(s)
	if scale >= 0 && scale <= decimal.MaxScale {
		d, err := decimal.Parse(s)
		if err != nil {
			// coefficient overflow: hand the value to the next tier
			return false
		}
		sink.Append(d.IsNeg(), d.Coef(), d.Scale())
		return true
	}
	m, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return false
	}
	sink.Append(neg, m, scale)
	return true
}

// splitScientific takes strconv's 'e' form d.ddde±dd and returns the
// bare digit string with the scale implied by the exponent. The scale
// is negative when the magnitude outgrows the digit count; shortest
// output never carries trailing zeros, so the digits are already
// compact.
func splitScientific(s string) (neg bool, digits string, scale int) {
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	e := strings.IndexByte(s, 'e')
	mant, expPart := s[:e], s[e+1:]
	exp10, _ := strconv.Atoi(expPart)
	if dot := strings.IndexByte(mant, '.'); dot >= 0 {
		scale = len(mant) - dot - 1
		mant = mant[:dot] + mant[dot+1:]
	}
	return neg, mant, scale - exp10
}
