package decimalise

import (
	"fmt"
	"math"
)

// Bounded is the lite scan with a hard cap on the exponent. Unlike
// Lite it never walks away empty-handed for in-range input: when no
// exact match exists within the cap it emits the closest candidate,
// compacted by trimming trailing zeros down to exponent 0. The
// compaction is part of the observable output and is pinned by tests.
// It fails only for non-finite input or magnitudes beyond the signed
// 64-bit range.
type Bounded struct {
	max int
}

// NewBounded builds a Bounded engine emitting at most max digits after
// the decimal point. A max outside [0, MaxExponent] is a construction
// error, not a use-time one.
func NewBounded(max int) (Bounded, error) {
	if max < 0 || max > MaxExponent {
		return Bounded{}, fmt.Errorf("%w: %d", ErrPrecisionRange, max)
	}
	return Bounded{max: max}, nil
}

// MustBounded is NewBounded for static configuration; it panics on a
// bad max.
func MustBounded(max int) Bounded {
	b, err := NewBounded(max)
	if err != nil {
		panic(err)
	}
	return b
}

// Max returns the configured exponent cap.
func (b Bounded) Max() int { return b.max }

func (b Bounded) ToDecimal64(value float64, sink Sink) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	if value == 0 {
		sink.Append(math.Signbit(value), 0, 1)
		return true
	}
	neg := math.Signbit(value)
	abs := math.Abs(value)
	var (
		best    uint64
		bestExp int
		found   bool
	)
	factor := 1.0
	for exp := 0; exp <= b.max; exp++ {
		scaled := abs * factor
		if scaled >= mantissaCeil {
			break
		}
		m := uint64(math.Round(scaled))
		if float64(m)/factor == abs {
			sink.Append(neg, m, exp)
			return true
		}
		best, bestExp, found = m, exp, true
		if m > scaleGuard {
			// one more step would overflow the mantissa
			break
		}
		factor *= 10
	}
	if !found {
		return false
	}
	commitRounded(sink, neg, best, bestExp)
	return true
}

func (b Bounded) ToDecimal32(value float32, sink Sink) bool {
	v := float64(value)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if v == 0 {
		sink.Append(math.Signbit(v), 0, 1)
		return true
	}
	neg := math.Signbit(v)
	abs := math.Abs(v)
	var (
		best    uint64
		bestExp int
		found   bool
	)
	factor := 1.0
	for exp := 0; exp <= b.max; exp++ {
		scaled := abs * factor
		if scaled >= mantissaCeil {
			break
		}
		m := uint64(math.Round(scaled))
		if float32(float64(m)/factor) == value {
			sink.Append(neg, m, exp)
			return true
		}
		best, bestExp, found = m, exp, true
		if m > scaleGuard {
			break
		}
		factor *= 10
	}
	if !found {
		return false
	}
	commitRounded(sink, neg, best, bestExp)
	return true
}

// commitRounded emits an inexact candidate in its most compact form:
// trailing zeros move out of the mantissa into the exponent, down to
// exponent 0.
func commitRounded(sink Sink, neg bool, m uint64, exp int) {
	for exp > 0 && m%10 == 0 {
		m /= 10
		exp--
	}
	sink.Append(neg, m, exp)
}
