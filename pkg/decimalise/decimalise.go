// Package decimalise converts IEEE-754 floats into decimal
// (sign, mantissa, exponent) triples without big-number arithmetic on
// the common path. A value decomposes as
//
//	value == (-1)^neg * mantissa / 10^exponent
//
// Engines are immutable values, safe for concurrent use, and never
// touch the sink until they have committed to a result.
package decimalise

import (
	"errors"
	"math"
)

const (
	// MaxExponent is the largest exponent the scan engines walk to:
	// 10^18 is the last power of ten a signed 64-bit mantissa carries
	// for typical magnitudes.
	MaxExponent = 18

	// Band in which the general ordering trusts its engines for
	// doubles. Tuned values; serialized output depends on them, so
	// they are not re-derived.
	minGeneralAbs   = 1e-29
	maxGeneralAbs64 = 1e45

	// mantissaCeil is 2^63. Candidates at or above it do not fit the
	// signed 64-bit range and are left to the exact engine.
	mantissaCeil = float64(1 << 63)

	// scaleGuard stops a bounded scan one step before the mantissa
	// overflows.
	scaleGuard = uint64(math.MaxInt64 / 10)
)

var (
	// ErrPrecisionRange reports a Bounded engine constructed with a
	// max exponent outside [0, MaxExponent].
	ErrPrecisionRange = errors.New("decimalise: max exponent out of range [0,18]")

	// ErrHighPrecision is the panic value of the NoHighPrecision
	// default: silently dropping precision is never acceptable.
	ErrHighPrecision = errors.New("decimalise: high precision append not supported")
)

// Sink receives the result of one conversion. Append is called at most
// once per conversion, only after an engine has fully committed.
// Exponent may be negative when the magnitude outgrows the mantissa's
// digit budget. The high precision methods are the escape hatch for
// values no engine could decompose.
type Sink interface {
	Append(neg bool, mantissa uint64, exponent int)
	AppendHighPrecision64(value float64)
	AppendHighPrecision32(value float32)
}

// NoHighPrecision is the default escape hatch, meant to be embedded in
// sinks that only expect decomposable values. Both methods panic with
// ErrHighPrecision.
type NoHighPrecision struct{}

func (NoHighPrecision) AppendHighPrecision64(float64) { panic(ErrHighPrecision) }
func (NoHighPrecision) AppendHighPrecision32(float32) { panic(ErrHighPrecision) }

// Decimaliser attempts to decompose one float into a Sink. A false
// return means no acceptable representation was found; that is an
// expected outcome, not an error, and the sink is untouched.
type Decimaliser interface {
	ToDecimal64(value float64, sink Sink) bool
	ToDecimal32(value float32, sink Sink) bool
}

// Sequence tries each decimaliser in order and stops at the first
// success.
type Sequence []Decimaliser

func (s Sequence) ToDecimal64(value float64, sink Sink) bool {
	for _, d := range s {
		if d.ToDecimal64(value, sink) {
			return true
		}
	}
	return false
}

func (s Sequence) ToDecimal32(value float32, sink Sink) bool {
	for _, d := range s {
		if d.ToDecimal32(value, sink) {
			return true
		}
	}
	return false
}

// Policy is a named engine ordering plus the escape-hatch handoff.
// The zero value behaves like General. Policies are immutable and safe
// for concurrent use; pick one per serialization context rather than
// per call.
type Policy struct {
	d Decimaliser
}

// Decimalise64 runs the policy's engines over value. On total failure
// it invokes the sink's high-precision escape and returns false.
func (p Policy) Decimalise64(value float64, sink Sink) bool {
	if p.engine().ToDecimal64(value, sink) {
		return true
	}
	sink.AppendHighPrecision64(value)
	return false
}

// Decimalise32 is Decimalise64 for 32-bit floats.
func (p Policy) Decimalise32(value float32, sink Sink) bool {
	if p.engine().ToDecimal32(value, sink) {
		return true
	}
	sink.AppendHighPrecision32(value)
	return false
}

func (p Policy) engine() Decimaliser {
	if p.d == nil {
		return generalChain
	}
	return p.d
}

var generalChain Decimaliser = gate{Sequence{Lite{}, window{next: Exact{}, max: MaxExponent}}}

// LiteOnly tries the lite scan alone: raw speed over coverage. Values
// the scan cannot match go straight to the escape hatch.
func LiteOnly() Policy { return Policy{d: Lite{}} }

// General is the lite-then-exact ordering, range-gated to the band
// where the fast paths are trusted. Values outside the band, and
// in-band values whose exact form needs more than MaxExponent digits
// after the point, are handed to the escape hatch.
func General() Policy { return Policy{d: generalChain} }

// Standard is bounded-then-exact with the full digit budget.
func Standard() Policy {
	p, err := StandardWith(MaxExponent)
	if err != nil {
		panic(err)
	}
	return p
}

// StandardWith is bounded-then-exact emitting at most max digits after
// the decimal point on the bounded path.
func StandardWith(max int) (Policy, error) {
	b, err := NewBounded(max)
	if err != nil {
		return Policy{}, err
	}
	return Policy{d: Sequence{b, Exact{}}}, nil
}

// gate rejects values outside the trusted band before any engine runs.
type gate struct {
	next Decimaliser
}

func (g gate) ToDecimal64(value float64, sink Sink) bool {
	if value != 0 {
		abs := math.Abs(value)
		if abs < minGeneralAbs || abs >= maxGeneralAbs64 {
			return false
		}
	}
	return g.next.ToDecimal64(value, sink)
}

func (g gate) ToDecimal32(value float32, sink Sink) bool {
	if value != 0 && math.Abs(float64(value)) < minGeneralAbs {
		return false
	}
	return g.next.ToDecimal32(value, sink)
}

// window stages a decomposition and forwards it only when its exponent
// fits, so a rejection leaves the caller's sink untouched.
type window struct {
	next Decimaliser
	max  int
}

func (w window) ToDecimal64(value float64, sink Sink) bool {
	var c capture
	if !w.next.ToDecimal64(value, &c) || c.exponent > w.max {
		return false
	}
	sink.Append(c.neg, c.mantissa, c.exponent)
	return true
}

func (w window) ToDecimal32(value float32, sink Sink) bool {
	var c capture
	if !w.next.ToDecimal32(value, &c) || c.exponent > w.max {
		return false
	}
	sink.Append(c.neg, c.mantissa, c.exponent)
	return true
}

// capture holds one staged append. Engines never call the high
// precision methods, so the embedded defaults are unreachable.
type capture struct {
	NoHighPrecision
	neg      bool
	mantissa uint64
	exponent int
}

func (c *capture) Append(neg bool, mantissa uint64, exponent int) {
	c.neg, c.mantissa, c.exponent = neg, mantissa, exponent
}
