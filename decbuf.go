// Package decbuf provides an elastic append-only byte buffer with
// exact, allocation-light decimal rendering of floating-point values.
// Floats are decomposed by a decimalise.Policy and written as plain
// decimal text; values no engine can decompose fall back to shortest
// scientific form.
package decbuf

import (
	"strconv"

	"github.com/rawbytedev/decbuf/pkg/decimalise"
)

// Options configures a Buffer.
type Options struct {
	// InitialSize pre-allocates the backing slice.
	InitialSize int
	// Policy selects the float rendering strategy. The zero value is
	// the general (lite-then-exact) policy.
	Policy decimalise.Policy
}

// Buffer is an elastic append-only byte buffer. The zero value is
// ready to use and renders floats with the general policy. A Buffer is
// not safe for concurrent use.
type Buffer struct {
	buf []byte
	pol decimalise.Policy
}

// New builds a Buffer from opts.
func New(opts Options) *Buffer {
	b := &Buffer{pol: opts.Policy}
	if opts.InitialSize > 0 {
		b.buf = make([]byte, 0, opts.InitialSize)
	}
	return b
}

// Bytes returns the written bytes. The slice is only valid until the
// next append.
func (b *Buffer) Bytes() []byte { return b.buf }

// String returns a copy of the written bytes.
func (b *Buffer) String() string { return string(b.buf) }

// Len reports the number of written bytes.
func (b *Buffer) Len() int { return len(b.buf) }

// Reset empties the buffer keeping its capacity.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// Write appends p, implementing io.Writer. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) (int, error) {
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// WriteByte appends a single byte, implementing io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// AppendFloat64 renders v as decimal text using the buffer's policy.
// It reports whether the value was decomposed exactly; otherwise the
// shortest scientific form was written instead.
func (b *Buffer) AppendFloat64(v float64) bool {
	return b.pol.Decimalise64(v, (*textSink)(b))
}

// AppendFloat32 is AppendFloat64 at float32 width.
func (b *Buffer) AppendFloat32(v float32) bool {
	return b.pol.Decimalise32(v, (*textSink)(b))
}

// textSink adapts Buffer to decimalise.Sink without widening the
// Buffer API.
type textSink Buffer

func (s *textSink) Append(neg bool, mantissa uint64, exponent int) {
	(*Buffer)(s).AppendDecimal(neg, mantissa, exponent)
}

func (s *textSink) AppendHighPrecision64(v float64) {
	b := (*Buffer)(s)
	b.buf = strconv.AppendFloat(b.buf, v, 'g', -1, 64)
}

func (s *textSink) AppendHighPrecision32(v float32) {
	b := (*Buffer)(s)
	b.buf = strconv.AppendFloat(b.buf, float64(v), 'g', -1, 32)
}
