package decbuf

import (
	"strconv"

	"github.com/rawbytedev/decbuf/internal/common"
)

// AppendDecimal renders (-1)^neg * mantissa / 10^exponent as plain
// decimal text. A negative exponent scales up: zeros are appended on
// the integer side. Mantissa zero with the canonical exponent 1 renders
// as "0.0" so the sign survives a round trip through text.
func (b *Buffer) AppendDecimal(neg bool, mantissa uint64, exponent int) {
	if neg {
		b.buf = append(b.buf, '-')
	}
	var scratch [20]byte
	digits := strconv.AppendUint(scratch[:0], mantissa, 10)
	switch {
	case exponent <= 0:
		b.buf = append(b.buf, digits...)
		for ; exponent < 0; exponent++ {
			b.buf = append(b.buf, '0')
		}
	case exponent < len(digits):
		dot := len(digits) - exponent
		b.buf = append(b.buf, digits[:dot]...)
		b.buf = append(b.buf, '.')
		b.buf = append(b.buf, digits[dot:]...)
	default:
		b.buf = append(b.buf, '0', '.')
		for n := exponent - len(digits); n > 0; n-- {
			b.buf = append(b.buf, '0')
		}
		b.buf = append(b.buf, digits...)
	}
}

// EncodeDecimal appends the compact wire form of a decomposition: a
// zig-zag varint exponent, then the mantissa shifted left one bit with
// the sign in bit 0. The mantissa must be below 1<<63, which holds for
// everything the decimalise engines emit.
func (b *Buffer) EncodeDecimal(neg bool, mantissa uint64, exponent int) {
	b.buf = common.WriteVarUintTo(b.buf, common.ZigZag(int64(exponent)))
	m := mantissa << 1
	if neg {
		m |= 1
	}
	b.buf = common.WriteVarUintTo(b.buf, m)
}

// DecodeDecimal reads one EncodeDecimal record from p, returning the
// decomposition and the bytes consumed. A zero count means p was
// truncated.
func DecodeDecimal(p []byte) (neg bool, mantissa uint64, exponent int, n int) {
	e, n1 := common.ReadVarUint(p)
	if n1 == 0 {
		return false, 0, 0, 0
	}
	m, n2 := common.ReadVarUint(p[n1:])
	if n2 == 0 {
		return false, 0, 0, 0
	}
	return m&1 == 1, m >> 1, int(common.UnZigZag(e)), n1 + n2
}
