package decbuf

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/decbuf/pkg/decimalise"
)

func TestAppendFloat64Text(t *testing.T) {
	cases := []struct {
		in    float64
		out   string
		exact bool
	}{
		{-3.14, "-3.14", true},
		{1e-6, "0.000001", true},
		{0, "0.0", true},
		{math.Copysign(0, -1), "-0.0", true},
		{123456789.012345, "123456789.012345", true},
		{1e18, "1000000000000000000", true},
		{float64(math.MinInt64), "-9223372036854776000", true},
		// escape hatch: shortest scientific text
		{1e-20, "1e-20", false},
		{1e300, "1e+300", false},
		{math.NaN(), "NaN", false},
		{math.Inf(1), "+Inf", false},
	}
	for _, c := range cases {
		b := New(Options{})
		assert.Equal(t, c.exact, b.AppendFloat64(c.in), "value %v", c.in)
		assert.Equal(t, c.out, b.String(), "value %v", c.in)
	}
}

func TestAppendFloat32Text(t *testing.T) {
	b := New(Options{})
	require.True(t, b.AppendFloat32(12.3))
	assert.Equal(t, "12.3", b.String())

	b.Reset()
	require.False(t, b.AppendFloat32(1e-30))
	assert.Equal(t, "1e-30", b.String())
}

func TestAppendDecimalLayout(t *testing.T) {
	cases := []struct {
		neg      bool
		mantissa uint64
		exponent int
		out      string
	}{
		{true, 314, 2, "-3.14"},
		{false, 314, 2, "3.14"},
		{false, 1, 6, "0.000001"},
		{false, 5, 1, "0.5"},
		{false, 0, 1, "0.0"},
		{true, 0, 1, "-0.0"},
		{false, 0, 0, "0"},
		{false, 123, 0, "123"},
		{true, 9223372036854776, -3, "-9223372036854776000"},
		{false, 48847, 16, "0.0000000000048847"},
	}
	b := New(Options{})
	for _, c := range cases {
		b.Reset()
		b.AppendDecimal(c.neg, c.mantissa, c.exponent)
		assert.Equal(t, c.out, b.String(), "(%v, %d, %d)", c.neg, c.mantissa, c.exponent)
	}
}

func TestBufferPolicyOption(t *testing.T) {
	b := New(Options{Policy: decimalise.Standard()})
	require.True(t, b.AppendFloat64(float64(math.MinInt64)))
	assert.Equal(t, "-9223372036854776000", b.String())

	b = New(Options{Policy: decimalise.LiteOnly()})
	require.False(t, b.AppendFloat64(1e-20))
	assert.Equal(t, "1e-20", b.String())
}

func TestBufferWriterSurface(t *testing.T) {
	b := New(Options{InitialSize: 64})
	assert.Equal(t, 64, cap(b.Bytes()))

	n, err := b.WriteString("rate=")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	b.AppendFloat64(2.5)
	require.NoError(t, b.WriteByte('\n'))
	assert.Equal(t, "rate=2.5\n", b.String())
	assert.Equal(t, 9, b.Len())

	b.Reset()
	assert.Zero(t, b.Len())
	n, err = b.Write([]byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x01, 0x02}, b.Bytes())
}

const floatFixtures = `
- value: 3.14
  text: "3.14"
- value: -2.5
  text: "-2.5"
- value: 0.000001
  text: "0.000001"
- value: 1000.0
  text: "1000"
- value: 12345.6789
  text: "12345.6789"
- value: 0.0
  text: "0.0"
`

func TestAppendFloat64Fixtures(t *testing.T) {
	var cases []struct {
		Value float64 `yaml:"value"`
		Text  string  `yaml:"text"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(floatFixtures), &cases))
	require.NotEmpty(t, cases)

	b := New(Options{})
	for _, c := range cases {
		b.Reset()
		require.True(t, b.AppendFloat64(c.Value))
		assert.Equal(t, c.Text, b.String(), "value %v", c.Value)
	}
}

func TestEncodeDecodeDecimal(t *testing.T) {
	cases := []struct {
		neg      bool
		mantissa uint64
		exponent int
	}{
		{false, 314, 2},
		{true, 314, 2},
		{false, 0, 1},
		{true, 0, 1},
		{true, 9223372036854776, -3},
		{false, math.MaxInt64, 18},
		{false, 1, -44},
	}
	for _, c := range cases {
		b := New(Options{})
		b.EncodeDecimal(c.neg, c.mantissa, c.exponent)
		neg, m, exp, n := DecodeDecimal(b.Bytes())
		require.Equal(t, b.Len(), n, "case %+v", c)
		assert.Equal(t, c.neg, neg)
		assert.Equal(t, c.mantissa, m)
		assert.Equal(t, c.exponent, exp)
	}
}

func TestDecodeDecimalTruncated(t *testing.T) {
	_, _, _, n := DecodeDecimal(nil)
	assert.Zero(t, n)

	b := New(Options{})
	b.EncodeDecimal(false, 300, 0)
	require.Greater(t, b.Len(), 2)
	_, _, _, n = DecodeDecimal(b.Bytes()[:1])
	assert.Zero(t, n)
}

func FuzzAppendFloat64(f *testing.F) {
	for _, seed := range []float64{
		0, math.Copysign(0, -1), -3.14, 1e-6, 1e-20, 1e45,
		math.MaxFloat64, 5e-324, float64(math.MinInt64),
		math.Inf(1), math.NaN(),
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, v float64) {
		b := New(Options{})
		b.AppendFloat64(v)
		back, err := strconv.ParseFloat(b.String(), 64)
		require.NoError(t, err, "text %q", b.String())
		if math.IsNaN(v) {
			require.True(t, math.IsNaN(back))
			return
		}
		require.Equal(t, v, back, "text %q", b.String())
		require.Equal(t, math.Signbit(v), math.Signbit(back), "text %q", b.String())
	})
}

func FuzzAppendFloat32(f *testing.F) {
	for _, seed := range []float32{0, -12.3, 1e-30, math.MaxFloat32} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, v float32) {
		b := New(Options{})
		b.AppendFloat32(v)
		back, err := strconv.ParseFloat(b.String(), 32)
		require.NoError(t, err, "text %q", b.String())
		if v != v {
			require.True(t, math.IsNaN(back))
			return
		}
		require.Equal(t, v, float32(back), "text %q", b.String())
	})
}

func BenchmarkAppendFloat64Lite(b *testing.B) {
	buf := New(Options{InitialSize: 64})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		buf.AppendFloat64(-3.14)
	}
}

func BenchmarkAppendFloat64Exact(b *testing.B) {
	buf := New(Options{InitialSize: 64})
	v := float64(math.MinInt64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		buf.AppendFloat64(v)
	}
}

func BenchmarkEncodeDecimal(b *testing.B) {
	buf := New(Options{InitialSize: 64})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		buf.EncodeDecimal(true, 9223372036854776, -3)
	}
}
