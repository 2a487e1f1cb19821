package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

func mustInt(t *testing.T, lit string) Value {
	t.Helper()
	v, err := ParseInt(lit)
	require.NoError(t, err)
	return v
}

func mustFloat(t *testing.T, lit string) Value {
	t.Helper()
	v, err := ParseFloat(lit)
	require.NoError(t, err)
	return v
}

func TestParse(t *testing.T) {
	assert.Equal(t, "255", mustInt(t, "0xff").String())
	assert.Equal(t, "1000000", mustInt(t, "1_000_000").String())
	assert.Equal(t, "18446744073709551616", mustInt(t, "18446744073709551616").String())
	assert.True(t, mustFloat(t, "1.5e3").IsFloat())
	assert.Equal(t, "1500", mustFloat(t, "1.5e3").String())

	_, err := ParseInt("12a")
	assert.Error(t, err)
	_, err = ParseFloat("1..2")
	assert.Error(t, err)

	assert.False(t, Value{}.IsValid())
}

func TestFitsBoundaries(t *testing.T) {
	tests := []struct {
		lit   string
		tag   typesystem.Tag
		width int
		fits  bool
	}{
		{"2147483647", typesystem.I32, 64, true},
		{"2147483648", typesystem.I32, 64, false},
		{"-2147483648", typesystem.I32, 64, true},
		{"-2147483649", typesystem.I32, 64, false},
		{"9223372036854775807", typesystem.I64, 64, true},
		{"9223372036854775808", typesystem.I64, 64, false},
		{"0", typesystem.Usize, 64, true},
		{"-1", typesystem.Usize, 64, false},
		{"18446744073709551615", typesystem.Usize, 64, true},
		{"18446744073709551616", typesystem.Usize, 64, false},
		{"4294967295", typesystem.Usize, 32, true},
		{"4294967296", typesystem.Usize, 32, false},
		{"16777216", typesystem.F32, 64, true},
	}
	for _, tt := range tests {
		t.Run(tt.lit+"/"+tt.tag.String(), func(t *testing.T) {
			v, err := ParseInt(tt.lit)
			require.NoError(t, err)
			assert.Equal(t, tt.fits, Fits(v, tt.tag, tt.width))
		})
	}
}

func TestFitsFloats(t *testing.T) {
	assert.True(t, Fits(mustFloat(t, "3.4e38"), typesystem.F32, 64))
	assert.False(t, Fits(mustFloat(t, "3.5e38"), typesystem.F32, 64))
	assert.True(t, Fits(mustFloat(t, "3.5e38"), typesystem.F64, 64))
	assert.False(t, Fits(mustFloat(t, "1e309"), typesystem.F64, 64))

	// Converting a float to an integer truncates toward zero.
	assert.True(t, Fits(mustFloat(t, "2147483647.9"), typesystem.I32, 64))
	assert.False(t, Fits(mustFloat(t, "2147483648.0"), typesystem.I32, 64))

	assert.True(t, Fits(Value{}, typesystem.I32, 64), "unknown values are not checked")
}

func TestBinary(t *testing.T) {
	v, ok := Binary("+", Int(2147483647), Int(1))
	require.True(t, ok)
	assert.Equal(t, "2147483648", v.String())
	assert.False(t, v.IsFloat())

	v, ok = Binary("/", Int(7), Int(2))
	require.True(t, ok)
	assert.True(t, v.IsFloat(), "/ is float division")
	assert.Equal(t, "3.5", v.String())

	v, ok = Binary("\\", Int(7), Int(2))
	require.True(t, ok)
	assert.Equal(t, "3", v.String())

	v, ok = Binary("%", Int(-7), Int(2))
	require.True(t, ok)
	assert.Equal(t, "-1", v.String())

	v, ok = Binary("*", Int(3), Float(0.5))
	require.True(t, ok)
	assert.Equal(t, "1.5", v.String())

	_, ok = Binary("\\", Int(1), Int(0))
	assert.False(t, ok)
	_, ok = Binary("/", Int(1), Int(0))
	assert.False(t, ok)
	_, ok = Binary("+", Int(1), Value{})
	assert.False(t, ok)
}

func TestNegAndSign(t *testing.T) {
	assert.Equal(t, -1, Int(5).Neg().Sign())
	assert.Equal(t, 0, Int(0).Sign())
	assert.Equal(t, "-2.5", Float(2.5).Neg().String())

	n, ok := Int(42).Int64()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)
	_, ok = Float(1).Int64()
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "-2147483648..=2147483647", Describe(typesystem.I32, 64))
	assert.Equal(t, "0..=4294967295", Describe(typesystem.Usize, 32))
}
