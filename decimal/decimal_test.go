package decimal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skematic/dyn/decimal"
)

func mustDec(t *testing.T, s string) decimal.Decimal128 {
	t.Helper()
	d, err := decimal.FromString(s)
	require.NoError(t, err)
	return d
}

func TestFromStringAndString(t *testing.T) {
	tests := []string{
		"0",
		"1",
		"-1",
		"123.45",
		"-123.45",
		"0.0001",
		"-0.0001",
		"19.99",
		"170141183460469231731687303715884105727",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			d, err := decimal.FromString(s)
			require.NoError(t, err)
			assert.Equal(t, s, d.String())
		})
	}
}

func TestFromStringInvalid(t *testing.T) {
	tests := []string{"", "abc", "1.2.3", "1..2", "--1"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := decimal.FromString(s)
			assert.Error(t, err)
		})
	}
}

func TestFromStringOverflow(t *testing.T) {
	_, err := decimal.FromString("340282366920938463463374607431768211456")
	assert.ErrorIs(t, err, decimal.ErrOverflow)
}

func TestFromInt64(t *testing.T) {
	assert.Equal(t, "42", decimal.FromInt64(42).String())
	assert.Equal(t, "-42", decimal.FromInt64(-42).String())
	assert.Equal(t, int64(42), decimal.FromInt64(42).Int64())
}

func TestFromFloat64(t *testing.T) {
	d, err := decimal.FromFloat64(0.1)
	require.NoError(t, err)
	assert.Equal(t, "0.1", d.String())
	assert.Equal(t, 0.1, d.Float64())
}

func TestArithmetic(t *testing.T) {
	t.Run("add aligns scales", func(t *testing.T) {
		got, err := mustDec(t, "1.5").Add(mustDec(t, "0.25"))
		require.NoError(t, err)
		assert.Equal(t, "1.75", got.String())
	})

	t.Run("sub", func(t *testing.T) {
		got, err := mustDec(t, "10").Sub(mustDec(t, "0.01"))
		require.NoError(t, err)
		assert.Equal(t, "9.99", got.String())
	})

	t.Run("mul", func(t *testing.T) {
		got, err := mustDec(t, "1.5").Mul(mustDec(t, "2.5"))
		require.NoError(t, err)
		assert.Equal(t, "3.75", got.String())
	})

	t.Run("div", func(t *testing.T) {
		got, err := mustDec(t, "7.5").Div(mustDec(t, "2.5"))
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.FromInt64(3)))
	})

	t.Run("div by zero", func(t *testing.T) {
		_, err := decimal.FromInt64(1).Div(decimal.Decimal128{})
		assert.ErrorIs(t, err, decimal.ErrDivisionByZero)
	})

	t.Run("mul overflow", func(t *testing.T) {
		big := mustDec(t, "170141183460469231731687303715884105727")
		_, err := big.Mul(big)
		assert.ErrorIs(t, err, decimal.ErrOverflow)
	})
}

func TestNegAbsSign(t *testing.T) {
	d := mustDec(t, "-2.5")
	assert.Equal(t, "2.5", d.Neg().String())
	assert.Equal(t, "2.5", d.Abs().String())
	assert.Equal(t, -1, d.Sign())
	assert.Equal(t, 1, d.Neg().Sign())
	assert.Equal(t, 0, decimal.FromInt64(0).Sign())
	assert.True(t, decimal.Decimal128{}.IsZero())
}

func TestCmpAndEqualAreScaleInsensitive(t *testing.T) {
	assert.True(t, mustDec(t, "1.10").Equal(mustDec(t, "1.1")))
	assert.Equal(t, 0, mustDec(t, "5").Cmp(mustDec(t, "5.000")))
	assert.Equal(t, -1, mustDec(t, "1.09").Cmp(mustDec(t, "1.1")))
	assert.Equal(t, 1, mustDec(t, "1.2").Cmp(mustDec(t, "1.19")))
}

func TestInt64Truncates(t *testing.T) {
	assert.Equal(t, int64(1), mustDec(t, "1.99").Int64())
	assert.Equal(t, int64(-1), mustDec(t, "-1.99").Int64())
}
