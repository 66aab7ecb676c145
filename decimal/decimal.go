// Package decimal provides a 128-bit decimal number used as the native
// carrier for the decimal standard-type tag: value = coefficient * 10^(-exp),
// with an 8-bit signed exponent and a 16-byte two's complement coefficient.
// Exact decimal representation avoids the rounding surprises of float64 for
// money-like values.
package decimal

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.New("decimal: division by zero")
	// ErrOverflow is returned when a result does not fit in 128 bits.
	ErrOverflow = errors.New("decimal: overflow")
)

// Decimal128 is an immutable 128-bit decimal. The zero value is 0.
type Decimal128 struct {
	exp  int8
	coef [16]byte
}

// FromInt64 creates a decimal from an integer.
func FromInt64(v int64) Decimal128 {
	d := Decimal128{}
	d.coef = intToCoef(big.NewInt(v))
	return d
}

// FromString parses a plain decimal literal such as "123.45" or "-0.0001".
func FromString(s string) (Decimal128, error) {
	s = strings.TrimSpace(s)

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return Decimal128{}, fmt.Errorf("decimal: invalid literal %q", s)
		}
	}

	if len(fracPart) > 127 {
		return Decimal128{}, fmt.Errorf("decimal: scale out of range in %q", s)
	}

	coef := new(big.Int)
	if _, ok := coef.SetString(intPart+fracPart, 10); !ok {
		return Decimal128{}, fmt.Errorf("decimal: invalid literal %q", s)
	}
	if coef.BitLen() > 127 {
		return Decimal128{}, ErrOverflow
	}

	return Decimal128{exp: int8(len(fracPart)), coef: intToCoef(coef)}, nil
}

// FromFloat64 creates a decimal from a float64. Precision follows the
// shortest round-trip formatting of the float.
func FromFloat64(f float64) (Decimal128, error) {
	return FromString(strconv.FormatFloat(f, 'f', -1, 64))
}

// String returns the plain decimal literal form.
func (d Decimal128) String() string {
	coef := coefToInt(d.coef)
	s := coef.String()

	if d.exp == 0 {
		return s
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	for len(s) < int(d.exp)+1 {
		s = "0" + s
	}

	cut := len(s) - int(d.exp)
	s = s[:cut] + "." + s[cut:]
	if neg {
		s = "-" + s
	}
	return s
}

// Int64 returns the integer part, truncating any fraction.
func (d Decimal128) Int64() int64 {
	coef := coefToInt(d.coef)
	if d.exp != 0 {
		// Quo truncates toward zero; Div would floor negatives.
		coef.Quo(coef, pow10(int64(d.exp)))
	}
	return coef.Int64()
}

// Float64 returns the nearest float64. Precision may be lost.
func (d Decimal128) Float64() float64 {
	num := new(big.Float).SetInt(coefToInt(d.coef))
	den := new(big.Float).SetInt(pow10(int64(d.exp)))
	f, _ := new(big.Float).Quo(num, den).Float64()
	return f
}

// Add returns d + other.
func (d Decimal128) Add(other Decimal128) (Decimal128, error) {
	a, b, exp := align(d, other)
	a.Add(a, b)
	if a.BitLen() > 127 {
		return Decimal128{}, ErrOverflow
	}
	return Decimal128{exp: exp, coef: intToCoef(a)}, nil
}

// Sub returns d - other.
func (d Decimal128) Sub(other Decimal128) (Decimal128, error) {
	return d.Add(other.Neg())
}

// Mul returns d * other.
func (d Decimal128) Mul(other Decimal128) (Decimal128, error) {
	a := coefToInt(d.coef)
	a.Mul(a, coefToInt(other.coef))
	if a.BitLen() > 127 {
		return Decimal128{}, ErrOverflow
	}
	return Decimal128{exp: d.exp + other.exp, coef: intToCoef(a)}, nil
}

// Div returns d / other, truncating toward zero at the combined scale.
func (d Decimal128) Div(other Decimal128) (Decimal128, error) {
	b := coefToInt(other.coef)
	if b.Sign() == 0 {
		return Decimal128{}, ErrDivisionByZero
	}
	a := coefToInt(d.coef)
	a.Quo(a, b)
	return Decimal128{exp: d.exp - other.exp, coef: intToCoef(a)}, nil
}

// Neg returns -d.
func (d Decimal128) Neg() Decimal128 {
	coef := coefToInt(d.coef)
	coef.Neg(coef)
	return Decimal128{exp: d.exp, coef: intToCoef(coef)}
}

// Abs returns |d|.
func (d Decimal128) Abs() Decimal128 {
	if d.Sign() < 0 {
		return d.Neg()
	}
	return d
}

// Cmp compares numerically: -1 if d < other, 0 if equal, 1 if d > other.
func (d Decimal128) Cmp(other Decimal128) int {
	a, b, _ := align(d, other)
	return a.Cmp(b)
}

// Equal reports numeric equality, scale-insensitively: 1.10 equals 1.1.
func (d Decimal128) Equal(other Decimal128) bool {
	return d.Cmp(other) == 0
}

// Sign returns -1, 0 or 1.
func (d Decimal128) Sign() int {
	return coefToInt(d.coef).Sign()
}

// IsZero reports whether d == 0.
func (d Decimal128) IsZero() bool {
	return d.Sign() == 0
}

// align brings both coefficients to the larger scale.
func align(d, other Decimal128) (a, b *big.Int, exp int8) {
	a = coefToInt(d.coef)
	b = coefToInt(other.coef)
	exp = d.exp
	switch {
	case d.exp < other.exp:
		a.Mul(a, pow10(int64(other.exp)-int64(d.exp)))
		exp = other.exp
	case d.exp > other.exp:
		b.Mul(b, pow10(int64(d.exp)-int64(other.exp)))
	}
	return a, b, exp
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// intToCoef converts a big.Int to 16-byte two's complement, big-endian.
func intToCoef(v *big.Int) [16]byte {
	var out [16]byte
	if v.Sign() < 0 {
		v = new(big.Int).Add(v, two128)
	}
	b := v.Bytes()
	if len(b) > 16 {
		b = b[len(b)-16:]
	}
	copy(out[16-len(b):], b)
	return out
}

// coefToInt converts 16-byte two's complement back to a big.Int.
func coefToInt(coef [16]byte) *big.Int {
	v := new(big.Int).SetBytes(coef[:])
	if coef[0]&0x80 != 0 {
		v.Sub(v, two128)
	}
	return v
}
