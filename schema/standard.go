package schema

import (
	"bytes"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/skematic/dyn/decimal"
)

// StandardType identifies which primitive kind a primitive schema (and a
// primitive dynamic value) holds. Compatibility between a dynamic primitive
// and a primitive schema is decided by tag equality, never by inspecting the
// native Go value.
type StandardType uint8

const (
	TypeUnit StandardType = iota
	TypeBool
	TypeString
	TypeInt
	TypeLong
	TypeFloat64
	TypeChar
	TypeBinary
	TypeBigInt
	TypeDecimal
	TypeUUID
	TypeInstant
	TypeDuration
)

// String returns the tag name.
func (t StandardType) String() string {
	switch t {
	case TypeUnit:
		return "unit"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat64:
		return "float64"
	case TypeChar:
		return "char"
	case TypeBinary:
		return "binary"
	case TypeBigInt:
		return "bigint"
	case TypeDecimal:
		return "decimal"
	case TypeUUID:
		return "uuid"
	case TypeInstant:
		return "instant"
	case TypeDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// StandardTypeByName resolves a tag name back to its StandardType.
func StandardTypeByName(name string) (StandardType, bool) {
	for t := TypeUnit; t <= TypeDuration; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// StandardEqual compares two native values carried under the same tag.
// []byte, *big.Int, decimal and time values need dedicated comparisons;
// the remaining carriers are plain comparable Go values.
func StandardEqual(tag StandardType, a, b any) bool {
	switch tag {
	case TypeUnit:
		return true
	case TypeBinary:
		ab, aok := a.([]byte)
		bb, bok := b.([]byte)
		return aok && bok && bytes.Equal(ab, bb)
	case TypeBigInt:
		ai, aok := a.(*big.Int)
		bi, bok := b.(*big.Int)
		return aok && bok && ai.Cmp(bi) == 0
	case TypeDecimal:
		ad, aok := a.(decimal.Decimal128)
		bd, bok := b.(decimal.Decimal128)
		return aok && bok && ad.Equal(bd)
	case TypeInstant:
		at, aok := a.(time.Time)
		bt, bok := b.(time.Time)
		return aok && bok && at.Equal(bt)
	default:
		return a == b
	}
}

// CheckStandard reports whether a native value is an acceptable carrier for
// the tag. Used by constructors and the JSON bridge, not by the hot
// conversion path.
func CheckStandard(tag StandardType, v any) bool {
	switch tag {
	case TypeUnit:
		return v == nil
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInt:
		_, ok := v.(int)
		return ok
	case TypeLong:
		_, ok := v.(int64)
		return ok
	case TypeFloat64:
		_, ok := v.(float64)
		return ok
	case TypeChar:
		_, ok := v.(rune)
		return ok
	case TypeBinary:
		_, ok := v.([]byte)
		return ok
	case TypeBigInt:
		_, ok := v.(*big.Int)
		return ok
	case TypeDecimal:
		_, ok := v.(decimal.Decimal128)
		return ok
	case TypeUUID:
		_, ok := v.(uuid.UUID)
		return ok
	case TypeInstant:
		_, ok := v.(time.Time)
		return ok
	case TypeDuration:
		_, ok := v.(time.Duration)
		return ok
	default:
		return false
	}
}
