package dynamic

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/skematic/dyn/decimal"
	"github.com/skematic/dyn/schema"
)

// ============================================================
// Canonical Primitive Encoding
// ============================================================
//
// Every primitive tag has a canonical raw string form that parses back to
// the exact native value. The printer, the canonical hash, the JSON bridge
// and the value bootstrap all share this codec.

// FormatPrimitive returns the canonical raw form of a native value under
// its tag. The form is unquoted; callers needing quoting add it themselves.
func FormatPrimitive(tag schema.StandardType, v any) string {
	switch tag {
	case schema.TypeUnit:
		return "()"
	case schema.TypeBool:
		if v.(bool) {
			return "t"
		}
		return "f"
	case schema.TypeString:
		return v.(string)
	case schema.TypeInt:
		return strconv.Itoa(v.(int))
	case schema.TypeLong:
		return strconv.FormatInt(v.(int64), 10)
	case schema.TypeFloat64:
		return canonFloat(v.(float64))
	case schema.TypeChar:
		return string(v.(rune))
	case schema.TypeBinary:
		return "0x" + hex.EncodeToString(v.([]byte))
	case schema.TypeBigInt:
		return v.(*big.Int).String()
	case schema.TypeDecimal:
		return v.(decimal.Decimal128).String() + "m"
	case schema.TypeUUID:
		return v.(uuid.UUID).String()
	case schema.TypeInstant:
		return v.(time.Time).UTC().Format(time.RFC3339Nano)
	case schema.TypeDuration:
		return v.(time.Duration).String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParsePrimitive parses a canonical raw form back to the native value for
// the tag. It is the exact inverse of FormatPrimitive.
func ParsePrimitive(tag schema.StandardType, s string) (any, error) {
	switch tag {
	case schema.TypeUnit:
		return nil, nil
	case schema.TypeBool:
		switch s {
		case "t", "true":
			return true, nil
		case "f", "false":
			return false, nil
		}
		return nil, fmt.Errorf("dynamic: invalid bool literal %q", s)
	case schema.TypeString:
		return s, nil
	case schema.TypeInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("dynamic: invalid int literal %q", s)
		}
		return n, nil
	case schema.TypeLong:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("dynamic: invalid long literal %q", s)
		}
		return n, nil
	case schema.TypeFloat64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("dynamic: invalid float literal %q", s)
		}
		return f, nil
	case schema.TypeChar:
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || size != len(s) {
			return nil, fmt.Errorf("dynamic: invalid char literal %q", s)
		}
		return r, nil
	case schema.TypeBinary:
		if !strings.HasPrefix(s, "0x") {
			return nil, fmt.Errorf("dynamic: binary literal must start with 0x")
		}
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, fmt.Errorf("dynamic: invalid binary literal: %w", err)
		}
		return b, nil
	case schema.TypeBigInt:
		n := new(big.Int)
		if _, ok := n.SetString(s, 10); !ok {
			return nil, fmt.Errorf("dynamic: invalid bigint literal %q", s)
		}
		return n, nil
	case schema.TypeDecimal:
		lit, found := strings.CutSuffix(s, "m")
		if !found {
			return nil, fmt.Errorf("dynamic: decimal literal must end with m")
		}
		return decimal.FromString(lit)
	case schema.TypeUUID:
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("dynamic: invalid uuid literal: %w", err)
		}
		return id, nil
	case schema.TypeInstant:
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("dynamic: invalid instant literal: %w", err)
		}
		return t, nil
	case schema.TypeDuration:
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("dynamic: invalid duration literal: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("dynamic: unknown primitive tag %d", tag)
	}
}

// canonFloat returns the shortest-roundtrip float form, E normalized to e
// and -0 to 0.
func canonFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	s = strings.ReplaceAll(s, "E", "e")
	if s == "-0" {
		return "0"
	}
	return s
}
