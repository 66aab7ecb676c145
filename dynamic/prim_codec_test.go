package dynamic_test

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skematic/dyn/decimal"
	"github.com/skematic/dyn/dynamic"
	"github.com/skematic/dyn/schema"
)

func TestFormatPrimitive(t *testing.T) {
	id := uuid.MustParse("a8098c1a-f86e-11da-bd1a-00112444be1e")
	dec, err := decimal.FromString("19.99")
	require.NoError(t, err)

	tests := []struct {
		name string
		tag  schema.StandardType
		v    any
		want string
	}{
		{"unit", schema.TypeUnit, nil, "()"},
		{"true", schema.TypeBool, true, "t"},
		{"false", schema.TypeBool, false, "f"},
		{"string", schema.TypeString, "hello", "hello"},
		{"int", schema.TypeInt, -42, "-42"},
		{"long", schema.TypeLong, int64(1) << 40, "1099511627776"},
		{"float", schema.TypeFloat64, 2.5, "2.5"},
		{"float shortest form", schema.TypeFloat64, 0.1, "0.1"},
		{"float exponent lowercase", schema.TypeFloat64, 1e21, "1e+21"},
		{"negative zero", schema.TypeFloat64, math.Copysign(0, -1), "0"},
		{"char", schema.TypeChar, 'Ω', "Ω"},
		{"binary", schema.TypeBinary, []byte{0xde, 0xad}, "0xdead"},
		{"bigint", schema.TypeBigInt, big.NewInt(123), "123"},
		{"decimal", schema.TypeDecimal, dec, "19.99m"},
		{"uuid", schema.TypeUUID, id, "a8098c1a-f86e-11da-bd1a-00112444be1e"},
		{"instant", schema.TypeInstant,
			time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), "2024-05-01T12:00:00Z"},
		{"duration", schema.TypeDuration, 90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dynamic.FormatPrimitive(tt.tag, tt.v))
		})
	}
}

func TestParsePrimitiveInvertsFormat(t *testing.T) {
	id := uuid.MustParse("a8098c1a-f86e-11da-bd1a-00112444be1e")
	dec := decimal.FromInt64(7)

	tests := []struct {
		name string
		tag  schema.StandardType
		v    any
	}{
		{"unit", schema.TypeUnit, nil},
		{"bool", schema.TypeBool, true},
		{"string", schema.TypeString, "with spaces and ünïcode"},
		{"int", schema.TypeInt, math.MaxInt},
		{"long", schema.TypeLong, int64(math.MinInt64)},
		{"float", schema.TypeFloat64, 0.30000000000000004},
		{"char", schema.TypeChar, '漢'},
		{"binary", schema.TypeBinary, []byte{0, 1, 255}},
		{"bigint", schema.TypeBigInt, new(big.Int).Lsh(big.NewInt(1), 100)},
		{"decimal", schema.TypeDecimal, dec},
		{"uuid", schema.TypeUUID, id},
		{"instant", schema.TypeInstant, time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)},
		{"duration", schema.TypeDuration, 2*time.Hour + 3*time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted := dynamic.FormatPrimitive(tt.tag, tt.v)
			parsed, err := dynamic.ParsePrimitive(tt.tag, formatted)
			require.NoError(t, err)
			assert.True(t, schema.StandardEqual(tt.tag, tt.v, parsed),
				"%v did not survive %q", tt.v, formatted)
		})
	}
}

func TestParsePrimitiveRejectsMalformedLiterals(t *testing.T) {
	tests := []struct {
		name string
		tag  schema.StandardType
		s    string
	}{
		{"bool", schema.TypeBool, "yes"},
		{"int", schema.TypeInt, "12x"},
		{"long", schema.TypeLong, "9223372036854775808"},
		{"float", schema.TypeFloat64, "one"},
		{"char empty", schema.TypeChar, ""},
		{"char multi", schema.TypeChar, "ab"},
		{"binary prefix", schema.TypeBinary, "dead"},
		{"binary digits", schema.TypeBinary, "0xzz"},
		{"bigint", schema.TypeBigInt, "12.5"},
		{"decimal suffix", schema.TypeDecimal, "19.99"},
		{"uuid", schema.TypeUUID, "not-a-uuid"},
		{"instant", schema.TypeInstant, "yesterday"},
		{"duration", schema.TypeDuration, "90 seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dynamic.ParsePrimitive(tt.tag, tt.s)
			assert.Error(t, err)
		})
	}
}
