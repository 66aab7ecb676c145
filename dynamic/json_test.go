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
)

func TestJSONRoundTrip(t *testing.T) {
	id := uuid.MustParse("a8098c1a-f86e-11da-bd1a-00112444be1e")
	when := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)

	tests := []struct {
		name string
		v    *dynamic.Value
	}{
		{"record", dynamic.Record("Person",
			dynamic.FieldOf("name", dynamic.String("Ann")),
			dynamic.FieldOf("age", dynamic.Int(30)))},
		{"enum", dynamic.Enum("PaymentMethod", "CreditCard",
			dynamic.Record("CreditCard", dynamic.FieldOf("number", dynamic.String("4111"))))},
		{"sequence", dynamic.Sequence(dynamic.Int(1), dynamic.Int(2))},
		{"set", dynamic.Set(dynamic.String("a"), dynamic.String("b"))},
		{"dictionary", dynamic.Dictionary(
			dynamic.EntryOf(dynamic.Int(1), dynamic.String("one")))},
		{"bool", dynamic.Bool(false)},
		{"string", dynamic.String(`quotes " and \ slashes`)},
		{"int", dynamic.Int(-7)},
		{"long", dynamic.Long(1 << 40)},
		{"float64", dynamic.Float64(0.1)},
		{"char", dynamic.Char('漢')},
		{"binary", dynamic.Binary([]byte{0x00, 0xff})},
		{"bigint", dynamic.BigInt(new(big.Int).Lsh(big.NewInt(1), 80))},
		{"decimal", dynamic.Decimal(decimal.FromInt64(250))},
		{"uuid", dynamic.UUID(id)},
		{"instant", dynamic.Instant(when)},
		{"duration", dynamic.Duration(90 * time.Second)},
		{"unit", dynamic.Unit()},
		{"singleton", dynamic.Singleton()},
		{"some", dynamic.Some(dynamic.Int(1))},
		{"none", dynamic.None()},
		{"tuple", dynamic.Tuple(dynamic.Int(1), dynamic.String("x"))},
		{"left", dynamic.Left(dynamic.Int(1))},
		{"right", dynamic.Right(dynamic.Int(2))},
		{"ast", dynamic.FromAst(dynamic.AstFromSchema(paymentSchema()))},
		{"error", dynamic.ErrorValue("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := dynamic.ToJSON(tt.v)
			require.NoError(t, err)

			got, err := dynamic.FromJSON(data)
			require.NoError(t, err)
			assert.True(t, tt.v.Equal(got), "got %s, want %s", got, tt.v)
		})
	}
}

func TestJSONPrimitiveTagsSurvive(t *testing.T) {
	// int and long carry the same digits but must come back under their
	// own tags.
	intData, err := dynamic.ToJSON(dynamic.Int(3))
	require.NoError(t, err)
	longData, err := dynamic.ToJSON(dynamic.Long(3))
	require.NoError(t, err)

	gotInt, err := dynamic.FromJSON(intData)
	require.NoError(t, err)
	gotLong, err := dynamic.FromJSON(longData)
	require.NoError(t, err)

	assert.False(t, gotInt.Equal(gotLong))
	_, tag := gotInt.Primitive()
	assert.Equal(t, "int", tag.String())
	_, tag = gotLong.Primitive()
	assert.Equal(t, "long", tag.String())
}

func TestJSONIntSurvivesBeyondFloatPrecision(t *testing.T) {
	// 2^60+1 is integral but not representable in float64; a native JSON
	// number would round it away.
	big := dynamic.Int(1<<60 + 1)

	data, err := dynamic.ToJSON(big)
	require.NoError(t, err)
	got, err := dynamic.FromJSON(data)
	require.NoError(t, err)

	prim, _ := got.Primitive()
	assert.Equal(t, 1<<60+1, prim)

	huge := dynamic.Long(1<<62 + 3)
	data, err = dynamic.ToJSON(huge)
	require.NoError(t, err)
	got, err = dynamic.FromJSON(data)
	require.NoError(t, err)
	assert.True(t, huge.Equal(got))
}

func TestJSONRecordShape(t *testing.T) {
	data, err := dynamic.ToJSON(dynamic.Record("Person",
		dynamic.FieldOf("name", dynamic.String("Ann"))))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"$dyn": "record",
		"id": "Person",
		"fields": [["name", {"$dyn": "prim", "tag": "string", "value": "Ann"}]]
	}`, string(data))
}

func TestJSONRejectsNonFiniteFloats(t *testing.T) {
	_, err := dynamic.ToJSON(dynamic.Float64(math.NaN()))
	require.Error(t, err)
	_, err = dynamic.ToJSON(dynamic.Float64(math.Inf(1)))
	require.Error(t, err)
}

func TestFromJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not an object", `[1, 2]`},
		{"unknown marker", `{"$dyn": "wat"}`},
		{"missing marker", `{"id": "X"}`},
		{"unknown primitive tag", `{"$dyn": "prim", "tag": "quaternion", "value": "1"}`},
		{"fractional int", `{"$dyn": "prim", "tag": "int", "value": 1.5}`},
		{"bad field pair", `{"$dyn": "record", "id": "X", "fields": [["only-name"]]}`},
		{"enum without case", `{"$dyn": "enum", "id": "X", "value": {"$dyn": "none"}}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dynamic.FromJSON([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
