package dynamic_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skematic/dyn/decimal"
	"github.com/skematic/dyn/dynamic"
)

func TestValueSchemaIsShared(t *testing.T) {
	assert.Same(t, dynamic.ValueSchema(), dynamic.ValueSchema())
}

func TestValueSchemaRoundTrip(t *testing.T) {
	id := uuid.MustParse("a8098c1a-f86e-11da-bd1a-00112444be1e")
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

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
		{"empty sequence", dynamic.Sequence()},
		{"dictionary", dynamic.Dictionary(
			dynamic.EntryOf(dynamic.String("k"), dynamic.Int(1)))},
		{"set", dynamic.Set(dynamic.String("a"), dynamic.String("b"))},
		{"bool", dynamic.Bool(true)},
		{"string", dynamic.String("hi there")},
		{"int", dynamic.Int(-3)},
		{"long", dynamic.Long(1 << 40)},
		{"float64", dynamic.Float64(2.5)},
		{"char", dynamic.Char('Ω')},
		{"binary", dynamic.Binary([]byte{0xde, 0xad})},
		{"bigint", dynamic.BigInt(new(big.Int).Lsh(big.NewInt(1), 100))},
		{"decimal", dynamic.Decimal(decimal.FromInt64(123))},
		{"uuid", dynamic.UUID(id)},
		{"instant", dynamic.Instant(when)},
		{"duration", dynamic.Duration(90 * time.Second)},
		{"unit", dynamic.Unit()},
		{"singleton", dynamic.Singleton()},
		{"some", dynamic.Some(dynamic.Int(7))},
		{"none", dynamic.None()},
		{"tuple", dynamic.Tuple(dynamic.Int(1), dynamic.String("x"))},
		{"left", dynamic.Left(dynamic.Int(1))},
		{"right", dynamic.Right(dynamic.String("x"))},
		{"ast", dynamic.FromAst(dynamic.AstFromSchema(personSchema()))},
		{"error", dynamic.ErrorValue("boom")},
		{"deep nesting", dynamic.Record("Outer",
			dynamic.FieldOf("list", dynamic.Sequence(
				dynamic.Some(dynamic.Tuple(dynamic.Int(1), dynamic.None())))))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := dynamic.FromSchemaAndValue(dynamic.ValueSchema(), tt.v)
			require.False(t, encoded.IsError(), "encode produced %s", encoded)

			decoded, err := dynamic.ToTypedValue(encoded, dynamic.ValueSchema())
			require.NoError(t, err)

			got, ok := decoded.(*dynamic.Value)
			require.True(t, ok, "decoded %T", decoded)
			assert.True(t, tt.v.Equal(got), "got %s, want %s", got, tt.v)
		})
	}
}

func TestValueSchemaEncodesAsPlainEnum(t *testing.T) {
	encoded := dynamic.FromSchemaAndValue(dynamic.ValueSchema(), dynamic.Int(5))

	require.Equal(t, dynamic.KindEnum, encoded.Kind())
	assert.Equal(t, "dynamic.Value", encoded.TypeID())

	name, payload := encoded.Case()
	assert.Equal(t, "Primitive", name)

	tag, ok := payload.GetField("tag")
	require.True(t, ok)
	tagPrim, _ := tag.Primitive()
	assert.Equal(t, "int", tagPrim)

	val, ok := payload.GetField("value")
	require.True(t, ok)
	valPrim, _ := val.Primitive()
	assert.Equal(t, "5", valPrim)
}

func TestValueSchemaRejectsUnknownPrimitiveTag(t *testing.T) {
	payload := dynamic.Record("dynamic.Primitive",
		dynamic.FieldOf("tag", dynamic.String("quaternion")),
		dynamic.FieldOf("value", dynamic.String("1")))
	v := dynamic.Enum("dynamic.Value", "Primitive", payload)

	_, err := dynamic.ToTypedValue(v, dynamic.ValueSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown primitive tag "quaternion"`)
}
