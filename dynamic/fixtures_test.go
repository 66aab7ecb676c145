package dynamic_test

import (
	"fmt"

	"github.com/skematic/dyn/schema"
)

// Shared domain fixtures: a record, a sum type, and helpers used across
// the conversion tests.

type person struct {
	Name string
	Age  int
}

func personSchema() *schema.Schema {
	return schema.Record("Person",
		func(m map[string]any) (any, error) {
			return person{Name: m["name"].(string), Age: m["age"].(int)}, nil
		},
		schema.NewField("name", schema.Primitive(schema.TypeString), func(r any) any {
			return r.(person).Name
		}),
		schema.NewField("age", schema.Primitive(schema.TypeInt), func(r any) any {
			return r.(person).Age
		}),
	)
}

type creditCard struct {
	Number string
}

type wireTransfer struct {
	AccountID string
	BankCode  string
}

func creditCardSchema() *schema.Schema {
	return schema.Record("CreditCard",
		func(m map[string]any) (any, error) {
			return creditCard{Number: m["number"].(string)}, nil
		},
		schema.NewField("number", schema.Primitive(schema.TypeString), func(r any) any {
			return r.(creditCard).Number
		}),
	)
}

func wireTransferSchema() *schema.Schema {
	return schema.Record("WireTransfer",
		func(m map[string]any) (any, error) {
			return wireTransfer{AccountID: m["accountId"].(string), BankCode: m["bankCode"].(string)}, nil
		},
		schema.NewField("accountId", schema.Primitive(schema.TypeString), func(r any) any {
			return r.(wireTransfer).AccountID
		}),
		schema.NewField("bankCode", schema.Primitive(schema.TypeString), func(r any) any {
			return r.(wireTransfer).BankCode
		}),
	)
}

func paymentSchema() *schema.Schema {
	return schema.Enum("PaymentMethod",
		schema.NewCase("CreditCard", creditCardSchema(), func(sum any) (any, bool) {
			c, ok := sum.(creditCard)
			return c, ok
		}),
		schema.NewCase("WireTransfer", wireTransferSchema(), func(sum any) (any, bool) {
			w, ok := sum.(wireTransfer)
			return w, ok
		}),
	)
}

// stringMapSchema is a map schema over native map[string]any, exposing the
// engine to real last-write-wins construction semantics.
func stringMapSchema(value *schema.Schema) *schema.Schema {
	return schema.Map(schema.Primitive(schema.TypeString), value,
		func(v any) []schema.Pair {
			m := v.(map[string]any)
			pairs := make([]schema.Pair, 0, len(m))
			for k, val := range m {
				pairs = append(pairs, schema.Pair{Key: k, Value: val})
			}
			return pairs
		},
		func(pairs []schema.Pair) any {
			m := make(map[string]any, len(pairs))
			for _, p := range pairs {
				m[p.Key.(string)] = p.Value
			}
			return m
		},
	)
}

// ageSchema wraps an int primitive in a transform that rejects negative
// values in both directions.
func ageSchema() *schema.Schema {
	return schema.Transform("Age", schema.Primitive(schema.TypeInt),
		func(underlying any) (any, error) {
			n := underlying.(int)
			if n < 0 {
				return nil, fmt.Errorf("age must not be negative, got %d", n)
			}
			return n, nil
		},
		func(target any) (any, error) {
			n := target.(int)
			if n < 0 {
				return nil, fmt.Errorf("age must not be negative, got %d", n)
			}
			return n, nil
		},
	)
}
