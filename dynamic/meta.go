package dynamic

import (
	"fmt"
	"sync"

	"github.com/skematic/dyn/schema"
)

// ============================================================
// Schema of Value
// ============================================================
//
// ValueSchema describes Value itself: a sum type whose cases are exactly
// the variants. It lets dynamic values ride the same schema-driven
// machinery as ordinary typed values: serialized, compared and migrated
// generically, with no bespoke codec.

var (
	valueSchemaOnce sync.Once
	valueSchema     *schema.Schema
)

// ValueSchema returns the self-referential schema description for Value.
// The result is built once and shared; it is immutable and safe for
// concurrent use.
func ValueSchema() *schema.Schema {
	valueSchemaOnce.Do(func() {
		valueSchema = buildValueSchema()
	})
	return valueSchema
}

func buildValueSchema() *schema.Schema {
	val := schema.Lazy(func() *schema.Schema { return ValueSchema() })
	str := schema.Primitive(schema.TypeString)
	unit := schema.Primitive(schema.TypeUnit)

	recordCase := valueCase("Record", KindRecord,
		schema.Record("dynamic.Record",
			func(m map[string]any) (any, error) { return m, nil },
			schema.NewField("id", str, func(m any) any { return m.(map[string]any)["id"] }),
			schema.NewField("fields", schema.SequenceOf(schema.TupleOf(str, val)),
				func(m any) any { return m.(map[string]any)["fields"] }),
		),
		func(m any) (any, error) {
			rec := m.(map[string]any)
			raw := rec["fields"].([]any)
			fields := make([]Field, len(raw))
			for i, e := range raw {
				t := e.(schema.Tuple2)
				fields[i] = FieldOf(t.First.(string), t.Second.(*Value))
			}
			return Record(rec["id"].(string), fields...), nil
		},
		func(v *Value) (any, error) {
			raw := make([]any, len(v.fields))
			for i, f := range v.fields {
				raw[i] = schema.Tuple2{First: f.Name, Second: f.Value}
			}
			return map[string]any{"id": v.typeID, "fields": raw}, nil
		},
	)

	enumCase := valueCase("Enum", KindEnum,
		schema.Record("dynamic.Enum",
			func(m map[string]any) (any, error) { return m, nil },
			schema.NewField("id", str, func(m any) any { return m.(map[string]any)["id"] }),
			schema.NewField("case", str, func(m any) any { return m.(map[string]any)["case"] }),
			schema.NewField("value", val, func(m any) any { return m.(map[string]any)["value"] }),
		),
		func(m any) (any, error) {
			rec := m.(map[string]any)
			return Enum(rec["id"].(string), rec["case"].(string), rec["value"].(*Value)), nil
		},
		func(v *Value) (any, error) {
			return map[string]any{"id": v.typeID, "case": v.caseName, "value": v.inner}, nil
		},
	)

	sequenceCase := valueCase("Sequence", KindSequence,
		schema.SequenceOf(val),
		func(elems any) (any, error) {
			return Sequence(toValues(elems.([]any))...), nil
		},
		func(v *Value) (any, error) { return fromValues(v.elems), nil },
	)

	dictionaryCase := valueCase("Dictionary", KindDictionary,
		schema.SequenceOf(schema.TupleOf(val, val)),
		func(elems any) (any, error) {
			raw := elems.([]any)
			entries := make([]DictEntry, len(raw))
			for i, e := range raw {
				t := e.(schema.Tuple2)
				entries[i] = EntryOf(t.First.(*Value), t.Second.(*Value))
			}
			return Dictionary(entries...), nil
		},
		func(v *Value) (any, error) {
			raw := make([]any, len(v.entries))
			for i, e := range v.entries {
				raw[i] = schema.Tuple2{First: e.Key, Second: e.Value}
			}
			return raw, nil
		},
	)

	setCase := valueCase("Set", KindSet,
		schema.SetOf(val),
		func(elems any) (any, error) {
			return Set(toValues(elems.([]any))...), nil
		},
		func(v *Value) (any, error) { return fromValues(v.elems), nil },
	)

	primitiveCase := valueCase("Primitive", KindPrimitive,
		schema.Record("dynamic.Primitive",
			func(m map[string]any) (any, error) { return m, nil },
			schema.NewField("tag", str, func(m any) any { return m.(map[string]any)["tag"] }),
			schema.NewField("value", str, func(m any) any { return m.(map[string]any)["value"] }),
		),
		func(m any) (any, error) {
			rec := m.(map[string]any)
			tag, ok := schema.StandardTypeByName(rec["tag"].(string))
			if !ok {
				return nil, fmt.Errorf("dynamic: unknown primitive tag %q", rec["tag"])
			}
			native, err := ParsePrimitive(tag, rec["value"].(string))
			if err != nil {
				return nil, err
			}
			return Prim(native, tag), nil
		},
		func(v *Value) (any, error) {
			return map[string]any{
				"tag":   v.tag.String(),
				"value": FormatPrimitive(v.tag, v.prim),
			}, nil
		},
	)

	singletonCase := valueCase("Singleton", KindSingleton, unit,
		func(any) (any, error) { return Singleton(), nil },
		func(*Value) (any, error) { return nil, nil },
	)

	someCase := valueCase("Some", KindSome, val,
		func(inner any) (any, error) { return Some(inner.(*Value)), nil },
		func(v *Value) (any, error) { return v.inner, nil },
	)

	noneCase := valueCase("None", KindNone, unit,
		func(any) (any, error) { return None(), nil },
		func(*Value) (any, error) { return nil, nil },
	)

	tupleCase := valueCase("Tuple", KindTuple,
		schema.TupleOf(val, val),
		func(t any) (any, error) {
			pair := t.(schema.Tuple2)
			return Tuple(pair.First.(*Value), pair.Second.(*Value)), nil
		},
		func(v *Value) (any, error) {
			return schema.Tuple2{First: v.left, Second: v.right}, nil
		},
	)

	leftCase := valueCase("Left", KindLeft, val,
		func(inner any) (any, error) { return Left(inner.(*Value)), nil },
		func(v *Value) (any, error) { return v.inner, nil },
	)

	rightCase := valueCase("Right", KindRight, val,
		func(inner any) (any, error) { return Right(inner.(*Value)), nil },
		func(v *Value) (any, error) { return v.inner, nil },
	)

	astCase := valueCase("Ast", KindAst, str,
		func(text any) (any, error) {
			ast, err := astFromJSONText(text.(string))
			if err != nil {
				return nil, err
			}
			return FromAst(ast), nil
		},
		func(v *Value) (any, error) { return astToJSONText(v.ast) },
	)

	errorCase := valueCase("Error", KindError, str,
		func(msg any) (any, error) { return ErrorValue(msg.(string)), nil },
		func(v *Value) (any, error) { return v.errMsg, nil },
	)

	return schema.Enum("dynamic.Value",
		recordCase, enumCase, sequenceCase, dictionaryCase, setCase,
		primitiveCase, singletonCase, someCase, noneCase, tupleCase,
		leftCase, rightCase, astCase, errorCase,
	)
}

// valueCase builds one case of the Value sum: a transform pairing the
// variant's payload shape with the functions that take the variant apart
// and put it back together.
func valueCase(name string, kind Kind, payload *schema.Schema,
	rebuild func(any) (any, error),
	extract func(*Value) (any, error),
) *schema.Case {
	wrapped := schema.Transform("dynamic."+name, payload,
		rebuild,
		func(v any) (any, error) { return extract(v.(*Value)) },
	)
	return schema.NewCase(name, wrapped, func(sum any) (any, bool) {
		v, ok := sum.(*Value)
		if !ok || v.Kind() != kind {
			return nil, false
		}
		return v, true
	})
}

func toValues(raw []any) []*Value {
	out := make([]*Value, len(raw))
	for i, e := range raw {
		out[i] = e.(*Value)
	}
	return out
}

func fromValues(vs []*Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
