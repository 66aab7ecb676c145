package dynamic

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/skematic/dyn/schema"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON and Value. Every variant is wrapped in a $dyn
// marker object so the round trip is lossless: primitive tags survive, and
// int/long/string never blur into one another. Primitive payloads use the
// native JSON form where it is exact (bool, string, float64) and the
// canonical literal form everywhere else; int goes through the literal
// form because JSON numbers round through float64.

// ToJSON converts a value to its marker-based JSON encoding.
func ToJSON(v *Value) ([]byte, error) {
	jv, err := toJSONValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jv)
}

// FromJSON parses a marker-based JSON encoding back to a value.
func FromJSON(data []byte) (*Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("dynamic: JSON parse error: %w", err)
	}
	return fromJSONValue(raw)
}

func toJSONValue(v *Value) (any, error) {
	if v == nil {
		return map[string]any{"$dyn": "none"}, nil
	}

	switch v.kind {
	case KindRecord:
		fields := make([]any, len(v.fields))
		for i, f := range v.fields {
			fv, err := toJSONValue(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = []any{f.Name, fv}
		}
		return map[string]any{"$dyn": "record", "id": v.typeID, "fields": fields}, nil

	case KindEnum:
		inner, err := toJSONValue(v.inner)
		if err != nil {
			return nil, err
		}
		return map[string]any{"$dyn": "enum", "id": v.typeID, "case": v.caseName, "value": inner}, nil

	case KindSequence, KindSet:
		elems := make([]any, len(v.elems))
		for i, e := range v.elems {
			je, err := toJSONValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = je
		}
		marker := "seq"
		if v.kind == KindSet {
			marker = "set"
		}
		return map[string]any{"$dyn": marker, "elems": elems}, nil

	case KindDictionary:
		entries := make([]any, len(v.entries))
		for i, e := range v.entries {
			k, err := toJSONValue(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := toJSONValue(e.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = []any{k, val}
		}
		return map[string]any{"$dyn": "dict", "entries": entries}, nil

	case KindPrimitive:
		pv, err := primToJSON(v.tag, v.prim)
		if err != nil {
			return nil, err
		}
		return map[string]any{"$dyn": "prim", "tag": v.tag.String(), "value": pv}, nil

	case KindSingleton:
		return map[string]any{"$dyn": "singleton"}, nil

	case KindSome:
		inner, err := toJSONValue(v.inner)
		if err != nil {
			return nil, err
		}
		return map[string]any{"$dyn": "some", "value": inner}, nil

	case KindNone:
		return map[string]any{"$dyn": "none"}, nil

	case KindTuple:
		l, err := toJSONValue(v.left)
		if err != nil {
			return nil, err
		}
		r, err := toJSONValue(v.right)
		if err != nil {
			return nil, err
		}
		return map[string]any{"$dyn": "tuple", "left": l, "right": r}, nil

	case KindLeft, KindRight:
		inner, err := toJSONValue(v.inner)
		if err != nil {
			return nil, err
		}
		marker := "left"
		if v.kind == KindRight {
			marker = "right"
		}
		return map[string]any{"$dyn": marker, "value": inner}, nil

	case KindAst:
		return map[string]any{"$dyn": "ast", "schema": astToJSON(v.ast)}, nil

	case KindError:
		return map[string]any{"$dyn": "error", "message": v.errMsg}, nil

	default:
		return nil, fmt.Errorf("dynamic: unsupported value kind %s", v.kind)
	}
}

func fromJSONValue(raw any) (*Value, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("dynamic: expected $dyn marker object, got %T", raw)
	}
	marker, _ := obj["$dyn"].(string)

	switch marker {
	case "record":
		id, _ := obj["id"].(string)
		rawFields, _ := obj["fields"].([]any)
		fields := make([]Field, 0, len(rawFields))
		for i, rf := range rawFields {
			pair, ok := rf.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("dynamic: record field %d is not a [name, value] pair", i)
			}
			name, ok := pair[0].(string)
			if !ok {
				return nil, fmt.Errorf("dynamic: record field %d has a non-string name", i)
			}
			fv, err := fromJSONValue(pair[1])
			if err != nil {
				return nil, fmt.Errorf("record[%q]: %w", name, err)
			}
			fields = append(fields, FieldOf(name, fv))
		}
		return Record(id, fields...), nil

	case "enum":
		id, _ := obj["id"].(string)
		caseName, ok := obj["case"].(string)
		if !ok {
			return nil, fmt.Errorf("dynamic: enum marker missing case name")
		}
		inner, err := fromJSONValue(obj["value"])
		if err != nil {
			return nil, fmt.Errorf("enum[%s]: %w", caseName, err)
		}
		return Enum(id, caseName, inner), nil

	case "seq", "set":
		rawElems, _ := obj["elems"].([]any)
		elems := make([]*Value, len(rawElems))
		for i, re := range rawElems {
			e, err := fromJSONValue(re)
			if err != nil {
				return nil, fmt.Errorf("elems[%d]: %w", i, err)
			}
			elems[i] = e
		}
		if marker == "set" {
			return Set(elems...), nil
		}
		return Sequence(elems...), nil

	case "dict":
		rawEntries, _ := obj["entries"].([]any)
		entries := make([]DictEntry, len(rawEntries))
		for i, re := range rawEntries {
			pair, ok := re.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("dynamic: dict entry %d is not a [key, value] pair", i)
			}
			k, err := fromJSONValue(pair[0])
			if err != nil {
				return nil, fmt.Errorf("entries[%d].key: %w", i, err)
			}
			v, err := fromJSONValue(pair[1])
			if err != nil {
				return nil, fmt.Errorf("entries[%d].value: %w", i, err)
			}
			entries[i] = EntryOf(k, v)
		}
		return Dictionary(entries...), nil

	case "prim":
		tagName, _ := obj["tag"].(string)
		tag, ok := schema.StandardTypeByName(tagName)
		if !ok {
			return nil, fmt.Errorf("dynamic: unknown primitive tag %q", tagName)
		}
		native, err := primFromJSON(tag, obj["value"])
		if err != nil {
			return nil, err
		}
		return Prim(native, tag), nil

	case "singleton":
		return Singleton(), nil

	case "some":
		inner, err := fromJSONValue(obj["value"])
		if err != nil {
			return nil, err
		}
		return Some(inner), nil

	case "none":
		return None(), nil

	case "tuple":
		l, err := fromJSONValue(obj["left"])
		if err != nil {
			return nil, err
		}
		r, err := fromJSONValue(obj["right"])
		if err != nil {
			return nil, err
		}
		return Tuple(l, r), nil

	case "left", "right":
		inner, err := fromJSONValue(obj["value"])
		if err != nil {
			return nil, err
		}
		if marker == "right" {
			return Right(inner), nil
		}
		return Left(inner), nil

	case "ast":
		ast, err := astFromJSON(obj["schema"])
		if err != nil {
			return nil, err
		}
		return FromAst(ast), nil

	case "error":
		msg, _ := obj["message"].(string)
		return ErrorValue(msg), nil

	default:
		return nil, fmt.Errorf("dynamic: unknown $dyn marker %q", marker)
	}
}

// primToJSON keeps exact native JSON forms for bool, string and float64,
// and falls back to canonical literals elsewhere. int uses the literal
// form: a native JSON number reads back through float64 and corrupts
// values past 2^53.
func primToJSON(tag schema.StandardType, v any) (any, error) {
	switch tag {
	case schema.TypeUnit:
		return nil, nil
	case schema.TypeBool, schema.TypeString:
		return v, nil
	case schema.TypeFloat64:
		f := v.(float64)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("dynamic: NaN and Infinity are not representable in JSON")
		}
		return f, nil
	default:
		return FormatPrimitive(tag, v), nil
	}
}

func primFromJSON(tag schema.StandardType, raw any) (any, error) {
	switch tag {
	case schema.TypeUnit:
		return nil, nil
	case schema.TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("dynamic: bool primitive holds %T", raw)
		}
		return b, nil
	case schema.TypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("dynamic: string primitive holds %T", raw)
		}
		return s, nil
	case schema.TypeFloat64:
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("dynamic: float64 primitive holds %T", raw)
		}
		return f, nil
	default:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("dynamic: %s primitive holds %T", tag, raw)
		}
		return ParsePrimitive(tag, s)
	}
}

// ============================================================
// Ast JSON
// ============================================================

func astToJSON(a *Ast) any {
	if a == nil {
		return nil
	}
	obj := map[string]any{"kind": a.Kind.String()}
	switch a.Kind {
	case AstProduct, AstSum:
		obj["id"] = a.TypeID
		members := make([]any, len(a.Members))
		for i, m := range a.Members {
			members[i] = map[string]any{"label": m.Label, "ast": astToJSON(m.Ast)}
		}
		obj["members"] = members
	case AstPrim:
		obj["tag"] = a.Prim.String()
	case AstList, AstSet, AstOptional:
		obj["elem"] = astToJSON(a.Elem)
	case AstMap:
		obj["key"] = astToJSON(a.Key)
		obj["value"] = astToJSON(a.Value)
	case AstTuple, AstEither:
		obj["left"] = astToJSON(a.Left)
		obj["right"] = astToJSON(a.Right)
	case AstFail:
		obj["message"] = a.Message
	case AstRef:
		obj["id"] = a.TypeID
	}
	return obj
}

func astFromJSON(raw any) (*Ast, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("dynamic: expected ast object, got %T", raw)
	}
	kindName, _ := obj["kind"].(string)
	kind, ok := AstKindByName(kindName)
	if !ok {
		return nil, fmt.Errorf("dynamic: unknown ast kind %q", kindName)
	}

	a := &Ast{Kind: kind}
	var err error
	switch kind {
	case AstProduct, AstSum:
		a.TypeID, _ = obj["id"].(string)
		rawMembers, _ := obj["members"].([]any)
		a.Members = make([]Labeled, len(rawMembers))
		for i, rm := range rawMembers {
			m, ok := rm.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("dynamic: ast member %d is not an object", i)
			}
			label, _ := m["label"].(string)
			child, err := astFromJSON(m["ast"])
			if err != nil {
				return nil, err
			}
			a.Members[i] = Labeled{Label: label, Ast: child}
		}
	case AstPrim:
		tagName, _ := obj["tag"].(string)
		tag, ok := schema.StandardTypeByName(tagName)
		if !ok {
			return nil, fmt.Errorf("dynamic: unknown primitive tag %q in ast", tagName)
		}
		a.Prim = tag
	case AstList, AstSet, AstOptional:
		if a.Elem, err = astFromJSON(obj["elem"]); err != nil {
			return nil, err
		}
	case AstMap:
		if a.Key, err = astFromJSON(obj["key"]); err != nil {
			return nil, err
		}
		if a.Value, err = astFromJSON(obj["value"]); err != nil {
			return nil, err
		}
	case AstTuple, AstEither:
		if a.Left, err = astFromJSON(obj["left"]); err != nil {
			return nil, err
		}
		if a.Right, err = astFromJSON(obj["right"]); err != nil {
			return nil, err
		}
	case AstFail:
		a.Message, _ = obj["message"].(string)
	case AstRef:
		a.TypeID, _ = obj["id"].(string)
	}
	return a, nil
}

// astToJSONText and astFromJSONText serialize ast trees through compact
// JSON text, the form embedded by the Value bootstrap schema.
func astToJSONText(a *Ast) (string, error) {
	data, err := json.Marshal(astToJSON(a))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func astFromJSONText(text string) (*Ast, error) {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("dynamic: ast parse error: %w", err)
	}
	return astFromJSON(raw)
}
