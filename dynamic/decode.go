package dynamic

import (
	"github.com/hashicorp/go-multierror"

	"github.com/skematic/dyn/schema"
)

// SchemaBound is the result of decoding a self-described value: the decoded
// value paired with the schema reconstructed from its embedded ast.
type SchemaBound struct {
	Value  any
	Schema *schema.Schema
}

// ToTypedValue reconstructs a typed value from a dynamic value and a target
// schema. It succeeds only for shape-compatible pairs; every mismatch is an
// ordinary returned error with a lazily-built message.
func ToTypedValue(v *Value, s *schema.Schema) (any, error) {
	// Hand-built values may carry nil payloads; treat them as the none
	// marker instead of dereferencing.
	if v == nil {
		v = None()
	}

	// A captured failure fails against every schema, surfacing its message
	// unchanged.
	if v.IsError() {
		return nil, castError(v.errMsg)
	}

	// Self-described value: the embedded ast overrides whatever shape the
	// caller asked for.
	if v.kind == KindTuple && v.right != nil && v.right.kind == KindAst {
		embedded := v.right.ast.Schema()
		decoded, err := ToTypedValue(v.left, embedded)
		if err != nil {
			return nil, err
		}
		return SchemaBound{Value: decoded, Schema: embedded}, nil
	}

	s = s.Force()

	switch s.Kind {
	case schema.KindDynamic:
		return v, nil

	case schema.KindFail:
		return nil, castError(s.FailMessage)

	case schema.KindTransform:
		underlying, err := ToTypedValue(v, s.Transform.Underlying)
		if err != nil {
			return nil, err
		}
		out, err := s.Transform.Forward(underlying)
		if err != nil {
			return nil, castError(err.Error())
		}
		return out, nil

	case schema.KindPrimitive:
		if v.kind == KindPrimitive && v.tag == s.Prim {
			return v.prim, nil
		}

	case schema.KindRecord:
		if v.kind == KindSingleton && len(s.Record.Fields) == 0 {
			return s.Record.Construct(map[string]any{})
		}
		if v.kind == KindRecord {
			return decodeRecord(v, s.Record)
		}

	case schema.KindEnum:
		if v.kind == KindEnum {
			c := s.Enum.CaseByName(v.caseName)
			if c == nil {
				name := v.caseName
				id := s.Enum.TypeID
				return nil, castErrorf("dynamic: enum %s has no case named %s", id, name)
			}
			return ToTypedValue(v.inner, c.Schema)
		}

	case schema.KindEither:
		switch v.kind {
		case KindLeft:
			inner, err := ToTypedValue(v.inner, s.Either.Left)
			if err != nil {
				return nil, err
			}
			return s.Either.FromLeft(inner), nil
		case KindRight:
			inner, err := ToTypedValue(v.inner, s.Either.Right)
			if err != nil {
				return nil, err
			}
			return s.Either.FromRight(inner), nil
		}

	case schema.KindTuple:
		if v.kind == KindTuple {
			l, lerr := ToTypedValue(v.left, s.Tuple.Left)
			r, rerr := ToTypedValue(v.right, s.Tuple.Right)
			switch {
			case lerr != nil && rerr != nil:
				// The one place errors aggregate: both messages survive.
				return nil, multierror.Append(lerr, rerr)
			case lerr != nil:
				return nil, lerr
			case rerr != nil:
				return nil, rerr
			}
			return s.Tuple.Construct(l, r), nil
		}

	case schema.KindSequence:
		if v.kind == KindSequence {
			out := make([]any, len(v.elems))
			for i, e := range v.elems {
				decoded, err := ToTypedValue(e, s.Sequence.Elem)
				if err != nil {
					return nil, err
				}
				out[i] = decoded
			}
			return s.Sequence.FromSlice(out), nil
		}

	case schema.KindSet:
		if v.kind == KindSet {
			out := make([]any, len(v.elems))
			for i, e := range v.elems {
				decoded, err := ToTypedValue(e, s.Set.Elem)
				if err != nil {
					return nil, err
				}
				out[i] = decoded
			}
			return s.Set.FromSlice(out), nil
		}

	case schema.KindOptional:
		switch v.kind {
		case KindSome:
			inner, err := ToTypedValue(v.inner, s.Optional.Elem)
			if err != nil {
				return nil, err
			}
			return s.Optional.Wrap(inner, true), nil
		case KindNone:
			return s.Optional.Wrap(nil, false), nil
		}

	case schema.KindMap:
		if v.kind == KindDictionary {
			pairs := make([]schema.Pair, len(v.entries))
			for i, e := range v.entries {
				k, err := ToTypedValue(e.Key, s.Map.Key)
				if err != nil {
					return nil, err
				}
				val, err := ToTypedValue(e.Value, s.Map.Value)
				if err != nil {
					return nil, err
				}
				pairs[i] = schema.Pair{Key: k, Value: val}
			}
			// Duplicate decoded keys are left to FromPairs; native maps
			// give last-write-wins.
			return s.Map.FromPairs(pairs), nil
		}
	}

	return nil, cannotCast(v, s)
}

// DecodeOption is ToTypedValue with failure mapped to absence.
func DecodeOption(v *Value, s *schema.Schema) (any, bool) {
	decoded, err := ToTypedValue(v, s)
	if err != nil {
		return nil, false
	}
	return decoded, true
}

// decodeRecord checks that the dynamic record's label set matches the
// schema's declared labels exactly, then decodes field by field in
// declaration order, short-circuiting on the first failure.
func decodeRecord(v *Value, r *schema.RecordSchema) (any, error) {
	if len(v.fields) != len(r.Fields) {
		return nil, incompatibleRecord(v, r)
	}
	for _, f := range v.fields {
		if r.FieldByLabel(f.Name) == nil {
			return nil, incompatibleRecord(v, r)
		}
	}

	decoded := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		fv, ok := v.GetField(f.Label)
		if !ok {
			return nil, incompatibleRecord(v, r)
		}
		d, err := ToTypedValue(fv, f.Schema)
		if err != nil {
			return nil, err
		}
		decoded[f.Label] = d
	}

	out, err := r.Construct(decoded)
	if err != nil {
		return nil, castError(err.Error())
	}
	return out, nil
}

func incompatibleRecord(v *Value, r *schema.RecordSchema) *CastError {
	return &CastError{make: func() string {
		labels := make([]string, len(r.Fields))
		for i, f := range r.Fields {
			labels[i] = f.Label
		}
		got := make([]string, len(v.fields))
		for i, f := range v.fields {
			got[i] = f.Name
		}
		return "dynamic: record " + r.TypeID + " expects fields " +
			joinLabels(labels) + ", incompatible with " + joinLabels(got)
	}}
}

func joinLabels(labels []string) string {
	out := "{"
	for i, l := range labels {
		if i > 0 {
			out += ", "
		}
		out += l
	}
	return out + "}"
}
