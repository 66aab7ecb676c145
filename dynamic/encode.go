package dynamic

import "github.com/skematic/dyn/schema"

// FromSchemaAndValue converts a typed value into its dynamic
// representation, guided by the value's schema. The function is total:
// transform and shape failures are captured as Error nodes in the result
// rather than returned.
func FromSchemaAndValue(s *schema.Schema, v any) *Value {
	s = s.Force()

	switch s.Kind {
	case schema.KindPrimitive:
		return Prim(v, s.Prim)

	case schema.KindRecord:
		if len(s.Record.Fields) == 0 {
			return Singleton()
		}
		fields := make([]Field, 0, len(s.Record.Fields))
		for _, f := range s.Record.Fields {
			fields = append(fields, FieldOf(f.Label, FromSchemaAndValue(f.Schema, f.Get(v))))
		}
		return Record(s.Record.TypeID, fields...)

	case schema.KindEnum:
		// First declared case whose extractor matches wins. A value that
		// matches no case is a malformed hand-built sum instance; it
		// degrades to the none marker rather than an error.
		for _, c := range s.Enum.Cases {
			if payload, ok := c.Deconstruct(v); ok {
				return Enum(s.Enum.TypeID, c.Name, FromSchemaAndValue(c.Schema, payload))
			}
		}
		return None()

	case schema.KindSequence:
		elems := s.Sequence.ToSlice(v)
		out := make([]*Value, len(elems))
		for i, e := range elems {
			out[i] = FromSchemaAndValue(s.Sequence.Elem, e)
		}
		return Sequence(out...)

	case schema.KindMap:
		pairs := s.Map.ToPairs(v)
		entries := make([]DictEntry, len(pairs))
		for i, p := range pairs {
			entries[i] = EntryOf(
				FromSchemaAndValue(s.Map.Key, p.Key),
				FromSchemaAndValue(s.Map.Value, p.Value),
			)
		}
		return Dictionary(entries...)

	case schema.KindSet:
		elems := s.Set.ToSlice(v)
		out := make([]*Value, len(elems))
		for i, e := range elems {
			out[i] = FromSchemaAndValue(s.Set.Elem, e)
		}
		return Set(out...)

	case schema.KindOptional:
		if inner, present := s.Optional.Unwrap(v); present {
			return Some(FromSchemaAndValue(s.Optional.Elem, inner))
		}
		return None()

	case schema.KindTuple:
		l, r := s.Tuple.Destruct(v)
		return Tuple(
			FromSchemaAndValue(s.Tuple.Left, l),
			FromSchemaAndValue(s.Tuple.Right, r),
		)

	case schema.KindEither:
		inner, right := s.Either.Destruct(v)
		if right {
			return Right(FromSchemaAndValue(s.Either.Right, inner))
		}
		return Left(FromSchemaAndValue(s.Either.Left, inner))

	case schema.KindTransform:
		underlying, err := s.Transform.Backward(v)
		if err != nil {
			return ErrorValue(err.Error())
		}
		return FromSchemaAndValue(s.Transform.Underlying, underlying)

	case schema.KindDynamic:
		dv, ok := v.(*Value)
		if !ok {
			return Errorf("dynamic: %T is not a dynamic value", v)
		}
		return dv

	case schema.KindFail:
		return ErrorValue(s.FailMessage)

	default:
		return Errorf("dynamic: unsupported schema kind %s", s.Kind)
	}
}
