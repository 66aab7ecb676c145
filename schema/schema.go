package schema

import "sync"

// Kind identifies the shape of a Schema.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindRecord
	KindEnum
	KindSequence
	KindMap
	KindSet
	KindOptional
	KindTuple
	KindEither
	KindTransform
	KindLazy
	KindDynamic
	KindFail
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindRecord:
		return "record"
	case KindEnum:
		return "enum"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	case KindOptional:
		return "optional"
	case KindTuple:
		return "tuple"
	case KindEither:
		return "either"
	case KindTransform:
		return "transform"
	case KindLazy:
		return "lazy"
	case KindDynamic:
		return "dynamic"
	case KindFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Schema is a tagged union over shapes. Exactly one payload field is set,
// selected by Kind. KindDynamic carries no payload.
type Schema struct {
	Kind Kind

	Prim        StandardType     // KindPrimitive
	Record      *RecordSchema    // KindRecord
	Enum        *EnumSchema      // KindEnum
	Sequence    *SequenceSchema  // KindSequence
	Map         *MapSchema       // KindMap
	Set         *SetSchema       // KindSet
	Optional    *OptionalSchema  // KindOptional
	Tuple       *TupleSchema     // KindTuple
	Either      *EitherSchema    // KindEither
	Transform   *TransformSchema // KindTransform
	FailMessage string           // KindFail

	lazy *lazySchema // KindLazy
}

// Field is one labelled component of a record shape: its sub-schema and the
// accessor pulling the field value out of a typed record.
type Field struct {
	Label  string
	Schema *Schema
	Get    func(record any) any
}

// RecordSchema describes a product shape of arbitrary arity. Construct
// rebuilds the typed record from decoded field values keyed by label.
type RecordSchema struct {
	TypeID    string
	Fields    []*Field
	Construct func(fields map[string]any) (any, error)
}

// FieldByLabel returns the field declaration with the given label.
func (r *RecordSchema) FieldByLabel(label string) *Field {
	for _, f := range r.Fields {
		if f.Label == label {
			return f
		}
	}
	return nil
}

// Case is one declared alternative of a sum shape. Deconstruct tests whether
// a typed sum value is this case, returning the case payload when it is.
type Case struct {
	Name        string
	Schema      *Schema
	Deconstruct func(sum any) (payload any, ok bool)
}

// EnumSchema describes a sum shape of arbitrary arity. Case order matters:
// encoding picks the first case whose Deconstruct matches.
type EnumSchema struct {
	TypeID string
	Cases  []*Case
}

// CaseByName returns the declared case with the given name.
func (e *EnumSchema) CaseByName(name string) *Case {
	for _, c := range e.Cases {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SequenceSchema describes an ordered collection shape with conversions
// to and from a plain slice of elements.
type SequenceSchema struct {
	Elem      *Schema
	ToSlice   func(collection any) []any
	FromSlice func(elems []any) any
}

// SetSchema describes a mathematical-set shape. FromSlice is expected to
// collapse duplicates per the native set's semantics.
type SetSchema struct {
	Elem      *Schema
	ToSlice   func(set any) []any
	FromSlice func(elems []any) any
}

// Pair is one association of a map shape in its slice carrier form.
type Pair struct {
	Key   any
	Value any
}

// MapSchema describes an associative shape with conversions to and from a
// pair slice. FromPairs decides duplicate-key behavior; native Go maps give
// last-write-wins.
type MapSchema struct {
	Key       *Schema
	Value     *Schema
	ToPairs   func(m any) []Pair
	FromPairs func(pairs []Pair) any
}

// OptionalSchema describes an optional shape. Unwrap reports presence and
// the wrapped value; Wrap builds the native optional back.
type OptionalSchema struct {
	Elem   *Schema
	Unwrap func(opt any) (value any, present bool)
	Wrap   func(value any, present bool) any
}

// TupleSchema describes a pair shape.
type TupleSchema struct {
	Left      *Schema
	Right     *Schema
	Destruct  func(tuple any) (left, right any)
	Construct func(left, right any) any
}

// EitherSchema describes a disjoint-union shape. Destruct reports which side
// is active and its value.
type EitherSchema struct {
	Left      *Schema
	Right     *Schema
	Destruct  func(either any) (value any, right bool)
	FromLeft  func(value any) any
	FromRight func(value any) any
}

// TransformSchema wraps an underlying shape with a bidirectional mapping.
// Forward maps underlying-value to target-value (used on decode), Backward
// maps target-value to underlying-value (used on encode). Either direction
// may fail with a message.
type TransformSchema struct {
	TypeID     string
	Underlying *Schema
	Forward    func(underlying any) (any, error)
	Backward   func(target any) (any, error)
}

type lazySchema struct {
	once     sync.Once
	resolve  func() *Schema
	resolved *Schema
}

func (l *lazySchema) force() *Schema {
	l.once.Do(func() {
		l.resolved = l.resolve()
	})
	return l.resolved
}

// Force resolves chained lazy wrappers and returns the concrete schema.
// Non-lazy schemas return themselves. Resolution is memoized, so recursive
// schemas are never eagerly unrolled.
func (s *Schema) Force() *Schema {
	for s.Kind == KindLazy {
		s = s.lazy.force()
	}
	return s
}

// TypeID returns the declared type identifier for records, enums and
// transforms, and "" for every other shape.
func (s *Schema) TypeID() string {
	switch s.Kind {
	case KindRecord:
		return s.Record.TypeID
	case KindEnum:
		return s.Enum.TypeID
	case KindTransform:
		return s.Transform.TypeID
	default:
		return ""
	}
}

// String returns a short human-readable description, used in cast-failure
// messages.
func (s *Schema) String() string {
	switch s.Kind {
	case KindPrimitive:
		return "primitive " + s.Prim.String()
	case KindRecord:
		return "record " + s.Record.TypeID
	case KindEnum:
		return "enum " + s.Enum.TypeID
	case KindTransform:
		if s.Transform.TypeID != "" {
			return "transform " + s.Transform.TypeID
		}
		return "transform"
	case KindLazy:
		return "lazy"
	default:
		return s.Kind.String()
	}
}

// ============================================================
// Constructors
// ============================================================

// Primitive creates a primitive schema for the given standard-type tag.
func Primitive(tag StandardType) *Schema {
	return &Schema{Kind: KindPrimitive, Prim: tag}
}

// NewField creates a record field declaration.
func NewField(label string, s *Schema, get func(record any) any) *Field {
	return &Field{Label: label, Schema: s, Get: get}
}

// Record creates a product schema. Field order is declaration order.
func Record(typeID string, construct func(map[string]any) (any, error), fields ...*Field) *Schema {
	return &Schema{Kind: KindRecord, Record: &RecordSchema{
		TypeID:    typeID,
		Fields:    fields,
		Construct: construct,
	}}
}

// NewCase creates a sum case declaration.
func NewCase(name string, s *Schema, deconstruct func(sum any) (any, bool)) *Case {
	return &Case{Name: name, Schema: s, Deconstruct: deconstruct}
}

// Enum creates a sum schema. Case order is declaration order and decides
// first-match-wins encoding.
func Enum(typeID string, cases ...*Case) *Schema {
	return &Schema{Kind: KindEnum, Enum: &EnumSchema{TypeID: typeID, Cases: cases}}
}

// Sequence creates an ordered-collection schema with explicit conversions.
func Sequence(elem *Schema, toSlice func(any) []any, fromSlice func([]any) any) *Schema {
	return &Schema{Kind: KindSequence, Sequence: &SequenceSchema{
		Elem:      elem,
		ToSlice:   toSlice,
		FromSlice: fromSlice,
	}}
}

// SequenceOf creates a sequence schema whose native collection is []any.
func SequenceOf(elem *Schema) *Schema {
	return Sequence(elem,
		func(v any) []any { return v.([]any) },
		func(elems []any) any { return elems },
	)
}

// Set creates a set schema with explicit conversions.
func Set(elem *Schema, toSlice func(any) []any, fromSlice func([]any) any) *Schema {
	return &Schema{Kind: KindSet, Set: &SetSchema{
		Elem:      elem,
		ToSlice:   toSlice,
		FromSlice: fromSlice,
	}}
}

// SetOf creates a set schema whose native collection is []any. The default
// FromSlice keeps the decoded order; duplicate collapse is left to the
// dynamic layer's set semantics.
func SetOf(elem *Schema) *Schema {
	return Set(elem,
		func(v any) []any { return v.([]any) },
		func(elems []any) any { return elems },
	)
}

// Map creates an associative schema with explicit conversions.
func Map(key, value *Schema, toPairs func(any) []Pair, fromPairs func([]Pair) any) *Schema {
	return &Schema{Kind: KindMap, Map: &MapSchema{
		Key:       key,
		Value:     value,
		ToPairs:   toPairs,
		FromPairs: fromPairs,
	}}
}

// MapOf creates a map schema whose native collection is []Pair, preserving
// entry order and duplicates as produced.
func MapOf(key, value *Schema) *Schema {
	return Map(key, value,
		func(v any) []Pair { return v.([]Pair) },
		func(pairs []Pair) any { return pairs },
	)
}

// Option is the default native carrier for optional shapes.
type Option struct {
	Value any
	Set   bool
}

// SomeOf wraps a present optional value.
func SomeOf(v any) Option { return Option{Value: v, Set: true} }

// NoneOf is the absent optional value.
func NoneOf() Option { return Option{} }

// Optional creates an optional schema with explicit conversions.
func Optional(elem *Schema, unwrap func(any) (any, bool), wrap func(any, bool) any) *Schema {
	return &Schema{Kind: KindOptional, Optional: &OptionalSchema{
		Elem:   elem,
		Unwrap: unwrap,
		Wrap:   wrap,
	}}
}

// OptionalOf creates an optional schema whose native carrier is Option.
func OptionalOf(elem *Schema) *Schema {
	return Optional(elem,
		func(v any) (any, bool) {
			o := v.(Option)
			return o.Value, o.Set
		},
		func(v any, present bool) any {
			if !present {
				return NoneOf()
			}
			return SomeOf(v)
		},
	)
}

// Tuple2 is the default native carrier for tuple shapes.
type Tuple2 struct {
	First  any
	Second any
}

// Tuple creates a pair schema with explicit conversions.
func Tuple(left, right *Schema, destruct func(any) (any, any), construct func(any, any) any) *Schema {
	return &Schema{Kind: KindTuple, Tuple: &TupleSchema{
		Left:      left,
		Right:     right,
		Destruct:  destruct,
		Construct: construct,
	}}
}

// TupleOf creates a tuple schema whose native carrier is Tuple2.
func TupleOf(left, right *Schema) *Schema {
	return Tuple(left, right,
		func(v any) (any, any) {
			t := v.(Tuple2)
			return t.First, t.Second
		},
		func(l, r any) any { return Tuple2{First: l, Second: r} },
	)
}

// EitherValue is the default native carrier for either shapes.
type EitherValue struct {
	Value any
	Right bool
}

// LeftOf wraps a left-side either value.
func LeftOf(v any) EitherValue { return EitherValue{Value: v} }

// RightOf wraps a right-side either value.
func RightOf(v any) EitherValue { return EitherValue{Value: v, Right: true} }

// Either creates a disjoint-union schema with explicit conversions.
func Either(left, right *Schema, destruct func(any) (any, bool), fromLeft, fromRight func(any) any) *Schema {
	return &Schema{Kind: KindEither, Either: &EitherSchema{
		Left:      left,
		Right:     right,
		Destruct:  destruct,
		FromLeft:  fromLeft,
		FromRight: fromRight,
	}}
}

// EitherOf creates an either schema whose native carrier is EitherValue.
func EitherOf(left, right *Schema) *Schema {
	return Either(left, right,
		func(v any) (any, bool) {
			e := v.(EitherValue)
			return e.Value, e.Right
		},
		func(v any) any { return LeftOf(v) },
		func(v any) any { return RightOf(v) },
	)
}

// Variant is the default native carrier for sum values decoded through a
// generic (ast-reconstructed) enum schema: the active case name plus its
// payload.
type Variant struct {
	Name  string
	Value any
}

// VariantCase creates an enum case whose native carrier is Variant. The
// inner schema decodes the case payload; the case wraps and unwraps the
// Variant envelope around it.
func VariantCase(name string, inner *Schema) *Case {
	wrapped := Transform("", inner,
		func(payload any) (any, error) { return Variant{Name: name, Value: payload}, nil },
		func(sum any) (any, error) { return sum.(Variant).Value, nil },
	)
	return NewCase(name, wrapped, func(sum any) (any, bool) {
		v, ok := sum.(Variant)
		if !ok || v.Name != name {
			return nil, false
		}
		return v, true
	})
}

// Transform wraps an underlying schema with a bidirectional mapping.
func Transform(typeID string, underlying *Schema, forward, backward func(any) (any, error)) *Schema {
	return &Schema{Kind: KindTransform, Transform: &TransformSchema{
		TypeID:     typeID,
		Underlying: underlying,
		Forward:    forward,
		Backward:   backward,
	}}
}

// Lazy defers schema resolution until first use. The thunk is resolved at
// most once, which makes self-referential schemas safe to build.
func Lazy(resolve func() *Schema) *Schema {
	return &Schema{Kind: KindLazy, lazy: &lazySchema{resolve: resolve}}
}

// Dynamic creates the self-describing schema: its typed values ARE dynamic
// values, passed through unchanged by both conversion directions.
func Dynamic() *Schema {
	return &Schema{Kind: KindDynamic}
}

// Fail creates an uninhabited schema that errors with the given message.
func Fail(message string) *Schema {
	return &Schema{Kind: KindFail, FailMessage: message}
}
