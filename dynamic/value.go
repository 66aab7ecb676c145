package dynamic

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/skematic/dyn/decimal"
	"github.com/skematic/dyn/schema"
)

// Kind identifies a Value variant.
type Kind uint8

const (
	KindRecord Kind = iota
	KindEnum
	KindSequence
	KindDictionary
	KindSet
	KindPrimitive
	KindSingleton
	KindSome
	KindNone
	KindTuple
	KindLeft
	KindRight
	KindAst
	KindError
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindEnum:
		return "enum"
	case KindSequence:
		return "sequence"
	case KindDictionary:
		return "dictionary"
	case KindSet:
		return "set"
	case KindPrimitive:
		return "primitive"
	case KindSingleton:
		return "singleton"
	case KindSome:
		return "some"
	case KindNone:
		return "none"
	case KindTuple:
		return "tuple"
	case KindLeft:
		return "left"
	case KindRight:
		return "right"
	case KindAst:
		return "ast"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Field is one labelled component of a record value.
type Field struct {
	Name  string
	Value *Value
}

// DictEntry is one key-value association of a dictionary value.
type DictEntry struct {
	Key   *Value
	Value *Value
}

// Value is a closed recursive tagged union. Values are immutable after
// construction; all sharing is safe.
type Value struct {
	kind Kind

	typeID   string          // record, enum
	fields   []Field         // record (ordered, preserved for display)
	caseName string          // enum
	elems    []*Value        // sequence, set
	entries  []DictEntry     // dictionary
	prim     any             // primitive native value
	tag      schema.StandardType // primitive tag
	inner    *Value          // enum payload, some, left, right
	left     *Value          // tuple
	right    *Value          // tuple
	ast      *Ast            // ast
	errMsg   string          // error
}

// ============================================================
// Constructors
// ============================================================

// Record creates a record value. Field order is preserved.
func Record(typeID string, fields ...Field) *Value {
	return &Value{kind: KindRecord, typeID: typeID, fields: fields}
}

// FieldOf creates a record field for use in Record construction.
func FieldOf(name string, v *Value) Field {
	return Field{Name: name, Value: v}
}

// Enum creates an enumeration value with exactly one active case.
func Enum(typeID, caseName string, v *Value) *Value {
	return &Value{kind: KindEnum, typeID: typeID, caseName: caseName, inner: v}
}

// Sequence creates an ordered collection value.
func Sequence(elems ...*Value) *Value {
	return &Value{kind: KindSequence, elems: elems}
}

// Dictionary creates an associative value. Key uniqueness is not enforced
// at this layer; duplicates stay if produced.
func Dictionary(entries ...DictEntry) *Value {
	return &Value{kind: KindDictionary, entries: entries}
}

// EntryOf creates a dictionary entry.
func EntryOf(key, value *Value) DictEntry {
	return DictEntry{Key: key, Value: value}
}

// Set creates a set value. Equality and printing treat the elements as
// unordered.
func Set(elems ...*Value) *Value {
	return &Value{kind: KindSet, elems: elems}
}

// Prim creates a primitive leaf carrying a native value under a
// standard-type tag.
func Prim(v any, tag schema.StandardType) *Value {
	return &Value{kind: KindPrimitive, prim: v, tag: tag}
}

var (
	singletonValue = &Value{kind: KindSingleton}
	noneValue      = &Value{kind: KindNone}
	unitValue      = &Value{kind: KindPrimitive, tag: schema.TypeUnit}
)

// Singleton is the canonical instance of zero-field object types.
func Singleton() *Value { return singletonValue }

// Some wraps a present optional value.
func Some(v *Value) *Value {
	return &Value{kind: KindSome, inner: v}
}

// None is the absent optional value.
func None() *Value { return noneValue }

// Tuple creates a pair value.
func Tuple(left, right *Value) *Value {
	return &Value{kind: KindTuple, left: left, right: right}
}

// Left creates the left side of a disjoint union.
func Left(v *Value) *Value {
	return &Value{kind: KindLeft, inner: v}
}

// Right creates the right side of a disjoint union.
func Right(v *Value) *Value {
	return &Value{kind: KindRight, inner: v}
}

// FromAst embeds a meta-schema as a value.
func FromAst(ast *Ast) *Value {
	return &Value{kind: KindAst, ast: ast}
}

// WithSchema marks v as self-described: the returned value decodes against
// the embedded ast regardless of the requested target schema.
func WithSchema(v *Value, ast *Ast) *Value {
	return Tuple(v, FromAst(ast))
}

// ErrorValue captures a failure as data.
func ErrorValue(message string) *Value {
	return &Value{kind: KindError, errMsg: message}
}

// Errorf captures a formatted failure as data.
func Errorf(format string, args ...any) *Value {
	return ErrorValue(fmt.Sprintf(format, args...))
}

// ============================================================
// Primitive shortcuts
// ============================================================

// Unit is the unit primitive.
func Unit() *Value { return unitValue }

// Bool creates a bool primitive.
func Bool(v bool) *Value { return Prim(v, schema.TypeBool) }

// String creates a string primitive.
func String(v string) *Value { return Prim(v, schema.TypeString) }

// Int creates an int primitive.
func Int(v int) *Value { return Prim(v, schema.TypeInt) }

// Long creates an int64 primitive.
func Long(v int64) *Value { return Prim(v, schema.TypeLong) }

// Float64 creates a float64 primitive.
func Float64(v float64) *Value { return Prim(v, schema.TypeFloat64) }

// Char creates a rune primitive.
func Char(v rune) *Value { return Prim(v, schema.TypeChar) }

// Binary creates a bytes primitive.
func Binary(v []byte) *Value { return Prim(v, schema.TypeBinary) }

// BigInt creates an arbitrary-precision integer primitive.
func BigInt(v *big.Int) *Value { return Prim(v, schema.TypeBigInt) }

// Decimal creates a 128-bit decimal primitive.
func Decimal(v decimal.Decimal128) *Value { return Prim(v, schema.TypeDecimal) }

// UUID creates a uuid primitive.
func UUID(v uuid.UUID) *Value { return Prim(v, schema.TypeUUID) }

// Instant creates a point-in-time primitive.
func Instant(v time.Time) *Value { return Prim(v, schema.TypeInstant) }

// Duration creates a duration primitive.
func Duration(v time.Duration) *Value { return Prim(v, schema.TypeDuration) }

// ============================================================
// Accessors
// ============================================================

// Kind returns the variant of this value.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNone
	}
	return v.kind
}

// TypeID returns the type identifier of a record or enum value, "" otherwise.
func (v *Value) TypeID() string { return v.typeID }

// Fields returns the ordered fields of a record value.
func (v *Value) Fields() []Field { return v.fields }

// GetField looks a record field up by name.
func (v *Value) GetField(name string) (*Value, bool) {
	if v == nil || v.kind != KindRecord {
		return nil, false
	}
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Case returns the active case name and payload of an enum value.
func (v *Value) Case() (string, *Value) { return v.caseName, v.inner }

// Elems returns the elements of a sequence or set value.
func (v *Value) Elems() []*Value { return v.elems }

// Entries returns the ordered entries of a dictionary value.
func (v *Value) Entries() []DictEntry { return v.entries }

// Primitive returns the native value and tag of a primitive leaf.
func (v *Value) Primitive() (any, schema.StandardType) { return v.prim, v.tag }

// Inner returns the wrapped value of a some, left or right variant.
func (v *Value) Inner() *Value { return v.inner }

// TupleSides returns both components of a tuple value.
func (v *Value) TupleSides() (*Value, *Value) { return v.left, v.right }

// Ast returns the embedded meta-schema of an ast value.
func (v *Value) Ast() *Ast { return v.ast }

// ErrorMessage returns the captured message of an error value.
func (v *Value) ErrorMessage() string { return v.errMsg }

// IsError reports whether this value is a captured failure.
func (v *Value) IsError() bool { return v != nil && v.kind == KindError }

// describe names the variant for failure messages, including the type
// identifier where one exists.
func (v *Value) describe() string {
	if v == nil {
		return "none"
	}
	switch v.kind {
	case KindRecord:
		return "record " + v.typeID
	case KindEnum:
		return "enum " + v.typeID + "." + v.caseName
	case KindPrimitive:
		return "primitive " + v.tag.String()
	default:
		return v.kind.String()
	}
}
