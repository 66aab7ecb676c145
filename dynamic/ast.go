package dynamic

import (
	"strings"

	"github.com/skematic/dyn/schema"
)

// ============================================================
// Meta-Schema
// ============================================================
//
// Ast is a serializable description of a schema's shape: the schema minus
// its capability functions. It is what a self-describing value embeds, and
// what a consumer reconstructs into a live generic schema at decode time.

// AstKind identifies an Ast node shape.
type AstKind uint8

const (
	AstProduct AstKind = iota
	AstSum
	AstPrim
	AstList
	AstMap
	AstSet
	AstOptional
	AstTuple
	AstEither
	AstDynamic
	AstFail
	AstRef
)

// String returns the node shape name.
func (k AstKind) String() string {
	switch k {
	case AstProduct:
		return "product"
	case AstSum:
		return "sum"
	case AstPrim:
		return "prim"
	case AstList:
		return "list"
	case AstMap:
		return "map"
	case AstSet:
		return "set"
	case AstOptional:
		return "optional"
	case AstTuple:
		return "tuple"
	case AstEither:
		return "either"
	case AstDynamic:
		return "dynamic"
	case AstFail:
		return "fail"
	case AstRef:
		return "ref"
	default:
		return "unknown"
	}
}

// AstKindByName resolves a node shape name back to its AstKind.
func AstKindByName(name string) (AstKind, bool) {
	for k := AstProduct; k <= AstRef; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Labeled is one labelled child of a product or sum node.
type Labeled struct {
	Label string
	Ast   *Ast
}

// Ast is a schema shape tree. Recursive shapes are broken by Ref nodes
// naming the enclosing product or sum type id, so the tree is always
// finite.
type Ast struct {
	Kind    AstKind
	TypeID  string              // product, sum, ref
	Members []Labeled           // product fields / sum cases
	Prim    schema.StandardType // prim
	Elem    *Ast                // list, set, optional
	Key     *Ast                // map
	Value   *Ast                // map
	Left    *Ast                // tuple, either
	Right   *Ast                // tuple, either
	Message string              // fail
}

// AstFromSchema extracts the serializable shape of a schema. Transforms
// flatten to their underlying shape, lazy schemas are forced, and revisited
// record or enum type ids become Ref nodes.
func AstFromSchema(s *schema.Schema) *Ast {
	return astFrom(s, map[string]bool{})
}

func astFrom(s *schema.Schema, seen map[string]bool) *Ast {
	s = s.Force()

	switch s.Kind {
	case schema.KindPrimitive:
		return &Ast{Kind: AstPrim, Prim: s.Prim}

	case schema.KindRecord:
		id := s.Record.TypeID
		if seen[id] {
			return &Ast{Kind: AstRef, TypeID: id}
		}
		seen[id] = true
		members := make([]Labeled, len(s.Record.Fields))
		for i, f := range s.Record.Fields {
			members[i] = Labeled{Label: f.Label, Ast: astFrom(f.Schema, seen)}
		}
		delete(seen, id)
		return &Ast{Kind: AstProduct, TypeID: id, Members: members}

	case schema.KindEnum:
		id := s.Enum.TypeID
		if seen[id] {
			return &Ast{Kind: AstRef, TypeID: id}
		}
		seen[id] = true
		members := make([]Labeled, len(s.Enum.Cases))
		for i, c := range s.Enum.Cases {
			members[i] = Labeled{Label: c.Name, Ast: astFrom(c.Schema, seen)}
		}
		delete(seen, id)
		return &Ast{Kind: AstSum, TypeID: id, Members: members}

	case schema.KindSequence:
		return &Ast{Kind: AstList, Elem: astFrom(s.Sequence.Elem, seen)}

	case schema.KindMap:
		return &Ast{Kind: AstMap, Key: astFrom(s.Map.Key, seen), Value: astFrom(s.Map.Value, seen)}

	case schema.KindSet:
		return &Ast{Kind: AstSet, Elem: astFrom(s.Set.Elem, seen)}

	case schema.KindOptional:
		return &Ast{Kind: AstOptional, Elem: astFrom(s.Optional.Elem, seen)}

	case schema.KindTuple:
		return &Ast{Kind: AstTuple, Left: astFrom(s.Tuple.Left, seen), Right: astFrom(s.Tuple.Right, seen)}

	case schema.KindEither:
		return &Ast{Kind: AstEither, Left: astFrom(s.Either.Left, seen), Right: astFrom(s.Either.Right, seen)}

	case schema.KindTransform:
		return astFrom(s.Transform.Underlying, seen)

	case schema.KindDynamic:
		return &Ast{Kind: AstDynamic}

	case schema.KindFail:
		return &Ast{Kind: AstFail, Message: s.FailMessage}

	default:
		return &Ast{Kind: AstFail, Message: "dynamic: unsupported schema kind " + s.Kind.String()}
	}
}

// Schema reconstructs a live generic schema from the shape. Products build
// map[string]any records, sums build schema.Variant values, collections and
// wrappers use the schema package's default carriers. Ref nodes resolve
// lazily against their enclosing product or sum.
func (a *Ast) Schema() *schema.Schema {
	return a.build(map[string]*schema.Schema{})
}

func (a *Ast) build(env map[string]*schema.Schema) *schema.Schema {
	switch a.Kind {
	case AstPrim:
		return schema.Primitive(a.Prim)

	case AstProduct:
		// Publish a lazy handle before building children so Ref nodes can
		// resolve back to this product.
		var built *schema.Schema
		env[a.TypeID] = schema.Lazy(func() *schema.Schema { return built })
		fields := make([]*schema.Field, len(a.Members))
		for i, m := range a.Members {
			label := m.Label
			fields[i] = schema.NewField(label, m.Ast.build(env), func(rec any) any {
				return rec.(map[string]any)[label]
			})
		}
		built = schema.Record(a.TypeID,
			func(m map[string]any) (any, error) { return m, nil },
			fields...,
		)
		return built

	case AstSum:
		var built *schema.Schema
		env[a.TypeID] = schema.Lazy(func() *schema.Schema { return built })
		cases := make([]*schema.Case, len(a.Members))
		for i, m := range a.Members {
			cases[i] = schema.VariantCase(m.Label, m.Ast.build(env))
		}
		built = schema.Enum(a.TypeID, cases...)
		return built

	case AstList:
		return schema.SequenceOf(a.Elem.build(env))

	case AstMap:
		return schema.MapOf(a.Key.build(env), a.Value.build(env))

	case AstSet:
		return schema.SetOf(a.Elem.build(env))

	case AstOptional:
		return schema.OptionalOf(a.Elem.build(env))

	case AstTuple:
		return schema.TupleOf(a.Left.build(env), a.Right.build(env))

	case AstEither:
		return schema.EitherOf(a.Left.build(env), a.Right.build(env))

	case AstDynamic:
		return schema.Dynamic()

	case AstFail:
		return schema.Fail(a.Message)

	case AstRef:
		if resolved, ok := env[a.TypeID]; ok {
			return resolved
		}
		return schema.Fail("dynamic: unresolved schema reference " + a.TypeID)

	default:
		return schema.Fail("dynamic: unknown ast kind")
	}
}

// Equal reports structural equality of two shape trees.
func (a *Ast) Equal(other *Ast) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Kind != other.Kind || a.TypeID != other.TypeID ||
		a.Prim != other.Prim || a.Message != other.Message {
		return false
	}
	if len(a.Members) != len(other.Members) {
		return false
	}
	for i, m := range a.Members {
		om := other.Members[i]
		if m.Label != om.Label || !m.Ast.Equal(om.Ast) {
			return false
		}
	}
	return a.Elem.Equal(other.Elem) &&
		a.Key.Equal(other.Key) && a.Value.Equal(other.Value) &&
		a.Left.Equal(other.Left) && a.Right.Equal(other.Right)
}

// String returns a compact shape description.
func (a *Ast) String() string {
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (a *Ast) write(b *strings.Builder) {
	if a == nil {
		return
	}
	switch a.Kind {
	case AstPrim:
		b.WriteString(a.Prim.String())
	case AstProduct:
		b.WriteString(a.TypeID)
		b.WriteByte('{')
		for i, m := range a.Members {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(m.Label)
			b.WriteByte(':')
			m.Ast.write(b)
		}
		b.WriteByte('}')
	case AstSum:
		b.WriteString(a.TypeID)
		b.WriteByte('<')
		for i, m := range a.Members {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(m.Label)
			b.WriteByte(':')
			m.Ast.write(b)
		}
		b.WriteByte('>')
	case AstList:
		b.WriteByte('[')
		a.Elem.write(b)
		b.WriteByte(']')
	case AstMap:
		b.WriteString("map<")
		a.Key.write(b)
		b.WriteByte(',')
		a.Value.write(b)
		b.WriteByte('>')
	case AstSet:
		b.WriteString("set<")
		a.Elem.write(b)
		b.WriteByte('>')
	case AstOptional:
		a.Elem.write(b)
		b.WriteByte('?')
	case AstTuple:
		b.WriteByte('(')
		a.Left.write(b)
		b.WriteByte(',')
		a.Right.write(b)
		b.WriteByte(')')
	case AstEither:
		b.WriteString("either<")
		a.Left.write(b)
		b.WriteByte(',')
		a.Right.write(b)
		b.WriteByte('>')
	case AstDynamic:
		b.WriteString("dynamic")
	case AstFail:
		b.WriteString("fail(")
		b.WriteString(quoteString(a.Message))
		b.WriteByte(')')
	case AstRef:
		b.WriteByte('&')
		b.WriteString(a.TypeID)
	}
}
