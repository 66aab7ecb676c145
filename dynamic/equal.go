package dynamic

import "github.com/skematic/dyn/schema"

// Equal reports structural equality. Record fields compare by label
// regardless of order, set elements compare as an unordered collection,
// sequences and dictionaries compare in order. Primitive leaves are equal
// only when both tag and native value match.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindRecord:
		if v.typeID != other.typeID || len(v.fields) != len(other.fields) {
			return false
		}
		for _, f := range v.fields {
			ov, ok := other.GetField(f.Name)
			if !ok || !f.Value.Equal(ov) {
				return false
			}
		}
		return true

	case KindEnum:
		return v.typeID == other.typeID &&
			v.caseName == other.caseName &&
			v.inner.Equal(other.inner)

	case KindSequence:
		return elemsEqual(v.elems, other.elems)

	case KindDictionary:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for i, e := range v.entries {
			oe := other.entries[i]
			if !e.Key.Equal(oe.Key) || !e.Value.Equal(oe.Value) {
				return false
			}
		}
		return true

	case KindSet:
		if len(v.elems) != len(other.elems) {
			return false
		}
		// Elements are unique, so a one-way containment check at equal
		// length suffices.
		for _, e := range v.elems {
			found := false
			for _, oe := range other.elems {
				if e.Equal(oe) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true

	case KindPrimitive:
		return v.tag == other.tag && schema.StandardEqual(v.tag, v.prim, other.prim)

	case KindSingleton, KindNone:
		return true

	case KindSome, KindLeft, KindRight:
		return v.inner.Equal(other.inner)

	case KindTuple:
		return v.left.Equal(other.left) && v.right.Equal(other.right)

	case KindAst:
		return v.ast.Equal(other.ast)

	case KindError:
		return v.errMsg == other.errMsg

	default:
		return false
	}
}

func elemsEqual(a, b []*Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
