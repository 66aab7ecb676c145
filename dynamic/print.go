package dynamic

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/skematic/dyn/schema"
)

// ============================================================
// Canonical Text Form
// ============================================================
//
// Record:     Person{name=Ann age=30}
// Enum:       WireTransfer(...)
// Sequence:   [1 2 3]
// Dictionary: {k: v k2: v2}
// Set:        #{a b}
// Optional:   Some(x) / ∅
// Tuple:      (l, r)
// Either:     Left(v) / Right(v)
// Singleton:  {}
// Ast:        @schema(...)
// Error:      !"message"

// String returns the compact canonical text form, preserving record field
// and dictionary entry order as constructed.
func (v *Value) String() string {
	var b strings.Builder
	v.write(&b, false)
	return b.String()
}

// canonicalString is the order-normalized form used for hashing: record
// fields sort by label, set elements sort by their own canonical text.
func (v *Value) canonicalString() string {
	var b strings.Builder
	v.write(&b, true)
	return b.String()
}

func (v *Value) write(b *strings.Builder, canonical bool) {
	if v == nil {
		b.WriteString("∅")
		return
	}

	switch v.kind {
	case KindRecord:
		b.WriteString(v.typeID)
		b.WriteByte('{')
		fields := v.fields
		if canonical {
			fields = append([]Field(nil), v.fields...)
			sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f.Name)
			b.WriteByte('=')
			f.Value.write(b, canonical)
		}
		b.WriteByte('}')

	case KindEnum:
		b.WriteString(v.caseName)
		b.WriteByte('(')
		v.inner.write(b, canonical)
		b.WriteByte(')')

	case KindSequence:
		b.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			e.write(b, canonical)
		}
		b.WriteByte(']')

	case KindDictionary:
		b.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				b.WriteByte(' ')
			}
			e.Key.write(b, canonical)
			b.WriteString(": ")
			e.Value.write(b, canonical)
		}
		b.WriteByte('}')

	case KindSet:
		texts := make([]string, len(v.elems))
		for i, e := range v.elems {
			var eb strings.Builder
			e.write(&eb, canonical)
			texts[i] = eb.String()
		}
		// Sets are unordered; normalize even in display so equal sets read
		// equal.
		sort.Strings(texts)
		b.WriteString("#{")
		b.WriteString(strings.Join(texts, " "))
		b.WriteByte('}')

	case KindPrimitive:
		raw := FormatPrimitive(v.tag, v.prim)
		if v.tag == schema.TypeString || v.tag == schema.TypeChar {
			if !isBareSafe(raw) {
				raw = quoteString(raw)
			}
		}
		b.WriteString(raw)

	case KindSingleton:
		b.WriteString("{}")

	case KindSome:
		b.WriteString("Some(")
		v.inner.write(b, canonical)
		b.WriteByte(')')

	case KindNone:
		b.WriteString("∅")

	case KindTuple:
		b.WriteByte('(')
		v.left.write(b, canonical)
		b.WriteString(", ")
		v.right.write(b, canonical)
		b.WriteByte(')')

	case KindLeft:
		b.WriteString("Left(")
		v.inner.write(b, canonical)
		b.WriteByte(')')

	case KindRight:
		b.WriteString("Right(")
		v.inner.write(b, canonical)
		b.WriteByte(')')

	case KindAst:
		b.WriteString("@schema(")
		b.WriteString(v.ast.String())
		b.WriteByte(')')

	case KindError:
		b.WriteByte('!')
		b.WriteString(quoteString(v.errMsg))
	}
}

// ============================================================
// String Quoting
// ============================================================

// isBareSafe checks whether a string can be printed without quotes:
// a letter or underscore followed by letters, digits, _, -, ., /.
// Reserved literal forms always quote.
func isBareSafe(s string) bool {
	if len(s) == 0 {
		return false
	}

	switch s {
	case "t", "f", "true", "false", "null", "none", "nil", "∅":
		return false
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return false
	}
	if !unicode.IsLetter(r) && r != '_' {
		return false
	}

	for i := size; i < len(s); {
		r, size = utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			r != '_' && r != '-' && r != '.' && r != '/' {
			return false
		}
		i += size
	}

	return true
}

// quoteString returns a quoted string with minimal escapes.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 10)
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				hex := strconv.FormatInt(int64(r), 16)
				if len(hex) == 1 {
					b.WriteByte('0')
				}
				b.WriteString(strings.ToUpper(hex))
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteByte('"')
	return b.String()
}
