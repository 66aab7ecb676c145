// Package dynamic implements a universal dynamic value representation and
// its schema-driven conversion engine.
//
// Value is a closed, recursive tagged union able to represent anything a
// schema can describe: records, enums (sum types), sequences, dictionaries,
// sets, optionals, tuples, eithers, primitives, self-describing values and
// captured errors.
//
// # Conversion
//
// FromSchemaAndValue turns a typed value into a Value, guided by its
// schema. It is total: transform failures become Error nodes instead of
// returned errors.
//
// ToTypedValue runs the other direction, reconstructing a typed value from
// a Value and a target schema. Every shape mismatch is an ordinary error
// value with a lazily-built message; nothing panics or throws.
//
// # Self-describing values
//
// Tuple(v, FromAst(ast)) marks v as carrying its own schema. Decoding such
// a value ignores the requested target shape and uses the embedded ast as
// the authoritative schema for that subtree.
//
// # At rest
//
// Values are immutable, structurally comparable (Equal), canonically
// printable and hashable (String, CanonicalHash), JSON round-trippable
// (ToJSON, FromJSON), and rewritable through migrations (ApplyMigrations)
// before any typed reconstruction.
package dynamic
