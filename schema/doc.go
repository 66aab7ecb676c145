// Package schema describes the shape of typed values: records, enums (sum
// types), collections, optionals, tuples, eithers, transforms, primitives,
// lazily-resolved recursive shapes, and the fully self-describing "dynamic"
// shape.
//
// A Schema is a capability object: besides naming sub-shapes it carries the
// functions needed to take a typed value apart (field accessors, case
// extractors, collection conversions) and to put one back together (record
// constructors, collection builders, transform mappings). The conversion
// engine in package dynamic consumes schemas read-only and never constructs
// or mutates them.
//
// Schemas are immutable after construction and safe to share across
// goroutines. Lazy schemas resolve their thunk once, on first use.
package schema
