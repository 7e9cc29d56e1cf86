// Package vld validates untyped JSON-shaped data.
//
// The root package owns the data model and the contracts shared by every
// validator:
//
//   - Value: an immutable JSON value tree (null, bool, number, string, array,
//     insertion-ordered object).
//   - Issue / Issues: the path-located error model. Issues implements error and
//     a parse result is successful iff its Issues are empty.
//   - Schema[T] / AnySchema: the typed and the type-erased parse contracts.
//   - Descriptor: static schema configuration for introspection tools.
//
// Validators and combinators live in the dsl package, input adapters in
// source, message tables in i18n and the command line tool under cmd/vld.
//
// Typical usage:
//
//	user := dsl.Object().
//		Field("name", dsl.String().Min(1)).
//		Field("age", dsl.Int().NonNegative()).
//		Strict()
//
//	out, err := vld.Decode[vld.Value](user, data)
//	if iss, ok := vld.AsIssues(err); ok {
//		fmt.Println(iss)
//	}
//
// Schemas are immutable once built and can be shared by any number of
// goroutines without locking.
package vld
