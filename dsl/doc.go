// Package dsl provides the validators and combinators of vld.
//
// Every schema is an immutable value: builder methods return a modified copy
// and never touch the receiver, so a schema can be shared by any number of
// goroutines once built. Each schema implements vld.Schema[T] for its typed
// output and vld.AnySchema for the type-erased form used by objects,
// catch-alls, conditional rules and discriminated unions.
//
//	user := dsl.Object().
//		Field("name", dsl.String().Min(2)).
//		Field("email", dsl.String().Email()).
//		Field("age", dsl.Optional(dsl.Int().Min(0))).
//		Strict()
//
// Parsing never stops at the first failure. Object fields, collection
// elements, tuple positions, intersections, discriminated unions and
// conditional rules all report every issue they find, located by path. Plain
// unions and Catch are the two combinators that drop inner issues on purpose.
package dsl
