// Package value defines the dynamically-typed data model that templates are
// rendered against.
//
// A [Value] is a closed union of six kinds: Null, Boolean, Number, String,
// Table and Callable. The zero Value is Null. A [Table] is an ordered mapping
// from scalar keys to Values; it is array-like when its keys are exactly the
// Numbers 1..N.
//
// Go data enters the model through [Of], and serialized JSON or YAML through
// [Decode]. [Value.Native] converts back.
package value
