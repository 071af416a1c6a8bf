// Package types defines the GLSL value-type lattice used by the asi
// type pass.
//
// The lattice is closed: Error, Void, the scalars bool, int, uint, float and
// double, vectors of dimension 2-4 over every scalar, and matrices of
// 2-4 columns by 2-4 rows over float and double. Every type is a small
// comparable value, so two types are the same type exactly when they
// compare equal with ==.
//
// # Conversions
//
// Implicit conversions follow the GLSL promotion ladder
//
//	bool < int < uint < float < double
//
// where bool (and void) only convert to themselves and vectors and matrices
// lift the ladder over their shape. Explicit conversions deliberately
// over-approximate GLSL constructor rules: any scalar, vector or matrix can
// be constructed from any other. The only consumer asks "should a cast be
// inserted here", where a false positive is harmless and a false negative
// produces invalid output.
//
// # Names
//
// Lookup maps a GLSL type name to its type. Square matrices have a single
// value for both spellings, so Lookup("mat3") == Lookup("mat3x3").
package types
