package types

// scalarLadder lists the implicit conversion targets of each base scalar,
// itself first.
var scalarLadder = map[Base][]Base{
	BaseVoid:   {BaseVoid},
	BaseBool:   {BaseBool},
	BaseInt:    {BaseInt, BaseUint, BaseFloat, BaseDouble},
	BaseUint:   {BaseUint, BaseFloat, BaseDouble},
	BaseFloat:  {BaseFloat, BaseDouble},
	BaseDouble: {BaseDouble},
}

// ImplicitConversions returns every type t converts to without an explicit
// constructor, t itself first. Vectors and matrices lift the scalar ladder
// over their shape; shapes that do not exist for a target scalar (integer
// matrices) are left out. Error has no conversions.
func ImplicitConversions(t Type) []Type {
	ladder := scalarLadder[t.base]
	out := make([]Type, 0, len(ladder))
	for _, b := range ladder {
		if c := t.WithBase(b); !c.IsError() {
			out = append(out, c)
		}
	}
	return out
}

// ImplicitlyConvertible reports whether a value of type from can be used
// where to is expected without a constructor call.
func ImplicitlyConvertible(from, to Type) bool {
	if from.IsError() || to.IsError() {
		return false
	}
	for _, c := range ImplicitConversions(from) {
		if c == to {
			return true
		}
	}
	return false
}

// ImplicitCommonType returns the type both operands promote to: the
// higher-ranked of the two, provided the lower-ranked one converts to it
// implicitly. Otherwise, and whenever an operand is Error, it returns
// Error. Equal operands yield themselves.
func ImplicitCommonType(a, b Type) Type {
	if a.IsError() || b.IsError() {
		return Error
	}
	high, low := b, a
	if a.Rank() > b.Rank() {
		high, low = a, b
	}
	if ImplicitlyConvertible(low, high) {
		return high
	}
	return Error
}

// ExplicitConversions returns every type t can be explicitly constructed
// as. Every scalar, vector and matrix constructs every other; Void and
// Error construct nothing.
func ExplicitConversions(t Type) []Type {
	if !t.IsValue() {
		return nil
	}
	return All()
}

// ExplicitlyConvertible reports whether to(from) is accepted as a
// constructor call.
func ExplicitlyConvertible(from, to Type) bool {
	return from.IsValue() && to.IsValue()
}
