package types

import "strconv"

// Registry maps GLSL type names to types. Square matrices are registered
// under both spellings.
type Registry struct {
	types  []Type
	byName map[string]Type
}

// NewRegistry creates a registry holding every type of the lattice except
// Error.
func NewRegistry() *Registry {
	r := &Registry{
		types:  make([]Type, 0, 48),
		byName: make(map[string]Type, 64),
	}

	r.add(Void)
	for b := BaseBool; b <= BaseDouble; b++ {
		r.add(Scalar(b))
	}
	for b := BaseBool; b <= BaseDouble; b++ {
		for n := 2; n <= 4; n++ {
			r.add(Vector(b, n))
		}
	}
	for _, b := range []Base{BaseFloat, BaseDouble} {
		for c := 2; c <= 4; c++ {
			for rows := 2; rows <= 4; rows++ {
				t := Matrix(b, c, rows)
				r.add(t)
				if c == rows {
					// mat3x3 is another name for mat3.
					r.byName[t.String()+"x"+strconv.Itoa(rows)] = t
				}
			}
		}
	}
	return r
}

func (r *Registry) add(t Type) {
	r.types = append(r.types, t)
	r.byName[t.String()] = t
}

// Lookup returns the type named name.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Types returns the registered types in canonical order: void, scalars,
// vectors, matrices.
func (r *Registry) Types() []Type {
	return r.types
}

// Count returns the number of distinct registered types.
func (r *Registry) Count() int {
	return len(r.types)
}

var builtin = NewRegistry()

// Lookup returns the builtin type named name.
func Lookup(name string) (Type, bool) {
	return builtin.Lookup(name)
}

// IsConstructorName reports whether name names a scalar, vector or matrix
// type, the callee spelling of a GLSL constructor call.
func IsConstructorName(name string) bool {
	t, ok := builtin.Lookup(name)
	return ok && t.IsValue()
}

// All returns every scalar, vector and matrix type.
func All() []Type {
	out := make([]Type, len(builtin.types)-1)
	copy(out, builtin.types[1:])
	return out
}
