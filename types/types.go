package types

import "strconv"

// Base is the underlying scalar of a type.
type Base uint8

const (
	BaseError Base = iota
	BaseVoid
	BaseBool
	BaseInt
	BaseUint
	BaseFloat
	BaseDouble
)

// String returns the GLSL spelling of the base scalar.
func (b Base) String() string {
	switch b {
	case BaseVoid:
		return "void"
	case BaseBool:
		return "bool"
	case BaseInt:
		return "int"
	case BaseUint:
		return "uint"
	case BaseFloat:
		return "float"
	case BaseDouble:
		return "double"
	default:
		return "error"
	}
}

// vectorPrefix is the letter GLSL puts in front of vec/mat for a base.
func (b Base) vectorPrefix() string {
	switch b {
	case BaseBool:
		return "b"
	case BaseInt:
		return "i"
	case BaseUint:
		return "u"
	case BaseDouble:
		return "d"
	default:
		return ""
	}
}

// Type is a value in the GLSL type lattice.
//
// Columns is zero for scalars, Void and Error. Vectors have Columns set to
// their dimension and Rows zero. Matrices have both set.
type Type struct {
	base    Base
	columns uint8
	rows    uint8
}

// Predefined types.
var (
	Error  = Type{base: BaseError}
	Void   = Type{base: BaseVoid}
	Bool   = Type{base: BaseBool}
	Int    = Type{base: BaseInt}
	Uint   = Type{base: BaseUint}
	Float  = Type{base: BaseFloat}
	Double = Type{base: BaseDouble}

	BVec2 = Type{base: BaseBool, columns: 2}
	BVec3 = Type{base: BaseBool, columns: 3}
	BVec4 = Type{base: BaseBool, columns: 4}
	IVec2 = Type{base: BaseInt, columns: 2}
	IVec3 = Type{base: BaseInt, columns: 3}
	IVec4 = Type{base: BaseInt, columns: 4}
	UVec2 = Type{base: BaseUint, columns: 2}
	UVec3 = Type{base: BaseUint, columns: 3}
	UVec4 = Type{base: BaseUint, columns: 4}
	Vec2  = Type{base: BaseFloat, columns: 2}
	Vec3  = Type{base: BaseFloat, columns: 3}
	Vec4  = Type{base: BaseFloat, columns: 4}
	DVec2 = Type{base: BaseDouble, columns: 2}
	DVec3 = Type{base: BaseDouble, columns: 3}
	DVec4 = Type{base: BaseDouble, columns: 4}

	Mat2   = Type{base: BaseFloat, columns: 2, rows: 2}
	Mat2x3 = Type{base: BaseFloat, columns: 2, rows: 3}
	Mat2x4 = Type{base: BaseFloat, columns: 2, rows: 4}
	Mat3x2 = Type{base: BaseFloat, columns: 3, rows: 2}
	Mat3   = Type{base: BaseFloat, columns: 3, rows: 3}
	Mat3x4 = Type{base: BaseFloat, columns: 3, rows: 4}
	Mat4x2 = Type{base: BaseFloat, columns: 4, rows: 2}
	Mat4x3 = Type{base: BaseFloat, columns: 4, rows: 3}
	Mat4   = Type{base: BaseFloat, columns: 4, rows: 4}

	DMat2   = Type{base: BaseDouble, columns: 2, rows: 2}
	DMat2x3 = Type{base: BaseDouble, columns: 2, rows: 3}
	DMat2x4 = Type{base: BaseDouble, columns: 2, rows: 4}
	DMat3x2 = Type{base: BaseDouble, columns: 3, rows: 2}
	DMat3   = Type{base: BaseDouble, columns: 3, rows: 3}
	DMat3x4 = Type{base: BaseDouble, columns: 3, rows: 4}
	DMat4x2 = Type{base: BaseDouble, columns: 4, rows: 2}
	DMat4x3 = Type{base: BaseDouble, columns: 4, rows: 3}
	DMat4   = Type{base: BaseDouble, columns: 4, rows: 4}
)

// Scalar returns the scalar type for a base.
func Scalar(b Base) Type {
	if b > BaseDouble {
		return Error
	}
	return Type{base: b}
}

// Vector returns the vector type with the given base and dimension, or
// Error if GLSL has no such vector.
func Vector(b Base, size int) Type {
	if b < BaseBool || b > BaseDouble || size < 2 || size > 4 {
		return Error
	}
	return Type{base: b, columns: uint8(size)}
}

// Matrix returns the matrix type with the given base, column and row
// count, or Error if GLSL has no such matrix.
func Matrix(b Base, columns, rows int) Type {
	if b != BaseFloat && b != BaseDouble {
		return Error
	}
	if columns < 2 || columns > 4 || rows < 2 || rows > 4 {
		return Error
	}
	return Type{base: b, columns: uint8(columns), rows: uint8(rows)}
}

// WithBase returns a type with the shape of t over another base scalar.
// Shapes that do not exist over b, like integer matrices, yield Error.
func (t Type) WithBase(b Base) Type {
	switch {
	case t.IsMatrix():
		return Matrix(b, t.Columns(), t.Rows())
	case t.IsVector():
		return Vector(b, t.Columns())
	case t.base == BaseError || t.base == BaseVoid:
		if b == t.base {
			return t
		}
		return Error
	default:
		if b == BaseVoid {
			return Error
		}
		return Scalar(b)
	}
}

// Base returns the underlying scalar of t.
func (t Type) Base() Base { return t.base }

// Underlying returns the underlying scalar type of t. Scalars, Void and
// Error are their own underlying type.
func (t Type) Underlying() Type { return Type{base: t.base} }

// Columns returns the vector dimension or matrix column count, and 1 for
// scalars.
func (t Type) Columns() int {
	if t.columns == 0 {
		return 1
	}
	return int(t.columns)
}

// Rows returns the matrix row count, and 1 for anything else.
func (t Type) Rows() int {
	if t.rows == 0 {
		return 1
	}
	return int(t.rows)
}

// Shape returns the dimensions of t: empty for Void and Error, [1] for
// scalars, [n] for vectors and [columns, rows] for matrices.
func (t Type) Shape() []int {
	switch {
	case t.IsError() || t.IsVoid():
		return nil
	case t.IsMatrix():
		return []int{int(t.columns), int(t.rows)}
	case t.IsVector():
		return []int{int(t.columns)}
	default:
		return []int{1}
	}
}

func (t Type) IsError() bool { return t.base == BaseError }
func (t Type) IsVoid() bool  { return t.base == BaseVoid }

// IsBool reports whether t is exactly the bool scalar.
func (t Type) IsBool() bool { return t == Bool }

// IsScalar reports whether t is bool or a numeric scalar.
func (t Type) IsScalar() bool {
	return t.columns == 0 && t.base >= BaseBool
}

func (t Type) IsVector() bool { return t.columns != 0 && t.rows == 0 }
func (t Type) IsMatrix() bool { return t.rows != 0 }

// IsValue reports whether t is a scalar, vector or matrix.
func (t Type) IsValue() bool { return t.base >= BaseBool }

// IsInteger reports whether the underlying scalar of t is int or uint.
func (t Type) IsInteger() bool {
	return t.base == BaseInt || t.base == BaseUint
}

// IsFloatingPoint reports whether the underlying scalar of t is float or
// double.
func (t Type) IsFloatingPoint() bool {
	return t.base == BaseFloat || t.base == BaseDouble
}

// IsNumeric reports whether the underlying scalar of t is an integer or
// floating point type.
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloatingPoint()
}

// Rank orders types by their underlying scalar: void 0, bool 1, int 2,
// uint 3, float 4, double 5. Error has rank -1.
func (t Type) Rank() int {
	if t.base == BaseError {
		return -1
	}
	return int(t.base) - int(BaseVoid)
}

// String returns the canonical GLSL name of t.
func (t Type) String() string {
	switch {
	case t.IsMatrix():
		name := t.base.vectorPrefix() + "mat" + strconv.Itoa(int(t.columns))
		if t.columns != t.rows {
			name += "x" + strconv.Itoa(int(t.rows))
		}
		return name
	case t.IsVector():
		return t.base.vectorPrefix() + "vec" + strconv.Itoa(int(t.columns))
	default:
		return t.base.String()
	}
}
