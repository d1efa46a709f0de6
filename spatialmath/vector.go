package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/inertia/scalar"
)

// Vector3 is a three dimensional column vector over a generic scalar.
type Vector3[T scalar.Scalar[T]] struct {
	X, Y, Z T
}

// NewVector3 returns the vector (x, y, z).
func NewVector3[T scalar.Scalar[T]](x, y, z T) Vector3[T] {
	return Vector3[T]{x, y, z}
}

// ZeroVector3 returns the zero vector.
func ZeroVector3[T scalar.Scalar[T]]() Vector3[T] {
	z := scalar.Zero[T]()
	return Vector3[T]{z, z, z}
}

// UnitX returns the x axis.
func UnitX[T scalar.Scalar[T]]() Vector3[T] {
	return Vector3[T]{scalar.Const[T](1), scalar.Zero[T](), scalar.Zero[T]()}
}

// UnitY returns the y axis.
func UnitY[T scalar.Scalar[T]]() Vector3[T] {
	return Vector3[T]{scalar.Zero[T](), scalar.Const[T](1), scalar.Zero[T]()}
}

// UnitZ returns the z axis.
func UnitZ[T scalar.Scalar[T]]() Vector3[T] {
	return Vector3[T]{scalar.Zero[T](), scalar.Zero[T](), scalar.Const[T](1)}
}

// VectorFromR3 converts a float64 r3.Vector into a Vector3.
func VectorFromR3[T scalar.Scalar[T]](v r3.Vector) Vector3[T] {
	return Vector3[T]{scalar.Const[T](v.X), scalar.Const[T](v.Y), scalar.Const[T](v.Z)}
}

// R3 returns the primal values of v as an r3.Vector.
func (v Vector3[T]) R3() r3.Vector {
	return r3.Vector{X: v.X.Value(), Y: v.Y.Value(), Z: v.Z.Value()}
}

// At returns component i, where 0 is x, 1 is y and 2 is z.
func (v Vector3[T]) At(i int) T {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic(fmt.Sprintf("vector index %d out of range", i))
	}
}

// Add returns v+o.
func (v Vector3[T]) Add(o Vector3[T]) Vector3[T] {
	return Vector3[T]{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)}
}

// Sub returns v-o.
func (v Vector3[T]) Sub(o Vector3[T]) Vector3[T] {
	return Vector3[T]{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)}
}

// Mul returns v scaled by s.
func (v Vector3[T]) Mul(s T) Vector3[T] {
	return Vector3[T]{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

// Scale returns v scaled by the constant s.
func (v Vector3[T]) Scale(s float64) Vector3[T] {
	return Vector3[T]{v.X.Scale(s), v.Y.Scale(s), v.Z.Scale(s)}
}

// Neg returns -v.
func (v Vector3[T]) Neg() Vector3[T] {
	return Vector3[T]{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

// Dot returns the dot product of v and o.
func (v Vector3[T]) Dot(o Vector3[T]) T {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

// Cross returns the cross product v × o.
func (v Vector3[T]) Cross(o Vector3[T]) Vector3[T] {
	return Vector3[T]{
		v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

// Norm2 returns the squared Euclidean norm of v.
func (v Vector3[T]) Norm2() T {
	return v.Dot(v)
}

// Norm returns the Euclidean norm of v.
func (v Vector3[T]) Norm() T {
	return v.Norm2().Sqrt()
}

// Normalize returns v divided by its norm. The caller is responsible for v being non-zero.
func (v Vector3[T]) Normalize() Vector3[T] {
	n := v.Norm()
	return Vector3[T]{v.X.Div(n), v.Y.Div(n), v.Z.Div(n)}
}

// Outer returns the outer product v ⊗ o, i.e. v·oᵀ.
func (v Vector3[T]) Outer(o Vector3[T]) Matrix3[T] {
	var m Matrix3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = v.At(i).Mul(o.At(j))
		}
	}
	return m
}

// ApproxEqual reports whether every component of v is within epsilon of the matching component of o.
func (v Vector3[T]) ApproxEqual(o Vector3[T], epsilon float64) bool {
	return scalar.AlmostEqual(v.X, o.X, epsilon) &&
		scalar.AlmostEqual(v.Y, o.Y, epsilon) &&
		scalar.AlmostEqual(v.Z, o.Z, epsilon)
}

// String returns a human readable string that represents the vector.
func (v Vector3[T]) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X.Value(), v.Y.Value(), v.Z.Value())
}
