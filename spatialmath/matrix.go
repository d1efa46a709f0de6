package spatialmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/inertia/scalar"
)

// Matrix3 is a row-major 3x3 matrix over a generic scalar. When used as a rotation R_AB its columns
// are the unit vectors of frame B expressed in frame A.
type Matrix3[T scalar.Scalar[T]] [3][3]T

// Identity3 returns the 3x3 identity matrix.
func Identity3[T scalar.Scalar[T]]() Matrix3[T] {
	var m Matrix3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				m[i][j] = scalar.Const[T](1)
			} else {
				m[i][j] = scalar.Zero[T]()
			}
		}
	}
	return m
}

// NewMatrix3FromColumns returns the matrix whose columns are c0, c1 and c2.
func NewMatrix3FromColumns[T scalar.Scalar[T]](c0, c1, c2 Vector3[T]) Matrix3[T] {
	var m Matrix3[T]
	for i := 0; i < 3; i++ {
		m[i][0] = c0.At(i)
		m[i][1] = c1.At(i)
		m[i][2] = c2.At(i)
	}
	return m
}

// Matrix3FromFloats converts a float64 array into a Matrix3.
func Matrix3FromFloats[T scalar.Scalar[T]](vals [3][3]float64) Matrix3[T] {
	var m Matrix3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = scalar.Const[T](vals[i][j])
		}
	}
	return m
}

// At returns the element at row i, column j.
func (m Matrix3[T]) At(i, j int) T {
	return m[i][j]
}

// Row returns row i.
func (m Matrix3[T]) Row(i int) Vector3[T] {
	return Vector3[T]{m[i][0], m[i][1], m[i][2]}
}

// Col returns column j.
func (m Matrix3[T]) Col(j int) Vector3[T] {
	return Vector3[T]{m[0][j], m[1][j], m[2][j]}
}

// Transpose returns mᵀ.
func (m Matrix3[T]) Transpose() Matrix3[T] {
	var t Matrix3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// Mul returns the matrix product m·o.
func (m Matrix3[T]) Mul(o Matrix3[T]) Matrix3[T] {
	var p Matrix3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = m[i][0].Mul(o[0][j]).Add(m[i][1].Mul(o[1][j])).Add(m[i][2].Mul(o[2][j]))
		}
	}
	return p
}

// MulVec returns the matrix-vector product m·v.
func (m Matrix3[T]) MulVec(v Vector3[T]) Vector3[T] {
	return Vector3[T]{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Det returns the determinant of m.
func (m Matrix3[T]) Det() T {
	return m.Col(0).Dot(m.Col(1).Cross(m.Col(2)))
}

// Trace returns the sum of the diagonal of m.
func (m Matrix3[T]) Trace() T {
	return m[0][0].Add(m[1][1]).Add(m[2][2])
}

// ApproxEqual reports whether every element of m is within epsilon of the matching element of o.
func (m Matrix3[T]) ApproxEqual(o Matrix3[T], epsilon float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !scalar.AlmostEqual(m[i][j], o[i][j], epsilon) {
				return false
			}
		}
	}
	return true
}

// IsOrthonormal reports whether mᵀ·m is the identity to within epsilon.
func (m Matrix3[T]) IsOrthonormal(epsilon float64) bool {
	return m.Transpose().Mul(m).ApproxEqual(Identity3[T](), epsilon)
}

// IsRotation reports whether m is orthonormal with determinant +1 to within epsilon.
func (m Matrix3[T]) IsRotation(epsilon float64) bool {
	return m.IsOrthonormal(epsilon) && math.Abs(m.Det().Value()-1) <= epsilon
}

// Floats returns the primal values of m.
func (m Matrix3[T]) Floats() [3][3]float64 {
	var f [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			f[i][j] = m[i][j].Value()
		}
	}
	return f
}

// Dense returns the primal values of m as a gonum matrix.
func (m Matrix3[T]) Dense() *mat.Dense {
	f := m.Floats()
	return mat.NewDense(3, 3, []float64{
		f[0][0], f[0][1], f[0][2],
		f[1][0], f[1][1], f[1][2],
		f[2][0], f[2][1], f[2][2],
	})
}

// Quaternion returns the unit quaternion equivalent to the rotation m, computed from its primal
// values. The scalar part is kept non-negative.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/matrixToQuaternion/
func (m Matrix3[T]) Quaternion() quat.Number {
	f := m.Floats()
	var q quat.Number
	tr := f[0][0] + f[1][1] + f[2][2]
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quat.Number{Real: 0.25 * s, Imag: (f[2][1] - f[1][2]) / s, Jmag: (f[0][2] - f[2][0]) / s, Kmag: (f[1][0] - f[0][1]) / s}
	case f[0][0] > f[1][1] && f[0][0] > f[2][2]:
		s := math.Sqrt(1+f[0][0]-f[1][1]-f[2][2]) * 2
		q = quat.Number{Real: (f[2][1] - f[1][2]) / s, Imag: 0.25 * s, Jmag: (f[0][1] + f[1][0]) / s, Kmag: (f[0][2] + f[2][0]) / s}
	case f[1][1] > f[2][2]:
		s := math.Sqrt(1+f[1][1]-f[0][0]-f[2][2]) * 2
		q = quat.Number{Real: (f[0][2] - f[2][0]) / s, Imag: (f[0][1] + f[1][0]) / s, Jmag: 0.25 * s, Kmag: (f[1][2] + f[2][1]) / s}
	default:
		s := math.Sqrt(1+f[2][2]-f[0][0]-f[1][1]) * 2
		q = quat.Number{Real: (f[1][0] - f[0][1]) / s, Imag: (f[0][2] + f[2][0]) / s, Jmag: (f[1][2] + f[2][1]) / s, Kmag: 0.25 * s}
	}
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q
}

// QuatToMatrix3 returns the rotation matrix equivalent to the quaternion q. q is normalized first.
func QuatToMatrix3[T scalar.Scalar[T]](q quat.Number) Matrix3[T] {
	n := quat.Abs(q)
	w, x, y, z := q.Real/n, q.Imag/n, q.Jmag/n, q.Kmag/n
	return Matrix3FromFloats[T]([3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	})
}

// String returns a human readable string that represents the matrix.
func (m Matrix3[T]) String() string {
	f := m.Floats()
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		f[0][0], f[0][1], f[0][2], f[1][0], f[1][1], f[1][2], f[2][0], f[2][1], f[2][2])
}
