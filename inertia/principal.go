package inertia

import (
	"math"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

const (
	maxJacobiSweeps = 50
	// squared off-diagonal magnitude, relative to the squared Frobenius norm, below which the
	// tensor is considered diagonal.
	jacobiConvergence = 1e-32
	// elements smaller than this fraction of the Frobenius norm are not worth a rotation.
	jacobiSkip = 1e-20
	// beyond this |θ| the Jacobi tangent is approximated by 1/(2θ) to avoid overflowing θ².
	jacobiLargeTheta = 1e150
)

// PrincipalDecomposition holds the principal moments of a tensor and the rotation R_EP from the
// tensor's expression frame E to its principal-axis frame P, so that I_E = R_EP·diag(Moments)·R_EPᵀ.
type PrincipalDecomposition[T scalar.Scalar[T]] struct {
	// Moments are sorted ascending.
	Moments spatialmath.Vector3[T]
	// Axes is a proper rotation. Column i is the principal axis of Moments.At(i), expressed in E.
	Axes spatialmath.Matrix3[T]
}

// PrincipalMomentsAndAxes computes the eigen-decomposition of s with cyclic Jacobi rotations.
// Only arithmetic and square roots are used so the decomposition carries derivative information
// when T does.
//
// The result is deterministic: moments are ascending, each axis has its largest-magnitude component
// positive, and if that leaves a reflection the last axis is negated so Axes has determinant +1.
func (s SymmetricTensor[T]) PrincipalMomentsAndAxes() PrincipalDecomposition[T] {
	a := s.Matrix()
	v := spatialmath.Identity3[T]()
	one := scalar.Const[T](1)

	for sweep := 0; sweep < maxJacobiSweeps; sweep++ {
		off := offDiagonalNorm2(a)
		norm := off + diagonalNorm2(a)
		if off <= jacobiConvergence*norm {
			break
		}
		for _, pq := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
			p, q := pq[0], pq[1]
			apq := a[p][q]
			if math.Abs(apq.Value()) <= jacobiSkip*math.Sqrt(norm) {
				continue
			}

			// Choose the rotation angle φ that zeroes a[p][q]: θ = cot(2φ), t = tan(φ).
			theta := a[q][q].Sub(a[p][p]).Div(apq.Scale(2))
			var t T
			if math.Abs(theta.Value()) > jacobiLargeTheta {
				t = one.Div(theta.Scale(2))
			} else {
				sign := 1.0
				if theta.Value() < 0 {
					sign = -1.0
				}
				t = scalar.Const[T](sign).Div(scalar.Abs(theta).Add(scalar.Square(theta).Add(one).Sqrt()))
			}
			c := one.Div(scalar.Square(t).Add(one).Sqrt())
			sn := t.Mul(c)

			rot := spatialmath.Identity3[T]()
			rot[p][p], rot[q][q] = c, c
			rot[p][q], rot[q][p] = sn, sn.Neg()

			a = symmetrize(rot.Transpose().Mul(a).Mul(rot))
			v = v.Mul(rot)
		}
	}

	// sort eigenpairs ascending; three elements, so a simple insertion sort is enough
	order := [3]int{0, 1, 2}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && a[order[j]][order[j]].Value() < a[order[j-1]][order[j-1]].Value(); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	var cols [3]spatialmath.Vector3[T]
	for i, k := range order {
		cols[i] = canonicalAxisSign(v.Col(k))
	}
	axes := spatialmath.NewMatrix3FromColumns(cols[0], cols[1], cols[2])
	if axes.Det().Value() < 0 {
		axes = spatialmath.NewMatrix3FromColumns(cols[0], cols[1], cols[2].Neg())
	}

	return PrincipalDecomposition[T]{
		Moments: spatialmath.NewVector3(a[order[0]][order[0]], a[order[1]][order[1]], a[order[2]][order[2]]),
		Axes:    axes,
	}
}

// canonicalAxisSign flips v, if needed, so its largest-magnitude component is positive.
func canonicalAxisSign[T scalar.Scalar[T]](v spatialmath.Vector3[T]) spatialmath.Vector3[T] {
	largest := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v.At(i).Value()) > math.Abs(v.At(largest).Value()) {
			largest = i
		}
	}
	if v.At(largest).Value() < 0 {
		return v.Neg()
	}
	return v
}

func symmetrize[T scalar.Scalar[T]](m spatialmath.Matrix3[T]) spatialmath.Matrix3[T] {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			avg := m[i][j].Add(m[j][i]).Scale(0.5)
			m[i][j], m[j][i] = avg, avg
		}
	}
	return m
}

func offDiagonalNorm2[T scalar.Scalar[T]](m spatialmath.Matrix3[T]) float64 {
	xy, xz, yz := m[0][1].Value(), m[0][2].Value(), m[1][2].Value()
	return xy*xy + xz*xz + yz*yz
}

func diagonalNorm2[T scalar.Scalar[T]](m spatialmath.Matrix3[T]) float64 {
	xx, yy, zz := m[0][0].Value(), m[1][1].Value(), m[2][2].Value()
	return xx*xx + yy*yy + zz*zz
}

// Diagonal returns diag(Moments) as a tensor, i.e. the decomposed tensor expressed in its principal
// frame.
func (d PrincipalDecomposition[T]) Diagonal() SymmetricTensor[T] {
	z := scalar.Zero[T]()
	return NewSymmetricTensor(d.Moments.X, d.Moments.Y, d.Moments.Z, z, z, z)
}

// Reconstruct returns Axes·diag(Moments)·Axesᵀ, the tensor that was decomposed.
func (d PrincipalDecomposition[T]) Reconstruct() SymmetricTensor[T] {
	return d.Diagonal().ReExpress(d.Axes)
}
