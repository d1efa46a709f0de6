// Package inertia computes rotational inertia tensors per unit mass ("unit inertia") for canonical
// solid shapes, and provides the tensor algebra needed to move them between reference points and
// frames, decompose them into principal moments and axes, and fit equivalent shapes to them.
//
// Every value in this package is a tensor about some point, expressed in some frame. The plain
// types leave that bookkeeping to the caller; FramedUnitInertia carries it explicitly.
//
// All computations are generic over scalar.Scalar so that they can be evaluated with automatic
// differentiation values as well as float64.
package inertia

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

// DefaultTolerance is the relative tolerance used by CouldBePhysicallyValid.
const DefaultTolerance = 1e-13

// SymmetricTensor is a symmetric 3x3 tensor stored as its three diagonal elements and the three
// elements above the diagonal. Construction performs no validity checks, so a SymmetricTensor may
// transiently describe a non-physical inertia.
type SymmetricTensor[T scalar.Scalar[T]] struct {
	xx, yy, zz T
	xy, xz, yz T
}

// NewSymmetricTensor returns the tensor with the given diagonal (moments) and off-diagonal
// (products) elements.
func NewSymmetricTensor[T scalar.Scalar[T]](ixx, iyy, izz, ixy, ixz, iyz T) SymmetricTensor[T] {
	return SymmetricTensor[T]{xx: ixx, yy: iyy, zz: izz, xy: ixy, xz: ixz, yz: iyz}
}

// NewSymmetricTensorFromVectors returns the tensor with diagonal (Ixx, Iyy, Izz) and off-diagonal
// (Ixy, Ixz, Iyz).
func NewSymmetricTensorFromVectors[T scalar.Scalar[T]](diag, offDiag spatialmath.Vector3[T]) SymmetricTensor[T] {
	return NewSymmetricTensor(diag.X, diag.Y, diag.Z, offDiag.X, offDiag.Y, offDiag.Z)
}

// ZeroSymmetricTensor returns the tensor with all elements zero.
func ZeroSymmetricTensor[T scalar.Scalar[T]]() SymmetricTensor[T] {
	z := scalar.Zero[T]()
	return NewSymmetricTensor(z, z, z, z, z, z)
}

// upperTriangle builds a tensor from the upper triangle of m, ignoring whatever is below the diagonal.
func upperTriangle[T scalar.Scalar[T]](m spatialmath.Matrix3[T]) SymmetricTensor[T] {
	return NewSymmetricTensor(m[0][0], m[1][1], m[2][2], m[0][1], m[0][2], m[1][2])
}

// pointMassTensor returns |p|²·Id − p⊗p, the unit inertia of a particle at p about the origin.
func pointMassTensor[T scalar.Scalar[T]](p spatialmath.Vector3[T]) SymmetricTensor[T] {
	x2, y2, z2 := scalar.Square(p.X), scalar.Square(p.Y), scalar.Square(p.Z)
	return NewSymmetricTensor(
		y2.Add(z2),
		x2.Add(z2),
		x2.Add(y2),
		p.X.Mul(p.Y).Neg(),
		p.X.Mul(p.Z).Neg(),
		p.Y.Mul(p.Z).Neg(),
	)
}

// Moments returns the diagonal elements (Ixx, Iyy, Izz).
func (s SymmetricTensor[T]) Moments() spatialmath.Vector3[T] {
	return spatialmath.NewVector3(s.xx, s.yy, s.zz)
}

// Products returns the off-diagonal elements (Ixy, Ixz, Iyz).
func (s SymmetricTensor[T]) Products() spatialmath.Vector3[T] {
	return spatialmath.NewVector3(s.xy, s.xz, s.yz)
}

// At returns the element at row i, column j.
func (s SymmetricTensor[T]) At(i, j int) T {
	if i > j {
		i, j = j, i
	}
	switch {
	case i == 0 && j == 0:
		return s.xx
	case i == 1 && j == 1:
		return s.yy
	case i == 2 && j == 2:
		return s.zz
	case i == 0 && j == 1:
		return s.xy
	case i == 0 && j == 2:
		return s.xz
	case i == 1 && j == 2:
		return s.yz
	default:
		panic(fmt.Sprintf("tensor index (%d, %d) out of range", i, j))
	}
}

// Matrix returns the full 3x3 matrix.
func (s SymmetricTensor[T]) Matrix() spatialmath.Matrix3[T] {
	return spatialmath.Matrix3[T]{
		{s.xx, s.xy, s.xz},
		{s.xy, s.yy, s.yz},
		{s.xz, s.yz, s.zz},
	}
}

// Trace returns Ixx + Iyy + Izz.
func (s SymmetricTensor[T]) Trace() T {
	return s.xx.Add(s.yy).Add(s.zz)
}

// Add returns s + o. Both must be about the same point and expressed in the same frame.
func (s SymmetricTensor[T]) Add(o SymmetricTensor[T]) SymmetricTensor[T] {
	return NewSymmetricTensor(s.xx.Add(o.xx), s.yy.Add(o.yy), s.zz.Add(o.zz), s.xy.Add(o.xy), s.xz.Add(o.xz), s.yz.Add(o.yz))
}

// Sub returns s − o. Both must be about the same point and expressed in the same frame.
func (s SymmetricTensor[T]) Sub(o SymmetricTensor[T]) SymmetricTensor[T] {
	return NewSymmetricTensor(s.xx.Sub(o.xx), s.yy.Sub(o.yy), s.zz.Sub(o.zz), s.xy.Sub(o.xy), s.xz.Sub(o.xz), s.yz.Sub(o.yz))
}

// Mul returns s scaled by k.
func (s SymmetricTensor[T]) Mul(k T) SymmetricTensor[T] {
	return NewSymmetricTensor(s.xx.Mul(k), s.yy.Mul(k), s.zz.Mul(k), s.xy.Mul(k), s.xz.Mul(k), s.yz.Mul(k))
}

// Div returns s divided by k.
func (s SymmetricTensor[T]) Div(k T) SymmetricTensor[T] {
	return NewSymmetricTensor(s.xx.Div(k), s.yy.Div(k), s.zz.Div(k), s.xy.Div(k), s.xz.Div(k), s.yz.Div(k))
}

// Scale returns s scaled by the constant k.
func (s SymmetricTensor[T]) Scale(k float64) SymmetricTensor[T] {
	return NewSymmetricTensor(s.xx.Scale(k), s.yy.Scale(k), s.zz.Scale(k), s.xy.Scale(k), s.xz.Scale(k), s.yz.Scale(k))
}

// Shift applies the parallel axis theorem to move s, which is about point A for a body of the given
// mass, onto a new point Q. The move happens as a single step through the body's center of mass C:
// offsetToCom is the position of C from A and offsetFromComToTarget is the position of Q from C, both
// expressed in the same frame as s. The result is
//
//	I_Q = I_A − mass·U(p_AC) + mass·U(p_CQ),  U(p) = |p|²·Id − p⊗p
//
// and is exactly symmetric since only the upper triangle is computed.
func (s SymmetricTensor[T]) Shift(mass T, offsetToCom, offsetFromComToTarget spatialmath.Vector3[T]) SymmetricTensor[T] {
	correction := pointMassTensor(offsetFromComToTarget).Sub(pointMassTensor(offsetToCom))
	return s.Add(correction.Mul(mass))
}

// ReExpress returns s expressed in frame A given s expressed in frame E and the rotation R_AE whose
// columns are E's unit vectors expressed in A. The result is R_AE·s·R_AEᵀ.
func (s SymmetricTensor[T]) ReExpress(rotation spatialmath.Matrix3[T]) SymmetricTensor[T] {
	return upperTriangle(rotation.Mul(s.Matrix()).Mul(rotation.Transpose()))
}

// IsNaN reports whether any element of s is NaN.
func (s SymmetricTensor[T]) IsNaN() bool {
	return scalar.IsNaN(s.xx) || scalar.IsNaN(s.yy) || scalar.IsNaN(s.zz) ||
		scalar.IsNaN(s.xy) || scalar.IsNaN(s.xz) || scalar.IsNaN(s.yz)
}

// AlmostEqual reports whether every element of s is within epsilon of the matching element of o.
func (s SymmetricTensor[T]) AlmostEqual(o SymmetricTensor[T], epsilon float64) bool {
	return s.Moments().ApproxEqual(o.Moments(), epsilon) && s.Products().ApproxEqual(o.Products(), epsilon)
}

// maxAbsElement returns the largest element magnitude, used to make tolerances relative.
func (s SymmetricTensor[T]) maxAbsElement() float64 {
	m := 0.0
	for _, v := range []T{s.xx, s.yy, s.zz, s.xy, s.xz, s.yz} {
		m = math.Max(m, math.Abs(v.Value()))
	}
	return m
}

// Validate checks that s could be the inertia of a physical body: its diagonal elements and
// principal moments must be non-negative and the largest principal moment must not exceed the sum
// of the other two. Violations larger than tolerance times the largest element magnitude are
// reported, each wrapping ErrInvalidInertia.
func (s SymmetricTensor[T]) Validate(tolerance float64) error {
	if s.IsNaN() {
		return errors.Wrap(ErrInvalidInertia, "tensor has NaN elements")
	}
	slack := tolerance * s.maxAbsElement()

	var errs error
	diag := s.Moments()
	for i, name := range []string{"Ixx", "Iyy", "Izz"} {
		if v := diag.At(i).Value(); v < -slack {
			errs = multierr.Append(errs, errors.Wrapf(ErrInvalidInertia, "%s is negative (%g)", name, v))
		}
	}

	moments := s.PrincipalMomentsAndAxes().Moments
	if v := moments.X.Value(); v < -slack {
		errs = multierr.Append(errs, errors.Wrapf(ErrInvalidInertia, "smallest principal moment is negative (%g)", v))
	}
	if excess := moments.Z.Value() - (moments.X.Value() + moments.Y.Value()); excess > slack {
		errs = multierr.Append(errs, errors.Wrapf(ErrInvalidInertia,
			"principal moments %v violate the triangle inequality by %g", moments, excess))
	}
	return errs
}

// MaxPossibleMoment returns half the trace, an upper bound on the moment of a physically valid tensor
// about any axis through its point. It is a natural scale for tolerances.
func (s SymmetricTensor[T]) MaxPossibleMoment() T {
	return s.Trace().Scale(0.5)
}

// CouldBePhysicallyValid reports whether Validate succeeds with DefaultTolerance.
func (s SymmetricTensor[T]) CouldBePhysicallyValid() bool {
	return s.Validate(DefaultTolerance) == nil
}

// String returns a human readable string that represents the tensor.
func (s SymmetricTensor[T]) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		s.xx.Value(), s.xy.Value(), s.xz.Value(),
		s.xy.Value(), s.yy.Value(), s.yz.Value(),
		s.xz.Value(), s.yz.Value(), s.zz.Value())
}
