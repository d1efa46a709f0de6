package inertia

import (
	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

// UnitInertia is the rotational inertia of a body divided by its mass, in units of length². It is
// produced by the shape constructors in this package or by RotationalInertia.DivideByMass.
type UnitInertia[T scalar.Scalar[T]] struct {
	SymmetricTensor[T]
}

func unitInertia[T scalar.Scalar[T]](s SymmetricTensor[T]) UnitInertia[T] {
	return UnitInertia[T]{SymmetricTensor: s}
}

// Tensor returns the underlying tensor.
func (u UnitInertia[T]) Tensor() SymmetricTensor[T] {
	return u.SymmetricTensor
}

// Shift moves u from point A to point Q through the center of mass C, where offsetToCom is the
// position of C from A and offsetFromComToTarget is the position of Q from C.
func (u UnitInertia[T]) Shift(offsetToCom, offsetFromComToTarget spatialmath.Vector3[T]) UnitInertia[T] {
	return unitInertia(u.SymmetricTensor.Shift(scalar.Const[T](1), offsetToCom, offsetFromComToTarget))
}

// ShiftFromCenterOfMass returns u, which must be about the center of mass C, about the point Q whose
// position from C is offset.
func (u UnitInertia[T]) ShiftFromCenterOfMass(offset spatialmath.Vector3[T]) UnitInertia[T] {
	return u.Shift(spatialmath.ZeroVector3[T](), offset)
}

// ShiftToCenterOfMass returns u, which is about the point Q, about the center of mass C whose position
// from Q is offset.
func (u UnitInertia[T]) ShiftToCenterOfMass(offset spatialmath.Vector3[T]) UnitInertia[T] {
	return u.Shift(offset, spatialmath.ZeroVector3[T]())
}

// ReExpress returns u expressed in frame A given the rotation R_AE from u's current frame E.
func (u UnitInertia[T]) ReExpress(rotation spatialmath.Matrix3[T]) UnitInertia[T] {
	return unitInertia(u.SymmetricTensor.ReExpress(rotation))
}

// MultiplyByMass returns the rotational inertia of a body with this unit inertia and the given mass.
func (u UnitInertia[T]) MultiplyByMass(mass T) RotationalInertia[T] {
	return RotationalInertia[T]{SymmetricTensor: u.Mul(mass)}
}

// AlmostEqual reports whether every element of u is within epsilon of the matching element of o.
func (u UnitInertia[T]) AlmostEqual(o UnitInertia[T], epsilon float64) bool {
	return u.SymmetricTensor.AlmostEqual(o.SymmetricTensor, epsilon)
}
