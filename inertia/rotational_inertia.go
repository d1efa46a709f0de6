package inertia

import (
	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

// RotationalInertia is a rotational inertia tensor in units of mass·length².
type RotationalInertia[T scalar.Scalar[T]] struct {
	SymmetricTensor[T]
}

// NewRotationalInertia returns the rotational inertia with the given moments and products of
// inertia. Products are the off-diagonal tensor elements, i.e. Ixy = −∫xy dm.
func NewRotationalInertia[T scalar.Scalar[T]](ixx, iyy, izz, ixy, ixz, iyz T) RotationalInertia[T] {
	return RotationalInertia[T]{SymmetricTensor: NewSymmetricTensor(ixx, iyy, izz, ixy, ixz, iyz)}
}

// DivideByMass returns the unit inertia of a body with this rotational inertia and the given mass.
func (r RotationalInertia[T]) DivideByMass(mass T) (UnitInertia[T], error) {
	if !(mass.Value() > 0) {
		return UnitInertia[T]{}, newInvalidMassError(mass.Value())
	}
	return unitInertia(r.Div(mass)), nil
}

// Shift moves r, for a body of the given mass, from point A to point Q through the center of mass C.
// See SymmetricTensor.Shift.
func (r RotationalInertia[T]) Shift(mass T, offsetToCom, offsetFromComToTarget spatialmath.Vector3[T]) RotationalInertia[T] {
	return RotationalInertia[T]{SymmetricTensor: r.SymmetricTensor.Shift(mass, offsetToCom, offsetFromComToTarget)}
}

// ReExpress returns r expressed in frame A given the rotation R_AE from r's current frame E.
func (r RotationalInertia[T]) ReExpress(rotation spatialmath.Matrix3[T]) RotationalInertia[T] {
	return RotationalInertia[T]{SymmetricTensor: r.SymmetricTensor.ReExpress(rotation)}
}
