package inertia

import (
	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

// Shape factors relating principal unit moments to squared half-lengths for uniform-density shapes.
const (
	// SolidEllipsoidShapeFactor relates semi-axes a, b, c to moments 0.2(b²+c²), 0.2(a²+c²), 0.2(a²+b²).
	SolidEllipsoidShapeFactor = 0.2
	// SolidBoxShapeFactor relates box half-lengths to moments (b²+c²)/3, (a²+c²)/3, (a²+b²)/3.
	SolidBoxShapeFactor = 1.0 / 3
)

// EquivalentShape describes a uniform-density shape with the same principal moments as some unit
// inertia.
type EquivalentShape[T scalar.Scalar[T]] struct {
	// HalfLengths are sorted descending.
	HalfLengths spatialmath.Vector3[T]
	// Axes is the rotation R_EA from the inertia's expression frame to the shape's axes. Column i is
	// the direction of HalfLengths.At(i).
	Axes spatialmath.Matrix3[T]
}

// Dimensions returns the full lengths of the shape, i.e. twice the half-lengths.
func (e EquivalentShape[T]) Dimensions() spatialmath.Vector3[T] {
	return e.HalfLengths.Scale(2)
}

// EquivalentShape solves for the half-lengths a ≥ b ≥ c of a shape whose principal moments relate
// to them by
//
//	Gmin = k(b²+c²), Gmed = k(a²+c²), Gmax = k(a²+b²)
//
// where k is shapeFactor, which must be in (0, 1]. Squared half-lengths that round-off makes slightly
// negative are treated as zero.
func (d PrincipalDecomposition[T]) EquivalentShape(shapeFactor float64) (EquivalentShape[T], error) {
	if !(shapeFactor > 0 && shapeFactor <= 1) {
		return EquivalentShape[T]{}, newInvalidShapeFactorError(shapeFactor)
	}
	gMin, gMed, gMax := d.Moments.X, d.Moments.Y, d.Moments.Z
	coeff := 0.5 / shapeFactor

	a2 := gMed.Add(gMax).Sub(gMin).Scale(coeff)
	b2 := gMin.Add(gMax).Sub(gMed).Scale(coeff)
	c2 := gMin.Add(gMed).Sub(gMax).Scale(coeff)

	return EquivalentShape[T]{
		HalfLengths: spatialmath.NewVector3(
			scalar.ClampNonNegative(a2).Sqrt(),
			scalar.ClampNonNegative(b2).Sqrt(),
			scalar.ClampNonNegative(c2).Sqrt(),
		),
		Axes: d.Axes,
	}, nil
}

// EquivalentShape decomposes u and solves for the half-lengths of a shape with the given shape
// factor. See PrincipalDecomposition.EquivalentShape.
func (u UnitInertia[T]) EquivalentShape(shapeFactor float64) (EquivalentShape[T], error) {
	return u.PrincipalMomentsAndAxes().EquivalentShape(shapeFactor)
}

// EquivalentSolidEllipsoid returns the semi-axes and orientation of the uniform-density ellipsoid
// with the same principal moments as u.
func (u UnitInertia[T]) EquivalentSolidEllipsoid() EquivalentShape[T] {
	// the shape factor is a constant in (0, 1], the only input EquivalentShape rejects
	e, _ := u.EquivalentShape(SolidEllipsoidShapeFactor)
	return e
}

// EquivalentSolidBox returns the half-lengths and orientation of the uniform-density box with the
// same principal moments as u.
func (u UnitInertia[T]) EquivalentSolidBox() EquivalentShape[T] {
	// the shape factor is a constant in (0, 1], the only input EquivalentShape rejects
	e, _ := u.EquivalentShape(SolidBoxShapeFactor)
	return e
}
