package inertia

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

// UnitVectorTolerance is how far the norm of a direction vector may be from 1 before a shape
// constructor rejects it. Accepted vectors are normalized.
const UnitVectorTolerance = 1e-14

// triangleTolerance is the relative slack allowed when checking J ≤ 2K for axially symmetric shapes.
const triangleTolerance = 1e-14

func checkNonNegative[T scalar.Scalar[T]](name string, v T) error {
	if scalar.IsNaN(v) || v.Value() < 0 {
		return newNegativeDimensionError(name, v.Value())
	}
	return nil
}

func checkAllNonNegative[T scalar.Scalar[T]](names []string, values ...T) error {
	for i, v := range values {
		if err := checkNonNegative(names[i], v); err != nil {
			return err
		}
	}
	return nil
}

// normalizeDirection checks that v is a unit vector to within UnitVectorTolerance and returns it
// normalized.
func normalizeDirection[T scalar.Scalar[T]](name string, v spatialmath.Vector3[T]) (spatialmath.Vector3[T], error) {
	norm := v.Norm()
	if !(math.Abs(norm.Value()-1) <= UnitVectorTolerance) {
		return spatialmath.Vector3[T]{}, newNonUnitVectorError(name, norm.Value())
	}
	return v.Normalize(), nil
}

// PointMass returns the unit inertia of a particle located at position p from the point it is taken
// about.
func PointMass[T scalar.Scalar[T]](p spatialmath.Vector3[T]) UnitInertia[T] {
	return unitInertia(pointMassTensor(p))
}

// SolidEllipsoid returns the unit inertia of a uniform-density ellipsoid about its center, with
// semi-axes a, b and c along the x, y and z axes.
func SolidEllipsoid[T scalar.Scalar[T]](a, b, c T) (UnitInertia[T], error) {
	if err := checkAllNonNegative([]string{"semi-axis a", "semi-axis b", "semi-axis c"}, a, b, c); err != nil {
		return UnitInertia[T]{}, err
	}
	a2, b2, c2 := scalar.Square(a), scalar.Square(b), scalar.Square(c)
	return triaxial(b2.Add(c2).Scale(0.2), a2.Add(c2).Scale(0.2), a2.Add(b2).Scale(0.2)), nil
}

// SolidSphere returns the unit inertia of a uniform-density sphere of radius r about its center.
func SolidSphere[T scalar.Scalar[T]](r T) (UnitInertia[T], error) {
	if err := checkNonNegative("radius", r); err != nil {
		return UnitInertia[T]{}, err
	}
	return SolidEllipsoid(r, r, r)
}

// HollowSphere returns the unit inertia of a thin spherical shell of radius r about its center.
func HollowSphere[T scalar.Scalar[T]](r T) (UnitInertia[T], error) {
	if err := checkNonNegative("radius", r); err != nil {
		return UnitInertia[T]{}, err
	}
	return TriaxiallySymmetric(scalar.Square(r).Scale(2.0 / 3))
}

// SolidBox returns the unit inertia of a uniform-density box about its center, with side lengths
// lx, ly and lz along the x, y and z axes.
func SolidBox[T scalar.Scalar[T]](lx, ly, lz T) (UnitInertia[T], error) {
	if err := checkAllNonNegative([]string{"length x", "length y", "length z"}, lx, ly, lz); err != nil {
		return UnitInertia[T]{}, err
	}
	x2, y2, z2 := scalar.Square(lx), scalar.Square(ly), scalar.Square(lz)
	return triaxial(y2.Add(z2).Scale(1.0/12), x2.Add(z2).Scale(1.0/12), x2.Add(y2).Scale(1.0/12)), nil
}

// SolidCube returns the unit inertia of a uniform-density cube with side length l about its center.
func SolidCube[T scalar.Scalar[T]](l T) (UnitInertia[T], error) {
	return SolidBox(l, l, l)
}

// TriaxiallySymmetric returns the unit inertia J·Id, which has the same moment j about every axis.
func TriaxiallySymmetric[T scalar.Scalar[T]](j T) (UnitInertia[T], error) {
	if err := checkNonNegative("moment", j); err != nil {
		return UnitInertia[T]{}, err
	}
	return triaxial(j, j, j), nil
}

func triaxial[T scalar.Scalar[T]](ixx, iyy, izz T) UnitInertia[T] {
	z := scalar.Zero[T]()
	return unitInertia(NewSymmetricTensor(ixx, iyy, izz, z, z, z))
}

// AxiallySymmetric returns the unit inertia of a body whose mass is distributed symmetrically about
// the unit vector axis, with moment j about that axis and moment k about any perpendicular axis
// through the same point: K·Id + (J−K)·axis⊗axis. The moments must satisfy 0 ≤ J ≤ 2K.
func AxiallySymmetric[T scalar.Scalar[T]](j, k T, axis spatialmath.Vector3[T]) (UnitInertia[T], error) {
	if err := checkAllNonNegative([]string{"axial moment", "transverse moment"}, j, k); err != nil {
		return UnitInertia[T]{}, err
	}
	if excess := j.Value() - 2*k.Value(); excess > triangleTolerance*math.Max(j.Value(), k.Value()) {
		return UnitInertia[T]{}, errors.Wrapf(ErrDomain,
			"axial moment %g exceeds twice the transverse moment %g", j.Value(), k.Value())
	}
	b, err := normalizeDirection("axis", axis)
	if err != nil {
		return UnitInertia[T]{}, err
	}

	jk := j.Sub(k)
	return unitInertia(NewSymmetricTensor(
		k.Add(jk.Mul(scalar.Square(b.X))),
		k.Add(jk.Mul(scalar.Square(b.Y))),
		k.Add(jk.Mul(scalar.Square(b.Z))),
		jk.Mul(b.X).Mul(b.Y),
		jk.Mul(b.X).Mul(b.Z),
		jk.Mul(b.Y).Mul(b.Z),
	)), nil
}

// StraightLine returns the unit inertia of mass concentrated along a line through the origin with
// direction axis, whose moment about any perpendicular axis is k.
func StraightLine[T scalar.Scalar[T]](k T, axis spatialmath.Vector3[T]) (UnitInertia[T], error) {
	return AxiallySymmetric(scalar.Zero[T](), k, axis)
}

// ThinRod returns the unit inertia of a thin rod of length l about its center, with direction axis.
func ThinRod[T scalar.Scalar[T]](l T, axis spatialmath.Vector3[T]) (UnitInertia[T], error) {
	if err := checkNonNegative("length", l); err != nil {
		return UnitInertia[T]{}, err
	}
	return StraightLine(scalar.Square(l).Scale(1.0/12), axis)
}

// SolidCylinder returns the unit inertia of a uniform-density cylinder of radius r and length l
// about its center, with its axis of symmetry along axis.
func SolidCylinder[T scalar.Scalar[T]](r, l T, axis spatialmath.Vector3[T]) (UnitInertia[T], error) {
	if err := checkAllNonNegative([]string{"radius", "length"}, r, l); err != nil {
		return UnitInertia[T]{}, err
	}
	r2, l2 := scalar.Square(r), scalar.Square(l)
	j := r2.Scale(0.5)
	k := r2.Scale(3).Add(l2).Scale(1.0 / 12)
	return AxiallySymmetric(j, k, axis)
}

// SolidCylinderAboutEnd returns the unit inertia of a uniform-density cylinder of radius r and
// length l whose axis is z, about the center of one of its circular faces.
func SolidCylinderAboutEnd[T scalar.Scalar[T]](r, l T) (UnitInertia[T], error) {
	if err := checkAllNonNegative([]string{"radius", "length"}, r, l); err != nil {
		return UnitInertia[T]{}, err
	}
	r2, l2 := scalar.Square(r), scalar.Square(l)
	iz := r2.Scale(0.5)
	ix := r2.Scale(3).Add(l2).Scale(1.0 / 12).Add(l2.Scale(0.25))
	return triaxial(ix, ix, iz), nil
}

// SolidCapsule returns the unit inertia of a uniform-density capsule about its center. The capsule
// is a cylinder of radius r and length l along axis, capped by two half-spheres of radius r. A
// capsule with r = 0 is a thin rod.
func SolidCapsule[T scalar.Scalar[T]](r, l T, axis spatialmath.Vector3[T]) (UnitInertia[T], error) {
	if err := checkAllNonNegative([]string{"radius", "length"}, r, l); err != nil {
		return UnitInertia[T]{}, err
	}

	// Volumes are vc = πr²l for the cylinder and vh = (2/3)πr³ for each half-sphere. Dividing both
	// by πr² keeps the mass fractions finite as r goes to zero.
	denom := l.Add(r.Scale(4.0 / 3))
	if !(denom.Value() > 0) {
		// zero volume and zero extent: all mass at the center
		return StraightLine(scalar.Zero[T](), axis)
	}
	mc := l.Div(denom)
	mh := r.Scale(2.0 / 3).Div(denom)

	r2, l2 := scalar.Square(r), scalar.Square(l)

	// Each half-sphere has moment 0.4·r² about the axis, and 83/320·r² about a transverse axis
	// through its own center of mass, which sits dH from the capsule's center.
	dH := r.Scale(0.375).Add(l.Scale(0.5))
	j := mc.Mul(r2).Scale(0.5).Add(mh.Mul(r2).Scale(2 * 0.4))
	k := mc.Mul(r2.Scale(3).Add(l2)).Scale(1.0 / 12).
		Add(mh.Mul(r2.Scale(83.0 / 320).Add(scalar.Square(dH))).Scale(2))
	return AxiallySymmetric(j, k, axis)
}

// SolidTetrahedronAboutVertex returns the unit inertia of a uniform-density tetrahedron about one of
// its vertices A, where p, q and r are the positions of the other three vertices from A.
func SolidTetrahedronAboutVertex[T scalar.Scalar[T]](p, q, r spatialmath.Vector3[T]) UnitInertia[T] {
	// The covariance about A is C = 0.1·½(s⊗s + p⊗p + q⊗q + r⊗r) with s = p + q + r; the unit
	// inertia is tr(C)·Id − C.
	s := p.Add(q).Add(r)
	sum := s.Outer(s)
	for _, v := range []spatialmath.Vector3[T]{p, q, r} {
		o := v.Outer(v)
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				sum[i][j] = sum[i][j].Add(o[i][j])
			}
		}
	}
	c := upperTriangle(sum).Scale(0.1 * 0.5)
	tr := c.Trace()
	return unitInertia(NewSymmetricTensor(
		tr.Sub(c.xx),
		tr.Sub(c.yy),
		tr.Sub(c.zz),
		c.xy.Neg(),
		c.xz.Neg(),
		c.yz.Neg(),
	))
}

// SolidTetrahedronAboutPoint returns the unit inertia of a uniform-density tetrahedron about a point
// Q, where a, b, c and d are the positions of its vertices from Q.
func SolidTetrahedronAboutPoint[T scalar.Scalar[T]](a, b, c, d spatialmath.Vector3[T]) UnitInertia[T] {
	p, q, r := b.Sub(a), c.Sub(a), d.Sub(a)
	aboutA := SolidTetrahedronAboutVertex(p, q, r)

	// The centroid is the mean of the four vertices, so from A it is a quarter of p + q + r.
	fromAToCom := p.Add(q).Add(r).Scale(0.25)
	fromComToQ := a.Add(fromAToCom).Neg()
	return aboutA.Shift(fromAToCom, fromComToQ)
}
