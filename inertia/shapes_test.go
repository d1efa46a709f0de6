package inertia

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

func randomUnitVector(r *rand.Rand) spatialmath.Vector3[f64] {
	return vec(r.NormFloat64(), r.NormFloat64(), r.NormFloat64()).Normalize()
}

// checkPhysical verifies symmetry-independent admissibility of a constructed unit inertia.
func checkPhysical(t *testing.T, u UnitInertia[f64]) {
	t.Helper()
	test.That(t, u.Validate(1e-13), test.ShouldBeNil)
	diag := u.Moments()
	for i := 0; i < 3; i++ {
		test.That(t, diag.At(i).Value(), test.ShouldBeGreaterThanOrEqualTo, 0.)
	}
}

func TestPointMass(t *testing.T) {
	u := PointMass(vec(1, 0, 0))
	test.That(t, u.Moments().ApproxEqual(vec(0, 1, 1), 0), test.ShouldBeTrue)
	test.That(t, u.Products().ApproxEqual(vec(0, 0, 0), 0), test.ShouldBeTrue)

	u = PointMass(vec(1, 2, 3))
	test.That(t, u.Moments().ApproxEqual(vec(13, 10, 5), 0), test.ShouldBeTrue)
	test.That(t, u.Products().ApproxEqual(vec(-2, -3, -6), 0), test.ShouldBeTrue)
	checkPhysical(t, u)
}

func TestSolidEllipsoidAndSphere(t *testing.T) {
	sphere, err := SolidSphere[f64](2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sphere.Moments().ApproxEqual(vec(1.6, 1.6, 1.6), 1e-15), test.ShouldBeTrue)
	test.That(t, sphere.Products().ApproxEqual(vec(0, 0, 0), 0), test.ShouldBeTrue)

	asEllipsoid, err := SolidEllipsoid[f64](2, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, asEllipsoid.AlmostEqual(sphere, 0), test.ShouldBeTrue)

	e, err := SolidEllipsoid[f64](1, 2, 3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, e.Moments().ApproxEqual(vec(0.2*13, 0.2*10, 0.2*5), 1e-15), test.ShouldBeTrue)
	checkPhysical(t, e)

	hollow, err := HollowSphere[f64](3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hollow.Moments().ApproxEqual(vec(6, 6, 6), 1e-14), test.ShouldBeTrue)
}

func TestSolidBoxAndCube(t *testing.T) {
	cube, err := SolidBox[f64](1, 1, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cube.Moments().ApproxEqual(vec(1./6, 1./6, 1./6), 1e-16), test.ShouldBeTrue)
	test.That(t, cube.Products().ApproxEqual(vec(0, 0, 0), 0), test.ShouldBeTrue)

	same, err := SolidCube[f64](1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, same.AlmostEqual(cube, 0), test.ShouldBeTrue)

	box, err := SolidBox[f64](2, 0, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, box.Moments().ApproxEqual(vec(16./12, 20./12, 4./12), 1e-15), test.ShouldBeTrue)
	checkPhysical(t, box)
}

func TestSolidCylinder(t *testing.T) {
	c, err := SolidCylinder[f64](1, 2, spatialmath.UnitZ[f64]())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Moments().ApproxEqual(vec(7./12, 7./12, 0.5), 1e-15), test.ShouldBeTrue)

	// the same cylinder along an oblique axis has the same principal moments
	axis := vec(1, -2, 2).Scale(1. / 3)
	oblique, err := SolidCylinder[f64](1, 2, axis)
	test.That(t, err, test.ShouldBeNil)
	checkPhysical(t, oblique)
	d := oblique.PrincipalMomentsAndAxes()
	test.That(t, d.Moments.ApproxEqual(vec(0.5, 7./12, 7./12), 1e-14), test.ShouldBeTrue)
	test.That(t, oblique.Matrix().MulVec(axis).ApproxEqual(axis.Scale(0.5), 1e-15), test.ShouldBeTrue)
}

func TestCylinderAboutEndMatchesShiftedCylinder(t *testing.T) {
	cases := []struct{ r, l float64 }{{1, 2}, {0.1, 5}, {3, 0.5}, {0, 1}, {2, 0}}
	for _, tc := range cases {
		aboutEnd, err := SolidCylinderAboutEnd[f64](f64(tc.r), f64(tc.l))
		test.That(t, err, test.ShouldBeNil)
		center, err := SolidCylinder[f64](f64(tc.r), f64(tc.l), spatialmath.UnitZ[f64]())
		test.That(t, err, test.ShouldBeNil)

		shifted := center.Shift(vec(0, 0, 0), vec(0, 0, -tc.l/2))
		test.That(t, shifted.AlmostEqual(aboutEnd, 1e-14), test.ShouldBeTrue)
		checkPhysical(t, aboutEnd)
	}
}

func TestAxiallySymmetric(t *testing.T) {
	u, err := AxiallySymmetric[f64](1, 2, spatialmath.UnitX[f64]())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, u.Moments().ApproxEqual(vec(1, 2, 2), 1e-15), test.ShouldBeTrue)

	// J = 2K is allowed, J > 2K is not
	_, err = AxiallySymmetric[f64](4, 2, spatialmath.UnitX[f64]())
	test.That(t, err, test.ShouldBeNil)
	_, err = AxiallySymmetric[f64](4.1, 2, spatialmath.UnitX[f64]())
	test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
	_, err = AxiallySymmetric[f64](-1, 2, spatialmath.UnitX[f64]())
	test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)

	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		k := r.Float64()
		j := 2 * k * r.Float64()
		u, err := AxiallySymmetric(f64(j), f64(k), randomUnitVector(r))
		test.That(t, err, test.ShouldBeNil)
		checkPhysical(t, u)
	}
}

func TestDirectionVectorTolerance(t *testing.T) {
	_, err := SolidCylinder[f64](1, 1, vec(1+5e-15, 0, 0))
	test.That(t, err, test.ShouldBeNil)

	u, err := AxiallySymmetric[f64](1, 2, vec(0, 0, 1-8e-15))
	test.That(t, err, test.ShouldBeNil)
	// the axis is normalized, so the axial moment is exact
	test.That(t, u.Moments().Z.Value(), test.ShouldAlmostEqual, 1., 1e-15)

	for _, axis := range []spatialmath.Vector3[f64]{vec(1+1e-13, 0, 0), vec(0, 2, 0), vec(0, 0, 0), vec(0.6, 0.6, 0)} {
		_, err := SolidCylinder[f64](1, 1, axis)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
		_, err = ThinRod[f64](1, axis)
		test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
		_, err = SolidCapsule[f64](1, 1, axis)
		test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
	}
}

func TestNegativeDimensions(t *testing.T) {
	z := spatialmath.UnitZ[f64]()
	constructors := map[string]func() (UnitInertia[f64], error){
		"ellipsoid":          func() (UnitInertia[f64], error) { return SolidEllipsoid[f64](1, -1, 1) },
		"sphere":             func() (UnitInertia[f64], error) { return SolidSphere[f64](-1) },
		"hollow sphere":      func() (UnitInertia[f64], error) { return HollowSphere[f64](-1) },
		"box":                func() (UnitInertia[f64], error) { return SolidBox[f64](1, 1, -1) },
		"cube":               func() (UnitInertia[f64], error) { return SolidCube[f64](-1) },
		"cylinder radius":    func() (UnitInertia[f64], error) { return SolidCylinder[f64](-1, 1, z) },
		"cylinder length":    func() (UnitInertia[f64], error) { return SolidCylinder[f64](1, -1, z) },
		"cylinder about end": func() (UnitInertia[f64], error) { return SolidCylinderAboutEnd[f64](1, -1) },
		"capsule radius":     func() (UnitInertia[f64], error) { return SolidCapsule[f64](-1, 1, z) },
		"capsule length":     func() (UnitInertia[f64], error) { return SolidCapsule[f64](1, -1, z) },
		"rod":                func() (UnitInertia[f64], error) { return ThinRod[f64](-1, z) },
		"line":               func() (UnitInertia[f64], error) { return StraightLine[f64](-1, z) },
		"triaxial":           func() (UnitInertia[f64], error) { return TriaxiallySymmetric[f64](-1) },
		"NaN":                func() (UnitInertia[f64], error) { return SolidSphere(f64(math.NaN())) },
	}
	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			u, err := construct()
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
			test.That(t, u, test.ShouldResemble, UnitInertia[f64]{})
		})
	}
}

func TestThinRodAndStraightLine(t *testing.T) {
	rod, err := ThinRod[f64](3, spatialmath.UnitY[f64]())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rod.Moments().ApproxEqual(vec(0.75, 0, 0.75), 1e-15), test.ShouldBeTrue)

	line, err := StraightLine[f64](0.75, spatialmath.UnitY[f64]())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, line.AlmostEqual(rod, 1e-15), test.ShouldBeTrue)
	checkPhysical(t, rod)
}

func TestSolidCapsule(t *testing.T) {
	axis := vec(0, 0.6, 0.8)

	// zero radius is a thin rod
	capsule, err := SolidCapsule[f64](0, 2, axis)
	test.That(t, err, test.ShouldBeNil)
	rod, err := ThinRod[f64](2, axis)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, capsule.AlmostEqual(rod, 1e-15), test.ShouldBeTrue)
	d := capsule.PrincipalMomentsAndAxes()
	test.That(t, d.Moments.X.Value(), test.ShouldAlmostEqual, 0., 1e-15)
	test.That(t, d.Moments.Z.Value(), test.ShouldAlmostEqual, 4./12, 1e-15)

	// zero length is a sphere
	capsule, err = SolidCapsule[f64](1.5, 0, axis)
	test.That(t, err, test.ShouldBeNil)
	sphere, err := SolidSphere[f64](1.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, capsule.AlmostEqual(sphere, 1e-14), test.ShouldBeTrue)

	// nothing at all is a point
	capsule, err = SolidCapsule[f64](0, 0, axis)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, capsule.AlmostEqual(UnitInertia[f64]{ZeroSymmetricTensor[f64]()}, 0), test.ShouldBeTrue)

	// compare against the mass-weighted sum of a cylinder and two shifted half-spheres
	r, l := 0.5, 2.0
	capsule, err = SolidCapsule[f64](f64(r), f64(l), spatialmath.UnitZ[f64]())
	test.That(t, err, test.ShouldBeNil)
	vc, vh := math.Pi*r*r*l, 2./3*math.Pi*r*r*r
	mc, mh := vc/(vc+2*vh), vh/(vc+2*vh)
	cyl, err := SolidCylinder[f64](f64(r), f64(l), spatialmath.UnitZ[f64]())
	test.That(t, err, test.ShouldBeNil)
	// a half-sphere about the center of its flat face has moments 0.4r² about every axis
	half, err := SolidSphere[f64](f64(r))
	test.That(t, err, test.ShouldBeNil)
	dH := 3. / 8 * r
	halfAtCom := half.Shift(vec(0, 0, dH), vec(0, 0, 0))
	top := halfAtCom.ShiftFromCenterOfMass(vec(0, 0, -(dH + l/2)))
	bottom := halfAtCom.ShiftFromCenterOfMass(vec(0, 0, dH+l/2))
	want := cyl.Scale(mc).Add(top.Scale(mh)).Add(bottom.Scale(mh))
	test.That(t, capsule.Tensor().AlmostEqual(want, 1e-14), test.ShouldBeTrue)
	checkPhysical(t, capsule)
}

func TestSolidTetrahedron(t *testing.T) {
	p, q, r := vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1)
	aboutVertex := SolidTetrahedronAboutVertex(p, q, r)
	test.That(t, aboutVertex.Moments().ApproxEqual(vec(0.2, 0.2, 0.2), 1e-15), test.ShouldBeTrue)
	test.That(t, aboutVertex.Products().ApproxEqual(vec(-0.05, -0.05, -0.05), 1e-15), test.ShouldBeTrue)
	checkPhysical(t, aboutVertex)

	// about the origin with the vertex at the origin is the same thing
	aboutOrigin := SolidTetrahedronAboutPoint(vec(0, 0, 0), p, q, r)
	test.That(t, aboutOrigin.AlmostEqual(aboutVertex, 1e-15), test.ShouldBeTrue)

	// the vertex order does not matter
	reordered := SolidTetrahedronAboutPoint(q, vec(0, 0, 0), r, p)
	test.That(t, reordered.AlmostEqual(aboutVertex, 1e-14), test.ShouldBeTrue)

	// translating every vertex and the reference point together changes nothing
	offset := vec(3, -1, 2)
	moved := SolidTetrahedronAboutPoint(offset, p.Add(offset), q.Add(offset), r.Add(offset))
	test.That(t, moved.AlmostEqual(SolidTetrahedronAboutPoint(vec(0, 0, 0), p, q, r).
		ShiftToCenterOfMass(vec(0.25, 0.25, 0.25)).ShiftFromCenterOfMass(vec(-0.25, -0.25, -0.25).Sub(offset)), 1e-13),
		test.ShouldBeTrue)

	// a regular tetrahedron has an isotropic inertia about its centroid: edge² / 20
	a, b, c, d := vec(1, 1, 1), vec(1, -1, -1), vec(-1, 1, -1), vec(-1, -1, 1)
	regular := SolidTetrahedronAboutPoint(a, b, c, d)
	edge2 := b.Sub(a).Norm2().Value()
	test.That(t, regular.Moments().ApproxEqual(vec(edge2/20, edge2/20, edge2/20), 1e-14), test.ShouldBeTrue)
	test.That(t, regular.Products().ApproxEqual(vec(0, 0, 0), 1e-14), test.ShouldBeTrue)
}

func TestRandomShapesArePhysical(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		a, b, c := f64(r.Float64()*5), f64(r.Float64()*5), f64(r.Float64()*5)
		axis := randomUnitVector(r)
		rot := spatialmath.RotationMatrix[f64](&spatialmath.R4AA{Theta: r.Float64() * math.Pi, RX: r.NormFloat64(), RY: r.NormFloat64(), RZ: 1})

		shapes := []func() (UnitInertia[f64], error){
			func() (UnitInertia[f64], error) { return SolidEllipsoid(a, b, c) },
			func() (UnitInertia[f64], error) { return SolidBox(a, b, c) },
			func() (UnitInertia[f64], error) { return SolidCylinder(a, b, axis) },
			func() (UnitInertia[f64], error) { return SolidCapsule(a, b, axis) },
			func() (UnitInertia[f64], error) { return SolidCylinderAboutEnd(a, b) },
			func() (UnitInertia[f64], error) { return ThinRod(c, axis) },
			func() (UnitInertia[f64], error) { return PointMass(vec(a.Value(), -b.Value(), c.Value())), nil },
			func() (UnitInertia[f64], error) {
				return SolidTetrahedronAboutPoint(randomUnitVector(r), randomUnitVector(r).Scale(2), randomUnitVector(r), vec(a.Value(), 0, 0)), nil
			},
		}
		for _, shape := range shapes {
			u, err := shape()
			test.That(t, err, test.ShouldBeNil)
			checkPhysical(t, u)
			checkPhysical(t, u.ReExpress(rot))
			test.That(t, u.At(0, 2), test.ShouldEqual, u.At(2, 0))
		}
	}
}

func TestShapeDerivatives(t *testing.T) {
	// d/dr of the sphere moment 0.4r² is 0.8r
	r := scalar.Variable(1.5)
	sphere, err := SolidSphere(r)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sphere.Moments().X.Derivative(), test.ShouldAlmostEqual, 1.2)

	// d/dl of the transverse cylinder moment (3r² + l²)/12 is l/6
	l := scalar.Variable(3)
	cyl, err := SolidCylinder(scalar.Const[scalar.Dual](1), l, spatialmath.UnitZ[scalar.Dual]())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cyl.Moments().X.Derivative(), test.ShouldAlmostEqual, 0.5)
	test.That(t, cyl.Moments().Z.Derivative(), test.ShouldAlmostEqual, 0.)

	// the capsule derivative matches a central difference
	const h = 1e-6
	capsuleK := func(radius float64) float64 {
		u, err := SolidCapsule[f64](f64(radius), 2, spatialmath.UnitZ[f64]())
		test.That(t, err, test.ShouldBeNil)
		return u.Moments().X.Value()
	}
	capsule, err := SolidCapsule(scalar.Variable(0.7), scalar.Const[scalar.Dual](2), spatialmath.UnitZ[scalar.Dual]())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, capsule.Moments().X.Derivative(), test.ShouldAlmostEqual, (capsuleK(0.7+h)-capsuleK(0.7-h))/(2*h), 1e-6)
}
