package inertia

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

func checkDecomposition(t *testing.T, s SymmetricTensor[f64], d PrincipalDecomposition[f64]) {
	t.Helper()
	scale := math.Max(s.maxAbsElement(), 1)
	test.That(t, d.Axes.IsRotation(1e-12), test.ShouldBeTrue)
	test.That(t, d.Moments.X.Value(), test.ShouldBeLessThanOrEqualTo, d.Moments.Y.Value())
	test.That(t, d.Moments.Y.Value(), test.ShouldBeLessThanOrEqualTo, d.Moments.Z.Value())
	test.That(t, d.Reconstruct().AlmostEqual(s, 1e-12*scale), test.ShouldBeTrue)

	// expressing s in its principal frame diagonalizes it
	principal := s.ReExpress(d.Axes.Transpose())
	test.That(t, principal.Products().ApproxEqual(spatialmath.ZeroVector3[f64](), 1e-12*scale), test.ShouldBeTrue)
	test.That(t, principal.Moments().ApproxEqual(d.Moments, 1e-12*scale), test.ShouldBeTrue)
}

func TestPrincipalMomentsAndAxesDiagonal(t *testing.T) {
	box, err := SolidBox[f64](3, 1, 2)
	test.That(t, err, test.ShouldBeNil)
	d := box.PrincipalMomentsAndAxes()
	checkDecomposition(t, box.Tensor(), d)

	// smallest moment is about x, the longest side
	test.That(t, d.Moments.X.Value(), test.ShouldAlmostEqual, (1.+4.)/12)
	test.That(t, d.Moments.Y.Value(), test.ShouldAlmostEqual, (9.+1.)/12)
	test.That(t, d.Moments.Z.Value(), test.ShouldAlmostEqual, (9.+4.)/12)
	test.That(t, d.Axes.Col(0).ApproxEqual(spatialmath.UnitX[f64](), 1e-15), test.ShouldBeTrue)
	test.That(t, d.Axes.Col(1).ApproxEqual(spatialmath.UnitZ[f64](), 1e-15), test.ShouldBeTrue)
	test.That(t, d.Axes.Col(2).ApproxEqual(spatialmath.UnitY[f64]().Neg(), 1e-15), test.ShouldBeTrue)
}

func TestPrincipalMomentsAndAxesDegenerate(t *testing.T) {
	sphere, err := SolidSphere[f64](2)
	test.That(t, err, test.ShouldBeNil)
	d := sphere.PrincipalMomentsAndAxes()
	checkDecomposition(t, sphere.Tensor(), d)
	test.That(t, d.Axes.ApproxEqual(spatialmath.Identity3[f64](), 0), test.ShouldBeTrue)

	zero := ZeroSymmetricTensor[f64]().PrincipalMomentsAndAxes()
	test.That(t, zero.Moments.ApproxEqual(spatialmath.ZeroVector3[f64](), 0), test.ShouldBeTrue)
	test.That(t, zero.Axes.IsRotation(0), test.ShouldBeTrue)

	rod, err := ThinRod[f64](2, vec(1, 1, 1).Normalize())
	test.That(t, err, test.ShouldBeNil)
	d = rod.PrincipalMomentsAndAxes()
	checkDecomposition(t, rod.Tensor(), d)
	test.That(t, d.Moments.X.Value(), test.ShouldAlmostEqual, 0., 1e-14)
	test.That(t, d.Axes.Col(0).ApproxEqual(vec(1, 1, 1).Normalize(), 1e-12), test.ShouldBeTrue)
}

func TestPrincipalMomentsAndAxesAgainstGonum(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		s := NewSymmetricTensor[f64](
			f64(r.Float64()*10), f64(r.Float64()*10), f64(r.Float64()*10),
			f64(r.NormFloat64()), f64(r.NormFloat64()), f64(r.NormFloat64()),
		)
		d := s.PrincipalMomentsAndAxes()
		checkDecomposition(t, s, d)

		var eig mat.EigenSym
		ok := eig.Factorize(mat.NewSymDense(3, []float64{
			s.xx.Value(), s.xy.Value(), s.xz.Value(),
			s.xy.Value(), s.yy.Value(), s.yz.Value(),
			s.xz.Value(), s.yz.Value(), s.zz.Value(),
		}), true)
		test.That(t, ok, test.ShouldBeTrue)
		values := eig.Values(nil)
		for j := 0; j < 3; j++ {
			test.That(t, d.Moments.At(j).Value(), test.ShouldAlmostEqual, values[j], 1e-10)
		}

		// eigenvectors agree up to sign
		var vecs mat.Dense
		eig.VectorsTo(&vecs)
		for j := 0; j < 3; j++ {
			dot := 0.
			for k := 0; k < 3; k++ {
				dot += d.Axes.At(k, j).Value() * vecs.At(k, j)
			}
			test.That(t, math.Abs(dot), test.ShouldAlmostEqual, 1., 1e-8)
		}
	}
}

func TestPrincipalMomentsAndAxesDeterministicSigns(t *testing.T) {
	s := skewedTensor()
	d := s.PrincipalMomentsAndAxes()
	again := s.ReExpress(spatialmath.Identity3[f64]()).PrincipalMomentsAndAxes()
	test.That(t, again.Axes.ApproxEqual(d.Axes, 1e-14), test.ShouldBeTrue)

	for j := 0; j < 2; j++ {
		col := d.Axes.Col(j)
		largest := 0
		for k := 1; k < 3; k++ {
			if math.Abs(col.At(k).Value()) > math.Abs(col.At(largest).Value()) {
				largest = k
			}
		}
		test.That(t, col.At(largest).Value(), test.ShouldBeGreaterThan, 0.)
	}
	test.That(t, d.Axes.Det().Value(), test.ShouldAlmostEqual, 1.)
}

func TestPrincipalMomentsDerivative(t *testing.T) {
	// a box with side x whose frame is rotated: the principal moments do not depend on the rotation,
	// so d/dx of the largest moment (x² + 4)/12 is x/6.
	x := scalar.Variable(3)
	two, one := scalar.Const[scalar.Dual](2), scalar.Const[scalar.Dual](1)
	box, err := SolidBox(x, two, one)
	test.That(t, err, test.ShouldBeNil)
	rot := spatialmath.RotationMatrix[scalar.Dual](&spatialmath.EulerAngles{Roll: 0.3, Pitch: -0.2, Yaw: 0.9})
	d := box.ReExpress(rot).PrincipalMomentsAndAxes()

	test.That(t, d.Moments.Z.Value(), test.ShouldAlmostEqual, (9.+4.)/12, 1e-12)
	test.That(t, d.Moments.Z.Derivative(), test.ShouldAlmostEqual, 0.5, 1e-9)
	test.That(t, d.Moments.X.Derivative(), test.ShouldAlmostEqual, 0., 1e-9)
	test.That(t, d.Moments.Y.Derivative(), test.ShouldAlmostEqual, 0.5, 1e-9)
}
