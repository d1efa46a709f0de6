package inertia

import (
	"errors"
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/inertia/spatialmath"
)

func TestRotationalInertiaMass(t *testing.T) {
	box, err := SolidBox[f64](1, 2, 3)
	test.That(t, err, test.ShouldBeNil)
	ri := box.MultiplyByMass(12)
	test.That(t, ri.Moments().ApproxEqual(vec(13, 10, 5), 1e-14), test.ShouldBeTrue)

	back, err := ri.DivideByMass(12)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.AlmostEqual(box, 1e-15), test.ShouldBeTrue)

	for _, mass := range []float64{0, -1, math.NaN()} {
		_, err := ri.DivideByMass(f64(mass))
		test.That(t, errors.Is(err, ErrInvalidMass), test.ShouldBeTrue)
	}
}

func TestRotationalInertiaShift(t *testing.T) {
	ri := NewRotationalInertia[f64](2, 2, 2, 0, 0, 0)
	shifted := ri.Shift(3, vec(0, 0, 0), vec(1, 0, 0))
	test.That(t, shifted.Moments().ApproxEqual(vec(2, 5, 5), 1e-15), test.ShouldBeTrue)

	// shifting the mass-weighted tensor agrees with shifting the unit inertia then weighting
	u, err := ri.DivideByMass(3)
	test.That(t, err, test.ShouldBeNil)
	viaUnit := u.ShiftFromCenterOfMass(vec(1, 0, 0)).MultiplyByMass(3)
	test.That(t, viaUnit.AlmostEqual(shifted.SymmetricTensor, 1e-14), test.ShouldBeTrue)

	// a quarter turn about z swaps the x and y moments
	quarterTurn := spatialmath.Matrix3FromFloats[f64]([3][3]float64{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}})
	ri = NewRotationalInertia[f64](1, 2, 3, 0, 0, 0)
	test.That(t, ri.ReExpress(quarterTurn).Moments().ApproxEqual(vec(2, 1, 3), 0), test.ShouldBeTrue)
}
