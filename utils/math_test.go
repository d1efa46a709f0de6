package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldEqual, 90.)
	test.That(t, RadToDeg(DegToRad(37.5)), test.ShouldAlmostEqual, 37.5)
}

func TestLengthConversions(t *testing.T) {
	test.That(t, MetersToMM(1.5), test.ShouldEqual, 1500.)
	test.That(t, MMToMeters(250), test.ShouldEqual, 0.25)
	test.That(t, Square(-3), test.ShouldEqual, 9.)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
	test.That(t, Float64AlmostEqual(math.NaN(), math.NaN(), 1), test.ShouldBeFalse)
}
