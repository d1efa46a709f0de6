package inertia

import (
	"errors"
	"testing"

	commonpb "go.viam.com/api/common/v1"
	"go.viam.com/test"
)

func TestUnitInertiaFromGeometryProto(t *testing.T) {
	t.Run("box", func(t *testing.T) {
		g, err := UnitInertiaFromGeometryProto(&commonpb.Geometry{
			Label:  "crate",
			Center: &commonpb.Pose{X: 10, OZ: 1},
			GeometryType: &commonpb.Geometry_Box{
				Box: &commonpb.RectangularPrism{DimsMm: &commonpb.Vector3{X: 2, Y: 4, Z: 6}},
			},
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, g.Label, test.ShouldEqual, "crate")
		test.That(t, g.Inertia.Moments().ApproxEqual(vec(52./12, 40./12, 20./12), 1e-13), test.ShouldBeTrue)
		test.That(t, g.Center.X, test.ShouldEqual, 10.)

		about := g.AboutOrigin()
		test.That(t, about.Moments().ApproxEqual(vec(52./12, 40./12+100, 20./12+100), 1e-12), test.ShouldBeTrue)
	})

	t.Run("rotated box", func(t *testing.T) {
		// the geometry's z axis points along the parent's x axis
		g, err := UnitInertiaFromGeometryProto(&commonpb.Geometry{
			Center: &commonpb.Pose{OX: 1},
			GeometryType: &commonpb.Geometry_Box{
				Box: &commonpb.RectangularPrism{DimsMm: &commonpb.Vector3{X: 2, Y: 4, Z: 6}},
			},
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, g.Inertia.Moments().ApproxEqual(vec(20./12, 40./12, 52./12), 1e-12), test.ShouldBeTrue)
		test.That(t, g.Inertia.Products().ApproxEqual(vec(0, 0, 0), 1e-12), test.ShouldBeTrue)
	})

	t.Run("sphere", func(t *testing.T) {
		g, err := UnitInertiaFromGeometryProto(&commonpb.Geometry{
			GeometryType: &commonpb.Geometry_Sphere{Sphere: &commonpb.Sphere{RadiusMm: 10}},
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, g.Inertia.Moments().ApproxEqual(vec(40, 40, 40), 1e-12), test.ShouldBeTrue)
	})

	t.Run("capsule", func(t *testing.T) {
		g, err := UnitInertiaFromGeometryProto(&commonpb.Geometry{
			GeometryType: &commonpb.Geometry_Capsule{Capsule: &commonpb.Capsule{RadiusMm: 1, LengthMm: 4}},
		})
		test.That(t, err, test.ShouldBeNil)
		want, err := SolidCapsule[f64](1, 2, vec(0, 0, 1))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, g.Inertia.AlmostEqual(want, 1e-14), test.ShouldBeTrue)

		_, err = UnitInertiaFromGeometryProto(&commonpb.Geometry{
			GeometryType: &commonpb.Geometry_Capsule{Capsule: &commonpb.Capsule{RadiusMm: 3, LengthMm: 4}},
		})
		test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := UnitInertiaFromGeometryProto(nil)
		test.That(t, err, test.ShouldNotBeNil)

		_, err = UnitInertiaFromGeometryProto(&commonpb.Geometry{
			GeometryType: &commonpb.Geometry_Pointcloud{Pointcloud: &commonpb.PointCloud{}},
		})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "Geometry_Pointcloud")

		_, err = UnitInertiaFromGeometryProto(&commonpb.Geometry{
			Label:        "bad",
			GeometryType: &commonpb.Geometry_Sphere{Sphere: &commonpb.Sphere{RadiusMm: -1}},
		})
		test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, `"bad"`)
	})
}
