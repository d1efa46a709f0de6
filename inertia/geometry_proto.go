package inertia

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	commonpb "go.viam.com/api/common/v1"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

// GeometryInertia is the unit inertia of a geometry protobuf message, about the geometry's center
// and expressed in the frame the geometry's pose is given in.
type GeometryInertia struct {
	Label   string
	Inertia UnitInertia[scalar.Float64]
	// Center is the position of the geometry's center in the same frame, in the message's units (mm).
	Center r3.Vector
}

// UnitInertiaFromGeometryProto computes the unit inertia of a solid, uniform-density box, sphere or
// capsule geometry message. Lengths are kept in millimeters, so the result is in mm².
func UnitInertiaFromGeometryProto(geometry *commonpb.Geometry) (*GeometryInertia, error) {
	if geometry == nil {
		return nil, errors.New("cannot compute the inertia of a nil geometry")
	}

	var (
		u   UnitInertia[scalar.Float64]
		err error
	)
	switch {
	case geometry.GetBox() != nil:
		dims := geometry.GetBox().GetDimsMm()
		u, err = SolidBox(scalar.Float64(dims.GetX()), scalar.Float64(dims.GetY()), scalar.Float64(dims.GetZ()))
	case geometry.GetSphere() != nil:
		u, err = SolidSphere(scalar.Float64(geometry.GetSphere().GetRadiusMm()))
	case geometry.GetCapsule() != nil:
		// capsule messages give the tip to tip length along the z axis of the geometry
		c := geometry.GetCapsule()
		segment := c.GetLengthMm() - 2*c.GetRadiusMm()
		if segment < 0 {
			return nil, errors.Wrapf(ErrDomain, "capsule length %g is less than its diameter %g", c.GetLengthMm(), 2*c.GetRadiusMm())
		}
		u, err = SolidCapsule(scalar.Float64(c.GetRadiusMm()), scalar.Float64(segment), spatialmath.UnitZ[scalar.Float64]())
	default:
		return nil, errors.Errorf("cannot compute the inertia of geometry type %T", geometry.GetGeometryType())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "geometry %q", geometry.GetLabel())
	}

	center := geometry.GetCenter()
	orientation := &spatialmath.OrientationVectorDegrees{
		OX:    center.GetOX(),
		OY:    center.GetOY(),
		OZ:    center.GetOZ(),
		Theta: center.GetTheta(),
	}
	return &GeometryInertia{
		Label:   geometry.GetLabel(),
		Inertia: u.ReExpress(spatialmath.RotationMatrix[scalar.Float64](orientation)),
		Center:  r3.Vector{X: center.GetX(), Y: center.GetY(), Z: center.GetZ()},
	}, nil
}

// AboutOrigin returns the geometry's unit inertia about the origin of the frame its pose is given in.
func (g *GeometryInertia) AboutOrigin() UnitInertia[scalar.Float64] {
	return g.Inertia.ShiftFromCenterOfMass(spatialmath.VectorFromR3[scalar.Float64](g.Center).Neg())
}
