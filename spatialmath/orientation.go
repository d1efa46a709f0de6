package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/utils"
)

const defaultAngleEpsilon = 1e-4

// Orientation is an interface used to express the different parameterizations of the orientation
// of a rigid object or a frame of reference in 3D Euclidean space.
type Orientation interface {
	Quaternion() quat.Number
}

type quaternion quat.Number

// Quaternion returns q.
func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// NewZeroOrientation returns an orientatation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{1, 0, 0, 0}
}

// RotationMatrix returns o as a rotation matrix.
func RotationMatrix[T scalar.Scalar[T]](o Orientation) Matrix3[T] {
	return QuatToMatrix3[T](o.Quaternion())
}

// OrientationAlmostEqual will return a bool describing whether 2 orientations are approximately the same.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// QuaternionAlmostEqual is an equality test for the rotations two quaternions represent. q and -q
// describe the same rotation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	same := utils.Float64AlmostEqual(a.Real, b.Real, tol) && utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) && utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
	flipped := utils.Float64AlmostEqual(a.Real, -b.Real, tol) && utils.Float64AlmostEqual(a.Imag, -b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, -b.Jmag, tol) && utils.Float64AlmostEqual(a.Kmag, -b.Kmag, tol)
	return same || flipped
}

// OrientationVectorDegrees is the orientation vector between two objects, but expressed in degrees
// rather than radians. (OX, OY, OZ) is the direction the z axis of the rotated frame points in, and
// Theta is the rotation about that axis.
type OrientationVectorDegrees struct {
	Theta float64 `json:"th"`
	OX    float64 `json:"x"`
	OY    float64 `json:"y"`
	OZ    float64 `json:"z"`
}

// Quaternion returns the orientation in quaternion representation. A zero-length vector is
// treated as pointing along +z.
func (ovd *OrientationVectorDegrees) Quaternion() quat.Number {
	ox, oy, oz := ovd.OX, ovd.OY, ovd.OZ
	norm := math.Sqrt(ox*ox + oy*oy + oz*oz)
	if norm == 0 {
		ox, oy, oz, norm = 0, 0, 1, 1
	}
	ox, oy, oz = ox/norm, oy/norm, oz/norm

	lat := math.Acos(math.Max(-1, math.Min(1, oz)))
	lon := 0.0
	if 1-math.Abs(oz) > defaultAngleEpsilon {
		lon = math.Atan2(oy, ox)
	}
	// convert from lat/lon (spherical) to quaternion
	q := mgl64.AnglesToQuat(lon, lat, utils.DegToRad(ovd.Theta), mgl64.ZYZ)
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D
// Euclidean space, applied as fixed-axis roll about x, then pitch about y, then yaw about z. This is
// the convention of the URDF `rpy` attribute.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Quaternion returns the orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	q := mgl64.AnglesToQuat(ea.Yaw, ea.Pitch, ea.Roll, mgl64.ZYX)
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}
