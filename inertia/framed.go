package inertia

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

// FramedUnitInertia is a unit inertia tagged with the body it belongs to, the point it is taken
// about and the frame it is expressed in. Operations check the tags so that tensors about different
// points or in different frames cannot be silently mixed.
type FramedUnitInertia[T scalar.Scalar[T]] struct {
	Body        string
	AboutPoint  string
	ExpressedIn string
	Inertia     UnitInertia[T]
}

// NewFramedUnitInertia tags u.
func NewFramedUnitInertia[T scalar.Scalar[T]](body, aboutPoint, expressedIn string, u UnitInertia[T]) FramedUnitInertia[T] {
	return FramedUnitInertia[T]{Body: body, AboutPoint: aboutPoint, ExpressedIn: expressedIn, Inertia: u}
}

func newFrameMismatchError(what, want, got string) error {
	return errors.Wrapf(ErrFrameMismatch, "%s is %q, not %q", what, want, got)
}

// ShiftTo moves the inertia from point `from`, which must be its current point, to point `target`.
// offsetToCom is the position of the body's center of mass from `from` and offsetFromComToTarget the
// position of `target` from the center of mass, both expressed in the inertia's frame.
func (f FramedUnitInertia[T]) ShiftTo(
	from string,
	offsetToCom spatialmath.Vector3[T],
	target string,
	offsetFromComToTarget spatialmath.Vector3[T],
) (FramedUnitInertia[T], error) {
	if from != f.AboutPoint {
		return FramedUnitInertia[T]{}, newFrameMismatchError("about point", f.AboutPoint, from)
	}
	out := f
	out.AboutPoint = target
	out.Inertia = f.Inertia.Shift(offsetToCom, offsetFromComToTarget)
	return out, nil
}

// ReExpressIn changes the expression frame from `from`, which must be the current frame, to `to`.
// rotation is R_to_from, whose columns are the unit vectors of `from` expressed in `to`.
func (f FramedUnitInertia[T]) ReExpressIn(from, to string, rotation spatialmath.Matrix3[T]) (FramedUnitInertia[T], error) {
	if from != f.ExpressedIn {
		return FramedUnitInertia[T]{}, newFrameMismatchError("expression frame", f.ExpressedIn, from)
	}
	out := f
	out.ExpressedIn = to
	out.Inertia = f.Inertia.ReExpress(rotation)
	return out, nil
}

// AlmostEqual compares two framed inertias. It fails if they do not share a body, point and frame.
func (f FramedUnitInertia[T]) AlmostEqual(o FramedUnitInertia[T], epsilon float64) (bool, error) {
	if err := f.checkSameTags(o); err != nil {
		return false, err
	}
	return f.Inertia.AlmostEqual(o.Inertia, epsilon), nil
}

func (f FramedUnitInertia[T]) checkSameTags(o FramedUnitInertia[T]) error {
	switch {
	case f.Body != o.Body:
		return newFrameMismatchError("body", f.Body, o.Body)
	case f.AboutPoint != o.AboutPoint:
		return newFrameMismatchError("about point", f.AboutPoint, o.AboutPoint)
	case f.ExpressedIn != o.ExpressedIn:
		return newFrameMismatchError("expression frame", f.ExpressedIn, o.ExpressedIn)
	default:
		return nil
	}
}

// String returns a human readable string that represents the framed inertia.
func (f FramedUnitInertia[T]) String() string {
	return fmt.Sprintf("G_%s/%s_%s = %v", f.Body, f.AboutPoint, f.ExpressedIn, f.Inertia.SymmetricTensor)
}
