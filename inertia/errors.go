package inertia

import (
	"github.com/pkg/errors"
)

var (
	// ErrDomain is returned when a shape constructor receives a parameter outside its domain, such as
	// a negative length or a direction vector that is not unit length.
	ErrDomain = errors.New("shape parameter out of domain")

	// ErrInvalidInertia is returned when a tensor fails a physical admissibility check.
	ErrInvalidInertia = errors.New("inertia is not physically valid")

	// ErrInvalidShapeFactor is returned when an equivalent shape is requested with a shape factor
	// outside (0, 1].
	ErrInvalidShapeFactor = errors.New("shape factor must be in (0, 1]")

	// ErrInvalidMass is returned when a mass is not strictly positive where one is required.
	ErrInvalidMass = errors.New("mass must be positive")

	// ErrFrameMismatch is returned when a framed inertia is used about a point, in a frame, or for a
	// body other than the one it carries.
	ErrFrameMismatch = errors.New("inertia frame mismatch")
)

func newNegativeDimensionError(name string, value float64) error {
	return errors.Wrapf(ErrDomain, "%s must be non-negative, got %g", name, value)
}

func newNonUnitVectorError(name string, norm float64) error {
	return errors.Wrapf(ErrDomain, "%s must be a unit vector, got norm %.17g", name, norm)
}

func newInvalidShapeFactorError(factor float64) error {
	return errors.Wrapf(ErrInvalidShapeFactor, "got %g", factor)
}

func newInvalidMassError(mass float64) error {
	return errors.Wrapf(ErrInvalidMass, "got %g", mass)
}
