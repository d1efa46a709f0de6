package utils

import (
	"github.com/pkg/errors"
)

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected interface{}, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}

// NewUnsupportedShapeError is used when a shape description names a shape that cannot be computed.
func NewUnsupportedShapeError(kind string) error {
	return errors.Errorf("shape %q is not supported", kind)
}
