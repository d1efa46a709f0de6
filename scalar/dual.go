package scalar

import (
	"fmt"

	"gonum.org/v1/gonum/num/dual"
)

// Dual is a forward-mode automatic differentiation Scalar. Real carries the value and Emag the
// derivative with respect to whichever input was seeded with a unit Emag.
type Dual dual.Number

// NewDual returns a Dual with the given value and derivative.
func NewDual(real, emag float64) Dual {
	return Dual{Real: real, Emag: emag}
}

// Variable returns a Dual seeded as the independent variable of a derivative.
func Variable(v float64) Dual {
	return Dual{Real: v, Emag: 1}
}

// Add returns d+o.
func (d Dual) Add(o Dual) Dual {
	return Dual{Real: d.Real + o.Real, Emag: d.Emag + o.Emag}
}

// Sub returns d-o.
func (d Dual) Sub(o Dual) Dual {
	return Dual{Real: d.Real - o.Real, Emag: d.Emag - o.Emag}
}

// Mul returns d*o.
func (d Dual) Mul(o Dual) Dual {
	return Dual(dual.Mul(dual.Number(d), dual.Number(o)))
}

// Div returns d/o.
func (d Dual) Div(o Dual) Dual {
	return Dual(dual.Mul(dual.Number(d), dual.Inv(dual.Number(o))))
}

// Neg returns -d.
func (d Dual) Neg() Dual {
	return Dual{Real: -d.Real, Emag: -d.Emag}
}

// Scale returns d*s.
func (d Dual) Scale(s float64) Dual {
	return Dual(dual.Scale(s, dual.Number(d)))
}

// Sqrt returns the square root of d.
func (d Dual) Sqrt() Dual {
	return Dual(dual.Sqrt(dual.Number(d)))
}

// FromFloat returns a constant Dual, which has no derivative.
func (Dual) FromFloat(v float64) Dual {
	return Dual{Real: v}
}

// Value returns the real part of d.
func (d Dual) Value() float64 {
	return d.Real
}

// Derivative returns the dual part of d.
func (d Dual) Derivative() float64 {
	return d.Emag
}

// String returns a human readable string that represents the dual number.
func (d Dual) String() string {
	return fmt.Sprintf("%v", dual.Number(d))
}
