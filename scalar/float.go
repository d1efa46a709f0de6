package scalar

import "math"

// Float64 is the plain floating point Scalar.
type Float64 float64

// Add returns f+o.
func (f Float64) Add(o Float64) Float64 { return f + o }

// Sub returns f-o.
func (f Float64) Sub(o Float64) Float64 { return f - o }

// Mul returns f*o.
func (f Float64) Mul(o Float64) Float64 { return f * o }

// Div returns f/o.
func (f Float64) Div(o Float64) Float64 { return f / o }

// Neg returns -f.
func (f Float64) Neg() Float64 { return -f }

// Scale returns f*s.
func (f Float64) Scale(s float64) Float64 { return f * Float64(s) }

// Sqrt returns the square root of f.
func (f Float64) Sqrt() Float64 { return Float64(math.Sqrt(float64(f))) }

// FromFloat returns v as a Float64.
func (Float64) FromFloat(v float64) Float64 { return Float64(v) }

// Value returns f as a float64.
func (f Float64) Value() float64 { return float64(f) }
