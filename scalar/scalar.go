// Package scalar defines the numeric abstraction used by the inertia algebra. Every operation in
// this module is written against Scalar so that the same formulas evaluate on plain float64 values
// and on automatic-differentiation values.
package scalar

// Scalar is the set of operations an inertia computation may perform on a number.
// Implementations must be value types; methods never mutate the receiver.
//
// Value returns the primal float64 and is only meant for tolerance-bounded comparisons. Algorithms
// must not branch on exact equality of two scalars.
type Scalar[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Scale(float64) T
	Sqrt() T
	FromFloat(float64) T
	Value() float64
}

// Const returns f as a T.
func Const[T Scalar[T]](f float64) T {
	var zero T
	return zero.FromFloat(f)
}

// Zero returns the additive identity of T.
func Zero[T Scalar[T]]() T {
	return Const[T](0)
}

// Square returns x*x.
func Square[T Scalar[T]](x T) T {
	return x.Mul(x)
}

// Abs returns x with a non-negative primal value. Derivative information is negated along with the
// primal when x is negative.
func Abs[T Scalar[T]](x T) T {
	if x.Value() < 0 {
		return x.Neg()
	}
	return x
}

// Max returns whichever of a and b has the larger primal value, preferring a on ties.
func Max[T Scalar[T]](a, b T) T {
	if b.Value() > a.Value() {
		return b
	}
	return a
}

// Min returns whichever of a and b has the smaller primal value, preferring a on ties.
func Min[T Scalar[T]](a, b T) T {
	if b.Value() < a.Value() {
		return b
	}
	return a
}

// ClampNonNegative returns zero if x is negative, otherwise x.
func ClampNonNegative[T Scalar[T]](x T) T {
	if x.Value() < 0 {
		return Zero[T]()
	}
	return x
}

// AlmostEqual reports whether the primal values of a and b are within epsilon of each other.
func AlmostEqual[T Scalar[T]](a, b T, epsilon float64) bool {
	d := a.Value() - b.Value()
	return d <= epsilon && -d <= epsilon
}

// IsNaN reports whether the primal value of x is NaN.
func IsNaN[T Scalar[T]](x T) bool {
	v := x.Value()
	return v != v
}
