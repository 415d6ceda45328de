package domain

import "math"

// Add returns a + b.
func Add(a, b float64) (float64, error) {
	return a + b, nil
}

// Subtract returns a - b.
func Subtract(a, b float64) (float64, error) {
	return a - b, nil
}

// Multiply returns a * b.
func Multiply(a, b float64) (float64, error) {
	return a * b, nil
}

// Divide returns a / b, failing when b is zero.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, DivisionByZero()
	}
	return a / b, nil
}

// Power returns a raised to b. NaN and Inf results are passed through.
func Power(a, b float64) (float64, error) {
	return math.Pow(a, b), nil
}

// Mod returns the floating remainder of a / b. The result takes the sign of a.
func Mod(a, b float64) (float64, error) {
	if b == 0 {
		return 0, DivisionByZero()
	}
	return math.Mod(a, b), nil
}

// Percent returns a percent of b: (a / 100) * b.
func Percent(a, b float64) (float64, error) {
	return (a / 100) * b, nil
}

// Sqrt returns the square root of a, failing for negative a.
func Sqrt(a float64) (float64, error) {
	if a < 0 {
		return 0, InvalidDomain("sqrt of negative")
	}
	return math.Sqrt(a), nil
}

// Negate returns -a.
func Negate(a float64) (float64, error) {
	return -a, nil
}
