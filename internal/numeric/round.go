package numeric

import "math"

// RoundSignificant rounds x to sig significant digits. The decimal
// exponent is d = ceil(log10|x|); x is scaled by 10^(sig-d), rounded half
// up (toward +Inf, so -2.5 becomes -2) and scaled back. Zero and non-finite
// values pass through.
func RoundSignificant(x float64, sig int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	d := math.Ceil(math.Log10(math.Abs(x)))
	magnitude := math.Pow(10, float64(sig)-d)
	return math.Floor(x*magnitude+0.5) / magnitude
}

// StableAt reports whether a and b agree after rounding both to sig
// significant digits
func StableAt(a, b float64, sig int) bool {
	return RoundSignificant(a, sig) == RoundSignificant(b, sig)
}
