package numeric

import "math"

// AitkenEpsilon is the denominator magnitude below which Aitken returns
// the latest iterate unchanged
const AitkenEpsilon = 1e-10

// Aitken applies the Δ² extrapolation to three consecutive raw iterates:
//
//	x̂ = xn - (xn1 - xn)² / (xn2 - 2·xn1 + xn)
func Aitken(xn, xn1, xn2 float64) float64 {
	denominator := xn2 - 2*xn1 + xn
	if math.Abs(denominator) < AitkenEpsilon {
		return xn2
	}

	d := xn1 - xn
	return xn - d*d/denominator
}
