package rockprops

import "math"

// Scaled values closer than this to an integer are treated as that integer,
// otherwise binary noise (1.1 * 100 = 110.00000000000001) would be pushed up
// a whole unit by the ceiling
const roundingTolerance = 1e-9

// Rounds a number towards the right of the number line, to an arbitrary
// number of decimal places. This is not "round half up": 2.001 becomes 2.01
// and -2.001 becomes -2.0 with two decimals.
func RoundUp(value float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	scaled := value * multiplier
	if nearest := math.Round(scaled); math.Abs(scaled-nearest) < roundingTolerance {
		scaled = nearest
	}
	return math.Ceil(scaled) / multiplier
}

// Returns the value that ends up in a scalar property row: the null sentinel
// if the measurement is missing, the rounded measurement otherwise
func Measurement(value float64, decimals int, null float64) float64 {
	if math.IsNaN(value) {
		return null
	}
	return RoundUp(value, decimals)
}
