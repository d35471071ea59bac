package services

import "math"

// MaxBand is the top of the band scale the examiner grades on.
const MaxBand = 9.0

// Percentage maps a band score to a percentage rounded to two decimals,
// half to even. Bands outside [0, MaxBand] are clamped first, so the result
// is always within [0, 100].
func Percentage(band float64) float64 {
	if math.IsNaN(band) || math.IsInf(band, 0) {
		return 0
	}
	band = math.Max(0, math.Min(MaxBand, band))
	p := band / MaxBand * 100
	return math.RoundToEven(p*100) / 100
}
