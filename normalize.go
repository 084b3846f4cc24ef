package rawwave

import "math"

// silenceThreshold is the peak at or below which a signal is left unscaled.
const silenceThreshold = 1.0 / 1024

// Peak returns the largest absolute sample of all signals.
func Peak(signals ...[]float32) float32 {
	var peak float32

	for _, signal := range signals {
		for _, s := range signal {
			if a := float32(math.Abs(float64(s))); a > peak {
				peak = a
			}
		}
	}

	return peak
}

// Normalize scales all signals in place by a common factor so that their
// joint absolute peak becomes 1. Signals peaking at 1/1024 or below are left
// untouched. It returns the peak found before scaling.
func Normalize(signals ...[]float32) float32 {
	peak := Peak(signals...)
	if peak <= silenceThreshold {
		return peak
	}

	gain := 1 / peak
	for _, signal := range signals {
		for i := range signal {
			signal[i] *= gain
		}
	}

	return peak
}
