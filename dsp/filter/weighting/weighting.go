package weighting

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spl/dsp/filter/biquad"
)

// IEC 61672 analog prototype pole frequencies (Hz).
const (
	f1 = 20.598997 // double real pole
	f2 = 107.65265 // lower pole of the mid pair
	f3 = 737.86223 // upper pole of the mid pair
	f4 = 12194.217 // double real pole
)

// referenceFreq is the frequency at which the curve is defined as 0 dB.
const referenceFreq = 1000.0

// NumSections is the number of second-order sections in the designed filter.
const NumSections = 3

// ErrSampleRate is returned when the requested sample rate is not positive.
var ErrSampleRate = errors.New("weighting: sample rate must be positive")

// New designs an A-weighting filter for the given sample rate and returns it
// as a [biquad.Chain] of exactly three second-order sections. The chain gain
// is set so the magnitude response at 1 kHz is exactly 0 dB.
func New(sampleRate float64) (*biquad.Chain, error) {
	coeffs, err := Coefficients(sampleRate)
	if err != nil {
		return nil, err
	}

	return biquad.NewChain(coeffs, biquad.WithGain(normalizationGain(coeffs, sampleRate))), nil
}

// Coefficients computes the three un-normalized A-weighting sections for the
// given sample rate:
//
//  1. s²/(s+ω1)² — second-order high-pass, double pole at f1;
//  2. s²/((s+ω2)(s+ω3)) — second-order high-pass, pole pair at f2 and f3;
//  3. ω4²/(s+ω4)² — second-order low-pass, double pole at f4.
//
// Each section is normalized by its own denominator constant. The cascade
// still needs the 1 kHz normalization gain applied (see [New]).
func Coefficients(sampleRate float64) ([]biquad.Coefficients, error) {
	if sampleRate <= 0 {
		return nil, ErrSampleRate
	}

	c := 2 * sampleRate

	return []biquad.Coefficients{
		hpDoublePole(f1, c),
		hpPolePair(f2, f3, c),
		lpDoublePole(f4, c),
	}, nil
}

// hpDoublePole digitizes H(s) = s²/(s+ω)² with the bilinear substitution
// s = c·(1−z⁻¹)/(1+z⁻¹):
//
//	numerator:   c²·(1−z⁻¹)²
//	denominator: ((c+ω) + (ω−c)·z⁻¹)²
func hpDoublePole(f, c float64) biquad.Coefficients {
	w := 2 * math.Pi * f
	d0 := (c + w) * (c + w)

	return biquad.Coefficients{
		B0: c * c / d0,
		B1: -2 * c * c / d0,
		B2: c * c / d0,
		A1: 2 * (c + w) * (w - c) / d0,
		A2: (w - c) * (w - c) / d0,
	}
}

// hpPolePair digitizes H(s) = s²/((s+ωa)(s+ωb)):
//
//	numerator:   c²·(1−z⁻¹)²
//	denominator: ((c+ωa) + (ωa−c)·z⁻¹) · ((c+ωb) + (ωb−c)·z⁻¹)
func hpPolePair(fa, fb, c float64) biquad.Coefficients {
	wa := 2 * math.Pi * fa
	wb := 2 * math.Pi * fb
	d0 := (c + wa) * (c + wb)

	return biquad.Coefficients{
		B0: c * c / d0,
		B1: -2 * c * c / d0,
		B2: c * c / d0,
		A1: ((c+wa)*(wb-c) + (wa-c)*(c+wb)) / d0,
		A2: (wa - c) * (wb - c) / d0,
	}
}

// lpDoublePole digitizes H(s) = ω²/(s+ω)². The ω² numerator keeps the
// section near unity gain in its passband; the exact scale is absorbed by
// the 1 kHz normalization.
//
//	numerator:   ω²·(1+z⁻¹)²
//	denominator: ((c+ω) + (ω−c)·z⁻¹)²
func lpDoublePole(f, c float64) biquad.Coefficients {
	w := 2 * math.Pi * f
	d0 := (c + w) * (c + w)

	return biquad.Coefficients{
		B0: w * w / d0,
		B1: 2 * w * w / d0,
		B2: w * w / d0,
		A1: 2 * (c + w) * (w - c) / d0,
		A2: (w - c) * (w - c) / d0,
	}
}

// normalizationGain computes the gain that makes the cascade magnitude
// exactly 1 (0 dB) at the 1 kHz reference frequency.
func normalizationGain(coeffs []biquad.Coefficients, sampleRate float64) float64 {
	h := complex(1, 0)
	for i := range coeffs {
		h *= coeffs[i].Response(referenceFreq, sampleRate)
	}

	return 1 / cmplx.Abs(h)
}
