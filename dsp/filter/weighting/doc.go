// Package weighting designs the IEC 61672 A-weighting filter for a given
// sample rate.
//
// A-weighting approximates the 40-phon equal-loudness contour of human
// hearing and is the standard curve for environmental and occupational
// noise measurement. The analog prototype is
//
//	H_A(s) = K * s^4 / ((s+ω1)^2 * (s+ω2) * (s+ω3) * (s+ω4)^2)
//
// with fixed pole frequencies f1≈20.6 Hz, f2≈107.7 Hz, f3≈737.9 Hz and
// f4≈12194 Hz. The prototype is digitized with the bilinear substitution
// s → c·(1−z⁻¹)/(1+z⁻¹), c = 2·sampleRate, decomposed into exactly three
// second-order sections, and normalized so the magnitude response at the
// 1 kHz reference frequency is 0 dB.
package weighting
