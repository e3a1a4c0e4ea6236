// Package biquad implements second-order IIR filter sections (biquads) and
// ordered cascades of them, using the Direct Form II Transposed structure.
// Cascades of biquads realize higher-order filters such as the IEC 61672
// weighting curves.
package biquad
