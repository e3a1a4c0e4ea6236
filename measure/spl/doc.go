// Package spl measures sound pressure levels of audio blocks.
//
// A [Meter] converts one interleaved block of samples into an instantaneous
// level in decibels: each channel is run through its own A-weighting cascade
// (optional), the RMS over all channels and frames is taken, converted to dB,
// offset by a calibration value (optional), and clamped to a noise floor.
// The two standard configurations are raw dBFS (unweighted, no offset) and
// calibrated dB(A) SPL (weighted, offset applied); the processing pipeline is
// identical otherwise.
//
// A [Smoother] turns the per-block instantaneous levels into a stable
// published reading via one-pole exponential averaging, and a [History]
// keeps a bounded FIFO window of periodically sampled readings.
package spl
