// Package capture binds the level-metering pipeline to a hardware audio
// input. A Session owns the capture lifecycle: it binds a device through a
// Host, builds per-channel weighting filters for the negotiated format,
// and splits the work across two execution contexts. The audio callback
// (real-time, never blocking or allocating) computes one instantaneous
// block level and posts it to a control goroutine, which applies the
// calibration offset, runs the smoothing recursion in strict arrival
// order, and samples the published level into a bounded history window.
//
// Hardware access goes through the Host and Stream interfaces; package
// miniaudio provides the production implementation.
package capture
