// Package waveforms provides the frame sources that drive the scope.
//
// Every source is a pure function of the frame index: it sweeps a fixed
// sample grid over one 2π cycle, offset by 2π per frame, and returns the
// resulting (x, y) trace.
//
//   - [CircleSine]: a sine inscribed in a circle, gated to one half
//   - [Spring]: a spherical spring that tumbles and orbits
//   - [Rose]: a slowly breathing rose curve
//   - [Lissajous]: the classic figure with a drifting phase
//
// All sources implement [Waveform] for runtime parameter adjustment and are
// looked up by name through a [Registry].
package waveforms
