// Package analysis measures frames produced by a scope source.
//
//   - [PowerSpectrum]: magnitude spectrum of one coordinate sequence
//   - [Dominant]: strongest non-DC bin of a spectrum
//   - [Describe]: extent, path length and closure of one curve
//   - [Motion]: mean sample displacement between consecutive frames
//
// A closed figure has a closure near zero; a square-gated source shows up
// as strong odd harmonics in its spectrum.
package analysis
