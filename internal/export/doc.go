// Package export writes trail frames out of the terminal: raster images via
// gg, animated GIFs, PNG sequences, SVG snapshots, CSV and JSON sample dumps, and a
// stereo WAV track that can drive a real oscilloscope in XY mode.
//
// Every output is a [Sink]. [Run] ticks a renderer through a fixed number of
// frames and hands each ring state to the sink.
package export
