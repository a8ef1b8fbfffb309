// Package trail implements the phosphor-decay ring that turns a stream of
// frames into an oscilloscope-style afterglow.
//
// A [Renderer] owns a fixed ring of [Slot]s. Slot 0 is the oldest trace and
// is drawn faintest and lowest; slot N-1 is the newest, drawn at full opacity
// on top. Every call to [Renderer.Tick] rotates the ring so the oldest curve
// buffer is reused for the newest frame.
//
// # Scheduling
//
// The renderer owns no timer. The host (a bubbletea program or a
// [loop.Loop]) calls Tick from a single goroutine at a fixed interval.
// Frame 0 re-seeds the ring with frames -(N-1)..0, so a looping animation
// does not jump when it restarts.
//
// # Thread Safety
//
// Renderer instances are NOT thread-safe.
package trail
