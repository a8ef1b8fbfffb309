// Package viz draws a phosphor trail in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: ticks a [trail.Renderer] and draws every slot as its own layer
//   - [Canvas]: Braille-based pixel canvas, composed with [Compose]
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from frame 0
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[ ]   - Slower/Faster ticks
//
// # Recording
//
// G starts and stops recording. Frames are rasterized at export resolution
// and written as a looping GIF to the current directory.
package viz
