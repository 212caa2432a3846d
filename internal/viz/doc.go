// Package viz renders the field in the terminal.
//
// [Model] is a Bubble Tea program that steps a simulator on a timer, draws
// the grid with one colored cell per slot and charts recent fox and rabbit
// counts. [Printer] streams one census row per step as CSV or plain text.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	S     - Single step while paused
//	R     - Reset with a fresh population
//	T     - Cycle color themes
//	Q     - Quit
package viz
