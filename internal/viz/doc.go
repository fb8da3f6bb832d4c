// Package viz is the terminal front end, built on Bubble Tea.
//
// The array is drawn as vertical bars coloured by role: compared, swapped,
// found, highlighted, or inside the binary search window.
//
// # Key Bindings
//
//	←/→, home/end - Navigate steps (step mode)
//	Space         - Pause/Resume animation (direct mode)
//	S / R         - Stop / Rewind animation
//	+ / -         - Animation speed
//	I U D         - Insert, update, delete
//	F B O         - Linear search, binary search, bubble sort
//	N             - New random array
//	M             - Switch between direct and step mode
//	T             - Cycle color themes
//	?             - Full help
//
// Animation frames are produced on the runner's goroutine and reach the
// event loop through a buffered channel read by a tea.Cmd.
package viz
