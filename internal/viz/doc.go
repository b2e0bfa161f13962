// Package viz is the terminal front end of the simulator.
//
// A bubbletea [Model] wraps a session: the arena and body are drawn on a
// Braille [Canvas], the authored keys of every parameter are shown as a
// timeline strip around the playhead, and the key bindings below drive
// playback and authoring.
//
// # Key Bindings
//
//	Space      - Play/Pause
//	Enter      - Play from frame 0
//	←/→ h/l    - Step one frame (shift for ten)
//	[ ]        - Jump to previous/next key of the current parameter
//	Tab        - Cycle parameters
//	↑/↓ k/j    - Adjust the current parameter by one step
//	r / R      - Record current parameter / all parameters
//	s          - Select the key of the current parameter at the playhead
//	x          - Delete the selected key
//	c          - Clear every key after frame 0
//	p / a      - Record pose / apply pose
//	0          - Reset to frame 0
//	t          - Cycle color themes
//	?          - Toggle help
//	q          - Quit
package viz
