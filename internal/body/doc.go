// Package body implements the oriented-rectangle rigid body that bounces
// inside a fixed arena.
//
// A [Body] owns position, velocity, orientation, angular velocity and the
// material constants that feed the impulse solver. [Body.Step] advances it
// by one tick:
//
//  1. integrate position and orientation
//  2. apply linear and angular damping
//  3. resolve each wall independently (extremal-corner contact, normal and
//     friction impulses, positional clamp)
//  4. freeze the body when it rests on the floor
//  5. apply gravity unless the body was frozen this step
//
// # Coordinates
//
// The arena origin is the top-left corner and y grows downward, so
// positive gravity pulls toward the floor at y = Arena.Height.
// Orientation is in radians.
//
// # Preconditions
//
// Mass, width and height must stay positive. The body never checks this;
// the inertia and impulse formulas divide by them.
package body
