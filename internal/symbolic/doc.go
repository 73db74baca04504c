// Package symbolic is the small multibody algebra backend used by the model
// composition engine.
//
// It covers what components need to describe a system: scalar symbols (static
// constants and time-dependent coordinates), polynomial-trigonometric expressions
// with exact term cancellation, reference frames linked by direction cosine
// matrices, vectors expressed across frames, points with relative positions and
// velocities, rigid bodies, pin joints, loads and torque actuators.
//
// A System accumulates the contributions of every component: bodies, joints,
// generalized coordinates and speeds, kinematic differential equations, loads,
// actuators and holonomic or nonholonomic constraints. It never forms or solves
// equations of motion.
package symbolic
