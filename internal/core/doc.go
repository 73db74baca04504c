// Package core is the model composition engine.
//
// A component embeds *Base, which owns its name, requirement descriptors, bound
// sub-components, symbol and description tables and lifecycle state. Components
// are wired by binding other components into requirement slots, then driven
// through the lifecycle:
//
//	connections -> objects -> kinematics -> loads -> constraints
//
// Each phase visits bound sub-components in requirement order before the
// component's own hook, skips anything that already completed the phase, and
// rejects out-of-order or repeated calls. Connections reference peers they do
// not own and never traverse them. Load groups attach actuators to a parent and
// run inside the parent's phases.
//
// Capabilities are added to a live component with mixins: ordered fragments
// that carry a capability marker, extra requirements and phase hooks.
package core
