package core

import "github.com/san-kum/brim/internal/symbolic"

// Capability marks components that received a mixin.
type Capability struct {
	name string
}

func NewCapability(name string) *Capability {
	return &Capability{name: name}
}

func (c *Capability) Name() string   { return c.name }
func (c *Capability) String() string { return c.name }

// Precedence places a mixin hook relative to the owner's own hook.
type Precedence uint8

const (
	// AfterOwner mixins run after the owner, in attach order.
	AfterOwner Precedence = iota
	// BeforeOwner mixins run before the owner, most recently attached first.
	BeforeOwner
)

// Hook contributes to one phase of the component m. sys is nil during the
// connections phase.
type Hook func(m Model, sys *symbolic.System) error

// Mixin is a capability fragment attachable to a live component.
type Mixin struct {
	Name         string
	Capability   *Capability
	Requirements []Requirement
	Precedence   Precedence

	Connections Hook
	Objects     Hook
	Kinematics  Hook
	Loads       Hook
	Constraints Hook
}

func (mx *Mixin) hook(p Phase) Hook {
	switch p {
	case PhaseConnections:
		return mx.Connections
	case PhaseObjects:
		return mx.Objects
	case PhaseKinematics:
		return mx.Kinematics
	case PhaseLoads:
		return mx.Loads
	case PhaseConstraints:
		return mx.Constraints
	}
	return nil
}

// HasCapability reports whether a mixin carrying c is attached to m.
func HasCapability(m Model, c *Capability) bool {
	if m == nil || m.Core() == nil {
		return false
	}
	return m.Core().HasCapability(c)
}
