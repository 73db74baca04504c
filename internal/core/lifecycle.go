package core

import (
	"errors"

	"github.com/san-kum/brim/internal/symbolic"
)

// Phase hooks a component implements to contribute to the lifecycle. Each
// runs once, after the component's non-connection sub-components finished the
// same phase.
type (
	ConnectionsDefiner interface {
		OnDefineConnections() error
	}
	ObjectsDefiner interface {
		OnDefineObjects(sys *symbolic.System) error
	}
	KinematicsDefiner interface {
		OnDefineKinematics(sys *symbolic.System) error
	}
	LoadsDefiner interface {
		OnDefineLoads(sys *symbolic.System) error
	}
	ConstraintsDefiner interface {
		OnDefineConstraints(sys *symbolic.System) error
	}
)

func (b *Base) ownHook(p Phase) Hook {
	switch p {
	case PhaseConnections:
		if d, ok := b.owner.(ConnectionsDefiner); ok {
			return func(Model, *symbolic.System) error { return d.OnDefineConnections() }
		}
	case PhaseObjects:
		if d, ok := b.owner.(ObjectsDefiner); ok {
			return func(_ Model, sys *symbolic.System) error { return d.OnDefineObjects(sys) }
		}
	case PhaseKinematics:
		if d, ok := b.owner.(KinematicsDefiner); ok {
			return func(_ Model, sys *symbolic.System) error { return d.OnDefineKinematics(sys) }
		}
	case PhaseLoads:
		if d, ok := b.owner.(LoadsDefiner); ok {
			return func(_ Model, sys *symbolic.System) error { return d.OnDefineLoads(sys) }
		}
	case PhaseConstraints:
		if d, ok := b.owner.(ConstraintsDefiner); ok {
			return func(_ Model, sys *symbolic.System) error { return d.OnDefineConstraints(sys) }
		}
	}
	return nil
}

// hooks orders BeforeOwner mixins newest first, the owner, then AfterOwner
// mixins in attach order.
func (b *Base) hooks(p Phase) []Hook {
	var out []Hook
	for i := len(b.mixins) - 1; i >= 0; i-- {
		if mx := b.mixins[i]; mx.Precedence == BeforeOwner && mx.hook(p) != nil {
			out = append(out, mx.hook(p))
		}
	}
	if h := b.ownHook(p); h != nil {
		out = append(out, h)
	}
	for _, mx := range b.mixins {
		if mx.Precedence == AfterOwner && mx.hook(p) != nil {
			out = append(out, mx.hook(p))
		}
	}
	return out
}

func (b *Base) runHooks(p Phase, sys *symbolic.System) error {
	for _, h := range b.hooks(p) {
		if err := h(b.owner, sys); err != nil {
			var ce *ComponentError
			if errors.As(err, &ce) {
				return err
			}
			return &ComponentError{Component: b.name, Phase: p, Wrapped: err}
		}
	}
	b.hooked.add(p)
	return nil
}

// DefineConnections runs the connections pre-phase: own hooks first, which may
// bind peers of owned connections, then peer validation for a connection,
// then sub-components and load groups.
func (b *Base) DefineConnections() error {
	return b.connections(true)
}

func (b *Base) connections(direct bool) error {
	const p = PhaseConnections
	if b.done.has(p) {
		if direct {
			return &ComponentError{Component: b.name, Phase: p, Wrapped: ErrUsage, Detail: "already defined"}
		}
		return nil
	}
	if b.running.has(p) {
		return &ComponentError{Component: b.name, Phase: p, Wrapped: ErrCycle}
	}
	b.running.add(p)
	defer b.running.remove(p)

	if err := b.runHooks(p, nil); err != nil {
		return err
	}
	if b.role == roleConnection {
		if err := b.validatePeers(); err != nil {
			return err
		}
	} else {
		for _, m := range b.Submodels() {
			if err := m.Core().connections(false); err != nil {
				return err
			}
		}
	}
	for _, g := range b.loadGroups {
		if err := g.Core().connections(false); err != nil {
			return err
		}
	}
	b.done.add(p)
	return nil
}

func (b *Base) validatePeers() error {
	seen := make(map[*Base]string)
	for _, r := range b.requirements {
		m, ok := b.slots[r.attribute]
		if !ok {
			if r.optional {
				continue
			}
			return &ComponentError{Component: b.name, Attribute: r.attribute, Phase: PhaseConnections, Wrapped: ErrConfiguration, Detail: "peer not bound"}
		}
		if prev, dup := seen[m.Core()]; dup {
			return &ComponentError{Component: b.name, Attribute: r.attribute, Phase: PhaseConnections, Wrapped: ErrConfiguration, Detail: m.Name() + " already fills " + prev}
		}
		seen[m.Core()] = r.attribute
		if !r.Accepts(m) {
			return &ComponentError{Component: b.name, Attribute: r.attribute, Phase: PhaseConnections, Wrapped: ErrConfiguration, Detail: m.Name() + " is not a " + r.typeName}
		}
	}
	return nil
}

func (b *Base) DefineObjects(sys *symbolic.System) error {
	return b.phase(PhaseObjects, sys, true)
}

func (b *Base) DefineKinematics(sys *symbolic.System) error {
	return b.phase(PhaseKinematics, sys, true)
}

func (b *Base) DefineLoads(sys *symbolic.System) error {
	return b.phase(PhaseLoads, sys, true)
}

func (b *Base) DefineConstraints(sys *symbolic.System) error {
	return b.phase(PhaseConstraints, sys, true)
}

// DefineAll runs every phase that has not run yet, in order.
func (b *Base) DefineAll(sys *symbolic.System) error {
	for _, p := range Phases {
		if b.done.has(p) {
			continue
		}
		var err error
		if p == PhaseConnections {
			err = b.connections(true)
		} else {
			err = b.phase(p, sys, true)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// RunPhase runs p the way a traversing parent would: a component that
// already completed p is skipped.
func (b *Base) RunPhase(p Phase, sys *symbolic.System) error {
	if p == PhaseConnections {
		return b.connections(false)
	}
	return b.phase(p, sys, false)
}

func (b *Base) usage(p Phase, detail string) error {
	return &ComponentError{Component: b.name, Phase: p, Wrapped: ErrUsage, Detail: detail}
}

func (b *Base) checkOrder(p Phase, sys *symbolic.System) error {
	if sys == nil {
		return b.usage(p, "no system")
	}
	if p != PhaseObjects && sys != b.sys {
		return b.usage(p, "system differs from the one objects were defined in")
	}
	switch p {
	case PhaseObjects:
		if !b.done.has(PhaseConnections) {
			return b.connections(false)
		}
	case PhaseKinematics:
		if !b.done.has(PhaseObjects) {
			return b.usage(p, "objects are not defined")
		}
	case PhaseLoads:
		if !b.done.has(PhaseKinematics) {
			return b.usage(p, "kinematics are not defined")
		}
		if b.done.has(PhaseConstraints) {
			return b.usage(p, "constraints are already defined")
		}
	case PhaseConstraints:
		if !b.done.has(PhaseKinematics) {
			return b.usage(p, "kinematics are not defined")
		}
	}
	return nil
}

func (b *Base) phase(p Phase, sys *symbolic.System, direct bool) error {
	if b.done.has(p) {
		if direct {
			return b.usage(p, "already defined")
		}
		return nil
	}
	if b.running.has(p) {
		return &ComponentError{Component: b.name, Phase: p, Wrapped: ErrCycle}
	}
	if err := b.checkOrder(p, sys); err != nil {
		return err
	}
	if b.role == roleLoadGroup && direct {
		if b.parent == nil {
			return b.usage(p, "load group is not attached")
		}
		if !b.parent.Core().hooked.has(p) {
			return b.usage(p, "parent "+b.parent.Name()+" has not defined "+p.String())
		}
	}
	b.running.add(p)
	defer b.running.remove(p)

	if p == PhaseObjects {
		b.sys = sys
		if err := b.checkRequired(); err != nil {
			return err
		}
	}

	subs := b.Submodels()
	if b.role == roleConnection {
		if err := b.checkPeers(p); err != nil {
			return err
		}
	} else {
		for _, m := range subs {
			if m.Core().role == roleConnection {
				continue
			}
			if err := m.Core().phase(p, sys, false); err != nil {
				return err
			}
		}
	}
	if err := b.runHooks(p, sys); err != nil {
		return err
	}
	if b.role != roleConnection {
		for _, m := range subs {
			if m.Core().role != roleConnection {
				continue
			}
			if err := m.Core().phase(p, sys, false); err != nil {
				return err
			}
		}
	}
	for _, g := range b.loadGroups {
		if err := g.Core().phase(p, sys, false); err != nil {
			return err
		}
	}
	b.done.add(p)
	return nil
}

func (b *Base) checkRequired() error {
	for _, r := range b.requirements {
		if _, ok := b.slots[r.attribute]; !ok && !r.optional {
			return &ComponentError{Component: b.name, Attribute: r.attribute, Phase: PhaseObjects, Wrapped: ErrMissingRequirement, Detail: "requires a " + r.typeName}
		}
	}
	return nil
}

// checkPeers makes sure connection peers got far enough: the same phase for
// objects and kinematics, kinematics for loads and constraints.
func (b *Base) checkPeers(p Phase) error {
	need := p
	if p == PhaseLoads || p == PhaseConstraints {
		need = PhaseKinematics
	}
	for _, r := range b.requirements {
		m, ok := b.slots[r.attribute]
		if !ok {
			continue
		}
		if !m.Core().done.has(need) {
			return &ComponentError{Component: b.name, Attribute: r.attribute, Phase: p, Wrapped: ErrUsage, Detail: "peer " + m.Name() + " has not defined " + need.String()}
		}
	}
	return nil
}
