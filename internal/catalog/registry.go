// Package catalog maps component kinds to their constructors so models can
// be described by name.
package catalog

import (
	"fmt"
	"sort"

	"github.com/san-kum/brim/internal/bicycle"
	"github.com/san-kum/brim/internal/bicyclerider"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/rider"
)

// Spec is everything needed to construct one component.
type Spec struct {
	Name        string
	Formulation string
	Options     map[string]string
}

type componentCtor func(Spec) (core.Model, error)

type Registry struct {
	components   map[string]componentCtor
	formulations map[string]func() []string
	loadGroups   map[string]func(name string) (core.Model, error)
	mixins       map[string]func() *core.Mixin
}

func NewRegistry() *Registry {
	r := &Registry{
		components:   make(map[string]componentCtor),
		formulations: make(map[string]func() []string),
		loadGroups:   make(map[string]func(string) (core.Model, error)),
		mixins:       make(map[string]func() *core.Mixin),
	}

	r.components["flat_ground"] = func(s Spec) (core.Model, error) {
		return bicycle.NewFlatGround(s.Name, s.Options["normal"])
	}
	r.components["knife_edge_wheel"] = plain(func(name string) (core.Model, error) { return bicycle.NewKnifeEdgeWheel(name) })
	r.components["non_holonomic_tire"] = plain(func(name string) (core.Model, error) { return bicycle.NewNonHolonomicTire(name) })
	r.components["rolling_disc"] = plain(func(name string) (core.Model, error) { return bicycle.NewRollingDisc(name) })
	r.components["stationary_bicycle"] = plain(func(name string) (core.Model, error) { return bicycle.NewStationaryBicycle(name) })
	r.components["rider"] = plain(func(name string) (core.Model, error) { return rider.NewRider(name) })
	r.components["side_lean_seat"] = plain(func(name string) (core.Model, error) { return bicyclerider.NewSideLeanSeat(name) })
	r.components["bicycle_rider"] = plain(func(name string) (core.Model, error) { return bicyclerider.NewBicycleRider(name) })

	r.components["rear_frame"] = func(s Spec) (core.Model, error) {
		return bicycle.NewRearFrame(s.Name, s.Formulation)
	}
	r.formulations["rear_frame"] = bicycle.RearFrames.Formulations
	r.components["pelvis"] = func(s Spec) (core.Model, error) {
		return rider.NewPelvis(s.Name, s.Formulation)
	}
	r.formulations["pelvis"] = rider.Pelvises.Formulations

	r.loadGroups["wheel_torque"] = func(name string) (core.Model, error) { return bicycle.NewWheelTorque(name) }
	r.loadGroups["side_lean_seat_torque"] = func(name string) (core.Model, error) { return bicyclerider.NewSideLeanSeatTorque(name) }
	r.loadGroups["side_lean_seat_spring_damper"] = func(name string) (core.Model, error) {
		return bicyclerider.NewSideLeanSeatSpringDamper(name)
	}

	r.mixins["normal_force"] = bicycle.NormalForce

	return r
}

// plain wraps constructors of kinds without formulations.
func plain(ctor func(name string) (core.Model, error)) componentCtor {
	return func(s Spec) (core.Model, error) {
		if s.Formulation != "" {
			return nil, &core.ComponentError{Component: s.Name, Wrapped: core.ErrNotImplemented, Detail: fmt.Sprintf("formulation %q", s.Formulation)}
		}
		return ctor(s.Name)
	}
}

func (r *Registry) GetComponent(kind string, spec Spec) (core.Model, error) {
	fn, ok := r.components[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind: %s", kind)
	}
	m, err := fn(spec)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Registry) GetLoadGroup(kind, name string) (core.Model, error) {
	fn, ok := r.loadGroups[kind]
	if !ok {
		return nil, fmt.Errorf("unknown load group: %s", kind)
	}
	m, err := fn(name)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Registry) GetMixin(kind string) (*core.Mixin, error) {
	fn, ok := r.mixins[kind]
	if !ok {
		return nil, fmt.Errorf("unknown mixin: %s", kind)
	}
	return fn(), nil
}

// Satisfying lists the kinds whose default construction r accepts. Each kind
// is built once under its own name; kinds that fail to build are skipped.
func (r *Registry) Satisfying(req core.Requirement) []string {
	var out []string
	for _, kind := range r.ListKinds() {
		m, err := r.components[kind](Spec{Name: kind})
		if err != nil {
			continue
		}
		if req.Accepts(m) {
			out = append(out, kind)
		}
	}
	return out
}

// SatisfyingSlot lists the kinds that can fill the slot attr of m.
func (r *Registry) SatisfyingSlot(m core.Model, attr string) ([]string, error) {
	req, ok := m.Core().Requirement(attr)
	if !ok {
		return nil, &core.ComponentError{Component: m.Name(), Attribute: attr, Wrapped: core.ErrUnknownRequirement}
	}
	return r.Satisfying(req), nil
}

// LoadGroupsFor lists the load group kinds that accept m as their parent.
func (r *Registry) LoadGroupsFor(m core.Model) []string {
	var out []string
	for _, kind := range r.ListLoadGroups() {
		g, err := r.loadGroups[kind](kind)
		if err != nil {
			continue
		}
		if g.Core().ParentKind().Matches(m) {
			out = append(out, kind)
		}
	}
	return out
}

// Formulations lists the formulations of kind, nil for kinds without any.
func (r *Registry) Formulations(kind string) []string {
	fn, ok := r.formulations[kind]
	if !ok {
		return nil
	}
	return fn()
}

func (r *Registry) ListKinds() []string      { return sortedKeys(r.components) }
func (r *Registry) ListLoadGroups() []string { return sortedKeys(r.loadGroups) }
func (r *Registry) ListMixins() []string     { return sortedKeys(r.mixins) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
