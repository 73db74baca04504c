// Package assembly resolves the global order of a set of components and
// drives them through the lifecycle against one system.
package assembly

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lvcore "github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

// Observer is told each time a component finished a phase under the assembly.
type Observer func(p core.Phase, component string)

type Option func(*Assembly)

func WithObserver(fn Observer) Option {
	return func(a *Assembly) { a.observe = fn }
}

// Assembly is the composite root. Models and top-level connections are added
// before the objects phase; phases then run over every component once, in
// dependency order.
type Assembly struct {
	name    string
	sys     *symbolic.System
	models  []core.Model
	conns   []core.Model
	done    map[core.Phase]bool
	observe Observer
}

// New creates an assembly with the inertial frame <name>_inertial_frame and
// the fixed point <name>_origin.
func New(name string, opts ...Option) (*Assembly, error) {
	if err := core.ValidateName(name); err != nil {
		return nil, err
	}
	sys := symbolic.NewSystem(symbolic.NewFrame(name+"_inertial_frame"), symbolic.NewPoint(name+"_origin"))
	return NewWithSystem(name, sys, opts...)
}

// NewWithSystem creates an assembly accumulating into sys.
func NewWithSystem(name string, sys *symbolic.System, opts ...Option) (*Assembly, error) {
	if err := core.ValidateName(name); err != nil {
		return nil, err
	}
	a := &Assembly{name: name, sys: sys, done: make(map[core.Phase]bool)}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Assembly) Name() string { return a.name }

func (a *Assembly) errorf(sentinel error, p core.Phase, detail string) error {
	return &core.ComponentError{Component: a.name, Phase: p, Wrapped: sentinel, Detail: detail}
}

func (a *Assembly) started() bool {
	return a.done[core.PhaseObjects] || a.done[core.PhaseKinematics]
}

func (a *Assembly) has(m core.Model) bool {
	for _, x := range append(a.models, a.conns...) {
		if x.Core() == m.Core() {
			return true
		}
	}
	return false
}

// Add registers root models.
func (a *Assembly) Add(models ...core.Model) error {
	return a.add(&a.models, false, models)
}

// Connect registers connections that no model owns.
func (a *Assembly) Connect(conns ...core.Model) error {
	return a.add(&a.conns, true, conns)
}

// add checks the whole batch before registering any of it.
func (a *Assembly) add(dst *[]core.Model, connection bool, ms []core.Model) error {
	if a.started() {
		return a.errorf(core.ErrUsage, core.PhaseObjects, "cannot add components after objects are defined")
	}
	batch := make(map[*core.Base]bool, len(ms))
	for _, m := range ms {
		if m == nil || m.Core() == nil {
			return a.errorf(core.ErrValue, core.PhaseUninitialized, "nil component")
		}
		if m.Core().IsConnection() != connection {
			if connection {
				return a.errorf(core.ErrType, core.PhaseUninitialized, m.Name()+" is not a connection")
			}
			return a.errorf(core.ErrType, core.PhaseUninitialized, m.Name()+" is a connection, use Connect")
		}
		if a.has(m) || batch[m.Core()] {
			return a.errorf(core.ErrValue, core.PhaseUninitialized, m.Name()+" is already added")
		}
		batch[m.Core()] = true
	}
	*dst = append(*dst, ms...)
	return nil
}

// Order lists every component reachable from the roots so that a component
// comes after its non-connection slots and a connection after its peers and
// its owner. Shared components appear once.
func (a *Assembly) Order() ([]core.Model, error) {
	g, byID, err := a.graph()
	if err != nil {
		return nil, err
	}
	sorted, err := dfs.TopologicalSort(g)
	if errors.Is(err, dfs.ErrCycleDetected) {
		return nil, cycleError(g, byID)
	}
	if err != nil {
		return nil, err
	}
	// Edges point from a component to what it depends on.
	out := make([]core.Model, len(sorted))
	for i, id := range sorted {
		out[len(sorted)-1-i] = byID[id]
	}
	return out, nil
}

// graph numbers the components in discovery order, roots first, and links
// each one to the components it depends on.
func (a *Assembly) graph() (*lvcore.Graph, map[string]core.Model, error) {
	g := lvcore.NewGraph(lvcore.WithDirected(true))
	ids := make(map[*core.Base]string)
	byID := make(map[string]core.Model)

	var discover func(m core.Model) (string, error)
	discover = func(m core.Model) (string, error) {
		b := m.Core()
		if id, ok := ids[b]; ok {
			return id, nil
		}
		id := fmt.Sprintf("%06d", len(ids))
		ids[b] = id
		byID[id] = m
		if err := g.AddVertex(id); err != nil {
			return "", err
		}
		for _, s := range b.Submodels() {
			sid, err := discover(s)
			if err != nil {
				return "", err
			}
			from, to := id, sid
			if !b.IsConnection() && s.Core().IsConnection() {
				from, to = sid, id
			}
			if g.HasEdge(from, to) {
				continue
			}
			if _, err := g.AddEdge(from, to, 0); err != nil {
				return "", err
			}
		}
		return id, nil
	}

	for _, m := range append(append([]core.Model(nil), a.models...), a.conns...) {
		if _, err := discover(m); err != nil {
			return nil, nil, err
		}
	}
	return g, byID, nil
}

func cycleError(g *lvcore.Graph, byID map[string]core.Model) error {
	found, cycles, err := dfs.DetectCycles(g)
	if err != nil || !found {
		return &core.ComponentError{Wrapped: core.ErrCycle, Detail: "components depend on each other"}
	}
	ids := cycles[0][:len(cycles[0])-1]
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = byID[id].Name()
	}
	return &core.ComponentError{Component: names[0], Wrapped: core.ErrCycle, Detail: "cycle through " + strings.Join(names, ", ")}
}

// Components lists the ordered components, each followed by its load groups.
func (a *Assembly) Components() ([]core.Model, error) {
	order, err := a.Order()
	if err != nil {
		return nil, err
	}
	var out []core.Model
	var withGroups func(m core.Model)
	withGroups = func(m core.Model) {
		out = append(out, m)
		for _, g := range m.Core().LoadGroups() {
			withGroups(g)
		}
	}
	for _, m := range order {
		withGroups(m)
	}
	return out, nil
}

func (a *Assembly) check(p core.Phase) error {
	if a.done[p] {
		return a.errorf(core.ErrUsage, p, "already defined")
	}
	switch p {
	case core.PhaseKinematics:
		if !a.done[core.PhaseObjects] {
			return a.errorf(core.ErrUsage, p, "objects are not defined")
		}
	case core.PhaseLoads:
		if !a.done[core.PhaseKinematics] {
			return a.errorf(core.ErrUsage, p, "kinematics are not defined")
		}
		if a.done[core.PhaseConstraints] {
			return a.errorf(core.ErrUsage, p, "constraints are already defined")
		}
	case core.PhaseConstraints:
		if !a.done[core.PhaseKinematics] {
			return a.errorf(core.ErrUsage, p, "kinematics are not defined")
		}
	}
	return nil
}

func (a *Assembly) run(p core.Phase) error {
	if err := a.check(p); err != nil {
		return err
	}
	if p == core.PhaseObjects && !a.done[core.PhaseConnections] {
		if err := a.run(core.PhaseConnections); err != nil {
			return err
		}
	}
	// Connections run from the roots down; owners bind peers on the way.
	order := append(append([]core.Model(nil), a.models...), a.conns...)
	if p != core.PhaseConnections {
		var err error
		if order, err = a.Order(); err != nil {
			return err
		}
	}
	for _, m := range order {
		if err := m.Core().RunPhase(p, a.sys); err != nil {
			return err
		}
		if a.observe != nil {
			a.observe(p, m.Name())
		}
	}
	a.done[p] = true
	return nil
}

func (a *Assembly) DefineConnections() error { return a.run(core.PhaseConnections) }
func (a *Assembly) DefineObjects() error     { return a.run(core.PhaseObjects) }
func (a *Assembly) DefineKinematics() error  { return a.run(core.PhaseKinematics) }
func (a *Assembly) DefineLoads() error       { return a.run(core.PhaseLoads) }
func (a *Assembly) DefineConstraints() error { return a.run(core.PhaseConstraints) }

// DefineAll runs every phase that has not run yet.
func (a *Assembly) DefineAll() error {
	for _, p := range core.Phases {
		if a.done[p] {
			continue
		}
		if err := a.run(p); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembly) Done(p core.Phase) bool { return a.done[p] }

// System returns the accumulator once kinematics are defined.
func (a *Assembly) System() (*symbolic.System, error) {
	if !a.done[core.PhaseKinematics] {
		return nil, a.errorf(core.ErrUsage, core.PhaseKinematics, "system is available after kinematics")
	}
	return a.sys, nil
}

// Description looks sym up in the roots, then in top-level connections.
func (a *Assembly) Description(sym symbolic.Symbol) (string, bool) {
	for _, m := range append(append([]core.Model(nil), a.models...), a.conns...) {
		if d, ok := m.Core().Description(sym); ok {
			return d, true
		}
	}
	return "", false
}

// Entry is one row of the description table.
type Entry struct {
	Symbol      symbolic.Symbol
	Description string
	Owner       string
}

// Descriptions lists every symbol created by a component, sorted by name.
func (a *Assembly) Descriptions() ([]Entry, error) {
	comps, err := a.Components()
	if err != nil {
		return nil, err
	}
	seen := make(map[symbolic.Symbol]bool)
	var out []Entry
	for _, m := range comps {
		for _, s := range m.Core().Symbols() {
			if seen[s] {
				continue
			}
			seen[s] = true
			d, _ := m.Core().Description(s)
			out = append(out, Entry{Symbol: s, Description: d, Owner: m.Name()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol.Name() < out[j].Symbol.Name() })
	return out, nil
}
