package core

import (
	"fmt"

	"github.com/san-kum/brim/internal/symbolic"
)

// Model is anything built on a Base. Embedding *Base satisfies it.
type Model interface {
	Name() string
	Core() *Base
}

type role uint8

const (
	roleModel role = iota
	roleConnection
	roleLoadGroup
)

// Base carries the state shared by every component: requirements, bound
// slots, mixins, symbols, descriptions, load groups and lifecycle state.
type Base struct {
	owner        Model
	name         string
	role         role
	requirements []Requirement
	slots        map[string]Model
	mixins       []*Mixin

	symbols      map[string]symbolic.Symbol
	symbolKeys   []string
	descriptions map[symbolic.Symbol]string

	loadGroups []Model
	parent     Model
	parentKind Kind

	done    phaseSet
	hooked  phaseSet
	running phaseSet
	sys     *symbolic.System
}

func newBase(owner Model, name string, r role, reqs []Requirement) (*Base, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, &ComponentError{Component: name, Wrapped: ErrType, Detail: "no owner"}
	}
	return &Base{
		owner:        owner,
		name:         name,
		role:         r,
		requirements: MergeRequirements(reqs),
		slots:        make(map[string]Model),
		symbols:      make(map[string]symbolic.Symbol),
		descriptions: make(map[symbolic.Symbol]string),
	}, nil
}

// NewBase returns the base of a component. owner is the value embedding it;
// its phase hooks are found by interface assertion.
func NewBase(owner Model, name string, reqs ...Requirement) (*Base, error) {
	return newBase(owner, name, roleModel, reqs)
}

// NewConnectionBase returns the base of a connection whose requirements are
// the peers it links.
func NewConnectionBase(owner Model, name string, peers ...Requirement) (*Base, error) {
	return newBase(owner, name, roleConnection, peers)
}

// NewLoadGroupBase returns the base of a load group that can only be attached
// to parents of the given kind.
func NewLoadGroupBase(owner Model, name string, parentKind Kind, reqs ...Requirement) (*Base, error) {
	b, err := newBase(owner, name, roleLoadGroup, reqs)
	if err != nil {
		return nil, err
	}
	b.parentKind = parentKind
	return b, nil
}

func (b *Base) Name() string   { return b.name }
func (b *Base) Core() *Base    { return b }
func (b *Base) Owner() Model   { return b.owner }
func (b *Base) String() string { return b.name }

func (b *Base) IsConnection() bool { return b.role == roleConnection }
func (b *Base) IsLoadGroup() bool  { return b.role == roleLoadGroup }

func (b *Base) errorf(sentinel error, attr string, format string, args ...any) error {
	return &ComponentError{Component: b.name, Attribute: attr, Wrapped: sentinel, Detail: fmt.Sprintf(format, args...)}
}

func (b *Base) Requirements() []Requirement {
	return append([]Requirement(nil), b.requirements...)
}

func (b *Base) Requirement(attr string) (Requirement, bool) {
	for _, r := range b.requirements {
		if r.attribute == attr {
			return r, true
		}
	}
	return Requirement{}, false
}

// Bind places m in the slot attr after checking it against the requirement.
// Binding nil clears the slot. Slots are fixed once the objects phase starts.
func (b *Base) Bind(attr string, m Model) error {
	r, ok := b.Requirement(attr)
	if !ok {
		return b.errorf(ErrUnknownRequirement, attr, "no such requirement")
	}
	if b.done.has(PhaseObjects) || b.running.has(PhaseObjects) {
		return b.errorf(ErrUsage, attr, "cannot rebind after objects are defined")
	}
	if m == nil {
		delete(b.slots, attr)
		return nil
	}
	if m.Core() == b {
		return b.errorf(ErrCycle, attr, "cannot bind a component to itself")
	}
	if !r.Accepts(m) {
		return b.errorf(ErrType, attr, "%s is not a %s", m.Name(), r.typeName)
	}
	b.slots[attr] = m
	return nil
}

// Slot returns the component bound to attr, or nil.
func (b *Base) Slot(attr string) Model {
	return b.slots[attr]
}

// SlotAs returns the component bound to attr as a T.
func SlotAs[T any](b *Base, attr string) (T, error) {
	var zero T
	m, ok := b.slots[attr]
	if !ok {
		return zero, b.errorf(ErrMissingRequirement, attr, "not bound")
	}
	t, ok := m.(T)
	if !ok {
		return zero, b.errorf(ErrType, attr, "%s has type %T", m.Name(), m)
	}
	return t, nil
}

// Submodels returns the bound slots in requirement order.
func (b *Base) Submodels() []Model {
	out := make([]Model, 0, len(b.slots))
	for _, r := range b.requirements {
		if m, ok := b.slots[r.attribute]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Prefix is prepended to the names of the component's symbols.
func (b *Base) Prefix() string { return b.name }

// NewSymbol creates a constant symbol named <component>_<key> and describes it.
func (b *Base) NewSymbol(key, description string) symbolic.Symbol {
	return b.AddSymbol(key, symbolic.NewSymbol(b.Prefix()+"_"+key), description)
}

// NewDynamicSymbol creates a time-varying symbol named <component>_<key>.
func (b *Base) NewDynamicSymbol(key, description string) symbolic.Symbol {
	return b.AddSymbol(key, symbolic.NewDynamicSymbol(b.Prefix()+"_"+key), description)
}

// AddSymbol stores sym under key, replacing any earlier symbol with that key.
func (b *Base) AddSymbol(key string, sym symbolic.Symbol, description string) symbolic.Symbol {
	if _, ok := b.symbols[key]; !ok {
		b.symbolKeys = append(b.symbolKeys, key)
	}
	b.symbols[key] = sym
	if description != "" {
		b.descriptions[sym] = description
	}
	return sym
}

func (b *Base) Symbol(key string) (symbolic.Symbol, bool) {
	s, ok := b.symbols[key]
	return s, ok
}

// Symbols returns the component's own symbols in creation order.
func (b *Base) Symbols() []symbolic.Symbol {
	out := make([]symbolic.Symbol, len(b.symbolKeys))
	for i, k := range b.symbolKeys {
		out[i] = b.symbols[k]
	}
	return out
}

// Describe sets the description of a symbol this component owns.
func (b *Base) Describe(sym symbolic.Symbol, description string) {
	b.descriptions[sym] = description
}

// Description looks sym up in this component, then in bound slots in
// requirement order, then in attached load groups.
func (b *Base) Description(sym symbolic.Symbol) (string, bool) {
	return b.lookup(sym, make(map[*Base]bool))
}

func (b *Base) lookup(sym symbolic.Symbol, seen map[*Base]bool) (string, bool) {
	if seen[b] {
		return "", false
	}
	seen[b] = true
	if d, ok := b.descriptions[sym]; ok {
		return d, true
	}
	for _, m := range b.reachable() {
		if d, ok := m.Core().lookup(sym, seen); ok {
			return d, true
		}
	}
	return "", false
}

func (b *Base) reachable() []Model {
	return append(b.Submodels(), b.loadGroups...)
}

// AllDescriptions merges every description reachable from b. Entries found
// earlier in lookup order win.
func (b *Base) AllDescriptions() map[symbolic.Symbol]string {
	out := make(map[symbolic.Symbol]string)
	b.walk(make(map[*Base]bool), func(n *Base) {
		for s, d := range n.descriptions {
			if _, ok := out[s]; !ok {
				out[s] = d
			}
		}
	})
	return out
}

// AllSymbols collects the symbols of b and everything reachable from it.
func (b *Base) AllSymbols() []symbolic.Symbol {
	var out []symbolic.Symbol
	b.walk(make(map[*Base]bool), func(n *Base) {
		out = append(out, n.Symbols()...)
	})
	return out
}

func (b *Base) walk(seen map[*Base]bool, visit func(*Base)) {
	if seen[b] {
		return
	}
	seen[b] = true
	visit(b)
	for _, m := range b.reachable() {
		m.Core().walk(seen, visit)
	}
}

// AddLoadGroups attaches load groups before the objects phase. Each group
// must accept b's owner as its parent and have no other parent. Nothing is
// attached unless every group qualifies.
func (b *Base) AddLoadGroups(groups ...Model) error {
	if b.done.has(PhaseObjects) || b.running.has(PhaseObjects) {
		return b.errorf(ErrUsage, "", "cannot add load groups after objects are defined")
	}
	batch := make(map[*Base]bool, len(groups))
	for _, g := range groups {
		if g == nil {
			return b.errorf(ErrValue, "", "nil load group")
		}
		gb := g.Core()
		if gb.role != roleLoadGroup {
			return b.errorf(ErrType, "", "%s is not a load group", g.Name())
		}
		if !gb.parentKind.Matches(b.owner) {
			return b.errorf(ErrType, "", "load group %s requires a %s parent", g.Name(), gb.parentKind.name)
		}
		if gb.parent != nil {
			return b.errorf(ErrValue, "", "load group %s is already attached to %s", g.Name(), gb.parent.Name())
		}
		if batch[gb] {
			return b.errorf(ErrValue, "", "load group %s is listed twice", g.Name())
		}
		batch[gb] = true
	}
	for _, g := range groups {
		g.Core().parent = b.owner
		b.loadGroups = append(b.loadGroups, g)
	}
	return nil
}

func (b *Base) LoadGroups() []Model { return append([]Model(nil), b.loadGroups...) }

// Parent is the component a load group is attached to.
func (b *Base) Parent() Model { return b.parent }

// ParentKind is the kind of parent a load group accepts. It matches nothing
// for other components.
func (b *Base) ParentKind() Kind { return b.parentKind }

// AddMixin attaches a *Mixin (or Mixin) before the objects phase. The
// mixin's requirements come first; attributes the component already declares
// keep their current descriptor.
func (b *Base) AddMixin(fragment any) error {
	var mx *Mixin
	switch f := fragment.(type) {
	case *Mixin:
		mx = f
	case Mixin:
		mx = &f
	default:
		return b.errorf(ErrInvalidMixin, "", "%T is not a capability fragment", fragment)
	}
	if mx == nil || mx.Capability == nil {
		return b.errorf(ErrInvalidMixin, "", "mixin carries no capability")
	}
	if b.done.has(PhaseObjects) || b.running.has(PhaseObjects) {
		return b.errorf(ErrUsage, "", "cannot add mixin %s after objects are defined", mx.Name)
	}
	if b.HasCapability(mx.Capability) {
		return b.errorf(ErrInvalidMixin, "", "capability %s already attached", mx.Capability)
	}
	b.requirements = MergeRequirements(mx.Requirements, b.requirements)
	b.mixins = append(b.mixins, mx)
	return nil
}

func (b *Base) Mixins() []*Mixin { return append([]*Mixin(nil), b.mixins...) }

func (b *Base) HasCapability(c *Capability) bool {
	for _, mx := range b.mixins {
		if mx.Capability == c {
			return true
		}
	}
	return false
}

// Done reports whether phase p completed.
func (b *Base) Done(p Phase) bool { return b.done.has(p) }

// State is the latest completed phase.
func (b *Base) State() Phase {
	state := PhaseUninitialized
	for _, p := range Phases {
		if b.done.has(p) {
			state = p
		}
	}
	return state
}

// System returns the accumulator once kinematics are defined.
func (b *Base) System() (*symbolic.System, error) {
	if !b.done.has(PhaseKinematics) {
		return nil, b.errorf(ErrUsage, "", "system is available after kinematics, state is %s", b.State())
	}
	return b.sys, nil
}
