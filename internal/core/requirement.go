package core

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is a capability type a requirement accepts.
type Kind struct {
	name  string
	match func(Model) bool
}

// KindOf accepts components whose dynamic type implements or is T.
func KindOf[T any]() Kind {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return Kind{name: name, match: func(m Model) bool {
		_, ok := m.(T)
		return ok
	}}
}

// CapabilityKind accepts components carrying the capability, whatever their type.
func CapabilityKind(c *Capability) Kind {
	return Kind{name: c.name, match: func(m Model) bool { return HasCapability(m, c) }}
}

func (k Kind) Name() string { return k.name }

func (k Kind) Matches(m Model) bool {
	return m != nil && k.match != nil && k.match(m)
}

// Requirement declares a slot for a sub-component or connection peer.
type Requirement struct {
	attribute   string
	kinds       []Kind
	description string
	fullName    string
	typeName    string
	optional    bool
}

type RequirementOption func(*Requirement)

// Optional lets the slot stay unbound through every phase.
func Optional() RequirementOption {
	return func(r *Requirement) { r.optional = true }
}

func WithFullName(name string) RequirementOption {
	return func(r *Requirement) { r.fullName = name }
}

func WithTypeName(name string) RequirementOption {
	return func(r *Requirement) { r.typeName = name }
}

// NewRequirement builds a requirement accepting any of kinds. The attribute
// must be an identifier.
func NewRequirement(attribute string, kinds []Kind, description string, opts ...RequirementOption) (Requirement, error) {
	if !isIdentifier(attribute) {
		return Requirement{}, fmt.Errorf("%w: attribute %q is not an identifier", ErrValue, attribute)
	}
	if len(kinds) == 0 {
		return Requirement{}, fmt.Errorf("%w: requirement %q accepts no kind", ErrType, attribute)
	}
	r := Requirement{
		attribute:   attribute,
		kinds:       append([]Kind(nil), kinds...),
		description: description,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.fullName == "" {
		r.fullName = capitalize(strings.ReplaceAll(attribute, "_", " "))
	}
	if r.typeName == "" {
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.name
		}
		r.typeName = strings.Join(names, " or ")
	}
	return r, nil
}

// Require is NewRequirement for a single Go type. It panics on an invalid
// attribute and is meant for package-level requirement tables.
func Require[T any](attribute, description string, opts ...RequirementOption) Requirement {
	r, err := NewRequirement(attribute, []Kind{KindOf[T]()}, description, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func (r Requirement) Attribute() string   { return r.attribute }
func (r Requirement) Kinds() []Kind       { return append([]Kind(nil), r.kinds...) }
func (r Requirement) Description() string { return r.description }
func (r Requirement) FullName() string    { return r.fullName }
func (r Requirement) TypeName() string    { return r.typeName }
func (r Requirement) IsOptional() bool    { return r.optional }

// Accepts reports whether m satisfies one of the requirement's kinds.
func (r Requirement) Accepts(m Model) bool {
	for _, k := range r.kinds {
		if k.Matches(m) {
			return true
		}
	}
	return false
}

// MergeRequirements folds lists by attribute. A later declaration of an
// attribute replaces the earlier one in place; new attributes are appended.
// The inputs are not modified.
func MergeRequirements(lists ...[]Requirement) []Requirement {
	var out []Requirement
	idx := make(map[string]int)
	for _, l := range lists {
		for _, r := range l {
			if i, ok := idx[r.attribute]; ok {
				out[i] = r
				continue
			}
			idx[r.attribute] = len(out)
			out = append(out, r)
		}
	}
	return out
}
