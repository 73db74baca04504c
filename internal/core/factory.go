package core

import (
	"fmt"
	"sort"
)

// Factory maps formulation selectors of a component family to constructors.
type Factory[T Model] struct {
	family string
	def    string
	ctors  map[string]func(name string) (T, error)
}

// NewFactory returns an empty factory. An empty selector passed to New picks
// defaultFormulation.
func NewFactory[T Model](family, defaultFormulation string) *Factory[T] {
	return &Factory[T]{family: family, def: defaultFormulation, ctors: make(map[string]func(string) (T, error))}
}

// Register adds a formulation. Registering a selector twice panics.
func (f *Factory[T]) Register(formulation string, ctor func(name string) (T, error)) {
	if _, dup := f.ctors[formulation]; dup {
		panic(fmt.Sprintf("core: %s formulation %q registered twice", f.family, formulation))
	}
	f.ctors[formulation] = ctor
}

// New constructs the named formulation.
func (f *Factory[T]) New(name, formulation string) (T, error) {
	if formulation == "" {
		formulation = f.def
	}
	ctor, ok := f.ctors[formulation]
	if !ok {
		var zero T
		return zero, &ComponentError{Component: name, Wrapped: ErrNotImplemented, Detail: fmt.Sprintf("%s formulation %q", f.family, formulation)}
	}
	return ctor(name)
}

func (f *Factory[T]) Family() string  { return f.family }
func (f *Factory[T]) Default() string { return f.def }

// Formulations lists the registered selectors in sorted order.
func (f *Factory[T]) Formulations() []string {
	out := make([]string, 0, len(f.ctors))
	for k := range f.ctors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
