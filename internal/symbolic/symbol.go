package symbolic

import "strings"

// Symbol is a named scalar. Dynamic symbols are functions of time and can be
// differentiated; static symbols are constants. Symbols are identified by name.
type Symbol struct {
	name    string
	dynamic bool
	order   int
}

// NewSymbol returns a constant symbol.
func NewSymbol(name string) Symbol {
	return Symbol{name: name}
}

// NewDynamicSymbol returns a time-dependent symbol.
func NewDynamicSymbol(name string) Symbol {
	return Symbol{name: name, dynamic: true}
}

func (s Symbol) Name() string    { return s.name }
func (s Symbol) IsDynamic() bool { return s.dynamic }

// Order is the number of time derivatives applied to the base symbol.
func (s Symbol) Order() int { return s.order }

// IsZero reports whether s is the zero Symbol value.
func (s Symbol) IsZero() bool { return s.name == "" }

// Derivative returns the time derivative of a dynamic symbol.
// The derivative of a static symbol is zero, so it has no Symbol form and
// Derivative returns the zero Symbol.
func (s Symbol) Derivative() Symbol {
	if !s.dynamic {
		return Symbol{}
	}
	return Symbol{name: s.name, dynamic: true, order: s.order + 1}
}

// Base strips all derivatives.
func (s Symbol) Base() Symbol {
	s.order = 0
	return s
}

func (s Symbol) String() string {
	return s.name + strings.Repeat("'", s.order)
}

// Expr lifts the symbol into an expression.
func (s Symbol) Expr() Expr {
	return Expr{terms: []term{newTerm(1, []factor{{a: symAtom(s), exp: 1}})}}
}
