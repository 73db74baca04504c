package symbolic

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// coefficients smaller than this after combination are treated as cancelled
const cancelTol = 1e-12

type atomKind uint8

const (
	atomSym atomKind = iota
	atomSin
	atomCos
	atomSqrt
	atomGroup
	atomInfinity
)

type atom struct {
	kind atomKind
	sym  Symbol
	arg  Expr
	key  string
}

type factor struct {
	a   atom
	exp int
}

type term struct {
	coeff   float64
	factors []factor
	key     string
}

// Expr is an immutable sum of terms. Each term is a float coefficient times a
// product of integer powers of symbols, sin, cos, sqrt and parenthesized sums.
// Like terms are combined on construction, so exact cancellation yields zero.
// The zero value is the expression 0.
type Expr struct {
	terms []term
}

func symAtom(s Symbol) atom {
	return atom{kind: atomSym, sym: s, key: s.String()}
}

func fnAtom(k atomKind, arg Expr) atom {
	return atom{kind: k, arg: arg, key: k.name() + "(" + arg.key() + ")"}
}

func (k atomKind) name() string {
	switch k {
	case atomSin:
		return "sin"
	case atomCos:
		return "cos"
	case atomSqrt:
		return "sqrt"
	case atomInfinity:
		return "zoo"
	default:
		return ""
	}
}

func newTerm(coeff float64, fs []factor) term {
	merged := make(map[string]factor, len(fs))
	for _, f := range fs {
		if g, ok := merged[f.a.key]; ok {
			g.exp += f.exp
			merged[f.a.key] = g
			continue
		}
		merged[f.a.key] = f
	}
	out := make([]factor, 0, len(merged))
	for _, f := range merged {
		if f.exp != 0 {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].a.key < out[j].a.key })
	parts := make([]string, len(out))
	for i, f := range out {
		parts[i] = f.a.key + "^" + strconv.Itoa(f.exp)
	}
	return term{coeff: coeff, factors: out, key: strings.Join(parts, "*")}
}

func collect(ts []term) Expr {
	for _, t := range ts {
		if t.infinite() {
			return ComplexInfinity()
		}
	}
	idx := make(map[string]int, len(ts))
	out := make([]term, 0, len(ts))
	for _, t := range ts {
		if i, ok := idx[t.key]; ok {
			out[i].coeff += t.coeff
			continue
		}
		idx[t.key] = len(out)
		out = append(out, t)
	}
	kept := out[:0]
	for _, t := range out {
		if math.Abs(t.coeff) >= cancelTol {
			kept = append(kept, t)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].key < kept[j].key })
	return Expr{terms: kept}
}

func (t term) infinite() bool {
	for _, f := range t.factors {
		if f.a.kind == atomInfinity {
			return true
		}
	}
	return false
}

func (e Expr) key() string {
	parts := make([]string, len(e.terms))
	for i, t := range e.terms {
		parts[i] = formatCoeff(t.coeff) + "*" + t.key
	}
	return strings.Join(parts, "+")
}

// Const returns a numeric constant.
func Const(c float64) Expr {
	if math.Abs(c) < cancelTol {
		return Expr{}
	}
	return Expr{terms: []term{newTerm(c, nil)}}
}

func Zero() Expr { return Expr{} }
func One() Expr  { return Const(1) }

func (e Expr) IsZero() bool { return len(e.terms) == 0 }

var infinity = atom{kind: atomInfinity, key: "zoo"}

// ComplexInfinity is the undefined result of dividing by zero. It absorbs
// every expression it is combined with, and its inverse is zero.
func ComplexInfinity() Expr {
	return Expr{terms: []term{newTerm(1, []factor{{a: infinity, exp: 1}})}}
}

// IsInfinite reports whether e is ComplexInfinity.
func (e Expr) IsInfinite() bool {
	return len(e.terms) == 1 && e.terms[0].infinite()
}

// IsConst reports whether e is a plain number and returns it.
func (e Expr) IsConst() (float64, bool) {
	switch {
	case len(e.terms) == 0:
		return 0, true
	case len(e.terms) == 1 && len(e.terms[0].factors) == 0:
		return e.terms[0].coeff, true
	}
	return 0, false
}

// AsSymbol reports whether e is exactly one symbol.
func (e Expr) AsSymbol() (Symbol, bool) {
	if len(e.terms) != 1 {
		return Symbol{}, false
	}
	t := e.terms[0]
	if t.coeff != 1 || len(t.factors) != 1 || t.factors[0].exp != 1 || t.factors[0].a.kind != atomSym {
		return Symbol{}, false
	}
	return t.factors[0].a.sym, true
}

func (e Expr) Add(o Expr) Expr {
	ts := make([]term, 0, len(e.terms)+len(o.terms))
	ts = append(ts, e.terms...)
	ts = append(ts, o.terms...)
	return collect(ts)
}

func (e Expr) Sub(o Expr) Expr { return e.Add(o.Neg()) }
func (e Expr) Neg() Expr       { return e.Scale(-1) }

func (e Expr) Scale(c float64) Expr {
	ts := make([]term, len(e.terms))
	for i, t := range e.terms {
		ts[i] = term{coeff: t.coeff * c, factors: t.factors, key: t.key}
	}
	return collect(ts)
}

func (e Expr) Mul(o Expr) Expr {
	ts := make([]term, 0, len(e.terms)*len(o.terms))
	for _, a := range e.terms {
		for _, b := range o.terms {
			fs := make([]factor, 0, len(a.factors)+len(b.factors))
			fs = append(fs, a.factors...)
			fs = append(fs, b.factors...)
			ts = append(ts, newTerm(a.coeff*b.coeff, fs))
		}
	}
	return collect(ts)
}

// Pow raises e to an integer power. A negative power of a sum is kept as a
// parenthesized factor. A negative power of zero is ComplexInfinity.
func (e Expr) Pow(n int) Expr {
	switch {
	case n == 0:
		return One()
	case e.IsInfinite() && n < 0:
		return Expr{}
	case e.IsInfinite():
		return e
	case n > 0:
		out := e
		for i := 1; i < n; i++ {
			out = out.Mul(e)
		}
		return out
	}
	if e.IsZero() {
		return ComplexInfinity()
	}
	if len(e.terms) == 1 {
		t := e.terms[0]
		fs := make([]factor, len(t.factors))
		for i, f := range t.factors {
			fs[i] = factor{a: f.a, exp: f.exp * n}
		}
		return collect([]term{newTerm(math.Pow(t.coeff, float64(n)), fs)})
	}
	return Expr{terms: []term{newTerm(1, []factor{{a: fnAtom(atomGroup, e), exp: n}})}}
}

// Inv is Pow(-1).
func (e Expr) Inv() Expr { return e.Pow(-1) }

// Div multiplies by the inverse of o.
func (e Expr) Div(o Expr) Expr { return e.Mul(o.Inv()) }

func leadingNegative(e Expr) bool {
	return len(e.terms) > 0 && e.terms[0].coeff < 0
}

func Sin(e Expr) Expr {
	if e.IsInfinite() {
		return e
	}
	if c, ok := e.IsConst(); ok {
		return Const(math.Sin(c))
	}
	if leadingNegative(e) {
		return Sin(e.Neg()).Neg()
	}
	return atomExpr(fnAtom(atomSin, e))
}

func Cos(e Expr) Expr {
	if e.IsInfinite() {
		return e
	}
	if c, ok := e.IsConst(); ok {
		return Const(math.Cos(c))
	}
	if leadingNegative(e) {
		e = e.Neg()
	}
	return atomExpr(fnAtom(atomCos, e))
}

// Sqrt simplifies constants and single terms with even powers.
func Sqrt(e Expr) Expr {
	if e.IsInfinite() {
		return e
	}
	if c, ok := e.IsConst(); ok && c >= 0 {
		return Const(math.Sqrt(c))
	}
	if len(e.terms) == 1 && e.terms[0].coeff > 0 {
		t := e.terms[0]
		even := true
		for _, f := range t.factors {
			if f.exp%2 != 0 {
				even = false
				break
			}
		}
		if even {
			fs := make([]factor, len(t.factors))
			for i, f := range t.factors {
				fs[i] = factor{a: f.a, exp: f.exp / 2}
			}
			return collect([]term{newTerm(math.Sqrt(t.coeff), fs)})
		}
	}
	return atomExpr(fnAtom(atomSqrt, e))
}

func atomExpr(a atom) Expr {
	return Expr{terms: []term{newTerm(1, []factor{{a: a, exp: 1}})}}
}

func (a atom) diff() Expr {
	switch a.kind {
	case atomSym:
		if !a.sym.dynamic {
			return Expr{}
		}
		return a.sym.Derivative().Expr()
	case atomSin:
		return Cos(a.arg).Mul(a.arg.Diff())
	case atomCos:
		return Sin(a.arg).Mul(a.arg.Diff()).Neg()
	case atomSqrt:
		return a.arg.Diff().Scale(0.5).Mul(atomExpr(a).Inv())
	case atomInfinity:
		return Expr{}
	default:
		return a.arg.Diff()
	}
}

// Diff returns the time derivative. Static symbols differentiate to zero.
func (e Expr) Diff() Expr {
	var ts []term
	for _, t := range e.terms {
		for i, f := range t.factors {
			d := f.a.diff()
			if d.IsZero() {
				continue
			}
			fs := make([]factor, len(t.factors))
			copy(fs, t.factors)
			fs[i] = factor{a: f.a, exp: f.exp - 1}
			rest := Expr{terms: []term{newTerm(t.coeff*float64(f.exp), fs)}}
			ts = append(ts, rest.Mul(d).terms...)
		}
	}
	return collect(ts)
}

func (a atom) subs(m map[Symbol]Expr) Expr {
	switch a.kind {
	case atomSym:
		if v, ok := m[a.sym]; ok {
			return v
		}
		return atomExpr(a)
	case atomSin:
		return Sin(a.arg.Subs(m))
	case atomCos:
		return Cos(a.arg.Subs(m))
	case atomSqrt:
		return Sqrt(a.arg.Subs(m))
	case atomInfinity:
		return ComplexInfinity()
	default:
		return a.arg.Subs(m)
	}
}

// Subs replaces symbols by expressions.
func (e Expr) Subs(m map[Symbol]Expr) Expr {
	if len(m) == 0 {
		return e
	}
	out := Expr{}
	for _, t := range e.terms {
		p := Const(t.coeff)
		for _, f := range t.factors {
			p = p.Mul(f.a.subs(m).Pow(f.exp))
		}
		out = out.Add(p)
	}
	return out
}

func (a atom) eval(vals map[Symbol]float64) (float64, error) {
	if a.kind == atomSym {
		v, ok := vals[a.sym]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnboundSymbol, a.sym)
		}
		return v, nil
	}
	if a.kind == atomInfinity {
		return 0, ErrUndefined
	}
	x, err := a.arg.Eval(vals)
	if err != nil {
		return 0, err
	}
	switch a.kind {
	case atomSin:
		return math.Sin(x), nil
	case atomCos:
		return math.Cos(x), nil
	case atomSqrt:
		return math.Sqrt(x), nil
	default:
		return x, nil
	}
}

// Eval computes a numeric value. Every symbol in e needs a value.
func (e Expr) Eval(vals map[Symbol]float64) (float64, error) {
	var sum float64
	for _, t := range e.terms {
		p := t.coeff
		for _, f := range t.factors {
			x, err := f.a.eval(vals)
			if err != nil {
				return 0, err
			}
			p *= math.Pow(x, float64(f.exp))
		}
		sum += p
	}
	return sum, nil
}

// Symbols lists the distinct symbols in e, including those inside functions.
func (e Expr) Symbols() []Symbol {
	seen := make(map[Symbol]bool)
	var out []Symbol
	var walk func(Expr)
	walk = func(x Expr) {
		for _, t := range x.terms {
			for _, f := range t.factors {
				if f.a.kind == atomSym {
					if !seen[f.a.sym] {
						seen[f.a.sym] = true
						out = append(out, f.a.sym)
					}
					continue
				}
				walk(f.a.arg)
			}
		}
	}
	walk(e)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Has reports whether s occurs anywhere in e.
func (e Expr) Has(s Symbol) bool {
	for _, x := range e.Symbols() {
		if x == s {
			return true
		}
	}
	return false
}

func (e Expr) Equal(o Expr) bool {
	if e.IsInfinite() || o.IsInfinite() {
		return e.IsInfinite() && o.IsInfinite()
	}
	return e.Sub(o).IsZero()
}

// TrigSimplify rewrites c*r*sin(x)^2 + c*r*cos(x)^2 as c*r until no pair is left.
func (e Expr) TrigSimplify() Expr {
	ts := append([]term(nil), e.terms...)
	for changed := true; changed; {
		changed = false
	search:
		for i, t := range ts {
			for _, f := range t.factors {
				if f.a.kind != atomSin || f.exp < 2 {
					continue
				}
				cosA := fnAtom(atomCos, f.a.arg)
				rest := replaceFactor(t.factors, f.a, f.exp-2)
				want := newTerm(t.coeff, append(append([]factor(nil), rest...), factor{a: cosA, exp: 2}))
				for j, u := range ts {
					if j == i || u.key != want.key || math.Abs(u.coeff-t.coeff) >= cancelTol {
						continue
					}
					next := make([]term, 0, len(ts)-1)
					for k, v := range ts {
						if k != i && k != j {
							next = append(next, v)
						}
					}
					ts = collect(append(next, newTerm(t.coeff, rest))).terms
					changed = true
					break search
				}
			}
		}
	}
	return Expr{terms: ts}
}

func replaceFactor(fs []factor, a atom, exp int) []factor {
	out := make([]factor, 0, len(fs))
	for _, f := range fs {
		if f.a.key == a.key {
			if exp != 0 {
				out = append(out, factor{a: a, exp: exp})
			}
			continue
		}
		out = append(out, f)
	}
	return out
}

func formatCoeff(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}

func (a atom) String() string {
	switch a.kind {
	case atomSym:
		return a.sym.String()
	case atomInfinity:
		return "zoo"
	case atomGroup:
		return "(" + a.arg.String() + ")"
	default:
		return a.kind.name() + "(" + a.arg.String() + ")"
	}
}

func (t term) String() string {
	if len(t.factors) == 0 {
		return formatCoeff(t.coeff)
	}
	parts := make([]string, len(t.factors))
	for i, f := range t.factors {
		parts[i] = f.a.String()
		if f.exp != 1 {
			parts[i] += "^" + strconv.Itoa(f.exp)
		}
	}
	body := strings.Join(parts, "*")
	switch t.coeff {
	case 1:
		return body
	case -1:
		return "-" + body
	}
	return formatCoeff(t.coeff) + "*" + body
}

func (e Expr) String() string {
	if len(e.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range e.terms {
		s := t.String()
		if i > 0 {
			if strings.HasPrefix(s, "-") {
				b.WriteString(" - ")
				s = s[1:]
			} else {
				b.WriteString(" + ")
			}
		}
		b.WriteString(s)
	}
	return b.String()
}
