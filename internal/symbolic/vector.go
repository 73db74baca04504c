package symbolic

import (
	"fmt"
	"strings"
)

type vecPart struct {
	frame *Frame
	comps [3]Expr
}

func (p vecPart) zero() bool {
	return p.comps[0].IsZero() && p.comps[1].IsZero() && p.comps[2].IsZero()
}

// Vector is an immutable sum of components, each measured along the basis of
// some frame. The zero value is the zero vector.
type Vector struct {
	parts []vecPart
}

// NewVector returns x*f.x + y*f.y + z*f.z.
func NewVector(f *Frame, x, y, z Expr) Vector {
	return Vector{}.addPart(f, [3]Expr{x, y, z})
}

func (v Vector) addPart(f *Frame, c [3]Expr) Vector {
	out := make([]vecPart, 0, len(v.parts)+1)
	merged := false
	for _, p := range v.parts {
		if p.frame == f {
			p = vecPart{frame: f, comps: [3]Expr{p.comps[0].Add(c[0]), p.comps[1].Add(c[1]), p.comps[2].Add(c[2])}}
			merged = true
		}
		if !p.zero() {
			out = append(out, p)
		}
	}
	if np := (vecPart{frame: f, comps: c}); !merged && !np.zero() {
		out = append(out, np)
	}
	return Vector{parts: out}
}

func (v Vector) mapComps(fn func(Expr) Expr) Vector {
	out := Vector{}
	for _, p := range v.parts {
		out = out.addPart(p.frame, [3]Expr{fn(p.comps[0]), fn(p.comps[1]), fn(p.comps[2])})
	}
	return out
}

func (v Vector) IsZero() bool { return len(v.parts) == 0 }

func (v Vector) Add(o Vector) Vector {
	out := v
	for _, p := range o.parts {
		out = out.addPart(p.frame, p.comps)
	}
	return out
}

func (v Vector) Sub(o Vector) Vector { return v.Add(o.Neg()) }
func (v Vector) Neg() Vector         { return v.ScaleF(-1) }

// Scale multiplies every component by e.
func (v Vector) Scale(e Expr) Vector {
	return v.mapComps(func(c Expr) Expr { return c.Mul(e) })
}

// ScaleF multiplies every component by a number.
func (v Vector) ScaleF(c float64) Vector {
	return v.mapComps(func(x Expr) Expr { return x.Scale(c) })
}

// Subs replaces symbols in every component.
func (v Vector) Subs(m map[Symbol]Expr) Vector {
	return v.mapComps(func(c Expr) Expr { return c.Subs(m) })
}

func (v Vector) TrigSimplify() Vector {
	return v.mapComps(Expr.TrigSimplify)
}

// Frames lists the frames v has components in, in first-use order.
func (v Vector) Frames() []*Frame {
	out := make([]*Frame, len(v.parts))
	for i, p := range v.parts {
		out[i] = p.frame
	}
	return out
}

// ExpressibleIn reports whether every component frame is connected to f.
func (v Vector) ExpressibleIn(f *Frame) bool {
	for _, p := range v.parts {
		if !p.frame.Connected(f) {
			return false
		}
	}
	return true
}

// Express rewrites v entirely in the basis of f.
func (v Vector) Express(f *Frame) (Vector, error) {
	var sum [3]Expr
	for _, p := range v.parts {
		m, err := p.frame.DCM(f)
		if err != nil {
			return Vector{}, err
		}
		for i := range 3 {
			for j := range 3 {
				sum[i] = sum[i].Add(m[i][j].Mul(p.comps[j]))
			}
		}
	}
	return NewVector(f, sum[0], sum[1], sum[2]), nil
}

// Components returns the measure numbers of v along f's basis.
func (v Vector) Components(f *Frame) ([3]Expr, error) {
	e, err := v.Express(f)
	if err != nil {
		return [3]Expr{}, err
	}
	return e.in(f), nil
}

func (v Vector) in(f *Frame) [3]Expr {
	for _, p := range v.parts {
		if p.frame == f {
			return p.comps
		}
	}
	return [3]Expr{}
}

func (v Vector) Dot(o Vector) (Expr, error) {
	var out Expr
	for _, p := range v.parts {
		q, err := o.Components(p.frame)
		if err != nil {
			return Expr{}, err
		}
		for i := range 3 {
			out = out.Add(p.comps[i].Mul(q[i]))
		}
	}
	return out, nil
}

func (v Vector) Cross(o Vector) (Vector, error) {
	out := Vector{}
	for _, p := range v.parts {
		q, err := o.Components(p.frame)
		if err != nil {
			return Vector{}, err
		}
		a := p.comps
		out = out.Add(NewVector(p.frame,
			a[1].Mul(q[2]).Sub(a[2].Mul(q[1])),
			a[2].Mul(q[0]).Sub(a[0].Mul(q[2])),
			a[0].Mul(q[1]).Sub(a[1].Mul(q[0])),
		))
	}
	return out, nil
}

// Magnitude is the Euclidean norm, measured in the first component frame.
func (v Vector) Magnitude() (Expr, error) {
	if v.IsZero() {
		return Expr{}, nil
	}
	sq, err := v.Dot(v)
	if err != nil {
		return Expr{}, err
	}
	return Sqrt(sq.TrigSimplify()), nil
}

// Normalize scales v to unit length. The zero vector cannot be normalized.
func (v Vector) Normalize() (Vector, error) {
	m, err := v.Magnitude()
	if err != nil {
		return Vector{}, err
	}
	if c, ok := m.IsConst(); ok {
		if c == 0 {
			return Vector{}, fmt.Errorf("%w: zero vector", ErrInvalidAxis)
		}
		return v.ScaleF(1 / c), nil
	}
	return v.Scale(m.Inv()), nil
}

// Dt is the time derivative of v as observed from frame f.
func (v Vector) Dt(f *Frame) (Vector, error) {
	out := Vector{}
	for _, p := range v.parts {
		out = out.addPart(p.frame, [3]Expr{p.comps[0].Diff(), p.comps[1].Diff(), p.comps[2].Diff()})
		w, err := p.frame.AngVelIn(f)
		if err != nil {
			return Vector{}, err
		}
		c, err := w.Cross(Vector{parts: []vecPart{p}})
		if err != nil {
			return Vector{}, err
		}
		out = out.Add(c)
	}
	return out, nil
}

// Equal compares component by component without re-expressing.
func (v Vector) Equal(o Vector) bool { return v.Sub(o).IsZero() }

func (v Vector) String() string {
	if v.IsZero() {
		return "0"
	}
	var parts []string
	for _, p := range v.parts {
		for i, c := range p.comps {
			if c.IsZero() {
				continue
			}
			parts = append(parts, fmt.Sprintf("(%s)*%s.%c", c, p.frame.name, "xyz"[i]))
		}
	}
	return strings.Join(parts, " + ")
}
