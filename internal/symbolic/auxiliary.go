package symbolic

import "fmt"

// NoncontributingForce is a constraint force made visible to the equations of
// motion through an auxiliary speed along its direction.
type NoncontributingForce struct {
	Point     *Point
	Direction Vector
	Speed     Symbol
	Magnitude Symbol
}

// Velocity is the auxiliary velocity Speed*Direction.
func (f NoncontributingForce) Velocity() Vector {
	return f.Direction.Scale(f.Speed.Expr())
}

// Auxiliary collects noncontributing forces and adds their auxiliary
// velocities to every point positioned, directly or through other points,
// relative to the point a force acts on.
type Auxiliary struct {
	frame  *Frame
	origin *Point
	forces []NoncontributingForce
	vels   map[*Point]Vector
}

// NewAuxiliary roots the position tree at origin and applies velocities in frame.
func NewAuxiliary(frame *Frame, origin *Point) *Auxiliary {
	return &Auxiliary{frame: frame, origin: origin}
}

// AddNoncontributingForce records a force of magnitude along the unit vector
// direction at p. Forces can only be added before the speeds are applied.
func (a *Auxiliary) AddNoncontributingForce(p *Point, direction Vector, speed, magnitude Symbol) (NoncontributingForce, error) {
	if a.vels != nil {
		return NoncontributingForce{}, fmt.Errorf("%w: noncontributing force at %s", ErrAuxiliaryApplied, p.name)
	}
	if direction.IsZero() {
		return NoncontributingForce{}, fmt.Errorf("%w: zero direction at %s", ErrInvalidAxis, p.name)
	}
	f := NoncontributingForce{Point: p, Direction: direction, Speed: speed, Magnitude: magnitude}
	a.forces = append(a.forces, f)
	return f, nil
}

func (a *Auxiliary) Forces() []NoncontributingForce {
	return append([]NoncontributingForce(nil), a.forces...)
}

// Speeds lists the auxiliary speeds in the order the forces were added.
func (a *Auxiliary) Speeds() []Symbol {
	out := make([]Symbol, len(a.forces))
	for i, f := range a.forces {
		out[i] = f.Speed
	}
	return out
}

func (a *Auxiliary) Applied() bool { return a.vels != nil }

// tree lists the points reachable from the origin breadth first, each with
// its parent. A point reached along two chains keeps the first.
func (a *Auxiliary) tree() ([]*Point, map[*Point]*Point) {
	parent := map[*Point]*Point{a.origin: nil}
	order := []*Point{a.origin}
	for i := 0; i < len(order); i++ {
		for _, q := range order[i].links {
			if _, seen := parent[q]; !seen {
				parent[q] = order[i]
				order = append(order, q)
			}
		}
	}
	return order, parent
}

// Apply computes the auxiliary velocity of every point in the position tree
// and adds it to each velocity already defined in the frame.
func (a *Auxiliary) Apply() error {
	if a.vels != nil {
		return ErrAuxiliaryApplied
	}
	order, parent := a.tree()
	for _, f := range a.forces {
		if _, ok := parent[f.Point]; !ok {
			return fmt.Errorf("%w: noncontributing force at %s is not positioned from %s", ErrNotConnected, f.Point.name, a.origin.name)
		}
	}

	vels := make(map[*Point]Vector, len(order))
	for _, p := range order {
		v := Vector{}
		if up := parent[p]; up != nil {
			v = vels[up]
		}
		for _, f := range a.forces {
			if f.Point == p {
				v = v.Add(f.Velocity())
			}
		}
		vels[p] = v
	}
	for _, p := range order {
		if vels[p].IsZero() || !p.HasVel(a.frame) {
			continue
		}
		p.SetVel(a.frame, p.vel[a.frame].Add(vels[p]))
	}
	a.vels = vels
	return nil
}

// Velocity returns the auxiliary velocity of p, applying the speeds first if
// that has not happened yet.
func (a *Auxiliary) Velocity(p *Point) (Vector, error) {
	if a.vels == nil {
		if err := a.Apply(); err != nil {
			return Vector{}, err
		}
	}
	v, ok := a.vels[p]
	if !ok {
		return Vector{}, fmt.Errorf("%w: %s is not positioned from %s", ErrNotConnected, p.name, a.origin.name)
	}
	return v, nil
}

// Load returns f as a force at a new point <point>_aux moving with the
// auxiliary velocity only.
func (a *Auxiliary) Load(f NoncontributingForce) Force {
	p := NewPoint(f.Point.name + "_aux")
	p.SetVel(a.frame, f.Velocity())
	return Force{Point: p, Vec: f.Direction.Scale(f.Magnitude.Expr())}
}

// Loads returns the force of every noncontributing force.
func (a *Auxiliary) Loads() []Load {
	out := make([]Load, len(a.forces))
	for i, f := range a.forces {
		out[i] = a.Load(f)
	}
	return out
}
