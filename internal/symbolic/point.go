package symbolic

import "fmt"

// Point is a location with positions relative to other points and velocities
// in frames. Velocities are never inferred; they are set explicitly or through
// V2PtTheory.
type Point struct {
	name  string
	links []*Point
	pos   map[*Point]Vector
	vel   map[*Frame]Vector
}

func NewPoint(name string) *Point {
	return &Point{name: name, pos: make(map[*Point]Vector), vel: make(map[*Frame]Vector)}
}

func (p *Point) Name() string   { return p.name }
func (p *Point) String() string { return p.name }

// SetPos places p at v relative to o, replacing any earlier relation between the two.
func (p *Point) SetPos(o *Point, v Vector) {
	p.link(o, v)
	o.link(p, v.Neg())
}

func (p *Point) link(o *Point, v Vector) {
	if _, ok := p.pos[o]; !ok {
		p.links = append(p.links, o)
	}
	p.pos[o] = v
}

// Locate creates a new point at v relative to p.
func (p *Point) Locate(name string, v Vector) *Point {
	q := NewPoint(name)
	q.SetPos(p, v)
	return q
}

// PosFrom returns the position of p relative to o along the shortest chain of
// known relations.
func (p *Point) PosFrom(o *Point) (Vector, error) {
	if p == o {
		return Vector{}, nil
	}
	prev := map[*Point]*Point{p: nil}
	queue := []*Point{p}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == o {
			break
		}
		for _, m := range n.links {
			if _, seen := prev[m]; !seen {
				prev[m] = n
				queue = append(queue, m)
			}
		}
	}
	if _, ok := prev[o]; !ok {
		return Vector{}, fmt.Errorf("%w: points %s and %s", ErrNotConnected, p.name, o.name)
	}
	out := Vector{}
	for n := o; prev[n] != nil; n = prev[n] {
		out = out.Add(prev[n].pos[n])
	}
	return out, nil
}

func (p *Point) SetVel(f *Frame, v Vector) {
	p.vel[f] = v
}

func (p *Point) HasVel(f *Frame) bool {
	_, ok := p.vel[f]
	return ok
}

func (p *Point) Vel(f *Frame) (Vector, error) {
	v, ok := p.vel[f]
	if !ok {
		return Vector{}, fmt.Errorf("%w: %s in %s", ErrVelocityUndefined, p.name, f.name)
	}
	return v, nil
}

// V2PtTheory sets the velocity of p in out from o, where both points are fixed
// in the frame fixed, and returns it.
func (p *Point) V2PtTheory(o *Point, out, fixed *Frame) (Vector, error) {
	vo, err := o.Vel(out)
	if err != nil {
		return Vector{}, err
	}
	w, err := fixed.AngVelIn(out)
	if err != nil {
		return Vector{}, err
	}
	r, err := p.PosFrom(o)
	if err != nil {
		return Vector{}, err
	}
	c, err := w.Cross(r)
	if err != nil {
		return Vector{}, err
	}
	v := vo.Add(c)
	p.SetVel(out, v)
	return v, nil
}
