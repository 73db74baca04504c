package symbolic

import "fmt"

// Frame is a reference frame with a right-handed orthonormal basis. Frames form
// a forest: each frame is oriented at most once, relative to a parent.
type Frame struct {
	name   string
	parent *Frame
	// dcm[i][j] is the measure of this frame's basis vector i along parent basis j.
	dcm    [3][3]Expr
	angVel Vector
}

func NewFrame(name string) *Frame {
	return &Frame{name: name}
}

func (f *Frame) Name() string   { return f.name }
func (f *Frame) String() string { return f.name }
func (f *Frame) Parent() *Frame { return f.parent }

func (f *Frame) X() Vector { return NewVector(f, One(), Expr{}, Expr{}) }
func (f *Frame) Y() Vector { return NewVector(f, Expr{}, One(), Expr{}) }
func (f *Frame) Z() Vector { return NewVector(f, Expr{}, Expr{}, One()) }

func (f *Frame) root() *Frame {
	r := f
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Connected reports whether orientations link f and o.
func (f *Frame) Connected(o *Frame) bool {
	return f.root() == o.root()
}

func identity() [3][3]Expr {
	return [3][3]Expr{{One(), {}, {}}, {{}, One(), {}}, {{}, {}, One()}}
}

func (f *Frame) orient(parent *Frame, dcm [3][3]Expr) error {
	if f.parent != nil {
		return fmt.Errorf("%w: %s relative to %s", ErrAlreadyOriented, f.name, f.parent.name)
	}
	if parent == f || parent.root() == f {
		return fmt.Errorf("%w: %s and %s", ErrFrameCycle, f.name, parent.name)
	}
	f.parent = parent
	f.dcm = dcm
	return nil
}

// OrientAxis rotates f relative to parent by angle about axis. The axis must be
// expressible in parent; the angular velocity becomes angle'*axis.
func (f *Frame) OrientAxis(parent *Frame, axis Vector, angle Expr) error {
	if !axis.ExpressibleIn(parent) {
		return fmt.Errorf("%w: axis %s not expressible in %s", ErrInvalidAxis, axis, parent.name)
	}
	k, err := axis.Normalize()
	if err != nil {
		return err
	}
	kc, err := k.Components(parent)
	if err != nil {
		return err
	}
	c, s := Cos(angle), Sin(angle)
	skew := [3][3]Expr{
		{{}, kc[2].Neg(), kc[1]},
		{kc[2], {}, kc[0].Neg()},
		{kc[1].Neg(), kc[0], {}},
	}
	var dcm [3][3]Expr
	for i := range 3 {
		for j := range 3 {
			r := s.Mul(skew[j][i]).Add(One().Sub(c).Mul(kc[j]).Mul(kc[i]))
			if i == j {
				r = r.Add(c)
			}
			dcm[i][j] = r
		}
	}
	if err := f.orient(parent, dcm); err != nil {
		return err
	}
	f.angVel = NewVector(parent, kc[0], kc[1], kc[2]).Scale(angle.Diff())
	return nil
}

// OrientDCM orients f with an explicit direction cosine matrix. The angular
// velocity is derived from the time derivative of the matrix.
func (f *Frame) OrientDCM(parent *Frame, dcm [3][3]Expr) error {
	if err := f.orient(parent, dcm); err != nil {
		return err
	}
	rowDot := func(a, b int) Expr {
		var out Expr
		for j := range 3 {
			out = out.Add(dcm[a][j].Diff().Mul(dcm[b][j]))
		}
		return out.TrigSimplify()
	}
	f.angVel = NewVector(f, rowDot(1, 2), rowDot(2, 0), rowDot(0, 1))
	return nil
}

// OrientFixed aligns f with parent.
func (f *Frame) OrientFixed(parent *Frame) error {
	return f.OrientDCM(parent, identity())
}

// SetAngVel overrides the angular velocity of f relative to its parent.
func (f *Frame) SetAngVel(w Vector) error {
	if f.parent == nil {
		return fmt.Errorf("%w: %s has no parent", ErrNotConnected, f.name)
	}
	if !w.ExpressibleIn(f) {
		return fmt.Errorf("%w: angular velocity of %s", ErrNotConnected, f.name)
	}
	f.angVel = w
	return nil
}

func (f *Frame) ancestors() []*Frame {
	var out []*Frame
	for n := f; n != nil; n = n.parent {
		out = append(out, n)
	}
	return out
}

func (f *Frame) commonAncestor(o *Frame) (*Frame, error) {
	seen := make(map[*Frame]bool)
	for _, n := range f.ancestors() {
		seen[n] = true
	}
	for _, n := range o.ancestors() {
		if seen[n] {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: frames %s and %s", ErrNotConnected, f.name, o.name)
}

// DCM returns the matrix M with comps_o = M * comps_f for any vector.
func (f *Frame) DCM(o *Frame) ([3][3]Expr, error) {
	lca, err := f.commonAncestor(o)
	if err != nil {
		return [3][3]Expr{}, err
	}
	m := identity()
	for n := f; n != lca; n = n.parent {
		m = matMul(transpose(n.dcm), m)
	}
	var down []*Frame
	for n := o; n != lca; n = n.parent {
		down = append(down, n)
	}
	for i := len(down) - 1; i >= 0; i-- {
		m = matMul(down[i].dcm, m)
	}
	return m, nil
}

// AngVelIn returns the angular velocity of f as observed from o.
func (f *Frame) AngVelIn(o *Frame) (Vector, error) {
	lca, err := f.commonAncestor(o)
	if err != nil {
		return Vector{}, err
	}
	w := Vector{}
	for n := f; n != lca; n = n.parent {
		w = w.Add(n.angVel)
	}
	for n := o; n != lca; n = n.parent {
		w = w.Sub(n.angVel)
	}
	return w, nil
}

func transpose(m [3][3]Expr) [3][3]Expr {
	var t [3][3]Expr
	for i := range 3 {
		for j := range 3 {
			t[i][j] = m[j][i]
		}
	}
	return t
}

func matMul(a, b [3][3]Expr) [3][3]Expr {
	var out [3][3]Expr
	for i := range 3 {
		for j := range 3 {
			for k := range 3 {
				out[i][j] = out[i][j].Add(a[i][k].Mul(b[k][j]))
			}
		}
	}
	return out
}
