package symbolic

import "fmt"

// PinJoint is a revolute joint. The child rotates by Coordinate about the
// parent axis; the child axis is aligned with it and the joint points coincide.
type PinJoint struct {
	name         string
	Parent       *RigidBody
	Child        *RigidBody
	Coordinate   Symbol
	Speed        Symbol
	ParentPoint  *Point
	ChildPoint   *Point
	ParentAxis   Vector
	ChildAxis    Vector
	Intermediate *Frame
}

// NewPinJoint orients the child body and places the joint points. It fails
// when an axis cannot be expressed in its body frame or is zero.
func NewPinJoint(name string, parent, child *RigidBody, q, u Symbol, parentPoint, childPoint *Point, parentAxis, childAxis Vector) (*PinJoint, error) {
	if !parentAxis.ExpressibleIn(parent.Frame) {
		return nil, fmt.Errorf("%w: parent axis of %s not expressible in %s", ErrInvalidAxis, name, parent.Frame)
	}
	if !childAxis.ExpressibleIn(child.Frame) {
		return nil, fmt.Errorf("%w: child axis of %s not expressible in %s", ErrInvalidAxis, name, child.Frame)
	}
	pa, err := parentAxis.Normalize()
	if err != nil {
		return nil, err
	}
	ca, err := childAxis.Normalize()
	if err != nil {
		return nil, err
	}
	a, err := pa.Components(parent.Frame)
	if err != nil {
		return nil, err
	}
	b, err := ca.Components(child.Frame)
	if err != nil {
		return nil, err
	}

	j := &PinJoint{
		name:         name,
		Parent:       parent,
		Child:        child,
		Coordinate:   q,
		Speed:        u,
		ParentPoint:  parentPoint,
		ChildPoint:   childPoint,
		ParentAxis:   parentAxis,
		ChildAxis:    childAxis,
		Intermediate: NewFrame(name + "_int_frame"),
	}
	if err := j.Intermediate.OrientAxis(parent.Frame, pa, q.Expr()); err != nil {
		return nil, err
	}
	if err := j.Intermediate.SetAngVel(NewVector(parent.Frame, a[0], a[1], a[2]).Scale(u.Expr())); err != nil {
		return nil, err
	}
	align, err := alignment(b, a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := child.Frame.OrientDCM(j.Intermediate, transpose(align)); err != nil {
		return nil, err
	}

	childPoint.SetPos(parentPoint, Vector{})
	parentPoint.SetVel(parent.Frame, Vector{})
	childPoint.SetVel(child.Frame, Vector{})
	if _, err := child.MassCenter.V2PtTheory(parentPoint, parent.Frame, child.Frame); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *PinJoint) Name() string { return j.name }

// KinematicEquation is q' - u.
func (j *PinJoint) KinematicEquation() Expr {
	return j.Coordinate.Derivative().Expr().Sub(j.Speed.Expr())
}

// alignment returns the rotation taking unit vector from onto unit vector to,
// both given as components in the same basis.
func alignment(from, to [3]Expr) ([3][3]Expr, error) {
	v := [3]Expr{
		from[1].Mul(to[2]).Sub(from[2].Mul(to[1])),
		from[2].Mul(to[0]).Sub(from[0].Mul(to[2])),
		from[0].Mul(to[1]).Sub(from[1].Mul(to[0])),
	}
	var c Expr
	for i := range 3 {
		c = c.Add(from[i].Mul(to[i]))
	}
	c = c.TrigSimplify()
	if v[0].IsZero() && v[1].IsZero() && v[2].IsZero() {
		if k, ok := c.IsConst(); ok && k < 0 {
			return [3][3]Expr{}, fmt.Errorf("%w: antiparallel axes", ErrInvalidAxis)
		}
		return identity(), nil
	}
	skew := [3][3]Expr{
		{{}, v[2].Neg(), v[1]},
		{v[2], {}, v[0].Neg()},
		{v[1].Neg(), v[0], {}},
	}
	sq := matMul(skew, skew)
	inv := One().Add(c).Inv()
	r := identity()
	for i := range 3 {
		for k := range 3 {
			r[i][k] = r[i][k].Add(skew[i][k]).Add(sq[i][k].Mul(inv)).TrigSimplify()
		}
	}
	return r, nil
}
