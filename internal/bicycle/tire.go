package bicycle

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

var tireRequirements = []core.Requirement{
	core.Require[Ground]("ground", "Submodel of the ground."),
	core.Require[Wheel]("wheel", "Submodel of the wheel."),
}

// NonHolonomicTire keeps a wheel rolling on the ground without slip. The
// owner of the tire positions the contact point and gives it a velocity in
// the ground frame before the tire's kinematics run.
type NonHolonomicTire struct {
	*core.Base
	contactPoint *symbolic.Point
	upward       symbolic.Vector
	upwardSet    bool
}

func NewNonHolonomicTire(name string) (*NonHolonomicTire, error) {
	t := &NonHolonomicTire{}
	b, err := core.NewConnectionBase(t, name, tireRequirements...)
	if err != nil {
		return nil, err
	}
	t.Base = b
	return t, nil
}

func (t *NonHolonomicTire) peers() (Ground, Wheel, error) {
	g, err := core.SlotAs[Ground](t.Base, "ground")
	if err != nil {
		return nil, nil, err
	}
	w, err := core.SlotAs[Wheel](t.Base, "wheel")
	if err != nil {
		return nil, nil, err
	}
	return g, w, nil
}

func (t *NonHolonomicTire) OnDefineObjects(*symbolic.System) error {
	t.contactPoint = symbolic.NewPoint(t.Name() + "_contact_point")
	return nil
}

func (t *NonHolonomicTire) ContactPoint() *symbolic.Point { return t.contactPoint }

// UpwardRadialAxis is the unit vector from the contact point towards the
// wheel center. Unless overridden it is the ground normal projected onto the
// wheel plane.
func (t *NonHolonomicTire) UpwardRadialAxis() (symbolic.Vector, error) {
	if t.upwardSet {
		return t.upward, nil
	}
	g, w, err := t.peers()
	if err != nil {
		return symbolic.Vector{}, err
	}
	a := w.RotationAxis()
	c, err := g.Normal().Cross(a)
	if err != nil {
		return symbolic.Vector{}, err
	}
	up, err := a.Cross(c)
	if err != nil {
		return symbolic.Vector{}, err
	}
	return up.Normalize()
}

// SetUpwardRadialAxis overrides the upward radial axis with an expression
// that is cheaper to differentiate. v must be a unit vector perpendicular to
// the wheel's rotation axis.
func (t *NonHolonomicTire) SetUpwardRadialAxis(v symbolic.Vector) error {
	if !t.Done(core.PhaseObjects) {
		return componentErr(t.Name(), "upward_radial_axis", core.PhaseObjects, core.ErrUsage, "objects are not defined")
	}
	if t.Done(core.PhaseKinematics) {
		return componentErr(t.Name(), "upward_radial_axis", core.PhaseKinematics, core.ErrUsage, "kinematics are already defined")
	}
	_, w, err := t.peers()
	if err != nil {
		return err
	}
	if !v.ExpressibleIn(w.Frame()) {
		return componentErr(t.Name(), "upward_radial_axis", core.PhaseKinematics, core.ErrValue, "axis is not expressible in "+w.Frame().Name())
	}
	sq, err := v.Dot(v)
	if err != nil {
		return err
	}
	if c, ok := sq.TrigSimplify().IsConst(); !ok || c != 1 {
		return componentErr(t.Name(), "upward_radial_axis", core.PhaseKinematics, core.ErrValue, "axis should be normalized")
	}
	d, err := v.Dot(w.RotationAxis())
	if err != nil {
		return err
	}
	if !d.TrigSimplify().IsZero() {
		return componentErr(t.Name(), "upward_radial_axis", core.PhaseKinematics, core.ErrValue, "axis should be perpendicular to the rotation axis")
	}
	t.upward = v
	t.upwardSet = true
	return nil
}

func (t *NonHolonomicTire) OnDefineKinematics(sys *symbolic.System) error {
	g, w, err := t.peers()
	if err != nil {
		return err
	}
	up, err := t.UpwardRadialAxis()
	if err != nil {
		return err
	}
	r := up.Scale(w.Radius())
	w.Center().SetPos(t.contactPoint, r)
	if !t.contactPoint.HasVel(g.Frame()) {
		return nil
	}
	vcp, err := t.contactPoint.Vel(g.Frame())
	if err != nil {
		return err
	}
	dr, err := r.Dt(g.Frame())
	if err != nil {
		return err
	}
	w.Center().SetVel(g.Frame(), vcp.Add(dr.Subs(sys.QDotMap())))
	return nil
}

// OnDefineConstraints adds the no-slip conditions: the velocity of the wheel
// material point at the contact has no component in the ground plane. The
// auxiliary velocities of noncontributing forces take part in it.
func (t *NonHolonomicTire) OnDefineConstraints(sys *symbolic.System) error {
	g, w, err := t.peers()
	if err != nil {
		return err
	}
	n := g.Frame()
	vc, err := w.Center().Vel(n)
	if err != nil {
		return err
	}
	omega, err := w.Frame().AngVelIn(n)
	if err != nil {
		return err
	}
	rc, err := t.contactPoint.PosFrom(w.Center())
	if err != nil {
		return err
	}
	c, err := omega.Subs(sys.QDotMap()).Cross(rc)
	if err != nil {
		return err
	}
	v0 := vc.Add(c)
	if aux := sys.Auxiliary(); len(aux.Forces()) > 0 {
		av, err := auxiliaryContactVelocity(aux, g, w, t.contactPoint)
		if err != nil {
			return err
		}
		v0 = v0.Add(av)
	}
	p1, p2 := g.PlanarVectors()
	var fnh []symbolic.Expr
	for _, p := range []symbolic.Vector{p1, p2} {
		f, err := v0.Dot(p)
		if err != nil {
			return err
		}
		fnh = append(fnh, f.TrigSimplify())
	}
	sys.AddNonholonomicConstraints(fnh...)
	return nil
}

// auxiliaryContactVelocity is the auxiliary velocity of the wheel material
// point at the contact relative to the ground.
func auxiliaryContactVelocity(aux *symbolic.Auxiliary, g Ground, w Wheel, cp *symbolic.Point) (symbolic.Vector, error) {
	var vs [3]symbolic.Vector
	for i, p := range []*symbolic.Point{w.Center(), g.Origin(), cp} {
		v, err := aux.Velocity(p)
		if err != nil {
			return symbolic.Vector{}, err
		}
		vs[i] = v
	}
	return vs[0].Sub(vs[1]).Add(vs[2]), nil
}
