package bicycle

import (
	"fmt"
	"strings"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

var rollingDiscRequirements = []core.Requirement{
	core.Require[*FlatGround]("ground", "Ground model."),
	core.Require[Wheel]("disc", "Disc model."),
	core.Require[Tire]("tire", "Tire model."),
}

// RollingDisc is a disc rolling without slip on flat ground. The disc is
// oriented by yaw, roll and pitch about the ground z axis, the intermediate x
// axis and the disc axis.
type RollingDisc struct {
	*core.Base
	q, u [5]symbolic.Symbol
	roll *symbolic.Frame
}

func NewRollingDisc(name string) (*RollingDisc, error) {
	d := &RollingDisc{}
	b, err := core.NewBase(d, name, rollingDiscRequirements...)
	if err != nil {
		return nil, err
	}
	d.Base = b
	return d, nil
}

// OnDefineConnections hands the ground and disc to the tire.
func (d *RollingDisc) OnDefineConnections() error {
	tire, err := core.SlotAs[Tire](d.Base, "tire")
	if err != nil {
		return err
	}
	if err := tire.Core().Bind("ground", d.Slot("ground")); err != nil {
		return err
	}
	return tire.Core().Bind("wheel", d.Slot("disc"))
}

var rollingDiscCoordinates = [5]string{
	"Perpendicular distance along ground.x to the contact point in the ground plane.",
	"Perpendicular distance along ground.y to the contact point in the ground plane.",
	"Yaw angle of the disc.",
	"Roll angle of the disc.",
	"Pitch angle of the disc.",
}

func (d *RollingDisc) OnDefineObjects(*symbolic.System) error {
	for i, desc := range rollingDiscCoordinates {
		d.q[i] = d.NewDynamicSymbol(fmt.Sprintf("q%d", i+1), desc)
		d.u[i] = d.NewDynamicSymbol(fmt.Sprintf("u%d", i+1), "Generalized speed of the "+strings.ToLower(desc))
	}
	return nil
}

func (d *RollingDisc) Coordinates() []symbolic.Symbol { return d.q[:] }
func (d *RollingDisc) Speeds() []symbolic.Symbol      { return d.u[:] }

func (d *RollingDisc) OnDefineKinematics(sys *symbolic.System) error {
	ground, err := core.SlotAs[*FlatGround](d.Base, "ground")
	if err != nil {
		return err
	}
	disc, err := core.SlotAs[Wheel](d.Base, "disc")
	if err != nil {
		return err
	}
	tire, err := core.SlotAs[Tire](d.Base, "tire")
	if err != nil {
		return err
	}
	axis, sign := ground.NormalAxis()
	if axis != 2 {
		return componentErr(d.Name(), "ground", core.PhaseKinematics, core.ErrValue, "rolling disc requires a ground normal along z")
	}

	n := ground.Frame()
	yaw := symbolic.NewFrame(d.Name() + "_yaw_frame")
	d.roll = symbolic.NewFrame(d.Name() + "_roll_frame")
	steps := []struct {
		frame, parent *symbolic.Frame
		axis          symbolic.Vector
		i             int
	}{
		{yaw, n, n.Z(), 2},
		{d.roll, yaw, yaw.X(), 3},
		{disc.Frame(), d.roll, d.roll.Y(), 4},
	}
	for _, s := range steps {
		if err := s.frame.OrientAxis(s.parent, s.axis, d.q[s.i].Expr()); err != nil {
			return err
		}
		if err := s.frame.SetAngVel(s.axis.Scale(d.u[s.i].Expr())); err != nil {
			return err
		}
	}

	p1, p2 := ground.PlanarVectors()
	cp := tire.ContactPoint()
	cp.SetPos(ground.Origin(), p1.Scale(d.q[0].Expr()).Add(p2.Scale(d.q[1].Expr())))
	cp.SetVel(n, p1.Scale(d.u[0].Expr()).Add(p2.Scale(d.u[1].Expr())))
	disc.Center().SetVel(disc.Frame(), symbolic.Vector{})
	if err := tire.SetUpwardRadialAxis(d.roll.Z().ScaleF(sign)); err != nil {
		return err
	}

	if err := sys.AddCoordinates(d.q[:]...); err != nil {
		return err
	}
	if err := sys.AddSpeeds(d.u[:]...); err != nil {
		return err
	}
	for i := range d.q {
		sys.AddKinematicEquations(d.q[i].Derivative().Expr().Sub(d.u[i].Expr()))
	}
	return nil
}
