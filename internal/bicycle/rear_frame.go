package bicycle

import (
	"github.com/san-kum/brim/internal/body"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

// RearFrames builds rear frames by formulation.
var RearFrames = core.NewFactory[RearFrame]("rear frame", "moore")

func init() {
	RearFrames.Register("moore", func(name string) (RearFrame, error) {
		return NewRigidRearFrameMoore(name)
	})
}

// NewRearFrame returns the rear frame of the given formulation, "moore" when
// formulation is empty.
func NewRearFrame(name, formulation string) (RearFrame, error) {
	return RearFrames.New(name, formulation)
}

// RigidRearFrameMoore places the steer attachment on the perpendicular from
// the rear wheel center to the steer axis.
type RigidRearFrameMoore struct {
	*core.Base
	body.Newtonian

	d1, l1, l2, lsx, lsz symbolic.Symbol

	wheelAttachment *symbolic.Point
	steerAttachment *symbolic.Point
	saddle          *symbolic.Point
}

func NewRigidRearFrameMoore(name string) (*RigidRearFrameMoore, error) {
	r := &RigidRearFrameMoore{}
	b, err := core.NewBase(r, name)
	if err != nil {
		return nil, err
	}
	r.Base = b
	return r, nil
}

func (r *RigidRearFrameMoore) OnDefineObjects(sys *symbolic.System) error {
	if _, err := r.DefineBody(r.Base, sys, "ixx", "iyy", "izz", "izx"); err != nil {
		return err
	}
	r.d1 = r.NewSymbol("d1", "Perpendicular distance from the steer axis to the center of the rear wheel (rear offset).")
	r.l1 = r.NewSymbol("l1", "Distance in the rear frame x direction from the rear wheel center to the center of mass of the rear frame.")
	r.l2 = r.NewSymbol("l2", "Distance in the rear frame z direction from the rear wheel center to the center of mass of the rear frame.")
	r.lsx = r.NewSymbol("l_sx", "Distance in the rear frame x direction from the rear wheel center to the saddle.")
	r.lsz = r.NewSymbol("l_sz", "Distance in the rear frame z direction from the rear wheel center to the saddle.")
	r.wheelAttachment = symbolic.NewPoint(r.Name() + "_wheel_attachment")
	r.steerAttachment = symbolic.NewPoint(r.Name() + "_steer_attachment")
	r.saddle = symbolic.NewPoint(r.Name() + "_saddle")
	return nil
}

func (r *RigidRearFrameMoore) OnDefineKinematics(*symbolic.System) error {
	x, z := r.X(), r.Z()
	r.steerAttachment.SetPos(r.wheelAttachment, x.Scale(r.d1.Expr()))
	r.Body().MassCenter.SetPos(r.wheelAttachment, x.Scale(r.l1.Expr()).Add(z.Scale(r.l2.Expr())))
	r.saddle.SetPos(r.wheelAttachment, x.Scale(r.lsx.Expr()).Add(z.Scale(r.lsz.Expr())))
	for _, p := range []*symbolic.Point{r.wheelAttachment, r.steerAttachment, r.saddle, r.Body().MassCenter} {
		p.SetVel(r.Frame(), symbolic.Vector{})
	}
	return nil
}

func (r *RigidRearFrameMoore) WheelAttachment() *symbolic.Point { return r.wheelAttachment }
func (r *RigidRearFrameMoore) SteerAttachment() *symbolic.Point { return r.steerAttachment }
func (r *RigidRearFrameMoore) Saddle() *symbolic.Point          { return r.saddle }
func (r *RigidRearFrameMoore) SteerAxis() symbolic.Vector       { return r.Z() }
func (r *RigidRearFrameMoore) WheelAxis() symbolic.Vector       { return r.Y() }
