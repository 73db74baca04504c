// Package rider holds the rider components.
package rider

import (
	"github.com/san-kum/brim/internal/body"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

// Pelvis is the rigid pelvis of a rider. Hip points are located relative to
// the mass center once kinematics are defined.
type Pelvis interface {
	core.Model
	Body() *symbolic.RigidBody
	Frame() *symbolic.Frame
	X() symbolic.Vector
	Y() symbolic.Vector
	Z() symbolic.Vector
	LeftHipPoint() *symbolic.Point
	RightHipPoint() *symbolic.Point
}

// Pelvises builds pelvises by formulation.
var Pelvises = core.NewFactory[Pelvis]("pelvis", "simple_rigid")

func init() {
	Pelvises.Register("simple_rigid", func(name string) (Pelvis, error) {
		return NewSimpleRigidPelvis(name)
	})
	Pelvises.Register("planar", func(name string) (Pelvis, error) {
		return NewPlanarPelvis(name)
	})
}

// NewPelvis returns the pelvis of the given formulation, "simple_rigid" when
// formulation is empty.
func NewPelvis(name, formulation string) (Pelvis, error) {
	return Pelvises.New(name, formulation)
}

type pelvisBase struct {
	*core.Base
	body.Newtonian
	leftHip, rightHip *symbolic.Point
}

func (p *pelvisBase) defineObjects(sys *symbolic.System) error {
	if _, err := p.DefineBody(p.Base, sys, "ixx", "iyy", "izz"); err != nil {
		return err
	}
	p.leftHip = symbolic.NewPoint(p.Name() + "_LHP")
	p.rightHip = symbolic.NewPoint(p.Name() + "_RHP")
	return nil
}

func (p *pelvisBase) LeftHipPoint() *symbolic.Point  { return p.leftHip }
func (p *pelvisBase) RightHipPoint() *symbolic.Point { return p.rightHip }

// SimpleRigidPelvis has its hip points a hip width apart along y with the
// mass center in between.
type SimpleRigidPelvis struct {
	pelvisBase
	hipWidth symbolic.Symbol
}

func NewSimpleRigidPelvis(name string) (*SimpleRigidPelvis, error) {
	p := &SimpleRigidPelvis{}
	b, err := core.NewBase(p, name)
	if err != nil {
		return nil, err
	}
	p.Base = b
	return p, nil
}

func (p *SimpleRigidPelvis) OnDefineObjects(sys *symbolic.System) error {
	if err := p.defineObjects(sys); err != nil {
		return err
	}
	p.hipWidth = p.NewSymbol("hip_width", "Distance between the left and right hip points.")
	return nil
}

func (p *SimpleRigidPelvis) OnDefineKinematics(*symbolic.System) error {
	half := p.Y().Scale(p.hipWidth.Expr()).ScaleF(0.5)
	p.leftHip.SetPos(p.Body().MassCenter, half.Neg())
	p.rightHip.SetPos(p.Body().MassCenter, half)
	p.leftHip.SetVel(p.Frame(), symbolic.Vector{})
	p.rightHip.SetVel(p.Frame(), symbolic.Vector{})
	return nil
}

// PlanarPelvis collapses both hips into one point above the mass center, for
// riders modeled in the sagittal plane.
type PlanarPelvis struct {
	pelvisBase
	hipHeight symbolic.Symbol
}

func NewPlanarPelvis(name string) (*PlanarPelvis, error) {
	p := &PlanarPelvis{}
	b, err := core.NewBase(p, name)
	if err != nil {
		return nil, err
	}
	p.Base = b
	return p, nil
}

func (p *PlanarPelvis) OnDefineObjects(sys *symbolic.System) error {
	if err := p.defineObjects(sys); err != nil {
		return err
	}
	p.hipHeight = p.NewSymbol("hip_height", "Distance along the pelvis z axis from the center of mass to the hip points.")
	return nil
}

func (p *PlanarPelvis) OnDefineKinematics(*symbolic.System) error {
	v := p.Z().Scale(p.hipHeight.Expr()).Neg()
	p.leftHip.SetPos(p.Body().MassCenter, v)
	p.rightHip.SetPos(p.Body().MassCenter, v)
	p.leftHip.SetVel(p.Frame(), symbolic.Vector{})
	p.rightHip.SetVel(p.Frame(), symbolic.Vector{})
	return nil
}
