// Package bicycle holds the bicycle components: grounds, wheels, rear frames,
// tires and the models assembling them.
package bicycle

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

type Ground interface {
	core.Model
	Frame() *symbolic.Frame
	Origin() *symbolic.Point
	Normal() symbolic.Vector
	PlanarVectors() (symbolic.Vector, symbolic.Vector)
}

type Wheel interface {
	core.Model
	Body() *symbolic.RigidBody
	Frame() *symbolic.Frame
	Center() *symbolic.Point
	RotationAxis() symbolic.Vector
	Radius() symbolic.Expr
}

// RearFrame is the rear frame of a bicycle. Its attachment points are fixed
// in its frame once kinematics are defined.
type RearFrame interface {
	core.Model
	Body() *symbolic.RigidBody
	Frame() *symbolic.Frame
	WheelAttachment() *symbolic.Point
	SteerAttachment() *symbolic.Point
	Saddle() *symbolic.Point
	SteerAxis() symbolic.Vector
	WheelAxis() symbolic.Vector
}

// Tire connects a wheel to the ground.
type Tire interface {
	core.Model
	ContactPoint() *symbolic.Point
	SetUpwardRadialAxis(v symbolic.Vector) error
}

type Bicycle interface {
	core.Model
	RearFrame() RearFrame
}

func componentErr(name string, attr string, p core.Phase, sentinel error, detail string) error {
	return &core.ComponentError{Component: name, Attribute: attr, Phase: p, Wrapped: sentinel, Detail: detail}
}
