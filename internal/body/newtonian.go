// Package body provides the rigid body shared by components that are made of
// a single body.
package body

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

var inertiaAxes = map[string]string{
	"ixx": "xx",
	"iyy": "yy",
	"izz": "zz",
	"ixy": "xy",
	"iyz": "yz",
	"izx": "zx",
}

// Newtonian is embedded by components with one rigid body. The body exists
// once DefineBody ran in the component's objects hook.
type Newtonian struct {
	body *symbolic.RigidBody
}

// DefineBody creates the body named after b, its mass symbol and the inertia
// scalars listed in inertia (ixx, iyy, izz, ixy, iyz or izx). The body is added
// to sys when sys is not nil.
func (n *Newtonian) DefineBody(b *core.Base, sys *symbolic.System, inertia ...string) (*symbolic.RigidBody, error) {
	rb := symbolic.NewRigidBody(b.Name())
	rb.Mass = b.NewSymbol("mass", fmt.Sprintf("Mass of body: '%s'.", b.Name())).Expr()
	for _, key := range inertia {
		axes, ok := inertiaAxes[key]
		if !ok {
			return nil, &core.ComponentError{Component: b.Name(), Phase: core.PhaseObjects, Wrapped: core.ErrValue, Detail: "unknown inertia scalar " + key}
		}
		e := b.NewSymbol(key, fmt.Sprintf("Inertia scalar %s of body: '%s'.", axes, b.Name())).Expr()
		switch key {
		case "ixx":
			rb.Inertia.Ixx = e
		case "iyy":
			rb.Inertia.Iyy = e
		case "izz":
			rb.Inertia.Izz = e
		case "ixy":
			rb.Inertia.Ixy = e
		case "iyz":
			rb.Inertia.Iyz = e
		case "izx":
			rb.Inertia.Izx = e
		}
	}
	if sys != nil {
		if err := sys.AddBodies(rb); err != nil {
			return nil, err
		}
	}
	n.body = rb
	return rb, nil
}

func (n *Newtonian) Body() *symbolic.RigidBody { return n.body }

func (n *Newtonian) Frame() *symbolic.Frame {
	if n.body == nil {
		return nil
	}
	return n.body.Frame
}

func (n *Newtonian) X() symbolic.Vector { return n.Frame().X() }
func (n *Newtonian) Y() symbolic.Vector { return n.Frame().Y() }
func (n *Newtonian) Z() symbolic.Vector { return n.Frame().Z() }
