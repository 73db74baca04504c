package bicycle

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

// FlatGround is a flat plane through its origin. Its frame is fixed to the
// inertial frame of the system.
type FlatGround struct {
	*core.Base
	axis int
	sign float64
	body *symbolic.RigidBody
}

// NewFlatGround accepts "+x", "-x", "+y", "-y", "+z", "-z" or "x", "y", "z"
// as normal. An empty normal means "-z".
func NewFlatGround(name, normal string) (*FlatGround, error) {
	if normal == "" {
		normal = "-z"
	}
	axis, sign, err := parseNormal(normal)
	if err != nil {
		return nil, componentErr(name, "", core.PhaseUninitialized, core.ErrValue, err.Error())
	}
	g := &FlatGround{axis: axis, sign: sign}
	b, err := core.NewBase(g, name)
	if err != nil {
		return nil, err
	}
	g.Base = b
	return g, nil
}

func parseNormal(s string) (int, float64, error) {
	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	switch s {
	case "x":
		return 0, sign, nil
	case "y":
		return 1, sign, nil
	case "z":
		return 2, sign, nil
	}
	return 0, 0, fmt.Errorf("normal %q is not one of +x, -x, +y, -y, +z, -z", s)
}

func (g *FlatGround) OnDefineObjects(*symbolic.System) error {
	g.body = symbolic.NewRigidBody(g.Name())
	g.body.MassCenter = symbolic.NewPoint(g.Name() + "_origin")
	return nil
}

func (g *FlatGround) OnDefineKinematics(sys *symbolic.System) error {
	if err := g.body.Frame.OrientFixed(sys.Frame()); err != nil {
		return err
	}
	g.Origin().SetPos(sys.FixedPoint(), symbolic.Vector{})
	g.Origin().SetVel(g.Frame(), symbolic.Vector{})
	g.Origin().SetVel(sys.Frame(), symbolic.Vector{})
	return nil
}

func (g *FlatGround) Body() *symbolic.RigidBody { return g.body }
func (g *FlatGround) Frame() *symbolic.Frame    { return g.body.Frame }
func (g *FlatGround) Origin() *symbolic.Point   { return g.body.MassCenter }

func (g *FlatGround) unit(axis int) symbolic.Vector {
	var c [3]symbolic.Expr
	c[axis] = symbolic.One()
	return symbolic.NewVector(g.Frame(), c[0], c[1], c[2])
}

func (g *FlatGround) Normal() symbolic.Vector {
	return g.unit(g.axis).ScaleF(g.sign)
}

// NormalAxis returns the index of the frame axis the normal lies along and
// its sign.
func (g *FlatGround) NormalAxis() (int, float64) { return g.axis, g.sign }

// PlanarVectors spans the ground plane with the two remaining frame axes in
// x, y, z order.
func (g *FlatGround) PlanarVectors() (symbolic.Vector, symbolic.Vector) {
	switch g.axis {
	case 0:
		return g.unit(1), g.unit(2)
	case 1:
		return g.unit(0), g.unit(2)
	}
	return g.unit(0), g.unit(1)
}
