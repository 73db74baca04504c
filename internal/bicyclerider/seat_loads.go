package bicyclerider

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

// SideLeanSeatTorque actuates the lean joint with a free torque T.
type SideLeanSeatTorque struct {
	*core.Base
	torque symbolic.Symbol
}

func NewSideLeanSeatTorque(name string) (*SideLeanSeatTorque, error) {
	g := &SideLeanSeatTorque{}
	b, err := core.NewLoadGroupBase(g, name, core.KindOf[*SideLeanSeat]())
	if err != nil {
		return nil, err
	}
	g.Base = b
	return g, nil
}

func (g *SideLeanSeatTorque) OnDefineObjects(*symbolic.System) error {
	g.torque = g.NewDynamicSymbol("T", "Side lean torque of "+g.Parent().Name())
	return nil
}

func (g *SideLeanSeatTorque) OnDefineLoads(sys *symbolic.System) error {
	seat := g.Parent().(*SideLeanSeat)
	sys.AddActuators(symbolic.NewTorqueActuator(g.torque.Expr(), seat.FrameLeanAxis(), seat.Pelvis().Frame(), seat.RearFrame().Frame()))
	return nil
}

// SideLeanSeatSpringDamper pulls the lean angle towards q_ref with a linear
// spring and damper.
type SideLeanSeatSpringDamper struct {
	*core.Base
	k, c, qRef symbolic.Symbol
}

func NewSideLeanSeatSpringDamper(name string) (*SideLeanSeatSpringDamper, error) {
	g := &SideLeanSeatSpringDamper{}
	b, err := core.NewLoadGroupBase(g, name, core.KindOf[*SideLeanSeat]())
	if err != nil {
		return nil, err
	}
	g.Base = b
	return g, nil
}

func (g *SideLeanSeatSpringDamper) OnDefineObjects(*symbolic.System) error {
	seat := g.Parent().Name()
	g.k = g.NewSymbol("k", "Side lean stiffness of "+seat)
	g.c = g.NewSymbol("c", "Side lean damping of "+seat)
	g.qRef = g.NewDynamicSymbol("q_ref", "Side lean reference angle of "+seat)
	return nil
}

// Torque is -k*(q - q_ref) - c*u about the frame lean axis.
func (g *SideLeanSeatSpringDamper) Torque() symbolic.Expr {
	seat := g.Parent().(*SideLeanSeat)
	q, u := seat.Coordinate().Expr(), seat.Speed().Expr()
	return g.k.Expr().Mul(q.Sub(g.qRef.Expr())).Neg().Sub(g.c.Expr().Mul(u))
}

func (g *SideLeanSeatSpringDamper) OnDefineLoads(sys *symbolic.System) error {
	seat := g.Parent().(*SideLeanSeat)
	sys.AddActuators(symbolic.NewTorqueActuator(g.Torque(), seat.FrameLeanAxis(), seat.Pelvis().Frame(), seat.RearFrame().Frame()))
	return nil
}
