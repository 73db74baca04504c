package bicycle

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

var stationaryRequirements = []core.Requirement{
	core.Require[RearFrame]("rear_frame", "Submodel of the rear frame."),
	core.Require[Wheel]("rear_wheel", "Submodel of the rear wheel.", core.Optional()),
}

// StationaryBicycle is a bicycle whose rear frame is fixed to the inertial
// frame, as on a trainer. The rear wheel, when present, spins on a pin joint.
type StationaryBicycle struct {
	*core.Base
	q, u symbolic.Symbol
}

func NewStationaryBicycle(name string) (*StationaryBicycle, error) {
	s := &StationaryBicycle{}
	b, err := core.NewBase(s, name, stationaryRequirements...)
	if err != nil {
		return nil, err
	}
	s.Base = b
	return s, nil
}

func (s *StationaryBicycle) RearFrame() RearFrame {
	rf, _ := s.Slot("rear_frame").(RearFrame)
	return rf
}

func (s *StationaryBicycle) RearWheel() Wheel {
	w, _ := s.Slot("rear_wheel").(Wheel)
	return w
}

func (s *StationaryBicycle) OnDefineObjects(*symbolic.System) error {
	if s.RearWheel() == nil {
		return nil
	}
	s.q = s.NewDynamicSymbol("q_rw", "Rear wheel rotation angle of "+s.Name()+".")
	s.u = s.NewDynamicSymbol("u_rw", "Generalized speed of the rear wheel rotation angle of "+s.Name()+".")
	return nil
}

func (s *StationaryBicycle) OnDefineKinematics(sys *symbolic.System) error {
	rf := s.RearFrame()
	if err := rf.Frame().OrientFixed(sys.Frame()); err != nil {
		return err
	}
	rf.WheelAttachment().SetPos(sys.FixedPoint(), symbolic.Vector{})
	for _, p := range []*symbolic.Point{rf.WheelAttachment(), rf.SteerAttachment(), rf.Saddle(), rf.Body().MassCenter} {
		p.SetVel(sys.Frame(), symbolic.Vector{})
	}

	w := s.RearWheel()
	if w == nil {
		return nil
	}
	j, err := symbolic.NewPinJoint(s.Name()+"_rear_wheel_joint", rf.Body(), w.Body(), s.q, s.u,
		rf.WheelAttachment(), w.Center(), rf.WheelAxis(), w.RotationAxis())
	if err != nil {
		return err
	}
	return sys.AddJoints(j)
}

// RearWheelSpeed is the generalized speed of the rear wheel, zero without a
// rear wheel.
func (s *StationaryBicycle) RearWheelSpeed() symbolic.Symbol { return s.u }
