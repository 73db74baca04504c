package bicyclerider

import (
	"github.com/san-kum/brim/internal/bicycle"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/rider"
	"github.com/san-kum/brim/internal/symbolic"
)

var seatRequirements = []core.Requirement{
	core.Require[bicycle.RearFrame]("rear_frame", "Rear frame of the bicycle."),
	core.Require[rider.Pelvis]("pelvis", "Pelvis of the rider."),
}

// SideLeanSeat lets the pelvis lean sideways about an axis through the saddle.
type SideLeanSeat struct {
	*core.Base

	q, u, alpha symbolic.Symbol

	frameLeanAxis  symbolic.Vector
	pelvisLeanAxis symbolic.Vector
	interVec       symbolic.Vector
	interVecSet    bool
	interPoint     *symbolic.Point
	joint          *symbolic.PinJoint
}

func NewSideLeanSeat(name string) (*SideLeanSeat, error) {
	s := &SideLeanSeat{}
	b, err := core.NewConnectionBase(s, name, seatRequirements...)
	if err != nil {
		return nil, err
	}
	s.Base = b
	return s, nil
}

func (s *SideLeanSeat) RearFrame() bicycle.RearFrame {
	rf, _ := s.Slot("rear_frame").(bicycle.RearFrame)
	return rf
}

func (s *SideLeanSeat) Pelvis() rider.Pelvis {
	p, _ := s.Slot("pelvis").(rider.Pelvis)
	return p
}

func (s *SideLeanSeat) Coordinate() symbolic.Symbol     { return s.q }
func (s *SideLeanSeat) Speed() symbolic.Symbol          { return s.u }
func (s *SideLeanSeat) Joint() *symbolic.PinJoint       { return s.joint }
func (s *SideLeanSeat) FrameLeanAxis() symbolic.Vector  { return s.frameLeanAxis }
func (s *SideLeanSeat) PelvisLeanAxis() symbolic.Vector { return s.pelvisLeanAxis }

func (s *SideLeanSeat) OnDefineObjects(*symbolic.System) error {
	s.q = s.NewDynamicSymbol("q", "Lean angle.")
	s.u = s.NewDynamicSymbol("u", "Angular lean velocity.")
	s.alpha = s.NewSymbol("alpha", "Angle of the rider lean axis.")
	rf := s.RearFrame().Frame()
	a := s.alpha.Expr()
	s.frameLeanAxis = rf.X().Scale(symbolic.Cos(a)).Sub(rf.Z().Scale(symbolic.Sin(a)))
	s.pelvisLeanAxis = s.Pelvis().X()
	return nil
}

func (s *SideLeanSeat) settable(attr string) error {
	if !s.Done(core.PhaseObjects) {
		return &core.ComponentError{Component: s.Name(), Attribute: attr, Phase: core.PhaseObjects, Wrapped: core.ErrUsage, Detail: "objects are not defined"}
	}
	if s.Done(core.PhaseKinematics) {
		return &core.ComponentError{Component: s.Name(), Attribute: attr, Phase: core.PhaseKinematics, Wrapped: core.ErrUsage, Detail: "kinematics are already defined"}
	}
	return nil
}

func (s *SideLeanSeat) checkAxis(attr string, v symbolic.Vector, f *symbolic.Frame) error {
	if v.IsZero() || !v.ExpressibleIn(f) {
		return &core.ComponentError{Component: s.Name(), Attribute: attr, Wrapped: core.ErrValue, Detail: "must be a nonzero vector expressible in " + f.Name()}
	}
	return nil
}

// SetFrameLeanAxis sets the lean axis fixed in the rear frame.
func (s *SideLeanSeat) SetFrameLeanAxis(v symbolic.Vector) error {
	if err := s.settable("frame_lean_axis"); err != nil {
		return err
	}
	if err := s.checkAxis("frame_lean_axis", v, s.RearFrame().Frame()); err != nil {
		return err
	}
	s.frameLeanAxis = v
	return nil
}

// SetPelvisLeanAxis sets the lean axis fixed in the pelvis.
func (s *SideLeanSeat) SetPelvisLeanAxis(v symbolic.Vector) error {
	if err := s.settable("pelvis_lean_axis"); err != nil {
		return err
	}
	if err := s.checkAxis("pelvis_lean_axis", v, s.Pelvis().Frame()); err != nil {
		return err
	}
	s.pelvisLeanAxis = v
	return nil
}

// SetPelvisInterpoint places the rotation point on the pelvis relative to its
// mass center.
func (s *SideLeanSeat) SetPelvisInterpoint(v symbolic.Vector) error {
	if err := s.settable("pelvis_interpoint"); err != nil {
		return err
	}
	if !v.ExpressibleIn(s.Pelvis().Frame()) {
		return &core.ComponentError{Component: s.Name(), Attribute: "pelvis_interpoint", Wrapped: core.ErrValue, Detail: "must be expressible in " + s.Pelvis().Frame().Name()}
	}
	s.interVec, s.interVecSet, s.interPoint = v, true, nil
	return nil
}

// SetPelvisInterpointPoint uses a point fixed on the pelvis as rotation point.
// Its position from the pelvis mass center must already be known.
func (s *SideLeanSeat) SetPelvisInterpointPoint(p *symbolic.Point) error {
	if err := s.settable("pelvis_interpoint"); err != nil {
		return err
	}
	r, err := p.PosFrom(s.Pelvis().Body().MassCenter)
	if err != nil || !r.ExpressibleIn(s.Pelvis().Frame()) {
		return &core.ComponentError{Component: s.Name(), Attribute: "pelvis_interpoint", Wrapped: core.ErrValue, Detail: "point must be located from the pelvis mass center in " + s.Pelvis().Frame().Name()}
	}
	s.interPoint, s.interVecSet = p, false
	return nil
}

// PelvisInterpoint returns the rotation point on the pelvis once kinematics
// are defined.
func (s *SideLeanSeat) PelvisInterpoint() *symbolic.Point { return s.interPoint }

func (s *SideLeanSeat) OnDefineKinematics(sys *symbolic.System) error {
	rf, pelvis := s.RearFrame(), s.Pelvis()
	mc := pelvis.Body().MassCenter
	if s.interPoint == nil {
		v := s.interVec
		if !s.interVecSet {
			l, err := pelvis.LeftHipPoint().PosFrom(mc)
			if err != nil {
				return err
			}
			r, err := pelvis.RightHipPoint().PosFrom(mc)
			if err != nil {
				return err
			}
			v = l.Add(r).ScaleF(0.5)
		}
		s.interPoint = mc.Locate(s.Name()+"_pelvis_interpoint", v)
	}
	j, err := symbolic.NewPinJoint(s.Name()+"_lean_joint", rf.Body(), pelvis.Body(), s.q, s.u,
		rf.Saddle(), s.interPoint, s.frameLeanAxis, s.pelvisLeanAxis)
	if err != nil {
		return err
	}
	s.joint = j
	return sys.AddJoints(j)
}
