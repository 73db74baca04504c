package symbolic

import (
	"fmt"
	"strings"
)

// System accumulates the contributions of every component of a model. It is
// append-only: nothing is ever removed or rewritten once added.
type System struct {
	frame  *Frame
	origin *Point

	bodies       []*RigidBody
	joints       []*PinJoint
	coordinates  []Symbol
	speeds       []Symbol
	kdes         []Expr
	loads        []Load
	actuators    []*TorqueActuator
	holonomic    []Expr
	nonholonomic []Expr

	aux *Auxiliary
}

// NewSystem returns an empty system with the given inertial frame and fixed point.
func NewSystem(frame *Frame, origin *Point) *System {
	origin.SetVel(frame, Vector{})
	return &System{frame: frame, origin: origin}
}

func (s *System) Frame() *Frame      { return s.frame }
func (s *System) FixedPoint() *Point { return s.origin }

// Auxiliary returns the noncontributing forces of the system, rooted at its
// fixed point.
func (s *System) Auxiliary() *Auxiliary {
	if s.aux == nil {
		s.aux = NewAuxiliary(s.frame, s.origin)
	}
	return s.aux
}

func (s *System) AddBodies(bodies ...*RigidBody) error {
	for _, b := range bodies {
		for _, x := range s.bodies {
			if x == b {
				return fmt.Errorf("%w: body %s", ErrDuplicate, b.name)
			}
		}
		s.bodies = append(s.bodies, b)
	}
	return nil
}

// AddJoints adds the joints with their coordinates, speeds, kinematic
// equations and any body not yet in the system.
func (s *System) AddJoints(joints ...*PinJoint) error {
	for _, j := range joints {
		for _, x := range s.joints {
			if x == j {
				return fmt.Errorf("%w: joint %s", ErrDuplicate, j.name)
			}
		}
		s.joints = append(s.joints, j)
		for _, b := range []*RigidBody{j.Parent, j.Child} {
			if !s.hasBody(b) {
				s.bodies = append(s.bodies, b)
			}
		}
		if err := s.AddCoordinates(j.Coordinate); err != nil {
			return err
		}
		if err := s.AddSpeeds(j.Speed); err != nil {
			return err
		}
		s.AddKinematicEquations(j.KinematicEquation())
	}
	return nil
}

func (s *System) hasBody(b *RigidBody) bool {
	for _, x := range s.bodies {
		if x == b {
			return true
		}
	}
	return false
}

func addSymbols(dst []Symbol, kind string, syms []Symbol) ([]Symbol, error) {
	for _, q := range syms {
		for _, x := range dst {
			if x == q {
				return dst, fmt.Errorf("%w: %s %s", ErrDuplicate, kind, q)
			}
		}
		dst = append(dst, q)
	}
	return dst, nil
}

func (s *System) AddCoordinates(qs ...Symbol) error {
	var err error
	s.coordinates, err = addSymbols(s.coordinates, "coordinate", qs)
	return err
}

func (s *System) AddSpeeds(us ...Symbol) error {
	var err error
	s.speeds, err = addSymbols(s.speeds, "speed", us)
	return err
}

func (s *System) AddKinematicEquations(kdes ...Expr) {
	s.kdes = append(s.kdes, kdes...)
}

func (s *System) AddLoads(loads ...Load) {
	s.loads = append(s.loads, loads...)
}

func (s *System) AddActuators(actuators ...*TorqueActuator) {
	s.actuators = append(s.actuators, actuators...)
}

func (s *System) AddHolonomicConstraints(fs ...Expr) {
	s.holonomic = append(s.holonomic, fs...)
}

func (s *System) AddNonholonomicConstraints(fs ...Expr) {
	s.nonholonomic = append(s.nonholonomic, fs...)
}

func (s *System) Bodies() []*RigidBody            { return append([]*RigidBody(nil), s.bodies...) }
func (s *System) Joints() []*PinJoint             { return append([]*PinJoint(nil), s.joints...) }
func (s *System) Coordinates() []Symbol           { return append([]Symbol(nil), s.coordinates...) }
func (s *System) Speeds() []Symbol                { return append([]Symbol(nil), s.speeds...) }
func (s *System) KinematicEquations() []Expr      { return append([]Expr(nil), s.kdes...) }
func (s *System) Actuators() []*TorqueActuator    { return append([]*TorqueActuator(nil), s.actuators...) }
func (s *System) HolonomicConstraints() []Expr    { return append([]Expr(nil), s.holonomic...) }
func (s *System) NonholonomicConstraints() []Expr { return append([]Expr(nil), s.nonholonomic...) }

// Loads returns the explicit loads followed by the loads of every actuator.
func (s *System) Loads() []Load {
	out := append([]Load(nil), s.loads...)
	for _, a := range s.actuators {
		out = append(out, a.Loads()...)
	}
	return out
}

// QDotMap solves the kinematic equations for the coordinate derivatives. Only
// equations linear in a single coordinate derivative with a constant
// coefficient are used.
func (s *System) QDotMap() map[Symbol]Expr {
	out := make(map[Symbol]Expr)
	for _, kde := range s.kdes {
		for _, q := range s.coordinates {
			qd := q.Derivative()
			if _, done := out[qd]; done {
				continue
			}
			if sol, ok := solveLinear(kde, qd); ok {
				out[qd] = sol
				break
			}
		}
	}
	return out
}

func solveLinear(e Expr, x Symbol) (Expr, bool) {
	var a float64
	var rest []term
	found := false
	for _, t := range e.terms {
		if len(t.factors) == 1 && t.factors[0].a.kind == atomSym && t.factors[0].a.sym == x && t.factors[0].exp == 1 {
			a += t.coeff
			found = true
			continue
		}
		rest = append(rest, t)
	}
	r := Expr{terms: rest}
	if !found || a == 0 || r.Has(x) {
		return Expr{}, false
	}
	return r.Scale(-1 / a), true
}

// Validate checks that every coordinate has a kinematic equation, that the
// number of speeds matches and that generalized coordinates are time-varying.
func (s *System) Validate() error {
	var problems []string
	for _, q := range s.coordinates {
		if !q.IsDynamic() {
			problems = append(problems, fmt.Sprintf("coordinate %s is not time-varying", q))
		}
	}
	for _, u := range s.speeds {
		if !u.IsDynamic() {
			problems = append(problems, fmt.Sprintf("speed %s is not time-varying", u))
		}
	}
	if len(s.kdes) != len(s.coordinates) {
		problems = append(problems, fmt.Sprintf("%d kinematic equations for %d coordinates", len(s.kdes), len(s.coordinates)))
	}
	if len(s.speeds) != len(s.coordinates) {
		problems = append(problems, fmt.Sprintf("%d speeds for %d coordinates", len(s.speeds), len(s.coordinates)))
	}
	if len(problems) > 0 {
		return fmt.Errorf("symbolic: invalid system: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Summary lists the contributions of a system by name.
type Summary struct {
	Frame                   string   `json:"frame"`
	Bodies                  []string `json:"bodies"`
	Joints                  []string `json:"joints"`
	Coordinates             []string `json:"coordinates"`
	Speeds                  []string `json:"speeds"`
	KinematicEquations      []string `json:"kinematic_equations"`
	Loads                   []string `json:"loads"`
	HolonomicConstraints    []string `json:"holonomic_constraints"`
	NonholonomicConstraints []string `json:"nonholonomic_constraints"`
	AuxiliarySpeeds         []string `json:"auxiliary_speeds,omitempty"`
}

func (s *System) Summary() Summary {
	sum := Summary{Frame: s.frame.name}
	for _, b := range s.bodies {
		sum.Bodies = append(sum.Bodies, b.name)
	}
	for _, j := range s.joints {
		sum.Joints = append(sum.Joints, j.name)
	}
	for _, q := range s.coordinates {
		sum.Coordinates = append(sum.Coordinates, q.String())
	}
	for _, u := range s.speeds {
		sum.Speeds = append(sum.Speeds, u.String())
	}
	for _, k := range s.kdes {
		sum.KinematicEquations = append(sum.KinematicEquations, k.String())
	}
	for _, l := range s.Loads() {
		sum.Loads = append(sum.Loads, l.Location()+": "+l.Value().String())
	}
	for _, f := range s.holonomic {
		sum.HolonomicConstraints = append(sum.HolonomicConstraints, f.String())
	}
	for _, f := range s.nonholonomic {
		sum.NonholonomicConstraints = append(sum.NonholonomicConstraints, f.String())
	}
	if s.aux != nil {
		for _, u := range s.aux.Speeds() {
			sum.AuxiliarySpeeds = append(sum.AuxiliarySpeeds, u.String())
		}
	}
	return sum
}
