package symbolic

// Load is a force applied at a point or a torque applied to a frame.
type Load interface {
	Location() string
	Value() Vector
}

type Force struct {
	Point *Point
	Vec   Vector
}

func (f Force) Location() string { return f.Point.name }
func (f Force) Value() Vector    { return f.Vec }

type Torque struct {
	Frame *Frame
	Vec   Vector
}

func (t Torque) Location() string { return t.Frame.name }
func (t Torque) Value() Vector    { return t.Vec }

// TorqueActuator applies Magnitude*Axis on Target and the opposite torque on Reaction.
type TorqueActuator struct {
	Magnitude Expr
	Axis      Vector
	Target    *Frame
	Reaction  *Frame
}

func NewTorqueActuator(magnitude Expr, axis Vector, target, reaction *Frame) *TorqueActuator {
	return &TorqueActuator{Magnitude: magnitude, Axis: axis, Target: target, Reaction: reaction}
}

func (a *TorqueActuator) Loads() []Load {
	t := a.Axis.Scale(a.Magnitude)
	out := []Load{Torque{Frame: a.Target, Vec: t}}
	if a.Reaction != nil {
		out = append(out, Torque{Frame: a.Reaction, Vec: t.Neg()})
	}
	return out
}
