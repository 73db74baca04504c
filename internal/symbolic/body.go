package symbolic

// Inertia is a symmetric inertia dyadic about a point, measured in a frame.
type Inertia struct {
	Frame                        *Frame
	Point                        *Point
	Ixx, Iyy, Izz, Ixy, Iyz, Izx Expr
}

type RigidBody struct {
	name       string
	Frame      *Frame
	MassCenter *Point
	Mass       Expr
	Inertia    Inertia
}

// NewRigidBody returns a body with its own frame and mass center named after it.
// Mass and inertia are left zero for the caller to fill.
func NewRigidBody(name string) *RigidBody {
	b := &RigidBody{
		name:       name,
		Frame:      NewFrame(name + "_frame"),
		MassCenter: NewPoint(name + "_masscenter"),
	}
	b.Inertia = Inertia{Frame: b.Frame, Point: b.MassCenter}
	return b
}

func (b *RigidBody) Name() string   { return b.name }
func (b *RigidBody) String() string { return b.name }
