package core

// Phase is a lifecycle step.
type Phase uint8

const (
	PhaseUninitialized Phase = iota
	PhaseConnections
	PhaseObjects
	PhaseKinematics
	PhaseLoads
	PhaseConstraints
)

// Phases lists the lifecycle in execution order.
var Phases = []Phase{PhaseConnections, PhaseObjects, PhaseKinematics, PhaseLoads, PhaseConstraints}

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseConnections:
		return "connections"
	case PhaseObjects:
		return "objects"
	case PhaseKinematics:
		return "kinematics"
	case PhaseLoads:
		return "loads"
	case PhaseConstraints:
		return "constraints"
	default:
		return "unknown"
	}
}

type phaseSet uint8

func (s phaseSet) has(p Phase) bool { return s&(1<<p) != 0 }
func (s *phaseSet) add(p Phase)     { *s |= 1 << p }
func (s *phaseSet) remove(p Phase)  { *s &^= 1 << p }
