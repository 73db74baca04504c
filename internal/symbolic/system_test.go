package symbolic

import (
	"errors"
	"testing"
)

func TestSystemAccumulates(t *testing.T) {
	n := NewFrame("N")
	sys := NewSystem(n, NewPoint("O"))

	q, u := NewDynamicSymbol("q"), NewDynamicSymbol("u")
	parent, child := NewRigidBody("parent"), NewRigidBody("child")
	if err := parent.Frame.OrientFixed(n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	j, err := NewPinJoint("pin", parent, child, q, u, parent.MassCenter, child.MassCenter, parent.Frame.Z(), child.Frame.Z())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sys.AddBodies(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sys.AddJoints(j); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sys.Bodies()) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(sys.Bodies()))
	}
	if err := sys.AddBodies(child); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if err := sys.AddCoordinates(q); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	qd := sys.QDotMap()
	if sol, ok := qd[q.Derivative()]; !ok || !sol.Equal(u.Expr()) {
		t.Errorf("expected q' = u, got %v", qd)
	}
	if err := sys.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	T := NewDynamicSymbol("T")
	sys.AddActuators(NewTorqueActuator(T.Expr(), parent.Frame.Z(), child.Frame, parent.Frame))
	loads := sys.Loads()
	if len(loads) != 2 {
		t.Fatalf("expected 2 loads, got %d", len(loads))
	}
	sum := loads[0].Value().Add(loads[1].Value())
	if !sum.IsZero() {
		t.Errorf("expected opposite torques, got %s", sum)
	}

	summary := sys.Summary()
	if summary.Frame != "N" || len(summary.Coordinates) != 1 || len(summary.Loads) != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestSystemValidate(t *testing.T) {
	sys := NewSystem(NewFrame("N"), NewPoint("O"))
	if err := sys.AddCoordinates(NewSymbol("c")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sys.Validate(); err == nil {
		t.Error("expected error for a static coordinate without equations")
	}
}
