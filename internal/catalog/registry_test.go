package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/san-kum/brim/internal/bicycle"
	"github.com/san-kum/brim/internal/bicyclerider"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/rider"
)

func TestGetComponent(t *testing.T) {
	r := NewRegistry()
	for _, kind := range r.ListKinds() {
		m, err := r.GetComponent(kind, Spec{Name: "c"})
		if err != nil {
			t.Errorf("%s: unexpected error %v", kind, err)
			continue
		}
		if m.Name() != "c" {
			t.Errorf("%s: expected name c, got %s", kind, m.Name())
		}
	}
}

func TestGetComponentOptions(t *testing.T) {
	r := NewRegistry()
	m, err := r.GetComponent("flat_ground", Spec{Name: "ground", Options: map[string]string{"normal": "+y"}})
	if err != nil {
		t.Fatal(err)
	}
	g := m.(*bicycle.FlatGround)
	if axis, sign := g.NormalAxis(); axis != 1 || sign != 1 {
		t.Errorf("expected normal +y, got axis %d sign %g", axis, sign)
	}

	if _, err := r.GetComponent("flat_ground", Spec{Name: "ground", Options: map[string]string{"normal": "up"}}); !errors.Is(err, core.ErrValue) {
		t.Errorf("expected ErrValue, got %v", err)
	}
}

func TestGetComponentErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.GetComponent("unicycle", Spec{Name: "u"}); err == nil || err.Error() != "unknown kind: unicycle" {
		t.Errorf("expected unknown kind error, got %v", err)
	}
	if _, err := r.GetComponent("rider", Spec{Name: "rider", Formulation: "tall"}); !errors.Is(err, core.ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
	if _, err := r.GetComponent("pelvis", Spec{Name: "pelvis", Formulation: "tall"}); !errors.Is(err, core.ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
	if _, err := r.GetComponent("rider", Spec{Name: "bad name"}); !errors.Is(err, core.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestLoadGroupsAndMixins(t *testing.T) {
	r := NewRegistry()
	for _, kind := range r.ListLoadGroups() {
		g, err := r.GetLoadGroup(kind, "g")
		if err != nil {
			t.Errorf("%s: unexpected error %v", kind, err)
			continue
		}
		if !g.Core().IsLoadGroup() {
			t.Errorf("%s: expected a load group", kind)
		}
	}
	if _, err := r.GetLoadGroup("gravity", "g"); err == nil {
		t.Error("expected error for unknown load group")
	}

	mx, err := r.GetMixin("normal_force")
	if err != nil {
		t.Fatal(err)
	}
	if mx.Capability != bicycle.NormalForceCapability {
		t.Error("expected the normal force capability")
	}
	if _, err := r.GetMixin("drag"); err == nil {
		t.Error("expected error for unknown mixin")
	}
}

func TestFormulations(t *testing.T) {
	r := NewRegistry()
	if got := r.Formulations("rear_frame"); len(got) != 1 || got[0] != "moore" {
		t.Errorf("expected [moore], got %v", got)
	}
	if got := r.Formulations("pelvis"); len(got) != 2 {
		t.Errorf("expected 2 pelvis formulations, got %v", got)
	}
	if got := r.Formulations("rider"); got != nil {
		t.Errorf("expected no formulations, got %v", got)
	}
}

func TestSatisfying(t *testing.T) {
	r := NewRegistry()
	disc, err := bicycle.NewRollingDisc("disc")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		attr string
		want []string
	}{
		{"ground", []string{"flat_ground"}},
		{"disc", []string{"knife_edge_wheel"}},
		{"tire", []string{"non_holonomic_tire"}},
	}
	for _, tt := range tests {
		got, err := r.SatisfyingSlot(disc, tt.attr)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.attr, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.attr, tt.want, got)
		}
	}

	if _, err := r.SatisfyingSlot(disc, "not_a_submodel"); !errors.Is(err, core.ErrUnknownRequirement) {
		t.Errorf("expected ErrUnknownRequirement, got %v", err)
	}

	pelvis := core.Require[rider.Pelvis]("pelvis", "Pelvis of the rider.")
	if got := r.Satisfying(pelvis); !reflect.DeepEqual(got, []string{"pelvis"}) {
		t.Errorf("expected [pelvis], got %v", got)
	}
}

func TestLoadGroupsFor(t *testing.T) {
	r := NewRegistry()
	seat, err := bicyclerider.NewSideLeanSeat("seat")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"side_lean_seat_spring_damper", "side_lean_seat_torque"}
	if got := r.LoadGroupsFor(seat); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	bike, err := bicycle.NewStationaryBicycle("bicycle")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.LoadGroupsFor(bike); !reflect.DeepEqual(got, []string{"wheel_torque"}) {
		t.Errorf("expected [wheel_torque], got %v", got)
	}

	wheel, err := bicycle.NewKnifeEdgeWheel("wheel")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.LoadGroupsFor(wheel); len(got) != 0 {
		t.Errorf("expected no load groups, got %v", got)
	}
}
