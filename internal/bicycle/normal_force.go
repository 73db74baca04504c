package bicycle

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

// NormalForceCapability marks tires that apply the ground reaction at their
// contact point.
var NormalForceCapability = core.NewCapability("normal_force")

// NormalForce returns a mixin for a Tire computing the normal force Fz as a
// noncontributing force: the contact point gets the auxiliary speed uaux_z
// along the ground normal and Fz acts along the normal at an auxiliary point.
func NormalForce() *core.Mixin {
	return &core.Mixin{
		Name:       "normal_force",
		Capability: NormalForceCapability,
		Objects: func(m core.Model, _ *symbolic.System) error {
			m.Core().NewDynamicSymbol("Fz", "Normal force of the ground on the wheel at the contact point.")
			m.Core().NewDynamicSymbol("uaux_z", "Auxiliary speed to compute the normal force.")
			return nil
		},
		Kinematics: func(m core.Model, sys *symbolic.System) error {
			tire, ground, err := normalForcePeers(m, core.PhaseKinematics)
			if err != nil {
				return err
			}
			fz, _ := m.Core().Symbol("Fz")
			uaux, _ := m.Core().Symbol("uaux_z")
			_, err = sys.Auxiliary().AddNoncontributingForce(tire.ContactPoint(), ground.Normal(), uaux, fz)
			return err
		},
		Loads: func(m core.Model, sys *symbolic.System) error {
			tire, _, err := normalForcePeers(m, core.PhaseLoads)
			if err != nil {
				return err
			}
			for _, f := range sys.Auxiliary().Forces() {
				if f.Point == tire.ContactPoint() {
					sys.AddLoads(sys.Auxiliary().Load(f))
				}
			}
			return nil
		},
	}
}

func normalForcePeers(m core.Model, p core.Phase) (Tire, Ground, error) {
	tire, ok := m.(Tire)
	if !ok {
		return nil, nil, componentErr(m.Name(), "", p, core.ErrType, "normal force applies to tires")
	}
	ground, err := core.SlotAs[Ground](m.Core(), "ground")
	if err != nil {
		return nil, nil, err
	}
	return tire, ground, nil
}
