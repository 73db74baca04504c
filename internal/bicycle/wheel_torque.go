package bicycle

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

// WheelTorque drives the rear wheel of a stationary bicycle relative to its
// rear frame.
type WheelTorque struct {
	*core.Base
	torque symbolic.Symbol
}

func NewWheelTorque(name string) (*WheelTorque, error) {
	w := &WheelTorque{}
	b, err := core.NewLoadGroupBase(w, name, core.KindOf[*StationaryBicycle]())
	if err != nil {
		return nil, err
	}
	w.Base = b
	return w, nil
}

func (w *WheelTorque) OnDefineObjects(*symbolic.System) error {
	w.torque = w.NewDynamicSymbol("T", "Torque applied to the rear wheel about its rotation axis.")
	return nil
}

func (w *WheelTorque) OnDefineLoads(sys *symbolic.System) error {
	bike := w.Parent().(*StationaryBicycle)
	wheel := bike.RearWheel()
	if wheel == nil {
		return componentErr(w.Name(), "", core.PhaseLoads, core.ErrConfiguration, bike.Name()+" has no rear wheel")
	}
	sys.AddActuators(symbolic.NewTorqueActuator(w.torque.Expr(), wheel.RotationAxis(), wheel.Frame(), bike.RearFrame().Frame()))
	return nil
}
