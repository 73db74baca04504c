package bicycle

import (
	"github.com/san-kum/brim/internal/body"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

// KnifeEdgeWheel is a thin rigid disc rotating about its frame's y axis.
type KnifeEdgeWheel struct {
	*core.Base
	body.Newtonian
	radius symbolic.Symbol
}

func NewKnifeEdgeWheel(name string) (*KnifeEdgeWheel, error) {
	w := &KnifeEdgeWheel{}
	b, err := core.NewBase(w, name)
	if err != nil {
		return nil, err
	}
	w.Base = b
	return w, nil
}

func (w *KnifeEdgeWheel) OnDefineObjects(sys *symbolic.System) error {
	rb, err := w.DefineBody(w.Base, sys, "ixx", "iyy")
	if err != nil {
		return err
	}
	rb.Inertia.Izz = rb.Inertia.Ixx
	w.radius = w.NewSymbol("r", "Radius of the wheel.")
	return nil
}

func (w *KnifeEdgeWheel) Center() *symbolic.Point       { return w.Body().MassCenter }
func (w *KnifeEdgeWheel) RotationAxis() symbolic.Vector { return w.Y() }
func (w *KnifeEdgeWheel) Radius() symbolic.Expr         { return w.radius.Expr() }
