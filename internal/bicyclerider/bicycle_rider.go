// Package bicyclerider couples a bicycle and a rider.
package bicyclerider

import (
	"github.com/san-kum/brim/internal/bicycle"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/rider"
)

// Seat connects the rear frame of a bicycle to the pelvis of a rider.
type Seat interface {
	core.Model
	RearFrame() bicycle.RearFrame
	Pelvis() rider.Pelvis
}

var bicycleRiderRequirements = []core.Requirement{
	core.Require[bicycle.Bicycle]("bicycle", "Bicycle model."),
	core.Require[*rider.Rider]("rider", "Rider model."),
	core.Require[Seat]("seat", "Seat connection between the bicycle and the rider.", core.Optional()),
}

type BicycleRider struct {
	*core.Base
}

func NewBicycleRider(name string) (*BicycleRider, error) {
	br := &BicycleRider{}
	b, err := core.NewBase(br, name, bicycleRiderRequirements...)
	if err != nil {
		return nil, err
	}
	br.Base = b
	return br, nil
}

func (br *BicycleRider) Bicycle() bicycle.Bicycle {
	b, _ := br.Slot("bicycle").(bicycle.Bicycle)
	return b
}

func (br *BicycleRider) Rider() *rider.Rider {
	r, _ := br.Slot("rider").(*rider.Rider)
	return r
}

// OnDefineConnections binds the seat to the rear frame and the pelvis.
func (br *BicycleRider) OnDefineConnections() error {
	seat, ok := br.Slot("seat").(Seat)
	if !ok {
		return nil
	}
	bike, err := core.SlotAs[bicycle.Bicycle](br.Base, "bicycle")
	if err != nil {
		return err
	}
	r, err := core.SlotAs[*rider.Rider](br.Base, "rider")
	if err != nil {
		return err
	}
	if rf := bike.RearFrame(); rf != nil {
		if err := seat.Core().Bind("rear_frame", rf); err != nil {
			return err
		}
	}
	if p := r.Pelvis(); p != nil {
		if err := seat.Core().Bind("pelvis", p); err != nil {
			return err
		}
	}
	return nil
}
