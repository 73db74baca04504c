package rider

import "github.com/san-kum/brim/internal/core"

var riderRequirements = []core.Requirement{
	core.Require[Pelvis]("pelvis", "Pelvis of the rider."),
}

// Rider groups the body parts of a rider.
type Rider struct {
	*core.Base
}

func NewRider(name string) (*Rider, error) {
	r := &Rider{}
	b, err := core.NewBase(r, name, riderRequirements...)
	if err != nil {
		return nil, err
	}
	r.Base = b
	return r, nil
}

func (r *Rider) Pelvis() Pelvis {
	p, _ := r.Slot("pelvis").(Pelvis)
	return p
}
