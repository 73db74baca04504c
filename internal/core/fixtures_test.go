package core_test

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"
)

func newSystem() *symbolic.System {
	return symbolic.NewSystem(symbolic.NewFrame("inertial"), symbolic.NewPoint("origin"))
}

// recorder collects the order in which hooks run.
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

type leaf struct {
	*core.Base
	rec *recorder
}

func newLeaf(name string, rec *recorder) *leaf {
	l := &leaf{rec: rec}
	b, err := core.NewBase(l, name)
	if err != nil {
		panic(err)
	}
	l.Base = b
	return l
}

func (l *leaf) OnDefineObjects(*symbolic.System) error {
	l.rec.add(l.Name())
	l.NewSymbol("a", "Description of a of "+l.Name())
	return nil
}

func (l *leaf) OnDefineKinematics(*symbolic.System) error {
	l.rec.add(l.Name() + ":kinematics")
	return nil
}

type otherLeaf struct {
	*core.Base
}

func newOtherLeaf(name string) *otherLeaf {
	o := &otherLeaf{}
	b, err := core.NewBase(o, name)
	if err != nil {
		panic(err)
	}
	o.Base = b
	return o
}

var parentRequirements = []core.Requirement{
	core.Require[*leaf]("submodel1", "Submodel 1"),
	core.Require[*leaf]("submodel2", "Submodel 2"),
}

type parent struct {
	*core.Base
	rec *recorder
}

func newParent(name string, rec *recorder, reqs ...core.Requirement) *parent {
	if reqs == nil {
		reqs = parentRequirements
	}
	p := &parent{rec: rec}
	b, err := core.NewBase(p, name, reqs...)
	if err != nil {
		panic(err)
	}
	p.Base = b
	return p
}

func (p *parent) OnDefineObjects(*symbolic.System) error {
	p.rec.add(p.Name())
	p.NewSymbol("b", "Description of b")
	return nil
}

type link struct {
	*core.Base
	rec *recorder
}

var linkPeers = []core.Requirement{
	core.Require[*leaf]("first", "First peer"),
	core.Require[*leaf]("second", "Second peer"),
}

func newLink(name string, rec *recorder) *link {
	l := &link{rec: rec}
	b, err := core.NewConnectionBase(l, name, linkPeers...)
	if err != nil {
		panic(err)
	}
	l.Base = b
	return l
}

func (l *link) OnDefineKinematics(*symbolic.System) error {
	l.rec.add(l.Name() + ":kinematics")
	return nil
}

type push struct {
	*core.Base
	rec *recorder
}

func newPush(name string, rec *recorder) *push {
	g := &push{rec: rec}
	b, err := core.NewLoadGroupBase(g, name, core.KindOf[*link]())
	if err != nil {
		panic(err)
	}
	g.Base = b
	return g
}

func (g *push) OnDefineLoads(*symbolic.System) error {
	g.rec.add(g.Name() + ":loads")
	return nil
}

func (l *link) OnDefineLoads(*symbolic.System) error {
	l.rec.add(l.Name() + ":loads")
	return nil
}
