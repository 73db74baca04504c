package core_test

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/symbolic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func attributes(reqs []core.Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Attribute()
	}
	return out
}

var _ = Describe("Names", func() {
	DescribeTable("valid names",
		func(name string) {
			Expect(core.ValidateName(name)).To(Succeed())
			_, err := core.NewBase(newOtherLeaf("owner"), name)
			Expect(err).NotTo(HaveOccurred())
		},
		Entry("plain", "model"),
		Entry("snake case", "my_model"),
		Entry("dash", "my-model"),
		Entry("digits", "Model1"),
	)

	DescribeTable("invalid names",
		func(name string) {
			_, err := core.NewBase(newOtherLeaf("owner"), name)
			Expect(err).To(MatchError(core.ErrInvalidName))
		},
		Entry("empty", ""),
		Entry("space only", " "),
		Entry("space", "my model"),
		Entry("comma", "my,model"),
		Entry("colon", "my:model"),
		Entry("tab", "my\tmodel"),
	)
})

var _ = Describe("Requirement", func() {
	It("derives full and type names", func() {
		r := core.Require[*leaf]("rear_frame", "Rear frame of the bicycle.")
		Expect(r.FullName()).To(Equal("Rear frame"))
		Expect(r.TypeName()).To(Equal("leaf"))
		Expect(r.IsOptional()).To(BeFalse())
	})

	It("accepts any of several kinds", func() {
		r, err := core.NewRequirement("part", []core.Kind{core.KindOf[*leaf](), core.KindOf[*otherLeaf]()}, "Part", core.Optional())
		Expect(err).NotTo(HaveOccurred())
		Expect(r.TypeName()).To(Equal("leaf or otherLeaf"))
		Expect(r.Accepts(newOtherLeaf("o"))).To(BeTrue())
		Expect(r.IsOptional()).To(BeTrue())
	})

	It("rejects attributes that are not identifiers", func() {
		_, err := core.NewRequirement("my attr", []core.Kind{core.KindOf[*leaf]()}, "")
		Expect(err).To(MatchError(core.ErrValue))
		Expect(func() { core.Require[*leaf]("1abc", "") }).To(Panic())
	})

	It("merges by attribute without touching the inputs", func() {
		base := []core.Requirement{
			core.Require[*leaf]("submodel1", "desc"),
			core.Require[*leaf]("submodel2", "desc"),
		}
		override := []core.Requirement{
			core.Require[*otherLeaf]("submodel2", "overwritten"),
			core.Require[*leaf]("submodel3", "desc"),
		}
		merged := core.MergeRequirements(base, override)
		Expect(attributes(merged)).To(Equal([]string{"submodel1", "submodel2", "submodel3"}))
		Expect(merged[1].Description()).To(Equal("overwritten"))
		Expect(base[1].Description()).To(Equal("desc"))
	})
})

var _ = Describe("Base", func() {
	var (
		rec        *recorder
		p          *parent
		sub1, sub2 *leaf
		sys        *symbolic.System
	)

	BeforeEach(func() {
		rec = &recorder{}
		p = newParent("parent", rec)
		sub1, sub2 = newLeaf("sub1", rec), newLeaf("sub2", rec)
		Expect(p.Bind("submodel1", sub1)).To(Succeed())
		Expect(p.Bind("submodel2", sub2)).To(Succeed())
		sys = newSystem()
	})

	Describe("traversal", func() {
		It("visits each sub-component once before the parent", func() {
			Expect(p.DefineObjects(sys)).To(Succeed())
			Expect(rec.calls).To(Equal([]string{"sub1", "sub2", "parent"}))
			Expect(rec.calls).To(ConsistOf("parent", "sub1", "sub2"))
		})

		It("does not execute a shared sub-component twice", func() {
			other := newParent("other", rec)
			Expect(other.Bind("submodel1", sub1)).To(Succeed())
			Expect(other.Bind("submodel2", newLeaf("sub3", rec))).To(Succeed())

			Expect(p.DefineObjects(sys)).To(Succeed())
			Expect(other.DefineObjects(sys)).To(Succeed())
			Expect(rec.calls).To(Equal([]string{"sub1", "sub2", "parent", "sub3", "other"}))
		})

		It("rejects a repeated phase", func() {
			Expect(p.DefineObjects(sys)).To(Succeed())
			Expect(p.DefineObjects(sys)).To(MatchError(core.ErrUsage))
			Expect(sub1.DefineObjects(sys)).To(MatchError(core.ErrUsage))
		})

		It("enforces phase order", func() {
			Expect(p.DefineKinematics(sys)).To(MatchError(core.ErrUsage))
			Expect(p.DefineObjects(sys)).To(Succeed())
			Expect(p.DefineLoads(sys)).To(MatchError(core.ErrUsage))
			Expect(p.DefineKinematics(newSystem())).To(MatchError(core.ErrUsage))
			Expect(p.DefineKinematics(sys)).To(Succeed())
			Expect(p.DefineConstraints(sys)).To(Succeed())
			Expect(p.DefineLoads(sys)).To(MatchError(core.ErrUsage))
		})

		It("runs every phase once with DefineAll", func() {
			Expect(p.DefineAll(sys)).To(Succeed())
			for _, ph := range core.Phases {
				Expect(p.Done(ph)).To(BeTrue(), ph.String())
			}
			Expect(p.State()).To(Equal(core.PhaseConstraints))
			Expect(rec.calls).To(Equal([]string{"sub1", "sub2", "parent", "sub1:kinematics", "sub2:kinematics"}))
		})

		It("fails on an unbound requirement", func() {
			Expect(p.Bind("submodel2", nil)).To(Succeed())
			err := p.DefineObjects(sys)
			Expect(err).To(MatchError(core.ErrMissingRequirement))
			Expect(err.Error()).To(ContainSubstring("parent.submodel2"))
		})

		It("skips unbound optional requirements", func() {
			opt := newParent("opt", rec,
				core.Require[*leaf]("submodel1", "Submodel 1"),
				core.Require[*leaf]("extra", "Extra", core.Optional()),
			)
			Expect(opt.Bind("submodel1", newLeaf("only", rec))).To(Succeed())
			Expect(opt.DefineObjects(sys)).To(Succeed())
		})
	})

	Describe("binding", func() {
		It("type checks on assignment", func() {
			Expect(p.Bind("submodel1", newOtherLeaf("other"))).To(MatchError(core.ErrType))
			Expect(p.Bind("missing", sub1)).To(MatchError(core.ErrUnknownRequirement))
			Expect(p.Bind("submodel1", p)).To(MatchError(core.ErrCycle))
		})

		It("allows rebinding until objects are defined", func() {
			replacement := newLeaf("replacement", rec)
			Expect(p.Bind("submodel1", replacement)).To(Succeed())
			Expect(p.Slot("submodel1")).To(BeIdenticalTo(replacement))
			Expect(p.DefineObjects(sys)).To(Succeed())
			Expect(p.Bind("submodel1", sub1)).To(MatchError(core.ErrUsage))
			Expect(rec.calls).NotTo(ContainElement("sub1"))
		})

		It("returns typed slots", func() {
			got, err := core.SlotAs[*leaf](p.Base, "submodel2")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(sub2))
			_, err = core.SlotAs[*otherLeaf](p.Base, "submodel2")
			Expect(err).To(MatchError(core.ErrType))
			Expect(p.Bind("submodel2", nil)).To(Succeed())
			_, err = core.SlotAs[*leaf](p.Base, "submodel2")
			Expect(err).To(MatchError(core.ErrMissingRequirement))
		})
	})

	Describe("descriptions", func() {
		BeforeEach(func() {
			Expect(p.DefineObjects(sys)).To(Succeed())
		})

		It("finds its own description", func() {
			b, _ := p.Symbol("b")
			d, ok := p.Description(b)
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal("Description of b"))
		})

		It("reads through sub-components in requirement order", func() {
			a, _ := sub2.Symbol("a")
			d, ok := p.Description(a)
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal("Description of a of sub2"))
		})

		It("returns nothing for an unknown symbol", func() {
			d, ok := p.Description(symbolic.NewSymbol("unknown"))
			Expect(ok).To(BeFalse())
			Expect(d).To(BeEmpty())
		})

		It("merges all descriptions and symbols", func() {
			Expect(p.AllDescriptions()).To(HaveLen(3))
			Expect(p.AllSymbols()).To(HaveLen(3))
			b, _ := p.Symbol("b")
			Expect(b.Name()).To(Equal("parent_b"))
		})
	})

	Describe("system", func() {
		It("is a usage error before kinematics", func() {
			_, err := p.System()
			Expect(err).To(MatchError(core.ErrUsage))
			Expect(p.DefineObjects(sys)).To(Succeed())
			_, err = p.System()
			Expect(err).To(MatchError(core.ErrUsage))
		})

		It("returns the accumulator after kinematics", func() {
			Expect(p.DefineObjects(sys)).To(Succeed())
			Expect(p.DefineKinematics(sys)).To(Succeed())
			got, err := p.System()
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(sys))
		})
	})
})

var _ = Describe("Mixins", func() {
	var (
		rec *recorder
		p   *parent
		sys *symbolic.System
	)

	BeforeEach(func() {
		rec = &recorder{}
		p = newParent("parent", rec)
		Expect(p.Bind("submodel1", newLeaf("sub1", rec))).To(Succeed())
		Expect(p.Bind("submodel2", newLeaf("sub2", rec))).To(Succeed())
		sys = newSystem()
	})

	It("adds a capability while keeping identity and bindings", func() {
		capability := core.NewCapability("MyMixin")
		sub1 := p.Slot("submodel1")
		Expect(p.AddMixin(&core.Mixin{Name: "my_mixin", Capability: capability})).To(Succeed())

		Expect(core.HasCapability(p, capability)).To(BeTrue())
		var m core.Model = p
		_, isParent := m.(*parent)
		Expect(isParent).To(BeTrue())
		Expect(p.Slot("submodel1")).To(BeIdenticalTo(sub1))
		Expect(core.HasCapability(p, core.NewCapability("MyMixin"))).To(BeFalse())
	})

	It("puts mixin requirements first and keeps existing descriptors", func() {
		mx := core.Mixin{
			Name:       "complex",
			Capability: core.NewCapability("Complex"),
			Requirements: []core.Requirement{
				core.Require[*leaf]("submodel2", "overwritten"),
				core.Require[*leaf]("submodel3", "desc"),
			},
		}
		before := p.Requirements()
		Expect(p.AddMixin(mx)).To(Succeed())

		reqs := p.Requirements()
		Expect(attributes(reqs)).To(Equal([]string{"submodel2", "submodel3", "submodel1"}))
		Expect(reqs[0].Description()).To(Equal("Submodel 2"))
		Expect(attributes(before)).To(Equal([]string{"submodel1", "submodel2"}))
		Expect(attributes(parentRequirements)).To(Equal([]string{"submodel1", "submodel2"}))

		Expect(p.DefineObjects(sys)).To(MatchError(core.ErrMissingRequirement))
	})

	It("rejects values that are not fragments", func() {
		Expect(p.AddMixin(newLeaf("instance", rec))).To(MatchError(core.ErrInvalidMixin))
		Expect(p.AddMixin(&core.Mixin{Name: "bare"})).To(MatchError(core.ErrInvalidMixin))
	})

	It("rejects a capability attached twice", func() {
		c := core.NewCapability("Once")
		Expect(p.AddMixin(&core.Mixin{Capability: c})).To(Succeed())
		Expect(p.AddMixin(&core.Mixin{Capability: c})).To(MatchError(core.ErrInvalidMixin))
	})

	It("runs hooks in declared precedence", func() {
		hook := func(tag string) core.Hook {
			return func(m core.Model, _ *symbolic.System) error {
				rec.add(tag + ":" + m.Name())
				return nil
			}
		}
		Expect(p.AddMixin(&core.Mixin{Capability: core.NewCapability("a"), Objects: hook("after1")})).To(Succeed())
		Expect(p.AddMixin(&core.Mixin{Capability: core.NewCapability("b"), Objects: hook("before1"), Precedence: core.BeforeOwner})).To(Succeed())
		Expect(p.AddMixin(&core.Mixin{Capability: core.NewCapability("c"), Objects: hook("after2")})).To(Succeed())
		Expect(p.AddMixin(&core.Mixin{Capability: core.NewCapability("d"), Objects: hook("before2"), Precedence: core.BeforeOwner})).To(Succeed())

		Expect(p.DefineObjects(sys)).To(Succeed())
		Expect(rec.calls).To(Equal([]string{
			"sub1", "sub2",
			"before2:parent", "before1:parent", "parent", "after1:parent", "after2:parent",
		}))
	})

	It("cannot be attached once objects are defined", func() {
		Expect(p.DefineObjects(sys)).To(Succeed())
		Expect(p.AddMixin(&core.Mixin{Capability: core.NewCapability("late")})).To(MatchError(core.ErrUsage))
	})

	It("makes a component satisfy capability requirements", func() {
		c := core.NewCapability("Special")
		r, err := core.NewRequirement("special", []core.Kind{core.CapabilityKind(c)}, "Special part")
		Expect(err).NotTo(HaveOccurred())
		holder := newParent("holder", rec, r)
		plain := newLeaf("plain", rec)

		Expect(holder.Bind("special", plain)).To(MatchError(core.ErrType))
		Expect(plain.AddMixin(&core.Mixin{Capability: c})).To(Succeed())
		Expect(holder.Bind("special", plain)).To(Succeed())
	})
})

var _ = Describe("Connections", func() {
	var (
		rec  *recorder
		a, b *leaf
		conn *link
		sys  *symbolic.System
	)

	BeforeEach(func() {
		rec = &recorder{}
		a, b = newLeaf("a", rec), newLeaf("b", rec)
		conn = newLink("link", rec)
		sys = newSystem()
	})

	It("requires every peer", func() {
		Expect(conn.Bind("first", a)).To(Succeed())
		Expect(conn.DefineConnections()).To(MatchError(core.ErrConfiguration))
	})

	It("requires distinct peers", func() {
		Expect(conn.Bind("first", a)).To(Succeed())
		Expect(conn.Bind("second", a)).To(Succeed())
		Expect(conn.DefineConnections()).To(MatchError(core.ErrConfiguration))
	})

	It("does not traverse peers and waits for them", func() {
		Expect(conn.Bind("first", a)).To(Succeed())
		Expect(conn.Bind("second", b)).To(Succeed())
		Expect(conn.DefineConnections()).To(Succeed())
		Expect(conn.DefineObjects(sys)).To(MatchError(core.ErrUsage))
		Expect(rec.calls).To(BeEmpty())

		Expect(a.DefineObjects(sys)).To(Succeed())
		Expect(b.DefineObjects(sys)).To(Succeed())
		Expect(conn.DefineObjects(sys)).To(Succeed())
		Expect(rec.calls).To(Equal([]string{"a", "b"}))
	})

	It("runs after the owner's non-connection sub-components", func() {
		owner := newParent("owner", rec,
			core.Require[*link]("link", "Link"),
			core.Require[*leaf]("submodel1", "Submodel 1"),
			core.Require[*leaf]("submodel2", "Submodel 2"),
		)
		Expect(conn.Bind("first", a)).To(Succeed())
		Expect(conn.Bind("second", b)).To(Succeed())
		Expect(owner.Bind("link", conn)).To(Succeed())
		Expect(owner.Bind("submodel1", a)).To(Succeed())
		Expect(owner.Bind("submodel2", b)).To(Succeed())

		Expect(owner.DefineObjects(sys)).To(Succeed())
		Expect(owner.DefineKinematics(sys)).To(Succeed())
		Expect(rec.calls).To(Equal([]string{"a", "b", "owner", "a:kinematics", "b:kinematics", "link:kinematics"}))
	})
})

var _ = Describe("Load groups", func() {
	var (
		rec  *recorder
		conn *link
		sys  *symbolic.System
	)

	BeforeEach(func() {
		rec = &recorder{}
		a, b := newLeaf("a", rec), newLeaf("b", rec)
		conn = newLink("link", rec)
		Expect(conn.Bind("first", a)).To(Succeed())
		Expect(conn.Bind("second", b)).To(Succeed())
		sys = newSystem()
		Expect(a.DefineObjects(sys)).To(Succeed())
		Expect(b.DefineObjects(sys)).To(Succeed())
		Expect(a.DefineKinematics(sys)).To(Succeed())
		Expect(b.DefineKinematics(sys)).To(Succeed())
	})

	It("checks the parent kind", func() {
		g := newPush("push", rec)
		Expect(newLeaf("wrong", rec).AddLoadGroups(g)).To(MatchError(core.ErrType))
		Expect(conn.AddLoadGroups(newLeaf("not_a_group", rec))).To(MatchError(core.ErrType))
		Expect(conn.AddLoadGroups(g)).To(Succeed())
		Expect(g.Parent()).To(BeIdenticalTo(conn))
		Expect(newLink("other", rec).AddLoadGroups(g)).To(MatchError(core.ErrValue))
	})

	It("attaches nothing when one group of a batch is rejected", func() {
		good := newPush("good", rec)
		Expect(conn.AddLoadGroups(good, newLeaf("not_a_group", rec))).To(MatchError(core.ErrType))
		Expect(conn.LoadGroups()).To(BeEmpty())
		Expect(good.Parent()).To(BeNil())
		Expect(conn.AddLoadGroups(good, good)).To(MatchError(core.ErrValue))
		Expect(conn.LoadGroups()).To(BeEmpty())
		Expect(conn.AddLoadGroups(good)).To(Succeed())
		Expect(conn.LoadGroups()).To(HaveLen(1))
	})

	It("runs after the parent's own loads", func() {
		g := newPush("push", rec)
		Expect(conn.AddLoadGroups(g)).To(Succeed())
		Expect(conn.DefineObjects(sys)).To(Succeed())
		Expect(conn.DefineKinematics(sys)).To(Succeed())
		Expect(g.DefineLoads(sys)).To(MatchError(core.ErrUsage))
		Expect(conn.DefineLoads(sys)).To(Succeed())
		Expect(rec.calls[len(rec.calls)-2:]).To(Equal([]string{"link:loads", "push:loads"}))
		Expect(g.Done(core.PhaseLoads)).To(BeTrue())
	})

	It("cannot be attached after objects", func() {
		Expect(conn.DefineObjects(sys)).To(Succeed())
		Expect(conn.AddLoadGroups(newPush("late", rec))).To(MatchError(core.ErrUsage))
	})
})

var _ = Describe("Factory", func() {
	var f *core.Factory[core.Model]

	BeforeEach(func() {
		f = core.NewFactory[core.Model]("leaf", "plain")
		f.Register("plain", func(name string) (core.Model, error) { return newLeaf(name, &recorder{}), nil })
		f.Register("other", func(name string) (core.Model, error) { return newOtherLeaf(name), nil })
	})

	It("builds the selected formulation", func() {
		m, err := f.New("x", "other")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(BeAssignableToTypeOf(&otherLeaf{}))
		m, err = f.New("y", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(BeAssignableToTypeOf(&leaf{}))
		Expect(f.Formulations()).To(Equal([]string{"other", "plain"}))
	})

	It("names an unknown selector", func() {
		_, err := f.New("x", "moore")
		Expect(err).To(MatchError(core.ErrNotImplemented))
		Expect(err.Error()).To(ContainSubstring(`"moore"`))
	})

	It("panics on duplicate registration", func() {
		Expect(func() {
			f.Register("plain", func(name string) (core.Model, error) { return nil, nil })
		}).To(Panic())
	})
})
