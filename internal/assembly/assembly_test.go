package assembly_test

import (
	"github.com/san-kum/brim/internal/assembly"
	"github.com/san-kum/brim/internal/bicycle"
	"github.com/san-kum/brim/internal/bicyclerider"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/rider"
	"github.com/san-kum/brim/internal/symbolic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type node struct {
	*core.Base
}

func newNode(name string) *node {
	n := &node{}
	b, err := core.NewBase(n, name, core.Require[*node]("next", "Next node.", core.Optional()))
	if err != nil {
		panic(err)
	}
	n.Base = b
	return n
}

type seated struct {
	rearFrame bicycle.RearFrame
	pelvis    rider.Pelvis
	bike      *bicycle.StationaryBicycle
	rider     *rider.Rider
	seat      *bicyclerider.SideLeanSeat
	model     *bicyclerider.BicycleRider
}

func newSeated() seated {
	var s seated
	var err error
	s.rearFrame, err = bicycle.NewRearFrame("rear_frame", "")
	Expect(err).NotTo(HaveOccurred())
	s.pelvis, err = rider.NewPelvis("pelvis", "")
	Expect(err).NotTo(HaveOccurred())
	s.bike, err = bicycle.NewStationaryBicycle("bicycle")
	Expect(err).NotTo(HaveOccurred())
	s.rider, err = rider.NewRider("rider")
	Expect(err).NotTo(HaveOccurred())
	s.seat, err = bicyclerider.NewSideLeanSeat("seat")
	Expect(err).NotTo(HaveOccurred())
	s.model, err = bicyclerider.NewBicycleRider("bicycle_rider")
	Expect(err).NotTo(HaveOccurred())

	Expect(s.bike.Bind("rear_frame", s.rearFrame)).To(Succeed())
	Expect(s.rider.Bind("pelvis", s.pelvis)).To(Succeed())
	Expect(s.model.Bind("bicycle", s.bike)).To(Succeed())
	Expect(s.model.Bind("rider", s.rider)).To(Succeed())
	Expect(s.model.Bind("seat", s.seat)).To(Succeed())
	return s
}

func names(ms []core.Model) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name()
	}
	return out
}

var _ = Describe("Assembly", func() {
	var a *assembly.Assembly

	BeforeEach(func() {
		var err error
		a, err = assembly.New("model")
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects invalid names", func() {
		_, err := assembly.New("my model")
		Expect(err).To(MatchError(core.ErrInvalidName))
	})

	It("names the inertial frame and origin after itself", func() {
		sys, err := assembly.New("bike")
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.DefineAll()).To(Succeed())
		s, err := sys.System()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Frame().Name()).To(Equal("bike_inertial_frame"))
		Expect(s.FixedPoint().Name()).To(Equal("bike_origin"))
	})

	Context("with a seated rider", func() {
		var s seated

		BeforeEach(func() {
			s = newSeated()
			Expect(a.Add(s.model)).To(Succeed())
		})

		It("orders slots before owners and connections after their peers", func() {
			Expect(a.DefineConnections()).To(Succeed())
			order, err := a.Order()
			Expect(err).NotTo(HaveOccurred())
			Expect(names(order)).To(Equal([]string{"rear_frame", "bicycle", "pelvis", "rider", "bicycle_rider", "seat"}))
		})

		It("builds the system", func() {
			Expect(a.DefineAll()).To(Succeed())
			sys, err := a.System()
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Joints()).To(HaveLen(1))
			Expect(sys.Coordinates()).To(ConsistOf(s.seat.Coordinate()))
			Expect(sys.Validate()).To(Succeed())
		})

		It("hides the system before kinematics", func() {
			_, err := a.System()
			Expect(err).To(MatchError(core.ErrUsage))
			Expect(a.DefineObjects()).To(Succeed())
			_, err = a.System()
			Expect(err).To(MatchError(core.ErrUsage))
			Expect(a.DefineKinematics()).To(Succeed())
			sys, err := a.System()
			Expect(err).NotTo(HaveOccurred())
			Expect(sys).NotTo(BeNil())
		})

		It("runs the connections phase before objects", func() {
			Expect(a.DefineObjects()).To(Succeed())
			Expect(a.Done(core.PhaseConnections)).To(BeTrue())
			Expect(s.seat.RearFrame()).To(BeIdenticalTo(s.rearFrame))
		})

		It("enforces the phase order", func() {
			Expect(a.DefineKinematics()).To(MatchError(core.ErrUsage))
			Expect(a.DefineObjects()).To(Succeed())
			Expect(a.DefineObjects()).To(MatchError(core.ErrUsage))
			Expect(a.DefineKinematics()).To(Succeed())
			Expect(a.DefineConstraints()).To(Succeed())
			Expect(a.DefineLoads()).To(MatchError(core.ErrUsage))
		})

		It("refuses components after objects", func() {
			Expect(a.DefineObjects()).To(Succeed())
			Expect(a.Add(newNode("late"))).To(MatchError(core.ErrUsage))
		})

		It("merges descriptions", func() {
			Expect(a.DefineAll()).To(Succeed())
			alpha, ok := s.seat.Symbol("alpha")
			Expect(ok).To(BeTrue())
			d, ok := a.Description(alpha)
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal("Angle of the rider lean axis."))

			_, ok = a.Description(symbolic.NewSymbol("unknown"))
			Expect(ok).To(BeFalse())

			entries, err := a.Descriptions()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).NotTo(BeEmpty())
			for i := 1; i < len(entries); i++ {
				Expect(entries[i-1].Symbol.Name() < entries[i].Symbol.Name()).To(BeTrue())
			}
			var owner string
			for _, e := range entries {
				if e.Symbol == alpha {
					owner = e.Owner
				}
			}
			Expect(owner).To(Equal("seat"))
		})

		It("lists load groups after their parent", func() {
			sd, err := bicyclerider.NewSideLeanSeatSpringDamper("seat_spring")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.seat.AddLoadGroups(sd)).To(Succeed())
			Expect(a.DefineAll()).To(Succeed())
			comps, err := a.Components()
			Expect(err).NotTo(HaveOccurred())
			Expect(names(comps)[len(comps)-2:]).To(Equal([]string{"seat", "seat_spring"}))
			sys, _ := a.System()
			Expect(sys.Actuators()).To(HaveLen(1))
		})

		It("reports phase boundaries to the observer", func() {
			var events []string
			obs, err := assembly.New("observed", assembly.WithObserver(func(p core.Phase, name string) {
				events = append(events, p.String()+":"+name)
			}))
			Expect(err).NotTo(HaveOccurred())
			other := newSeated()
			Expect(obs.Add(other.model)).To(Succeed())
			Expect(obs.DefineObjects()).To(Succeed())
			Expect(events[0]).To(Equal(core.PhaseConnections.String() + ":bicycle_rider"))
			Expect(events).To(ContainElement(core.PhaseObjects.String() + ":seat"))
		})
	})

	It("connects top-level connections after their peers", func() {
		s := newSeated()
		Expect(a.Add(s.bike, s.rider)).To(Succeed())
		Expect(s.seat.Bind("rear_frame", s.rearFrame)).To(Succeed())
		Expect(s.seat.Bind("pelvis", s.pelvis)).To(Succeed())
		Expect(a.Connect(s.seat)).To(Succeed())

		Expect(a.DefineAll()).To(Succeed())
		order, err := a.Order()
		Expect(err).NotTo(HaveOccurred())
		Expect(names(order)).To(Equal([]string{"rear_frame", "bicycle", "pelvis", "rider", "seat"}))
		sys, _ := a.System()
		Expect(sys.Joints()).To(HaveLen(1))
	})

	It("rejects misplaced and repeated components", func() {
		s := newSeated()
		Expect(a.Connect(s.bike)).To(MatchError(core.ErrType))
		Expect(a.Add(s.seat)).To(MatchError(core.ErrType))
		Expect(a.Add(s.bike)).To(Succeed())
		Expect(a.Add(s.bike)).To(MatchError(core.ErrValue))
	})

	It("adds nothing from a batch with an invalid member", func() {
		s := newSeated()
		Expect(a.Add(s.rider, s.seat)).To(MatchError(core.ErrType))
		Expect(a.Add(s.bike, s.bike)).To(MatchError(core.ErrValue))
		Expect(a.Add(s.rider, s.bike)).To(Succeed())
		order, err := a.Order()
		Expect(err).NotTo(HaveOccurred())
		Expect(names(order)).To(Equal([]string{"pelvis", "rider", "rear_frame", "bicycle"}))
	})

	It("detects cycles", func() {
		first, second := newNode("first"), newNode("second")
		Expect(first.Bind("next", second)).To(Succeed())
		Expect(second.Bind("next", first)).To(Succeed())
		Expect(a.Add(first)).To(Succeed())
		_, err := a.Order()
		Expect(err).To(MatchError(core.ErrCycle))
		Expect(err).To(MatchError(ContainSubstring("cycle through first, second")))
		Expect(a.DefineObjects()).To(MatchError(core.ErrCycle))
	})

	It("deduplicates shared components", func() {
		shared := newNode("shared")
		first, second := newNode("first"), newNode("second")
		Expect(first.Bind("next", shared)).To(Succeed())
		Expect(second.Bind("next", shared)).To(Succeed())
		Expect(a.Add(first, second)).To(Succeed())
		order, err := a.Order()
		Expect(err).NotTo(HaveOccurred())
		Expect(names(order)).To(Equal([]string{"shared", "first", "second"}))
		again, err := a.Order()
		Expect(err).NotTo(HaveOccurred())
		Expect(names(again)).To(Equal(names(order)))
		Expect(a.DefineAll()).To(Succeed())
	})

	It("assembles a rolling disc", func() {
		ground, err := bicycle.NewFlatGround("ground", "-z")
		Expect(err).NotTo(HaveOccurred())
		wheel, err := bicycle.NewKnifeEdgeWheel("disc")
		Expect(err).NotTo(HaveOccurred())
		tire, err := bicycle.NewNonHolonomicTire("tire")
		Expect(err).NotTo(HaveOccurred())
		disc, err := bicycle.NewRollingDisc("rolling_disc")
		Expect(err).NotTo(HaveOccurred())
		Expect(disc.Bind("ground", ground)).To(Succeed())
		Expect(disc.Bind("disc", wheel)).To(Succeed())
		Expect(disc.Bind("tire", tire)).To(Succeed())

		Expect(a.Add(disc)).To(Succeed())
		Expect(a.DefineAll()).To(Succeed())
		sys, err := a.System()
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Coordinates()).To(HaveLen(5))
		Expect(sys.NonholonomicConstraints()).To(HaveLen(2))
	})
})
