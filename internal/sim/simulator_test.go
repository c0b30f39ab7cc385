package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
)

// scriptedSource replays fixed draws.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

type countingMetric struct {
	steps []int
}

func (c *countingMetric) Name() string         { return "count" }
func (c *countingMetric) Observe(r sim.Record) { c.steps = append(c.steps, r.Step) }
func (c *countingMetric) Value() float64       { return float64(len(c.steps)) }
func (c *countingMetric) Reset()               { c.steps = c.steps[:0] }

type tallyObserver struct {
	calls    int
	accepted int
}

func (o *tallyObserver) OnStep(step, i, j int, accepted bool) {
	o.calls++
	if accepted {
		o.accepted++
	}
}

func newSimulator(n int, t float64, seed int64) *sim.Simulator {
	return sim.New(lattice.New(n, t, 0, 1), sim.NewSource(seed))
}

var _ = Describe("Simulator", func() {
	ctx := context.Background()

	Context("with full recording", func() {
		It("records one point per attempt plus the final state", func() {
			s := newSimulator(10, 1.0, 1)
			result, err := s.Run(ctx, sim.Config{Steps: 100})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Records).To(HaveLen(101))
			for i, rec := range result.Records {
				Expect(rec.Step).To(Equal(i))
				Expect(rec.Up + rec.Down).To(Equal(100))
			}
			Expect(result.Records[100]).To(Equal(result.Final))
			Expect(result.Attempts).To(Equal(100))
		})

		It("starts from the checkerboard", func() {
			s := newSimulator(10, 1.0, 2)
			s.Lattice().InitAllUp()

			result, err := s.Run(ctx, sim.Config{Steps: 10})
			Expect(err).NotTo(HaveOccurred())

			first := result.Records[0]
			Expect(first.Magnetization).To(Equal(0.0))
			Expect(first.Energy).To(Equal(400.0))
			Expect(first.Up).To(Equal(50))
			Expect(first.Down).To(Equal(50))
		})

		It("records a single point for zero steps", func() {
			s := newSimulator(4, 1.0, 3)
			result, err := s.Run(ctx, sim.Config{Steps: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Records).To(HaveLen(1))
			Expect(result.Final.Step).To(Equal(0))
		})
	})

	Context("with final-only recording", func() {
		It("keeps only the final state", func() {
			s := newSimulator(10, 1.0, 4)
			result, err := s.Run(ctx, sim.Config{Steps: 50, Recording: sim.FinalOnly})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Records).To(BeEmpty())
			Expect(result.Final.Step).To(Equal(50))
		})

		It("agrees with a full run on the same seed", func() {
			full, err := newSimulator(8, 2.0, 5).Run(ctx, sim.Config{Steps: 500})
			Expect(err).NotTo(HaveOccurred())

			final, err := newSimulator(8, 2.0, 5).RunFinal(ctx, 500)
			Expect(err).NotTo(HaveOccurred())
			Expect(final).To(Equal(full.Final))
		})
	})

	Context("below the critical temperature", func() {
		It("lowers the energy over a short run", func() {
			for seed := int64(1); seed <= 5; seed++ {
				result, err := newSimulator(10, 1.0, seed).Run(ctx, sim.Config{Steps: 100})
				Expect(err).NotTo(HaveOccurred())

				energies := result.Energies()
				Expect(energies[len(energies)-1]).To(BeNumerically("<", energies[0]))
			}
		})
	})

	Context("when deciding a single flip", func() {
		var lat *lattice.Lattice

		BeforeEach(func() {
			lat = lattice.New(3, 1.0, 0, 1)
		})

		It("rejects when the draw equals the probability", func() {
			p := lat.FlipProbability(1, 1)
			Expect(p).To(BeNumerically(">", 0))

			s := sim.New(lat, &scriptedSource{ints: []int{1, 1}, floats: []float64{p}})
			_, _, accepted := s.Step()
			Expect(accepted).To(BeFalse())
			Expect(lat.Spin(1, 1)).To(Equal(lattice.Up))
		})

		It("accepts when the draw is just below the probability", func() {
			p := lat.FlipProbability(1, 1)

			s := sim.New(lat, &scriptedSource{ints: []int{1, 1}, floats: []float64{math.Nextafter(p, 0)}})
			i, j, accepted := s.Step()
			Expect(accepted).To(BeTrue())
			Expect([]int{i, j}).To(Equal([]int{1, 1}))
			Expect(lat.Spin(1, 1)).To(Equal(lattice.Down))
		})

		It("always accepts downhill moves", func() {
			lat.Flip(1, 1)
			Expect(lat.DeltaEnergy(1, 1)).To(BeNumerically("<", 0))

			s := sim.New(lat, &scriptedSource{ints: []int{1, 1}, floats: []float64{0.999999}})
			_, _, accepted := s.Step()
			Expect(accepted).To(BeTrue())
			Expect(lat.Magnetization()).To(Equal(9.0))
		})
	})

	Context("with a fixed seed", func() {
		It("reproduces the same trajectory", func() {
			a, err := newSimulator(6, 2.5, 99).Run(ctx, sim.Config{Steps: 300})
			Expect(err).NotTo(HaveOccurred())
			b, err := newSimulator(6, 2.5, 99).Run(ctx, sim.Config{Steps: 300})
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Records).To(Equal(b.Records))
			Expect(a.Accepted).To(Equal(b.Accepted))
		})
	})

	Context("with metrics and observers", func() {
		It("samples metrics on the configured stride", func() {
			s := newSimulator(5, 2.0, 7)
			m := &countingMetric{}
			s.AddMetric(m)

			result, err := s.Run(ctx, sim.Config{Steps: 50, Recording: sim.FinalOnly, SampleEvery: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.steps).To(Equal([]int{0, 10, 20, 30, 40}))
			Expect(result.Metrics).To(HaveKeyWithValue("count", 5.0))
		})

		It("skips the burn-in before sampling", func() {
			s := newSimulator(5, 2.0, 7)
			m := &countingMetric{}
			s.AddMetric(m)

			_, err := s.Run(ctx, sim.Config{Steps: 50, Recording: sim.FinalOnly, SampleEvery: 10, Burnin: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.steps).To(Equal([]int{20, 30, 40}))
		})

		It("notifies observers of every attempt", func() {
			s := newSimulator(5, 2.0, 8)
			obs := &tallyObserver{}
			s.AddObserver(obs)

			result, err := s.Run(ctx, sim.Config{Steps: 75})
			Expect(err).NotTo(HaveOccurred())
			Expect(obs.calls).To(Equal(75))
			Expect(obs.accepted).To(Equal(result.Accepted))
		})
	})

	Context("with invalid input", func() {
		It("rejects a negative step count", func() {
			_, err := newSimulator(4, 1.0, 1).Run(ctx, sim.Config{Steps: -1})
			Expect(err).To(MatchError(sim.ErrNegativeSteps))
		})

		It("rejects a missing lattice", func() {
			_, err := sim.New(nil, sim.NewSource(1)).Run(ctx, sim.Config{Steps: 1})
			Expect(err).To(MatchError(sim.ErrNilLattice))
		})

		It("stops on a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			result, err := newSimulator(4, 1.0, 1).Run(cctx, sim.Config{Steps: 10})
			Expect(err).To(MatchError(context.Canceled))
			Expect(result).NotTo(BeNil())
			Expect(result.Attempts).To(Equal(0))
		})
	})
})

var _ = Describe("Ensemble", func() {
	build := func(seed int64) *sim.Simulator {
		return newSimulator(6, 1.5, seed)
	}

	It("runs every chain on its own lattice", func() {
		results, err := sim.NewEnsemble(build, 4, 10).Run(context.Background(), sim.Config{Steps: 200})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for _, r := range results {
			Expect(r.Records).To(HaveLen(201))
		}
	})

	It("is reproducible for a fixed seed range", func() {
		cfg := sim.Config{Steps: 200, Recording: sim.FinalOnly}
		a, err := sim.NewEnsemble(build, 3, 42).Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		b, err := sim.NewEnsemble(build, 3, 42).Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		for i := range a {
			Expect(a[i].Final).To(Equal(b[i].Final))
		}
	})
})
