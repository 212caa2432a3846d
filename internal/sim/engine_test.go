package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ecosim/internal/grid"
	"github.com/san-kum/ecosim/internal/organism"
)

// occupancy checks that every living organism sits alone on its own cell
// and that the grid holds nothing else.
func expectConsistentGrid(s *Simulator) {
	pop := s.Population()
	seen := make(map[grid.Position]bool, len(pop))
	for i, o := range pop {
		Expect(o.Alive).To(BeTrue(), "dead organism %v left in population", o)
		Expect(seen[o.Pos]).To(BeFalse(), "two organisms share %v", o.Pos)
		seen[o.Pos] = true
		Expect(s.current.At(o.Pos)).To(Equal(grid.ID(i)))
	}

	placed := 0
	s.current.Each(func(grid.Position, grid.ID) { placed++ })
	Expect(placed).To(Equal(len(pop)))
}

var _ = Describe("Simulator", func() {
	var s *Simulator

	Context("over a long random run", func() {
		BeforeEach(func() {
			s = New(20, 20, WithSeed(42), WithLogger(quiet))
			s.Reset()
		})

		It("keeps one organism per cell and no dead organisms after every step", func() {
			expectConsistentGrid(s)
			for i := 0; i < 80; i++ {
				s.Step()
				expectConsistentGrid(s)
				Expect(s.next.Size()).To(Equal(400))
				s.next.Each(func(p grid.Position, _ grid.ID) {
					Fail("inactive grid not cleared at " + p.String())
				})
			}
		})

		It("appends age-zero newborns after the aged survivors", func() {
			for i := 0; i < 40; i++ {
				s.Step()
				pop := s.Population()
				newborns := false
				for _, o := range pop {
					if o.Age == 0 {
						newborns = true
					} else {
						Expect(newborns).To(BeFalse(), "aged organism %v follows a newborn", o)
					}
				}
			}
		})

		It("counts every step", func() {
			for i := 1; i <= 5; i++ {
				s.Step()
				Expect(s.StepCount()).To(Equal(i))
				Expect(s.View().Step()).To(Equal(i))
			}
		})
	})

	Context("with a lone young rabbit", func() {
		BeforeEach(func() {
			s = New(9, 9, WithSeed(1), WithLogger(quiet))
			rabbit := organism.Newborn(organism.Rabbit)
			rabbit.Age = 0
			seedPopulation(s, at(rabbit, 4, 4))
		})

		It("ages exactly one year per step", func() {
			for i := 1; i <= organism.RabbitTraits.BreedingAge-1; i++ {
				s.Step()
				pop := s.Population()
				Expect(pop).To(HaveLen(1))
				Expect(pop[0].Age).To(Equal(i))
			}
		})
	})

	Context("with a rabbit at its maximum age", func() {
		It("removes it from the population and the grid", func() {
			s = New(5, 5, WithSeed(1), WithLogger(quiet))
			old := organism.Newborn(organism.Rabbit)
			old.Age = organism.RabbitTraits.MaxAge
			seedPopulation(s, at(old, 2, 2))

			s.Step()

			Expect(s.Population()).To(BeEmpty())
			Expect(s.View().Count(organism.Rabbit)).To(BeZero())
			Expect(s.View().Tally().Deaths[organism.OldAge]).To(Equal(1))
		})
	})

	Context("with a fox next to a rabbit", func() {
		BeforeEach(func() {
			s = New(5, 5, WithSeed(7), WithLogger(quiet))
			fox := organism.Newborn(organism.Fox)
			fox.Food = 2
			seedPopulation(s,
				at(organism.Newborn(organism.Rabbit), 2, 3),
				at(fox, 2, 2),
			)
		})

		It("eats the rabbit, refills and takes its cell", func() {
			s.Step()

			pop := s.Population()
			Expect(pop).To(HaveLen(1))
			Expect(pop[0].Kind).To(Equal(organism.Fox))
			Expect(pop[0].Food).To(Equal(organism.FoxTraits.Nutrition))
			Expect(pop[0].Pos).To(Equal(grid.Pos(2, 3)))
			Expect(s.View().Tally().Deaths[organism.Eaten]).To(Equal(1))
			expectConsistentGrid(s)
		})
	})

	Context("with a hungry fox alone", func() {
		It("loses one food level per step until it starves", func() {
			s = New(6, 6, WithSeed(3), WithLogger(quiet))
			fox := organism.Newborn(organism.Fox)
			seedPopulation(s, at(fox, 3, 3))

			for food := organism.FoxTraits.Nutrition - 1; food > 0; food-- {
				s.Step()
				Expect(s.Population()).To(HaveLen(1))
				Expect(s.Population()[0].Food).To(Equal(food))
			}
			s.Step()
			Expect(s.Population()).To(BeEmpty())
			Expect(s.View().Tally().Deaths[organism.Starvation]).To(Equal(1))
		})
	})

	Context("on a single cell", func() {
		It("lets a young organism stay where it is", func() {
			s = New(1, 1, WithSeed(5), WithLogger(quiet))
			seedPopulation(s, at(organism.Newborn(organism.Rabbit), 0, 0))

			for i := 0; i < 3; i++ {
				s.Step()
				Expect(s.Population()).To(HaveLen(1))
				Expect(s.Population()[0].Pos).To(Equal(grid.Pos(0, 0)))
			}
		})
	})

	Context("when reset twice", func() {
		It("produces the same shape with a fresh seed", func() {
			s = New(15, 15, WithSeed(11), WithLogger(quiet))
			s.Reset()
			first := s.Seed()
			s.Step()
			s.Reset()

			Expect(s.Seed()).NotTo(Equal(first))
			Expect(s.StepCount()).To(BeZero())
			Expect(len(s.Population())).To(BeNumerically("<=", 15*15))
			expectConsistentGrid(s)
		})
	})
})
