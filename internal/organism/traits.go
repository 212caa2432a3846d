package organism

// Traits are the fixed rule constants of a species.
type Traits struct {
	BreedingAge      int
	MaxAge           int
	BirthProbability float64
	MaxLitter        int
	// Nutrition is the food level a fox is reset to after eating a rabbit,
	// i.e. how many steps it can go before its next meal. Zero for prey.
	Nutrition int
}

var (
	FoxTraits = Traits{
		BreedingAge:      10,
		MaxAge:           150,
		BirthProbability: 0.09,
		MaxLitter:        3,
		Nutrition:        4,
	}
	RabbitTraits = Traits{
		BreedingAge:      5,
		MaxAge:           50,
		BirthProbability: 0.15,
		MaxLitter:        5,
	}
)

func (k Kind) Traits() Traits {
	if k == Fox {
		return FoxTraits
	}
	return RabbitTraits
}

// CanBreed reports whether age has reached the species' breeding age.
func (t Traits) CanBreed(age int) bool {
	return age >= t.BreedingAge
}
