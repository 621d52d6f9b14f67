package tarot

import (
	"fmt"
	"time"
)

// Pacing holds the delays used to let a presentation layer animate the game.
// Delays only apply while something observes the game
type Pacing struct {
	// CardUpdate is the delay after every card update except ADD_CARD
	CardUpdate time.Duration
	Short      time.Duration
	Medium     time.Duration
	Long       time.Duration
}

// Options are options for creating a new tarot game
type Options struct {
	HumanSeat Seat
	// TalonChance is the probability, in percent, that a dealt card goes to the talon
	TalonChance int
	// ChooseDealer enables the dealer-selection phase before the first deal
	ChooseDealer        bool
	PaceDealerSelection bool
	PaceBids            bool
	Pacing              Pacing
	// Seed makes the session reproducible when > 0
	Seed int64
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		HumanSeat:           South,
		TalonChance:         25,
		ChooseDealer:        true,
		PaceDealerSelection: true,
		PaceBids:            true,
		Pacing: Pacing{
			CardUpdate: 300 * time.Millisecond,
			Short:      500 * time.Millisecond,
			Medium:     1500 * time.Millisecond,
			Long:       3000 * time.Millisecond,
		},
	}
}

func (o Options) validate() error {
	if !o.HumanSeat.Valid() {
		return fmt.Errorf("%w: unknown human seat %d", ErrInvalidOptions, o.HumanSeat)
	}

	if o.TalonChance < 0 || o.TalonChance > 100 {
		return fmt.Errorf("%w: talon chance must be within 0 and 100, got %d", ErrInvalidOptions, o.TalonChance)
	}

	if o.Seed < 0 {
		return fmt.Errorf("%w: seed cannot be < 0", ErrInvalidOptions)
	}

	return nil
}
