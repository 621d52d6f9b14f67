package tarot

import (
	"tarot-server/pkg/deck"
)

const (
	// TalonSize is the number of cards set aside in the talon
	TalonSize = 6
	// HandSize is the number of cards dealt to every seat
	HandSize = 18
	// handCapacity leaves room for the talon during the ecart
	handCapacity = HandSize + TalonSize

	cardsPerPacket = 3
)

// Hand is the cards held by one seat
type Hand struct {
	*deck.Group
	Seat        Seat
	DisplayName string
	bid         Bid
}

func newHand(seat Seat, name string) *Hand {
	return &Hand{
		Group:       deck.NewGroup(seat.String(), handCapacity),
		Seat:        seat,
		DisplayName: name,
	}
}

// Bid returns the bid chosen for the current round
func (h *Hand) Bid() Bid {
	return h.bid
}

// HasPetitSec returns true if the only trump in the hand is the lowest one
func (h *Hand) HasPetitSec() bool {
	return hasPetitSec(h.Cards())
}

func hasPetitSec(cards []*deck.Card) bool {
	hasPetit := false
	for _, c := range cards {
		if !c.IsTrump() {
			continue
		}

		if c.Rank != deck.LowestTrump {
			return false
		}

		hasPetit = true
	}

	return hasPetit
}

// Talon is the hidden reserve, later the winner's discards
type Talon struct {
	*deck.Group
}

func newTalon() *Talon {
	return &Talon{
		Group: deck.NewGroup("talon", TalonSize),
	}
}
