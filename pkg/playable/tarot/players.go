package tarot

import (
	"tarot-server/internal/util"
)

// Players maps the four seats to their hands and tracks the dealer
type Players struct {
	hands       [4]*Hand
	dealer      Seat
	currentTurn Seat
}

func newPlayers(human Seat) *Players {
	p := &Players{}
	for _, seat := range Seats {
		name := util.GetRandomName()
		if seat == human {
			name = "You"
		}

		p.hands[seat] = newHand(seat, name)
	}

	p.setFirstDealer(North)
	return p
}

// Hand returns the hand of the seat
func (p *Players) Hand(seat Seat) *Hand {
	return p.hands[seat]
}

// Hands returns the hands in seat order
func (p *Players) Hands() []*Hand {
	return append([]*Hand{}, p.hands[:]...)
}

// Dealer returns the seat currently dealing
func (p *Players) Dealer() Seat {
	return p.dealer
}

// CurrentTurn returns the seat receiving cards or choosing
func (p *Players) CurrentTurn() Seat {
	return p.currentTurn
}

// fromLeftOfDealer returns the hands starting at the dealer's left, dealer last
func (p *Players) fromLeftOfDealer() []*Hand {
	hands := make([]*Hand, 0, len(Seats))
	seat := p.dealer.Next()
	for range Seats {
		hands = append(hands, p.hands[seat])
		seat = seat.Next()
	}

	return hands
}

func (p *Players) setFirstDealer(seat Seat) {
	p.dealer = seat
	p.currentTurn = seat.Next()
}

// changeDealer passes the deal to the left
func (p *Players) changeDealer() {
	p.setFirstDealer(p.dealer.Next())
}

func (p *Players) changeCurrentTurn() {
	p.currentTurn = p.currentTurn.Next()
}

// startDeal gives the first packet to the seat at the dealer's left
func (p *Players) startDeal() {
	p.currentTurn = p.dealer.Next()
}

func (p *Players) resetBids() {
	for _, h := range p.hands {
		h.bid = NoBid
	}
}
