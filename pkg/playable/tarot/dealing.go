package tarot

import (
	"context"

	"tarot-server/internal/rng"
	"tarot-server/pkg/deck"
)

// minCutSegment is the smallest number of cards a cut may leave on either side
const minCutSegment = 4

// shuffle shuffles the whole deck
func (g *Game) shuffle(ctx context.Context) error {
	g.lock.Lock()
	g.wholeDeck.Shuffle(g.rng)
	g.lock.Unlock()

	return g.cardUpdate(ctx, ShuffleCards, nil, g.wholeDeck)
}

// cutIndex picks the card closing the first segment, in the open interval (3, n-4)
func cutIndex(r rng.Generator, n int) int {
	return minCutSegment + r.Intn(n-2*minCutSegment)
}

// cut cuts the whole deck and returns the split index
func (g *Game) cut(ctx context.Context) (int, error) {
	g.lock.Lock()
	split := cutIndex(g.rng, g.wholeDeck.Len())
	err := g.wholeDeck.CutAt(split)
	g.lock.Unlock()

	if err != nil {
		return 0, err
	}

	return split, g.cardUpdate(ctx, CutDeck, nil, g.wholeDeck)
}

// talonReceives decides where the head card of the working deck goes.
// The talon never gets the first or the last card of the deal and must be
// complete once the deck is empty
func (g *Game) talonReceives(total int) bool {
	remaining := g.wholeDeck.Len()
	missing := g.talon.Cap() - g.talon.Len()
	if missing == 0 || remaining == total || remaining <= 1 {
		return false
	}

	if remaining-1 <= missing {
		return true
	}

	return rng.Chance(g.rng, g.options.TalonChance)
}

// dealAll deals every card of the whole deck by packets of three, starting at the dealer's left
func (g *Game) dealAll(ctx context.Context) error {
	g.lock.Lock()
	g.players.startDeal()
	total := g.wholeDeck.Len()
	g.deals++
	g.lock.Unlock()

	given := 0
	for !g.wholeDeck.IsEmpty() {
		card := g.wholeDeck.First()
		if g.talonReceives(total) {
			if err := g.moveCard(ctx, g.wholeDeck, g.talon.Group, card, true); err != nil {
				return err
			}

			continue
		}

		hand := g.players.Hand(g.players.CurrentTurn())
		if err := g.moveCard(ctx, g.wholeDeck, hand.Group, card, true); err != nil {
			return err
		}

		given++
		if given == cardsPerPacket {
			g.lock.Lock()
			g.players.changeCurrentTurn()
			g.lock.Unlock()
			given = 0
		}
	}

	return nil
}

// petitSecSeat returns the first seat holding Petit Sec
func (g *Game) petitSecSeat() (Seat, bool) {
	g.lock.RLock()
	defer g.lock.RUnlock()

	for _, h := range g.players.fromLeftOfDealer() {
		if h.HasPetitSec() {
			return h.Seat, true
		}
	}

	return 0, false
}

// handleDealing shuffles, cuts and deals until no seat has Petit Sec
func (g *Game) handleDealing(ctx context.Context) error {
	for {
		if err := g.changeState(StateCardsDealing); err != nil {
			return err
		}

		if err := g.shuffle(ctx); err != nil {
			return err
		}

		if _, err := g.cut(ctx); err != nil {
			return err
		}

		if err := g.dealFn(ctx); err != nil {
			return err
		}

		g.sendLogMessages(newLogMessage(g.players.Dealer(), nil, "{} dealt the cards"))

		if err := g.flipGroup(ctx, g.human().Group, true); err != nil {
			return err
		}

		if err := g.pause(ctx, g.options.Pacing.Long); err != nil {
			return err
		}

		seat, found := g.petitSecSeat()
		if !found {
			return nil
		}

		g.logger.WithField("seat", seat).Info("petit sec detected, dealing again")
		g.sendLogMessages(newLogMessage(seat, []*deck.Card{g.players.Hand(seat).Find("Trump1")}, "{} has petit sec"))

		if err := g.changeState(StatePetitSecDetected); err != nil {
			return err
		}

		if err := g.flipGroup(ctx, g.human().Group, false); err != nil {
			return err
		}

		if err := g.pause(ctx, g.options.Pacing.Medium); err != nil {
			return err
		}

		g.lock.Lock()
		g.players.changeDealer()
		g.lock.Unlock()

		if err := g.gatherAll(ctx); err != nil {
			return err
		}
	}
}
