package tarot

import (
	"context"

	"tarot-server/pkg/deck"
)

// chooseInitialDealer spreads the deck and lets every seat draw a card.
// The seat with the lowest card deals first
func (g *Game) chooseInitialDealer(ctx context.Context) error {
	paced := g.options.PaceDealerSelection
	pacing := g.options.Pacing

	if err := g.changeState(StateDealerChoosing); err != nil {
		return err
	}

	if err := g.pauseIf(ctx, paced, pacing.Medium); err != nil {
		return err
	}

	if err := g.shuffle(ctx); err != nil {
		return err
	}

	if err := g.pauseIf(ctx, paced, pacing.Short); err != nil {
		return err
	}

	for !g.wholeDeck.IsEmpty() {
		if err := g.moveCard(ctx, g.wholeDeck, g.toPickDeck, g.wholeDeck.First(), false); err != nil {
			return err
		}
	}

	if err := g.cardUpdate(ctx, SpreadCards, nil, g.toPickDeck); err != nil {
		return err
	}

	if err := g.pauseIf(ctx, paced, pacing.Medium); err != nil {
		return err
	}

	for _, seat := range Seats {
		card, err := g.drawCard(ctx, seat)
		if err != nil {
			return err
		}

		if err := g.moveCard(ctx, g.toPickDeck, g.pickedDeck, card, true); err != nil {
			return err
		}

		g.lock.Lock()
		g.pickedBy[card] = seat
		g.lock.Unlock()
	}

	for _, card := range g.pickedDeck.Cards() {
		if err := g.flipCard(ctx, card, true); err != nil {
			return err
		}
	}

	if err := g.pauseIf(ctx, paced, pacing.Long); err != nil {
		return err
	}

	var lowest *deck.Card
	for _, card := range g.pickedDeck.Cards() {
		if lowest == nil || deck.Less(card, lowest) {
			lowest = card
		}
	}

	dealer := g.pickedBy[lowest]
	g.lock.Lock()
	g.players.setFirstDealer(dealer)
	g.lock.Unlock()

	g.logger.WithField("dealer", dealer).Info("dealer chosen")
	g.sendLogMessages(newLogMessage(dealer, []*deck.Card{lowest}, "{} drew the lowest card and deals"))

	if err := g.changeState(StateDealerChosen); err != nil {
		return err
	}

	for _, card := range g.pickedDeck.Cards() {
		if err := g.flipCard(ctx, card, false); err != nil {
			return err
		}
	}

	if err := g.pauseIf(ctx, paced, pacing.Medium); err != nil {
		return err
	}

	if err := g.gatherAll(ctx); err != nil {
		return err
	}

	return g.pauseIf(ctx, paced, pacing.Medium)
}

// drawCard returns the card the seat draws from the spread deck.
// Computer seats never draw the Excuse
func (g *Game) drawCard(ctx context.Context, seat Seat) (*deck.Card, error) {
	if seat != g.options.HumanSeat {
		for {
			card := g.toPickDeck.At(g.rng.Intn(g.toPickDeck.Len()))
			if !card.IsExcuse() {
				return card, nil
			}
		}
	}

	for {
		index, err := g.request(ctx, PickCard)
		if err != nil {
			return nil, err
		}

		if card := g.toPickDeck.At(index); card != nil {
			return card, nil
		}

		g.logger.WithField("index", index).Debug("unauthorized pick")
		g.publish(Notification{Type: NotificationUnauthorizedChoice, Input: PickCard})
	}
}
