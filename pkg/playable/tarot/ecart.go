package tarot

import (
	"context"

	"tarot-server/pkg/deck"
)

// CanDiscard returns true if the card may be put in the ecart.
// Ordinary cards other than Kings always can. A trump other than the lowest and
// the highest can only when the hand holds nothing but trumps, the Excuse and Kings
func CanDiscard(hand []*deck.Card, card *deck.Card) bool {
	if card.IsOrdinary() {
		return !card.IsKing()
	}

	if !card.IsTrump() || card.Rank == deck.LowestTrump || card.Rank == deck.HighestTrump {
		return false
	}

	for _, c := range hand {
		if c.IsOrdinary() && !c.IsKing() {
			return false
		}
	}

	return true
}

// constituteEcart gives the talon to the winner, who then discards six cards
func (g *Game) constituteEcart(ctx context.Context, winner *Hand) error {
	if err := g.changeState(StateEcartConstituting); err != nil {
		return err
	}

	if err := g.flipGroup(ctx, g.talon.Group, true); err != nil {
		return err
	}

	if err := g.pause(ctx, g.options.Pacing.Medium); err != nil {
		return err
	}

	g.sendLogMessages(newLogMessage(winner.Seat, g.talon.Cards(), "{} takes the talon"))
	for !g.talon.IsEmpty() {
		if err := g.moveCard(ctx, g.talon.Group, winner.Group, g.talon.First(), true); err != nil {
			return err
		}
	}

	for discarded := 0; discarded < TalonSize; {
		index, err := g.request(ctx, ChooseEcartCard)
		if err != nil {
			return err
		}

		card := winner.At(index)
		if card == nil || !CanDiscard(winner.Cards(), card) {
			g.logger.WithField("index", index).Debug("unauthorized ecart choice")
			g.publish(Notification{Type: NotificationUnauthorizedChoice, Input: ChooseEcartCard})
			continue
		}

		// only trumps stay visible in the ecart
		if !card.IsTrump() {
			if err := g.flipCard(ctx, card, false); err != nil {
				return err
			}

			if err := g.pause(ctx, g.options.Pacing.Medium); err != nil {
				return err
			}
		}

		if err := g.moveCard(ctx, winner.Group, g.talon.Group, card, true); err != nil {
			return err
		}

		discarded++
	}

	return g.sortGroup(ctx, winner.Group)
}
