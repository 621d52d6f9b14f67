package tarot

import (
	"context"
)

// chooseBids collects a bid from every seat: the human seat is asked, the others pass
func (g *Game) chooseBids(ctx context.Context) error {
	if err := g.changeState(StateBidChoosing); err != nil {
		return err
	}

	g.lock.Lock()
	g.players.resetBids()
	g.lock.Unlock()

	for _, hand := range g.players.fromLeftOfDealer() {
		bid := Pass
		if hand.Seat == g.options.HumanSeat {
			code, err := g.request(ctx, ChooseBid)
			if err != nil {
				return err
			}

			if bid, err = BidFromCode(code); err != nil {
				g.logger.WithError(err).Warn("could not parse bid, passing")
				bid = Pass
			}
		}

		g.lock.Lock()
		hand.bid = bid
		g.lock.Unlock()

		g.sendLogMessages(newLogMessage(hand.Seat, nil, "{} bid %s", bid))
	}

	return g.changeState(StateBidChosen)
}

// Winner returns the seat with the strongest bid, false if everyone passed
func (g *Game) Winner() (Seat, bool) {
	g.lock.RLock()
	defer g.lock.RUnlock()

	return g.winner()
}

// NOTE: caller must hold the lock
func (g *Game) winner() (Seat, bool) {
	best := NoBid
	var seat Seat
	for _, h := range g.players.fromLeftOfDealer() {
		if h.bid.Beats(best) {
			best = h.bid
			seat = h.Seat
		}
	}

	return seat, best != NoBid
}

// handleBids deals again until someone bids, then runs the ecart when the contract allows it
func (g *Game) handleBids(ctx context.Context) error {
	if err := g.chooseBids(ctx); err != nil {
		return err
	}

	for {
		seat, found := g.Winner()
		if found {
			winner := g.players.Hand(seat)
			g.logger.WithField("seat", seat).WithField("bid", winner.Bid()).Info("bid won")
			if !winner.Bid().AllowsEcart() {
				return nil
			}

			if err := g.pauseIf(ctx, g.options.PaceBids, g.options.Pacing.Short); err != nil {
				return err
			}

			if err := g.constituteEcart(ctx, winner); err != nil {
				return err
			}

			return g.changeState(StateEcartConstituted)
		}

		g.sendLogMessages(newTableLogMessage("everybody passed, dealing again"))
		if err := g.flipGroup(ctx, g.human().Group, false); err != nil {
			return err
		}

		if err := g.pauseIf(ctx, g.options.PaceBids, g.options.Pacing.Medium); err != nil {
			return err
		}

		if err := g.gatherAll(ctx); err != nil {
			return err
		}

		if err := g.pauseIf(ctx, g.options.PaceBids, g.options.Pacing.Short); err != nil {
			return err
		}

		g.lock.Lock()
		g.players.changeDealer()
		g.lock.Unlock()

		if err := g.handleDealing(ctx); err != nil {
			return err
		}

		if err := g.chooseBids(ctx); err != nil {
			return err
		}
	}
}
