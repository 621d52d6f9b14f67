package tarot

import (
	"context"
	"sync"
)

// request is a one-shot rendezvous between the game and whoever supplies the choice
type request struct {
	kind InputKind
	slot chan int
}

// intake holds at most one outstanding request
type intake struct {
	lock    sync.Mutex
	pending *request
}

func (i *intake) open(kind InputKind) *request {
	i.lock.Lock()
	defer i.lock.Unlock()

	r := &request{kind: kind, slot: make(chan int, 1)}
	i.pending = r
	return r
}

func (i *intake) abandon(r *request) {
	i.lock.Lock()
	defer i.lock.Unlock()

	if i.pending == r {
		i.pending = nil
	}
}

// request publishes AWAITING_INPUT and blocks until the choice is supplied.
// Without any observer the choice is synthesized
func (g *Game) request(ctx context.Context, kind InputKind) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if !g.hub.attached() {
		return g.defaultChoice(kind), nil
	}

	r := g.intake.open(kind)
	g.publish(Notification{Type: NotificationAwaitingInput, Input: kind})

	select {
	case value := <-r.slot:
		return value, nil
	case <-ctx.Done():
		g.intake.abandon(r)
		return 0, ctx.Err()
	}
}

// Supply hands a choice to the game.
// The value is interpreted according to the pending request
func (g *Game) Supply(value int) error {
	g.intake.lock.Lock()
	r := g.intake.pending
	g.intake.pending = nil
	g.intake.lock.Unlock()

	if r == nil {
		return ErrNoPendingRequest
	}

	g.logger.WithField("input", r.kind).WithField("value", value).Debug("choice supplied")
	r.slot <- value
	return nil
}

// Pending returns the kind of choice the game is waiting for, if any
func (g *Game) Pending() (InputKind, bool) {
	g.intake.lock.Lock()
	defer g.intake.lock.Unlock()

	if g.intake.pending == nil {
		return "", false
	}

	return g.intake.pending.kind, true
}

// defaultChoice is used when no one can answer a request
// NOTE: must only be called from the game goroutine
func (g *Game) defaultChoice(kind InputKind) int {
	switch kind {
	case PickCard:
		return g.rng.Intn(g.toPickDeck.Len())
	case ChooseBid:
		return int(Small) + g.rng.Intn(len(Bids))
	case ChooseEcartCard:
		return g.rng.Intn(g.human().Len())
	}

	return 0
}
