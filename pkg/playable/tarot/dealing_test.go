package tarot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tarot-server/internal/rng"
	"tarot-server/pkg/deck"
	"tarot-server/pkg/snapshot"
)

// spreadGame returns a game whose 78 cards sit in the whole deck
func spreadGame(t *testing.T, seed int64) *Game {
	t.Helper()

	opts := testOptions()
	opts.Seed = seed
	g := newTestGame(t, opts)
	require.NoError(t, g.createCards(context.Background()))
	require.Equal(t, deck.Size, g.wholeDeck.Len())
	return g
}

func TestCutIndex(t *testing.T) {
	a := assert.New(t)

	for seed := int64(1); seed <= 1000; seed++ {
		split := cutIndex(rng.Seeded(seed), deck.Size)
		a.True(split > 3 && split < 74, "split %d", split)
	}
}

func TestGame_cut(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	for seed := int64(1); seed <= 1000; seed++ {
		g := spreadGame(t, seed)
		before := g.wholeDeck.Cards()

		split, err := g.cut(ctx)
		a.NoError(err)
		a.True(split > 3 && split < 74, "split %d", split)

		after := g.wholeDeck.Cards()
		a.Equal(before[split+1], after[0])
		a.Equal(before[split], after[len(after)-1])
		a.Equal(before[len(before)-1], after[len(before)-split-2])
		a.NoError(g.Audit())
	}
}

func TestGame_dealAll(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	for seed := int64(1); seed <= 200; seed++ {
		g := spreadGame(t, seed)

		var targets []string
		g.Observe(func(n Notification) {
			if n.Type == NotificationCardUpdate && n.Update.Kind == MoveCardBetweenGroups {
				targets = append(targets, n.Update.Group.Name)
			}
		})

		a.NoError(g.shuffle(ctx))
		_, err := g.cut(ctx)
		a.NoError(err)
		a.NoError(g.dealAll(ctx))

		for _, h := range g.players.Hands() {
			a.Equal(HandSize, h.Len(), "seed %d seat %s", seed, h.Seat)
		}
		a.Equal(TalonSize, g.talon.Len(), "seed %d", seed)
		a.True(g.wholeDeck.IsEmpty())
		a.NoError(g.Audit())

		a.Len(targets, deck.Size)
		a.NotEqual("talon", targets[0])
		a.NotEqual("talon", targets[len(targets)-1])

		// the first packet goes to the dealer's left
		a.Equal(North.Next().String(), targets[0])
		a.Equal(1, g.deals)
	}
}

func TestGame_dealAll_talonChance(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	for _, chance := range []int{0, 100} {
		opts := testOptions()
		opts.TalonChance = chance
		g := newTestGame(t, opts)
		require.NoError(t, g.createCards(ctx))

		a.NoError(g.dealAll(ctx))
		for _, h := range g.players.Hands() {
			a.Equal(HandSize, h.Len())
		}
		a.Equal(TalonSize, g.talon.Len())
	}
}

func TestGame_dealAll_packets(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	opts := testOptions()
	opts.TalonChance = 0
	g := newTestGame(t, opts)
	require.NoError(t, g.createCards(ctx))
	g.players.setFirstDealer(West)

	a.NoError(g.dealAll(ctx))

	// without chance the talon only gets the cards it cannot do without
	north := g.players.Hand(North)
	a.Equal("Spades1", north.At(0).Name())
	a.Equal("Spades3", north.At(2).Name())
	a.Equal("Spades4", g.players.Hand(East).At(0).Name())
	a.Equal("Excuse", g.players.Hand(West).At(HandSize-1).Name())
	a.Equal("Trump16", g.talon.First().Name())
	a.NotNil(g.talon.Find("Trump21"))
}

func TestGame_handleDealing_petitSec(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, testOptions())

	var dealers []Seat
	g.dealFn = func(ctx context.Context) error {
		dealers = append(dealers, g.players.Dealer())
		if len(dealers) > 1 {
			return g.dealAll(ctx)
		}

		return petitSecDeal(g, East)
	}

	var states []State
	g.Observe(func(n Notification) {
		switch n.Type {
		case NotificationState:
			states = append(states, n.State)
		case NotificationAwaitingInput:
			a.NoError(g.Supply(int(GuardWithoutKitty)))
		}
	})

	runToEnd(t, g)

	a.GreaterOrEqual(len(dealers), 2)
	a.Equal(North, dealers[0])
	a.Equal(East, dealers[1])
	a.Equal(StatePetitSecDetected, states[2])
	a.Equal(StateCardsDealing, states[3])
	a.Equal(StateBidChosen, states[len(states)-1])
	a.NoError(g.Audit())

	for _, h := range g.players.Hands() {
		a.False(h.HasPetitSec())
		a.Equal(HandSize, h.Len())
	}

	g.Quit()
}

// petitSecDeal gives the seat the lowest trump and 17 ordinary cards
func petitSecDeal(g *Game, seat Seat) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.deals++
	cards := g.wholeDeck.Cards()
	deck.Sort(cards)

	var ordinary, trumps []*deck.Card
	for _, c := range cards {
		if c.IsOrdinary() {
			ordinary = append(ordinary, c)
		} else {
			trumps = append(trumps, c)
		}
	}

	give := func(to *deck.Group, cards []*deck.Card) error {
		for _, c := range cards {
			if err := deck.Move(g.wholeDeck, to, c); err != nil {
				return err
			}
		}

		return nil
	}

	if err := give(g.players.Hand(seat).Group, append([]*deck.Card{trumps[0]}, ordinary[:HandSize-1]...)); err != nil {
		return err
	}

	rest := append(ordinary[HandSize-1:], trumps[1:]...)
	if err := give(g.talon.Group, rest[:TalonSize]); err != nil {
		return err
	}
	rest = rest[TalonSize:]

	for s := seat.Next(); s != seat; s = s.Next() {
		if err := give(g.players.Hand(s).Group, rest[:HandSize]); err != nil {
			return err
		}
		rest = rest[HandSize:]
	}

	return nil
}

func TestGame_dealAll_snapshot(t *testing.T) {
	ctx := context.Background()

	g := spreadGame(t, 2024)
	require.NoError(t, g.shuffle(ctx))
	_, err := g.cut(ctx)
	require.NoError(t, err)
	require.NoError(t, g.dealAll(ctx))

	dealt := map[string]string{"talon": deck.CardsToString(g.talon.Cards())}
	for _, h := range g.players.Hands() {
		dealt[h.Seat.String()] = deck.CardsToString(h.Cards())
	}

	snapshot.ValidateSnapshot(t, dealt, "a seeded deal is reproducible")
}
