package tarot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tarot-server/pkg/deck"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.ChooseDealer = false
	opts.Pacing = Pacing{}
	opts.Seed = 1
	return opts
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()

	g, err := NewGame(opts)
	require.NoError(t, err)
	return g
}

// discardIndex returns the first index of the hand that may go to the ecart
func discardIndex(h *Hand) int {
	cards := h.Cards()
	for i, c := range cards {
		if CanDiscard(cards, c) {
			return i
		}
	}

	return -1
}

// runToEnd starts the game and waits for the game goroutine
func runToEnd(t *testing.T, g *Game) {
	t.Helper()

	require.NoError(t, g.Start(context.Background()))

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("game did not finish")
	}
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	g, err := NewGame(DefaultOptions())
	a.NoError(err)
	a.Equal("tarot", g.Name())
	a.NotEmpty(g.UUID())
	a.Equal(0, g.wholeDeck.Len(), "cards are created by Start")

	opts := DefaultOptions()
	opts.TalonChance = 101
	g, err = NewGame(opts)
	a.Nil(g)
	a.True(errors.Is(err, ErrInvalidOptions))

	opts = DefaultOptions()
	opts.HumanSeat = Seat(7)
	_, err = NewGame(opts)
	a.True(errors.Is(err, ErrInvalidOptions))

	opts = DefaultOptions()
	opts.Seed = -1
	_, err = NewGame(opts)
	a.True(errors.Is(err, ErrInvalidOptions))
}

func TestGame_Headless(t *testing.T) {
	a := assert.New(t)

	for seed := int64(1); seed <= 20; seed++ {
		opts := testOptions()
		opts.ChooseDealer = true
		opts.Seed = seed
		g := newTestGame(t, opts)

		runToEnd(t, g)
		a.NoError(g.Audit())

		seat, ok := g.Winner()
		a.True(ok)
		a.Equal(South, seat)

		state := g.GetState()
		if g.human().Bid().AllowsEcart() {
			a.Equal(StateEcartConstituted, state.State)
			a.Equal(HandSize, g.human().Len())
			a.Equal(TalonSize, g.talon.Len())
		} else {
			a.Equal(StateBidChosen, state.State)
		}

		g.Quit()
	}
}

func TestGame_Start(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, testOptions())
	a.Equal(ErrNotStarted, g.Wait())

	awaiting := make(chan struct{}, 1)
	g.Observe(func(n Notification) {
		if n.Type == NotificationAwaitingInput {
			select {
			case awaiting <- struct{}{}:
			default:
			}
		}
	})

	a.NoError(g.Start(context.Background()))
	a.Equal(ErrAlreadyStarted, g.Start(context.Background()))

	<-awaiting
	kind, ok := g.Pending()
	a.True(ok)
	a.Equal(ChooseBid, kind)

	g.Quit()
	a.Equal(ErrGameEnded, g.Start(context.Background()))
}

func TestGame_Supply(t *testing.T) {
	g := newTestGame(t, testOptions())
	assert.Equal(t, ErrNoPendingRequest, g.Supply(1))

	_, ok := g.Pending()
	assert.False(t, ok)
}

func TestGame_Quit(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, testOptions())

	var (
		lock        sync.Mutex
		deleted     int
		gatherAudit error
		gathered    bool
		lastState   State
	)

	awaiting := make(chan struct{}, 1)
	g.Observe(func(n Notification) {
		lock.Lock()
		defer lock.Unlock()

		switch n.Type {
		case NotificationAwaitingInput:
			select {
			case awaiting <- struct{}{}:
			default:
			}
		case NotificationState:
			lastState = n.State
		case NotificationCardUpdate:
			switch n.Update.Kind {
			case DeleteCard:
				deleted++
			case GatherCards:
				if lastState == StateEnded {
					gathered = true
					gatherAudit = g.Audit()
				}
			}
		}
	})

	a.NoError(g.Start(context.Background()))
	<-awaiting

	g.Quit()
	a.True(errors.Is(g.Wait(), context.Canceled))

	lock.Lock()
	a.True(gathered)
	a.NoError(gatherAudit)
	a.Equal(deck.Size, deleted)
	a.Equal(StateEnded, lastState)
	lock.Unlock()

	a.Equal(0, g.registry.Count())
	a.Equal(0, g.wholeDeck.Len())

	_, ok := g.Pending()
	a.False(ok, "the pending request is abandoned")

	// logs are closed once the session is over
	for range g.LogChan() {
	}

	// quitting twice is harmless
	g.Quit()
}

func TestGame_QuitBeforeStart(t *testing.T) {
	g := newTestGame(t, testOptions())
	ch, _ := g.Subscribe(8)

	g.Quit()
	assert.Equal(t, StateEnded, g.GetState().State)

	var states []State
	for n := range ch {
		if n.Type == NotificationState {
			states = append(states, n.State)
		}
	}

	assert.Equal(t, []State{StateEnded}, states)
}

func TestGame_Conservation(t *testing.T) {
	a := assert.New(t)

	opts := testOptions()
	opts.ChooseDealer = true
	opts.Seed = 7
	g := newTestGame(t, opts)

	var audits []error
	var states []State
	bidRequests := 0
	g.Observe(func(n Notification) {
		switch n.Type {
		case NotificationCardUpdate:
			if n.Update.Kind == AddCard || n.Update.Kind == DeleteCard {
				return
			}
		case NotificationState:
			states = append(states, n.State)
			if n.State == StateBidChoosing {
				for _, h := range g.players.Hands() {
					a.Equal(HandSize, h.Len(), h.Seat.String())
				}
				a.Equal(TalonSize, g.talon.Len())
				a.Equal(0, g.wholeDeck.Len())
			}
		case NotificationAwaitingInput:
			switch n.Input {
			case PickCard:
				a.NoError(g.Supply(g.toPickDeck.Len() - 1))
			case ChooseBid:
				bidRequests++
				a.NoError(g.Supply(int(Guard)))
			case ChooseEcartCard:
				a.NoError(g.Supply(discardIndex(g.human())))
			}
		}

		if err := g.Audit(); err != nil {
			audits = append(audits, err)
		}
	})

	runToEnd(t, g)

	a.Empty(audits)
	a.Equal(1, bidRequests)
	a.Equal(StateCardsSpreading, states[0])
	a.Equal(StateDealerChoosing, states[1])
	a.Equal(StateDealerChosen, states[2])
	a.Equal(StateEcartConstituted, states[len(states)-1])
	a.Contains(states, StateEcartConstituting)

	g.Quit()
}

func TestGame_Subscribe(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, testOptions())
	ch, unsubscribe := g.Subscribe(4096)

	a.NoError(g.Start(context.Background()))

	adds := 0
	for n := range ch {
		if n.Type == NotificationCardUpdate && n.Update.Kind == AddCard {
			adds++
			a.NotNil(n.Update.Card)
			a.Equal("wholeDeck", n.Update.Group.Name)
		}

		if n.Type == NotificationAwaitingInput {
			a.Equal(ChooseBid, n.Input)
			break
		}
	}

	a.Equal(deck.Size, adds)
	unsubscribe()
	unsubscribe()

	g.Quit()
}
