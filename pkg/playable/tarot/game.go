package tarot

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"tarot-server/internal/rng"
	"tarot-server/pkg/deck"
	"tarot-server/pkg/playable"
)

const pickedCards = 4

// Game is one tarot session: dealer selection, dealing, bidding and the ecart
type Game struct {
	options  Options
	uuid     string
	logger   logrus.FieldLogger
	rng      rng.Generator
	registry *deck.Registry

	// lock guards the card containers, bids and state against concurrent readers.
	// Only the game goroutine writes
	lock       sync.RWMutex
	state      State
	wholeDeck  *deck.Group
	toPickDeck *deck.Group
	pickedDeck *deck.Group
	pickedBy   map[*deck.Card]Seat
	players    *Players
	talon      *Talon
	deals      int

	sm      *fsm.FSM
	hub     *hub
	intake  intake
	logChan chan []*playable.LogMessage

	// dealFn distributes the working deck, replaced by tests
	dealFn func(ctx context.Context) error

	runLock sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
	ended   bool
}

// NewGame returns a new game
// No card exists until Start is called
func NewGame(options Options) (*Game, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	logger := logrus.WithField("session", id)

	g := &Game{
		options:    options,
		uuid:       id,
		logger:     logger,
		rng:        rng.New(options.Seed),
		registry:   deck.NewRegistry(),
		state:      StateCardsSpreading,
		wholeDeck:  deck.NewGroup("wholeDeck", deck.Size),
		toPickDeck: deck.NewGroup("toPickDeck", deck.Size),
		pickedDeck: deck.NewGroup("pickedCardsDeck", pickedCards),
		pickedBy:   make(map[*deck.Card]Seat),
		players:    newPlayers(options.HumanSeat),
		talon:      newTalon(),
		hub:        newHub(logger),
		logChan:    make(chan []*playable.LogMessage, 256),
	}

	g.sm = newStateMachine(g.enteredState)
	g.dealFn = g.dealAll

	return g, nil
}

// UUID returns the session id
func (g *Game) UUID() string {
	return g.uuid
}

// Name returns "tarot"
func (g *Game) Name() string {
	return "tarot"
}

// Observe registers a callback called synchronously for every notification
func (g *Game) Observe(fn func(Notification)) {
	g.hub.observe(fn)
}

// Subscribe returns a buffered channel of notifications and a function to unsubscribe.
// Notifications are dropped when the buffer is full
func (g *Game) Subscribe(size int) (<-chan Notification, func()) {
	return g.hub.subscribe(size)
}

// LogChan returns a channel for game log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Start launches the game goroutine
func (g *Game) Start(ctx context.Context) error {
	g.runLock.Lock()
	defer g.runLock.Unlock()

	if g.ended {
		return ErrGameEnded
	}

	if g.done != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.done = make(chan struct{})

	go func() {
		defer close(g.done)

		g.err = g.run(ctx)
		switch {
		case g.err == nil:
			g.logger.Debug("game goroutine finished")
		case errors.Is(g.err, context.Canceled):
			g.logger.Debug("game goroutine cancelled")
		default:
			g.logger.WithError(g.err).Error("game goroutine failed")
		}
	}()

	return nil
}

// Wait blocks until the game goroutine returns
func (g *Game) Wait() error {
	g.runLock.Lock()
	done := g.done
	g.runLock.Unlock()

	if done == nil {
		return ErrNotStarted
	}

	<-done
	return g.err
}

func (g *Game) run(ctx context.Context) error {
	if err := g.createCards(ctx); err != nil {
		return errors.Wrap(err, "creating cards")
	}

	if g.options.ChooseDealer {
		if err := g.chooseInitialDealer(ctx); err != nil {
			return errors.Wrap(err, "choosing dealer")
		}
	}

	if err := g.handleDealing(ctx); err != nil {
		return errors.Wrap(err, "dealing")
	}

	if err := g.handleBids(ctx); err != nil {
		return errors.Wrap(err, "bidding")
	}

	return nil
}

// Quit tears the session down: the game goroutine is stopped, every card is
// gathered then deleted, and observers are released
func (g *Game) Quit() {
	g.runLock.Lock()
	defer g.runLock.Unlock()

	if g.ended {
		return
	}

	if g.cancel != nil {
		g.cancel()
		<-g.done
	}

	g.ended = true
	if err := g.changeState(StateEnded); err != nil {
		g.logger.WithError(err).Error("could not end the session")
	}

	g.collectAll()
	g.notifyCard(GatherCards, nil, g.wholeDeck)

	for !g.wholeDeck.IsEmpty() {
		g.lock.Lock()
		card := g.wholeDeck.First()
		g.wholeDeck.Remove(card)
		g.registry.Release(card)
		g.lock.Unlock()

		g.notifyCard(DeleteCard, card, nil)
	}

	g.lock.Lock()
	g.pickedBy = nil
	g.lock.Unlock()

	g.hub.close()
	close(g.logChan)
	g.logger.Info("session ended")
}

// Audit verifies that every card is in exactly one container
func (g *Game) Audit() error {
	g.lock.RLock()
	defer g.lock.RUnlock()

	return deck.Audit(deck.Size, g.groups()...)
}

// groups returns every card container of the session
// NOTE: caller must hold the lock
func (g *Game) groups() []*deck.Group {
	groups := []*deck.Group{g.wholeDeck, g.toPickDeck, g.pickedDeck}
	for _, h := range g.players.hands {
		groups = append(groups, h.Group)
	}

	return append(groups, g.talon.Group)
}

// holderOf returns the group holding the card, nil once it is deleted
// NOTE: caller must hold the lock
func (g *Game) holderOf(card *deck.Card) *deck.Group {
	if card == nil {
		return nil
	}

	for _, group := range g.groups() {
		if group.Contains(card) {
			return group
		}
	}

	return nil
}

func (g *Game) human() *Hand {
	return g.players.Hand(g.options.HumanSeat)
}

func (g *Game) publish(n Notification) {
	g.hub.publish(n)
}

// createCards builds the 78 cards into the whole deck
func (g *Game) createCards(ctx context.Context) error {
	cards, errs := g.registry.BuildDeck()
	for _, err := range errs {
		g.logger.WithError(err).Error("could not create card")
	}

	for _, card := range cards {
		g.lock.Lock()
		err := g.wholeDeck.Add(card)
		if err != nil {
			g.registry.Release(card)
		}
		g.lock.Unlock()

		if err != nil {
			g.logger.WithError(err).WithField("card", card.Name()).Error("could not add card")
			continue
		}

		g.notifyCard(AddCard, card, g.wholeDeck)
	}

	g.enteredState(StateCardsSpreading)
	return ctx.Err()
}

func cardCopy(c *deck.Card) *deck.Card {
	if c == nil {
		return nil
	}

	cp := *c
	return &cp
}

// notifyCard publishes a card update without pacing
func (g *Game) notifyCard(kind UpdateKind, card *deck.Card, group *deck.Group) {
	g.lock.RLock()
	update := &CardUpdate{
		Kind:   kind,
		Card:   cardCopy(card),
		Group:  refOf(group),
		Holder: refOf(g.holderOf(card)),
	}
	g.lock.RUnlock()

	g.publish(Notification{Type: NotificationCardUpdate, Update: update})
}

// cardUpdate publishes a card update and lets observers animate it
func (g *Game) cardUpdate(ctx context.Context, kind UpdateKind, card *deck.Card, group *deck.Group) error {
	g.notifyCard(kind, card, group)
	return g.pause(ctx, g.options.Pacing.CardUpdate)
}

// moveCard is the only way a card changes container during play
func (g *Game) moveCard(ctx context.Context, from, to *deck.Group, card *deck.Card, notify bool) error {
	g.lock.Lock()
	err := deck.Move(from, to, card)
	g.lock.Unlock()

	if err != nil {
		return errors.Wrapf(err, "could not move %s from %s to %s", card.Name(), from.Name(), to.Name())
	}

	if !notify {
		return ctx.Err()
	}

	return g.cardUpdate(ctx, MoveCardBetweenGroups, card, to)
}

func (g *Game) flipCard(ctx context.Context, card *deck.Card, shown bool) error {
	g.lock.Lock()
	card.SetShown(shown)
	g.lock.Unlock()

	return g.cardUpdate(ctx, FlipCard, card, nil)
}

func (g *Game) flipGroup(ctx context.Context, group *deck.Group, shown bool) error {
	g.lock.Lock()
	group.SetShown(shown)
	g.lock.Unlock()

	return g.cardUpdate(ctx, FlipCard, nil, group)
}

func (g *Game) sortGroup(ctx context.Context, group *deck.Group) error {
	g.lock.Lock()
	group.Sort()
	g.lock.Unlock()

	return g.cardUpdate(ctx, SortDeck, nil, group)
}

// collectAll puts every card back, face down, in the whole deck
func (g *Game) collectAll() {
	g.lock.Lock()
	defer g.lock.Unlock()

	sources := []*deck.Group{}
	for _, h := range g.players.hands {
		sources = append(sources, h.Group)
	}
	sources = append(sources, g.talon.Group, g.pickedDeck, g.toPickDeck)

	for _, src := range sources {
		for !src.IsEmpty() {
			card := src.First()
			card.SetShown(false)
			if err := deck.Move(src, g.wholeDeck, card); err != nil {
				// the whole deck can hold every card, this is a broken invariant
				panic(err)
			}
		}
	}

	for _, card := range g.wholeDeck.Cards() {
		card.SetShown(false)
	}

	for card := range g.pickedBy {
		delete(g.pickedBy, card)
	}
}

// gatherAll retrieves all cards from players, talon and picking pools
func (g *Game) gatherAll(ctx context.Context) error {
	g.collectAll()
	return g.cardUpdate(ctx, GatherCards, nil, g.wholeDeck)
}
