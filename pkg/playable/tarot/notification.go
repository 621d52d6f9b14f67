package tarot

import (
	"sync"

	"github.com/sirupsen/logrus"
	"tarot-server/pkg/deck"
)

// NotificationType tells what a notification is about
type NotificationType string

// notification types
const (
	NotificationCardUpdate         NotificationType = "CARD_UPDATE"
	NotificationState              NotificationType = "STATE"
	NotificationAwaitingInput      NotificationType = "AWAITING_INPUT"
	NotificationUnauthorizedChoice NotificationType = "UNAUTHORIZED_CARD_CHOICE"
)

// UpdateKind is the mutation described by a card update
type UpdateKind string

// card update kinds
const (
	AddCard               UpdateKind = "ADD_CARD"
	SpreadCards           UpdateKind = "SPREAD_CARDS"
	ShuffleCards          UpdateKind = "SHUFFLE_CARDS"
	CutDeck               UpdateKind = "CUT_DECK"
	SortDeck              UpdateKind = "SORT_DECK"
	MoveCardBetweenGroups UpdateKind = "MOVE_CARD_BETWEEN_GROUPS"
	FlipCard              UpdateKind = "FLIP_CARD"
	GatherCards           UpdateKind = "GATHER_CARDS"
	DeleteCard            UpdateKind = "DELETE_CARD"
)

// InputKind is the choice the game is waiting for
type InputKind string

// input kinds
const (
	// PickCard expects an index into the spread cards
	PickCard InputKind = "PICK_CARD"
	// ChooseBid expects a bid code
	ChooseBid InputKind = "CHOOSE_BID"
	// ChooseEcartCard expects an index into the winner's hand
	ChooseEcartCard InputKind = "CHOOSE_ECART_CARD"
)

// GroupRef identifies a card group without exposing it
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func refOf(g *deck.Group) *GroupRef {
	if g == nil {
		return nil
	}

	return &GroupRef{ID: g.ID(), Name: g.Name()}
}

// CardUpdate describes one card mutation
// Card is a copy taken when the update was emitted, Holder the group holding it at that time
type CardUpdate struct {
	Kind   UpdateKind `json:"kind"`
	Card   *deck.Card `json:"card,omitempty"`
	Group  *GroupRef  `json:"group,omitempty"`
	Holder *GroupRef  `json:"holder,omitempty"`
}

// Notification is sent to every observer and subscriber of a game
type Notification struct {
	Type   NotificationType `json:"type"`
	Update *CardUpdate      `json:"update,omitempty"`
	State  State            `json:"state,omitempty"`
	Input  InputKind        `json:"input,omitempty"`
}

// MaskedFor returns the notification as the seat may see it.
// A face-down card is only identified while it sits in the seat's own hand
func (n Notification) MaskedFor(seat Seat) Notification {
	u := n.Update
	if u == nil || u.Card == nil || u.Card.IsShown() {
		return n
	}

	if u.Holder != nil && u.Holder.Name == seat.String() {
		return n
	}

	masked := *u
	masked.Card = nil
	n.Update = &masked
	return n
}

type hub struct {
	lock        sync.Mutex
	logger      logrus.FieldLogger
	observers   []func(Notification)
	subscribers map[int]chan Notification
	nextID      int
	closed      bool
}

func newHub(logger logrus.FieldLogger) *hub {
	return &hub{
		logger:      logger,
		subscribers: make(map[int]chan Notification),
	}
}

func (h *hub) observe(fn func(Notification)) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.observers = append(h.observers, fn)
}

func (h *hub) subscribe(size int) (<-chan Notification, func()) {
	h.lock.Lock()
	defer h.lock.Unlock()

	ch := make(chan Notification, size)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.lock.Lock()
			defer h.lock.Unlock()

			if sub, ok := h.subscribers[id]; ok {
				delete(h.subscribers, id)
				close(sub)
			}
		})
	}
}

// attached returns true if anything listens to the game
func (h *hub) attached() bool {
	h.lock.Lock()
	defer h.lock.Unlock()

	return len(h.observers) > 0 || len(h.subscribers) > 0
}

func (h *hub) publish(n Notification) {
	h.lock.Lock()
	observers := append([]func(Notification){}, h.observers...)
	for _, sub := range h.subscribers {
		select {
		case sub <- n:
		default:
			h.logger.WithField("type", n.Type).Warn("subscriber is full, dropping notification")
		}
	}
	h.lock.Unlock()

	for _, fn := range observers {
		fn(n)
	}
}

func (h *hub) close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.closed = true
	h.observers = nil
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub)
	}
}
