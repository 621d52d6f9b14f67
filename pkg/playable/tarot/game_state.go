package tarot

import (
	"tarot-server/pkg/deck"
)

// CardView is a card as a client may see it
// Hidden cards carry no identity
type CardView struct {
	Name  string    `json:"name,omitempty"`
	Suit  deck.Suit `json:"suit,omitempty"`
	Rank  int       `json:"rank,omitempty"`
	Shown bool      `json:"shown"`
}

// HandState is the public state of one seat
type HandState struct {
	Seat        Seat        `json:"seat"`
	DisplayName string      `json:"displayName"`
	Bid         Bid         `json:"bid"`
	CardCount   int         `json:"cardCount"`
	Cards       []*CardView `json:"cards"`
	IsDealer    bool        `json:"isDealer"`
	IsHuman     bool        `json:"isHuman"`
}

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Session     string       `json:"session"`
	State       State        `json:"state"`
	Dealer      Seat         `json:"dealer"`
	CurrentTurn Seat         `json:"currentTurn"`
	Deals       int          `json:"deals"`
	Awaiting    InputKind    `json:"awaiting,omitempty"`
	Hands       []*HandState `json:"hands"`
	Talon       []*CardView  `json:"talon"`
	WholeDeck   int          `json:"wholeDeck"`
	ToPick      int          `json:"toPick"`
	Picked      []*CardView  `json:"picked"`
}

func viewOf(card *deck.Card, reveal bool) *CardView {
	if !reveal && !card.IsShown() {
		return &CardView{}
	}

	return &CardView{
		Name:  card.Name(),
		Suit:  card.Suit,
		Rank:  card.Rank,
		Shown: card.IsShown(),
	}
}

func viewsOf(g *deck.Group, reveal bool) []*CardView {
	views := make([]*CardView, 0, g.Len())
	for _, c := range g.Cards() {
		views = append(views, viewOf(c, reveal))
	}

	return views
}

// GetState returns a snapshot where only face-up cards are identified
func (g *Game) GetState() *GameState {
	return g.getGameState(nil)
}

// GetSeatState returns a snapshot where the seat also sees its own hidden cards
func (g *Game) GetSeatState(seat Seat) *GameState {
	return g.getGameState(&seat)
}

func (g *Game) getGameState(viewer *Seat) *GameState {
	awaiting, _ := g.Pending()

	g.lock.RLock()
	defer g.lock.RUnlock()

	hands := make([]*HandState, 0, len(Seats))
	for _, h := range g.players.hands {
		reveal := viewer != nil && *viewer == h.Seat
		hands = append(hands, &HandState{
			Seat:        h.Seat,
			DisplayName: h.DisplayName,
			Bid:         h.bid,
			CardCount:   h.Len(),
			Cards:       viewsOf(h.Group, reveal),
			IsDealer:    h.Seat == g.players.dealer,
			IsHuman:     h.Seat == g.options.HumanSeat,
		})
	}

	return &GameState{
		Session:     g.uuid,
		State:       g.state,
		Dealer:      g.players.dealer,
		CurrentTurn: g.players.currentTurn,
		Deals:       g.deals,
		Awaiting:    awaiting,
		Hands:       hands,
		Talon:       viewsOf(g.talon.Group, false),
		WholeDeck:   g.wholeDeck.Len(),
		ToPick:      g.toPickDeck.Len(),
		Picked:      viewsOf(g.pickedDeck, false),
	}
}
