package deck

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidCard is an error when a suit and rank do not describe a tarot card
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
// Trumps and the Excuse are modelled as suits of their own
type Suit string

// suit constants
const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Trumps   Suit = "trumps"
	Excuse   Suit = "excuse"
)

// OrdinarySuits are the four suits holding numeric and face cards
var OrdinarySuits = []Suit{Spades, Hearts, Diamonds, Clubs}

var suitOrder = map[Suit]int{
	Spades:   0,
	Hearts:   1,
	Diamonds: 2,
	Clubs:    3,
	Trumps:   4,
	Excuse:   5,
}

// face cards
const (
	Jack   = 11
	Knight = 12
	Queen  = 13
	King   = 14
)

// trump bounds
const (
	LowestTrump  = 1
	HighestTrump = 21
)

// ExcuseRank is the rank carried by the Excuse
const ExcuseRank = 0

// Card is an individual tarot card
// Suit and rank never change once the card has been created
type Card struct {
	Suit  Suit `json:"suit"`
	Rank  int  `json:"rank"`
	Shown bool `json:"shown"`
}

// IsTrump returns true for the 21 trumps
func (c *Card) IsTrump() bool {
	return c.Suit == Trumps
}

// IsExcuse returns true for the Excuse
func (c *Card) IsExcuse() bool {
	return c.Suit == Excuse
}

// IsKing returns true for a King of any ordinary suit
func (c *Card) IsKing() bool {
	return !c.IsTrump() && !c.IsExcuse() && c.Rank == King
}

// IsOrdinary returns true for cards of the four ordinary suits
func (c *Card) IsOrdinary() bool {
	return !c.IsTrump() && !c.IsExcuse()
}

// IsShown returns true if the card is face up
func (c *Card) IsShown() bool {
	return c.Shown
}

// SetShown flips the card to the given side
func (c *Card) SetShown(shown bool) {
	c.Shown = shown
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// Name returns the stable identifier of the card, e.g. Spades7, HeartsKing, Trump21
func (c *Card) Name() string {
	switch c.Suit {
	case Excuse:
		return "Excuse"
	case Trumps:
		return "Trump" + strconv.Itoa(c.Rank)
	}

	suit := strings.ToUpper(string(c.Suit[:1])) + string(c.Suit[1:])
	switch c.Rank {
	case Jack:
		return suit + "Jack"
	case Knight:
		return suit + "Knight"
	case Queen:
		return suit + "Queen"
	case King:
		return suit + "King"
	}

	return suit + strconv.Itoa(c.Rank)
}

func (c *Card) String() string {
	switch c.Suit {
	case Excuse:
		return "EX"
	case Trumps:
		return fmt.Sprintf("T%d", c.Rank)
	}

	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Knight:
		rank = "C"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return rank + suit
}

func validate(suit Suit, rank int) error {
	switch suit {
	case Spades, Hearts, Diamonds, Clubs:
		if rank < 1 || rank > King {
			return ErrInvalidCard
		}
	case Trumps:
		if rank < LowestTrump || rank > HighestTrump {
			return ErrInvalidCard
		}
	case Excuse:
		if rank != ExcuseRank {
			return ErrInvalidCard
		}
	default:
		return ErrInvalidCard
	}

	return nil
}

// Less is the canonical card ordering
// Spades < Hearts < Diamonds < Clubs < Trumps < Excuse, then by rank
func Less(a, b *Card) bool {
	if sa, sb := suitOrder[a.Suit], suitOrder[b.Suit]; sa != sb {
		return sa < sb
	}

	return a.Rank < b.Rank
}

// Sort sorts the cards in place using the canonical ordering
func Sort(cards []*Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return Less(cards[i], cards[j])
	})
}

var cardRx = regexp.MustCompile(`(?i)^(?:([0-9]{1,2})([shdct])|(ex))\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where suit in [shdct] (t is for trumps), or "ex"
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	if match[3] != "" {
		return &Card{Suit: Excuse, Rank: ExcuseRank}
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "s":
		suit = Spades
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "c":
		suit = Clubs
	case "t":
		suit = Trumps
	}

	if err := validate(suit, rank); err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	return &Card{
		Suit: suit,
		Rank: rank,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (King of Hearts) to a string (14h)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	var suit string
	switch card.Suit {
	case Excuse:
		return "ex"
	case Spades:
		suit = "s"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Clubs:
		suit = "c"
	case Trumps:
		suit = "t"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 1s,14h,5t,ex,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
