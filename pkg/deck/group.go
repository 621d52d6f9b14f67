package deck

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"tarot-server/internal/rng"
)

// ErrCardNotInGroup is returned when a card is moved out of a group that does not hold it
var ErrCardNotInGroup = errors.New("card is not in the group")

// CapacityError is returned when a card is added to a full group
// The value is the group's maximum
type CapacityError int

func (c CapacityError) Error() string {
	return fmt.Sprintf("card number limit has been reached, max is %d", int(c))
}

// Group is an ordered collection of cards that can never hold more than its capacity
type Group struct {
	id       uuid.UUID
	name     string
	capacity int
	cards    []*Card
}

// NewGroup returns an empty group
func NewGroup(name string, capacity int) *Group {
	return &Group{
		id:       uuid.New(),
		name:     name,
		capacity: capacity,
		cards:    make([]*Card, 0, capacity),
	}
}

// ID returns the instance id
func (g *Group) ID() string {
	return g.id.String()
}

// Name returns the name of the group
func (g *Group) Name() string {
	return g.name
}

// Equal compares instances, not contents
func (g *Group) Equal(other *Group) bool {
	return other != nil && g.id == other.id
}

// Len returns the number of cards
func (g *Group) Len() int {
	return len(g.cards)
}

// Cap returns the maximum number of cards
func (g *Group) Cap() int {
	return g.capacity
}

// IsFull returns true if no card can be added
func (g *Group) IsFull() bool {
	return len(g.cards) >= g.capacity
}

// IsEmpty returns true if the group holds no card
func (g *Group) IsEmpty() bool {
	return len(g.cards) == 0
}

// Add appends the card unless the group is full
func (g *Group) Add(card *Card) error {
	if g.IsFull() {
		return CapacityError(g.capacity)
	}

	g.cards = append(g.cards, card)
	return nil
}

// Remove removes the card instance, returns false if it was not found
func (g *Group) Remove(card *Card) bool {
	i := g.IndexOf(card)
	if i < 0 {
		return false
	}

	g.cards = append(g.cards[:i], g.cards[i+1:]...)
	return true
}

// At returns the card at index i or nil if out of range
func (g *Group) At(i int) *Card {
	if i < 0 || i >= len(g.cards) {
		return nil
	}

	return g.cards[i]
}

// First returns the first card or nil
func (g *Group) First() *Card {
	return g.At(0)
}

// IndexOf returns the index of the card instance, or -1
func (g *Group) IndexOf(card *Card) int {
	for i, c := range g.cards {
		if c == card {
			return i
		}
	}

	return -1
}

// Contains returns true if the group holds the card instance
func (g *Group) Contains(card *Card) bool {
	return g.IndexOf(card) >= 0
}

// Find returns the card with the given name, or nil
func (g *Group) Find(name string) *Card {
	for _, c := range g.cards {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// Cards returns a shallow clone of the cards
func (g *Group) Cards() []*Card {
	return append([]*Card{}, g.cards...)
}

// Shuffle is a Fisher-Yates shuffle driven by the generator
func (g *Group) Shuffle(r rng.Generator) {
	for j := len(g.cards) - 1; j > 0; j-- {
		i := r.Intn(j + 1)

		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	}
}

// CutAt splits the group after index i and swaps both halves.
// The card at i becomes the last card
func (g *Group) CutAt(i int) error {
	if i < 0 || i >= len(g.cards) {
		return fmt.Errorf("cut index %d out of range [0, %d)", i, len(g.cards))
	}

	cut := make([]*Card, 0, len(g.cards))
	cut = append(cut, g.cards[i+1:]...)
	cut = append(cut, g.cards[:i+1]...)
	g.cards = cut
	return nil
}

// Sort sorts the group using the canonical ordering
func (g *Group) Sort() {
	Sort(g.cards)
}

// SetShown flips every card of the group to the given side
func (g *Group) SetShown(shown bool) {
	for _, c := range g.cards {
		c.SetShown(shown)
	}
}

func (g *Group) String() string {
	s := ""
	for _, c := range g.cards {
		if c.IsShown() {
			s += c.Name() + "; "
		} else {
			s += "?? ; "
		}
	}

	return s
}

// Move transfers the card from one group to another.
// Nothing changes if the card is not in the source or the target is full
func Move(from, to *Group, card *Card) error {
	if !from.Contains(card) {
		return ErrCardNotInGroup
	}

	if to.IsFull() {
		return CapacityError(to.capacity)
	}

	from.Remove(card)
	// cannot fail, room was checked above
	_ = to.Add(card)
	return nil
}
