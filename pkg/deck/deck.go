package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"fmt"
)

// Size is the number of cards in a tarot deck
const Size = 78

// DuplicateCardError happens when a card with the same suit and rank was already created
type DuplicateCardError string

func (d DuplicateCardError) Error() string {
	return fmt.Sprintf("card %s already exists", string(d))
}

// Registry creates cards and guarantees a suit/rank pair exists only once
// A session owns one registry
type Registry struct {
	created map[string]bool
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		created: make(map[string]bool),
	}
}

// NewCard creates the card for the suit and rank
// The card starts face down
func (r *Registry) NewCard(suit Suit, rank int) (*Card, error) {
	if err := validate(suit, rank); err != nil {
		return nil, err
	}

	card := &Card{Suit: suit, Rank: rank}
	name := card.Name()
	if r.created[name] {
		return nil, DuplicateCardError(name)
	}

	r.created[name] = true
	return card, nil
}

// Release forgets a card so it can be created again
func (r *Registry) Release(card *Card) {
	delete(r.created, card.Name())
}

// Count returns how many cards currently exist
func (r *Registry) Count() int {
	return len(r.created)
}

// BuildDeck creates the 78 cards in canonical order.
// A card that cannot be created is skipped and its error returned; the build continues
func (r *Registry) BuildDeck() ([]*Card, []error) {
	cards := make([]*Card, 0, Size)
	var errs []error

	add := func(suit Suit, rank int) {
		card, err := r.NewCard(suit, rank)
		if err != nil {
			errs = append(errs, err)
			return
		}

		cards = append(cards, card)
	}

	for _, suit := range OrdinarySuits {
		for rank := 1; rank <= King; rank++ {
			add(suit, rank)
		}
	}

	for rank := LowestTrump; rank <= HighestTrump; rank++ {
		add(Trumps, rank)
	}

	add(Excuse, ExcuseRank)

	return cards, errs
}

// HashCode returns a SHA1 hash code of the card order
func HashCode(cards []*Card) string {
	hash := sha1.New() // nolint:gosec
	for _, card := range cards {
		_, _ = hash.Write([]byte(card.Name()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}
