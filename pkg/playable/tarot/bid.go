package tarot

import "fmt"

// Bid is a contract announced during the bidding round
// The codes are the values a client supplies for CHOOSE_BID
type Bid int

// bids by increasing strength, Pass excepted
const (
	NoBid Bid = iota
	Small
	Guard
	GuardWithoutKitty
	GuardAgainstKitty
	Pass
)

// Bids lists every bid a player may choose
var Bids = []Bid{Small, Guard, GuardWithoutKitty, GuardAgainstKitty, Pass}

// BidFromCode returns the bid for a client supplied code
func BidFromCode(code int) (Bid, error) {
	bid := Bid(code)
	if bid < Small || bid > Pass {
		return NoBid, fmt.Errorf("%w: %d", ErrInvalidBid, code)
	}

	return bid, nil
}

// AllowsEcart returns true if the winner of this bid exchanges cards with the talon
func (b Bid) AllowsEcart() bool {
	return b == Small || b == Guard
}

// Beats returns true if b is a stronger contract than other
func (b Bid) Beats(other Bid) bool {
	if b == Pass || b == NoBid {
		return false
	}

	if other == Pass || other == NoBid {
		return true
	}

	return b > other
}

func (b Bid) String() string {
	switch b {
	case NoBid:
		return "none"
	case Small:
		return "Small"
	case Guard:
		return "Guard"
	case GuardWithoutKitty:
		return "GuardWithoutKitty"
	case GuardAgainstKitty:
		return "GuardAgainstKitty"
	case Pass:
		return "Pass"
	}

	return fmt.Sprintf("bid(%d)", int(b))
}

// MarshalText encodes the bid by name
func (b Bid) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
