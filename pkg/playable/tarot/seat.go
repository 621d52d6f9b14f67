package tarot

import (
	"fmt"
	"strings"
)

// Seat is one of the four cardinal positions around the table
type Seat int

// seats, in the order play rotates to the left
const (
	North Seat = iota
	East
	South
	West
)

// Seats lists every seat in rotation order
var Seats = []Seat{North, East, South, West}

// Next returns the seat to the left
func (s Seat) Next() Seat {
	return (s + 1) % Seat(len(Seats))
}

// Valid returns true for the four known seats
func (s Seat) Valid() bool {
	return s >= North && s <= West
}

func (s Seat) String() string {
	switch s {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}

	return fmt.Sprintf("seat(%d)", int(s))
}

// MarshalText encodes the seat by name
func (s Seat) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a seat name
func (s *Seat) UnmarshalText(text []byte) error {
	seat, err := SeatFromString(string(text))
	if err != nil {
		return err
	}

	*s = seat
	return nil
}

// SeatFromString parses a seat name (case insensitive)
func SeatFromString(name string) (Seat, error) {
	for _, seat := range Seats {
		if strings.EqualFold(seat.String(), name) {
			return seat, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownSeat, name)
}
