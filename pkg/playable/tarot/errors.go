package tarot

import "errors"

// ErrInvalidOptions is returned by NewGame when the options cannot be used
var ErrInvalidOptions = errors.New("invalid options")

// ErrInvalidBid is an error when a bid code is unknown
var ErrInvalidBid = errors.New("invalid bid")

// ErrUnknownSeat is an error when a seat name cannot be parsed
var ErrUnknownSeat = errors.New("unknown seat")

// ErrNoPendingRequest is returned by Supply when the game is not waiting for a choice
var ErrNoPendingRequest = errors.New("the game is not waiting for a choice")

// ErrAlreadyStarted is returned when Start is called twice
var ErrAlreadyStarted = errors.New("game already started")

// ErrNotStarted is returned by Wait before Start
var ErrNotStarted = errors.New("game not started")

// ErrGameEnded is an error when the game has been torn down
var ErrGameEnded = errors.New("game has ended")
