package playable

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"tarot-server/pkg/deck"
)

// LogMessage is the format a game should send log messages in
// If Seats is empty, assume it's a general statement, otherwise the message will be sent like "{seat} did X, Y, Z"
type LogMessage struct {
	UUID    string       `json:"uuid"`
	Seats   []string     `json:"seats"`
	Cards   []*deck.Card `json:"cards"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
}

// Response is the envelope of every message sent to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse returns a response describing a failed action
func ErrorResponse(err error, ctx ...string) *Response {
	res := &Response{
		Key:   "error",
		Value: err.Error(),
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from a client
type PayloadIn struct {
	Action         string         `json:"action"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	}

	return 0, false
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(seat string, format string, a ...interface{}) *LogMessage {
	var seats []string
	if seat != "" {
		seats = []string{seat}
	}

	return &LogMessage{
		UUID:    uuid.New().String(),
		Seats:   seats,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// CardLogMessage returns a new LogMessage about specific cards
func CardLogMessage(seat string, cards []*deck.Card, format string, a ...interface{}) *LogMessage {
	lm := SimpleLogMessage(seat, format, a...)
	lm.Cards = cards
	return lm
}
