package room

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"tarot-server/pkg/playable"
	"tarot-server/pkg/playable/tarot"
)

// errMissingValue is sent back when a choice carries no value
var errMissingValue = errors.New("additionalData.value must be an integer")

// clientState is what a client receives when it asks for the state of its session
type clientState struct {
	Game *tarot.GameState       `json:"game"`
	Logs []*playable.LogMessage `json:"logs"`
}

// Dealer runs one tarot session for one client
type Dealer struct {
	client *Client
	game   *tarot.Game
	seat   tarot.Seat
	log    logrus.FieldLogger

	notifications <-chan tarot.Notification
	unsubscribe   func()
	logMessages   []*playable.LogMessage

	execInRunLoop chan func()
	close         chan bool
	finished      chan bool
}

// NewDealer creates a new dealer object and its game
// This is called from a blocking state, so it needs to return quickly
func NewDealer(client *Client, opts tarot.Options, subscriberBuffer int) (*Dealer, error) {
	game, err := tarot.NewGame(opts)
	if err != nil {
		return nil, err
	}

	d := &Dealer{
		client:        client,
		game:          game,
		seat:          opts.HumanSeat,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
		finished:      make(chan bool),
		log: logrus.WithFields(logrus.Fields{
			"session": game.UUID(),
			"client":  client.String(),
		}),
	}

	d.notifications, d.unsubscribe = game.Subscribe(subscriberBuffer)
	client.setDealer(d)

	return d, nil
}

// Game returns the session run by the dealer
func (d *Dealer) Game() *tarot.Game {
	return d.game
}

// StartShift starts the game and the run loop
func (d *Dealer) StartShift(ctx context.Context) error {
	if err := d.game.Start(ctx); err != nil {
		d.unsubscribe()
		return err
	}

	go d.runLoop()
	d.execInRunLoop <- d.sendState
	return nil
}

func (d *Dealer) runLoop() {
	defer close(d.finished)

	d.log.Debug("creating dealer run loop")
	notifications := d.notifications
	logs := d.game.LogChan()
	for {
		select {
		case n, ok := <-notifications:
			if !ok {
				notifications = nil
				continue
			}

			d.send(&playable.Response{Key: "notification", Data: n.MaskedFor(d.seat)})
			if n.Type == tarot.NotificationState {
				d.sendState()
			}
		case msgs, ok := <-logs:
			if !ok {
				logs = nil
				continue
			}

			d.addLogMessages(msgs)
			d.send(&playable.Response{Key: "logs", Data: msgs})
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift tears the session down
func (d *Dealer) EndShift() {
	d.unsubscribe()
	d.game.Quit()
	close(d.close)
	<-d.finished
}

// send blocks until the client takes the message or the shift ends
// NOTE: must only be called from the run loop
func (d *Dealer) send(msg interface{}) {
	select {
	case d.client.send <- msg:
	case <-d.close:
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendState() {
	d.send(&playable.Response{
		Key: "gameState",
		Data: &clientState{
			Game: d.game.GetSeatState(d.seat),
			Logs: d.logMessages,
		},
	})
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "choose":
		value, ok := msg.AdditionalData.GetInt("value")
		if !ok {
			c.Send(playable.ErrorResponse(errMissingValue, msg.Context))
			return
		}

		if err := d.game.Supply(value); err != nil {
			d.log.WithError(err).Warn("could not supply choice")
			c.Send(playable.ErrorResponse(err, msg.Context))
			return
		}

		c.Send(playable.OK(msg.Context))
	case "state":
		select {
		case d.execInRunLoop <- d.sendState:
		case <-d.close:
		}
	default:
		d.log.WithField("action", msg.Action).Warn("unknown message")
		c.Send(playable.ErrorResponse(errors.New("unknown action"), msg.Context))
	}
}
