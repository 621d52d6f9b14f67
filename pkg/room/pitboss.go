package room

import (
	"context"

	"github.com/sirupsen/logrus"
	"tarot-server/pkg/playable"
	"tarot-server/pkg/playable/tarot"
)

// PitBoss is responsible for giving every client its own dealer
type PitBoss struct {
	options          tarot.Options
	subscriberBuffer int

	dealers map[*Client]*Dealer
	// gone holds clients whose disconnect was handled before their connect
	gone       map[*Client]bool
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(options tarot.Options, subscriberBuffer int) *PitBoss {
	return &PitBoss{
		options:          options,
		subscriberBuffer: subscriberBuffer,
		dealers:          make(map[*Client]*Dealer),
		gone:             make(map[*Client]bool),
		connect:          make(chan *Client, 256),
		disconnect:       make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.clientConnected(client)
		case client := <-p.disconnect:
			p.clientDisconnected(client)
		}
	}
}

// NOTE: must only be called from the run loop
func (p *PitBoss) clientConnected(client *Client) {
	log := logrus.WithField("client", client.String())
	if p.gone[client] {
		delete(p.gone, client)
		log.Debug("client left before its session started")
		return
	}

	log.Debug("client connected")
	dealer, err := NewDealer(client, p.options, p.subscriberBuffer)
	if err != nil {
		log.WithError(err).Error("could not create dealer")
		client.Send(playable.ErrorResponse(err))
		return
	}

	if err := dealer.StartShift(context.Background()); err != nil {
		log.WithError(err).Error("could not start the game")
		client.Send(playable.ErrorResponse(err))
		return
	}

	p.dealers[client] = dealer
}

// NOTE: must only be called from the run loop
func (p *PitBoss) clientDisconnected(client *Client) {
	log := logrus.WithField("client", client.String())
	log.Debug("client disconnected")

	dealer, found := p.dealers[client]
	if !found {
		log.Debug("dealer not found, connect still pending")
		p.gone[client] = true
		return
	}

	delete(p.dealers, client)
	go dealer.EndShift()
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
