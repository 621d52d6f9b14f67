package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"tarot-server/pkg/playable/tarot"
	"tarot-server/pkg/room"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
}

// NewMux returns a new HTTP mux
// Every websocket connection gets its own session created with the options
func NewMux(version string, options tarot.Options, subscriberBuffer int) *Mux {
	pitBoss := room.NewPitBoss(options, subscriberBuffer)
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/session/ws").Handler(this.getSessionWS())

	return this
}
