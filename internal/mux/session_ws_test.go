package mux

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tarot-server/pkg/playable"
	"tarot-server/pkg/playable/tarot"
)

type wsNotification struct {
	Type  string `json:"type"`
	State string `json:"state"`
	Input string `json:"input"`
}

type wsResponse struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Context string          `json:"context"`
	Data    *wsNotification `json:"data"`
}

// readUntil reads the socket until a notification matches
func readUntil(t *testing.T, conn *websocket.Conn, match func(*wsResponse) bool) *wsResponse {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var res wsResponse
		if err := conn.ReadJSON(&res); err != nil {
			// logs carry a list
			var typeErr *json.UnmarshalTypeError
			require.True(t, errors.As(err, &typeErr), err.Error())
			continue
		}

		if match(&res) {
			return &res
		}
	}
}

func TestSessionWS(t *testing.T) {
	a := assert.New(t)

	opts := tarot.DefaultOptions()
	opts.ChooseDealer = false
	opts.Pacing = tarot.Pacing{}
	opts.Seed = 5

	ts := httptest.NewServer(NewMux("test", opts, 4096))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/session/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readUntil(t, conn, func(res *wsResponse) bool {
		return res.Key == "notification" && res.Data.Type == "AWAITING_INPUT" && res.Data.Input == "CHOOSE_BID"
	})

	a.NoError(conn.WriteJSON(playable.PayloadIn{
		Action:         "choose",
		AdditionalData: playable.AdditionalData{"value": 3},
		Context:        "bid",
	}))

	ok := readUntil(t, conn, func(res *wsResponse) bool { return res.Context == "bid" })
	a.Equal("status", ok.Key)
	a.Equal("OK", ok.Value)

	readUntil(t, conn, func(res *wsResponse) bool {
		return res.Key == "notification" && res.Data.Type == "STATE" && res.Data.State == "BID_CHOSEN"
	})
}
