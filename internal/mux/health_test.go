package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/bmizerany/assert"
	"tarot-server/pkg/playable/tarot"
)

func TestHealthHandler(t *testing.T) {
	ts := httptest.NewServer(NewMux("v1.2.3", tarot.DefaultOptions(), 16))
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}
