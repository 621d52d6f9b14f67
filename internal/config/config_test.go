package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"tarot-server/internal/util"
	"tarot-server/pkg/playable/tarot"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("TAROT_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("TAROT_TAROT_TALON_CHANCE", "25")
	defer clear2()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("debug", cfg.Log.Level)
	a.Equal("west", cfg.Tarot.HumanSeat)
	a.Equal(25, cfg.Tarot.TalonChance)
	a.False(cfg.Tarot.ChooseDealer)
	a.True(cfg.Tarot.PaceBids, "default kept when the file is silent")
	a.Equal(128, cfg.Server.SubscriberBuffer)

	// ensure that it's only loaded once
	_ = os.Setenv("TAROT_TAROT_TALON_CHANCE", "75")
	// ensure we aren't using a pointer
	cfg.Tarot.TalonChance = 0
	cfg = Instance()
	a.Equal(25, cfg.Tarot.TalonChance)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("TAROT_CONFIG_FILE", "testdata/missing.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, "south", cfg.Tarot.HumanSeat)
	assert.Equal(t, 25, cfg.Tarot.TalonChance)
	assert.Equal(t, 4096, cfg.Server.SubscriberBuffer)
}

func TestConfig_TarotOptions(t *testing.T) {
	a := assert.New(t)

	cfg := DefaultConfig()
	cfg.Tarot.HumanSeat = "East"
	cfg.Tarot.Pacing.LongMS = 30
	cfg.Tarot.Seed = 9

	opts, err := cfg.TarotOptions()
	a.NoError(err)
	a.Equal(tarot.East, opts.HumanSeat)
	a.Equal(30*time.Millisecond, opts.Pacing.Long)
	a.Equal(300*time.Millisecond, opts.Pacing.CardUpdate)
	a.Equal(int64(9), opts.Seed)

	cfg.Tarot.HumanSeat = "center"
	_, err = cfg.TarotOptions()
	a.ErrorIs(err, tarot.ErrUnknownSeat)
}
